package main

import (
	"fmt"
	"log"
	"path"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/candle/common"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
	"github.com/milk9111/candle/ecs/entity"
	"github.com/milk9111/candle/ecs/system"
	"github.com/milk9111/candle/prefabs"
)

type Game struct {
	frames int
	debug  bool
	paused bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem

	pauseUI *ebitenui.UI
	hud     *hud
	watcher *prefabs.Watcher
}

func NewGame(candleData string, debug, watch bool) (*Game, error) {
	w := ecs.NewWorld()

	if _, err := entity.NewMusicPlayer(w); err != nil {
		return nil, err
	}
	if _, err := entity.NewLevel(w); err != nil {
		return nil, err
	}
	if _, err := entity.NewCandle(w, candleData); err != nil {
		return nil, err
	}
	if _, err := entity.NewPlayer(w); err != nil {
		return nil, err
	}

	g := &Game{
		debug: debug,
		world: w,
		scheduler: ecs.NewScheduler(
			system.NewInputSystem(),
			system.NewPlayerControllerSystem(),
			system.NewLevelSystem(),
			system.NewCandleSystem(),
			system.NewAnimationSystem(),
			system.NewWhiteFlashSystem(),
			system.NewAudioSystem(),
			system.NewMusicSystem(),
		),
		render: system.NewRenderSystem(),
		hud:    newHUD(),
	}
	g.pauseUI = NewPauseUI(g)

	if watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close watcher: %v", err)
		}
	}
	ecs.Clear(g.world)
}

func (g *Game) Update() error {
	g.frames++
	g.reload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	system.SetCandlesFrozen(g.world, paused)
}

// reload applies prefab edits picked up by the watcher.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case err := <-g.watcher.Errors:
			log.Printf("hot reload: %v", err)
			continue
		default:
		}

		change, ok := g.watcher.Poll()
		if !ok {
			return
		}
		switch change.Kind {
		case prefabs.ChangeSpec:
			g.reloadCandleData(change.Name)
		case prefabs.ChangeScript:
			g.reloadLevelScript(change.Name)
		}
	}
}

func (g *Game) reloadCandleData(name string) {
	if !prefabs.IsCandleData(name) {
		return
	}
	cfg, err := prefabs.LoadCandleConfig(name)
	if err != nil {
		log.Printf("hot reload: %v", err)
		return
	}
	n := system.ReloadCandleData(g.world, name, *cfg)
	log.Printf("hot reload: %s applied to %d candle(s) on next reset", name, n)
}

func (g *Game) reloadLevelScript(name string) {
	ecs.ForEach(g.world, component.LevelRulesComponent.Kind(), func(_ ecs.Entity, rules *component.LevelRules) {
		if path.Base(rules.Script) != path.Base(name) {
			return
		}
		compiled, err := entity.CompileLevelScript(rules.Script)
		if err != nil {
			log.Printf("hot reload: %s: %v", name, err)
			return
		}
		rules.Compiled = compiled
		log.Printf("hot reload: recompiled %s", name)
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.hud.Draw(screen, g.world)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
