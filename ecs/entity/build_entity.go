package entity

import (
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/candle/candle"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
	"github.com/milk9111/candle/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

type componentBuilder struct {
	name  string
	build componentBuildFn
}

// componentBuilders run in slice order. Later builders may read what earlier
// ones added: sprite sizes itself from animation, animator seeds from candle.
var componentBuilders = []componentBuilder{
	{"player_tag", addPlayerTag},
	{"candle_tag", addCandleTag},
	{"player", addPlayer},
	{"input", addInput},
	{"candle", addCandle},
	{"transform", addTransform},
	{"animation", addAnimation},
	{"sprite", addSprite},
	{"render_layer", addRenderLayer},
	{"animator", addAnimator},
	{"audio", addAudio},
	{"music_player", addMusicPlayer},
	{"level_rules", addLevelRules},
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec)
}

// BuildEntityFromSpec builds an entity from an already decoded prefab. The
// prefab is checked for unknown components before anything is created, and a
// builder failure destroys the partial entity.
func BuildEntityFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	if unknown := unknownComponents(spec.Components); len(unknown) > 0 {
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, unknown)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}
	for _, b := range componentBuilders {
		raw, ok := spec.Components[b.name]
		if !ok {
			continue
		}
		if err := b.build(w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, b.name, err)
		}
	}
	return e, nil
}

func unknownComponents(components map[string]any) []string {
	var unknown []string
outer:
	for name := range components {
		for _, b := range componentBuilders {
			if b.name == name {
				continue outer
			}
		}
		unknown = append(unknown, name)
	}
	sort.Strings(unknown)
	return unknown
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCandleTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CandleTagComponent.Kind(), &component.CandleTag{})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	player := &component.Player{MoveSpeed: spec.MoveSpeed, RunMultiplier: spec.RunMultiplier}
	if player.RunMultiplier <= 0 {
		player.RunMultiplier = 2
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), player)
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

// addCandle resolves the candle's data file. When no data loads the candle
// keeps a nil config and its timer falls back to the built-in profile.
func addCandle(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CandleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode candle spec: %w", err)
	}

	c := &component.Candle{
		Frozen: spec.Frozen,
		Cues: candle.Cues{
			RefillSound: spec.RefillSFX,
			OutSound:    spec.OutSFX,
			OutMusic:    spec.OutMusic,
			LevelMusic:  spec.LevelMusic,
		},
	}
	if cfg, used, err := prefabs.ResolveCandleConfig(spec.Data); err != nil {
		log.Printf("candle: %s: %v", ctx.PrefabPath, err)
	} else {
		c.Config, c.DataFile = cfg, used
	}
	return ecs.Add(w, e, component.CandleComponent.Kind(), c)
}

// addAnimator seeds animator parameters from the candle on the same entity so
// the first frame drawn matches a full, lit candle.
func addAnimator(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	params := &component.Animator{}
	if c, ok := ecs.Get(w, e, component.CandleComponent.Kind()); ok {
		cfg := candle.DefaultConfig()
		if c.Config != nil {
			cfg = *c.Config
		}
		params.MaxCharge = cfg.MaxCharge
		params.Charge = cfg.MaxCharge
		params.Visual = candle.VisualState{Color: cfg.Color, Charge: cfg.MaxCharge, Lit: true}
	}
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), params)
}
