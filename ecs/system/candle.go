package system

import (
	"log"

	"github.com/milk9111/candle/candle"
	"github.com/milk9111/candle/common"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
)

// colorChangeDelay is how long a color hotkey waits before announcing the
// new color.
const colorChangeDelay = 0.5

// CandleSystem builds a timer for every candle on first sight, applies debug
// input and advances each timer by one frame.
type CandleSystem struct {
	dt float64
}

func NewCandleSystem() *CandleSystem {
	return &CandleSystem{dt: common.FrameDelta}
}

func (s *CandleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	EnsureCandleTimers(w)

	resetPressed, colorPressed := false, false
	var color candle.Color
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		resetPressed = resetPressed || input.ResetPressed
		if input.ColorPressed {
			colorPressed = true
			color = input.Color
		}
	})

	if resetPressed {
		w.Bus().Emit(candle.EventReset, nil)
	}

	running := PlayerRunning(w)
	ecs.ForEach(w, component.CandleComponent.Kind(), func(_ ecs.Entity, c *component.Candle) {
		if c.Timer == nil {
			return
		}
		c.Timer.SetFrozen(c.Frozen)
		// colorChanged reaches every candle on the bus, so one timer queues it.
		if colorPressed {
			c.Timer.QueueColorChange(color, colorChangeDelay)
			colorPressed = false
		}
		c.Timer.Advance(s.dt, running)
	})
}

// EnsureCandleTimers constructs and attaches timers for candles that do not
// have one yet, so they hear events published before the next candle update.
func EnsureCandleTimers(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CandleComponent.Kind(), func(e ecs.Entity, c *component.Candle) {
		if c.Timer == nil {
			c.Timer = candle.NewTimer(c.Config, candle.Deps{
				Audio:    NewWorldAudio(w, e),
				Animator: NewEntityAnimator(w, e),
				Cues:     c.Cues,
			})
		}
		if !c.Timer.Attached() {
			c.Timer.Attach(w.Bus())
		}
	})
}

// SetCandlesFrozen freezes or thaws every candle in the world.
func SetCandlesFrozen(w *ecs.World, frozen bool) {
	ecs.ForEach(w, component.CandleComponent.Kind(), func(_ ecs.Entity, c *component.Candle) {
		c.Frozen = frozen
		if c.Timer != nil {
			c.Timer.SetFrozen(frozen)
		}
	})
}

// ReloadCandleData hands cfg to every candle loaded from dataFile. Timers pick
// it up on their next reset. It returns the number of candles updated.
func ReloadCandleData(w *ecs.World, dataFile string, cfg candle.Config) int {
	n := 0
	ecs.ForEach(w, component.CandleComponent.Kind(), func(e ecs.Entity, c *component.Candle) {
		if c.DataFile != dataFile {
			return
		}
		if c.Timer != nil {
			if err := c.Timer.SetConfig(cfg); err != nil {
				log.Printf("candle: reload %s for %v: %v", dataFile, e, err)
				return
			}
		}
		copied := cfg
		c.Config = &copied
		n++
	})
	return n
}

// FirstCandleState returns the state of the first candle with a timer.
func FirstCandleState(w *ecs.World) (candle.State, bool) {
	var (
		state candle.State
		found bool
	)
	ecs.ForEach(w, component.CandleComponent.Kind(), func(_ ecs.Entity, c *component.Candle) {
		if found || c.Timer == nil {
			return
		}
		state, found = c.Timer.State(), true
	})
	return state, found
}

// worldAudio plays candle cues through the owner's Audio clips and the
// global music player.
type worldAudio struct {
	w     *ecs.World
	owner ecs.Entity
}

func NewWorldAudio(w *ecs.World, owner ecs.Entity) candle.Audio {
	return &worldAudio{w: w, owner: owner}
}

func (a *worldAudio) PlaySound(id string) {
	clips, ok := ecs.Get(a.w, a.owner, component.AudioComponent.Kind())
	if !ok {
		log.Printf("audio: %v has no audio clips for %q", a.owner, id)
		return
	}
	i := clips.Index(id)
	if i < 0 || i >= len(clips.Play) {
		log.Printf("audio: unknown sound %q", id)
		return
	}
	clips.Play[i] = true
}

func (a *worldAudio) PlayMusic(id string) {
	RequestMusic(a.w, id)
}

func (a *worldAudio) StopMusic(id string) {
	if current := CurrentMusic(a.w); current == "" || (id != "" && current != id) {
		return
	}
	StopMusic(a.w)
}

func (a *worldAudio) CurrentMusic() string {
	return CurrentMusic(a.w)
}

// entityAnimator writes candle visuals into the owner's Animator component.
type entityAnimator struct {
	w     *ecs.World
	owner ecs.Entity
}

func NewEntityAnimator(w *ecs.World, owner ecs.Entity) candle.Animator {
	return &entityAnimator{w: w, owner: owner}
}

func (a *entityAnimator) params() *component.Animator {
	anim, ok := ecs.Get(a.w, a.owner, component.AnimatorComponent.Kind())
	if !ok {
		return nil
	}
	// Reloaded data can change the scale the charge column is drawn against.
	if c, ok := ecs.Get(a.w, a.owner, component.CandleComponent.Kind()); ok && c.Timer != nil {
		anim.MaxCharge = c.Timer.Config().MaxCharge
	}
	return anim
}

func (a *entityAnimator) SetVisual(state candle.VisualState) {
	if anim := a.params(); anim != nil {
		anim.Visual = state
		anim.Charge = state.Charge
	}
}

func (a *entityAnimator) SetCharge(charge int) {
	if anim := a.params(); anim != nil {
		anim.Charge = charge
		anim.Visual.Charge = charge
	}
}

func (a *entityAnimator) TriggerRefill() {
	if anim := a.params(); anim != nil {
		anim.Refill = true
	}
}
