package system

import (
	"log"

	"github.com/milk9111/candle/candle"
	"github.com/milk9111/candle/common"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
	"github.com/milk9111/candle/event"
)

// defaultResetAfter is used when a level has no script or its script fails.
const defaultResetAfter = 3.0

// LevelSystem refills candles when a level starts and again a script-chosen
// delay after one goes out.
type LevelSystem struct {
	dt float64
}

func NewLevelSystem() *LevelSystem {
	return &LevelSystem{dt: common.FrameDelta}
}

func (s *LevelSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.LevelRulesComponent.Kind(), func(_ ecs.Entity, rules *component.LevelRules) {
		if rules.Scope == nil || rules.Scope.Closed() {
			s.subscribe(w, rules)
		}

		if !rules.Started {
			rules.Started = true
			EnsureCandleTimers(w)
			w.Bus().Emit(candle.EventReset, nil)
			return
		}

		if !rules.ResetPending {
			return
		}
		rules.ResetIn -= s.dt
		if rules.ResetIn <= 0 {
			rules.ResetPending = false
			rules.ResetIn = 0
			w.Bus().Emit(candle.EventReset, nil)
		}
	})
}

func (s *LevelSystem) subscribe(w *ecs.World, rules *component.LevelRules) {
	rules.Scope = event.NewScope(w.Bus())
	rules.Scope.On(candle.EventOut, func(event.Event) {
		if rules.ResetPending {
			return
		}
		color := candle.Yellow
		if state, ok := FirstCandleState(w); ok {
			color = state.Color
		}
		delay := ResetDelay(rules, color)
		if delay < 0 {
			return
		}
		rules.ResetPending = true
		rules.ResetIn = delay
	})
	rules.Scope.On(candle.EventReset, func(event.Event) {
		rules.ResetPending = false
		rules.ResetIn = 0
	})
}

// ResetDelay evaluates the level script for color. A negative result means
// the level leaves the candle out.
func ResetDelay(rules *component.LevelRules, color candle.Color) float64 {
	if rules == nil || rules.Compiled == nil {
		return defaultResetAfter
	}

	run := rules.Compiled.Clone()
	if err := run.Set("color", color.String()); err != nil {
		log.Printf("level: %s: set color: %v", rules.Script, err)
		return defaultResetAfter
	}
	if err := run.Run(); err != nil {
		log.Printf("level: %s: run: %v", rules.Script, err)
		return defaultResetAfter
	}

	switch v := run.Get("reset_after").Value().(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case nil:
		log.Printf("level: %s: reset_after undefined", rules.Script)
	default:
		log.Printf("level: %s: reset_after is %T, want a number", rules.Script, v)
	}
	return defaultResetAfter
}
