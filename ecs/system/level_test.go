package system

import (
	"testing"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/candle/candle"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
	"github.com/milk9111/candle/ecs/entity"
	"github.com/milk9111/candle/event"
)

func TestLevelSystemResetsOnStart(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestCandle(t, w, "", candle.Config{Color: candle.Yellow, DecayInterval: 1, MaxCharge: 3})
	_ = ecs.Add(w, ecs.CreateEntity(w), component.LevelRulesComponent.Kind(), &component.LevelRules{})

	resets := 0
	w.Bus().Subscribe(candle.EventReset, func(event.Event) { resets++ })

	level := NewLevelSystem()
	level.Update(w)
	level.Update(w)

	if resets != 1 {
		t.Fatalf("level start published %d resets, want 1", resets)
	}
	if !soundFlag(t, w, e, "refill") || CurrentMusic(w) != testLevelMusic {
		t.Fatalf("start reset should cue refill and level music")
	}
}

func TestLevelSystemResetsAfterOut(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestCandle(t, w, "", candle.Config{Color: candle.Yellow, DecayInterval: 0.25, MaxCharge: 1})
	levelEnt := ecs.CreateEntity(w)
	_ = ecs.Add(w, levelEnt, component.LevelRulesComponent.Kind(), &component.LevelRules{})

	level := &LevelSystem{dt: 0.25}
	candles := &CandleSystem{dt: 0.25}

	level.Update(w)
	candles.Update(w)

	timer := candleTimer(t, w, e)
	if timer.Lit() {
		t.Fatalf("candle should be out after one interval")
	}
	rules, _ := ecs.Get(w, levelEnt, component.LevelRulesComponent.Kind())
	if !rules.ResetPending || rules.ResetIn != defaultResetAfter {
		t.Fatalf("expected pending reset in %v, got %+v", defaultResetAfter, rules)
	}

	// 3s at 0.25s per frame.
	for i := 0; i < 11; i++ {
		level.Update(w)
		candles.Update(w)
	}
	if timer.Lit() {
		t.Fatalf("candle relit too early")
	}

	level.Update(w)
	if !timer.Lit() || timer.Charge() != 1 || rules.ResetPending {
		t.Fatalf("level should have refilled the candle: %+v", timer.State())
	}
}

func TestLevelSystemManualResetCancelsPending(t *testing.T) {
	w := ecs.NewWorld()
	newTestCandle(t, w, "", candle.Config{Color: candle.Yellow, DecayInterval: 0.25, MaxCharge: 1})
	levelEnt := ecs.CreateEntity(w)
	_ = ecs.Add(w, levelEnt, component.LevelRulesComponent.Kind(), &component.LevelRules{})

	level := &LevelSystem{dt: 0.25}
	candles := &CandleSystem{dt: 0.25}
	level.Update(w)
	candles.Update(w)

	w.Bus().Emit(candle.EventReset, nil)
	rules, _ := ecs.Get(w, levelEnt, component.LevelRulesComponent.Kind())
	if rules.ResetPending {
		t.Fatalf("manual reset should clear the pending level reset")
	}
}

func TestLevelRulesReleaseUnsubscribes(t *testing.T) {
	w := ecs.NewWorld()
	levelEnt := ecs.CreateEntity(w)
	_ = ecs.Add(w, levelEnt, component.LevelRulesComponent.Kind(), &component.LevelRules{})
	NewLevelSystem().Update(w)

	if w.Bus().Count(candle.EventOut) != 1 {
		t.Fatalf("level should listen for out")
	}
	ecs.DestroyEntity(w, levelEnt)
	if w.Bus().Count(candle.EventOut) != 0 || w.Bus().Count(candle.EventReset) != 0 {
		t.Fatalf("destroyed level still subscribed")
	}
}

func TestResetDelayFromScript(t *testing.T) {
	compiled, err := entity.CompileLevelScript("level.tengo")
	if err != nil {
		t.Fatal(err)
	}
	rules := &component.LevelRules{Script: "level.tengo", Compiled: compiled}

	cases := []struct {
		color candle.Color
		want  float64
	}{
		{candle.Yellow, 3.0},
		{candle.Red, 2.5},
		{candle.Purple, 4.0},
		{candle.Blue, 2.0},
	}
	for _, c := range cases {
		t.Run(c.color.String(), func(t *testing.T) {
			if got := ResetDelay(rules, c.color); got != c.want {
				t.Fatalf("got %v want %v", got, c.want)
			}
		})
	}

	if got := ResetDelay(nil, candle.Red); got != defaultResetAfter {
		t.Fatalf("nil rules should use the default delay, got %v", got)
	}
}

func compileRules(t *testing.T, src string) *component.LevelRules {
	t.Helper()
	script := tengo.NewScript([]byte(src))
	if err := script.Add("color", ""); err != nil {
		t.Fatal(err)
	}
	compiled, err := script.Compile()
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	return &component.LevelRules{Script: "inline.tengo", Compiled: compiled}
}

func TestResetDelayValueTypes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"float", `reset_after := 1.5`, 1.5},
		{"int", `reset_after := 4`, 4},
		{"negative", `reset_after := -1`, -1},
		{"string", `reset_after := "soon"`, defaultResetAfter},
		{"bool", `reset_after := true`, defaultResetAfter},
		{"undefined", `reset_after := undefined`, defaultResetAfter},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ResetDelay(compileRules(t, c.src), candle.Red); got != c.want {
				t.Fatalf("got %v want %v", got, c.want)
			}
		})
	}
}

func TestChargeFrame(t *testing.T) {
	cases := []struct {
		charge, max, frames, want int
	}{
		{12, 12, 13, 0},
		{11, 12, 13, 1},
		{6, 12, 13, 6},
		{0, 12, 13, 12},
		{5, 10, 13, 6},
		{3, 0, 13, 12},
		{3, 12, 1, 0},
	}
	for _, c := range cases {
		if got := ChargeFrame(c.charge, c.max, c.frames); got != c.want {
			t.Fatalf("ChargeFrame(%d,%d,%d)=%d want %d", c.charge, c.max, c.frames, got, c.want)
		}
	}
}
