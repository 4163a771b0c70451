package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/candle/candle"
	"github.com/milk9111/candle/common"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
	"github.com/milk9111/candle/ecs/entity"
	"github.com/milk9111/candle/event"
	"github.com/milk9111/candle/prefabs"
)

const (
	testOutMusic   = "audio/fox_theme.wav"
	testLevelMusic = "audio/level_theme.wav"
)

func newTestCandle(t *testing.T, w *ecs.World, dataFile string, cfg candle.Config) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	add := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	add(ecs.Add(w, e, component.CandleComponent.Kind(), &component.Candle{
		DataFile: dataFile,
		Config:   &cfg,
		Cues: candle.Cues{
			RefillSound: "refill",
			OutSound:    "candle_out",
			OutMusic:    testOutMusic,
			LevelMusic:  testLevelMusic,
		},
	}))
	add(ecs.Add(w, e, component.AnimatorComponent.Kind(), &component.Animator{
		MaxCharge: cfg.MaxCharge,
		Charge:    cfg.MaxCharge,
		Visual:    candle.VisualState{Color: cfg.Color, Charge: cfg.MaxCharge, Lit: true},
	}))
	add(ecs.Add(w, e, component.AudioComponent.Kind(), &component.Audio{
		Names:   []string{"refill", "candle_out"},
		Players: make([]*audio.Player, 2),
		Volume:  []float64{1, 1},
		Play:    make([]bool, 2),
		Stop:    make([]bool, 2),
	}))
	return e
}

func candleTimer(t *testing.T, w *ecs.World, e ecs.Entity) *candle.Timer {
	t.Helper()
	c, ok := ecs.Get(w, e, component.CandleComponent.Kind())
	if !ok || c.Timer == nil {
		t.Fatalf("candle %v has no timer", e)
	}
	return c.Timer
}

func soundFlag(t *testing.T, w *ecs.World, e ecs.Entity, name string) bool {
	t.Helper()
	clips, ok := ecs.Get(w, e, component.AudioComponent.Kind())
	if !ok {
		t.Fatalf("no audio on %v", e)
	}
	return clips.Play[clips.Index(name)]
}

func TestCandleSystemBurnsOneChargePerInterval(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestCandle(t, w, "", candle.Config{Color: candle.Yellow, DecayInterval: 0.5, MaxCharge: 3})
	sys := &CandleSystem{dt: 0.25}

	wantCharge := []int{3, 2, 2, 1}
	for i, want := range wantCharge {
		sys.Update(w)
		if got := candleTimer(t, w, e).Charge(); got != want {
			t.Fatalf("frame %d: charge %d want %d", i, got, want)
		}
	}

	params, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if params.Charge != 1 {
		t.Fatalf("animator charge %d want 1", params.Charge)
	}
}

func TestCandleSystemRunningPlayerDoublesBurn(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestCandle(t, w, "", candle.Config{Color: candle.Yellow, DecayInterval: 1, MaxCharge: 4})

	player := ecs.CreateEntity(w)
	_ = ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 3, RunMultiplier: 2})
	_ = ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{MoveX: 1, Run: true})

	controller := NewPlayerControllerSystem()
	sys := &CandleSystem{dt: 0.25}
	for i := 0; i < 4; i++ {
		controller.Update(w)
		sys.Update(w)
	}
	if !PlayerRunning(w) {
		t.Fatalf("player should be running")
	}
	if got := candleTimer(t, w, e).Charge(); got != 2 {
		t.Fatalf("charge %d want 2 after 1s running", got)
	}

	// Holding run while standing still is not running.
	in, _ := ecs.Get(w, player, component.InputComponent.Kind())
	in.MoveX = 0
	controller.Update(w)
	if PlayerRunning(w) {
		t.Fatalf("standing player should not be running")
	}
}

func TestCandleSystemFrameRateBurn(t *testing.T) {
	cases := []struct {
		name    string
		frames  int
		running bool
		want    int
	}{
		{"walk_12s", 12 * common.TPS, false, 0},
		{"run_6s", 6 * common.TPS, true, 0},
		{"walk_6s", 6 * common.TPS, false, 6},
		{"run_3s", 3 * common.TPS, true, 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newTestCandle(t, w, "", candle.Config{Color: candle.Yellow, DecayInterval: 1, MaxCharge: 12})
			player := ecs.CreateEntity(w)
			_ = ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 3, RunMultiplier: 2})
			_ = ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{MoveX: 1, Run: c.running})

			outs := 0
			w.Bus().Subscribe(candle.EventOut, func(event.Event) { outs++ })

			controller := NewPlayerControllerSystem()
			sys := NewCandleSystem()
			for i := 0; i < c.frames; i++ {
				controller.Update(w)
				sys.Update(w)
			}

			if got := candleTimer(t, w, e).Charge(); got != c.want {
				t.Fatalf("charge %d want %d", got, c.want)
			}
			if wantOuts := btoi(c.want == 0); outs != wantOuts {
				t.Fatalf("outs %d want %d", outs, wantOuts)
			}
		})
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestCandleSystemOutCuesAudio(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestCandle(t, w, "", candle.Config{Color: candle.Blue, DecayInterval: 0.25, MaxCharge: 1})
	sys := &CandleSystem{dt: 0.25}

	outs := 0
	w.Bus().Subscribe(candle.EventOut, func(event.Event) { outs++ })

	for i := 0; i < 5; i++ {
		sys.Update(w)
	}
	if outs != 1 {
		t.Fatalf("out published %d times, want 1", outs)
	}
	if candleTimer(t, w, e).Lit() {
		t.Fatalf("candle should be out")
	}
	if !soundFlag(t, w, e, "candle_out") || soundFlag(t, w, e, "refill") {
		t.Fatalf("expected only the out sound flagged")
	}
	if got := CurrentMusic(w); got != testOutMusic {
		t.Fatalf("music %q want %q", got, testOutMusic)
	}
	params, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if params.Visual.Lit {
		t.Fatalf("animator should show the candle unlit")
	}
}

func TestCandleSystemResetKey(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestCandle(t, w, "", candle.Config{Color: candle.Yellow, DecayInterval: 0.25, MaxCharge: 2})
	input := ecs.CreateEntity(w)
	_ = ecs.Add(w, input, component.InputComponent.Kind(), &component.Input{})
	sys := &CandleSystem{dt: 0.25}

	sys.Update(w)
	if got := candleTimer(t, w, e).Charge(); got != 1 {
		t.Fatalf("charge %d want 1", got)
	}

	in, _ := ecs.Get(w, input, component.InputComponent.Kind())
	in.ResetPressed = true
	sys.Update(w)

	timer := candleTimer(t, w, e)
	// The reset refills before this frame's burn is applied.
	if timer.Charge() != 1 || !timer.Lit() {
		t.Fatalf("unexpected state after reset %+v", timer.State())
	}
	if !soundFlag(t, w, e, "refill") {
		t.Fatalf("refill sound should be flagged")
	}
	if got := CurrentMusic(w); got != testLevelMusic {
		t.Fatalf("music %q want %q", got, testLevelMusic)
	}
	params, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if !params.Refill {
		t.Fatalf("refill should be triggered on the animator")
	}
}

func TestCandleSystemColorHotkeyIsDelayed(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestCandle(t, w, "", candle.Config{Color: candle.Yellow, DecayInterval: 10, MaxCharge: 5})
	input := ecs.CreateEntity(w)
	_ = ecs.Add(w, input, component.InputComponent.Kind(), &component.Input{ColorPressed: true, Color: candle.Red})
	sys := &CandleSystem{dt: 0.25}

	sys.Update(w)
	in, _ := ecs.Get(w, input, component.InputComponent.Kind())
	in.ColorPressed = false

	params, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if candleTimer(t, w, e).Color() != candle.Yellow || candleTimer(t, w, e).PendingColorChanges() != 1 {
		t.Fatalf("color should not change before the delay")
	}

	sys.Update(w)
	if candleTimer(t, w, e).Color() != candle.Red || params.Visual.Color != candle.Red {
		t.Fatalf("color should be red after 0.5s, got %v", params.Visual.Color)
	}
}

func TestCandleSystemColorHotkeyPublishesOnce(t *testing.T) {
	w := ecs.NewWorld()
	first := newTestCandle(t, w, "", candle.Config{Color: candle.Yellow, DecayInterval: 10, MaxCharge: 5})
	second := newTestCandle(t, w, "", candle.Config{Color: candle.Blue, DecayInterval: 10, MaxCharge: 5})
	input := ecs.CreateEntity(w)
	_ = ecs.Add(w, input, component.InputComponent.Kind(), &component.Input{ColorPressed: true, Color: candle.Purple})

	changes := 0
	w.Bus().Subscribe(candle.EventColorChanged, func(event.Event) { changes++ })

	sys := NewCandleSystem()
	sys.Update(w)
	in, _ := ecs.Get(w, input, component.InputComponent.Kind())
	in.ColorPressed = false
	for i := 0; i < 40; i++ {
		sys.Update(w)
	}

	if changes != 1 {
		t.Fatalf("colorChanged published %d times, want 1", changes)
	}
	for _, e := range []ecs.Entity{first, second} {
		if got := candleTimer(t, w, e).Color(); got != candle.Purple {
			t.Fatalf("candle %v color %v want purple", e, got)
		}
	}
}

func TestSetCandlesFrozen(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestCandle(t, w, "", candle.Config{Color: candle.Yellow, DecayInterval: 0.25, MaxCharge: 3})
	sys := &CandleSystem{dt: 0.25}
	sys.Update(w)

	SetCandlesFrozen(w, true)
	for i := 0; i < 10; i++ {
		sys.Update(w)
	}
	if got := candleTimer(t, w, e).Charge(); got != 2 {
		t.Fatalf("frozen candle burned: charge %d", got)
	}

	SetCandlesFrozen(w, false)
	sys.Update(w)
	if got := candleTimer(t, w, e).Charge(); got != 1 {
		t.Fatalf("thawed candle should burn: charge %d", got)
	}
}

func TestReloadCandleData(t *testing.T) {
	w := ecs.NewWorld()
	red := newTestCandle(t, w, "candle_red.yaml", candle.Config{Color: candle.Red, DecayInterval: 1, MaxCharge: 4})
	blue := newTestCandle(t, w, "candle_blue.yaml", candle.Config{Color: candle.Blue, DecayInterval: 1, MaxCharge: 4})
	EnsureCandleTimers(w)

	n := ReloadCandleData(w, "candle_red.yaml", candle.Config{Color: candle.Purple, DecayInterval: 2, MaxCharge: 9})
	if n != 1 {
		t.Fatalf("updated %d candles want 1", n)
	}
	if candleTimer(t, w, red).Config().MaxCharge != 4 {
		t.Fatalf("reload should wait for reset")
	}

	w.Bus().Emit(candle.EventReset, nil)

	if got := candleTimer(t, w, red).Charge(); got != 9 {
		t.Fatalf("reloaded candle charge %d want 9", got)
	}
	if got := candleTimer(t, w, blue).Charge(); got != 4 {
		t.Fatalf("other candle charge %d want 4", got)
	}
	params, _ := ecs.Get(w, red, component.AnimatorComponent.Kind())
	if params.MaxCharge != 9 {
		t.Fatalf("animator max charge %d want 9", params.MaxCharge)
	}

	if ReloadCandleData(w, "candle_red.yaml", candle.Config{Color: candle.Red, DecayInterval: 0, MaxCharge: 1}) != 0 {
		t.Fatalf("invalid data should be rejected")
	}
}

func TestDestroyedCandleStopsListening(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestCandle(t, w, "", candle.DefaultConfig())
	EnsureCandleTimers(w)
	if w.Bus().Count(candle.EventReset) != 1 {
		t.Fatalf("expected one reset subscriber")
	}
	ecs.DestroyEntity(w, e)
	if w.Bus().Count(candle.EventReset) != 0 {
		t.Fatalf("destroyed candle still subscribed")
	}
	w.Bus().Emit(candle.EventReset, nil)
}

func TestCandlePrefabBuildsWithoutTimer(t *testing.T) {
	w := ecs.NewWorld()
	e, err := entity.BuildEntityFromSpec(w, "test.yaml", prefabs.EntityBuildSpec{
		Components: map[string]any{
			"candle_tag": map[string]any{},
			"candle":     map[string]any{"data": "candle_purple.yaml"},
			"animator":   map[string]any{},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	sys := NewCandleSystem()
	sys.Update(w)

	timer := candleTimer(t, w, e)
	if timer.Color() != candle.Purple || timer.Config().MaxCharge != 10 {
		t.Fatalf("timer not built from data: %+v", timer.Config())
	}
}
