// Package candle implements the candle timer: a light source that burns down
// one charge per decay interval, faster while the player runs, and goes out
// at zero until a reset refills it.
package candle

import (
	"log"
	"strings"

	"github.com/milk9111/candle/event"
)

// Phase is the coarse state of a candle.
type Phase int

const (
	PhaseFull Phase = iota
	PhaseDepleting
	PhaseOut
)

func (p Phase) String() string {
	switch p {
	case PhaseFull:
		return "full"
	case PhaseDepleting:
		return "depleting"
	case PhaseOut:
		return "out"
	default:
		return "unknown"
	}
}

// State is a read-only snapshot of a timer.
type State struct {
	Color   Color
	Charge  int
	Elapsed float64
	Lit     bool
	Frozen  bool
	Phase   Phase
}

// Deps are the collaborators a timer talks to. Nil fields become no-ops.
type Deps struct {
	Audio    Audio
	Animator Animator
	Cues     Cues
}

// clockEpsilon absorbs rounding when float frame deltas sum to an interval,
// so 60 steps of 1/60 count as one second.
const clockEpsilon = 1e-9

type pendingColor struct {
	color     Color
	remaining float64
}

// Timer owns the runtime state of one candle. It is not safe for concurrent
// use; the game loop drives it from a single goroutine.
type Timer struct {
	cfg      Config
	reloaded *Config

	audio Audio
	anim  Animator
	cues  Cues

	scope *event.Scope

	color   Color
	charge  int
	elapsed float64
	lit     bool
	frozen  bool
	outSent bool

	pending []pendingColor
}

// NewTimer initializes a timer from cfg. A nil or invalid cfg is logged and
// replaced by DefaultConfig. The timer starts lit at full charge.
func NewTimer(cfg *Config, deps Deps) *Timer {
	t := &Timer{
		cfg:   resolveConfig(cfg),
		audio: deps.Audio,
		anim:  deps.Animator,
		cues:  deps.Cues,
	}
	if t.audio == nil {
		t.audio = nopAudio{}
	}
	if t.anim == nil {
		t.anim = nopAnimator{}
	}
	t.color = t.cfg.Color
	t.charge = t.cfg.MaxCharge
	t.lit = true
	return t
}

func resolveConfig(cfg *Config) Config {
	if cfg == nil {
		log.Printf("candle: no candle data assigned, using built-in %s profile", DefaultConfig().Color)
		return DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("candle: %v, using built-in %s profile", err, DefaultConfig().Color)
		return DefaultConfig()
	}
	return *cfg
}

// Attach subscribes the timer to colorChanged, out and reset on bus. Any
// previous attachment is dropped first.
func (t *Timer) Attach(bus *event.Bus) {
	t.Detach()
	if bus == nil {
		return
	}
	t.scope = event.NewScope(bus)
	t.scope.On(EventColorChanged, func(evt event.Event) {
		if c, ok := evt.Data.(Color); ok {
			t.OnColorChanged(c)
		}
	})
	t.scope.On(EventOut, func(event.Event) { t.OnCandleOut() })
	t.scope.On(EventReset, func(event.Event) { t.OnReset() })
}

// Detach removes every subscription made by Attach.
func (t *Timer) Detach() {
	if t.scope != nil {
		t.scope.Close()
		t.scope = nil
	}
}

// Attached reports whether the timer is listening on a bus.
func (t *Timer) Attached() bool {
	return t.scope != nil && !t.scope.Closed()
}

// Advance moves the clock by dt seconds. Running doubles the burn rate.
func (t *Timer) Advance(dt float64, running bool) {
	if t.frozen || dt <= 0 {
		return
	}
	t.tickPending(dt)
	if !t.lit {
		return
	}

	if t.charge > 0 {
		if running {
			dt *= 2
		}
		t.elapsed += dt
		if t.elapsed >= t.cfg.DecayInterval-clockEpsilon {
			t.elapsed = 0
			t.charge--
			t.anim.SetCharge(t.charge)
		}
	}

	if t.charge <= 0 && !t.outSent {
		t.outSent = true
		t.emit(EventOut, nil)
	}
}

func (t *Timer) tickPending(dt float64) {
	if len(t.pending) == 0 {
		return
	}
	due := make([]Color, 0, 1)
	kept := t.pending[:0]
	for _, p := range t.pending {
		p.remaining -= dt
		if p.remaining <= clockEpsilon {
			due = append(due, p.color)
			continue
		}
		kept = append(kept, p)
	}
	t.pending = kept
	for _, c := range due {
		t.emit(EventColorChanged, c)
	}
}

// QueueColorChange announces color after delay seconds of unfrozen play.
// A reset drops anything still queued.
func (t *Timer) QueueColorChange(color Color, delay float64) {
	if !color.Valid() {
		return
	}
	if delay <= 0 {
		t.emit(EventColorChanged, color)
		return
	}
	t.pending = append(t.pending, pendingColor{color: color, remaining: delay})
}

// OnColorChanged switches the visual variant and re-pushes the charge.
func (t *Timer) OnColorChanged(color Color) {
	if !color.Valid() {
		return
	}
	t.color = color
	t.anim.SetVisual(t.visual())
	t.anim.SetCharge(t.charge)
}

// OnCandleOut extinguishes the candle and cues the out audio.
func (t *Timer) OnCandleOut() {
	t.lit = false
	t.anim.SetVisual(t.visual())
	if !blank(t.cues.OutSound) {
		t.audio.PlaySound(t.cues.OutSound)
	}
	t.swapMusic(t.cues.OutMusic)
}

// OnReset refills the candle to its configured color and full charge.
func (t *Timer) OnReset() {
	t.pending = nil
	if t.reloaded != nil {
		t.cfg = *t.reloaded
		t.reloaded = nil
	}

	t.lit = true
	t.outSent = false
	t.charge = t.cfg.MaxCharge
	t.emit(EventColorChanged, t.cfg.Color)
	t.anim.TriggerRefill()
	t.anim.SetCharge(t.charge)
	t.elapsed = 0

	if !blank(t.cues.RefillSound) {
		t.audio.PlaySound(t.cues.RefillSound)
	}
	t.swapMusic(t.cues.LevelMusic)
}

func (t *Timer) swapMusic(track string) {
	track = strings.TrimSpace(track)
	if track == "" {
		return
	}
	current := t.audio.CurrentMusic()
	if track == current {
		return
	}
	if current != "" {
		t.audio.StopMusic(current)
	}
	t.audio.PlayMusic(track)
}

// emit publishes on the attached bus, or handles the event directly when the
// timer is standalone.
func (t *Timer) emit(typ event.Type, data any) {
	if t.Attached() {
		t.scope.Bus().Emit(typ, data)
		return
	}
	switch typ {
	case EventColorChanged:
		if c, ok := data.(Color); ok {
			t.OnColorChanged(c)
		}
	case EventOut:
		t.OnCandleOut()
	case EventReset:
		t.OnReset()
	}
}

// SetConfig stores hot-reloaded data. It takes effect on the next reset.
func (t *Timer) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.reloaded = &cfg
	return nil
}

// SetFrozen pauses or resumes the clock.
func (t *Timer) SetFrozen(frozen bool) {
	t.frozen = frozen
}

func (t *Timer) Frozen() bool { return t.frozen }

func (t *Timer) Lit() bool { return t.lit }

func (t *Timer) Charge() int { return t.charge }

func (t *Timer) Elapsed() float64 { return t.elapsed }

func (t *Timer) Color() Color { return t.color }

func (t *Timer) Config() Config { return t.cfg }

// PendingColorChanges reports how many delayed color changes are queued.
func (t *Timer) PendingColorChanges() int { return len(t.pending) }

func (t *Timer) Phase() Phase {
	switch {
	case t.charge <= 0 || !t.lit:
		return PhaseOut
	case t.charge >= t.cfg.MaxCharge:
		return PhaseFull
	default:
		return PhaseDepleting
	}
}

func (t *Timer) State() State {
	return State{
		Color:   t.color,
		Charge:  t.charge,
		Elapsed: t.elapsed,
		Lit:     t.lit,
		Frozen:  t.frozen,
		Phase:   t.Phase(),
	}
}

func (t *Timer) visual() VisualState {
	return VisualState{Color: t.color, Charge: t.charge, Lit: t.lit}
}
