package candle

import "github.com/milk9111/candle/event"

// Topics shared by candles, audio and level logic. ColorChanged carries a
// Color; Out and Reset carry no data.
const (
	EventColorChanged event.Type = "candle.color_changed"
	EventOut          event.Type = "candle.out"
	EventReset        event.Type = "candle.reset"
)

// Audio is the playback service a candle drives.
type Audio interface {
	PlaySound(id string)
	PlayMusic(id string)
	StopMusic(id string)
	CurrentMusic() string
}

// VisualState is the single value the render layer needs to pick a frame.
type VisualState struct {
	Color  Color
	Charge int
	Lit    bool
}

// Animator receives visual updates from a candle.
type Animator interface {
	SetVisual(state VisualState)
	SetCharge(charge int)
	TriggerRefill()
}

type nopAudio struct{}

func (nopAudio) PlaySound(string)     {}
func (nopAudio) PlayMusic(string)     {}
func (nopAudio) StopMusic(string)     {}
func (nopAudio) CurrentMusic() string { return "" }

type nopAnimator struct{}

func (nopAnimator) SetVisual(VisualState) {}
func (nopAnimator) SetCharge(int)         {}
func (nopAnimator) TriggerRefill()        {}
