package component

import "github.com/milk9111/candle/candle"

// Animator holds the parameters a gameplay component pushes for the animation
// system to read: the current visual variant, an integer charge, and a
// one-shot refill trigger.
type Animator struct {
	Visual    candle.VisualState
	Charge    int
	MaxCharge int
	Refill    bool
}

var AnimatorComponent = NewComponent[Animator]()
