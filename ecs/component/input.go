package component

import "github.com/milk9111/candle/candle"

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX float64
	Run   bool

	ResetPressed bool
	// ColorPressed is set for one frame when a color hotkey goes down.
	ColorPressed bool
	Color        candle.Color
}

var InputComponent = NewComponent[Input]()
