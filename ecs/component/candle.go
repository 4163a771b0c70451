package component

import "github.com/milk9111/candle/candle"

// Candle wraps a candle timer on an entity. The candle system builds Timer on
// first sight from Config and Cues, wiring it to the world bus.
type Candle struct {
	// DataFile is the candle data prefab Config was loaded from. Empty when
	// the built-in profile is in use.
	DataFile string
	Config   *candle.Config
	Cues     candle.Cues
	Frozen   bool

	Timer *candle.Timer
}

// Release drops the timer's bus subscriptions when the entity goes away.
func (c *Candle) Release() {
	if c == nil || c.Timer == nil {
		return
	}
	c.Timer.Detach()
}

var CandleComponent = NewComponent[Candle]()
