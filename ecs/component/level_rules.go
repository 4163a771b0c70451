package component

import (
	"github.com/d5/tengo/v2"
	"github.com/milk9111/candle/event"
)

// LevelRules holds the compiled level script and the reset countdown it
// schedules after a candle goes out.
type LevelRules struct {
	Script   string
	Compiled *tengo.Compiled

	Started      bool
	ResetPending bool
	ResetIn      float64

	Scope *event.Scope
}

func (l *LevelRules) Release() {
	if l == nil {
		return
	}
	l.Scope.Close()
}

var LevelRulesComponent = NewComponent[LevelRules]()
