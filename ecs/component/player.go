package component

type Player struct {
	MoveSpeed     float64
	RunMultiplier float64
	// Running is true while the player moves with run held. Candles burn
	// twice as fast while it is set.
	Running bool
}

var PlayerComponent = NewComponent[Player]()
