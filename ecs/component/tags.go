package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CandleTag struct{}

var CandleTagComponent = NewComponent[CandleTag]()
