package component

// MusicRequest asks the music channel to switch to Track, or to go silent
// when Track is empty. Requests are one-shot entities; the newest one in a
// frame wins.
type MusicRequest struct {
	Track string
}

var MusicRequestComponent = NewComponent[MusicRequest]()
