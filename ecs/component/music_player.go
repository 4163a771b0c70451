package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// MusicPlayer is the single background music channel. Target is the track
// playback is heading to; Playing is the one actually audible, which differs
// from Target while the old track fades out.
type MusicPlayer struct {
	Players      map[string]*audio.Player
	TrackVolumes map[string]float64

	Target  string
	Playing string
	Volume  float64

	// FadeStep is the per-frame volume drop while Playing fades toward
	// silence. Zero when no fade is running.
	FadeStep float64
}

var MusicPlayerComponent = NewComponent[MusicPlayer]()
