package component

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Audio holds an entity's one-shot sound clips. Systems flag Play or Stop by
// index and the audio system acts on the flags next frame.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// Index returns the clip slot for name, or -1.
func (a *Audio) Index(name string) int {
	if a == nil {
		return -1
	}
	name = strings.TrimSpace(name)
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}

var AudioComponent = NewComponent[Audio]()
