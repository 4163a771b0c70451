package system

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/candle/assets"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
)

const (
	defaultMusicVolume = 1.0
	musicFadeFrames    = 30
)

// MusicSystem keeps one looping background track. Switching fades the old
// track out over musicFadeFrames, then starts the target from the top.
type MusicSystem struct {
	load func(track string) (*audio.Player, error)
}

func NewMusicSystem() *MusicSystem {
	return &MusicSystem{load: assets.LoadAudioPlayer}
}

// RequestMusic queues a switch to track for the next music update.
func RequestMusic(w *ecs.World, track string) {
	if w == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.MusicRequestComponent.Kind(), &component.MusicRequest{Track: strings.TrimSpace(track)})
}

// StopMusic queues a fade to silence.
func StopMusic(w *ecs.World) {
	RequestMusic(w, "")
}

// CurrentMusic reports the track music is heading to, counting requests the
// music system has not consumed yet.
func CurrentMusic(w *ecs.World) string {
	if track, ok := latestMusicRequest(w, false); ok {
		return track
	}
	if mp := musicPlayer(w); mp != nil {
		return mp.Target
	}
	return ""
}

func (m *MusicSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	track, requested := latestMusicRequest(w, true)

	mp := musicPlayer(w)
	if mp == nil {
		return
	}
	if mp.Players == nil {
		mp.Players = make(map[string]*audio.Player)
	}

	if requested {
		m.retarget(mp, track)
	}
	m.step(mp)
}

// latestMusicRequest returns the newest pending request, destroying the
// request entities when consume is set.
func latestMusicRequest(w *ecs.World, consume bool) (string, bool) {
	track, found := "", false
	ecs.ForEach(w, component.MusicRequestComponent.Kind(), func(ent ecs.Entity, req *component.MusicRequest) {
		track, found = req.Track, true
		if consume {
			ecs.DestroyEntity(w, ent)
		}
	})
	return track, found
}

func musicPlayer(w *ecs.World) *component.MusicPlayer {
	ent, ok := ecs.First(w, component.MusicPlayerComponent.Kind())
	if !ok {
		return nil
	}
	mp, _ := ecs.Get(w, ent, component.MusicPlayerComponent.Kind())
	return mp
}

func (m *MusicSystem) retarget(mp *component.MusicPlayer, track string) {
	mp.Target = track

	current := mp.Players[mp.Playing]
	if current == nil {
		mp.Playing = ""
		m.start(mp)
		return
	}

	if mp.Playing == track {
		// Re-requesting the audible track cancels its fade.
		mp.FadeStep = 0
		mp.Volume = m.volumeFor(mp, track)
		current.SetVolume(mp.Volume)
		return
	}

	mp.FadeStep = mp.Volume / musicFadeFrames
	if mp.FadeStep <= 0 {
		mp.FadeStep = 1
	}
}

// step advances a running fade and keeps the audible track looping.
func (m *MusicSystem) step(mp *component.MusicPlayer) {
	current := mp.Players[mp.Playing]

	if mp.FadeStep > 0 {
		mp.Volume -= mp.FadeStep
		if current != nil && mp.Volume > 0 {
			current.SetVolume(mp.Volume)
			return
		}
		if current != nil {
			current.Pause()
			current.Rewind()
		}
		mp.Playing = ""
		mp.Volume = 0
		mp.FadeStep = 0
		m.start(mp)
		return
	}

	if current != nil && !current.IsPlaying() {
		current.Rewind()
		current.SetVolume(mp.Volume)
		current.Play()
	}
}

// start plays Target from the top. A track that cannot be loaded leaves the
// channel silent; Target still reports it so callers do not re-request.
func (m *MusicSystem) start(mp *component.MusicPlayer) {
	if mp.Target == "" {
		return
	}

	p := mp.Players[mp.Target]
	if p == nil {
		loaded, err := m.load(mp.Target)
		if err != nil {
			fmt.Printf("music: load %q: %v\n", mp.Target, err)
			return
		}
		mp.Players[mp.Target] = loaded
		p = loaded
	}

	mp.Playing = mp.Target
	mp.Volume = m.volumeFor(mp, mp.Target)
	p.Rewind()
	p.SetVolume(mp.Volume)
	p.Play()
}

func (m *MusicSystem) volumeFor(mp *component.MusicPlayer, track string) float64 {
	if v, ok := mp.TrackVolumes[track]; ok && v > 0 {
		return min(v, 1)
	}
	return defaultMusicVolume
}
