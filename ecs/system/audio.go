package system

import (
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
)

// AudioSystem plays and stops one-shot clips flagged on Audio components.
// Stops are handled first so a clip flagged both ways restarts.
type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Stop), len(audioComp.Players))

		for i := 0; i < count; i++ {
			if !audioComp.Stop[i] {
				continue
			}
			audioComp.Stop[i] = false

			player := audioComp.Players[i]
			if player != nil && player.IsPlaying() {
				player.Pause()
			}
		}

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false

			player := audioComp.Players[i]
			if player == nil {
				continue
			}
			vol := 1.0
			if i < len(audioComp.Volume) {
				vol = audioComp.Volume[i]
			}
			// Retrigger from the start even if the clip is still sounding.
			player.SetVolume(vol)
			player.Rewind()
			player.Play()
		}
	})
}
