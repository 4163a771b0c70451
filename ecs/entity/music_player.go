package entity

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/candle/assets"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
	"github.com/milk9111/candle/prefabs"
)

func NewMusicPlayer(w *ecs.World) (ecs.Entity, error) {
	ent, err := BuildEntity(w, "music_player.yaml")
	if err != nil {
		return 0, fmt.Errorf("music player: %w", err)
	}
	return ent, nil
}

type musicPlayerSpec = prefabs.MusicPlayerComponentSpec

// addMusicPlayer preloads listed tracks. A track that fails to load is
// skipped; the music system retries it lazily on request.
func addMusicPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[musicPlayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode music player spec: %w", err)
	}

	players := make(map[string]*audio.Player, len(spec.Tracks))
	volumes := make(map[string]float64, len(spec.Tracks))
	for _, track := range spec.Tracks {
		if track.Volume > 0 {
			volumes[track.File] = track.Volume
		}
		p, err := assets.LoadAudioPlayer(track.File)
		if err != nil {
			log.Printf("music: preload %q: %v", track.File, err)
			continue
		}
		players[track.File] = p
	}

	return ecs.Add(w, e, component.MusicPlayerComponent.Kind(), &component.MusicPlayer{
		Players:      players,
		TrackVolumes: volumes,
	})
}
