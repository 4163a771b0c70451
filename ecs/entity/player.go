package entity

import (
	"fmt"

	"github.com/milk9111/candle/ecs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	ent, err := BuildEntity(w, "player.yaml")
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return ent, nil
}
