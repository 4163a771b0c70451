package system

import (
	"github.com/milk9111/candle/common"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
)

const defaultPlayerMoveSpeed = 3.0

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input) {
		moving := input.MoveX != 0
		player.Running = moving && input.Run

		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok || !moving {
			return
		}

		speed := player.MoveSpeed
		if speed <= 0 {
			speed = defaultPlayerMoveSpeed
		}
		if player.Running {
			mult := player.RunMultiplier
			if mult <= 0 {
				mult = 2
			}
			speed *= mult
		}
		t.X = common.Clamp(t.X+input.MoveX*speed, 0, common.BaseWidth)

		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.FacingLeft = input.MoveX < 0
		}
	})
}

// PlayerRunning reports whether any player entity is currently running.
func PlayerRunning(w *ecs.World) bool {
	running := false
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(_ ecs.Entity, player *component.Player) {
		running = running || player.Running
	})
	return running
}
