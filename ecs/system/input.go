package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/candle/candle"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
)

var colorKeys = []struct {
	key   ebiten.Key
	color candle.Color
}{
	{ebiten.Key1, candle.Yellow},
	{ebiten.Key2, candle.Red},
	{ebiten.Key3, candle.Purple},
	{ebiten.Key4, candle.Blue},
}

type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	run := ebiten.IsKeyPressed(ebiten.KeyShift)
	resetPressed := inpututil.IsKeyJustPressed(ebiten.KeyR)

	colorPressed := false
	var color candle.Color
	for _, ck := range colorKeys {
		if inpututil.IsKeyJustPressed(ck.key) {
			colorPressed = true
			color = ck.color
		}
	}

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}

		run = run || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)
		resetPressed = resetPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.Run = run
		input.ResetPressed = resetPressed
		input.ColorPressed = colorPressed
		input.Color = color
	})
}
