package system

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
)

const (
	refillFlashFrames   = 18
	refillFlashInterval = 3
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		if anim.Sheet == nil {
			return
		}

		if params, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
			a.applyParams(w, e, anim, params)
		} else if !a.advance(anim) {
			return
		}

		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 {
			return
		}

		// Calculate subimage rect
		x := def.ColStart*def.FrameW + anim.Frame*def.FrameW
		y := def.Row * def.FrameH
		rect := image.Rect(x, y, x+def.FrameW, y+def.FrameH)
		sprite.Image = anim.Sheet.SubImage(rect).(*ebiten.Image)
	})
}

// applyParams picks the row from the visual color and the column from the
// remaining charge: full charge is column 0, empty is the last column.
func (a *AnimationSystem) applyParams(w *ecs.World, e ecs.Entity, anim *component.Animation, params *component.Animator) {
	if _, ok := anim.Defs[params.Visual.Color.String()]; ok {
		anim.Current = params.Visual.Color.String()
	}
	anim.Playing = false

	def := anim.Defs[anim.Current]
	anim.Frame = ChargeFrame(params.Charge, params.MaxCharge, def.FrameCount)

	if params.Refill {
		params.Refill = false
		_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
			Frames:   refillFlashFrames,
			Interval: refillFlashInterval,
			On:       true,
		})
	}
}

// ChargeFrame maps charge in [0,max] onto frameCount columns.
func ChargeFrame(charge, max, frameCount int) int {
	if frameCount <= 1 {
		return 0
	}
	if max <= 0 || charge <= 0 {
		return frameCount - 1
	}
	if charge >= max {
		return 0
	}
	return (max - charge) * (frameCount - 1) / max
}

func (a *AnimationSystem) advance(anim *component.Animation) bool {
	if !anim.Playing {
		return false
	}
	def, ok := anim.Defs[anim.Current]
	if !ok || def.FrameCount <= 0 {
		return false
	}

	// Advance frame every N ticks based on FPS and 60 TPS
	ticksPerFrame := 1
	if def.FPS > 0 {
		ticksPerFrame = int(60.0 / def.FPS)
	}
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}

	anim.FrameTimer++
	if anim.FrameTimer >= ticksPerFrame {
		anim.FrameTimer = 0
		anim.Frame++
		if anim.Frame >= def.FrameCount {
			if def.Loop {
				anim.Frame = 0
			} else {
				anim.Frame = def.FrameCount - 1
				anim.Playing = false
			}
		}
	}
	return true
}
