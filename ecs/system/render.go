package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
)

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	type drawable struct {
		e     ecs.Entity
		layer int
		t     *component.Transform
		s     *component.Sprite
	}
	var items []drawable
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		if s.Image == nil {
			return
		}
		layer := 0
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = l.Index
		}
		items = append(items, drawable{e: e, layer: layer, t: t, s: s})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	for _, it := range items {
		t, s := it.t, it.s

		img := s.Image
		if s.UseSource {
			sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image)
			if ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}

		if s.FacingLeft {
			sx = -sx
		}

		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Translate(t.X, t.Y)

		if params, ok := ecs.Get(w, it.e, component.AnimatorComponent.Kind()); ok && !params.Visual.Lit {
			op.ColorScale.Scale(0.35, 0.35, 0.4, 1)
		}
		if wf, ok := ecs.Get(w, it.e, component.WhiteFlashComponent.Kind()); ok && wf.On {
			op.ColorScale.Scale(2.5, 2.5, 2.5, 1)
		}

		screen.DrawImage(img, op)
	}
}
