package entity

import (
	"fmt"

	"github.com/milk9111/candle/assets"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
	"github.com/milk9111/candle/ecs/render"
	"github.com/milk9111/candle/prefabs"
)

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   orOne(spec.ScaleX),
		ScaleY:   orOne(spec.ScaleY),
		Rotation: spec.Rotation,
	})
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	if _, ok := spec.Defs[spec.Current]; !ok && spec.Current != "" {
		return fmt.Errorf("animation %q not in defs", spec.Current)
	}
	sheet, err := render.LoadImage(spec.Sheet)
	if err != nil {
		return fmt.Errorf("load animation sheet %q: %w", spec.Sheet, err)
	}

	anim := &component.Animation{
		Sheet:   sheet,
		Defs:    make(map[string]component.AnimationDef, len(spec.Defs)),
		Current: spec.Current,
		Frame:   spec.Frame,
		Playing: spec.Playing,
	}
	for name, d := range spec.Defs {
		anim.Defs[name] = component.AnimationDef{
			Name:       name,
			Row:        d.Row,
			ColStart:   d.ColStart,
			FrameCount: d.FrameCount,
			FrameW:     d.FrameW,
			FrameH:     d.FrameH,
			FPS:        d.FPS,
			Loop:       d.Loop,
		}
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), anim)
}

// addSprite loads a still image, or leaves the image to the animation system
// when the entity is animated.
func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	sprite := &component.Sprite{
		OriginX:    spec.OriginX,
		OriginY:    spec.OriginY,
		FacingLeft: spec.FacingLeft,
	}
	if spec.Image != "" {
		if sprite.Image, err = render.LoadImage(spec.Image); err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
	}

	if spec.CenterOriginIfZero && sprite.OriginX == 0 && sprite.OriginY == 0 {
		fw, fh := spriteFrameSize(w, e, sprite)
		sprite.OriginX, sprite.OriginY = float64(fw)/2, float64(fh)/2
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), sprite)
}

func spriteFrameSize(w *ecs.World, e ecs.Entity, sprite *component.Sprite) (int, int) {
	if sprite.Image != nil {
		b := sprite.Image.Bounds()
		return b.Dx(), b.Dy()
	}
	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok {
		return 0, 0
	}
	def := anim.Defs[anim.Current]
	return def.FrameW, def.FrameH
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

// addAudio loads every clip up front; a missing clip fails the prefab.
func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AudioComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}

	clips := &component.Audio{}
	for i, clip := range spec.Clips {
		player, err := assets.LoadAudioPlayer(clip.File)
		if err != nil {
			return fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
		}
		vol := clip.Volume
		if vol <= 0 {
			vol = 1
		}
		clips.Names = append(clips.Names, clip.Name)
		clips.Players = append(clips.Players, player)
		clips.Volume = append(clips.Volume, vol)
	}
	clips.Play = make([]bool, len(clips.Names))
	clips.Stop = make([]bool, len(clips.Names))

	for _, name := range spec.Autoplay {
		if i := clips.Index(name); i >= 0 {
			clips.Play[i] = true
		}
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), clips)
}
