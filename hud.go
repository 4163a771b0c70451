package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/system"
	"golang.org/x/image/font/basicfont"
)

const hudLineHeight = 18

type hud struct {
	face ebtext.Face
}

func newHUD() *hud {
	return &hud{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

// Draw prints the first candle's state in the top right corner.
func (h *hud) Draw(screen *ebiten.Image, w *ecs.World) {
	state, ok := system.FirstCandleState(w)
	if !ok {
		return
	}

	lines := []string{
		fmt.Sprintf("candle: %s", state.Color),
		fmt.Sprintf("charge: %d", state.Charge),
		fmt.Sprintf("phase:  %s", state.Phase),
		fmt.Sprintf("burn:   %.2fs", state.Elapsed),
	}
	if state.Frozen {
		lines = append(lines, "frozen")
	}

	bounds := screen.Bounds()
	for i, line := range lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(float64(bounds.Dx()-160), float64(12+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(color.White)
		ebtext.Draw(screen, line, h.face, op)
	}
}
