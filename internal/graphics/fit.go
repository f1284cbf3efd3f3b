package graphics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// Fit places a w×h render centered in the window at the largest uniform scale that fits.
type Fit struct {
	X, Y  float32
	Scale float32
}

// FitTo computes the placement of a w×h image in a screenW×screenH window.
func FitTo(screenW, screenH, w, h int) Fit {
	if w <= 0 || h <= 0 {
		return Fit{}
	}
	sw, sh := float32(screenW), float32(screenH)
	fw, fh := float32(w), float32(h)
	s := math32.Max(0, math32.Min(sw/fw, sh/fh))
	return Fit{
		X:     math32.Floor((sw - fw*s) / 2),
		Y:     math32.Floor((sh - fh*s) / 2),
		Scale: s,
	}
}

// Point maps render pixel coordinates to the screen.
func (f Fit) Point(p r2.Vec) rl.Vector2 {
	return rl.NewVector2(f.X+float32(p.X)*f.Scale, f.Y+float32(p.Y)*f.Scale)
}

// Length scales a render-space length to the screen.
func (f Fit) Length(l float64) float32 {
	return float32(l) * f.Scale
}

// Rect is the screen rectangle covered by a w×h render.
func (f Fit) Rect(w, h int) rl.Rectangle {
	return rl.NewRectangle(f.X, f.Y, float32(w)*f.Scale, float32(h)*f.Scale)
}
