package shade

import "math"

const (
	// VarianceFactor is how much color varies with the camera angle to the surface.
	VarianceFactor = 0.4
	// SpecularFactor is how much white is mixed in as the surface faces the camera.
	SpecularFactor = 0.4
)

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

var (
	// Black is returned for incidences that do not hit a visible surface.
	Black = Color{}
	// BackgroundDefault is the default camera (background) color.
	BackgroundDefault = Color{20, 20, 20}
	// ObjectDefault is the default primitive color.
	ObjectDefault = Color{128, 128, 128}
)

// RGB returns c as floating-point channels.
func (c Color) RGB() RGB {
	return RGB{float64(c.R), float64(c.G), float64(c.B)}
}

// Array returns c as [r, g, b].
func (c Color) Array() [3]float64 {
	return [3]float64{float64(c.R), float64(c.G), float64(c.B)}
}

// RGB stores unclamped color channels on the 0..255 scale.
type RGB struct {
	R, G, B float64
}

func (a RGB) Add(b RGB) RGB     { return RGB{a.R + b.R, a.G + b.G, a.B + b.B} }
func (a RGB) Mul(s float64) RGB { return RGB{a.R * s, a.G * s, a.B * s} }

// Lerp blends a toward b by f (f=0 gives a, f=1 gives b).
func (a RGB) Lerp(b RGB, f float64) RGB {
	return a.Mul(1 - f).Add(b.Mul(f))
}

// Clamp clips each channel to [0,255].
func (a RGB) Clamp() RGB {
	return RGB{clamp255(a.R), clamp255(a.G), clamp255(a.B)}
}

// Round clamps each channel and rounds it to the nearest integer, halves to even.
func (a RGB) Round() Color {
	c := a.Clamp()
	return Color{uint8(math.RoundToEven(c.R)), uint8(math.RoundToEven(c.G)), uint8(math.RoundToEven(c.B))}
}

// ColorFromArray rounds and clamps persisted [r, g, b] channels.
func ColorFromArray(a [3]float64) Color {
	return RGB{a[0], a[1], a[2]}.Round()
}

func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Tiers are the three precomputed shades of a base color. They only depend on the base
// color, so entities cache them and rebuild them whenever the base color changes.
type Tiers struct {
	Low, Mid, High RGB
}

// NewTiers derives the low/mid/high shades of base.
func NewTiers(base Color) Tiers {
	c := base.RGB()
	v := VarianceFactor / 2
	white := RGB{255, 255, 255}
	return Tiers{
		High: c.Mul(1 + v).Add(white.Mul(SpecularFactor)).Clamp(),
		Mid:  c.Add(white.Mul(0.5 * SpecularFactor)).Clamp(),
		Low:  c.Mul(1 - v).Clamp(),
	}
}

// At maps an incidence to a color. Negative incidence means no visible surface and gives
// black; [0, 0.5) blends low toward mid and [0.5, 1] blends mid toward high.
func (t Tiers) At(incidence float64) RGB {
	switch {
	case incidence < 0:
		return Black.RGB()
	case incidence < 0.5:
		return t.Low.Lerp(t.Mid, 2*incidence)
	default:
		return t.Mid.Lerp(t.High, 2*(incidence-0.5))
	}
}
