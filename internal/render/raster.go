package render

import (
	"image"
	"image/color"
	"math"

	"cubetea/internal/scene"
	"cubetea/internal/shade"
)

// maxCircleRadius bounds the midpoint loop for circles projected from huge spheres.
const maxCircleRadius = 1 << 20

// Rasterize draws wireframe items over the camera background into a Viewport-sized image.
// Items are drawn in order, so back-to-front input leaves nearer edges on top.
func Rasterize(cam *scene.Camera, items []Item) *image.NRGBA {
	w, h := cam.Viewport[0], cam.Viewport[1]
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill(img, cam.Color())
	Draw(img, items)
	return img
}

// Draw plots items onto img without clearing it.
func Draw(img *image.NRGBA, items []Item) {
	for _, it := range items {
		c := toNRGBA(it.Color.Round())
		switch it.Kind {
		case Line:
			drawLine(img, it.From.X, it.From.Y, it.To.X, it.To.Y, c)
		case Circle:
			drawCircle(img, it.Center.X, it.Center.Y, it.Radius, c)
		}
	}
}

func toNRGBA(c shade.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func fill(img *image.NRGBA, c shade.Color) {
	px := toNRGBA(c)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, px)
		}
	}
}

func plot(img *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}

// drawLine clips the segment to the image (Liang-Barsky) and then walks it with Bresenham.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 float64, c color.NRGBA) {
	b := img.Bounds()
	var ok bool
	x0, y0, x1, y1, ok = clip(x0, y0, x1, y1, float64(b.Min.X), float64(b.Min.Y), float64(b.Max.X-1), float64(b.Max.Y-1))
	if !ok {
		return
	}
	ix0, iy0 := int(math.Round(x0)), int(math.Round(y0))
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))

	dx, dy := abs(ix1-ix0), -abs(iy1-iy0)
	sx, sy := 1, 1
	if ix0 > ix1 {
		sx = -1
	}
	if iy0 > iy1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(img, ix0, iy0, c)
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ix0 += sx
		}
		if e2 <= dx {
			e += dx
			iy0 += sy
		}
	}
}

func clip(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	if anyNaN(x0, y0, x1, y1) {
		return 0, 0, 0, 0, false
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// drawCircle is the midpoint circle algorithm.
func drawCircle(img *image.NRGBA, cx, cy, radius float64, c color.NRGBA) {
	if anyNaN(cx, cy, radius) || radius < 0 || radius > maxCircleRadius {
		return
	}
	b := img.Bounds()
	if cx+radius < float64(b.Min.X) || cx-radius > float64(b.Max.X) ||
		cy+radius < float64(b.Min.Y) || cy-radius > float64(b.Max.Y) {
		return
	}
	x0, y0, r := int(math.Round(cx)), int(math.Round(cy)), int(math.Round(radius))
	x, y := r, 0
	e := 1 - r
	for x >= y {
		plot(img, x0+x, y0+y, c)
		plot(img, x0+y, y0+x, c)
		plot(img, x0-y, y0+x, c)
		plot(img, x0-x, y0+y, c)
		plot(img, x0-x, y0-y, c)
		plot(img, x0-y, y0-x, c)
		plot(img, x0+y, y0-x, c)
		plot(img, x0+x, y0-y, c)
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
}

func anyNaN(v ...float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
