package render

import (
	"image"
	"image/color"

	"cubetea/internal/shade"
)

// Buffer is a packed RGB pixel sheet. Pixel (i, j) is column i, row j.
type Buffer struct {
	Width, Height int
	Pix           []uint8
}

func NewBuffer(w, h int) *Buffer {
	return &Buffer{Width: w, Height: h, Pix: make([]uint8, w*h*3)}
}

func (b *Buffer) offset(i, j int) int { return (j*b.Width + i) * 3 }

func (b *Buffer) At(i, j int) shade.Color {
	o := b.offset(i, j)
	return shade.Color{R: b.Pix[o], G: b.Pix[o+1], B: b.Pix[o+2]}
}

func (b *Buffer) Set(i, j int, c shade.Color) {
	o := b.offset(i, j)
	b.Pix[o], b.Pix[o+1], b.Pix[o+2] = c.R, c.G, c.B
}

// Image copies the buffer into an opaque NRGBA image.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for j := 0; j < b.Height; j++ {
		for i := 0; i < b.Width; i++ {
			c := b.At(i, j)
			img.SetNRGBA(i, j, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}
