package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"

	"cubetea/internal/commands"
)

func TestFitTo(t *testing.T) {
	f := FitTo(800, 600, 480, 480)
	assert.InDelta(t, 1.25, f.Scale, 1e-6)
	assert.Equal(t, float32(100), f.X)
	assert.Equal(t, float32(0), f.Y)

	p := f.Point(r2.Vec{X: 240, Y: 240})
	assert.InDelta(t, 400, p.X, 1e-4)
	assert.InDelta(t, 300, p.Y, 1e-4)
	assert.InDelta(t, 12.5, f.Length(10), 1e-6)

	r := f.Rect(480, 480)
	assert.InDelta(t, 600, r.Width, 1e-4)
	assert.InDelta(t, 600, r.Height, 1e-4)

	assert.Equal(t, Fit{}, FitTo(800, 600, 0, 480))
	assert.Equal(t, float32(0), FitTo(0, 0, 10, 10).Scale)
}

func TestNextIndex(t *testing.T) {
	assert.Equal(t, 0, nextIndex(-1, 3))
	assert.Equal(t, 2, nextIndex(1, 3))
	assert.Equal(t, -1, nextIndex(2, 3))
	assert.Equal(t, -1, nextIndex(-1, 0))
	assert.Equal(t, "select -index -1", selectLine(-1))
}

func TestBindingsParse(t *testing.T) {
	seen := map[int32]bool{}
	for _, b := range Bindings {
		assert.False(t, seen[b.Key], "duplicate key %d", b.Key)
		seen[b.Key] = true
		args, err := commands.Parse(b.Line)
		assert.NoError(t, err)
		assert.NotEmpty(t, args)
	}
}
