package shade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTiers(t *testing.T) {
	tiers := NewTiers(Color{100, 50, 0})
	assert.Equal(t, Color{222, 162, 102}, tiers.High.Round())
	assert.Equal(t, Color{151, 101, 51}, tiers.Mid.Round())
	assert.Equal(t, Color{80, 40, 0}, tiers.Low.Round())
}

func TestNewTiersClips(t *testing.T) {
	tiers := NewTiers(Color{255, 255, 255})
	assert.Equal(t, RGB{255, 255, 255}, tiers.High)
	assert.Equal(t, RGB{255, 255, 255}, tiers.Mid)
	assert.InDelta(t, 204, tiers.Low.R, 1e-9)
}

func TestAtEndpoints(t *testing.T) {
	tiers := NewTiers(Color{100, 50, 0})
	assert.Equal(t, Black.RGB(), tiers.At(-1))
	assert.Equal(t, tiers.Low, tiers.At(0))
	assert.Equal(t, tiers.High, tiers.At(1))
}

func TestAtContinuousAtHalf(t *testing.T) {
	tiers := NewTiers(Color{10, 200, 90})
	below := tiers.At(0.5 - 1e-12)
	at := tiers.At(0.5)
	assert.InDelta(t, tiers.Mid.R, below.R, 1e-6)
	assert.InDelta(t, tiers.Mid.G, below.G, 1e-6)
	assert.InDelta(t, tiers.Mid.B, below.B, 1e-6)
	assert.Equal(t, tiers.Mid, at)
}

func TestRoundClamps(t *testing.T) {
	assert.Equal(t, Color{0, 255, 128}, RGB{-3, 300, 127.5}.Round())
	assert.Equal(t, Color{1, 2, 3}, ColorFromArray([3]float64{1.2, 2, 2.6}))
}

func TestRoundHalvesToEven(t *testing.T) {
	assert.Equal(t, Color{0, 2, 4}, RGB{0.5, 2.5, 3.5}.Round())
	assert.Equal(t, Color{254, 2, 1}, RGB{254.5, 1.5000001, 0.5000001}.Round())
	// Halfway from low to mid is exactly 12.5.
	tiers := Tiers{Low: RGB{10, 10, 10}, Mid: RGB{15, 15, 15}}
	assert.Equal(t, Color{12, 12, 12}, tiers.At(0.25).Round())
}
