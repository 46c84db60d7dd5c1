package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRangeAndLattice(t *testing.T) {
	for i := 0; i < 200; i++ {
		x := float32(i) * 0.37
		y := float32(i) * 0.71
		v := Value(x, y, 7)
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
	// on lattice points value noise is the hash itself
	assert.Equal(t, hash2D(3, 4, 7), Value(3, 4, 7))
	assert.Equal(t, Value(1.25, 2.5, 9), Value(1.25, 2.5, 9))
}

func TestFractal(t *testing.T) {
	assert.Equal(t, float32(0), Fractal(1, 1, 1, 0, 2, 0.5))
	assert.Equal(t, Value(2, 3, 5), Fractal(2, 3, 5, 1, 2, 0.5))
	f := Fractal(0.3, 0.9, 5, 4, 2, 0.5)
	assert.GreaterOrEqual(t, f, float32(0))
	assert.LessOrEqual(t, f, float32(1))
}

func TestImage(t *testing.T) {
	opts := Options{Width: 16, Height: 8, Seed: 42}
	a := Image(opts)
	b := Image(opts)
	require.Equal(t, 16, a.Bounds().Dx())
	require.Equal(t, 8, a.Bounds().Dy())
	assert.Equal(t, a.Pix, b.Pix)

	var rg bool
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			c := a.RGBAAt(x, y)
			assert.Equal(t, uint8(255), c.A)
			rg = rg || c.R != c.G
		}
	}
	assert.True(t, rg, "channels should be independent")

	d := Image(Options{Seed: 1})
	assert.Equal(t, 256, d.Bounds().Dx())
}
