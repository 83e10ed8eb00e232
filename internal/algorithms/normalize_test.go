package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"band-visualizer/internal/raster"
)

func TestNormalizeConstantBandIsZero(t *testing.T) {
	for _, v := range []float32{0, 7, -3.5, 65535} {
		b, err := raster.NewBand(3, 2, []float32{v, v, v, v, v, v})
		require.NoError(t, err)

		n := Normalize(b)
		assert.Equal(t, 3, n.Width)
		assert.Equal(t, 2, n.Height)
		assert.Equal(t, make([]float32, 6), n.Values)
	}
}

func TestNormalizeRange(t *testing.T) {
	b, err := raster.NewBand(4, 1, []float32{100, 350, 600, 225})
	require.NoError(t, err)

	n := Normalize(b)
	for _, v := range n.Values {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
	assert.Equal(t, float32(0), n.Values[0])
	assert.InDelta(t, 1, n.Values[2], 1e-5)
	assert.InDelta(t, 0.5, n.Values[1], 1e-5)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	b, err := raster.NewBand(3, 1, []float32{-1, 0.25, 9})
	require.NoError(t, err)
	assert.Equal(t, Normalize(b), Normalize(b))
}
