package algorithms

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"band-visualizer/internal/raster"
)

// newDataset builds a dataset of w x h bands from row-major sample slices.
func newDataset(t *testing.T, w, h int, names []string, bands ...[]float32) *raster.Dataset {
	t.Helper()
	list := make([]raster.Band, 0, len(bands))
	for _, samples := range bands {
		b, err := raster.NewBand(w, h, samples)
		require.NoError(t, err)
		list = append(list, b)
	}
	ds, err := raster.NewDataset(list, names)
	require.NoError(t, err)
	return ds
}

// newImage builds an image from RGB triples in row-major order.
func newImage(t *testing.T, w, h int, rgb ...[3]uint8) *raster.Image {
	t.Helper()
	require.Len(t, rgb, w*h)
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, p := range rgb {
		rgba.SetRGBA(i%w, i/w, color.RGBA{p[0], p[1], p[2], 255})
	}
	img, err := raster.FromRGBA(rgba)
	require.NoError(t, err)
	return img
}

func pixel(img *raster.Image, x, y int) [3]uint8 {
	r, g, b := img.RGB(x, y)
	return [3]uint8{r, g, b}
}
