// RGB composites and single-band grayscale views
package algorithms

import (
	"fmt"
	"image"
	"math"

	"band-visualizer/internal/raster"
)

// BuildComposite normalizes three bands independently and stacks them as
// the red, green and blue channels.
func BuildComposite(ds *raster.Dataset, rIdx, gIdx, bIdx int) (*raster.Image, error) {
	planes := make([][]float32, 3)
	for i, idx := range []int{rIdx, gIdx, bIdx} {
		band, err := ds.Band(idx)
		if err != nil {
			return nil, fmt.Errorf("composite channel %d: %w", i, err)
		}
		planes[i] = Normalize(band).Values
	}

	return renderPixels(ds.Width(), ds.Height(), func(i int) (float64, float64, float64) {
		return float64(planes[0][i]), float64(planes[1][i]), float64(planes[2][i])
	})
}

// SingleBand renders one normalized band as grayscale promoted to RGB.
func SingleBand(ds *raster.Dataset, idx int) (*raster.Image, error) {
	band, err := ds.Band(idx)
	if err != nil {
		return nil, fmt.Errorf("single band: %w", err)
	}
	values := Normalize(band).Values

	return renderPixels(ds.Width(), ds.Height(), func(i int) (float64, float64, float64) {
		v := float64(values[i])
		return v, v, v
	})
}

// renderPixels builds an image from a per-pixel function returning channel
// values on the [0,1] scale.
func renderPixels(width, height int, pixel func(i int) (r, g, b float64)) (*raster.Image, error) {
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, off := 0, 0; i < width*height; i, off = i+1, off+4 {
		r, g, b := pixel(i)
		rgba.Pix[off] = toByte(r)
		rgba.Pix[off+1] = toByte(g)
		rgba.Pix[off+2] = toByte(b)
		rgba.Pix[off+3] = 0xff
	}
	return raster.FromRGBA(rgba)
}

// toByte maps v*255 onto [0,255], rounding half up. NaN maps to 0.
func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v *= 255
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
