// Luminance measures over rendered images
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"band-visualizer/internal/raster"
)

// Luma returns the ITU-R 601-2 luma of an 8-bit RGB triple, rounded to the
// nearest integer level.
func Luma(r, g, b uint8) float64 {
	return math.Floor((299*float64(r)+587*float64(g)+114*float64(b))/1000 + 0.5)
}

// Lumas returns the luma of every pixel in row-major order.
func Lumas(img *raster.Image) []float64 {
	pix := img.Pix()
	result := make([]float64, 0, len(pix)/4)
	for i := 0; i+3 < len(pix); i += 4 {
		result = append(result, Luma(pix[i], pix[i+1], pix[i+2]))
	}
	return result
}

// MeanLuma returns the average luma of img.
func MeanLuma(img *raster.Image) float64 {
	lumas := Lumas(img)
	if len(lumas) == 0 {
		return 0
	}
	return stat.Mean(lumas, nil)
}
