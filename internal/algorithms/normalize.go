// Band normalization to the canonical [0,1] range
package algorithms

import (
	"math"

	"band-visualizer/internal/raster"
)

// normalizeEpsilon keeps near-constant bands away from a zero denominator.
const normalizeEpsilon = 1e-6

// NormalizedBand holds min-max scaled samples in [0,1], row-major.
type NormalizedBand struct {
	Width  int
	Height int
	Values []float32
}

// Normalize rescales a band to [0,1] by min-max scaling. A constant band
// normalizes to all zeros.
func Normalize(band raster.Band) NormalizedBand {
	samples := band.Samples()
	out := NormalizedBand{
		Width:  band.Width(),
		Height: band.Height(),
		Values: make([]float32, len(samples)),
	}
	if len(samples) == 0 {
		return out
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		v := float64(s)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	span := hi - lo
	if span == 0 {
		return out
	}

	denom := span + normalizeEpsilon
	for i, s := range samples {
		out.Values[i] = float32((float64(s) - lo) / denom)
	}
	return out
}
