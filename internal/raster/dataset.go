// Multi-band raster dataset as handed over by a decoder
package raster

import (
	"fmt"
	"strings"
)

// Band is one 2-D grid of raw samples stored row-major as float32.
type Band struct {
	width   int
	height  int
	samples []float32
}

// NewBand wraps row-major samples. The band takes ownership of the slice.
func NewBand(width, height int, samples []float32) (Band, error) {
	if width <= 0 || height <= 0 {
		return Band{}, fmt.Errorf("invalid band dimensions: %dx%d", width, height)
	}
	if len(samples) != width*height {
		return Band{}, fmt.Errorf("%w: %d samples for %dx%d band", ErrShapeMismatch, len(samples), width, height)
	}
	return Band{width: width, height: height, samples: samples}, nil
}

func (b Band) Width() int  { return b.width }
func (b Band) Height() int { return b.height }
func (b Band) Len() int    { return len(b.samples) }

// At returns the sample at column x, row y.
func (b Band) At(x, y int) float32 { return b.samples[y*b.width+x] }

// Samples exposes the backing slice for read-only iteration. Callers must
// not modify it: datasets are shared by every derivation.
func (b Band) Samples() []float32 { return b.samples }

// Dataset is an ordered, immutable set of equally shaped bands with display names.
type Dataset struct {
	bands  []Band
	names  []string
	width  int
	height int
}

// NewDataset validates that all bands share one shape and fills in
// "Band N" labels for missing or blank names.
func NewDataset(bands []Band, names []string) (*Dataset, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: dataset has no bands", ErrInsufficientBands)
	}

	width, height := bands[0].Width(), bands[0].Height()
	for i, b := range bands {
		if b.Width() != width || b.Height() != height {
			return nil, fmt.Errorf("%w: band %d is %dx%d, band 1 is %dx%d",
				ErrShapeMismatch, i+1, b.Width(), b.Height(), width, height)
		}
	}

	return &Dataset{
		bands:  append([]Band(nil), bands...),
		names:  DefaultBandNames(len(bands), names),
		width:  width,
		height: height,
	}, nil
}

// DefaultBandNames returns count names, taking each non-blank entry of names
// and substituting "Band N" (1-based) everywhere else.
func DefaultBandNames(count int, names []string) []string {
	result := make([]string, count)
	for i := range result {
		if i < len(names) && strings.TrimSpace(names[i]) != "" {
			result[i] = names[i]
			continue
		}
		result[i] = fmt.Sprintf("Band %d", i+1)
	}
	return result
}

func (d *Dataset) BandCount() int { return len(d.bands) }
func (d *Dataset) Width() int     { return d.width }
func (d *Dataset) Height() int    { return d.height }

// Band returns the band at index i.
func (d *Dataset) Band(i int) (Band, error) {
	if i < 0 || i >= len(d.bands) {
		return Band{}, fmt.Errorf("%w: %d (dataset has %d bands)", ErrInvalidBandIndex, i, len(d.bands))
	}
	return d.bands[i], nil
}

// Names returns a copy of the band display names.
func (d *Dataset) Names() []string {
	return append([]string(nil), d.names...)
}
