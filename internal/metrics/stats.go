// Per-band summary statistics
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"band-visualizer/internal/raster"
)

// BandStats summarizes the raw samples of one band.
type BandStats struct {
	Name     string  `json:"name"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Constant bool    `json:"constant"`
}

func (s BandStats) String() string {
	return fmt.Sprintf("%s: min %.4g, max %.4g, mean %.4g, std %.4g", s.Name, s.Min, s.Max, s.Mean, s.StdDev)
}

// ComputeBandStats computes min, max, mean and population standard deviation.
func ComputeBandStats(name string, band raster.Band) BandStats {
	samples := band.Samples()
	if len(samples) == 0 {
		return BandStats{Name: name, Constant: true}
	}

	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = float64(s)
	}

	mean, std := stat.PopMeanStdDev(values, nil)
	lo, hi := floats.Min(values), floats.Max(values)
	return BandStats{
		Name:     name,
		Min:      lo,
		Max:      hi,
		Mean:     mean,
		StdDev:   std,
		Constant: hi == lo,
	}
}

// DescribeDataset returns the stats of every band in dataset order.
func DescribeDataset(ds *raster.Dataset) []BandStats {
	names := ds.Names()
	result := make([]BandStats, 0, ds.BandCount())
	for i := 0; i < ds.BandCount(); i++ {
		band, err := ds.Band(i)
		if err != nil {
			continue
		}
		result = append(result, ComputeBandStats(names[i], band))
	}
	return result
}
