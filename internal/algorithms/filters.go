// Spectral index engine: named false-color and index filters
package algorithms

import (
	"errors"
	"fmt"

	"band-visualizer/internal/raster"
)

// minFilterBands is the band count every filter except Natural Color needs.
const minFilterBands = 4

// ndviEpsilon keeps the NDVI denominator off zero.
const ndviEpsilon = 1e-6

// ApplyFilter renders the filter kind over the dataset. Band roles are
// resolved from the dataset's names with positional fallback, and every band
// is normalized before the formula runs.
func ApplyFilter(ds *raster.Dataset, kind FilterKind) (*raster.Image, error) {
	info, ok := kind.Info()
	if !ok {
		return nil, fmt.Errorf("%w: %s", raster.ErrUnknownFilter, kind)
	}
	if kind == FilterNone {
		return nil, fmt.Errorf("%w: %q produces no image", raster.ErrUnknownFilter, info.Name)
	}
	if kind != FilterNaturalColor && ds.BandCount() < minFilterBands {
		return nil, fmt.Errorf("%w: %q needs at least %d bands, dataset has %d",
			raster.ErrInsufficientBands, info.Name, minFilterBands, ds.BandCount())
	}

	p := newPlaneSet(ds)
	pixel, err := filterPixelFunc(kind, p)
	if err != nil {
		return nil, fmt.Errorf("apply filter %q: %w", info.Name, err)
	}
	return renderPixels(ds.Width(), ds.Height(), pixel)
}

// filterPixelFunc resolves the planes a filter needs and returns its per-pixel formula.
func filterPixelFunc(kind FilterKind, p *planeSet) (func(i int) (float64, float64, float64), error) {
	switch kind {
	case FilterNaturalColor:
		red, green, blue, err := p.rgb()
		if err != nil {
			return nil, err
		}
		return func(i int) (float64, float64, float64) {
			return at(red, i), at(green, i), at(blue, i)
		}, nil

	case FilterVegetationHighlight:
		nir, red, green, err := p.three(RoleNIR, RoleRed, RoleGreen)
		if err != nil {
			return nil, err
		}
		return func(i int) (float64, float64, float64) {
			return at(nir, i), at(red, i), at(green, i)
		}, nil

	case FilterUrbanSoil:
		red, err := p.get(RoleRed)
		if err != nil {
			return nil, err
		}
		green, err := p.get(RoleGreen)
		if err != nil {
			return nil, err
		}
		swir, err := p.get(RoleSWIR)
		if errors.Is(err, raster.ErrMissingBand) {
			swir = red
		} else if err != nil {
			return nil, err
		}
		return func(i int) (float64, float64, float64) {
			return at(swir, i), at(red, i), at(green, i)
		}, nil

	case FilterWaterBodies:
		blue, nir, err := p.two(RoleBlue, RoleNIR)
		if err != nil {
			return nil, err
		}
		return gray(func(i int) float64 { return waterIndex(at(blue, i), at(nir, i)) }), nil

	case FilterHealthyVegetationContrast:
		nir, red, err := p.two(RoleNIR, RoleRed)
		if err != nil {
			return nil, err
		}
		return gray(func(i int) float64 { return at(nir, i) - at(red, i) }), nil

	case FilterNDVIEnhanced:
		nir, red, err := p.two(RoleNIR, RoleRed)
		if err != nil {
			return nil, err
		}
		return func(i int) (float64, float64, float64) {
			return ndviEnhanced(at(nir, i), at(red, i))
		}, nil

	case FilterSAVI:
		nir, red, err := p.two(RoleNIR, RoleRed)
		if err != nil {
			return nil, err
		}
		return gray(func(i int) float64 { return savi(at(nir, i), at(red, i)) }), nil

	case FilterEVI:
		nir, red, blue, err := p.three(RoleNIR, RoleRed, RoleBlue)
		if err != nil {
			return nil, err
		}
		return gray(func(i int) float64 { return evi(at(nir, i), at(red, i), at(blue, i)) }), nil
	}

	return nil, fmt.Errorf("%w: %s", raster.ErrUnknownFilter, kind)
}

func waterIndex(blue, nir float64) float64 { return blue - nir }

// ndviEnhanced returns (ndvi, ndvi², ndvi³), each clipped to [0,1].
func ndviEnhanced(nir, red float64) (float64, float64, float64) {
	ndvi := (nir - red) / (nir + red + ndviEpsilon)
	return clip01(ndvi), clip01(ndvi * ndvi), clip01(ndvi * ndvi * ndvi)
}

func savi(nir, red float64) float64 {
	return ((nir - red) / (nir + red + 0.5)) * 1.5
}

func evi(nir, red, blue float64) float64 {
	return 2.5 * (nir - red) / (nir + 6*red - 7.5*blue + 1)
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func at(plane []float32, i int) float64 { return float64(plane[i]) }

// gray promotes a scalar formula to an RGB pixel function.
func gray(f func(i int) float64) func(i int) (float64, float64, float64) {
	return func(i int) (float64, float64, float64) {
		v := f(i)
		return v, v, v
	}
}

// planeSet resolves and normalizes bands by role on first use.
type planeSet struct {
	ds     *raster.Dataset
	roles  BandRoleMap
	planes map[Role][]float32
}

func newPlaneSet(ds *raster.Dataset) *planeSet {
	return &planeSet{
		ds:     ds,
		roles:  NewBandRoleMap(ds.Names()),
		planes: make(map[Role][]float32),
	}
}

func (p *planeSet) get(role Role) ([]float32, error) {
	if plane, ok := p.planes[role]; ok {
		return plane, nil
	}

	idx, ok := p.roles.Resolve(role)
	if !ok {
		return nil, &raster.MissingBandError{Role: string(role)}
	}
	band, err := p.ds.Band(idx)
	if err != nil {
		return nil, err
	}
	if band.Width() != p.ds.Width() || band.Height() != p.ds.Height() {
		return nil, fmt.Errorf("%w: %s band is %dx%d, dataset is %dx%d", raster.ErrShapeMismatch,
			role, band.Width(), band.Height(), p.ds.Width(), p.ds.Height())
	}

	plane := Normalize(band).Values
	p.planes[role] = plane
	return plane, nil
}

func (p *planeSet) two(a, b Role) ([]float32, []float32, error) {
	pa, err := p.get(a)
	if err != nil {
		return nil, nil, err
	}
	pb, err := p.get(b)
	if err != nil {
		return nil, nil, err
	}
	return pa, pb, nil
}

func (p *planeSet) three(a, b, c Role) ([]float32, []float32, []float32, error) {
	pa, pb, err := p.two(a, b)
	if err != nil {
		return nil, nil, nil, err
	}
	pc, err := p.get(c)
	if err != nil {
		return nil, nil, nil, err
	}
	return pa, pb, pc, nil
}

func (p *planeSet) rgb() ([]float32, []float32, []float32, error) {
	return p.three(RoleRed, RoleGreen, RoleBlue)
}
