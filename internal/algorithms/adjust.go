// Non-destructive brightness/contrast/sharpness/zoom pipeline
package algorithms

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"band-visualizer/internal/metrics"
	"band-visualizer/internal/raster"
)

// ErrInvalidAdjustment is returned for non-positive or non-finite factors.
var ErrInvalidAdjustment = errors.New("invalid adjustment")

// Adjustment holds the live display factors. 1.0 leaves the image unchanged.
type Adjustment struct {
	Brightness float64 `json:"brightness" yaml:"brightness"`
	Contrast   float64 `json:"contrast" yaml:"contrast"`
	Sharpness  float64 `json:"sharpness" yaml:"sharpness"`
	Zoom       float64 `json:"zoom" yaml:"zoom"`
}

// IdentityAdjustment returns the no-op adjustment.
func IdentityAdjustment() Adjustment {
	return Adjustment{Brightness: 1, Contrast: 1, Sharpness: 1, Zoom: 1}
}

// Validate checks that every factor is a positive finite number.
func (a Adjustment) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"brightness", a.Brightness},
		{"contrast", a.Contrast},
		{"sharpness", a.Sharpness},
		{"zoom", a.Zoom},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidAdjustment, f.name, f.value)
		}
	}
	return nil
}

// Render applies brightness, contrast, sharpness and zoom, in that order,
// to a fresh copy of base. base is never modified, so repeated calls with
// the same adjustment return identical bytes.
func Render(base *raster.Image, adj Adjustment) (*raster.Image, error) {
	if base == nil {
		return nil, fmt.Errorf("no base image to render")
	}
	if err := adj.Validate(); err != nil {
		return nil, err
	}

	img := base
	var err error
	if adj.Brightness != 1 {
		if img, err = Brightness(img, adj.Brightness); err != nil {
			return nil, fmt.Errorf("brightness: %w", err)
		}
	}
	if adj.Contrast != 1 {
		if img, err = Contrast(img, adj.Contrast); err != nil {
			return nil, fmt.Errorf("contrast: %w", err)
		}
	}
	if adj.Sharpness != 1 {
		if img, err = Sharpness(img, adj.Sharpness); err != nil {
			return nil, fmt.Errorf("sharpness: %w", err)
		}
	}
	if adj.Zoom != 1 {
		if img, err = Zoom(img, adj.Zoom); err != nil {
			return nil, fmt.Errorf("zoom: %w", err)
		}
	}
	if img == base {
		return base.Clone(), nil
	}
	return img, nil
}

// Brightness scales every channel by factor (a blend towards black).
func Brightness(img *raster.Image, factor float64) (*raster.Image, error) {
	return blendWith(img, factor, func(_, _ int, _ int) float64 { return 0 })
}

// Contrast scales every channel around the image's mean luma.
func Contrast(img *raster.Image, factor float64) (*raster.Image, error) {
	mean := math.Floor(metrics.MeanLuma(img) + 0.5)
	return blendWith(img, factor, func(_, _ int, _ int) float64 { return mean })
}

// smoothKernel is the 3x3 smoothing kernel the sharpness step blends against.
var smoothKernel = [3][3]float64{
	{1, 1, 1},
	{1, 5, 1},
	{1, 1, 1},
}

const smoothKernelSum = 13

// Sharpness blends the image with a smoothed copy of itself: factors below
// 1 soften, above 1 sharpen. Border pixels are left as they are.
func Sharpness(img *raster.Image, factor float64) (*raster.Image, error) {
	w, h := img.Width(), img.Height()
	pix := img.Pix()
	stride := 4 * w

	return blendWith(img, factor, func(x, y, c int) float64 {
		if x == 0 || y == 0 || x == w-1 || y == h-1 {
			return float64(pix[y*stride+4*x+c])
		}
		sum := 0.0
		for ky := -1; ky <= 1; ky++ {
			for kx := -1; kx <= 1; kx++ {
				sum += smoothKernel[ky+1][kx+1] * float64(pix[(y+ky)*stride+4*(x+kx)+c])
			}
		}
		return math.Floor(sum/smoothKernelSum + 0.5)
	})
}

// Zoom resamples with nearest neighbour to round(w*factor) x round(h*factor),
// never below 1x1.
func Zoom(img *raster.Image, factor float64) (*raster.Image, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: zoom must be positive, got %v", ErrInvalidAdjustment, factor)
	}
	w := max(1, int(math.Round(float64(img.Width())*factor)))
	h := max(1, int(math.Round(float64(img.Height())*factor)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return raster.FromRGBA(dst)
}

// blendWith computes degenerate + factor*(pixel - degenerate) per channel,
// where degenerate is supplied per pixel and channel.
func blendWith(img *raster.Image, factor float64, degenerate func(x, y, c int) float64) (*raster.Image, error) {
	w, h := img.Width(), img.Height()
	src := img.Pix()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := y*4*w + 4*x
			for c := 0; c < 3; c++ {
				d := degenerate(x, y, c)
				dst.Pix[off+c] = clampByte(d + factor*(float64(src[off+c])-d))
			}
			dst.Pix[off+3] = 0xff
		}
	}
	return raster.FromRGBA(dst)
}

func clampByte(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Floor(v + 0.5))
}
