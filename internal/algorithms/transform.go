// Geometric edits that produce a new base image
package algorithms

import (
	"fmt"
	"image"

	"band-visualizer/internal/raster"
)

// Rotate90 rotates counter-clockwise by 90 degrees, swapping width and height.
func Rotate90(img *raster.Image) (*raster.Image, error) {
	w, h := img.Width(), img.Height()
	src := img.Pix()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := y*4*w + 4*x
			d := dst.PixOffset(y, w-1-x)
			copy(dst.Pix[d:d+4], src[s:s+4])
		}
	}
	return raster.FromRGBA(dst)
}

// CropCenter keeps the centred square whose side is half the shorter edge.
func CropCenter(img *raster.Image) (*raster.Image, error) {
	w, h := img.Width(), img.Height()
	side := min(w, h) / 2
	if side == 0 {
		return nil, fmt.Errorf("image %dx%d is too small to crop", w, h)
	}
	left := (w - side) / 2
	top := (h - side) / 2

	src := img.Pix()
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		s := (top+y)*4*w + 4*left
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src[s:s+4*side])
	}
	return raster.FromRGBA(dst)
}
