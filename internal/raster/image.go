// Immutable 8-bit RGB raster used for display, undo and save
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
)

// Image is an 8-bit RGB image. It has no mutating methods; every operation
// that changes pixels builds a new Image.
type Image struct {
	rgba *image.RGBA
}

// FromRGBA adopts rgba as the backing store of a new Image. The caller must
// not write to rgba afterwards. Alpha is forced opaque.
func FromRGBA(rgba *image.RGBA) (*Image, error) {
	if rgba == nil {
		return nil, fmt.Errorf("cannot build image from nil raster")
	}
	b := rgba.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", b.Dx(), b.Dy())
	}
	if b.Min != (image.Point{}) {
		shifted := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			copy(shifted.Pix[y*shifted.Stride:y*shifted.Stride+4*b.Dx()], rgba.Pix[rgba.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		rgba = shifted
	}
	for i := 3; i < len(rgba.Pix); i += 4 {
		rgba.Pix[i] = 0xff
	}
	return &Image{rgba: rgba}, nil
}

func (img *Image) Width() int  { return img.rgba.Rect.Dx() }
func (img *Image) Height() int { return img.rgba.Rect.Dy() }

// RGB returns the channels of the pixel at column x, row y.
func (img *Image) RGB(x, y int) (r, g, b uint8) {
	i := img.rgba.PixOffset(x, y)
	return img.rgba.Pix[i], img.rgba.Pix[i+1], img.rgba.Pix[i+2]
}

// Pix exposes the RGBA backing bytes (stride 4*Width, alpha always 0xff)
// for read-only traversal.
func (img *Image) Pix() []uint8 { return img.rgba.Pix }

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	rgba := image.NewRGBA(img.rgba.Rect)
	copy(rgba.Pix, img.rgba.Pix)
	return &Image{rgba: rgba}
}

// ToRGBA returns a mutable copy for collaborators that need one.
func (img *Image) ToRGBA() *image.RGBA {
	return img.Clone().rgba
}

// Equal reports whether both images have the same size and bytes.
func (img *Image) Equal(other *Image) bool {
	if img == nil || other == nil {
		return img == other
	}
	return img.rgba.Rect == other.rgba.Rect && bytes.Equal(img.rgba.Pix, other.rgba.Pix)
}

// Implement golang's image.Image interface
func (img *Image) ColorModel() color.Model { return color.RGBAModel }
func (img *Image) Bounds() image.Rectangle { return img.rgba.Rect }
func (img *Image) At(x, y int) color.Color { return img.rgba.RGBAAt(x, y) }

func (img *Image) String() string {
	return fmt.Sprintf("Image[%dx%d]", img.Width(), img.Height())
}
