package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBand(t *testing.T, w, h int, samples ...float32) Band {
	t.Helper()
	b, err := NewBand(w, h, samples)
	require.NoError(t, err)
	return b
}

func TestNewBandRejectsWrongSampleCount(t *testing.T) {
	_, err := NewBand(2, 2, []float32{1, 2, 3})
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewBand(0, 2, nil)
	require.Error(t, err)
}

func TestNewDatasetShapeMismatch(t *testing.T) {
	_, err := NewDataset([]Band{
		mustBand(t, 2, 1, 1, 2),
		mustBand(t, 1, 2, 1, 2),
	}, nil)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNewDatasetNeedsBands(t *testing.T) {
	_, err := NewDataset(nil, nil)
	require.ErrorIs(t, err, ErrInsufficientBands)
}

func TestDefaultBandNames(t *testing.T) {
	ds, err := NewDataset([]Band{
		mustBand(t, 1, 1, 1),
		mustBand(t, 1, 1, 2),
		mustBand(t, 1, 1, 3),
	}, []string{"Red", "  "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Red", "Band 2", "Band 3"}, ds.Names())

	names := ds.Names()
	names[0] = "changed"
	assert.Equal(t, "Red", ds.Names()[0])
}

func TestDatasetBandIndex(t *testing.T) {
	ds, err := NewDataset([]Band{mustBand(t, 2, 1, 4, 5)}, nil)
	require.NoError(t, err)

	b, err := ds.Band(0)
	require.NoError(t, err)
	assert.Equal(t, float32(5), b.At(1, 0))

	_, err = ds.Band(1)
	require.ErrorIs(t, err, ErrInvalidBandIndex)
	_, err = ds.Band(-1)
	require.ErrorIs(t, err, ErrInvalidBandIndex)
}

func TestImageIsOpaqueAndCloneIsDeep(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.SetRGBA(0, 0, color.RGBA{10, 20, 30, 0})
	img, err := FromRGBA(rgba)
	require.NoError(t, err)

	r, g, b := img.RGB(0, 0)
	assert.Equal(t, []uint8{10, 20, 30}, []uint8{r, g, b})
	assert.Equal(t, uint8(0xff), img.Pix()[3])

	clone := img.Clone()
	require.True(t, img.Equal(clone))

	mutable := clone.ToRGBA()
	mutable.Pix[0] = 99
	assert.True(t, img.Equal(clone), "ToRGBA must hand out a copy")
}

func TestFromRGBAShiftsOrigin(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(5, 5, 7, 6))
	rgba.SetRGBA(6, 5, color.RGBA{1, 2, 3, 255})
	img, err := FromRGBA(rgba)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	r, g, b := img.RGB(1, 0)
	assert.Equal(t, []uint8{1, 2, 3}, []uint8{r, g, b})
}

func TestKindOf(t *testing.T) {
	err := &MissingBandError{Role: "nir"}
	assert.True(t, errors.Is(err, ErrMissingBand))
	assert.Equal(t, "MissingBand", KindOf(err))
	assert.Contains(t, err.Error(), "nir")

	assert.Equal(t, "InsufficientBands", KindOf(ErrInsufficientBands))
	assert.Equal(t, "Internal", KindOf(errors.New("boom")))
	assert.Equal(t, "", KindOf(nil))
}

func TestToRGBAIsConcreteRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.SetRGBA(1, 0, color.RGBA{7, 8, 9, 255})
	img, err := FromRGBA(rgba)
	require.NoError(t, err)

	// Encoders that switch on ColorModel expect the concrete type behind it.
	assert.Equal(t, color.RGBAModel, img.ColorModel())
	var asImage image.Image = img
	_, isRGBA := asImage.(*image.RGBA)
	assert.False(t, isRGBA)

	var converted image.Image = img.ToRGBA()
	out, ok := converted.(*image.RGBA)
	require.True(t, ok)
	assert.Equal(t, img.Bounds(), out.Bounds())
	assert.Equal(t, img.Pix(), out.Pix)
}
