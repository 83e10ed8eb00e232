package core

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"band-visualizer/internal/algorithms"
	"band-visualizer/internal/config"
	"band-visualizer/internal/raster"
)

func newTestSession(t *testing.T) (*Session, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewSession(config.Default(), logger), hook
}

// dataset returns a w x h dataset with bandCount bands holding distinct ramps.
func dataset(t *testing.T, w, h, bandCount int) *raster.Dataset {
	t.Helper()
	bands := make([]raster.Band, bandCount)
	for b := range bands {
		samples := make([]float32, w*h)
		for i := range samples {
			samples[i] = float32((i*(b+1))%7 + b)
		}
		band, err := raster.NewBand(w, h, samples)
		require.NoError(t, err)
		bands[b] = band
	}
	ds, err := raster.NewDataset(bands, nil)
	require.NoError(t, err)
	return ds
}

func TestDerivationsRequireDataset(t *testing.T) {
	s, _ := newTestSession(t)

	require.ErrorIs(t, s.ShowComposite(0, 1, 2), ErrNoDataset)
	require.ErrorIs(t, s.ShowSingleBand(0), ErrNoDataset)
	require.ErrorIs(t, s.ApplyFilter(algorithms.FilterNaturalColor), ErrNoDataset)
	require.ErrorIs(t, s.Load(nil), ErrNoDataset)

	require.NoError(t, s.Rotate(), "rotate without an image is a no-op")
	require.NoError(t, s.CropCenter())
	assert.Nil(t, s.Base())

	display, err := s.Display()
	require.NoError(t, err)
	assert.Nil(t, display)
}

func TestUndoRedoAcrossDerivations(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Load(dataset(t, 4, 3, 4)))

	require.NoError(t, s.ShowComposite(0, 1, 2))
	composite := s.Base()
	require.NoError(t, s.ApplyFilter(algorithms.FilterNDVIEnhanced))
	ndvi := s.Base()
	assert.False(t, composite.Equal(ndvi))

	require.True(t, s.Undo())
	assert.True(t, s.Base().Equal(composite))
	assert.True(t, s.CanRedo())

	require.True(t, s.Redo())
	assert.True(t, s.Base().Equal(ndvi))
	assert.False(t, s.CanRedo())

	require.True(t, s.Undo())
	assert.False(t, s.Undo(), "only one earlier state")
	assert.True(t, s.Base().Equal(composite))
}

func TestCommitResetsZoomButUndoDoesNot(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Load(dataset(t, 4, 4, 3)))
	require.NoError(t, s.ShowComposite(0, 1, 2))

	require.NoError(t, s.SetZoom(2))
	display, err := s.Display()
	require.NoError(t, err)
	assert.Equal(t, 8, display.Width())

	require.NoError(t, s.ShowSingleBand(1))
	assert.Equal(t, 1.0, s.Adjustment().Zoom)

	require.NoError(t, s.SetZoom(3))
	require.True(t, s.Undo())
	assert.Equal(t, 3.0, s.Adjustment().Zoom)

	require.NoError(t, s.Rotate())
	assert.Equal(t, 3.0, s.Adjustment().Zoom, "geometric edits keep the zoom")
}

func TestFailedFilterLeavesStateUntouched(t *testing.T) {
	s, hook := newTestSession(t)
	require.NoError(t, s.Load(dataset(t, 2, 2, 3)))
	require.NoError(t, s.ShowComposite(2, 1, 0))
	base := s.Base()
	require.NoError(t, s.SetZoom(2))

	err := s.ApplyFilter(algorithms.FilterWaterBodies)
	require.ErrorIs(t, err, raster.ErrInsufficientBands)
	assert.Same(t, base, s.Base())
	assert.False(t, s.CanUndo())
	assert.Equal(t, 2.0, s.Adjustment().Zoom)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "InsufficientBands", entry.Data["kind"])

	require.ErrorIs(t, s.ShowComposite(0, 1, 5), raster.ErrInvalidBandIndex)
	assert.Same(t, base, s.Base())
}

func TestNoneFilterDoesNotCommit(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Load(dataset(t, 2, 2, 4)))
	require.NoError(t, s.ShowComposite(0, 1, 2))

	updates := 0
	s.SetCallbacks(func(*raster.Image) { updates++ }, nil)

	require.NoError(t, s.ApplyFilterByName("None"))
	assert.False(t, s.CanUndo())
	assert.Equal(t, 1, updates)

	require.ErrorIs(t, s.ApplyFilterByName("Infrared Magic"), raster.ErrUnknownFilter)
}

func TestAdjustmentsAreClampedAndDoNotCompound(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Load(dataset(t, 3, 3, 3)))
	require.NoError(t, s.ShowComposite(0, 1, 2))
	base := s.Base().Clone()

	require.NoError(t, s.SetBrightness(5))
	assert.Equal(t, 1.5, s.Adjustment().Brightness)
	require.NoError(t, s.SetContrast(0.1))
	assert.Equal(t, 0.5, s.Adjustment().Contrast)
	require.NoError(t, s.SetSharpness(1.2))
	assert.Equal(t, 1.2, s.Adjustment().Sharpness)

	require.ErrorIs(t, s.SetBrightness(0), algorithms.ErrInvalidAdjustment)
	require.ErrorIs(t, s.SetContrast(math.NaN()), algorithms.ErrInvalidAdjustment)
	require.ErrorIs(t, s.SetZoom(-1), algorithms.ErrInvalidAdjustment)

	first, err := s.Display()
	require.NoError(t, err)
	second, err := s.Display()
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.True(t, s.Base().Equal(base))

	require.NoError(t, s.SetBrightness(1))
	require.NoError(t, s.SetContrast(1))
	require.NoError(t, s.SetSharpness(1))
	identity, err := s.Display()
	require.NoError(t, err)
	assert.True(t, identity.Equal(base))
}

func TestZoomSteps(t *testing.T) {
	s, _ := newTestSession(t)

	require.NoError(t, s.ZoomIn())
	assert.InDelta(t, 1.25, s.Adjustment().Zoom, 1e-12)
	require.NoError(t, s.ZoomOut())
	require.NoError(t, s.ZoomOut())
	assert.InDelta(t, 0.8, s.Adjustment().Zoom, 1e-12)

	require.NoError(t, s.SetZoom(1000))
	assert.Equal(t, 20.0, s.Adjustment().Zoom)
}

func TestLoadResetsSession(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Load(dataset(t, 2, 2, 3)))
	firstID := s.ID()
	require.NoError(t, s.ShowComposite(0, 1, 2))
	require.NoError(t, s.ShowSingleBand(0))
	require.NoError(t, s.SetBrightness(1.3))

	require.NoError(t, s.Load(dataset(t, 3, 1, 5)))
	assert.NotEqual(t, firstID, s.ID())
	assert.Nil(t, s.Base())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Equal(t, algorithms.IdentityAdjustment(), s.Adjustment())
	assert.Equal(t, []string{"Band 1", "Band 2", "Band 3", "Band 4", "Band 5"}, s.BandNames())
}

func TestRotateAndCrop(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Load(dataset(t, 6, 4, 3)))
	require.NoError(t, s.ShowComposite(0, 1, 2))

	require.NoError(t, s.Rotate())
	assert.Equal(t, 4, s.Base().Width())
	assert.Equal(t, 6, s.Base().Height())

	require.NoError(t, s.CropCenter())
	assert.Equal(t, 2, s.Base().Width())
	assert.Equal(t, 2, s.Base().Height())
	assert.Len(t, s.History().UndoStack(), 2)
}

func TestCallbacks(t *testing.T) {
	s, _ := newTestSession(t)

	var displays []*raster.Image
	s.SetCallbacks(func(img *raster.Image) { displays = append(displays, img) }, func(error) {})

	require.NoError(t, s.Load(dataset(t, 2, 2, 3)))
	require.Len(t, displays, 1)
	assert.Nil(t, displays[0], "nothing to show right after load")

	require.NoError(t, s.ShowComposite(0, 1, 2))
	require.Len(t, displays, 2)
	require.NotNil(t, displays[1])
	assert.True(t, displays[1].Equal(s.Base()))

	assert.False(t, s.Redo())
	assert.Len(t, displays, 2, "empty redo does not refresh")
}
