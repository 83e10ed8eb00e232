// Viewer session: one loaded dataset, its base-image history and live adjustments
package core

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"band-visualizer/internal/algorithms"
	"band-visualizer/internal/config"
	"band-visualizer/internal/history"
	"band-visualizer/internal/raster"
)

// ErrNoDataset is returned by derivations requested before any load.
var ErrNoDataset = errors.New("no dataset loaded")

// Session owns the loaded dataset, the History Manager for base images and
// the transient adjustment state. Derivations are pure; only commitBase,
// Undo and Redo change the current base image.
type Session struct {
	mu      sync.RWMutex
	cfg     config.Config
	logger  logrus.FieldLogger
	id      uuid.UUID
	dataset *raster.Dataset
	history *history.History
	adjust  algorithms.Adjustment

	// Callbacks, invoked outside the lock after every state change
	onUpdate func(display *raster.Image)
	onError  func(error)
}

func NewSession(cfg config.Config, logger logrus.FieldLogger) *Session {
	return &Session{
		cfg:     cfg,
		logger:  logger,
		id:      uuid.New(),
		history: history.New(),
		adjust:  algorithms.IdentityAdjustment(),
	}
}

// Load installs a new dataset and resets history, zoom and sliders.
func (s *Session) Load(ds *raster.Dataset) error {
	if ds == nil {
		return ErrNoDataset
	}

	s.mu.Lock()
	s.dataset = ds
	s.id = uuid.New()
	s.history.Reset()
	s.adjust = algorithms.IdentityAdjustment()
	s.mu.Unlock()

	s.log().WithFields(logrus.Fields{
		"bands":  ds.BandCount(),
		"width":  ds.Width(),
		"height": ds.Height(),
	}).Info("Dataset loaded")

	s.refresh()
	return nil
}

// ID identifies the currently loaded dataset in logs.
func (s *Session) ID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *Session) Dataset() *raster.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// BandNames returns the resolved display names for selection controls.
func (s *Session) BandNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil
	}
	return s.dataset.Names()
}

// ShowComposite commits an RGB composite of the three band indices.
func (s *Session) ShowComposite(rIdx, gIdx, bIdx int) error {
	return s.derive(fmt.Sprintf("composite(%d,%d,%d)", rIdx, gIdx, bIdx), true,
		func(ds *raster.Dataset, _ *raster.Image) (*raster.Image, error) {
			return algorithms.BuildComposite(ds, rIdx, gIdx, bIdx)
		})
}

// ShowSingleBand commits a grayscale view of one band.
func (s *Session) ShowSingleBand(idx int) error {
	return s.derive(fmt.Sprintf("single_band(%d)", idx), true,
		func(ds *raster.Dataset, _ *raster.Image) (*raster.Image, error) {
			return algorithms.SingleBand(ds, idx)
		})
}

// ApplyFilter commits the output of a spectral filter. FilterNone only
// re-renders the current image.
func (s *Session) ApplyFilter(kind algorithms.FilterKind) error {
	if kind == algorithms.FilterNone {
		s.refresh()
		return nil
	}
	return s.derive("filter "+kind.String(), true,
		func(ds *raster.Dataset, _ *raster.Image) (*raster.Image, error) {
			return algorithms.ApplyFilter(ds, kind)
		})
}

// ApplyFilterByName parses a menu name and applies it.
func (s *Session) ApplyFilterByName(name string) error {
	kind, err := algorithms.ParseFilterKind(name)
	if err != nil {
		return err
	}
	return s.ApplyFilter(kind)
}

// Rotate commits the current base rotated 90 degrees counter-clockwise.
// Without a current image it does nothing.
func (s *Session) Rotate() error {
	return s.edit("rotate", algorithms.Rotate90)
}

// CropCenter commits the centred square crop of the current base. Without a
// current image it does nothing.
func (s *Session) CropCenter() error {
	return s.edit("crop_center", algorithms.CropCenter)
}

// Undo restores the previous base image. It reports whether anything changed.
func (s *Session) Undo() bool {
	return s.step("undo", s.history.Undo)
}

// Redo re-applies the last undone base image. It reports whether anything changed.
func (s *Session) Redo() bool {
	return s.step("redo", s.history.Redo)
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Base returns the current base image, nil before the first derivation.
func (s *Session) Base() *raster.Image { return s.history.Current() }

// History exposes the History Manager for inspection.
func (s *Session) History() *history.History { return s.history }

func (s *Session) step(name string, op func() error) bool {
	if err := op(); err != nil {
		if errors.Is(err, raster.ErrEmptyHistory) {
			s.log().WithField("operation", name).Debug("Nothing to " + name)
			return false
		}
		s.reportError(err)
		return false
	}
	s.log().WithFields(logrus.Fields{
		"operation": name,
		"undo":      len(s.history.UndoStack()),
		"redo":      len(s.history.RedoStack()),
	}).Info("History step")
	s.refresh()
	return true
}

// derive runs a pure derivation against the loaded dataset and commits the
// result. On failure nothing is committed.
func (s *Session) derive(name string, resetZoom bool, build func(*raster.Dataset, *raster.Image) (*raster.Image, error)) error {
	s.mu.RLock()
	ds := s.dataset
	s.mu.RUnlock()
	if ds == nil {
		return ErrNoDataset
	}

	img, err := build(ds, s.history.Current())
	if err != nil {
		s.log().WithFields(logrus.Fields{
			"operation": name,
			"kind":      raster.KindOf(err),
		}).WithError(err).Warn("Derivation failed")
		return err
	}

	if !s.commitBase(ds, img, resetZoom) {
		return fmt.Errorf("%s: dataset changed during derivation", name)
	}
	s.log().WithFields(logrus.Fields{
		"operation": name,
		"width":     img.Width(),
		"height":    img.Height(),
	}).Info("Base image committed")
	s.refresh()
	return nil
}

// edit derives a new base from the current base image.
func (s *Session) edit(name string, transform func(*raster.Image) (*raster.Image, error)) error {
	if s.history.Current() == nil {
		return nil
	}
	return s.derive(name, false, func(_ *raster.Dataset, current *raster.Image) (*raster.Image, error) {
		if current == nil {
			return nil, fmt.Errorf("no current image")
		}
		return transform(current)
	})
}

func (s *Session) commitBase(ds *raster.Dataset, img *raster.Image, resetZoom bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dataset != ds {
		return false
	}
	s.history.Commit(img)
	if resetZoom {
		s.adjust.Zoom = 1
	}
	return true
}

// Adjustment returns the live slider and zoom state.
func (s *Session) Adjustment() algorithms.Adjustment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adjust
}

func (s *Session) SetBrightness(v float64) error {
	return s.setFactor("brightness", v, func(a *algorithms.Adjustment, v float64) { a.Brightness = v })
}

func (s *Session) SetContrast(v float64) error {
	return s.setFactor("contrast", v, func(a *algorithms.Adjustment, v float64) { a.Contrast = v })
}

func (s *Session) SetSharpness(v float64) error {
	return s.setFactor("sharpness", v, func(a *algorithms.Adjustment, v float64) { a.Sharpness = v })
}

// SetZoom sets the zoom factor, clamped to the configured range.
func (s *Session) SetZoom(z float64) error {
	if math.IsNaN(z) || z <= 0 {
		return fmt.Errorf("%w: zoom must be positive, got %v", algorithms.ErrInvalidAdjustment, z)
	}
	s.mu.Lock()
	s.adjust.Zoom = s.cfg.ClampZoom(z)
	s.mu.Unlock()
	s.refresh()
	return nil
}

// ZoomIn multiplies the zoom factor by the configured step.
func (s *Session) ZoomIn() error {
	return s.SetZoom(s.Adjustment().Zoom * s.cfg.Zoom.Step)
}

// ZoomOut divides the zoom factor by the configured step.
func (s *Session) ZoomOut() error {
	return s.SetZoom(s.Adjustment().Zoom / s.cfg.Zoom.Step)
}

func (s *Session) setFactor(name string, v float64, set func(*algorithms.Adjustment, float64)) error {
	if math.IsNaN(v) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", algorithms.ErrInvalidAdjustment, name, v)
	}
	s.mu.Lock()
	set(&s.adjust, s.cfg.ClampAdjustment(v))
	s.mu.Unlock()
	s.refresh()
	return nil
}

// log returns a logger tagged with the current session id.
func (s *Session) log() logrus.FieldLogger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logger.WithField("session_id", s.id.String())
}
