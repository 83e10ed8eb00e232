// Display pipeline: renders the current base image with the live adjustments
package core

import (
	"github.com/sirupsen/logrus"

	"band-visualizer/internal/algorithms"
	"band-visualizer/internal/raster"
)

// SetCallbacks sets display update and error callbacks. onUpdate receives
// nil when there is no base image to show.
func (s *Session) SetCallbacks(onUpdate func(*raster.Image), onError func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = onUpdate
	s.onError = onError
	s.logger.Debug("SESSION: Callbacks set")
}

// Display renders the current base image with the current adjustments. It
// is recomputed from the unmodified base every call, so adjustments never
// compound. Returns nil, nil when there is no base image.
func (s *Session) Display() (*raster.Image, error) {
	base := s.history.Current()
	if base == nil {
		return nil, nil
	}
	return algorithms.Render(base, s.Adjustment())
}

// refresh re-renders the display image and hands it to the UI.
func (s *Session) refresh() {
	s.mu.RLock()
	onUpdate := s.onUpdate
	s.mu.RUnlock()

	display, err := s.Display()
	if err != nil {
		s.reportError(err)
		return
	}
	if display != nil {
		adj := s.Adjustment()
		s.log().WithFields(logrus.Fields{
			"brightness": adj.Brightness,
			"contrast":   adj.Contrast,
			"sharpness":  adj.Sharpness,
			"zoom":       adj.Zoom,
			"width":      display.Width(),
			"height":     display.Height(),
		}).Debug("Display rendered")
	}
	if onUpdate != nil {
		onUpdate(display)
	}
}

func (s *Session) reportError(err error) {
	s.mu.RLock()
	onError := s.onError
	s.mu.RUnlock()

	s.log().WithField("kind", raster.KindOf(err)).WithError(err).Error("Session error")
	if onError != nil {
		onError(err)
	}
}
