// Error kinds shared by the band-processing core
package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBandIndex is returned when a band index falls outside the dataset.
	ErrInvalidBandIndex = errors.New("invalid band index")
	// ErrMissingBand is returned when a filter needs a band role that cannot be resolved.
	ErrMissingBand = errors.New("missing band")
	// ErrInsufficientBands is returned when a dataset has too few bands for an operation.
	ErrInsufficientBands = errors.New("insufficient bands")
	// ErrUnknownFilter is returned for filter names or kinds outside the supported menu.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrShapeMismatch is returned when bands do not share the same width and height.
	ErrShapeMismatch = errors.New("band shape mismatch")
	// ErrEmptyHistory is returned by undo/redo when there is nothing to pop.
	ErrEmptyHistory = errors.New("empty history")
)

// MissingBandError names the role the band resolver could not supply.
type MissingBandError struct {
	Role string
}

func (e *MissingBandError) Error() string {
	return fmt.Sprintf("%s: %s band is required", ErrMissingBand, e.Role)
}

func (e *MissingBandError) Unwrap() error { return ErrMissingBand }

// KindOf returns the short kind name of a core error, or "Internal" for
// anything that is not one of the known kinds.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidBandIndex):
		return "InvalidBandIndex"
	case errors.Is(err, ErrMissingBand):
		return "MissingBand"
	case errors.Is(err, ErrInsufficientBands):
		return "InsufficientBands"
	case errors.Is(err, ErrUnknownFilter):
		return "UnknownFilter"
	case errors.Is(err, ErrShapeMismatch):
		return "ShapeMismatch"
	case errors.Is(err, ErrEmptyHistory):
		return "EmptyHistory"
	default:
		return "Internal"
	}
}
