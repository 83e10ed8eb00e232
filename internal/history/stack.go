// Undo/redo history over immutable base-image snapshots
package history

import (
	"sync"

	"band-visualizer/internal/raster"
)

// History keeps the current base image plus undo and redo stacks, most
// recent entry last. Commit, Undo and Redo are the only mutators.
type History struct {
	mu      sync.RWMutex
	current *raster.Image
	undo    []*raster.Image
	redo    []*raster.Image
}

func New() *History {
	return &History{
		undo: make([]*raster.Image, 0),
		redo: make([]*raster.Image, 0),
	}
}

// Commit installs a deep copy of img as the current image. The previous
// current image, if any, goes onto the undo stack and the redo stack is
// cleared. A nil image is ignored.
func (h *History) Commit(img *raster.Image) {
	if img == nil {
		return
	}
	snapshot := img.Clone()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil {
		h.undo = append(h.undo, h.current)
	}
	clear(h.redo)
	h.redo = h.redo[:0]
	h.current = snapshot
}

// Undo steps back one state. It returns raster.ErrEmptyHistory and changes
// nothing when the undo stack is empty.
func (h *History) Undo() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		return raster.ErrEmptyHistory
	}
	if h.current != nil {
		h.redo = append(h.redo, h.current)
	}
	h.current, h.undo = pop(h.undo)
	return nil
}

// Redo re-applies the most recently undone state. It returns
// raster.ErrEmptyHistory and changes nothing when the redo stack is empty.
func (h *History) Redo() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		return raster.ErrEmptyHistory
	}
	if h.current != nil {
		h.undo = append(h.undo, h.current)
	}
	h.current, h.redo = pop(h.redo)
	return nil
}

// Reset returns to the initial state: no current image, both stacks empty.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = nil
	clear(h.undo)
	clear(h.redo)
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

// Current returns the current base image, or nil before the first commit.
func (h *History) Current() *raster.Image {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

func (h *History) CanUndo() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.undo) > 0
}

func (h *History) CanRedo() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.redo) > 0
}

// UndoStack returns a copy of the undo stack, oldest first.
func (h *History) UndoStack() []*raster.Image {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]*raster.Image, len(h.undo))
	copy(result, h.undo)
	return result
}

// RedoStack returns a copy of the redo stack, oldest first.
func (h *History) RedoStack() []*raster.Image {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]*raster.Image, len(h.redo))
	copy(result, h.redo)
	return result
}

func pop(stack []*raster.Image) (*raster.Image, []*raster.Image) {
	last := len(stack) - 1
	img := stack[last]
	stack[last] = nil
	return img, stack[:last]
}
