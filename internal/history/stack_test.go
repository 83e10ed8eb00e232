package history

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"band-visualizer/internal/raster"
)

func solid(t *testing.T, v uint8) *raster.Image {
	t.Helper()
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			rgba.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	img, err := raster.FromRGBA(rgba)
	require.NoError(t, err)
	return img
}

func TestCommitUndoRedoSequence(t *testing.T) {
	a, b, c := solid(t, 1), solid(t, 2), solid(t, 3)
	h := New()

	h.Commit(a)
	h.Commit(b)
	assert.True(t, h.Current().Equal(b))
	require.Len(t, h.UndoStack(), 1)
	assert.True(t, h.UndoStack()[0].Equal(a))

	require.NoError(t, h.Undo())
	assert.True(t, h.Current().Equal(a))
	assert.Empty(t, h.UndoStack())
	require.Len(t, h.RedoStack(), 1)
	assert.True(t, h.RedoStack()[0].Equal(b))

	require.NoError(t, h.Redo())
	assert.True(t, h.Current().Equal(b))
	assert.Empty(t, h.RedoStack())

	require.NoError(t, h.Undo())
	h.Commit(c)
	assert.True(t, h.Current().Equal(c))
	assert.False(t, h.CanRedo(), "commit clears redo")
	require.Len(t, h.UndoStack(), 1)
	assert.True(t, h.UndoStack()[0].Equal(a))
}

func TestUndoOnEmptyIsNoop(t *testing.T) {
	h := New()
	require.ErrorIs(t, h.Undo(), raster.ErrEmptyHistory)
	require.ErrorIs(t, h.Redo(), raster.ErrEmptyHistory)
	assert.Nil(t, h.Current())

	a := solid(t, 7)
	h.Commit(a)
	require.ErrorIs(t, h.Undo(), raster.ErrEmptyHistory)
	assert.True(t, h.Current().Equal(a))
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := New()
	for v := uint8(1); v <= 4; v++ {
		h.Commit(solid(t, v))
	}
	top := h.Current()

	for h.CanUndo() {
		require.NoError(t, h.Undo())
	}
	assert.True(t, h.Current().Equal(solid(t, 1)))
	assert.Len(t, h.RedoStack(), 3)

	for h.CanRedo() {
		require.NoError(t, h.Redo())
	}
	assert.True(t, h.Current().Equal(top))
	assert.Len(t, h.UndoStack(), 3)
}

func TestCommitStoresSnapshot(t *testing.T) {
	h := New()
	img := solid(t, 9)
	h.Commit(img)
	assert.NotSame(t, img, h.Current())
	assert.True(t, h.Current().Equal(img))

	h.Commit(nil)
	assert.False(t, h.CanUndo(), "nil commit is ignored")
}

func TestReset(t *testing.T) {
	h := New()
	h.Commit(solid(t, 1))
	h.Commit(solid(t, 2))
	require.NoError(t, h.Undo())

	h.Reset()
	assert.Nil(t, h.Current())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
