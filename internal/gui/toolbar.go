// Toolbar with file, zoom, edit and history actions
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ToolbarCallbacks are invoked by the toolbar buttons
type ToolbarCallbacks struct {
	Open    func()
	Save    func()
	ZoomIn  func()
	ZoomOut func()
	Rotate  func()
	Crop    func()
	Undo    func()
	Redo    func()
}

type Toolbar struct {
	container *fyne.Container

	openBtn    *widget.Button
	saveBtn    *widget.Button
	zoomInBtn  *widget.Button
	zoomOutBtn *widget.Button
	rotateBtn  *widget.Button
	cropBtn    *widget.Button
	undoBtn    *widget.Button
	redoBtn    *widget.Button
	zoomLabel  *widget.Label

	callbacks ToolbarCallbacks
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.initializeUI()
	return toolbar
}

func (tb *Toolbar) initializeUI() {
	tb.openBtn = widget.NewButtonWithIcon("Upload Image", theme.FolderOpenIcon(), func() { call(tb.callbacks.Open) })
	tb.openBtn.Importance = widget.HighImportance

	tb.saveBtn = widget.NewButtonWithIcon("Save Image", theme.DocumentSaveIcon(), func() { call(tb.callbacks.Save) })
	tb.zoomInBtn = widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() { call(tb.callbacks.ZoomIn) })
	tb.zoomOutBtn = widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() { call(tb.callbacks.ZoomOut) })
	tb.rotateBtn = widget.NewButtonWithIcon("Rotate", theme.ViewRefreshIcon(), func() { call(tb.callbacks.Rotate) })
	tb.cropBtn = widget.NewButtonWithIcon("Crop Center", theme.ContentCutIcon(), func() { call(tb.callbacks.Crop) })
	tb.undoBtn = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() { call(tb.callbacks.Undo) })
	tb.redoBtn = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() { call(tb.callbacks.Redo) })
	tb.zoomLabel = widget.NewLabel("100%")

	tb.container = container.NewHBox(
		tb.openBtn,
		tb.saveBtn,
		widget.NewSeparator(),
		tb.zoomOutBtn,
		tb.zoomLabel,
		tb.zoomInBtn,
		widget.NewSeparator(),
		tb.rotateBtn,
		tb.cropBtn,
		widget.NewSeparator(),
		tb.undoBtn,
		tb.redoBtn,
	)

	tb.Disable()
	tb.openBtn.Enable()
}

func (tb *Toolbar) GetContainer() fyne.CanvasObject {
	return tb.container
}

func (tb *Toolbar) SetCallbacks(callbacks ToolbarCallbacks) {
	tb.callbacks = callbacks
}

// SetZoom shows the zoom factor as a percentage.
func (tb *Toolbar) SetZoom(zoom float64) {
	tb.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
}

// SetHistoryState enables undo/redo according to the history stacks.
func (tb *Toolbar) SetHistoryState(canUndo, canRedo bool) {
	setEnabled(tb.undoBtn, canUndo)
	setEnabled(tb.redoBtn, canRedo)
}

func (tb *Toolbar) Enable() {
	for _, btn := range []*widget.Button{tb.saveBtn, tb.zoomInBtn, tb.zoomOutBtn, tb.rotateBtn, tb.cropBtn} {
		btn.Enable()
	}
}

func (tb *Toolbar) Disable() {
	for _, btn := range []*widget.Button{tb.saveBtn, tb.zoomInBtn, tb.zoomOutBtn, tb.rotateBtn, tb.cropBtn, tb.undoBtn, tb.redoBtn} {
		btn.Disable()
	}
}

func setEnabled(btn *widget.Button, enabled bool) {
	if enabled {
		btn.Enable()
	} else {
		btn.Disable()
	}
}
