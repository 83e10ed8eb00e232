// Menu and file dialogs
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"band-visualizer/internal/algorithms"
	"band-visualizer/internal/io"
)

// MenuHandler handles menu actions and file dialogs
type MenuHandler struct {
	window fyne.Window
	logger logrus.FieldLogger

	onOpen func()
	onSave func()
	onUndo func()
	onRedo func()
}

func NewMenuHandler(window fyne.Window, logger logrus.FieldLogger) *MenuHandler {
	return &MenuHandler{
		window: window,
		logger: logger,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Upload Image...", func() { call(mh.onOpen) }),
		fyne.NewMenuItem("Save Image...", func() { call(mh.onSave) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() { call(mh.onUndo) }),
		fyne.NewMenuItem("Redo", func() { call(mh.onRedo) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Filters", mh.showFilterHelp),
	)

	return fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
}

// OpenRaster asks for a raster file and hands its path to load.
func (mh *MenuHandler) OpenRaster(load func(path string) error) {
	mh.logger.Info("Opening file dialog for raster selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		mh.logger.WithField("filepath", path).Info("Loading selected raster")
		if err := load(path); err != nil {
			mh.showError("Failed to Load Image", err)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.GetSupportedFormats()))
	fileDialog.Show()
}

// SaveImage asks for a destination and hands its path to save.
func (mh *MenuHandler) SaveImage(save func(path string) error) {
	mh.logger.Info("Opening file dialog for image saving")

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := save(path); err != nil {
			mh.showError("Failed to Save Image", err)
		}
	}, mh.window)

	fileDialog.SetFileName("output.png")
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	fileDialog.Show()
}

func (mh *MenuHandler) showFilterHelp() {
	content := container.NewVBox()
	for _, f := range algorithms.Filters() {
		text := f.Name + ": " + f.Description
		if f.NeedsNIR {
			text += " (needs NIR)"
		}
		content.Add(widget.NewLabel(text))
	}

	helpDialog := dialog.NewCustom("Filters", "Close", content, mh.window)
	helpDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithField("title", title).WithError(err).Error("Dialog error")
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(onOpen, onSave, onUndo, onRedo func()) {
	mh.onOpen = onOpen
	mh.onSave = onSave
	mh.onUndo = onUndo
	mh.onRedo = onRedo
}

func call(f func()) {
	if f != nil {
		f()
	}
}
