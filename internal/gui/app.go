// Main window wiring the viewer session to its controls
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"band-visualizer/internal/config"
	"band-visualizer/internal/core"
	"band-visualizer/internal/io"
	"band-visualizer/internal/raster"
)

// Application represents the band visualizer window
type Application struct {
	app    fyne.App
	window fyne.Window
	logger logrus.FieldLogger
	cfg    config.Config

	// Core components
	session *core.Session
	loader  *io.RasterLoader

	// GUI components
	canvas      *ImageCanvas
	toolbar     *Toolbar
	controls    *ControlPanel
	info        *InfoPanel
	menuHandler *MenuHandler
	statusLabel *widget.Label

	display *raster.Image
}

func NewApplication(app fyne.App, logger logrus.FieldLogger, cfg config.Config) *Application {
	window := app.NewWindow("RGB and Band Image Visualizer")
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	appInstance := &Application{
		app:    app,
		window: window,
		logger: logger,
		cfg:    cfg,
	}

	appInstance.initializeCore()
	appInstance.initializeGUI()
	appInstance.setupLayout()
	appInstance.setupCallbacks()

	return appInstance
}

func (a *Application) initializeCore() {
	a.session = core.NewSession(a.cfg, a.logger)
	a.loader = io.NewRasterLoader(a.logger)
}

func (a *Application) initializeGUI() {
	a.canvas = NewImageCanvas(a.logger)
	a.toolbar = NewToolbar()
	a.controls = NewControlPanel(a.session, a.cfg, a.logger)
	a.info = NewInfoPanel(a.logger)
	a.menuHandler = NewMenuHandler(a.window, a.logger)
	a.statusLabel = widget.NewLabel("Open a raster to begin")
}

func (a *Application) setupLayout() {
	top := container.NewVBox(a.toolbar.GetContainer(), widget.NewSeparator())
	bottom := container.NewVBox(widget.NewSeparator(), a.statusLabel)

	right := container.NewHSplit(a.canvas.GetContainer(), container.NewVScroll(a.info.GetContainer()))
	right.SetOffset(0.75)

	split := container.NewHSplit(container.NewVScroll(a.controls.GetContainer()), right)
	split.SetOffset(0.25)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(container.NewBorder(top, bottom, nil, nil, split))
}

func (a *Application) setupCallbacks() {
	a.session.SetCallbacks(
		// onUpdate
		func(display *raster.Image) {
			fyne.Do(func() {
				a.display = display
				a.canvas.Update(display)
				a.toolbar.SetHistoryState(a.session.CanUndo(), a.session.CanRedo())
				a.toolbar.SetZoom(a.session.Adjustment().Zoom)
				history := a.session.History()
				a.info.SetDisplay(display, len(history.UndoStack()), len(history.RedoStack()))
			})
		},
		// onError
		func(err error) {
			fyne.Do(func() {
				a.showError("Rendering Error", err)
			})
		},
	)

	open := func() { a.menuHandler.OpenRaster(a.LoadRasterFromPath) }
	save := func() {
		if a.display == nil {
			a.showError("No Image", fmt.Errorf("no image to save"))
			return
		}
		a.menuHandler.SaveImage(a.SaveDisplayImage)
	}
	a.menuHandler.SetCallbacks(open, save, a.undo, a.redo)

	a.toolbar.SetCallbacks(ToolbarCallbacks{
		Open:    open,
		Save:    save,
		ZoomIn:  func() { a.report(a.session.ZoomIn()) },
		ZoomOut: func() { a.report(a.session.ZoomOut()) },
		Rotate:  func() { a.report(a.session.Rotate()) },
		Crop:    func() { a.report(a.session.CropCenter()) },
		Undo:    a.undo,
		Redo:    a.redo,
	})

	a.controls.SetErrorCallback(func(err error) {
		a.showError("Operation Failed", err)
	})
}

func (a *Application) undo() {
	if a.session.Undo() {
		a.updateStatusMessage("Undo")
	}
}

func (a *Application) redo() {
	if a.session.Redo() {
		a.updateStatusMessage("Redo")
	}
}

func (a *Application) report(err error) {
	if err != nil {
		a.showError("Operation Failed", err)
	}
}

// LoadRasterFromPath decodes a raster and starts a fresh session on it.
func (a *Application) LoadRasterFromPath(path string) error {
	ds, err := a.loader.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	if err := a.session.Load(ds); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	fyne.Do(func() {
		a.controls.SetBandNames(a.session.BandNames())
		a.controls.Enable()
		a.info.SetDataset(ds)
		a.toolbar.Enable()
		a.updateStatusMessage(fmt.Sprintf("Loaded image with %d band(s).", ds.BandCount()))
	})
	return nil
}

// SaveDisplayImage writes the image currently on screen.
func (a *Application) SaveDisplayImage(path string) error {
	display, err := a.session.Display()
	if err != nil {
		return err
	}
	if err := a.loader.SaveImage(display, path, a.cfg.Save.JPEGQuality); err != nil {
		return err
	}
	a.updateStatusMessage(fmt.Sprintf("Saved: %s", path))
	return nil
}

func (a *Application) updateStatusMessage(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")
	a.window.ShowAndRun()
}

func (a *Application) showError(title string, err error) {
	kind := raster.KindOf(err)
	a.logger.WithFields(logrus.Fields{"title": title, "kind": kind}).WithError(err).Error("Operation failed")
	dialog.ShowError(fmt.Errorf("%s: %w", kind, err), a.window)
	a.updateStatusMessage(fmt.Sprintf("Error: %s", err.Error()))
}
