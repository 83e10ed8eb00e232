// Dataset info panel with band statistics and history state
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"band-visualizer/internal/metrics"
	"band-visualizer/internal/raster"
)

// InfoPanel provides the right panel with per-band statistics
type InfoPanel struct {
	logger logrus.FieldLogger

	container *fyne.Container

	datasetLabel *widget.Label
	statsContent *fyne.Container
	displayLabel *widget.Label
	historyLabel *widget.Label
}

func NewInfoPanel(logger logrus.FieldLogger) *InfoPanel {
	panel := &InfoPanel{logger: logger}
	panel.initializeUI()
	return panel
}

func (ip *InfoPanel) initializeUI() {
	ip.datasetLabel = widget.NewLabel("No dataset loaded")
	ip.statsContent = container.NewVBox()
	ip.displayLabel = widget.NewLabel("-")
	ip.historyLabel = widget.NewLabel("Undo: 0  Redo: 0")

	ip.container = container.NewVBox(
		widget.NewCard("Dataset", "", container.NewVBox(ip.datasetLabel, ip.statsContent)),
		widget.NewCard("Display", "", container.NewVBox(ip.displayLabel, ip.historyLabel)),
	)
}

func (ip *InfoPanel) GetContainer() fyne.CanvasObject {
	return ip.container
}

// SetDataset lists the statistics of every band of ds.
func (ip *InfoPanel) SetDataset(ds *raster.Dataset) {
	ip.statsContent.RemoveAll()
	if ds == nil {
		ip.datasetLabel.SetText("No dataset loaded")
		ip.statsContent.Refresh()
		return
	}

	ip.datasetLabel.SetText(fmt.Sprintf("%d band(s), %dx%d", ds.BandCount(), ds.Width(), ds.Height()))
	for _, s := range metrics.DescribeDataset(ds) {
		label := widget.NewLabel(s.String())
		label.Wrapping = fyne.TextWrapWord
		if s.Constant {
			label.Importance = widget.WarningImportance
		}
		ip.statsContent.Add(label)
	}
	ip.statsContent.Refresh()
	ip.logger.WithField("bands", ds.BandCount()).Debug("Info panel updated")
}

// SetDisplay shows the rendered size and the history depth.
func (ip *InfoPanel) SetDisplay(display *raster.Image, undoDepth, redoDepth int) {
	if display == nil {
		ip.displayLabel.SetText("-")
	} else {
		ip.displayLabel.SetText(fmt.Sprintf("%dx%d px", display.Width(), display.Height()))
	}
	ip.historyLabel.SetText(fmt.Sprintf("Undo: %d  Redo: %d", undoDepth, redoDepth))
}
