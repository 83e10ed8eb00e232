// Band selection, filter selection and adjustment sliders
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"band-visualizer/internal/algorithms"
	"band-visualizer/internal/config"
	"band-visualizer/internal/core"
	"band-visualizer/internal/metrics"
)

// sliderScale converts slider positions (percent) to adjustment factors.
const sliderScale = 100.0

type ControlPanel struct {
	session *core.Session
	cfg     config.Config
	logger  logrus.FieldLogger

	container *fyne.Container

	redSelect    *widget.Select
	greenSelect  *widget.Select
	blueSelect   *widget.Select
	compositeBtn *widget.Button
	singleSelect *widget.Select
	filterSelect *widget.Select
	statsLabel   *widget.Label

	brightnessSlider *widget.Slider
	contrastSlider   *widget.Slider
	sharpnessSlider  *widget.Slider

	// populating suppresses selection callbacks while options are replaced
	populating bool
	onError    func(error)
}

func NewControlPanel(session *core.Session, cfg config.Config, logger logrus.FieldLogger) *ControlPanel {
	cp := &ControlPanel{
		session: session,
		cfg:     cfg,
		logger:  logger,
	}
	cp.initializeUI()
	cp.Disable()
	return cp
}

func (cp *ControlPanel) initializeUI() {
	cp.redSelect = widget.NewSelect(nil, nil)
	cp.greenSelect = widget.NewSelect(nil, nil)
	cp.blueSelect = widget.NewSelect(nil, nil)

	cp.compositeBtn = widget.NewButton("Show Composite RGB Image", cp.showComposite)
	cp.compositeBtn.Importance = widget.HighImportance

	cp.singleSelect = widget.NewSelect(nil, func(string) {
		if cp.populating {
			return
		}
		idx := cp.singleSelect.SelectedIndex()
		cp.report(cp.session.ShowSingleBand(idx))
		cp.showBandStats(idx)
	})

	cp.filterSelect = widget.NewSelect(algorithms.FilterNames(), func(name string) {
		if cp.populating {
			return
		}
		cp.report(cp.session.ApplyFilterByName(name))
	})

	cp.statsLabel = widget.NewLabel("")
	cp.statsLabel.Wrapping = fyne.TextWrapWord

	cp.brightnessSlider = cp.newAdjustmentSlider(cp.session.SetBrightness)
	cp.contrastSlider = cp.newAdjustmentSlider(cp.session.SetContrast)
	cp.sharpnessSlider = cp.newAdjustmentSlider(cp.session.SetSharpness)

	bandForm := widget.NewForm(
		widget.NewFormItem("Red", cp.redSelect),
		widget.NewFormItem("Green", cp.greenSelect),
		widget.NewFormItem("Blue", cp.blueSelect),
	)

	cp.container = container.NewVBox(
		widget.NewCard("Composite", "", container.NewVBox(bandForm, cp.compositeBtn)),
		widget.NewCard("View Single Band", "", container.NewVBox(cp.singleSelect, cp.statsLabel)),
		widget.NewCard("Apply Filter", "", cp.filterSelect),
		widget.NewCard("Adjustments", "", widget.NewForm(
			widget.NewFormItem("Brightness", cp.brightnessSlider),
			widget.NewFormItem("Contrast", cp.contrastSlider),
			widget.NewFormItem("Sharpness", cp.sharpnessSlider),
		)),
	)
}

func (cp *ControlPanel) newAdjustmentSlider(set func(float64) error) *widget.Slider {
	slider := widget.NewSlider(cp.cfg.Adjustments.Min*sliderScale, cp.cfg.Adjustments.Max*sliderScale)
	slider.Step = 1
	slider.SetValue(sliderScale)
	slider.OnChanged = func(v float64) {
		cp.report(set(v / sliderScale))
	}
	return slider
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

// SetBandNames repopulates every band selector and resets the sliders.
func (cp *ControlPanel) SetBandNames(names []string) {
	cp.populating = true
	defer func() { cp.populating = false }()

	for _, sel := range []*widget.Select{cp.redSelect, cp.greenSelect, cp.blueSelect, cp.singleSelect} {
		sel.SetOptions(names)
		sel.ClearSelected()
	}
	for i, sel := range []*widget.Select{cp.redSelect, cp.greenSelect, cp.blueSelect} {
		if i < len(names) {
			sel.SetSelectedIndex(i)
		}
	}
	cp.filterSelect.ClearSelected()
	cp.statsLabel.SetText("")

	for _, slider := range []*widget.Slider{cp.brightnessSlider, cp.contrastSlider, cp.sharpnessSlider} {
		slider.SetValue(sliderScale)
	}
}

func (cp *ControlPanel) showComposite() {
	r := cp.redSelect.SelectedIndex()
	g := cp.greenSelect.SelectedIndex()
	b := cp.blueSelect.SelectedIndex()
	cp.report(cp.session.ShowComposite(r, g, b))
}

func (cp *ControlPanel) showBandStats(idx int) {
	ds := cp.session.Dataset()
	if ds == nil {
		return
	}
	band, err := ds.Band(idx)
	if err != nil {
		cp.statsLabel.SetText("")
		return
	}
	cp.statsLabel.SetText(metrics.ComputeBandStats(ds.Names()[idx], band).String())
}

func (cp *ControlPanel) SetErrorCallback(onError func(error)) {
	cp.onError = onError
}

func (cp *ControlPanel) report(err error) {
	if err == nil {
		return
	}
	cp.logger.WithError(err).Debug("Control action failed")
	if cp.onError != nil {
		cp.onError(err)
	}
}

func (cp *ControlPanel) Enable() {
	for _, sel := range []*widget.Select{cp.redSelect, cp.greenSelect, cp.blueSelect, cp.singleSelect, cp.filterSelect} {
		sel.Enable()
	}
	cp.compositeBtn.Enable()
}

func (cp *ControlPanel) Disable() {
	for _, sel := range []*widget.Select{cp.redSelect, cp.greenSelect, cp.blueSelect, cp.singleSelect, cp.filterSelect} {
		sel.Disable()
	}
	cp.compositeBtn.Disable()
}
