// Scrollable display of the adjusted image
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/sirupsen/logrus"

	"band-visualizer/internal/raster"
)

// ImageCanvas shows the display image at its pixel size inside a scroller
type ImageCanvas struct {
	logger logrus.FieldLogger

	image    *canvas.Image
	scroller *container.Scroll
}

func NewImageCanvas(logger logrus.FieldLogger) *ImageCanvas {
	ic := &ImageCanvas{logger: logger}
	ic.initializeUI()
	return ic
}

func (ic *ImageCanvas) initializeUI() {
	ic.image = canvas.NewImageFromImage(placeholderImage())
	ic.image.FillMode = canvas.ImageFillOriginal
	ic.image.ScaleMode = canvas.ImageScalePixels
	ic.image.SetMinSize(fyne.NewSize(200, 150))

	ic.scroller = container.NewScroll(container.NewCenter(ic.image))
}

func (ic *ImageCanvas) GetContainer() fyne.CanvasObject {
	return ic.scroller
}

// Update replaces the shown image; nil clears it.
func (ic *ImageCanvas) Update(display *raster.Image) {
	if display == nil {
		ic.image.Image = placeholderImage()
		ic.image.SetMinSize(fyne.NewSize(200, 150))
		ic.image.Refresh()
		return
	}

	ic.logger.WithFields(logrus.Fields{
		"width":  display.Width(),
		"height": display.Height(),
	}).Debug("Updating display image")

	ic.image.File = ""
	ic.image.Resource = nil
	ic.image.Image = display
	ic.image.SetMinSize(fyne.NewSize(float32(display.Width()), float32(display.Height())))
	ic.image.Refresh()
}

// placeholderImage is a light gray 200x150 fill shown before anything is rendered.
func placeholderImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 240, 240, 240, 255
	}
	return img
}
