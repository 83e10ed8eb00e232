// Raster loading into bands and saving of rendered images
package io

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
	_ "golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"band-visualizer/internal/raster"
)

// sidecarSuffix names the optional band-name file stored next to a raster.
const sidecarSuffix = ".bands.yaml"

// RasterLoader decodes raster files into datasets and writes rendered images.
type RasterLoader struct {
	logger logrus.FieldLogger
}

func NewRasterLoader(logger logrus.FieldLogger) *RasterLoader {
	return &RasterLoader{
		logger: logger,
	}
}

// Load decodes every page and channel of the file into bands, in file
// order, and attaches band names from the sidecar file when present.
func (rl *RasterLoader) Load(path string) (*raster.Dataset, error) {
	log := rl.logger.WithField("filepath", path)
	log.Debug("Loading raster")

	if !isSupportedImageFormat(path) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}

	bands, err := rl.decodeWithOpenCV(path)
	if err != nil {
		log.WithError(err).Debug("OpenCV decode failed, falling back to Go decoders")
		if bands, err = decodeStandard(path); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	names, err := ReadBandNames(SidecarPath(path))
	if err != nil {
		return nil, err
	}

	ds, err := raster.NewDataset(bands, names)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	log.WithFields(logrus.Fields{
		"bands":  ds.BandCount(),
		"width":  ds.Width(),
		"height": ds.Height(),
		"named":  names != nil,
	}).Info("Raster loaded successfully")
	return ds, nil
}

func (rl *RasterLoader) decodeWithOpenCV(path string) ([]raster.Band, error) {
	pages := gocv.IMReadMulti(path, gocv.IMReadUnchanged)
	defer closeAll(pages)

	var channels []gocv.Mat
	defer func() { closeAll(channels) }()

	for _, page := range pages {
		if page.Empty() {
			continue
		}
		split := gocv.Split(page)
		// OpenCV keeps colour pages as BGR(A); file order is RGB(A)
		if len(split) >= 3 {
			split[0], split[2] = split[2], split[0]
		}
		channels = append(channels, split...)
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("no readable pages")
	}

	bands := make([]raster.Band, len(channels))
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i, ch := range channels {
		g.Go(func() error {
			band, err := matToBand(ch)
			if err != nil {
				return fmt.Errorf("band %d: %w", i+1, err)
			}
			bands[i] = band
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bands, nil
}

func matToBand(ch gocv.Mat) (raster.Band, error) {
	converted := gocv.NewMat()
	defer converted.Close()

	if err := ch.ConvertTo(&converted, gocv.MatTypeCV32F); err != nil {
		return raster.Band{}, fmt.Errorf("convert to float32: %w", err)
	}
	data, err := converted.DataPtrFloat32()
	if err != nil {
		return raster.Band{}, fmt.Errorf("read float32 samples: %w", err)
	}
	samples := make([]float32, len(data))
	copy(samples, data)
	return raster.NewBand(converted.Cols(), converted.Rows(), samples)
}

// decodeStandard decodes with the registered Go image decoders. Gray
// images give one band; everything else gives red, green and blue bands.
func decodeStandard(path string) ([]raster.Band, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return imageToBands(img)
}

func imageToBands(img image.Image) ([]raster.Band, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch img.(type) {
	case *image.Gray, *image.Gray16:
		samples := make([]float32, 0, w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				v, _, _, _ := img.At(x, y).RGBA()
				samples = append(samples, float32(v))
			}
		}
		band, err := raster.NewBand(w, h, samples)
		if err != nil {
			return nil, err
		}
		return []raster.Band{band}, nil
	}

	planes := [3][]float32{make([]float32, 0, w*h), make([]float32, 0, w*h), make([]float32, 0, w*h)}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			planes[0] = append(planes[0], float32(r))
			planes[1] = append(planes[1], float32(g))
			planes[2] = append(planes[2], float32(bl))
		}
	}

	bands := make([]raster.Band, 0, 3)
	for _, p := range planes {
		band, err := raster.NewBand(w, h, p)
		if err != nil {
			return nil, err
		}
		bands = append(bands, band)
	}
	return bands, nil
}

// SidecarPath returns where band names for path are looked up.
func SidecarPath(path string) string {
	return path + sidecarSuffix
}

type bandNamesFile struct {
	Bands []string `yaml:"bands"`
}

// ReadBandNames reads a sidecar file holding either a plain YAML list of
// names or a mapping with a "bands" list. A missing file yields nil names.
func ReadBandNames(path string) ([]string, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read band names %q: %w", path, err)
	}

	var list []string
	if err := yaml.Unmarshal(contents, &list); err == nil {
		return list, nil
	}
	var named bandNamesFile
	if err := yaml.Unmarshal(contents, &named); err != nil {
		return nil, fmt.Errorf("parse band names %q: %w", path, err)
	}
	return named.Bands, nil
}

// SaveImage writes img as PNG or JPEG, chosen by file extension.
func (rl *RasterLoader) SaveImage(img *raster.Image, path string, jpegQuality int) error {
	rl.logger.WithField("filepath", path).Debug("Saving image")

	if img == nil {
		return fmt.Errorf("cannot save empty image")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return fmt.Errorf("unsupported save format: %s", path)
	}

	// gocv only accepts the concrete *image.RGBA for the RGBA colour model
	mat, err := gocv.ImageToMatRGB(img.ToRGBA())
	if err != nil {
		return fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	var ok bool
	if ext == ".png" {
		ok = gocv.IMWrite(path, mat)
	} else {
		ok = gocv.IMWriteWithParams(path, mat, []int{gocv.IMWriteJpegQuality, jpegQuality})
	}
	if !ok {
		return fmt.Errorf("failed to save image: %s", path)
	}

	rl.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    img.Width(),
		"height":   img.Height(),
	}).Info("Image saved successfully")
	return nil
}

func isSupportedImageFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range GetSupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// GetSupportedFormats lists the extensions offered in file dialogs.
func GetSupportedFormats() []string {
	return []string{".tif", ".tiff", ".jpg", ".jpeg", ".png"}
}

func closeAll(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}
