// Application configuration loaded from YAML
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* Example config file ...

adjustments:
  min: 0.5
  max: 1.5
zoom:
  step: 1.25
  min: 0.05
  max: 20
logging:
  level: info
save:
  jpeg_quality: 95
window:
  width: 1000
  height: 700

*/

type AdjustmentRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type ZoomOptions struct {
	Step float64 `yaml:"step"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

type LoggingOptions struct {
	Level string `yaml:"level"`
}

type SaveOptions struct {
	JPEGQuality int `yaml:"jpeg_quality"`
}

type WindowOptions struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type Config struct {
	Adjustments AdjustmentRange `yaml:"adjustments"`
	Zoom        ZoomOptions     `yaml:"zoom"`
	Logging     LoggingOptions  `yaml:"logging"`
	Save        SaveOptions     `yaml:"save"`
	Window      WindowOptions   `yaml:"window"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	c := Config{}
	if err := c.Finalize(); err != nil {
		panic(err) // defaults are always valid
	}
	return c
}

// Load reads and finalizes a YAML config file. Keys left out of the file
// keep their defaults.
func Load(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", filename, err)
	}
	return Parse(contents)
}

// Parse decodes YAML contents and finalizes the result.
func Parse(contents []byte) (Config, error) {
	c := Config{}
	if err := yaml.Unmarshal(contents, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Finalize(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Finalize fills zero values with defaults and validates ranges.
func (c *Config) Finalize() error {
	if c.Adjustments.Min == 0 {
		c.Adjustments.Min = 0.5
	}
	if c.Adjustments.Max == 0 {
		c.Adjustments.Max = 1.5
	}
	if c.Zoom.Step == 0 {
		c.Zoom.Step = 1.25
	}
	if c.Zoom.Min == 0 {
		c.Zoom.Min = 0.05
	}
	if c.Zoom.Max == 0 {
		c.Zoom.Max = 20
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Save.JPEGQuality == 0 {
		c.Save.JPEGQuality = 95
	}
	if c.Window.Width == 0 {
		c.Window.Width = 1000
	}
	if c.Window.Height == 0 {
		c.Window.Height = 700
	}

	switch {
	case c.Adjustments.Min <= 0 || c.Adjustments.Min > 1:
		return fmt.Errorf("adjustments.min must be in (0,1], got %v", c.Adjustments.Min)
	case c.Adjustments.Max < 1:
		return fmt.Errorf("adjustments.max must be at least 1, got %v", c.Adjustments.Max)
	case c.Zoom.Step <= 1:
		return fmt.Errorf("zoom.step must be greater than 1, got %v", c.Zoom.Step)
	case c.Zoom.Min <= 0 || c.Zoom.Min > 1 || c.Zoom.Max < 1:
		return fmt.Errorf("zoom range [%v,%v] must contain 1", c.Zoom.Min, c.Zoom.Max)
	case c.Save.JPEGQuality < 1 || c.Save.JPEGQuality > 100:
		return fmt.Errorf("save.jpeg_quality must be in [1,100], got %d", c.Save.JPEGQuality)
	}
	return nil
}

// ClampAdjustment limits a slider factor to the configured range.
func (c Config) ClampAdjustment(v float64) float64 {
	return min(max(v, c.Adjustments.Min), c.Adjustments.Max)
}

// ClampZoom limits a zoom factor to the configured guard rails.
func (c Config) ClampZoom(v float64) float64 {
	return min(max(v, c.Zoom.Min), c.Zoom.Max)
}
