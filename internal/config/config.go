// Package config handles gcodeview configuration loading and management.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/philipparndt/gcodeview/pkg/gcode"
	"github.com/philipparndt/gcodeview/pkg/geometry"
	"github.com/philipparndt/gcodeview/pkg/preview"
)

// Config holds all settings.
type Config struct {
	View      ViewConfig      `yaml:"view"`
	Transform TransformConfig `yaml:"transform"`
	Watch     WatchConfig     `yaml:"watch"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ViewConfig holds the initial view settings.
type ViewConfig struct {
	Channel string `yaml:"channel"`
	// ZMin and ZMax are unbounded when unset.
	ZMin   *float32 `yaml:"z_min,omitempty"`
	ZMax   *float32 `yaml:"z_max,omitempty"`
	Hidden []string `yaml:"hidden_categories,omitempty"` // ;TYPE: labels
}

// TransformConfig places the toolpath in the scene.
type TransformConfig struct {
	Offset [3]float32 `yaml:"offset"`
	Scale  float32    `yaml:"scale"`
}

// WatchConfig holds file watching settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			Channel: preview.ChannelFeatureType.String(),
		},
		Transform: TransformConfig{
			Scale: 1,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks names and ranges that YAML decoding cannot.
func (c *Config) Validate() error {
	if _, err := c.PreviewView(); err != nil {
		return err
	}
	if c.Transform.Scale <= 0 {
		return fmt.Errorf("transform scale must be positive, got %v", c.Transform.Scale)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative, got %v", c.Watch.Debounce)
	}
	return nil
}

// PreviewView converts the view section into a preview.ViewConfig.
func (c *Config) PreviewView() (preview.ViewConfig, error) {
	view := preview.DefaultViewConfig()

	ch, err := preview.ParseChannel(c.View.Channel)
	if err != nil {
		return view, err
	}
	view.Channel = ch

	if c.View.ZMin != nil {
		view.ZMin = *c.View.ZMin
	}
	if c.View.ZMax != nil {
		view.ZMax = *c.View.ZMax
	}
	if math.IsNaN(float64(view.ZMin)) || math.IsNaN(float64(view.ZMax)) {
		return view, fmt.Errorf("z bounds must be numbers")
	}

	for _, label := range c.View.Hidden {
		cat, ok := gcode.ParseCategory(label)
		if !ok {
			return view, fmt.Errorf("hidden category %q: %w", label, gcode.ErrUnknownCategory)
		}
		view.Visible = view.Visible.Without(cat)
	}
	return view, nil
}

// Offset returns the transform offset as a vector.
func (c *Config) Offset() geometry.Vector3 {
	o := c.Transform.Offset
	return geometry.NewVector3(o[0], o[1], o[2])
}
