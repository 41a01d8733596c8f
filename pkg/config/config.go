// Package config provides configuration loading and management for arrview.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"arrview/pkg/normalize"
	"arrview/pkg/viewstate"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// View parameters mirror the ViewState tunables
	View struct {
		// Contrast is the DS9-style contrast factor, typically 0-10
		Contrast float64 `yaml:"contrast"`

		// Bias is the DS9-style bias, typically 0-1
		Bias float64 `yaml:"bias"`

		// Stretch is one of "linear", "log", "symmetric"
		Stretch string `yaml:"stretch"`

		// VMin and VMax are the scale bounds; omitted values are
		// derived from the data at render time
		VMin *float64 `yaml:"vmin"`
		VMax *float64 `yaml:"vmax"`

		// Colormap is the viewer colormap name (Gray, Inferno, Magma,
		// RdBu, RdYlBu)
		Colormap string `yaml:"colormap"`

		// ReverseColormap flips the colormap direction
		ReverseColormap bool `yaml:"reverseColormap"`

		// SliceIndices selects the visible slice on the leading axes
		SliceIndices []int `yaml:"sliceIndices"`
	} `yaml:"view"`

	// Output parameters
	Output struct {
		// Width and Height request the export image size in pixels;
		// zero means the slice's own dimensions
		Width  int `yaml:"width"`
		Height int `yaml:"height"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.View.Contrast = 1.0
	cfg.View.Bias = 0.5
	cfg.View.Stretch = string(viewstate.StretchLinear)
	cfg.View.Colormap = "Gray"

	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// ApplyView copies the view parameters onto a ViewState. The stretch name
// is validated; slice indices are applied only when present and require an
// array to already be set.
func (c *Config) ApplyView(vs *viewstate.ViewState) error {
	switch viewstate.Stretch(c.View.Stretch) {
	case viewstate.StretchLinear, viewstate.StretchLog, viewstate.StretchSymmetric:
	default:
		return fmt.Errorf("unknown stretch %q, expected linear, log, or symmetric", c.View.Stretch)
	}

	vs.Contrast = c.View.Contrast
	vs.Bias = c.View.Bias
	vs.StretchMode = viewstate.Stretch(c.View.Stretch)
	vs.Colormap = c.View.Colormap
	vs.ReverseColormap = c.View.ReverseColormap

	vs.VMin = normalize.Unset()
	if c.View.VMin != nil {
		vs.VMin = normalize.Fixed(*c.View.VMin)
	}
	vs.VMax = normalize.Unset()
	if c.View.VMax != nil {
		vs.VMax = normalize.Fixed(*c.View.VMax)
	}

	if len(c.View.SliceIndices) > 0 {
		if err := vs.SetSliceIndices(c.View.SliceIndices); err != nil {
			return err
		}
	}
	return nil
}
