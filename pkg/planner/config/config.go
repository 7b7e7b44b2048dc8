// Package config holds the parameters used to turn a map image into an
// occupancy grid, loaded from a YAML file with PLANNER_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every key when reading environment overrides,
// e.g. PLANNER_MAP_WIDTH.
const EnvPrefix = "PLANNER"

// MapConfig describes how a map image is resized, thresholded and divided into cells.
type MapConfig struct {
	Width      int `yaml:"map_width" mapstructure:"map_width"`
	Height     int `yaml:"map_height" mapstructure:"map_height"`
	Dilation   int `yaml:"map_dilation" mapstructure:"map_dilation"`
	WindowSize int `yaml:"window_size" mapstructure:"window_size"`
	MinThresh  int `yaml:"min_thresh" mapstructure:"min_thresh"`
	MaxThresh  int `yaml:"max_thresh" mapstructure:"max_thresh"`
	FreeThresh int `yaml:"free_thresh" mapstructure:"free_thresh"`
}

// DefaultConfig returns the parameters of the default 640x480 map.
func DefaultConfig() *MapConfig {
	return &MapConfig{
		Width:      640,
		Height:     480,
		Dilation:   2,
		WindowSize: 10,
		MinThresh:  200,
		MaxThresh:  255,
		FreeThresh: 225,
	}
}

// Load reads a MapConfig from the YAML file at path. An empty path yields the
// defaults. Environment variables override both the file and the defaults.
func Load(path string) (*MapConfig, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("map_width", def.Width)
	v.SetDefault("map_height", def.Height)
	v.SetDefault("map_dilation", def.Dilation)
	v.SetDefault("window_size", def.WindowSize)
	v.SetDefault("min_thresh", def.MinThresh)
	v.SetDefault("max_thresh", def.MaxThresh)
	v.SetDefault("free_thresh", def.FreeThresh)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config: %s: %w", path, os.ErrNotExist)
			}
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg MapConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *MapConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that the parameters describe a usable map.
func (c *MapConfig) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "map_width", Message: "must be positive"}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "map_height", Message: "must be positive"}
	}
	if c.Dilation < 0 {
		return &ConfigError{Field: "map_dilation", Message: "must not be negative"}
	}
	if c.WindowSize <= 0 {
		return &ConfigError{Field: "window_size", Message: "must be positive"}
	}
	if c.WindowSize > c.Width || c.WindowSize > c.Height {
		return &ConfigError{Field: "window_size", Message: "larger than the map"}
	}
	if c.MinThresh < 0 || c.MinThresh > 255 {
		return &ConfigError{Field: "min_thresh", Message: "must be within 0..255"}
	}
	if c.MaxThresh <= 0 || c.MaxThresh > 255 {
		return &ConfigError{Field: "max_thresh", Message: "must be within 1..255"}
	}
	if c.FreeThresh < 0 || c.FreeThresh > 255 {
		return &ConfigError{Field: "free_thresh", Message: "must be within 0..255"}
	}
	return nil
}

// GridRows is the number of grid rows the map divides into.
// Pixels below the last whole window are not part of any cell.
func (c *MapConfig) GridRows() int {
	return c.Height / c.WindowSize
}

// GridCols is the number of grid columns the map divides into.
func (c *MapConfig) GridCols() int {
	return c.Width / c.WindowSize
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
