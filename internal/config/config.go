// Package config holds the runtime tunables for fleetgrid. Defaults are
// overridden by an optional YAML file, and flags override both.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// dataset
	TotalRows int `yaml:"total_rows"`
	ChunkSize int `yaml:"chunk_size"`

	// windowing
	ItemHeight int `yaml:"item_height"` // lines per table row
	Overscan   int `yaml:"overscan"`

	// render
	FrameFPS  int `yaml:"frame_fps"`
	PlotFPS   int `yaml:"plot_fps"`
	ViewSplit int `yaml:"view_split"` // table pane width as % of the screen [20,80]

	// search
	SearchDebounce time.Duration `yaml:"search_debounce"`

	// diagnostics
	StatsEnabled bool   `yaml:"stats"`
	StatsWindow  int    `yaml:"stats_window"`
	LogFile      string `yaml:"log_file"`

	AltScreen bool `yaml:"alt_screen"`
}

func Default() Config {
	return Config{
		TotalRows:      100_000,
		ChunkSize:      500,
		ItemHeight:     2,
		Overscan:       20,
		FrameFPS:       30,
		PlotFPS:        20,
		ViewSplit:      60,
		SearchDebounce: 250 * time.Millisecond,
		StatsEnabled:   false,
		StatsWindow:    256,
		AltScreen:      true,
	}
}

// LoadFile overlays values from a YAML file onto c. Fields absent from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// ValidateAndNormalize rejects unusable values and clamps soft ones.
func (c *Config) ValidateAndNormalize() error {
	if c.TotalRows < 0 {
		return fmt.Errorf("-rows must be >= 0")
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("-chunk-size must be >= 1")
	}
	if c.ItemHeight < 1 {
		return fmt.Errorf("-item-height must be >= 1")
	}
	if c.Overscan < 0 {
		return fmt.Errorf("-overscan must be >= 0")
	}
	if c.FrameFPS < 1 {
		return fmt.Errorf("-frame-fps must be >= 1")
	}
	if c.PlotFPS < 1 {
		return fmt.Errorf("-plot-fps must be >= 1")
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("-search-debounce must be >= 0")
	}
	c.ViewSplit = max(20, min(80, c.ViewSplit))
	if c.StatsWindow < 16 {
		c.StatsWindow = 16
	}
	return nil
}
