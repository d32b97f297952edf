/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads grid configuration from a file and the environment.
//
// Keys mirror the struct layout, e.g. grid.sizing.max_width. Every key can
// be overridden by an environment variable with the PIVOTGRID_ prefix and
// dots replaced by underscores (PIVOTGRID_GRID_SIZING_MAX_WIDTH).
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/google/pivotgrid/core/grid"
	"github.com/google/pivotgrid/core/logging"
	"github.com/google/pivotgrid/core/sizing"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "PIVOTGRID"

// Config is the complete configuration surface.
type Config struct {
	Grid      grid.Options `mapstructure:"grid" yaml:"grid"`
	PivotMode bool         `mapstructure:"pivot_mode" yaml:"pivot_mode"`
	LogLevel  string       `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid:     grid.DefaultOptions(),
		LogLevel: "info",
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("pivot_mode", d.PivotMode)
	v.SetDefault("log_level", d.LogLevel)

	v.SetDefault("grid.enable_row_virtualization", d.Grid.EnableRowVirtualization)
	v.SetDefault("grid.enable_auto_column_sizing", d.Grid.EnableAutoColumnSizing)
	v.SetDefault("grid.key_field", d.Grid.KeyField)

	v.SetDefault("grid.sizing.max_sample_size", d.Grid.Sizing.MaxSampleSize)
	v.SetDefault("grid.sizing.min_width", d.Grid.Sizing.MinWidth)
	v.SetDefault("grid.sizing.max_width", d.Grid.Sizing.MaxWidth)
	v.SetDefault("grid.sizing.padding", d.Grid.Sizing.Padding)

	v.SetDefault("grid.metrics.row_height", d.Grid.Metrics.RowHeight)
	v.SetDefault("grid.metrics.header_height", d.Grid.Metrics.HeaderHeight)
	v.SetDefault("grid.metrics.group_header_height", d.Grid.Metrics.GroupHeaderHeight)
	v.SetDefault("grid.metrics.buffer_size", d.Grid.Metrics.BufferSize)
}

// New returns a viper instance with defaults and environment overrides
// registered. Callers may bind flags to it before calling Decode.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path, if any, and applies environment
// overrides on top of the defaults.
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config %s", path)
		}
	}
	return Decode(v)
}

// Decode unmarshals and validates the configuration held by v.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the grid cannot lay out.
func (c Config) Validate() error {
	s := c.Grid.Sizing
	if s.MinWidth > s.MaxWidth {
		return errors.Errorf("grid.sizing.min_width %d exceeds max_width %d", s.MinWidth, s.MaxWidth)
	}
	if s.MaxWidth < sizing.MaxTypeMinWidth {
		return errors.Errorf("grid.sizing.max_width must be at least %d, got %d", sizing.MaxTypeMinWidth, s.MaxWidth)
	}
	if s.Padding < 0 {
		return errors.Errorf("grid.sizing.padding must not be negative, got %d", s.Padding)
	}
	if c.Grid.Metrics.RowHeight <= 0 {
		return errors.Errorf("grid.metrics.row_height must be positive, got %v", c.Grid.Metrics.RowHeight)
	}
	if c.Grid.Metrics.BufferSize < 0 {
		return errors.Errorf("grid.metrics.buffer_size must not be negative, got %d", c.Grid.Metrics.BufferSize)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "error", "warn", "warning", "info", "debug":
	default:
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(strings.ToLower(c.LogLevel))
}
