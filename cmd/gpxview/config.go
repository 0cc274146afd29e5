// cmd/gpxview/config.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trackplot/gpxview/pkg/log"
	"github.com/trackplot/gpxview/pkg/platform"
	"github.com/trackplot/gpxview/pkg/trackview"

	"github.com/go-playground/validator/v10"
	"github.com/goforj/godump"
	"github.com/spf13/viper"
)

// Config holds the user's settings. It is read from an optional
// config.yaml and GPXVIEW_* environment variables at startup and is
// never written back.
type Config struct {
	// Backend selects the Platform and Renderer implementations.
	Backend  string `mapstructure:"backend" validate:"oneof=glfw sdl terminal"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogDir   string `mapstructure:"log_dir"`

	// DistanceThresholdKm is the initial value for the longest segment
	// that is drawn.
	DistanceThresholdKm float64 `mapstructure:"distance_threshold_km" validate:"gt=0"`
	// Concurrency bounds how many GPX files are parsed at once; zero
	// uses all CPUs.
	Concurrency int `mapstructure:"concurrency" validate:"gte=0"`

	Cache  CacheConfig     `mapstructure:"cache"`
	Window platform.Config `mapstructure:"window"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// MaxMB is the size the parse cache is culled to at startup.
	MaxMB int64 `mapstructure:"max_mb" validate:"gte=0"`
}

const configEnvPrefix = "GPXVIEW"

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("backend", "glfw")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "")
	v.SetDefault("distance_threshold_km", trackview.DefaultDistanceKm)
	v.SetDefault("concurrency", 0)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_mb", 256)
	v.SetDefault("window.initial_window_size", []int{0, 0})
	v.SetDefault("window.initial_window_position", []int{100, 100})
	v.SetDefault("window.enable_msaa", true)
	v.SetDefault("window.start_in_fullscreen", true)
	v.SetDefault("window.fullscreen_monitor", 0)
}

// LoadConfig returns the configuration given by the defaults, the first
// config.yaml found in the given directories, and the environment, in
// increasing order of precedence. A missing config file is fine; a
// malformed or invalid one is an error.
func LoadConfig(dirs ...string) (*Config, error) {
	v := viper.New()
	setConfigDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	// e.g. GPXVIEW_WINDOW_START_IN_FULLSCREEN -> window.start_in_fullscreen
	v.SetEnvPrefix(configEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.Backend = strings.ToLower(c.Backend)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the field constraints given in the struct tags,
// including those of the window settings.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Log records the effective configuration; the complete dump is only
// generated at debug level.
func (c *Config) Log(lg *log.Logger) {
	lg.Info("Configuration", "backend", c.Backend, "distance_threshold_km", c.DistanceThresholdKm,
		"cache", c.Cache.Enabled)
	if lg != nil && lg.Enabled(context.Background(), slog.LevelDebug) {
		lg.Debug("Configuration dump", "config", godump.DumpStr(c))
	}
}
