// config.go - Static configuration for VidWall

/*
██╗   ██╗██╗██████╗ ██╗    ██╗ █████╗ ██╗     ██╗
██║   ██║██║██╔══██╗██║    ██║██╔══██╗██║     ██║
██║   ██║██║██║  ██║██║ █╗ ██║███████║██║     ██║
╚██╗ ██╔╝██║██║  ██║██║███╗██║██╔══██║██║     ██║
 ╚████╔╝ ██║██████╔╝╚███╔███╔╝██║  ██║███████╗███████╗
  ╚═══╝  ╚═╝╚═════╝  ╚═══╝╚═══╝╚═╝  ╚═╝╚══════╝╚══════╝

(c) 2025 - 2026 The VidWall Authors
https://github.com/vidwall/vidwall
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FormatEntry is one codec/path pair in the configuration file.
type FormatEntry struct {
	Codec string `toml:"codec"`
	Path  string `toml:"path"`
}

// Config is the static configuration of the wall. Loaded once at
// startup; only presentation tuning is hot-reloadable.
type Config struct {
	Title             string        `toml:"title"`
	BasePath          string        `toml:"base_path"`
	Width             int           `toml:"width"`
	Height            int           `toml:"height"`
	Fullscreen        bool          `toml:"fullscreen"`
	PaddingPercent    float64       `toml:"padding_percent"`
	FlipY             bool          `toml:"flip_y"`
	RequireGesture    bool          `toml:"require_gesture"`
	CapabilityProfile string        `toml:"capability_profile"`
	Landscape         []FormatEntry `toml:"landscape"`
	Portrait          []FormatEntry `toml:"portrait"`
}

// DefaultConfig returns the built-in defaults applied before the file
// and environment are read.
func DefaultConfig() Config {
	return Config{
		Title:             "VidWall",
		Width:             1280,
		Height:            720,
		Fullscreen:        false,
		PaddingPercent:    10,
		CapabilityProfile: "auto",
	}
}

// LoadConfig reads a TOML file over the defaults, then applies
// environment overrides (VIDWALL_BASE_PATH, VIDWALL_CAPABILITY_PROFILE).
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VIDWALL_BASE_PATH"); v != "" {
		cfg.BasePath = v
	}
	if v := os.Getenv("VIDWALL_CAPABILITY_PROFILE"); v != "" {
		cfg.CapabilityProfile = v
	}
}

// Validate fails fast on startup-time defects, before any controller is
// constructed.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window dimensions %dx%d", c.Width, c.Height)
	}
	if c.PaddingPercent < 0 || c.PaddingPercent >= 45 {
		return fmt.Errorf("padding_percent %v out of range [0, 45)", c.PaddingPercent)
	}
	if _, err := c.Variant(); err != nil {
		return err
	}
	return nil
}

// Variant builds the immutable orientation variant from configuration,
// resolving every path against the base path. The landscape set is
// mandatory; portrait is optional.
func (c Config) Variant() (OrientationVariant, error) {
	landscape, err := c.buildSet(c.Landscape)
	if err != nil {
		return OrientationVariant{}, fmt.Errorf("landscape: %w", err)
	}
	v := OrientationVariant{Landscape: landscape}
	if len(c.Portrait) > 0 {
		portrait, err := c.buildSet(c.Portrait)
		if err != nil {
			return OrientationVariant{}, fmt.Errorf("portrait: %w", err)
		}
		v.Portrait = &portrait
	}
	return v, nil
}

func (c Config) buildSet(entries []FormatEntry) (MediaFormatSet, error) {
	set := MediaFormatSet{}
	for _, e := range entries {
		codec, err := ParseCodec(e.Codec)
		if err != nil {
			return set, err
		}
		set.Formats = append(set.Formats, MediaFormat{
			Codec: codec,
			Path:  ResolvePath(c.BasePath, e.Path),
		})
	}
	if err := set.Validate(); err != nil {
		return set, err
	}
	return set, nil
}

// WallOptions derives the controller options from configuration.
func (c Config) WallOptions() WallOptions {
	return WallOptions{
		Title:          c.Title,
		Width:          c.Width,
		Height:         c.Height,
		Fullscreen:     c.Fullscreen,
		PaddingPercent: c.PaddingPercent,
		FlipY:          c.FlipY,
		RequireGesture: c.RequireGesture,
	}
}

// ResolvePath prefixes a relative asset path with the deployment base
// path. Absolute paths and empty inputs pass through untouched, so the
// same configuration works from a root or sub-path deployment.
func ResolvePath(base, p string) string {
	if p == "" || base == "" {
		return p
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, "://") {
		return p
	}
	return strings.TrimSuffix(base, "/") + "/" + p
}
