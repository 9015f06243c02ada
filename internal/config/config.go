package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/svgmotion/internal/svg"
)

// Animation holds the animation parameters applied to every converted
// document. Zero values are never used directly: load with Default()
// and overlay a file on top.
type Animation struct {
	NFrames         int     `json:"n_frames" yaml:"n_frames"`
	Framerate       float64 `json:"framerate" yaml:"framerate"`
	Width           int     `json:"width" yaml:"width"`
	Height          int     `json:"height" yaml:"height"`
	BackgroundColor string  `json:"background_color" yaml:"background_color"`
	Effect          string  `json:"effect" yaml:"effect"`
	Easing          string  `json:"easing" yaml:"easing"`
}

// Default returns the baseline animation settings: a three second
// fade-in at 30 fps on an 800x600 white canvas.
func Default() Animation {
	return Animation{
		NFrames:         90,
		Framerate:       30,
		Width:           800,
		Height:          600,
		BackgroundColor: "#ffffff",
		Effect:          "fade",
		Easing:          "linear",
	}
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Load reads a config file and merges it over the defaults. Keys the
// file omits keep their default value; keys it sets win; unrecognized
// keys are ignored. The format is chosen by extension: .yaml/.yml
// parse as YAML, everything else as JSON.
func Load(path string) (Animation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Animation{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse decodes config bytes over the defaults. ext selects the
// format (".yaml"/".yml" for YAML, anything else JSON).
func Parse(data []byte, ext string) (Animation, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the settings and returns a *ConfigError naming the
// first offending field.
func (a Animation) Validate() error {
	if a.NFrames < 1 {
		return &ConfigError{Field: "n_frames", Reason: fmt.Sprintf("must be at least 1, got %d", a.NFrames)}
	}
	if a.Framerate <= 0 {
		return &ConfigError{Field: "framerate", Reason: fmt.Sprintf("must be positive, got %g", a.Framerate)}
	}
	if a.Width < 1 {
		return &ConfigError{Field: "width", Reason: fmt.Sprintf("must be at least 1, got %d", a.Width)}
	}
	if a.Height < 1 {
		return &ConfigError{Field: "height", Reason: fmt.Sprintf("must be at least 1, got %d", a.Height)}
	}
	if a.BackgroundColor != "" {
		if _, _, err := svg.ParseColor(a.BackgroundColor); err != nil {
			return &ConfigError{Field: "background_color", Reason: err.Error()}
		}
	}
	switch a.Easing {
	case "", "linear", "ease-in-out":
	default:
		return &ConfigError{Field: "easing", Reason: fmt.Sprintf("unknown easing %q", a.Easing)}
	}
	return nil
}

// Duration returns the animation length in seconds.
func (a Animation) Duration() float64 {
	return float64(a.NFrames) / a.Framerate
}
