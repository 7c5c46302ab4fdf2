// Package config loads the rubiksify configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/batch"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
)

// Default endpoint URLs.
const (
	DefaultRendererURL = "https://www.cs.toronto.edu/~motiwala/rubiksify.cgi"
	DefaultDetectorURL = "https://www.cs.toronto.edu/~motiwala/get-cubes.cgi"
	DefaultSolverURL   = "https://www.cs.toronto.edu/~motiwala/cube-generator.cgi"
)

const (
	DefaultWidth   = 10
	DefaultHeight  = 10
	DefaultTimeout = "60s"
)

// Endpoints are the remote service URLs.
type Endpoints struct {
	Renderer string `json:"renderer"`
	Detector string `json:"detector"`
	Solver   string `json:"solver"`
}

// Config is the contents of config.yaml.
type Config struct {
	Endpoints   Endpoints         `json:"endpoints"`
	Palette     rubiksify.Palette `json:"palette,omitempty"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Dither      renderer.Dither   `json:"dither"`
	ExactSize   bool              `json:"exactSize"`
	Concurrency int               `json:"concurrency"`
	Timeout     string            `json:"timeout"`
	// Database overrides the archive location.
	Database string `json:"database,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoints: Endpoints{
			Renderer: DefaultRendererURL,
			Detector: DefaultDetectorURL,
			Solver:   DefaultSolverURL,
		},
		Palette:     rubiksify.DefaultPalette(),
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Dither:      renderer.DitherFloydSteinberg,
		Concurrency: batch.DefaultLimit,
		Timeout:     DefaultTimeout,
	}
}

// Dir returns ~/.rubiksify, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".rubiksify")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, leaving fields absent from data untouched, and
// validates the result.
func Parse(data []byte, cfg *Config) error {
	// A partial palette in the file only overrides the faces it names.
	base := cfg.Palette.Clone()
	cfg.Palette = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %v", rubiksify.ErrValidation, err)
	}
	for f, c := range cfg.Palette {
		if base == nil {
			base = rubiksify.Palette{}
		}
		base[f] = c
	}
	cfg.Palette = base
	return cfg.Validate()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := c.Recipe(); err != nil {
		return err
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", rubiksify.ErrValidation, c.Concurrency)
	}
	for name, u := range map[string]string{
		"renderer": c.Endpoints.Renderer,
		"detector": c.Endpoints.Detector,
		"solver":   c.Endpoints.Solver,
	} {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("%w: %s endpoint %q is not an http(s) URL", rubiksify.ErrValidation, name, u)
		}
	}
	return nil
}

// Recipe returns the render recipe described by the configuration.
func (c *Config) Recipe() (renderer.Recipe, error) {
	dither, err := renderer.ParseDither(string(c.Dither))
	if err != nil {
		return renderer.Recipe{}, err
	}
	r := renderer.Recipe{
		Dither:    dither,
		Width:     c.Width,
		Height:    c.Height,
		ExactSize: c.ExactSize,
		Palette:   c.Palette.Clone(),
	}
	if err := r.Validate(); err != nil {
		return renderer.Recipe{}, err
	}
	return r, nil
}

// RequestTimeout parses Timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", rubiksify.ErrValidation, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive", rubiksify.ErrValidation)
	}
	return d, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
