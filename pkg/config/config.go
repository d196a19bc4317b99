// Package config handles loading and saving kairo configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/kairo/config.yaml
//
// Command-line flags override anything set here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/kairo/pkg/render"
)

// Tabs are the valid values of ui.default_tab, in display order.
var Tabs = []string{"circuit", "services", "portfolio", "about", "contact"}

// GraphConfig points at an optional graph file replacing the built-in circuit.
type GraphConfig struct {
	Path string `yaml:"path,omitempty"` // .yaml, .yml or .json
}

// RenderConfig holds drawing-surface settings.
type RenderConfig struct {
	Width      float64 `yaml:"width,omitempty"`       // CSS pixels
	Height     float64 `yaml:"height,omitempty"`      // CSS pixels
	PixelRatio float64 `yaml:"pixel_ratio,omitempty"` // backing store scale
	FrameMS    int     `yaml:"frame_ms,omitempty"`    // frame interval
	Continuous bool    `yaml:"continuous,omitempty"`  // redraw every frame, not just when dirty
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	DefaultTab string `yaml:"default_tab,omitempty"`
	Mouse      *bool  `yaml:"mouse,omitempty"` // nil means enabled
}

// Config is the top-level configuration for kairo.
type Config struct {
	Graph  GraphConfig       `yaml:"graph,omitempty"`
	Render RenderConfig      `yaml:"render,omitempty"`
	Theme  map[string]string `yaml:"theme,omitempty"` // palette color name -> hex
	UI     UIConfig          `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Width:      800,
			Height:     600,
			PixelRatio: 1,
			FrameMS:    16,
		},
		Theme: make(map[string]string),
		UI: UIConfig{
			DefaultTab: "circuit",
		},
	}
}

// ConfigDir returns the XDG config directory for kairo.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "kairo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "kairo")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Theme == nil {
		cfg.Theme = make(map[string]string)
	}
	cfg.Graph.Path = expandHome(cfg.Graph.Path)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks value ranges and theme colors.
func (c Config) Validate() error {
	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %vx%v", r.Width, r.Height)
	}
	if r.PixelRatio <= 0 {
		return fmt.Errorf("render.pixel_ratio must be positive, got %v", r.PixelRatio)
	}
	if r.FrameMS < 0 {
		return fmt.Errorf("render.frame_ms must not be negative, got %d", r.FrameMS)
	}
	if c.UI.DefaultTab != "" && !slices.Contains(Tabs, strings.ToLower(c.UI.DefaultTab)) {
		return fmt.Errorf("ui.default_tab %q is not one of %s", c.UI.DefaultTab, strings.Join(Tabs, ", "))
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// Palette returns the default palette with theme overrides applied.
func (c Config) Palette() (render.Palette, error) {
	return render.DefaultPalette().Overrides(c.Theme)
}

// FrameInterval converts render.frame_ms, falling back to one display refresh.
func (c Config) FrameInterval() time.Duration {
	if c.Render.FrameMS <= 0 {
		return render.DefaultFrameInterval
	}
	return time.Duration(c.Render.FrameMS) * time.Millisecond
}

// MouseEnabled reports whether mouse tracking is on.
func (c Config) MouseEnabled() bool {
	return c.UI.Mouse == nil || *c.UI.Mouse
}

// GraphPath returns the graph file path with ~ expanded, or "" for the
// built-in circuit.
func (c Config) GraphPath() string {
	return expandHome(c.Graph.Path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
