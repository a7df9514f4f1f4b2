package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/theme"
	"github.com/1broseidon/deskos/internal/wm"
)

// Geometry configures window placement. Values are in terminal cells.
type Geometry struct {
	// Preset names the builtin geometry the other fields override.
	Preset              string         `yaml:"preset"`
	TopInset            int            `yaml:"top_inset"`
	BottomInset         int            `yaml:"bottom_inset"`
	MinWidth            int            `yaml:"min_width"`
	MinHeight           int            `yaml:"min_height"`
	DefaultWidth        int            `yaml:"default_width"`
	DefaultHeight       int            `yaml:"default_height"`
	CascadeOrigin       platform.Point `yaml:"cascade_origin"`
	CascadeStep         platform.Point `yaml:"cascade_step"`
	MobileBreakpoint    int            `yaml:"mobile_breakpoint"`
	MobileOrigin        platform.Point `yaml:"mobile_origin"`
	MobileWidthPercent  int            `yaml:"mobile_width_percent"`
	MobileHeightPercent int            `yaml:"mobile_height_percent"`
	BaseZ               int            `yaml:"base_z"`
}

// Policy converts the geometry into window manager rules.
func (g Geometry) Policy() wm.Policy {
	return wm.Policy{
		TopInset:            g.TopInset,
		BottomInset:         g.BottomInset,
		MinWidth:            g.MinWidth,
		MinHeight:           g.MinHeight,
		DefaultWidth:        g.DefaultWidth,
		DefaultHeight:       g.DefaultHeight,
		CascadeOrigin:       g.CascadeOrigin,
		CascadeStep:         g.CascadeStep,
		MobileBreakpoint:    g.MobileBreakpoint,
		MobileOrigin:        g.MobileOrigin,
		MobileWidthPercent:  g.MobileWidthPercent,
		MobileHeightPercent: g.MobileHeightPercent,
		BaseZ:               g.BaseZ,
	}
}

func geometryFromPolicy(preset string, p wm.Policy) Geometry {
	return Geometry{
		Preset:              preset,
		TopInset:            p.TopInset,
		BottomInset:         p.BottomInset,
		MinWidth:            p.MinWidth,
		MinHeight:           p.MinHeight,
		DefaultWidth:        p.DefaultWidth,
		DefaultHeight:       p.DefaultHeight,
		CascadeOrigin:       p.CascadeOrigin,
		CascadeStep:         p.CascadeStep,
		MobileBreakpoint:    p.MobileBreakpoint,
		MobileOrigin:        p.MobileOrigin,
		MobileWidthPercent:  p.MobileWidthPercent,
		MobileHeightPercent: p.MobileHeightPercent,
		BaseZ:               p.BaseZ,
	}
}

// StartupApp is an application opened when the desktop starts.
type StartupApp struct {
	App     string            `yaml:"app"`
	Title   string            `yaml:"title,omitempty"`
	Params  map[string]string `yaml:"params,omitempty"`
	DelayMS int               `yaml:"delay_ms,omitempty"`
}

// LoggingConfig configures the window event journal.
type LoggingConfig struct {
	// Enabled turns the journal on/off
	Enabled bool `yaml:"enabled,omitempty"`
	// Level controls verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the journal path (default: ~/.local/share/deskos/window-events.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the size that triggers rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// Config is the effective desktop configuration.
type Config struct {
	Theme       string        `yaml:"theme"`
	ViewMode    string        `yaml:"view_mode"`
	LogLevel    string        `yaml:"log_level"`
	ClockFormat string        `yaml:"clock_format"`
	DataDir     string        `yaml:"data_dir,omitempty"`
	DebugLog    string        `yaml:"debug_log,omitempty"`
	Geometry    Geometry      `yaml:"geometry"`
	Dock        []string      `yaml:"dock"`
	Startup     []StartupApp  `yaml:"startup"`
	Logging     LoggingConfig `yaml:"logging,omitempty"`
}

const (
	DefaultClockFormat = "15:04"
	// DefaultStartupDelayMS matches the length of the boot splash.
	DefaultStartupDelayMS = 1200
)

func DefaultConfig() *Config {
	return &Config{
		Theme:       string(theme.Dark),
		ViewMode:    string(wm.ViewDesktop),
		LogLevel:    "info",
		ClockFormat: DefaultClockFormat,
		Geometry:    BuiltinGeometries()[DefaultGeometryPreset],
		Dock:        defaultDock(),
		Startup: []StartupApp{
			{App: registry.Browser, Title: "Portfolio", DelayMS: DefaultStartupDelayMS},
		},
	}
}

func defaultDock() []string {
	var ids []string
	for _, app := range registry.Builtin() {
		if app.Dock {
			ids = append(ids, app.ID)
		}
	}
	return ids
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "deskos", "config.yaml"), nil
}

func dataHome() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.Getenv("HOME")
	}
	if home == "" {
		// Last resort fallback - use current directory
		home = "."
	}
	return filepath.Join(home, ".local", "share", "deskos")
}

// GetDataDir returns where applications write exports and previews.
func (c *Config) GetDataDir() string {
	if c == nil || c.DataDir == "" {
		return dataHome()
	}
	return c.DataDir
}

// GetLoggingConfig returns the journal configuration with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return LoggingConfig{}
	}
	cfg := c.Logging
	if cfg.File == "" {
		cfg.File = filepath.Join(dataHome(), "window-events.log")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// Policy returns the window manager rules for this config.
func (c *Config) Policy() wm.Policy {
	return c.Geometry.Policy()
}

// ThemeName returns the configured palette.
func (c *Config) ThemeName() theme.Name {
	return theme.Name(c.Theme)
}

// InitialViewMode returns the configured view mode.
func (c *Config) InitialViewMode() wm.ViewMode {
	return wm.ViewMode(c.ViewMode)
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

var logLevels = []string{"debug", "info", "warn", "error"}

func (c *Config) Validate() error {
	if !theme.Name(c.Theme).Valid() {
		return &ValidationError{Path: "theme", Err: fmt.Errorf("theme must be one of: dark, light")}
	}
	switch wm.ViewMode(c.ViewMode) {
	case wm.ViewDesktop, wm.ViewMobile:
	default:
		return &ValidationError{Path: "view_mode", Err: fmt.Errorf("view_mode must be one of: desktop, mobile")}
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: %s", strings.Join(logLevels, ", "))}
	}
	if strings.TrimSpace(c.ClockFormat) == "" {
		return &ValidationError{Path: "clock_format", Err: fmt.Errorf("clock_format must not be empty")}
	}
	if err := validateGeometry(c.Geometry); err != nil {
		return err
	}

	known := make(map[string]bool)
	for _, app := range registry.Builtin() {
		known[app.ID] = true
	}
	if len(c.Dock) == 0 {
		return &ValidationError{Path: "dock", Err: fmt.Errorf("dock must not be empty")}
	}
	for _, id := range c.Dock {
		if !known[id] {
			return &ValidationError{Path: "dock", Err: fmt.Errorf("%w: %s", registry.ErrUnknownApp, id)}
		}
	}
	for i, s := range c.Startup {
		path := fmt.Sprintf("startup.%d", i)
		if !known[s.App] {
			return &ValidationError{Path: path + ".app", Err: fmt.Errorf("%w: %q", registry.ErrUnknownApp, s.App)}
		}
		if s.DelayMS < 0 {
			return &ValidationError{Path: path + ".delay_ms", Err: fmt.Errorf("delay_ms must be >= 0")}
		}
	}

	if c.Logging.Level != "" && !slices.Contains(logLevels, c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("logging.level must be one of: %s", strings.Join(logLevels, ", "))}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	return nil
}

func validateGeometry(g Geometry) error {
	positive := []struct {
		path  string
		value int
	}{
		{"geometry.min_width", g.MinWidth},
		{"geometry.min_height", g.MinHeight},
		{"geometry.default_width", g.DefaultWidth},
		{"geometry.default_height", g.DefaultHeight},
	}
	for _, f := range positive {
		if f.value <= 0 {
			return &ValidationError{Path: f.path, Err: fmt.Errorf("must be > 0")}
		}
	}
	if g.TopInset < 0 || g.BottomInset < 0 {
		return &ValidationError{Path: "geometry", Err: fmt.Errorf("insets must be >= 0")}
	}
	if g.DefaultWidth < g.MinWidth || g.DefaultHeight < g.MinHeight {
		return &ValidationError{Path: "geometry.default_width", Err: fmt.Errorf("default size must not be below the minimum size")}
	}
	for _, p := range []struct {
		path  string
		value int
	}{
		{"geometry.mobile_width_percent", g.MobileWidthPercent},
		{"geometry.mobile_height_percent", g.MobileHeightPercent},
	} {
		if p.value < 1 || p.value > 100 {
			return &ValidationError{Path: p.path, Err: fmt.Errorf("must be between 1 and 100")}
		}
	}
	if g.MobileBreakpoint < 0 {
		return &ValidationError{Path: "geometry.mobile_breakpoint", Err: fmt.Errorf("must be >= 0")}
	}
	return nil
}
