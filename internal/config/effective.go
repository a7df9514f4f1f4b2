package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/deskos/internal/platform"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Source.Kind == SourceEnv && e.Source.Name != "" {
		return fmt.Sprintf("%s (from $%s): %v", e.Path, e.Source.Name, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw over the defaults. It also returns the name
// of the geometry preset the result is based on.
func BuildEffectiveConfig(raw RawConfig) (*Config, string, error) {
	cfg := DefaultConfig()

	if raw.Theme != nil {
		cfg.Theme = strings.ToLower(strings.TrimSpace(*raw.Theme))
	}
	if raw.ViewMode != nil {
		cfg.ViewMode = strings.ToLower(strings.TrimSpace(*raw.ViewMode))
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = normalizeLevel(*raw.LogLevel)
	}
	if raw.ClockFormat != nil {
		cfg.ClockFormat = *raw.ClockFormat
	}
	if raw.DataDir != nil {
		cfg.DataDir = *raw.DataDir
	}
	if raw.DebugLog != nil {
		cfg.DebugLog = *raw.DebugLog
	}

	base := DefaultGeometryPreset
	if raw.Geometry != nil {
		geometry, name, err := buildGeometry(*raw.Geometry)
		if err != nil {
			return nil, "", err
		}
		cfg.Geometry = geometry
		base = name
	}

	if raw.Dock != nil {
		cfg.Dock = append([]string(nil), raw.Dock...)
	}
	if raw.Startup != nil {
		cfg.Startup = make([]StartupApp, 0, len(raw.Startup))
		for _, s := range raw.Startup {
			s.App = strings.TrimSpace(s.App)
			cfg.Startup = append(cfg.Startup, s)
		}
	}

	if raw.Logging != nil {
		if raw.Logging.Enabled != nil {
			cfg.Logging.Enabled = *raw.Logging.Enabled
		}
		if raw.Logging.Level != nil {
			cfg.Logging.Level = normalizeLevel(*raw.Logging.Level)
		}
		if raw.Logging.File != nil {
			cfg.Logging.File = *raw.Logging.File
		}
		if raw.Logging.MaxSizeMB != nil {
			cfg.Logging.MaxSizeMB = *raw.Logging.MaxSizeMB
		}
		if raw.Logging.MaxFiles != nil {
			cfg.Logging.MaxFiles = *raw.Logging.MaxFiles
		}
	}

	return cfg, base, nil
}

func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return "warn"
	}
	return level
}

func buildGeometry(raw RawGeometry) (Geometry, string, error) {
	presets := BuiltinGeometries()
	name := DefaultGeometryPreset
	if raw.Preset != nil {
		name = strings.TrimSpace(*raw.Preset)
	}
	g, ok := presets[name]
	if !ok {
		names := make([]string, 0, len(presets))
		for n := range presets {
			names = append(names, n)
		}
		sort.Strings(names)
		return Geometry{}, "", &ValidationError{
			Path: "geometry.preset",
			Err:  fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(names, ", ")),
		}
	}

	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setPoint := func(dst *platform.Point, src *RawPoint) {
		if src == nil {
			return
		}
		setInt(&dst.X, src.X)
		setInt(&dst.Y, src.Y)
	}

	setInt(&g.TopInset, raw.TopInset)
	setInt(&g.BottomInset, raw.BottomInset)
	setInt(&g.MinWidth, raw.MinWidth)
	setInt(&g.MinHeight, raw.MinHeight)
	setInt(&g.DefaultWidth, raw.DefaultWidth)
	setInt(&g.DefaultHeight, raw.DefaultHeight)
	setPoint(&g.CascadeOrigin, raw.CascadeOrigin)
	setPoint(&g.CascadeStep, raw.CascadeStep)
	setInt(&g.MobileBreakpoint, raw.MobileBreakpoint)
	setPoint(&g.MobileOrigin, raw.MobileOrigin)
	setInt(&g.MobileWidthPercent, raw.MobileWidthPercent)
	setInt(&g.MobileHeightPercent, raw.MobileHeightPercent)
	setInt(&g.BaseZ, raw.BaseZ)
	return g, name, nil
}
