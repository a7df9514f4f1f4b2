package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/deskos/internal/platform"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	theme
//	view_mode
//	log_level
//	clock_format
//	data_dir
//	debug_log
//	dock
//	startup
//	geometry.preset
//	geometry.default_width
//	geometry.cascade_origin.x
//	logging.max_files
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}

	if strings.HasPrefix(path, "geometry.") {
		base := res.GeometryBase
		if base == "" {
			base = DefaultGeometryPreset
		}
		return value, Source{Kind: SourceBuiltin, Name: base}, nil
	}

	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	leaf := func(v any) (any, error) {
		if len(parts) != 1 {
			return nil, fmt.Errorf("%s has no children", parts[0])
		}
		return v, nil
	}

	switch parts[0] {
	case "theme":
		return leaf(cfg.Theme)
	case "view_mode":
		return leaf(cfg.ViewMode)
	case "log_level":
		return leaf(cfg.LogLevel)
	case "clock_format":
		return leaf(cfg.ClockFormat)
	case "data_dir":
		return leaf(cfg.GetDataDir())
	case "debug_log":
		return leaf(cfg.DebugLog)
	case "dock":
		return leaf(cfg.Dock)
	case "startup":
		return leaf(cfg.Startup)
	case "geometry":
		if len(parts) == 1 {
			return cfg.Geometry, nil
		}
		return lookupGeometry(cfg.Geometry, parts[1:])
	case "logging":
		if len(parts) == 1 {
			return cfg.GetLoggingConfig(), nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown logging path %q", path)
		}
		l := cfg.GetLoggingConfig()
		switch parts[1] {
		case "enabled":
			return l.Enabled, nil
		case "level":
			return l.Level, nil
		case "file":
			return l.File, nil
		case "max_size_mb":
			return l.MaxSizeMB, nil
		case "max_files":
			return l.MaxFiles, nil
		}
		return nil, fmt.Errorf("unknown logging key %q", parts[1])
	}
	return nil, fmt.Errorf("unknown config path %q", path)
}

func lookupGeometry(g Geometry, parts []string) (any, error) {
	point := func(p platform.Point) (any, error) {
		if len(parts) == 1 {
			return p, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown geometry path %q", strings.Join(parts, "."))
		}
		switch parts[1] {
		case "x":
			return p.X, nil
		case "y":
			return p.Y, nil
		}
		return nil, fmt.Errorf("point has no %q", parts[1])
	}

	ints := map[string]int{
		"top_inset":             g.TopInset,
		"bottom_inset":          g.BottomInset,
		"min_width":             g.MinWidth,
		"min_height":            g.MinHeight,
		"default_width":         g.DefaultWidth,
		"default_height":        g.DefaultHeight,
		"mobile_breakpoint":     g.MobileBreakpoint,
		"mobile_width_percent":  g.MobileWidthPercent,
		"mobile_height_percent": g.MobileHeightPercent,
		"base_z":                g.BaseZ,
	}
	if v, ok := ints[parts[0]]; ok {
		if len(parts) != 1 {
			return nil, fmt.Errorf("geometry.%s has no children", parts[0])
		}
		return v, nil
	}

	switch parts[0] {
	case "preset":
		return g.Preset, nil
	case "cascade_origin":
		return point(g.CascadeOrigin)
	case "cascade_step":
		return point(g.CascadeStep)
	case "mobile_origin":
		return point(g.MobileOrigin)
	}
	return nil, fmt.Errorf("unknown geometry key %q", parts[0])
}
