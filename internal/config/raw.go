package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawPoint struct {
	X *int `yaml:"x"`
	Y *int `yaml:"y"`
}

type RawGeometry struct {
	Preset              *string   `yaml:"preset"`
	TopInset            *int      `yaml:"top_inset"`
	BottomInset         *int      `yaml:"bottom_inset"`
	MinWidth            *int      `yaml:"min_width"`
	MinHeight           *int      `yaml:"min_height"`
	DefaultWidth        *int      `yaml:"default_width"`
	DefaultHeight       *int      `yaml:"default_height"`
	CascadeOrigin       *RawPoint `yaml:"cascade_origin"`
	CascadeStep         *RawPoint `yaml:"cascade_step"`
	MobileBreakpoint    *int      `yaml:"mobile_breakpoint"`
	MobileOrigin        *RawPoint `yaml:"mobile_origin"`
	MobileWidthPercent  *int      `yaml:"mobile_width_percent"`
	MobileHeightPercent *int      `yaml:"mobile_height_percent"`
	BaseZ               *int      `yaml:"base_z"`
}

type RawLoggingConfig struct {
	Enabled   *bool   `yaml:"enabled"`
	Level     *string `yaml:"level"`
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

type RawConfig struct {
	Include     IncludeList       `yaml:"include"`
	Theme       *string           `yaml:"theme"`
	ViewMode    *string           `yaml:"view_mode"`
	LogLevel    *string           `yaml:"log_level"`
	ClockFormat *string           `yaml:"clock_format"`
	DataDir     *string           `yaml:"data_dir"`
	DebugLog    *string           `yaml:"debug_log"`
	Geometry    *RawGeometry      `yaml:"geometry"`
	Dock        []string          `yaml:"dock"`
	Startup     []StartupApp      `yaml:"startup"`
	Logging     *RawLoggingConfig `yaml:"logging"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Theme != nil {
		out.Theme = overlay.Theme
	}
	if overlay.ViewMode != nil {
		out.ViewMode = overlay.ViewMode
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.ClockFormat != nil {
		out.ClockFormat = overlay.ClockFormat
	}
	if overlay.DataDir != nil {
		out.DataDir = overlay.DataDir
	}
	if overlay.DebugLog != nil {
		out.DebugLog = overlay.DebugLog
	}
	if overlay.Geometry != nil {
		base := RawGeometry{}
		if out.Geometry != nil {
			base = *out.Geometry
		}
		merged := mergeRawGeometry(base, *overlay.Geometry)
		out.Geometry = &merged
	}

	// Lists replace rather than append.
	if overlay.Dock != nil {
		out.Dock = overlay.Dock
	}
	if overlay.Startup != nil {
		out.Startup = overlay.Startup
	}

	if overlay.Logging != nil {
		if out.Logging == nil {
			out.Logging = &RawLoggingConfig{}
		} else {
			copied := *out.Logging
			out.Logging = &copied
		}
		if overlay.Logging.Enabled != nil {
			out.Logging.Enabled = overlay.Logging.Enabled
		}
		if overlay.Logging.Level != nil {
			out.Logging.Level = overlay.Logging.Level
		}
		if overlay.Logging.File != nil {
			out.Logging.File = overlay.Logging.File
		}
		if overlay.Logging.MaxSizeMB != nil {
			out.Logging.MaxSizeMB = overlay.Logging.MaxSizeMB
		}
		if overlay.Logging.MaxFiles != nil {
			out.Logging.MaxFiles = overlay.Logging.MaxFiles
		}
	}

	return out
}

func mergeRawPoint(base *RawPoint, overlay *RawPoint) *RawPoint {
	if overlay == nil {
		return base
	}
	out := RawPoint{}
	if base != nil {
		out = *base
	}
	if overlay.X != nil {
		out.X = overlay.X
	}
	if overlay.Y != nil {
		out.Y = overlay.Y
	}
	return &out
}

func mergeRawGeometry(base RawGeometry, overlay RawGeometry) RawGeometry {
	out := base
	if overlay.Preset != nil {
		out.Preset = overlay.Preset
	}
	if overlay.TopInset != nil {
		out.TopInset = overlay.TopInset
	}
	if overlay.BottomInset != nil {
		out.BottomInset = overlay.BottomInset
	}
	if overlay.MinWidth != nil {
		out.MinWidth = overlay.MinWidth
	}
	if overlay.MinHeight != nil {
		out.MinHeight = overlay.MinHeight
	}
	if overlay.DefaultWidth != nil {
		out.DefaultWidth = overlay.DefaultWidth
	}
	if overlay.DefaultHeight != nil {
		out.DefaultHeight = overlay.DefaultHeight
	}
	out.CascadeOrigin = mergeRawPoint(out.CascadeOrigin, overlay.CascadeOrigin)
	out.CascadeStep = mergeRawPoint(out.CascadeStep, overlay.CascadeStep)
	if overlay.MobileBreakpoint != nil {
		out.MobileBreakpoint = overlay.MobileBreakpoint
	}
	out.MobileOrigin = mergeRawPoint(out.MobileOrigin, overlay.MobileOrigin)
	if overlay.MobileWidthPercent != nil {
		out.MobileWidthPercent = overlay.MobileWidthPercent
	}
	if overlay.MobileHeightPercent != nil {
		out.MobileHeightPercent = overlay.MobileHeightPercent
	}
	if overlay.BaseZ != nil {
		out.BaseZ = overlay.BaseZ
	}
	return out
}
