package config

import (
	"github.com/1broseidon/deskos/internal/platform"
	"github.com/1broseidon/deskos/internal/wm"
)

const DefaultGeometryPreset = "standard"

// BuiltinGeometries returns the built-in geometry presets.
//
// geometry.preset selects one; any other geometry key overrides the preset's
// value.
func BuiltinGeometries() map[string]Geometry {
	standard := wm.DefaultPolicy()

	compact := standard
	compact.MinWidth = 20
	compact.MinHeight = 5
	compact.DefaultWidth = 48
	compact.DefaultHeight = 14
	compact.CascadeOrigin = platform.Point{X: 2, Y: 2}
	compact.CascadeStep = platform.Point{X: 2, Y: 1}

	spacious := standard
	spacious.DefaultWidth = 90
	spacious.DefaultHeight = 26
	spacious.CascadeOrigin = platform.Point{X: 6, Y: 3}
	spacious.CascadeStep = platform.Point{X: 4, Y: 2}
	spacious.MobileBreakpoint = 100

	return map[string]Geometry{
		"standard": geometryFromPolicy("standard", standard),
		"compact":  geometryFromPolicy("compact", compact),
		"spacious": geometryFromPolicy("spacious", spacious),
	}
}
