package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/deskos/internal/config"
	"github.com/1broseidon/deskos/internal/registry"
	"github.com/1broseidon/deskos/internal/theme"
	"github.com/1broseidon/deskos/internal/wm"
)

// Setup is the first-run form behind `deskos config init`.
type Setup struct {
	base    *config.Config
	catalog []registry.App

	// Form-bound values, applied on submit.
	fTheme       string
	fViewMode    string
	fPreset      string
	fClockFormat string
	fDock        []string
	fPortfolio   bool
}

// NewSetup prefills the form from base.
func NewSetup(base *config.Config, catalog []registry.App) *Setup {
	if base == nil {
		base = config.DefaultConfig()
	}
	s := &Setup{
		base:         base,
		catalog:      catalog,
		fTheme:       base.Theme,
		fViewMode:    base.ViewMode,
		fPreset:      base.Geometry.Preset,
		fClockFormat: base.ClockFormat,
		fDock:        slices.Clone(base.Dock),
	}
	if s.fPreset == "" {
		s.fPreset = config.DefaultGeometryPreset
	}
	s.fPortfolio = slices.ContainsFunc(base.Startup, func(a config.StartupApp) bool {
		return a.App == registry.Browser
	})
	return s
}

// Form builds the huh form bound to the setup values.
func (s *Setup) Form() *huh.Form {
	presets := make([]string, 0, len(config.BuiltinGeometries()))
	for name := range config.BuiltinGeometries() {
		presets = append(presets, name)
	}
	slices.Sort(presets)
	presetOpts := make([]huh.Option[string], 0, len(presets))
	for _, name := range presets {
		presetOpts = append(presetOpts, huh.NewOption(name, name))
	}

	var dockOpts []huh.Option[string]
	for _, app := range s.catalog {
		if app.Dock {
			dockOpts = append(dockOpts, huh.NewOption(app.Icon+" "+app.Name, app.ID))
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("theme").
				Title("Theme").
				Options(
					huh.NewOption("Dark", string(theme.Dark)),
					huh.NewOption("Light", string(theme.Light)),
				).
				Value(&s.fTheme),

			huh.NewSelect[string]().
				Key("view_mode").
				Title("View Mode").
				Description("Mobile opens windows near full screen").
				Options(
					huh.NewOption("Desktop", string(wm.ViewDesktop)),
					huh.NewOption("Mobile", string(wm.ViewMobile)),
				).
				Value(&s.fViewMode),

			huh.NewSelect[string]().
				Key("preset").
				Title("Window Geometry").
				Description("Default window size and cascade").
				Options(presetOpts...).
				Value(&s.fPreset),

			huh.NewInput().
				Key("clock_format").
				Title("Clock Format").
				Description("Go time layout for the menu bar clock").
				Validate(validateClockFormat).
				Value(&s.fClockFormat),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("dock").
				Title("Dock").
				Options(dockOpts...).
				Validate(func(ids []string) error {
					if len(ids) == 0 {
						return fmt.Errorf("pick at least one application")
					}
					return nil
				}).
				Value(&s.fDock),

			huh.NewConfirm().
				Key("portfolio").
				Title("Open the portfolio browser on start?").
				Value(&s.fPortfolio),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func validateClockFormat(layout string) error {
	if strings.TrimSpace(layout) == "" {
		return fmt.Errorf("clock format must not be empty")
	}
	ref := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
	if ref.Format(layout) == layout {
		return fmt.Errorf("%q contains no time fields", layout)
	}
	return nil
}

// Config returns base with the form values applied.
func (s *Setup) Config() (*config.Config, error) {
	cfg := *s.base
	cfg.Theme = s.fTheme
	cfg.ViewMode = s.fViewMode
	cfg.ClockFormat = s.fClockFormat

	g, ok := config.BuiltinGeometries()[s.fPreset]
	if !ok {
		return nil, fmt.Errorf("unknown geometry preset %q", s.fPreset)
	}
	cfg.Geometry = g

	// Keep catalog order regardless of selection order.
	cfg.Dock = nil
	for _, app := range s.catalog {
		if slices.Contains(s.fDock, app.ID) {
			cfg.Dock = append(cfg.Dock, app.ID)
		}
	}

	cfg.Startup = slices.DeleteFunc(slices.Clone(s.base.Startup), func(a config.StartupApp) bool {
		return a.App == registry.Browser
	})
	if s.fPortfolio {
		cfg.Startup = append(cfg.Startup, config.StartupApp{
			App:     registry.Browser,
			Title:   "Portfolio",
			DelayMS: config.DefaultStartupDelayMS,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RunSetup shows the form in the terminal and returns the resulting config.
func RunSetup(base *config.Config, catalog []registry.App) (*config.Config, error) {
	s := NewSetup(base, catalog)
	if err := s.Form().Run(); err != nil {
		return nil, err
	}
	return s.Config()
}
