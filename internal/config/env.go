package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides are the environment variables consulted after the config
// files. They win over any file value.
type envOverrides struct {
	ConfigPath string `env:"DESKOS_CONFIG"`
	Theme      string `env:"DESKOS_THEME"`
	ViewMode   string `env:"DESKOS_VIEW_MODE"`
	LogLevel   string `env:"DESKOS_LOG_LEVEL"`
	DataDir    string `env:"DESKOS_DATA_DIR"`
}

func readEnv() (envOverrides, error) {
	o, err := env.ParseAs[envOverrides]()
	if err != nil {
		return envOverrides{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return o, nil
}

func (o envOverrides) raw() (RawConfig, map[string]Source) {
	var raw RawConfig
	sources := map[string]Source{}
	set := func(dst **string, value, path, name string) {
		if value == "" {
			return
		}
		v := value
		*dst = &v
		sources[path] = Source{Kind: SourceEnv, Name: name}
	}
	set(&raw.Theme, o.Theme, "theme", "DESKOS_THEME")
	set(&raw.ViewMode, o.ViewMode, "view_mode", "DESKOS_VIEW_MODE")
	set(&raw.LogLevel, o.LogLevel, "log_level", "DESKOS_LOG_LEVEL")
	set(&raw.DataDir, o.DataDir, "data_dir", "DESKOS_DATA_DIR")
	return raw, sources
}
