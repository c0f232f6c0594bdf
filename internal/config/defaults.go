package config

import (
	_ "embed"
)

//go:embed defaults/nestlines.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:  800,
			Height: 800,
		},
		Depth:    5,
		TickRate: 60,
		Seed:     0,
		Palette:  DefaultPalette(),
		Window: WindowConfig{
			Title: "Recursive Moving Lines",
			Scale: 1,
		},
		Storage: StorageConfig{
			Path: "~/.nestlines/runs.db",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30,
		},
	}
}

// DefaultPalette returns the depth color ramp: 155 at the outermost level,
// rising by up to 100 toward the innermost one, drawn two units thick.
func DefaultPalette() Palette {
	return Palette{
		Base:      155,
		Span:      100,
		Thickness: 2,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
