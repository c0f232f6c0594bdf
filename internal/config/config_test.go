package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultConfig())
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("depth: 3\nwindow:\n  scale: 0.5\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Depth != 3 {
		t.Errorf("Depth = %d, expected 3", cfg.Depth)
	}
	if cfg.Window.Scale != 0.5 {
		t.Errorf("Window.Scale = %f, expected 0.5", cfg.Window.Scale)
	}
	if cfg.Window.Title != "Recursive Moving Lines" {
		t.Errorf("Window.Title = %q, expected default title", cfg.Window.Title)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 800 {
		t.Errorf("Canvas = %dx%d, expected 800x800", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Palette != DefaultPalette() {
		t.Errorf("Palette = %+v, expected defaults", cfg.Palette)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"zero canvas", "canvas:\n  width: 0\n", "canvas"},
		{"zero depth", "depth: 0\n", "depth"},
		{"negative tick rate", "tick_rate: -1\n", "tick_rate"},
		{"zero thickness", "palette:\n  thickness: 0\n", "thickness"},
		{"zero scale", "window:\n  scale: 0\n", "scale"},
		{"malformed", "depth: [\n", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if tc.want != "" && !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("seed: 42\ntick_rate: 30\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, expected 42", cfg.Seed)
	}
	if cfg.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", cfg.TickRate)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() of a missing custom file should fail")
	}
}

func TestRuntime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Depth = 4
	rt := cfg.Runtime()

	if rt.CanvasW != 800 || rt.CanvasH != 800 {
		t.Errorf("canvas = %dx%d, expected 800x800", rt.CanvasW, rt.CanvasH)
	}
	if rt.Seed != 7 || rt.MaxDepth != 4 || rt.TickRate != 60 {
		t.Errorf("runtime = %+v, expected seed 7, depth 4, 60 ticks", rt)
	}
	if rt.WindowTitle != cfg.Window.Title {
		t.Errorf("WindowTitle = %q, expected %q", rt.WindowTitle, cfg.Window.Title)
	}
}

func TestSSHIdleTimeout(t *testing.T) {
	c := SSHConfig{IdleTimeout: 30}
	if c.IdleTimeoutDuration() != 30*time.Minute {
		t.Errorf("IdleTimeoutDuration() = %v, expected 30m", c.IdleTimeoutDuration())
	}
}

func TestPaletteIntensity(t *testing.T) {
	p := DefaultPalette()

	tests := []struct {
		depth, maxDepth int
		expected        uint8
	}{
		{0, 5, 155},
		{1, 5, 175},
		{2, 5, 195},
		{4, 5, 235},
		{5, 5, 255},
		{9, 5, 255}, // clamped
		{1, 0, 255}, // zero max depth treated as one
	}

	for _, tc := range tests {
		if got := p.Intensity(tc.depth, tc.maxDepth); got != tc.expected {
			t.Errorf("Intensity(%d, %d) = %d, expected %d", tc.depth, tc.maxDepth, got, tc.expected)
		}
	}
}

func TestPaletteTints(t *testing.T) {
	p := DefaultPalette()

	v := p.Vertical(0, 5)
	if v.R != 0 || v.G != 0 || v.B != 155 || v.A != 255 {
		t.Errorf("Vertical(0, 5) = %+v, expected pure blue 155", v)
	}

	h := p.Horizontal(0, 5)
	if h.R != 0 || h.G != 155 || h.B != 0 || h.A != 255 {
		t.Errorf("Horizontal(0, 5) = %+v, expected pure green 155", h)
	}
}
