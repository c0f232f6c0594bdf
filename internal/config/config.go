// Package config provides YAML-based configuration loading for nestlines.
// Only presentation settings live here; the simulation's physics constants
// are fixed in package nest.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/nestlines/internal/core"
)

// Config contains all user-tunable settings.
type Config struct {
	Canvas   CanvasConfig  `yaml:"canvas"`
	Depth    int           `yaml:"depth"`     // Maximum recursion depth
	TickRate int           `yaml:"tick_rate"` // Frames per second
	Seed     int64         `yaml:"seed"`      // 0 = seed from the clock
	Palette  Palette       `yaml:"palette"`
	Window   WindowConfig  `yaml:"window"`
	Storage  StorageConfig `yaml:"storage"`
	SSH      SSHConfig     `yaml:"ssh"`
}

// CanvasConfig defines the simulation coordinate space.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// WindowConfig defines the desktop window.
type WindowConfig struct {
	Title string  `yaml:"title"`
	Scale float64 `yaml:"scale"`
}

// StorageConfig defines where run history is kept.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// SSHConfig defines the SSH viewing server.
type SSHConfig struct {
	Address     string `yaml:"address"`
	HostKey     string `yaml:"host_key"`
	IdleTimeout int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeoutDuration returns the idle timeout as a duration.
func (c SSHConfig) IdleTimeoutDuration() time.Duration {
	return time.Duration(c.IdleTimeout) * time.Minute
}

// Validate checks that the settings describe a usable run.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("config: canvas must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Depth < 1 {
		return fmt.Errorf("config: depth must be at least 1, got %d", c.Depth)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Palette.Thickness <= 0 {
		return fmt.Errorf("config: palette thickness must be positive, got %g", c.Palette.Thickness)
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("config: window scale must be positive, got %g", c.Window.Scale)
	}
	return nil
}

// Runtime converts the settings into the config handed to backends.
func (c Config) Runtime() core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.CanvasW = c.Canvas.Width
	rt.CanvasH = c.Canvas.Height
	rt.TickRate = c.TickRate
	rt.Seed = c.Seed
	rt.MaxDepth = c.Depth
	rt.WindowTitle = c.Window.Title
	rt.WindowScale = c.Window.Scale
	return rt
}
