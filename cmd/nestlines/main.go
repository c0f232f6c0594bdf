// nestlines animates nested bouncing lines: each recursion depth moves two
// vertical and two horizontal lines inside the box spanned by its parent's
// lines.
//
// Usage:
//
//	nestlines play            - Animate in the terminal (or --backend window)
//	nestlines export          - Render frames to PNG without a display
//	nestlines runs            - Browse recorded runs and replay one
//	nestlines backends        - List available backends
//	nestlines serve           - Stream the animation over SSH
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for a reproducible animation
//	--depth <n>        - Set maximum recursion depth (default: 5)
//	--db <path>        - Set run history path (default: ~/.nestlines/runs.db)
//	--config <path>    - Use a specific config file
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/nestlines/internal/config"

	// Import backends to register them
	_ "github.com/vovakirdan/nestlines/internal/platform/export"
	_ "github.com/vovakirdan/nestlines/internal/platform/tui"
	_ "github.com/vovakirdan/nestlines/internal/platform/window"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDepth    int
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nestlines",
	Short: "Recursive moving lines - nested bouncing-line animation",
	Long: `nestlines draws two vertical and two horizontal lines that bounce inside
a box. The lines of each depth span the box of the next depth, giving a
frame-inside-a-frame animation up to five levels deep.

Available commands:
  play      - Animate in the terminal or a desktop window
  export    - Render frames to PNG files
  runs      - Browse recorded runs and replay one
  backends  - List available backends
  serve     - Stream the animation over SSH

Examples:
  nestlines play
  nestlines play --backend window --seed 42
  nestlines export --frames 600 --out frame.png
  nestlines runs
  nestlines serve`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagDepth, "depth", 5, "Maximum recursion depth")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.nestlines/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the CLI logger at the level chosen with --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "nestlines",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadSettings loads the config file and applies global flags the user set
// explicitly, so file values win over flag defaults.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("depth") {
		cfg.Depth = flagDepth
	}
	if flags.Changed("db") || cfg.Storage.Path == "" {
		cfg.Storage.Path = flagDBPath
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// resolveSeed replaces a zero seed with one from the clock so the run can
// be recorded and replayed.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}
