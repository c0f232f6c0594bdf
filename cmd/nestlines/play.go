package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nestlines/internal/config"
	"github.com/vovakirdan/nestlines/internal/core"
	"github.com/vovakirdan/nestlines/internal/nest"
	"github.com/vovakirdan/nestlines/internal/platform/tui"
	"github.com/vovakirdan/nestlines/internal/registry"
	"github.com/vovakirdan/nestlines/internal/storage"
)

var (
	flagBackend string
	flagFrames  int
	flagReplay  int64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the animation",
	Long: `Animate the nested lines until you quit.

Controls:
  Q/Esc      - Quit
  Ctrl+C     - Quit (terminal)

Every finished run is recorded with its seed and depth, so it can be
replayed exactly with --replay.

Examples:
  nestlines play
  nestlines play --backend window
  nestlines play --seed 42 --depth 3
  nestlines play --frames 600
  nestlines play --replay 12`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", tui.BackendID, "Backend: terminal, window, png")
	playCmd.Flags().IntVar(&flagFrames, "frames", 0, "Stop after this many frames (0 = until quit)")
	playCmd.Flags().Int64Var(&flagReplay, "replay", 0, "Replay the seed and depth of a recorded run")
}

func runPlay(cmd *cobra.Command, _ []string) {
	logger := newLogger()

	if !registry.Exists(flagBackend) {
		fmt.Fprintf(os.Stderr, "Error: unknown backend %q\n", flagBackend)
		fmt.Fprintln(os.Stderr, "Run 'nestlines backends' to see available backends.")
		os.Exit(1)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	rt := settings.Runtime()
	rt.Frames = flagFrames

	if flagReplay != 0 {
		if err := applyReplay(store, flagReplay, &rt); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := startRun(flagBackend, rt, settings.Palette, store, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyReplay copies the seed and depth of a recorded run into rt.
func applyReplay(store *storage.Store, id int64, rt *core.RuntimeConfig) error {
	if store == nil {
		return fmt.Errorf("run history is unavailable, cannot replay run %d", id)
	}
	r, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no recorded run with id %d", id)
	}
	rt.Seed = r.Seed
	rt.MaxDepth = r.MaxDepth
	return nil
}

// startRun builds the simulation, runs it on the chosen backend and records
// the finished run. Recording is best-effort.
func startRun(backendID string, rt core.RuntimeConfig, palette config.Palette, store *storage.Store, logger *log.Logger) error {
	backend, err := registry.Create(backendID)
	if err != nil {
		return err
	}

	rt.Seed = resolveSeed(rt.Seed)
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	sim, err := nest.New(rt, palette)
	if err != nil {
		return err
	}
	logger.Debug("simulation ready",
		"backend", backendID,
		"seed", rt.Seed,
		"levels", sim.Levels(),
		"max_depth", sim.MaxDepth(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, runErr := backend.Run(ctx, sim, rt)

	if store != nil && res.Frames > 0 {
		id, err := store.SaveRun(storage.RunRecord{
			Seed:     rt.Seed,
			MaxDepth: sim.MaxDepth(),
			Levels:   sim.Levels(),
			Frames:   res.Frames,
			Backend:  backendID,
			Duration: res.Elapsed,
		})
		if err != nil {
			logger.Warn("could not record run", "error", err)
		} else {
			logger.Info("run recorded", "id", id, "seed", rt.Seed, "frames", res.Frames)
		}
	}

	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	return nil
}
