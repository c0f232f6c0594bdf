package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nestlines/internal/platform/tui"
	"github.com/vovakirdan/nestlines/internal/platform/window"
	"github.com/vovakirdan/nestlines/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
	flagRunsStats bool
	flagRunsPlain bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `Show recorded runs and replay one.

In a terminal this opens an interactive browser: pick a run and press
Enter to replay it with its seed and depth. Otherwise a plain table is
printed.

Examples:
  nestlines runs
  nestlines runs --plain --limit 5
  nestlines runs --stats
  nestlines runs --clear`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to print with --plain")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete all recorded runs")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Print totals per backend")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print a table instead of the browser")
}

func runRuns(cmd *cobra.Command, _ []string) {
	logger := newLogger()

	settings, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return

	case flagRunsStats:
		printStats(store)
		return
	}

	fd := int(os.Stdout.Fd())
	if flagRunsPlain || !term.IsTerminal(fd) {
		printRuns(store, flagRunsLimit)
		return
	}

	width, height, err := term.GetSize(fd)
	if err != nil {
		width, height = 80, 24
	}

	picked, err := tui.RunHistory(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if picked == nil {
		return
	}

	backend := picked.Backend
	if !isLocalBackend(backend) {
		backend = tui.BackendID
	}

	rt := settings.Runtime()
	rt.Seed = picked.Seed
	rt.MaxDepth = picked.MaxDepth
	logger.Info("replaying run", "id", picked.ID, "seed", picked.Seed, "backend", backend)

	if err := startRun(backend, rt, settings.Palette, store, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isLocalBackend reports whether a recorded backend can be replayed
// interactively on this machine.
func isLocalBackend(id string) bool {
	return id == tui.BackendID || id == window.BackendID
}

func printRuns(store *storage.Store, limit int) {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-6s  %-20s  %-7s  %-8s  %-9s  %-10s  %s\n",
		"ID", "Seed", "Levels", "Frames", "Backend", "Duration", "Date")
	for _, r := range runs {
		fmt.Printf("  %-6d  %-20d  %-7s  %-8d  %-9s  %-10s  %s\n",
			r.ID,
			r.Seed,
			fmt.Sprintf("%d/%d", r.Levels, r.MaxDepth),
			r.Frames,
			r.Backend,
			r.Duration.Round(time.Second),
			r.CreatedAt.Format("Jan 02 15:04"),
		)
	}
	fmt.Println()
	fmt.Println("Run 'nestlines play --replay <id>' to watch one again.")
}

func printStats(store *storage.Store) {
	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-9s  %-6s  %-10s  %-10s  %s\n", "Backend", "Runs", "Frames", "Time", "Last run")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-9s  %-6d  %-10d  %-10s  %s\n",
			s.Backend,
			s.Runs,
			s.TotalFrames,
			s.TotalTime.Round(time.Second),
			s.LastRun.Format("Jan 02 15:04"),
		)
	}
}
