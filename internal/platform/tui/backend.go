package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/nestlines/internal/core"
	"github.com/vovakirdan/nestlines/internal/nest"
	"github.com/vovakirdan/nestlines/internal/registry"
)

// BackendID is the registry ID of the terminal backend.
const BackendID = "terminal"

// Backend animates a simulation in the local terminal.
type Backend struct{}

func init() {
	registry.Register(BackendID, func() registry.Backend { return &Backend{} })
}

// ID returns the backend identifier.
func (b *Backend) ID() string { return BackendID }

// Title returns the backend display name.
func (b *Backend) Title() string { return "Terminal (box-drawing runes)" }

// Run starts the Bubble Tea program and blocks until the user quits, the
// frame limit is reached or ctx is cancelled.
func (b *Backend) Run(ctx context.Context, sim *nest.Simulation, cfg core.RuntimeConfig) (registry.Result, error) {
	start := time.Now()

	p := tea.NewProgram(
		NewModel(sim, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	res := registry.Result{Frames: sim.Frame(), Elapsed: time.Since(start)}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return res, fmt.Errorf("tui: %w", err)
	}
	return res, nil
}
