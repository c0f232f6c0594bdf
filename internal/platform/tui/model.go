package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/nestlines/internal/core"
	"github.com/vovakirdan/nestlines/internal/nest"
)

// statusHeight is the number of rows reserved below the canvas.
const statusHeight = 1

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that animates a simulation.
// The simulation is shared by pointer, so value copies of the model all
// drive the same run.
type Model struct {
	sim      *nest.Simulation
	screen   *core.Screen
	surface  *screenSurface
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	frame    nest.Frame
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given simulation.
func NewModel(sim *nest.Simulation, cfg core.RuntimeConfig) Model {
	screen := core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-statusHeight, 0))
	return Model{
		sim:     sim,
		screen:  screen,
		surface: newScreenSurface(screen, sim.Canvas()),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keys.MapKey(msg) == core.ActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The simulation keeps running in canvas space; only the raster changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-statusHeight, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleTick steps the simulation once and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.frame = m.sim.Step()

	if m.config.Frames > 0 && m.frame.Index >= uint64(m.config.Frames) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// Frame returns the most recently stepped frame.
func (m Model) Frame() nest.Frame {
	return m.frame
}

// IsQuitting reports whether the model asked the program to exit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current frame followed by the status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.frame.Paint(m.surface)

	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	info := fmt.Sprintf("frame %d  seed %d  levels %d/%d  ",
		m.frame.Index, m.sim.Seed(), m.frame.Active, m.sim.Levels())
	return statusStyle.Render(info) + m.help.View(m.keys)
}
