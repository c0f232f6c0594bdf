// Package window shows the simulation in a desktop window using Ebitengine.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/nestlines/internal/core"
	"github.com/vovakirdan/nestlines/internal/nest"
	"github.com/vovakirdan/nestlines/internal/registry"
)

// BackendID is the registry ID of the window backend.
const BackendID = "window"

var background = color.RGBA{A: 255}

// Backend opens a window of the canvas size and animates the simulation
// at the configured tick rate. Esc or Q closes it.
type Backend struct{}

func init() {
	registry.Register(BackendID, func() registry.Backend { return &Backend{} })
}

// ID returns the backend identifier.
func (b *Backend) ID() string { return BackendID }

// Title returns the backend display name.
func (b *Backend) Title() string { return "Desktop window (Ebitengine)" }

// Run opens the window and blocks until it is closed.
// Ebitengine requires this to be called from the main goroutine.
func (b *Backend) Run(ctx context.Context, sim *nest.Simulation, cfg core.RuntimeConfig) (registry.Result, error) {
	start := time.Now()
	g := newGame(ctx, sim, cfg)

	scale := cfg.WindowScale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(float64(g.width)*scale), int(float64(g.height)*scale))
	ebiten.SetWindowTitle(cfg.WindowTitle)
	ebiten.SetTPS(max(cfg.TickRate, 1))

	err := ebiten.RunGame(g)
	res := registry.Result{Frames: sim.Frame(), Elapsed: time.Since(start)}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return res, fmt.Errorf("window: %w", err)
	}
	return res, nil
}

// game implements ebiten.Game. One Update call is one simulation step.
type game struct {
	ctx    context.Context
	sim    *nest.Simulation
	frames uint64
	width  int
	height int
	frame  nest.Frame
}

func newGame(ctx context.Context, sim *nest.Simulation, cfg core.RuntimeConfig) *game {
	canvas := sim.Canvas()
	return &game{
		ctx:    ctx,
		sim:    sim,
		frames: uint64(max(cfg.Frames, 0)),
		width:  int(canvas.Width()),
		height: int(canvas.Height()),
	}
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.frame = g.sim.Step()

	if g.frames > 0 && g.frame.Index >= g.frames {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.frame.Paint(imageSurface{dst: screen})
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("frame %d  seed %d  levels %d/%d", g.frame.Index, g.sim.Seed(), g.frame.Active, g.sim.Levels()),
		8, g.height-20)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// imageSurface adapts an ebiten image to nest.Surface.
type imageSurface struct {
	dst *ebiten.Image
}

func (s imageSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}
