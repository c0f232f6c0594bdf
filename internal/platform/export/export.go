// Package export renders simulation frames headlessly to PNG files.
package export

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/gg"

	"github.com/vovakirdan/nestlines/internal/core"
	"github.com/vovakirdan/nestlines/internal/nest"
	"github.com/vovakirdan/nestlines/internal/registry"
)

// BackendID is the registry ID of the PNG backend.
const BackendID = "png"

// Backend steps a simulation without pacing and writes frames to PNG.
// With Every > 0 each Every-th frame is written to an indexed file,
// otherwise only the last frame is written to Output.
type Backend struct{}

func init() {
	registry.Register(BackendID, func() registry.Backend { return &Backend{} })
}

// ID returns the backend identifier.
func (b *Backend) ID() string { return BackendID }

// Title returns the backend display name.
func (b *Backend) Title() string { return "PNG export (headless)" }

// Run steps sim cfg.Frames times (at least once) and writes PNG files.
func (b *Backend) Run(ctx context.Context, sim *nest.Simulation, cfg core.RuntimeConfig) (registry.Result, error) {
	start := time.Now()
	frames := max(cfg.Frames, 1)
	output := cfg.Output
	if output == "" {
		output = core.DefaultConfig().Output
	}

	canvas := sim.Canvas()
	r := NewRenderer(int(canvas.Width()), int(canvas.Height()))

	var last nest.Frame
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return registry.Result{Frames: sim.Frame(), Elapsed: time.Since(start)}, err
		}
		last = sim.Step()

		if cfg.Every > 0 && last.Index%uint64(cfg.Every) == 0 {
			if err := r.Save(last, IndexedPath(output, last.Index)); err != nil {
				return registry.Result{Frames: sim.Frame(), Elapsed: time.Since(start)}, err
			}
		}
	}

	if cfg.Every <= 0 {
		if err := r.Save(last, output); err != nil {
			return registry.Result{Frames: sim.Frame(), Elapsed: time.Since(start)}, err
		}
	}

	return registry.Result{Frames: sim.Frame(), Elapsed: time.Since(start)}, nil
}

// IndexedPath inserts a zero-padded frame index before the extension:
// "out.png" becomes "out_000120.png".
func IndexedPath(path string, index uint64) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".png"
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return fmt.Sprintf("%s_%06d%s", base, index, ext)
}

// Renderer paints frames onto a gg context.
type Renderer struct {
	dc *gg.Context
}

// NewRenderer creates a renderer with a black canvas of the given size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{dc: gg.NewContext(width, height)}
}

// Render clears the canvas and paints f. The first stroke error is returned.
func (r *Renderer) Render(f nest.Frame) error {
	r.dc.ClearWithColor(gg.Black)
	s := &ggSurface{dc: r.dc}
	f.Paint(s)
	if s.err != nil {
		return fmt.Errorf("export: cannot draw frame %d: %w", f.Index, s.err)
	}
	return nil
}

// Save renders f and writes it to path.
func (r *Renderer) Save(f nest.Frame, path string) error {
	if err := r.Render(f); err != nil {
		return err
	}
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("export: cannot write %s: %w", path, err)
	}
	return nil
}

// At returns the rendered color at pixel (x, y).
func (r *Renderer) At(x, y int) color.Color {
	return r.dc.Image().At(x, y)
}

// ggSurface adapts a gg context to nest.Surface.
type ggSurface struct {
	dc  *gg.Context
	err error
}

func (s *ggSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	if s.err != nil {
		return
	}
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(x0, y0, x1, y1)
	s.err = s.dc.Stroke()
}
