package core

// RuntimeConfig contains configuration passed to backends at start.
// The canvas is the simulation's coordinate space; backends scale it onto
// whatever surface they own (terminal cells, window pixels, PNG pixels).
type RuntimeConfig struct {
	CanvasW  int   // Canvas width in simulation units
	CanvasH  int   // Canvas height in simulation units
	ScreenW  int   // Terminal width in characters (terminal backend only)
	ScreenH  int   // Terminal height in characters (terminal backend only)
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic generation
	MaxDepth int   // Maximum recursion depth

	WindowTitle string  // Window caption (window backend only)
	WindowScale float64 // Window size multiplier (window backend only)

	Frames int    // Stop after this many frames; 0 runs until the exit key
	Every  int    // Export every N-th frame (png backend only); 0 exports the last frame
	Output string // Output path (png backend only)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		CanvasW:     800,
		CanvasH:     800,
		ScreenW:     80,
		ScreenH:     24,
		TickRate:    60,
		Seed:        0, // 0 means use current time in the command layer
		MaxDepth:    5,
		WindowTitle: "Recursive Moving Lines",
		WindowScale: 1,
		Output:      "nestlines.png",
	}
}

// Canvas returns the canvas as a box anchored at the origin.
func (c RuntimeConfig) Canvas() Box {
	return NewBox(0, 0, float64(c.CanvasW), float64(c.CanvasH))
}
