package core

// Action represents a semantic input, abstracted from physical key presses.
// The animation accepts a single exit signal; everything else maps to ActionNone.
type Action int

const (
	ActionNone Action = iota
	ActionQuit        // Q, Esc, Ctrl+C - stop the run after the current frame
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
