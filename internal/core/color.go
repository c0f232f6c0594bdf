package core

import (
	"fmt"
	"image/color"
)

// Color is a cell foreground color.
// The zero value means "terminal default"; any other value carries a 24-bit RGB triple.
type Color uint32

// ColorDefault leaves the cell in the terminal's default foreground.
const ColorDefault Color = 0

const colorSet Color = 1 << 24

// RGB builds a 24-bit cell color.
func RGB(r, g, b uint8) Color {
	return colorSet | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// FromRGBA converts an image color, dropping alpha.
func FromRGBA(c color.RGBA) Color {
	return RGB(c.R, c.G, c.B)
}

// IsDefault reports whether the color is the terminal default.
func (c Color) IsDefault() bool {
	return c&colorSet == 0
}

// RGB returns the red, green and blue channels.
func (c Color) RGB() (uint8, uint8, uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the color as #rrggbb, or an empty string for the default color.
func (c Color) Hex() string {
	if c.IsDefault() {
		return ""
	}
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
