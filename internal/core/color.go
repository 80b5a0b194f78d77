package core

// Color is the foreground colour of a screen cell. Values index a fixed
// ANSI 256 palette ordered roughly by tile strength.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWhite
	ColorBrightWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorBrightRed
	ColorBrightYellow
	ColorGreen
	ColorBrightGreen
	ColorCyan
	ColorBrightMagenta
	ColorGray

	numColors
)

type paletteEntry struct {
	ansi string
	bold bool
}

var palette = [numColors]paletteEntry{
	ColorDefault:       {"", false},
	ColorWhite:         {"7", false},
	ColorBrightWhite:   {"15", true},
	ColorYellow:        {"3", false},
	ColorOrange:        {"208", true},
	ColorRed:           {"1", false},
	ColorBrightRed:     {"9", true},
	ColorBrightYellow:  {"11", true},
	ColorGreen:         {"2", false},
	ColorBrightGreen:   {"10", true},
	ColorCyan:          {"6", false},
	ColorBrightMagenta: {"13", true},
	ColorGray:          {"245", false},
}

// Valid reports whether c is a known palette entry.
func (c Color) Valid() bool {
	return c < numColors
}

// ANSI returns the 256-colour code for c, or "" for the terminal default.
// Unknown colours fall back to the default.
func (c Color) ANSI() string {
	if !c.Valid() {
		return ""
	}
	return palette[c].ansi
}

// Bold reports whether cells of this colour are drawn bold.
func (c Color) Bold() bool {
	return c.Valid() && palette[c].bold
}

// Colors returns every palette entry in order.
func Colors() []Color {
	out := make([]Color, numColors)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}
