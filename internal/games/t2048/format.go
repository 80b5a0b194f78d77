package t2048

import (
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// FormatScore renders a score with thousands separators (12,345).
func FormatScore(score int) string {
	s := strconv.Itoa(score)
	neg := false
	if score < 0 {
		neg = true
		s = s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}

	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// Rating returns a rank label for a final score.
func Rating(score int) string {
	switch {
	case score >= 20000:
		return "Master"
	case score >= 10000:
		return "Expert"
	case score >= 5000:
		return "Advanced"
	case score >= 2000:
		return "Intermediate"
	case score >= 1000:
		return "Novice"
	default:
		return "Beginner"
	}
}

// TileColor maps a tile value to a terminal colour. Every value up to 2048
// has its own colour; larger tiles are gray.
func TileColor(value int) core.Color {
	switch value {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorYellow
	case 16:
		return core.ColorOrange
	case 32:
		return core.ColorRed
	case 64:
		return core.ColorBrightRed
	case 128:
		return core.ColorBrightYellow
	case 256:
		return core.ColorGreen
	case 512:
		return core.ColorBrightGreen
	case 1024:
		return core.ColorCyan
	case 2048:
		return core.ColorBrightMagenta
	default:
		return core.ColorGray
	}
}
