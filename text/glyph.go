package text

import "unicode"

// Glyph is a single shown character (or short run) in top-left page
// coordinates.
type Glyph struct {
	Text  string
	X     float64 // Left edge
	Top   float64 // Upper edge
	Width float64 // Advance width; zero when the font has no metrics
	Size  float64 // Font size, used as glyph height
}

// right returns the glyph's right edge, estimating the advance from the
// font size when no width is known.
func (g Glyph) right() float64 {
	w := g.Width
	if w <= 0 {
		w = g.Size * 0.5 * float64(len([]rune(g.Text)))
	}
	return g.X + w
}

// isSpace reports whether the glyph is entirely whitespace
func (g Glyph) isSpace() bool {
	for _, r := range g.Text {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
