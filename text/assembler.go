package text

import (
	"math"
	"strings"

	"github.com/tsawler/zonetext/model"
)

// Tolerances controls when adjacent glyphs belong to the same word.
type Tolerances struct {
	// X is the largest horizontal gap, in points, between the end of one
	// glyph and the start of the next inside a word.
	// Default: 3
	X float64

	// Y is the largest vertical offset, in points, between glyphs of the
	// same word.
	// Default: 3
	Y float64
}

// DefaultTolerances returns the 3pt x and y tolerances.
func DefaultTolerances() Tolerances {
	return Tolerances{X: 3, Y: 3}
}

// Assembler groups glyphs into words
type Assembler struct {
	tol Tolerances
}

// NewAssembler creates an assembler with default tolerances
func NewAssembler() *Assembler {
	return &Assembler{tol: DefaultTolerances()}
}

// NewAssemblerWithTolerances creates an assembler with custom tolerances
func NewAssemblerWithTolerances(tol Tolerances) *Assembler {
	return &Assembler{tol: tol}
}

// Words assembles glyphs, given in content order, into word tokens. A
// word ends at a whitespace glyph, when the next glyph sits more than Y
// away vertically, starts more than X past the word's right edge, or
// starts more than X before the previous glyph.
func (a *Assembler) Words(glyphs []Glyph) []model.Word {
	var (
		words []model.Word
		cur   model.Word
		buf   strings.Builder
		prevX float64
	)

	flush := func() {
		if buf.Len() > 0 {
			cur.Text = buf.String()
			words = append(words, cur)
		}
		buf.Reset()
	}

	for _, g := range explode(glyphs) {
		if g.isSpace() {
			flush()
			continue
		}

		if buf.Len() > 0 {
			if math.Abs(g.Top-cur.Top) > a.tol.Y || g.X-cur.X1 > a.tol.X || g.X < prevX-a.tol.X {
				flush()
			}
		}
		prevX = g.X

		bottom := g.Top + g.Size
		if buf.Len() == 0 {
			cur = model.Word{X0: g.X, Top: g.Top, X1: g.right(), Bottom: bottom}
		} else {
			cur.X1 = math.Max(cur.X1, g.right())
			cur.Top = math.Min(cur.Top, g.Top)
			cur.Bottom = math.Max(cur.Bottom, bottom)
		}
		buf.WriteString(g.Text)
	}
	flush()

	return words
}

// explode splits multi-rune glyph runs into one glyph per rune, sharing
// the run's advance evenly.
func explode(glyphs []Glyph) []Glyph {
	out := make([]Glyph, 0, len(glyphs))
	for _, g := range glyphs {
		runes := []rune(g.Text)
		switch len(runes) {
		case 0:
			continue
		case 1:
			out = append(out, g)
			continue
		}
		per := (g.right() - g.X) / float64(len(runes))
		for i, r := range runes {
			out = append(out, Glyph{
				Text:  string(r),
				X:     g.X + per*float64(i),
				Top:   g.Top,
				Width: per,
				Size:  g.Size,
			})
		}
	}
	return out
}
