package text

import (
	"testing"

	"github.com/tsawler/zonetext/model"
)

// glyphs lays out s one rune per glyph starting at x with a fixed advance.
func glyphs(s string, x, top, advance float64) []Glyph {
	var out []Glyph
	for _, r := range s {
		out = append(out, Glyph{Text: string(r), X: x, Top: top, Width: advance, Size: 10})
		x += advance
	}
	return out
}

func TestAssembler_SplitsOnSpace(t *testing.T) {
	a := NewAssembler()

	words := a.Words(glyphs("hello world", 10, 100, 5))

	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].Text != "hello" || words[1].Text != "world" {
		t.Errorf("unexpected words %q %q", words[0].Text, words[1].Text)
	}
	if words[0].X0 != 10 || words[0].X1 != 35 {
		t.Errorf("expected first word to span 10-35, got %.1f-%.1f", words[0].X0, words[0].X1)
	}
	if words[0].Bottom-words[0].Top != 10 {
		t.Errorf("expected word height 10, got %.1f", words[0].Bottom-words[0].Top)
	}
}

func TestAssembler_Tolerances(t *testing.T) {
	tests := []struct {
		name   string
		second []Glyph
		want   int
	}{
		{"adjacent", glyphs("b", 15, 100, 5), 1},
		{"small gap", glyphs("b", 17, 100, 5), 1},
		{"wide gap", glyphs("b", 25, 100, 5), 2},
		{"next line", glyphs("b", 15, 115, 5), 2},
		{"slight baseline shift", glyphs("b", 15, 102, 5), 1},
		{"moves backward", glyphs("b", 2, 100, 5), 2},
	}

	a := NewAssembler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append(glyphs("a", 10, 100, 5), tt.second...)
			got := a.Words(in)
			if len(got) != tt.want {
				t.Errorf("expected %d words, got %d", tt.want, len(got))
			}
		})
	}
}

func TestAssembler_CustomTolerance(t *testing.T) {
	a := NewAssemblerWithTolerances(Tolerances{X: 20, Y: 3})

	in := append(glyphs("a", 10, 100, 5), glyphs("b", 25, 100, 5)...)
	if got := a.Words(in); len(got) != 1 {
		t.Errorf("expected 1 word with wide x tolerance, got %d", len(got))
	}
}

func TestAssembler_MultiRuneRun(t *testing.T) {
	a := NewAssembler()

	words := a.Words([]Glyph{{Text: "two words", X: 0, Top: 0, Width: 90, Size: 10}})

	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[1].Text != "words" {
		t.Errorf("expected %q, got %q", "words", words[1].Text)
	}
	if words[1].X0 != 40 {
		t.Errorf("expected second word at x=40, got %.1f", words[1].X0)
	}
}

func TestAssembler_ZeroWidthEstimate(t *testing.T) {
	a := NewAssembler()

	words := a.Words([]Glyph{{Text: "ab", X: 0, Top: 0, Size: 10}})

	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
	if words[0].X1 != 10 {
		t.Errorf("expected estimated right edge 10, got %.1f", words[0].X1)
	}
}

func TestAssembler_Empty(t *testing.T) {
	if got := NewAssembler().Words(nil); len(got) != 0 {
		t.Errorf("expected no words, got %d", len(got))
	}
}

func TestDedupe(t *testing.T) {
	words := []model.Word{
		{Text: "Bold", X0: 10.01, Top: 20},
		{Text: "Bold", X0: 10.04, Top: 20.02},
		{Text: "Other", X0: 10, Top: 20},
		{Text: "Bold", X0: 50, Top: 20},
	}

	got := Dedupe(words)

	if len(got) != 3 {
		t.Fatalf("expected 3 words, got %d", len(got))
	}
	if got[0].X0 != 10.01 {
		t.Error("expected first occurrence to be kept")
	}
	if got[1].Text != "Other" || got[2].X0 != 50 {
		t.Error("expected order to be preserved")
	}
}

func TestCrop(t *testing.T) {
	words := []model.Word{
		{Text: "in", X0: 10, Top: 10, X1: 20, Bottom: 20},
		{Text: "out", X0: 200, Top: 10, X1: 220, Bottom: 20},
		{Text: "edge", X0: 95, Top: 10, X1: 110, Bottom: 20},
	}

	got := Crop(words, model.Rect{X0: 0, Top: 0, X1: 100, Bottom: 100})

	if len(got) != 1 || got[0].Text != "in" {
		t.Errorf("expected only %q, got %v", "in", got)
	}
}

func TestAssembler_StackedGlyphs(t *testing.T) {
	a := NewAssembler()

	in := []Glyph{
		{Text: "a", X: 50, Top: 10, Size: 12},
		{Text: "b", X: 50, Top: 10, Size: 12},
		{Text: "c", X: 50, Top: 10, Size: 12},
	}
	words := a.Words(in)

	if len(words) != 1 || words[0].Text != "abc" {
		t.Errorf("expected glyphs without advance to form one word, got %v", words)
	}
}
