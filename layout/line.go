package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/zonetext/model"
)

// Line is a run of words sharing the same rounded top edge
type Line struct {
	// Top is the line's top edge rounded to one decimal place
	Top float64

	// Words sorted left to right
	Words []model.Word

	// Text is the space-joined word text
	Text string
}

// Lines groups words into lines by their top edge rounded to one decimal
// place, ordered top to bottom, with words ordered by x0 inside a line.
func Lines(words []model.Word) []Line {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]model.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := model.Round1(sorted[i].Top), model.Round1(sorted[j].Top)
		if ti != tj {
			return ti < tj
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var lines []Line
	for _, w := range sorted {
		top := model.Round1(w.Top)
		if n := len(lines); n > 0 && lines[n-1].Top == top {
			lines[n-1].Words = append(lines[n-1].Words, w)
			continue
		}
		lines = append(lines, Line{Top: top, Words: []model.Word{w}})
	}

	for i := range lines {
		parts := make([]string, len(lines[i].Words))
		for j, w := range lines[i].Words {
			parts[j] = w.Text
		}
		lines[i].Text = strings.Join(parts, " ")
	}
	return lines
}
