package layout

import (
	"strings"

	"github.com/tsawler/zonetext/model"
)

// Paragraphs joins consecutive non-blank lines with single spaces. Blank
// lines end the current paragraph.
func Paragraphs(lines []Line) []string {
	var (
		paragraphs []string
		buf        []string
	)
	for _, l := range lines {
		t := strings.TrimSpace(l.Text)
		if t == "" {
			if len(buf) > 0 {
				paragraphs = append(paragraphs, strings.Join(buf, " "))
				buf = buf[:0]
			}
			continue
		}
		buf = append(buf, t)
	}
	if len(buf) > 0 {
		paragraphs = append(paragraphs, strings.Join(buf, " "))
	}
	return paragraphs
}

// Block renders words as paragraphs separated by blank lines.
func Block(words []model.Word) string {
	return strings.Join(Paragraphs(Lines(words)), "\n\n")
}

// PageText clusters words into columns and renders each column as a
// block, joining columns left to right with blank lines.
func (d *ColumnDetector) PageText(words []model.Word, pageWidth float64) string {
	var blocks []string
	for _, col := range d.Detect(words, pageWidth) {
		if b := Block(col.Words); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}
