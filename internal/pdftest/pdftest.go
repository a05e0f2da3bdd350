// Package pdftest writes small PDF fixtures for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"codeberg.org/go-pdf/fpdf"
)

// Page size and font used by every fixture.
const (
	Width    = 500.0
	Height   = 700.0
	FontSize = 12.0
)

// Word places text with its left edge at X and its baseline at Y, both in
// points from the top-left corner. The word's top edge is Y - FontSize.
type Word struct {
	X, Y float64
	Text string
}

// Page describes one fixture page
type Page struct {
	Words []Word
	Image bool // Draw a full-page scan image
}

// Line returns words laid out left to right starting at x on baseline y,
// separated by one space.
func Line(x, y float64, words ...string) []Word {
	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetFont("Helvetica", "", FontSize)
	space := pdf.GetStringWidth(" ")

	out := make([]Word, 0, len(words))
	for _, w := range words {
		out = append(out, Word{X: x, Y: y, Text: w})
		x += pdf.GetStringWidth(w) + space
	}
	return out
}

// Filler returns n words of running text laid out on consecutive lines
// starting at (x, y), ten words per line.
func Filler(x, y float64, n int) []Word {
	var out []Word
	for i := 0; i < n; i += 10 {
		var line []string
		for j := i; j < n && j < i+10; j++ {
			line = append(line, fmt.Sprintf("word%d", j))
		}
		out = append(out, Line(x, y, line...)...)
		y += FontSize * 1.5
	}
	return out
}

// Write renders pages into a PDF file under t.TempDir and returns its path.
// Each glyph is placed individually so readers can recover positions from
// fonts that carry no width table.
func Write(t testing.TB, pages ...Page) string {
	t.Helper()

	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetFont("Helvetica", "", FontSize)

	if hasImage(pages) {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("scan", opts, bytes.NewReader(ScanPNG(400, 560)))
	}

	for _, p := range pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: Width, Ht: Height})
		if p.Image {
			pdf.ImageOptions("scan", 50, 70, 400, 560, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		}
		for _, w := range p.Words {
			x := w.X
			for _, r := range w.Text + " " {
				s := string(r)
				pdf.Text(x, w.Y, s)
				x += pdf.GetStringWidth(s)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("writing fixture PDF: %v", err)
	}
	return path
}

func hasImage(pages []Page) bool {
	for _, p := range pages {
		if p.Image {
			return true
		}
	}
	return false
}

// ScanPNG returns a white image with a few dark bars, standing in for a
// scanned page.
func ScanPNG(width, height int) []byte {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y := 40; y < height-40; y += 40 {
		for x := 30; x < width-30; x++ {
			for dy := 0; dy < 12; dy++ {
				img.SetGray(x, y+dy, color.Gray{Y: 0x20})
			}
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
