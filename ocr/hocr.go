package ocr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Word is a recognized word from an hOCR document
type Word struct {
	Text       string
	Line       int    // 0-based index of the ocr_line holding the word
	BBox       [4]int // x0, y0, x1, y1 in image pixels
	Confidence float64
}

// ParseHOCR extracts the ocrx_word elements of an hOCR document in
// document order. Word confidence is taken from x_wconf and scaled to
// [0, 1].
func ParseHOCR(r io.Reader) ([]Word, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	var (
		words []Word
		line  = -1
	)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			class, title := attr(n, "class"), attr(n, "title")
			switch {
			case hasClass(class, "ocr_line"), hasClass(class, "ocr_header"), hasClass(class, "ocr_caption"):
				line++
			case hasClass(class, "ocrx_word"):
				w := Word{Text: strings.TrimSpace(nodeText(n)), Line: max(line, 0)}
				props := ParseTitle(title)
				if bbox, ok := props["bbox"]; ok && len(bbox) >= 4 {
					for i := 0; i < 4; i++ {
						w.BBox[i], _ = strconv.Atoi(bbox[i])
					}
				}
				if conf, ok := props["x_wconf"]; ok && len(conf) > 0 {
					v, _ := strconv.ParseFloat(conf[0], 64)
					w.Confidence = v / 100
				}
				if w.Text != "" {
					words = append(words, w)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return words, nil
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// MeanConfidence averages word confidences; zero when there are no words.
func MeanConfidence(words []Word) float64 {
	if len(words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range words {
		sum += w.Confidence
	}
	return sum / float64(len(words))
}

// WordsText joins words with spaces and lines with newlines.
func WordsText(words []Word) string {
	var sb strings.Builder
	for i, w := range words {
		if i > 0 {
			if w.Line != words[i-1].Line {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(w.Text)
	}
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(class, name string) bool {
	for _, c := range strings.Fields(class) {
		if c == name {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
