package model

// Word is a single text token with its bounds on the page.
type Word struct {
	Text   string
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
}

// Bounds returns the word's bounding rectangle
func (w Word) Bounds() Rect {
	return Rect{X0: w.X0, Top: w.Top, X1: w.X1, Bottom: w.Bottom}
}

// Page represents a single page of a document as seen by the extractor.
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points
	Words  []Word  // Deduplicated word tokens in content order
	Images int     // Number of image XObjects referenced by the page
}

// CharCount returns the number of characters across all words.
func (p *Page) CharCount() int {
	n := 0
	for _, w := range p.Words {
		n += len([]rune(w.Text))
	}
	return n
}

// HasImages reports whether the page references any embedded image
func (p *Page) HasImages() bool {
	return p.Images > 0
}

// Kind classifies how a page's text must be obtained.
type Kind int

const (
	// KindDigital pages carry a usable text layer.
	KindDigital Kind = iota
	// KindScanned pages are image-only and need optical recognition.
	KindScanned
)

// String returns a lower-case name for the kind.
func (k Kind) String() string {
	switch k {
	case KindDigital:
		return "digital"
	case KindScanned:
		return "scanned"
	default:
		return "unknown"
	}
}
