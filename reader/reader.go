package reader

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/zonetext/model"
	"github.com/tsawler/zonetext/text"
)

var (
	// ErrPageUnreadable is returned when a page's text layer cannot be
	// decoded.
	ErrPageUnreadable = errors.New("page text layer unreadable")

	// ErrNoImage is returned by PageImage when the page embeds no image.
	ErrNoImage = errors.New("page has no image")
)

// US Letter, used when a page has no usable MediaBox.
const (
	defaultWidth  = 612.0
	defaultHeight = 792.0
)

// Reader reads pages from a PDF file
type Reader struct {
	path      string
	file      *os.File
	size      int64
	pdf       *pdf.Reader
	assembler *text.Assembler
	images    *imageSource
}

// Open opens a PDF file for reading.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.path = path
	return r, nil
}

// NewReader creates a reader over an open file. The reader takes
// ownership of the file and closes it in Close.
func NewReader(f *os.File) (r *Reader, err error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat PDF: %w", err)
	}

	ok, err := IsPDF(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF header: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrNotPDF)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("failed to parse PDF: %v", rec)
		}
	}()

	pr, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	return &Reader{
		path:      f.Name(),
		file:      f,
		size:      info.Size(),
		pdf:       pr,
		assembler: text.NewAssembler(),
		images:    &imageSource{file: f},
	}, nil
}

// SetTolerances changes the word assembly tolerances.
func (r *Reader) SetTolerances(tol text.Tolerances) {
	r.assembler = text.NewAssemblerWithTolerances(tol)
}

// Path returns the file path
func (r *Reader) Path() string {
	return r.path
}

// PageCount returns the number of pages
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// Close closes the underlying file
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// Page materialises a page (1-indexed). A page whose content cannot be
// decoded yields an error wrapping ErrPageUnreadable.
func (r *Reader) Page(n int) (page *model.Page, err error) {
	if n < 1 || n > r.PageCount() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", n, r.PageCount())
	}

	defer func() {
		if rec := recover(); rec != nil {
			page, err = nil, fmt.Errorf("page %d: %w: %v", n, ErrPageUnreadable, rec)
		}
	}()

	p := r.pdf.Page(n)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: %w", n, ErrPageUnreadable)
	}

	box := mediaBox(p.V)
	page = &model.Page{
		Number: n,
		Width:  box.X1 - box.X0,
		Height: box.Bottom - box.Top,
		Images: countImages(p.V.Key("Contents"), p.Resources(), 0),
	}

	content := p.Content()
	glyphs := toGlyphs(content.Text, box)
	page.Words = text.Dedupe(r.assembler.Words(glyphs))

	return page, nil
}

// mediaBox returns the page's MediaBox in PDF space (Top holds lly and
// Bottom ury), searching inherited attributes.
func mediaBox(v pdf.Value) model.Rect {
	node := v
	for depth := 0; depth < 32 && !node.IsNull(); depth++ {
		box := node.Key("MediaBox")
		if box.Len() == 4 {
			r := model.NewRect(box.Index(0).Float64(), box.Index(1).Float64(),
				box.Index(2).Float64(), box.Index(3).Float64())
			if !r.IsEmpty() {
				return r
			}
		}
		node = node.Key("Parent")
	}
	return model.Rect{X1: defaultWidth, Bottom: defaultHeight}
}

// maxFormDepth bounds recursion through nested form XObjects.
const maxFormDepth = 8

// countImages counts the image XObjects a content stream paints with the
// Do operator, descending into form XObjects. Images listed in a shared
// resource dictionary but never drawn are not counted. A stream that fails
// to parse part way yields the images seen so far.
func countImages(contents, resources pdf.Value, depth int) (n int) {
	if depth > maxFormDepth || contents.IsNull() {
		return 0
	}
	defer func() { _ = recover() }()

	xobjects := resources.Key("XObject")
	pdf.Interpret(contents, func(stk *pdf.Stack, op string) {
		if op != "Do" {
			for stk.Len() > 0 {
				stk.Pop()
			}
			return
		}
		name := stk.Pop().Name()
		for stk.Len() > 0 {
			stk.Pop()
		}
		xobj := xobjects.Key(name)
		switch xobj.Key("Subtype").Name() {
		case "Image":
			n++
		case "Form":
			inner := xobj.Key("Resources")
			if inner.IsNull() {
				inner = resources
			}
			n += countImages(xobj, inner, depth+1)
		}
	})
	return n
}

// toGlyphs converts shown text to top-left coordinates. Fonts without a
// width table report a zero advance; the advance is then recovered from
// the position of the following glyph on the same baseline.
func toGlyphs(texts []pdf.Text, box model.Rect) []text.Glyph {
	glyphs := make([]text.Glyph, 0, len(texts))
	for i, t := range texts {
		w := t.W
		if w <= 0 && i+1 < len(texts) {
			next := texts[i+1]
			dx := next.X - t.X
			if math.Abs(next.Y-t.Y) < 0.5 && dx > 0 && dx <= t.FontSize*1.2 {
				w = dx
			}
		}
		glyphs = append(glyphs, text.Glyph{
			Text:  t.S,
			X:     t.X - box.X0,
			Top:   box.Bottom - t.Y - t.FontSize,
			Width: w,
			Size:  t.FontSize,
		})
	}
	return glyphs
}
