// Package zonetext extracts plain text from PDF files, page by page,
// optionally constrained to user-drawn regions.
//
// Basic usage:
//
//	res, warnings, err := zonetext.Open("document.pdf").Extract(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", zonetext.FormatWarnings(warnings))
//	}
//	fmt.Println(res.Text)
//
// With options:
//
//	res, _, err := zonetext.Open("scan.pdf").
//	    PageRange(3, 10).
//	    Regions("regions/scan_page3.json").
//	    Language(model.Cyrillic).
//	    Recognizer(tess).
//	    Extract(ctx)
//
// For each page the extractor decides between the digital text layer and
// optical recognition. Digital pages use the page's region set (see the
// regions package for how sets are reused across pages) or, when no
// regions apply, column clustering. Scanned pages are handed to the
// configured ocr.Recognizer. Problems confined to one page or region are
// reported as warnings and the unit is skipped; only an unreadable
// document, a bad page range or a malformed region file fail the call.
package zonetext

import (
	"github.com/tsawler/zonetext/reader"
)

// Open returns an Extractor for the PDF at path. The file is opened and
// closed by each terminal operation.
//
// Example:
//
//	text, warnings, err := zonetext.Open("document.pdf").Text(ctx)
func Open(path string) *Extractor {
	return &Extractor{
		path:    path,
		options: defaultOptions(),
	}
}

// FromDocument creates an Extractor over an already opened Document.
// The caller is responsible for closing the document.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	res, warnings, err := zonetext.FromDocument(r).Extract(ctx)
func FromDocument(doc Document) *Extractor {
	return &Extractor{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := zonetext.Must(zonetext.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

var _ Document = (*reader.Reader)(nil)
