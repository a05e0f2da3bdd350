package zonetext

import "github.com/tsawler/zonetext/model"

// Document is a paged source of text and images. It is implemented by
// reader.Reader; tests and callers with other sources can supply their own.
// The extractor only calls a Document from one goroutine.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page materialises page n (1-indexed).
	Page(n int) (*model.Page, error)

	// PageImage returns the encoded scan image of page n.
	PageImage(n int) ([]byte, error)

	// Close releases the document.
	Close() error
}
