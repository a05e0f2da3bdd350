package zonetext

import (
	"log/slog"

	"github.com/tsawler/zonetext/classify"
	"github.com/tsawler/zonetext/layout"
	"github.com/tsawler/zonetext/model"
	"github.com/tsawler/zonetext/normalize"
	"github.com/tsawler/zonetext/ocr"
	"github.com/tsawler/zonetext/regions"
	"github.com/tsawler/zonetext/text"
)

// ExtractOptions holds configuration for text extraction.
type ExtractOptions struct {
	// Page range (1-indexed, inclusive; end 0 means the last page)
	startPage int
	endPage   int

	// Regions
	regionFile  string
	regionStore *regions.Store

	// Processing options
	language      model.Language
	normalization normalize.Mode
	columns       layout.ColumnConfig
	classify      classify.Config
	tolerances    *text.Tolerances

	// OCR
	recognizer    ocr.Recognizer
	ocrLanguages  []string // Overrides the language's OCR models when set
	requireOCR    bool
	workers       int
	minConfidence float64

	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		startPage:     1,
		endPage:       0, // 0 means the last page
		language:      model.English,
		normalization: normalize.ModeFull,
		columns:       layout.DefaultColumnConfig(),
		classify:      classify.DefaultConfig(),
		workers:       1,
	}
}

// clone creates a copy of ExtractOptions. Stores, recognizers and loggers
// are shared; they are not modified by the extractor.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.ocrLanguages != nil {
		newOpts.ocrLanguages = append([]string(nil), o.ocrLanguages...)
	}
	if o.tolerances != nil {
		tol := *o.tolerances
		newOpts.tolerances = &tol
	}
	return newOpts
}
