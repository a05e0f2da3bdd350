package zonetext

import (
	"time"

	"github.com/tsawler/zonetext/model"
	"github.com/tsawler/zonetext/regions"
)

// PageStrategy records how a page's text was obtained
type PageStrategy string

const (
	StrategyRegions PageStrategy = "regions" // Cropped to a region set
	StrategyColumns PageStrategy = "columns" // Column clustering of the whole page
	StrategyOCR     PageStrategy = "ocr"     // Optical recognition of the page image
	StrategySkipped PageStrategy = "skipped" // No text taken from the page
)

// PageReport describes the extraction of one page
type PageReport struct {
	Page       int
	Kind       model.Kind
	Strategy   PageStrategy
	Chars      int          // Characters contributed before normalization
	RegionPage int          // Page the region set was defined on, 0 when none
	Rule       regions.Rule // How the region set was resolved
	Confidence float64      // OCR confidence, 0 for digital pages
}

// Result is the outcome of an extraction run. It is not modified after
// being returned.
type Result struct {
	Source    string // Base name of the document
	StartPage int
	EndPage   int
	PageCount int // EndPage - StartPage + 1
	Language  model.Language
	Elapsed   time.Duration
	Text      string
	Pages     []PageReport

	// Degraded is set when any warning was raised, meaning some page or
	// region was skipped or extracted without its regions.
	Degraded bool
}
