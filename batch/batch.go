// Package batch extracts every page that has a region file in a region
// directory, one output file per PDF.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/zonetext"
	"github.com/tsawler/zonetext/reader"
	"github.com/tsawler/zonetext/regions"
	"github.com/tsawler/zonetext/store"
)

// Processor runs batch extractions. Region files are found in RegionDir
// by the "<pdf>_page<N>.json" convention and their PDFs in PDFDir.
type Processor struct {
	RegionDir string
	PDFDir    string
	OutputDir string

	// Configure applies shared options (language, recognizer, ...) to the
	// extractor of every page. An error fails that page. May be nil.
	Configure func(*zonetext.Extractor) (*zonetext.Extractor, error)

	Logger *slog.Logger
}

// Report summarises the batch run of one PDF
type Report struct {
	PDF      string // PDF file name
	Output   string // Written file, empty when skipped
	Pages    []int  // Pages that produced text
	Failed   []int  // Pages whose extraction returned an error
	Warnings []zonetext.Warning
	Skipped  bool // PDF missing from PDFDir
}

// Run processes every PDF that has region files. A PDF missing from
// PDFDir is skipped with a warning; a page that fails is logged and left
// out of the output. Only an unreadable region directory, a write failure
// or cancellation stop the run.
func (p *Processor) Run(ctx context.Context) ([]Report, error) {
	log := p.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	groups, err := regions.ScanDir(p.RegionDir)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(groups))
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		rep, err := p.processPDF(ctx, log, g)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (p *Processor) processPDF(ctx context.Context, log *slog.Logger, g regions.Group) (Report, error) {
	name := g.PDF + ".pdf"
	pdfPath := filepath.Join(p.PDFDir, name)
	rep := Report{PDF: name}

	if _, err := os.Stat(pdfPath); err != nil {
		log.Warn("PDF not found; skipping", "pdf", pdfPath, "region_files", len(g.Files))
		rep.Skipped = true
		return rep, nil
	}

	doc, err := reader.Open(pdfPath)
	if err != nil {
		log.Error("could not open PDF; skipping", "pdf", pdfPath, "error", err)
		rep.Skipped = true
		return rep, nil
	}
	defer doc.Close()

	var texts []string
	for _, f := range g.Files {
		ext := zonetext.FromDocument(doc).PageRange(f.Page, f.Page).Regions(f.Path)
		if p.Configure != nil {
			if ext, err = p.Configure(ext); err != nil {
				log.Error("page configuration failed", "pdf", name, "page", f.Page, "error", err)
				rep.Failed = append(rep.Failed, f.Page)
				continue
			}
		}

		text, warnings, err := ext.Text(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return rep, ctxErr
			}
			log.Error("page extraction failed", "pdf", name, "page", f.Page, "error", err)
			rep.Failed = append(rep.Failed, f.Page)
			continue
		}

		rep.Warnings = append(rep.Warnings, warnings...)
		if strings.TrimSpace(text) == "" {
			continue
		}
		texts = append(texts, text)
		rep.Pages = append(rep.Pages, f.Page)
		log.Info("page extracted", "pdf", name, "page", f.Page, "chars", len([]rune(text)))
	}

	rep.Output = filepath.Join(p.OutputDir, store.BatchName(name))
	if err := store.WriteBatchText(rep.Output, strings.Join(texts, "\n\n")); err != nil {
		return rep, fmt.Errorf("%s: %w", name, err)
	}
	log.Info("batch output written", "pdf", name, "output", rep.Output, "pages", len(rep.Pages))
	return rep, nil
}
