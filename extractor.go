package zonetext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/zonetext/classify"
	"github.com/tsawler/zonetext/layout"
	"github.com/tsawler/zonetext/model"
	"github.com/tsawler/zonetext/normalize"
	"github.com/tsawler/zonetext/ocr"
	"github.com/tsawler/zonetext/reader"
	"github.com/tsawler/zonetext/regions"
	"github.com/tsawler/zonetext/text"
)

const scope = "github.com/tsawler/zonetext"

var (
	// ErrPageRange is returned for a start page below 1 or past the end of
	// the document, or an end page before the start page.
	ErrPageRange = errors.New("invalid page range")

	// ErrNoRecognizer is returned when RequireOCR is set and a scanned page
	// is found without a recognizer configured.
	ErrNoRecognizer = errors.New("scanned page requires a recognizer")

	// ErrNoSource is returned when an Extractor has neither a path nor a
	// document.
	ErrNoSource = errors.New("no document specified")
)

// Extractor provides a fluent interface for extracting text from PDFs.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	path string
	doc  Document // Caller-owned document, used instead of path

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		path:    e.path,
		doc:     e.doc,
		options: e.options.clone(),
		err:     e.err,
	}
}

// withErr records the first configuration error
func (e *Extractor) withErr(err error) *Extractor {
	if e.err == nil {
		e.err = err
	}
	return e
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// PageRange specifies the pages to extract (1-indexed, inclusive). An end
// of 0, or one past the last page, means the last page.
//
// Example:
//
//	res, _, err := zonetext.Open("doc.pdf").PageRange(5, 10).Extract(ctx)
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	newExt.options.startPage = start
	newExt.options.endPage = end
	return newExt
}

// Regions loads region definitions from a JSON or YAML file when the
// extraction runs. A missing file produces a warning and unconstrained
// extraction; a malformed file fails the run.
func (e *Extractor) Regions(path string) *Extractor {
	newExt := e.clone()
	newExt.options.regionFile = path
	newExt.options.regionStore = nil
	return newExt
}

// RegionStore uses an already loaded region store.
func (e *Extractor) RegionStore(s *regions.Store) *Extractor {
	newExt := e.clone()
	newExt.options.regionStore = s
	newExt.options.regionFile = ""
	return newExt
}

// Language sets the language hint used for hyphen repair and OCR.
func (e *Extractor) Language(lang model.Language) *Extractor {
	newExt := e.clone()
	newExt.options.language = lang
	return newExt
}

// Normalization selects how the joined text is cleaned.
func (e *Extractor) Normalization(mode normalize.Mode) *Extractor {
	newExt := e.clone()
	newExt.options.normalization = mode
	return newExt
}

// ColumnStrategy selects the column clustering algorithm used on pages
// without regions.
func (e *Extractor) ColumnStrategy(s layout.Strategy) *Extractor {
	newExt := e.clone()
	newExt.options.columns.Strategy = s
	return newExt
}

// ColumnTolerance sets the column tolerance as a fraction of page width.
func (e *Extractor) ColumnTolerance(ratio float64) *Extractor {
	newExt := e.clone()
	if ratio <= 0 || ratio > 1 {
		return newExt.withErr(fmt.Errorf("column tolerance %v outside (0, 1]", ratio))
	}
	newExt.options.columns.ToleranceRatio = ratio
	return newExt
}

// MinWords sets the word count below which a page is treated as scanned.
func (e *Extractor) MinWords(n int) *Extractor {
	newExt := e.clone()
	newExt.options.classify.MinWords = n
	return newExt
}

// MinChars sets the character count below which a page with images is
// skipped as image-heavy during unconstrained extraction.
func (e *Extractor) MinChars(n int) *Extractor {
	newExt := e.clone()
	newExt.options.classify.MinChars = n
	return newExt
}

// WordTolerances sets the glyph gaps used to assemble words when the
// document is opened by the extractor.
func (e *Extractor) WordTolerances(tol text.Tolerances) *Extractor {
	newExt := e.clone()
	newExt.options.tolerances = &tol
	return newExt
}

// Recognizer sets the OCR engine for scanned pages. Without one, scanned
// pages are skipped with a warning.
func (e *Extractor) Recognizer(r ocr.Recognizer) *Extractor {
	newExt := e.clone()
	newExt.options.recognizer = r
	return newExt
}

// OCRLanguages overrides the OCR models passed to the recognizer, which
// otherwise follow Language.
func (e *Extractor) OCRLanguages(langs ...string) *Extractor {
	newExt := e.clone()
	newExt.options.ocrLanguages = append([]string(nil), langs...)
	return newExt
}

// RequireOCR makes a scanned page without a recognizer fail the
// extraction with ErrNoRecognizer instead of producing a warning.
func (e *Extractor) RequireOCR() *Extractor {
	newExt := e.clone()
	newExt.options.requireOCR = true
	return newExt
}

// Workers sets how many pages may be recognized concurrently. The
// recognizer must be safe for concurrent use when n > 1.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		n = 1
	}
	newExt.options.workers = n
	return newExt
}

// MinConfidence discards OCR results whose confidence is below c.
func (e *Extractor) MinConfidence(c float64) *Extractor {
	newExt := e.clone()
	newExt.options.minConfidence = c
	return newExt
}

// Logger sets the structured logger. Warnings are logged at Warn level.
func (e *Extractor) Logger(l *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the document.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	doc, release, err := e.open()
	if err != nil {
		return 0, err
	}
	defer release()
	return doc.PageCount(), nil
}

// Text extracts and returns the normalized text.
//
// Example:
//
//	text, warnings, err := zonetext.Open("doc.pdf").PageRange(2, 4).Text(ctx)
func (e *Extractor) Text(ctx context.Context) (string, []Warning, error) {
	res, warnings, err := e.Extract(ctx)
	if err != nil {
		return "", warnings, err
	}
	return res.Text, warnings, nil
}

// Extract runs the extraction over the configured page range.
//
// Pages are read and classified one at a time. Digital pages are
// assembled from their regions or columns immediately; scanned pages have
// their image gathered and are then recognized on up to Workers
// goroutines. Page texts are joined in page order with blank lines and
// normalized.
func (e *Extractor) Extract(ctx context.Context) (*Result, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	started := time.Now()
	tracer := otel.Tracer(scope)
	ctx, span := tracer.Start(ctx, "zonetext.Extract")
	defer span.End()

	res, warnings, err := e.extract(ctx, tracer)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, warnings, err
	}

	res.Elapsed = time.Since(started)
	span.SetAttributes(
		attribute.String("zonetext.source", res.Source),
		attribute.Int("zonetext.start_page", res.StartPage),
		attribute.Int("zonetext.end_page", res.EndPage),
		attribute.Int("zonetext.warnings", len(warnings)),
	)
	return res, warnings, nil
}

func (e *Extractor) extract(ctx context.Context, tracer trace.Tracer) (*Result, []Warning, error) {
	log := e.logger()

	doc, release, err := e.open()
	if err != nil {
		return nil, nil, err
	}
	defer release()

	start, end, err := resolveRange(e.options.startPage, e.options.endPage, doc.PageCount())
	if err != nil {
		return nil, nil, err
	}

	store, warnings, err := e.loadRegions()
	if err != nil {
		return nil, nil, err
	}

	r := &run{
		doc:        doc,
		store:      store,
		classifier: classify.New(e.options.classify),
		columns:    layout.NewColumnDetectorWithConfig(e.options.columns),
		recognizer: e.options.recognizer,
		languages:  e.ocrLanguages(),
		minConf:    e.options.minConfidence,
		tracer:     tracer,
	}

	units := make([]*pageUnit, 0, end-start+1)
	for n := start; n <= end; n++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		u := r.prepare(ctx, n)
		if e.options.requireOCR && u.report.Kind == model.KindScanned && r.recognizer == nil {
			return nil, nil, fmt.Errorf("page %d: %w", n, ErrNoRecognizer)
		}
		units = append(units, u)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.workers)
	for _, u := range units {
		if u.image == nil {
			continue
		}
		g.Go(func() error {
			return r.recognize(gctx, u)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	pages := newPageCounter(otel.Meter(scope), log)

	res := &Result{
		Source:    e.sourceName(),
		StartPage: start,
		EndPage:   end,
		PageCount: end - start + 1,
		Language:  e.options.language,
		Pages:     make([]PageReport, 0, len(units)),
	}

	var texts []string
	for _, u := range units {
		warnings = append(warnings, u.warnings...)
		if u.text != "" {
			texts = append(texts, u.text)
		}
		u.report.Chars = len([]rune(u.text))
		res.Pages = append(res.Pages, u.report)
		pages.Add(ctx, 1, metric.WithAttributes(attribute.String("strategy", string(u.report.Strategy))))
		log.Debug("page extracted",
			"page", u.report.Page,
			"kind", u.report.Kind.String(),
			"strategy", string(u.report.Strategy),
			"chars", u.report.Chars)
	}

	for _, w := range warnings {
		log.Warn(w.Message, "page", w.Page, "region", w.Region, "code", string(w.Code))
	}

	res.Text = normalize.New(e.options.normalization, e.options.language).Normalize(strings.Join(texts, "\n\n"))
	res.Degraded = len(warnings) > 0

	return res, warnings, nil
}

// open returns the document and a release function that closes it when
// the extractor opened it.
func (e *Extractor) open() (Document, func(), error) {
	if e.doc != nil {
		return e.doc, func() {}, nil
	}
	if e.path == "" {
		return nil, nil, ErrNoSource
	}

	r, err := reader.Open(e.path)
	if err != nil {
		return nil, nil, err
	}
	if e.options.tolerances != nil {
		r.SetTolerances(*e.options.tolerances)
	}
	return r, func() { r.Close() }, nil
}

// loadRegions returns the configured store. A missing region file becomes
// a document-level warning.
func (e *Extractor) loadRegions() (*regions.Store, []Warning, error) {
	if e.options.regionStore != nil {
		return e.options.regionStore, nil, nil
	}
	if e.options.regionFile == "" {
		return nil, nil, nil
	}

	store, err := regions.Load(e.options.regionFile)
	if errors.Is(err, regions.ErrNoRegionFile) {
		return store, []Warning{{
			Code:    WarnNoRegionFile,
			Message: fmt.Sprintf("region file not found at %s; extracting without regions", e.options.regionFile),
		}}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return store, nil, nil
}

func (e *Extractor) ocrLanguages() []string {
	if len(e.options.ocrLanguages) > 0 {
		return e.options.ocrLanguages
	}
	return e.options.language.OCRLanguages()
}

func (e *Extractor) logger() *slog.Logger {
	if e.options.logger != nil {
		return e.options.logger
	}
	return slog.New(slog.DiscardHandler)
}

func (e *Extractor) sourceName() string {
	if e.path != "" {
		return filepath.Base(e.path)
	}
	if p, ok := e.doc.(interface{ Path() string }); ok {
		return filepath.Base(p.Path())
	}
	return ""
}

// resolveRange validates a requested range against the page count,
// clamping a zero or overlong end to the last page.
func resolveRange(start, end, count int) (int, int, error) {
	if start < 1 {
		return 0, 0, fmt.Errorf("%w: start page %d is below 1", ErrPageRange, start)
	}
	if start > count {
		return 0, 0, fmt.Errorf("%w: start page %d exceeds page count %d", ErrPageRange, start, count)
	}
	if end == 0 || end > count {
		end = count
	}
	if end < start {
		return 0, 0, fmt.Errorf("%w: end page %d is before start page %d", ErrPageRange, end, start)
	}
	return start, end, nil
}

// newPageCounter creates the per-strategy page counter. A meter that cannot
// create it leaves extraction unmetered.
func newPageCounter(m metric.Meter, log *slog.Logger) metric.Int64Counter {
	counter, err := m.Int64Counter("zonetext.pages",
		metric.WithDescription("Pages processed by extraction strategy"))
	if err != nil {
		log.Debug("page counter unavailable", "error", err)
		return noop.Int64Counter{}
	}
	return counter
}
