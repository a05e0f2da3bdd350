package zonetext

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tsawler/zonetext/classify"
	"github.com/tsawler/zonetext/layout"
	"github.com/tsawler/zonetext/model"
	"github.com/tsawler/zonetext/ocr"
	"github.com/tsawler/zonetext/regions"
	"github.com/tsawler/zonetext/text"
)

// run holds the per-extraction state shared by every page.
type run struct {
	doc        Document
	store      *regions.Store
	state      regions.State
	classifier *classify.Classifier
	columns    *layout.ColumnDetector
	recognizer ocr.Recognizer
	languages  []string
	minConf    float64
	tracer     trace.Tracer
}

// pageUnit is one page moving through the extraction. image is set only
// while the page waits for OCR.
type pageUnit struct {
	report   PageReport
	text     string
	image    []byte
	warnings []Warning
}

func (u *pageUnit) warn(region int, code WarningCode, format string, args ...any) {
	u.warnings = append(u.warnings, Warning{
		Page:    u.report.Page,
		Region:  region,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// prepare reads and classifies page n. Digital pages are extracted
// directly; scanned pages get their image loaded for recognize.
func (r *run) prepare(ctx context.Context, n int) *pageUnit {
	_, span := r.tracer.Start(ctx, "zonetext.Page", trace.WithAttributes(attribute.Int("zonetext.page", n)))
	defer span.End()

	u := &pageUnit{report: PageReport{Page: n, Strategy: StrategySkipped}}

	page, err := r.doc.Page(n)
	if err != nil {
		u.warn(0, WarnPageUnreadable, "could not read page: %v", err)
		return u
	}

	u.report.Kind = r.classifier.Classify(page)
	span.SetAttributes(attribute.String("zonetext.kind", u.report.Kind.String()))

	if u.report.Kind == model.KindScanned {
		r.prepareScanned(u)
		return u
	}

	if res, ok := r.store.Resolve(n, &r.state); ok {
		u.report.Strategy = StrategyRegions
		u.report.RegionPage = res.SourcePage
		u.report.Rule = res.Rule
		u.text = r.regionText(u, page, res.Set)
		return u
	}

	r.columnText(u, page)
	return u
}

func (r *run) prepareScanned(u *pageUnit) {
	if r.recognizer == nil {
		u.warn(0, WarnNoRecognizer, "page has too few words and OCR is not configured; skipped")
		return
	}

	img, err := r.doc.PageImage(u.report.Page)
	if err != nil {
		u.warn(0, WarnNoImage, "page has too few words and no usable image: %v", err)
		return
	}
	u.image = img
}

// regionText extracts each region of set in order. Regions that are
// empty or yield nothing are skipped with a warning.
func (r *run) regionText(u *pageUnit, page *model.Page, set *regions.RegionSet) string {
	var parts []string
	for i, reg := range set.Regions {
		idx := i + 1
		if reg.IsEmpty() {
			u.warn(idx, WarnEmptyRegion, "region (%.1f, %.1f, %.1f, %.1f) has no area; skipped",
				reg.X0, reg.Y0, reg.X1, reg.Y1)
			continue
		}

		words := text.Dedupe(text.Crop(page.Words, reg.Rect()))
		block := layout.Block(words)
		if strings.TrimSpace(block) == "" {
			u.warn(idx, WarnRegionNoText, "region produced no text")
			continue
		}
		parts = append(parts, block)
	}
	return strings.Join(parts, "\n\n")
}

// columnText extracts a page that has no regions.
func (r *run) columnText(u *pageUnit, page *model.Page) {
	if r.classifier.ImageHeavy(page) {
		u.warn(0, WarnImageHeavy, "page has images and only %d characters; skipped", page.CharCount())
		return
	}
	if len(page.Words) == 0 {
		u.warn(0, WarnEmptyPage, "page has no text")
		return
	}

	u.report.Strategy = StrategyColumns
	u.text = r.columns.PageText(page.Words, page.Width)
	if strings.TrimSpace(u.text) == "" {
		u.warn(0, WarnEmptyPage, "page produced no text")
	}
}

// recognize runs OCR for a page prepared by prepareScanned. Recognizer
// failures become warnings; only cancellation is returned.
func (r *run) recognize(ctx context.Context, u *pageUnit) error {
	ctx, span := r.tracer.Start(ctx, "zonetext.OCR", trace.WithAttributes(attribute.Int("zonetext.page", u.report.Page)))
	defer span.End()

	img := u.image
	u.image = nil

	res, err := r.recognizer.Recognize(ctx, img, r.languages)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		span.RecordError(err)
		u.warn(0, WarnOCRFailed, "OCR failed: %v", err)
		return nil
	}

	span.SetAttributes(attribute.Float64("zonetext.confidence", res.Confidence))
	u.report.Confidence = res.Confidence

	if strings.TrimSpace(res.Text) == "" {
		u.warn(0, WarnOCREmpty, "OCR produced no text")
		return nil
	}
	if res.Confidence < r.minConf {
		u.warn(0, WarnLowConfidence, "OCR confidence %.2f below minimum %.2f; discarded", res.Confidence, r.minConf)
		return nil
	}

	u.report.Strategy = StrategyOCR
	u.text = strings.TrimSpace(res.Text)
	return nil
}
