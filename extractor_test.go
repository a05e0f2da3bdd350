package zonetext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/tsawler/zonetext/internal/pdftest"
	"github.com/tsawler/zonetext/layout"
	"github.com/tsawler/zonetext/model"
	"github.com/tsawler/zonetext/ocr"
	"github.com/tsawler/zonetext/regions"
)

// fakeDoc is an in-memory Document
type fakeDoc struct {
	pages  map[int]*model.Page
	images map[int][]byte
	count  int
	broken map[int]bool
	closed bool
}

func newFakeDoc(pages ...*model.Page) *fakeDoc {
	d := &fakeDoc{
		pages:  make(map[int]*model.Page),
		images: make(map[int][]byte),
		broken: make(map[int]bool),
		count:  len(pages),
	}
	for i, p := range pages {
		p.Number = i + 1
		d.pages[i+1] = p
	}
	return d
}

func (d *fakeDoc) PageCount() int { return d.count }

func (d *fakeDoc) Page(n int) (*model.Page, error) {
	if d.broken[n] {
		return nil, fmt.Errorf("page %d: corrupt content stream", n)
	}
	return d.pages[n], nil
}

func (d *fakeDoc) PageImage(n int) ([]byte, error) {
	img, ok := d.images[n]
	if !ok {
		return nil, errors.New("no image")
	}
	return img, nil
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

// column returns n words stacked one per line at x, named prefix0..prefixN.
func column(x float64, prefix string, n int) []model.Word {
	words := make([]model.Word, n)
	for i := range words {
		top := 50 + float64(i)*15
		words[i] = model.Word{
			Text:   fmt.Sprintf("%s%d", prefix, i),
			X0:     x,
			Top:    top,
			X1:     x + 40,
			Bottom: top + 10,
		}
	}
	return words
}

func digitalPage(words ...[]model.Word) *model.Page {
	p := &model.Page{Width: 500, Height: 700}
	for _, w := range words {
		p.Words = append(p.Words, w...)
	}
	return p
}

func scannedPage() *model.Page {
	return &model.Page{Width: 500, Height: 700, Images: 1}
}

// seq joins prefix0..prefix(n-1) with spaces
func seq(prefix string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return strings.Join(parts, " ")
}

func fixed(text string, conf float64) ocr.Recognizer {
	return ocr.RecognizerFunc(func(context.Context, []byte, []string) (ocr.Result, error) {
		return ocr.Result{Text: text, Confidence: conf}, nil
	})
}

func TestExtractColumns(t *testing.T) {
	doc := newFakeDoc(digitalPage(column(300, "beta", 25), column(50, "alpha", 25)))

	res, warnings, err := FromDocument(doc).Extract(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}

	want := seq("alpha", 25) + "\n\n" + seq("beta", 25)
	if res.Text != want {
		t.Errorf("expected %q, got %q", want, res.Text)
	}
	if res.Pages[0].Strategy != StrategyColumns {
		t.Errorf("expected strategy %s, got %s", StrategyColumns, res.Pages[0].Strategy)
	}
	if res.Degraded {
		t.Error("expected result not to be degraded")
	}
	if doc.closed {
		t.Error("extractor must not close a caller-owned document")
	}
}

func TestExtractRegions(t *testing.T) {
	doc := newFakeDoc(
		digitalPage(column(50, "alpha", 25), column(300, "beta", 25)),
		digitalPage(column(50, "gamma", 25), column(300, "delta", 25)),
	)
	store := regions.NewStore([]regions.Region{
		{Page: 1, X0: 280, Y0: 40, X1: 360, Y1: 700, Order: 1},
	})

	res, warnings, err := FromDocument(doc).RegionStore(store).Extract(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}

	want := seq("beta", 25) + "\n\n" + seq("delta", 25)
	if res.Text != want {
		t.Errorf("expected %q, got %q", want, res.Text)
	}

	tests := []struct {
		page       int
		rule       regions.Rule
		regionPage int
	}{
		{1, regions.RuleExplicit, 1},
		{2, regions.RulePreceding, 1},
	}
	for _, tt := range tests {
		rep := res.Pages[tt.page-1]
		if rep.Strategy != StrategyRegions {
			t.Errorf("page %d: expected strategy %s, got %s", tt.page, StrategyRegions, rep.Strategy)
		}
		if rep.Rule != tt.rule {
			t.Errorf("page %d: expected rule %s, got %s", tt.page, tt.rule, rep.Rule)
		}
		if rep.RegionPage != tt.regionPage {
			t.Errorf("page %d: expected region page %d, got %d", tt.page, tt.regionPage, rep.RegionPage)
		}
	}
}

func TestExtractRegionOrder(t *testing.T) {
	doc := newFakeDoc(digitalPage(column(50, "alpha", 25), column(300, "beta", 25)))
	store := regions.NewStore([]regions.Region{
		{Page: 1, X0: 40, Y0: 40, X1: 120, Y1: 700, Order: 2},
		{Page: 1, X0: 280, Y0: 40, X1: 360, Y1: 700, Order: 1},
	})

	text, _, err := FromDocument(doc).RegionStore(store).Text(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	want := seq("beta", 25) + "\n\n" + seq("alpha", 25)
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestExtractRegionWarnings(t *testing.T) {
	doc := newFakeDoc(digitalPage(column(50, "alpha", 25)))
	store := regions.NewStore([]regions.Region{
		{Page: 1, X0: 100, Y0: 100, X1: 100, Y1: 300, Order: 1}, // zero width
		{Page: 1, X0: 400, Y0: 40, X1: 480, Y1: 700, Order: 2},  // no words inside
		{Page: 1, X0: 40, Y0: 40, X1: 120, Y1: 700, Order: 3},
	})

	res, warnings, err := FromDocument(doc).RegionStore(store).Extract(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if warnings[0].Code != WarnEmptyRegion || warnings[0].Region != 1 {
		t.Errorf("expected empty-region warning for region 1, got %+v", warnings[0])
	}
	if warnings[1].Code != WarnRegionNoText || warnings[1].Region != 2 {
		t.Errorf("expected region-no-text warning for region 2, got %+v", warnings[1])
	}
	if res.Text != seq("alpha", 25) {
		t.Errorf("expected remaining region text, got %q", res.Text)
	}
	if !res.Degraded {
		t.Error("expected result to be degraded")
	}
}

func TestExtractScannedWithoutRecognizer(t *testing.T) {
	doc := newFakeDoc(scannedPage())
	doc.images[1] = []byte("png")

	res, warnings, err := FromDocument(doc).Extract(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !HasCode(warnings, WarnNoRecognizer) {
		t.Errorf("expected %s warning, got %v", WarnNoRecognizer, warnings)
	}
	if res.Pages[0].Kind != model.KindScanned {
		t.Errorf("expected scanned page, got %s", res.Pages[0].Kind)
	}
	if res.Pages[0].Strategy != StrategySkipped {
		t.Errorf("expected strategy %s, got %s", StrategySkipped, res.Pages[0].Strategy)
	}
	if res.Text != "" {
		t.Errorf("expected empty text, got %q", res.Text)
	}
}

func TestExtractScannedWithRecognizer(t *testing.T) {
	doc := newFakeDoc(digitalPage(column(50, "alpha", 25)), scannedPage())
	doc.images[2] = []byte("png")

	var gotLangs []string
	rec := ocr.RecognizerFunc(func(_ context.Context, img []byte, langs []string) (ocr.Result, error) {
		if string(img) != "png" {
			t.Errorf("expected page image, got %q", img)
		}
		gotLangs = langs
		return ocr.Result{Text: "  распознанный текст \n", Confidence: 0.9}, nil
	})

	// Regions defined for page 1 must not stop page 2 going to OCR.
	store := regions.NewStore([]regions.Region{{Page: 1, X0: 40, Y0: 40, X1: 120, Y1: 700, Order: 1}})

	res, warnings, err := FromDocument(doc).
		RegionStore(store).
		Language(model.Cyrillic).
		Recognizer(rec).
		Extract(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}

	if !reflect.DeepEqual(gotLangs, []string{"rus", "eng"}) {
		t.Errorf("expected languages [rus eng], got %v", gotLangs)
	}

	want := seq("alpha", 25) + "\n\nраспознанный текст"
	if res.Text != want {
		t.Errorf("expected %q, got %q", want, res.Text)
	}

	rep := res.Pages[1]
	if rep.Strategy != StrategyOCR {
		t.Errorf("expected strategy %s, got %s", StrategyOCR, rep.Strategy)
	}
	if rep.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", rep.Confidence)
	}
}

func TestExtractRequireOCR(t *testing.T) {
	doc := newFakeDoc(digitalPage(column(50, "a", 25)), scannedPage())

	_, _, err := FromDocument(doc).RequireOCR().Extract(context.Background())
	if !errors.Is(err, ErrNoRecognizer) {
		t.Errorf("expected ErrNoRecognizer, got %v", err)
	}
}

func TestExtractOCRLanguages(t *testing.T) {
	doc := newFakeDoc(scannedPage())
	doc.images[1] = []byte("png")

	var got []string
	rec := ocr.RecognizerFunc(func(_ context.Context, _ []byte, langs []string) (ocr.Result, error) {
		got = langs
		return ocr.Result{Text: "text", Confidence: 1}, nil
	})

	_, _, err := FromDocument(doc).
		Language(model.Cyrillic).
		OCRLanguages("ukr", "eng").
		Recognizer(rec).
		Extract(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"ukr", "eng"}) {
		t.Errorf("expected [ukr eng], got %v", got)
	}
}

func TestExtractOCRProblems(t *testing.T) {
	tests := []struct {
		name    string
		rec     ocr.Recognizer
		image   bool
		minimum float64
		code    WarningCode
	}{
		{
			name:  "no image",
			rec:   fixed("text", 1),
			image: false,
			code:  WarnNoImage,
		},
		{
			name: "engine error",
			rec: ocr.RecognizerFunc(func(context.Context, []byte, []string) (ocr.Result, error) {
				return ocr.Result{}, errors.New("tesseract crashed")
			}),
			image: true,
			code:  WarnOCRFailed,
		},
		{
			name:  "empty result",
			rec:   fixed(" \n ", 0.8),
			image: true,
			code:  WarnOCREmpty,
		},
		{
			name:    "low confidence",
			rec:     fixed("blurry", 0.2),
			image:   true,
			minimum: 0.5,
			code:    WarnLowConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newFakeDoc(scannedPage())
			if tt.image {
				doc.images[1] = []byte("png")
			}

			res, warnings, err := FromDocument(doc).
				Recognizer(tt.rec).
				MinConfidence(tt.minimum).
				Extract(context.Background())
			if err != nil {
				t.Fatalf("extract failed: %v", err)
			}
			if len(warnings) != 1 || warnings[0].Code != tt.code {
				t.Fatalf("expected one %s warning, got %v", tt.code, warnings)
			}
			if warnings[0].Page != 1 {
				t.Errorf("expected warning on page 1, got %d", warnings[0].Page)
			}
			if res.Text != "" {
				t.Errorf("expected empty text, got %q", res.Text)
			}
		})
	}
}

func TestExtractWorkersKeepPageOrder(t *testing.T) {
	const n = 6
	pages := make([]*model.Page, n)
	for i := range pages {
		pages[i] = scannedPage()
	}
	doc := newFakeDoc(pages...)
	for i := 1; i <= n; i++ {
		doc.images[i] = []byte(fmt.Sprintf("%d", i))
	}

	var active, peak int32
	rec := ocr.RecognizerFunc(func(_ context.Context, img []byte, _ []string) (ocr.Result, error) {
		cur := atomic.AddInt32(&active, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		defer atomic.AddInt32(&active, -1)

		// Earlier pages finish last.
		var page int
		fmt.Sscanf(string(img), "%d", &page)
		time.Sleep(time.Duration(n-page) * 5 * time.Millisecond)
		return ocr.Result{Text: "page" + string(img), Confidence: 1}, nil
	})

	res, _, err := FromDocument(doc).Recognizer(rec).Workers(3).Extract(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	want := "page1\n\npage2\n\npage3\n\npage4\n\npage5\n\npage6"
	if res.Text != want {
		t.Errorf("expected %q, got %q", want, res.Text)
	}
	if p := atomic.LoadInt32(&peak); p > 3 {
		t.Errorf("expected at most 3 concurrent recognitions, got %d", p)
	}
}

func TestExtractPageRange(t *testing.T) {
	doc := newFakeDoc(
		digitalPage(column(50, "a", 25)),
		digitalPage(column(50, "b", 25)),
		digitalPage(column(50, "c", 25)),
	)

	tests := []struct {
		name      string
		start     int
		end       int
		wantErr   bool
		wantStart int
		wantEnd   int
	}{
		{"whole document", 1, 0, false, 1, 3},
		{"single page", 2, 2, false, 2, 2},
		{"end clamped", 2, 10, false, 2, 3},
		{"start zero", 0, 2, true, 0, 0},
		{"start past end", 4, 0, true, 0, 0},
		{"end before start", 3, 2, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, err := FromDocument(doc).PageRange(tt.start, tt.end).Extract(context.Background())
			if tt.wantErr {
				if !errors.Is(err, ErrPageRange) {
					t.Fatalf("expected ErrPageRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("extract failed: %v", err)
			}
			if res.StartPage != tt.wantStart || res.EndPage != tt.wantEnd {
				t.Errorf("expected range %d-%d, got %d-%d", tt.wantStart, tt.wantEnd, res.StartPage, res.EndPage)
			}
			if res.PageCount != tt.wantEnd-tt.wantStart+1 {
				t.Errorf("expected %d pages, got %d", tt.wantEnd-tt.wantStart+1, res.PageCount)
			}
			if len(res.Pages) != res.PageCount {
				t.Errorf("expected %d page reports, got %d", res.PageCount, len(res.Pages))
			}
		})
	}
}

func TestExtractPageWarnings(t *testing.T) {
	heavy := digitalPage(column(50, "", 25)) // 25 words, 40 characters
	heavy.Images = 2

	doc := newFakeDoc(heavy, digitalPage(column(50, "a", 25)), digitalPage(column(50, "b", 25)))
	doc.broken[3] = true

	res, warnings, err := FromDocument(doc).Extract(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if warnings[0].Code != WarnImageHeavy || warnings[0].Page != 1 {
		t.Errorf("expected image-heavy warning on page 1, got %+v", warnings[0])
	}
	if warnings[1].Code != WarnPageUnreadable || warnings[1].Page != 3 {
		t.Errorf("expected page-unreadable warning on page 3, got %+v", warnings[1])
	}
	if res.Text != seq("a", 25) {
		t.Errorf("expected page 2 text only, got %q", res.Text)
	}
}

func TestExtractImageHeavyWithRegions(t *testing.T) {
	heavy := digitalPage(column(50, "", 25))
	heavy.Images = 1
	store := regions.NewStore([]regions.Region{{Page: 1, X0: 40, Y0: 40, X1: 120, Y1: 700}})

	text, warnings, err := FromDocument(newFakeDoc(heavy)).RegionStore(store).Text(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if text != seq("", 25) {
		t.Errorf("expected region text, got %q", text)
	}
}

func TestExtractRegionFiles(t *testing.T) {
	dir := t.TempDir()
	doc := newFakeDoc(digitalPage(column(50, "alpha", 25), column(300, "beta", 25)))

	t.Run("missing file", func(t *testing.T) {
		res, warnings, err := FromDocument(doc).
			Regions(filepath.Join(dir, "missing.json")).
			Extract(context.Background())
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		if !HasCode(warnings, WarnNoRegionFile) {
			t.Errorf("expected %s warning, got %v", WarnNoRegionFile, warnings)
		}
		if res.Pages[0].Strategy != StrategyColumns {
			t.Errorf("expected strategy %s, got %s", StrategyColumns, res.Pages[0].Strategy)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, _, err := FromDocument(doc).Regions(path).Extract(context.Background())
		if !errors.Is(err, regions.ErrInvalidRegions) {
			t.Errorf("expected ErrInvalidRegions, got %v", err)
		}
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(dir, "doc_page1.yaml")
		data := "- page: 1\n  x0: 280\n  y0: 40\n  x1: 360\n  y1: 700\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		text, _, err := FromDocument(doc).Regions(path).Text(context.Background())
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		if text != seq("beta", 25) {
			t.Errorf("expected region text, got %q", text)
		}
	})
}

func TestExtractCancelled(t *testing.T) {
	doc := newFakeDoc(digitalPage(column(50, "a", 25)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := FromDocument(doc).Extract(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExtractCancelledDuringOCR(t *testing.T) {
	doc := newFakeDoc(scannedPage())
	doc.images[1] = []byte("png")

	ctx, cancel := context.WithCancel(context.Background())
	rec := ocr.RecognizerFunc(func(ctx context.Context, _ []byte, _ []string) (ocr.Result, error) {
		cancel()
		return ocr.Result{}, ctx.Err()
	})

	_, _, err := FromDocument(doc).Recognizer(rec).Extract(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExtractorImmutable(t *testing.T) {
	doc := newFakeDoc(
		digitalPage(column(50, "a", 25)),
		digitalPage(column(50, "b", 25)),
	)
	base := FromDocument(doc)
	_ = base.PageRange(2, 2).ColumnStrategy(layout.StrategyLinkage)

	res, _, err := base.Extract(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if res.PageCount != 2 {
		t.Errorf("expected base extractor to keep 2 pages, got %d", res.PageCount)
	}
	if base.options.columns.Strategy != layout.StrategyGreedy {
		t.Errorf("expected base strategy greedy, got %s", base.options.columns.Strategy)
	}
}

func TestColumnToleranceValidation(t *testing.T) {
	doc := newFakeDoc(digitalPage(column(50, "a", 25)))

	_, _, err := FromDocument(doc).ColumnTolerance(0).Extract(context.Background())
	if err == nil {
		t.Error("expected error for zero column tolerance")
	}

	// The first configuration error sticks.
	_, err = FromDocument(doc).ColumnTolerance(2).ColumnTolerance(0.2).PageCount()
	if err == nil {
		t.Error("expected error to survive later options")
	}
}

func TestNoSource(t *testing.T) {
	_, _, err := Open("").Extract(context.Background())
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "nonexistent.pdf")).Text(context.Background())
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestExtractPDF(t *testing.T) {
	path := pdftest.Write(t,
		pdftest.Page{Words: pdftest.Filler(50, 100, 30)},
		pdftest.Page{Image: true},
		pdftest.Page{Words: pdftest.Line(72, 100, "too", "few")},
	)

	count, err := Open(path).PageCount()
	if err != nil {
		t.Fatalf("failed to get page count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 pages, got %d", count)
	}

	var images int32
	rec := ocr.RecognizerFunc(func(_ context.Context, img []byte, _ []string) (ocr.Result, error) {
		atomic.AddInt32(&images, 1)
		if len(img) == 0 {
			return ocr.Result{}, ocr.ErrEmptyImage
		}
		return ocr.Result{Text: "scanned page", Confidence: 0.95}, nil
	})

	res, warnings, err := Open(path).Recognizer(rec).Extract(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if res.Source != "fixture.pdf" {
		t.Errorf("expected source fixture.pdf, got %q", res.Source)
	}
	for _, want := range []string{"word0", "word29", "scanned page"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("expected text to contain %q, got %q", want, res.Text)
		}
	}

	// Page 3 has text but too few words and no image.
	if !HasCode(warnings, WarnNoImage) {
		t.Errorf("expected %s warning, got %v", WarnNoImage, warnings)
	}
	if got := atomic.LoadInt32(&images); got != 1 {
		t.Errorf("expected 1 recognition, got %d", got)
	}

	kinds := []model.Kind{model.KindDigital, model.KindScanned, model.KindScanned}
	for i, k := range kinds {
		if res.Pages[i].Kind != k {
			t.Errorf("page %d: expected %s, got %s", i+1, k, res.Pages[i].Kind)
		}
	}
}

func TestExtractShortDigitalPageBesideScan(t *testing.T) {
	letters := strings.Split("a b c d e f g h i j k l m n o p q r s t u v", " ")
	path := pdftest.Write(t,
		pdftest.Page{Words: pdftest.Line(50, 100, letters...)}, // 22 words, 22 characters
		pdftest.Page{Image: true},
	)

	res, warnings, err := Open(path).Recognizer(fixed("scanned page", 0.9)).Extract(context.Background())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if HasCode(warnings, WarnImageHeavy) {
		t.Errorf("expected no %s warning, got %v", WarnImageHeavy, warnings)
	}

	first := res.Pages[0]
	if first.Kind != model.KindDigital {
		t.Errorf("expected page 1 to be %s, got %s", model.KindDigital, first.Kind)
	}
	if first.Strategy != StrategyColumns {
		t.Errorf("expected page 1 strategy %s, got %s", StrategyColumns, first.Strategy)
	}
	if res.Pages[1].Strategy != StrategyOCR {
		t.Errorf("expected page 2 strategy %s, got %s", StrategyOCR, res.Pages[1].Strategy)
	}
	for _, want := range []string{"a", "v", "scanned page"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("expected text to contain %q, got %q", want, res.Text)
		}
	}
}

func TestWarningString(t *testing.T) {
	tests := []struct {
		w    Warning
		want string
	}{
		{Warning{Page: 2, Region: 3, Message: "region produced no text"}, "page 2, region 3: region produced no text"},
		{Warning{Page: 4, Message: "page has no text"}, "page 4: page has no text"},
		{Warning{Message: "region file not found"}, "region file not found"},
	}
	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}

	got := FormatWarnings([]Warning{tests[0].w, tests[1].w})
	want := "- page 2, region 3: region produced no text\n- page 4: page has no text"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if FormatWarnings(nil) != "" {
		t.Error("expected empty string for no warnings")
	}
}

// failingMeter refuses to create instruments
type failingMeter struct{ noop.Meter }

func (failingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errors.New("instrument rejected")
}

func TestNewPageCounterFailure(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	counter := newPageCounter(failingMeter{}, log)
	if counter == nil {
		t.Fatal("expected a usable counter")
	}
	counter.Add(context.Background(), 1)

	out := buf.String()
	if !strings.Contains(out, "page counter unavailable") || !strings.Contains(out, "instrument rejected") {
		t.Errorf("expected the counter error to be logged, got %q", out)
	}
}

func TestNewPageCounter(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if counter := newPageCounter(noop.Meter{}, log); counter == nil {
		t.Fatal("expected a counter")
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing logged, got %q", buf.String())
	}
}
