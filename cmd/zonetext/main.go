// Command zonetext extracts the text of a page range from a PDF.
//
// Usage:
//
//	zonetext -pdf report.pdf -start 3 -end 8            # regions from -region-dir
//	zonetext -pdf report.pdf                           # prompt for pages
//	zonetext -pdf scan.pdf -start 1 -end 0 -ocr hybrid # whole document, hybrid OCR
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tsawler/zonetext"
	"github.com/tsawler/zonetext/config"
	"github.com/tsawler/zonetext/internal/setup"
	"github.com/tsawler/zonetext/regions"
	"github.com/tsawler/zonetext/store"
)

type options struct {
	pdf        string
	start      int
	end        int
	regionFile string
	output     string
}

func main() {
	pdfPath := flag.String("pdf", "", "path to the PDF file (required)")
	start := flag.Int("start", 0, "first page, 1-indexed (prompted for if -start or -end is omitted)")
	end := flag.Int("end", 0, "last page, inclusive; 0 means the last page of the document")
	language := flag.String("language", "", "language: english, cyrillic or a BCP 47 tag")
	regionFile := flag.String("regions", "", "region file (JSON or YAML); default looks in -region-dir")
	regionDir := flag.String("region-dir", "", "directory of <pdf>_page<N>.json region files")
	output := flag.String("output", "", "output path; default <output dir>/<pdf>_page<start>_to_<end>.txt")
	configPath := flag.String("config", "", "path to zonetext.toml")
	engine := flag.String("ocr", "", "OCR engine: none, tesseract, docai, hybrid")
	workers := flag.Int("workers", 0, "pages recognized concurrently")
	dbPath := flag.String("db", "", "SQLite archive to record the result in")
	normalization := flag.String("normalize", "", "normalization: full or none")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "zonetext:", err)
		os.Exit(1)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *language != "" {
		cfg.Extract.Language = *language
	}
	if *regionDir != "" {
		cfg.Regions.Dir = *regionDir
	}
	if *engine != "" {
		cfg.OCR.Engine = *engine
	}
	if *workers > 0 {
		cfg.Extract.Workers = *workers
	}
	if *dbPath != "" {
		cfg.Output.Database = *dbPath
	}
	if *normalization != "" {
		cfg.Extract.Normalization = *normalization
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "zonetext: invalid configuration:", err)
		os.Exit(1)
	}

	logger := setup.Logger(cfg.Log, os.Stderr)

	if *pdfPath == "" {
		fmt.Fprintln(os.Stderr, "usage: zonetext -pdf <file> [-start N] [-end M] [-language english|cyrillic] [-regions file] [-output path]")
		os.Exit(2)
	}

	opts := options{pdf: *pdfPath, start: *start, end: *end, regionFile: *regionFile, output: *output}
	if !set["start"] || !set["end"] {
		opts.start, opts.end, err = promptPages(os.Stdin, os.Stdout)
		if err != nil {
			logger.Error("zonetext: reading page range", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg, opts); err != nil {
		logger.Error("zonetext: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg config.Config, opts options) error {
	pdfPath, err := filepath.Abs(opts.pdf)
	if err != nil {
		return err
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("PDF not found: %w", err)
	}

	fmt.Printf("\nPDF: %s\n", pdfPath)
	fmt.Printf("Pages: %d-%d\n", opts.start, opts.end)
	fmt.Printf("Language: %s\n", cfg.Extract.Language)

	regionFile := opts.regionFile
	if regionFile == "" {
		if f, ok := regions.FindFile(cfg.Regions.Dir, pdfPath, opts.start); ok {
			regionFile = f
		}
	}
	if regionFile != "" {
		fmt.Printf("Using region file: %s\n", regionFile)
	} else {
		fmt.Println("No region file found. Proceeding without it.")
	}

	rec, closeRec, err := setup.Recognizer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("OCR setup: %w", err)
	}
	defer closeRec()

	ext, err := setup.Apply(zonetext.Open(pdfPath).PageRange(opts.start, opts.end), cfg)
	if err != nil {
		return err
	}
	ext = ext.Recognizer(rec).Logger(logger)
	if regionFile != "" {
		ext = ext.Regions(regionFile)
	}

	res, warnings, err := ext.Extract(ctx)
	if err != nil {
		return err
	}

	outPath := opts.output
	if outPath == "" {
		outPath = filepath.Join(cfg.Output.Dir, store.OutputName(pdfPath, res.StartPage, res.EndPage))
	}
	if err := store.WriteText(outPath, res.Text); err != nil {
		return err
	}

	if cfg.Output.Database != "" {
		archive, err := store.OpenArchive(cfg.Output.Database)
		if err != nil {
			return err
		}
		defer archive.Close()

		id, err := archive.Save(ctx, res, warnings)
		if err != nil {
			return err
		}
		logger.Info("result archived", "id", id.String(), "db", cfg.Output.Database)
	}

	if len(warnings) > 0 {
		fmt.Printf("\n%d warning(s):\n%s\n", len(warnings), zonetext.FormatWarnings(warnings))
	}

	abs, err := filepath.Abs(outPath)
	if err != nil {
		abs = outPath
	}
	fmt.Printf("\nText saved to: %s (%d pages, %s)\n", abs, res.PageCount, res.Elapsed.Round(time.Millisecond))
	return nil
}
