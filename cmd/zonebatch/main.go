// Command zonebatch extracts every page that has a region file and writes
// one <pdf>_all_pages.txt per PDF.
//
// Usage:
//
//	zonebatch -region-dir regions -pdf-dir pdfs -output out
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsawler/zonetext"
	"github.com/tsawler/zonetext/batch"
	"github.com/tsawler/zonetext/config"
	"github.com/tsawler/zonetext/internal/setup"
)

func main() {
	regionDir := flag.String("region-dir", "", "directory of <pdf>_page<N>.json region files")
	pdfDir := flag.String("pdf-dir", "", "directory holding the PDFs (required)")
	output := flag.String("output", "", "output directory")
	language := flag.String("language", "", "language: english, cyrillic or a BCP 47 tag")
	configPath := flag.String("config", "", "path to zonetext.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "zonebatch:", err)
		os.Exit(1)
	}
	if *regionDir != "" {
		cfg.Regions.Dir = *regionDir
	}
	if *output != "" {
		cfg.Output.Dir = *output
	}
	if *language != "" {
		cfg.Extract.Language = *language
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "zonebatch: invalid configuration:", err)
		os.Exit(1)
	}

	if *pdfDir == "" {
		fmt.Fprintln(os.Stderr, "usage: zonebatch -region-dir <dir> -pdf-dir <dir> [-output dir] [-language english|cyrillic] [-config file]")
		os.Exit(2)
	}

	logger := setup.Logger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg, *pdfDir); err != nil {
		logger.Error("zonebatch: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg config.Config, pdfDir string) error {
	rec, closeRec, err := setup.Recognizer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("OCR setup: %w", err)
	}
	defer closeRec()

	// Validate once; every page reuses the same settings.
	if _, err := setup.Apply(zonetext.Open(""), cfg); err != nil {
		return err
	}

	p := &batch.Processor{
		RegionDir: cfg.Regions.Dir,
		PDFDir:    pdfDir,
		OutputDir: cfg.Output.Dir,
		Logger:    logger,
		Configure: func(e *zonetext.Extractor) (*zonetext.Extractor, error) {
			e, err := setup.Apply(e, cfg)
			if err != nil {
				return nil, err
			}
			return e.Recognizer(rec).Logger(logger), nil
		},
	}

	reports, err := p.Run(ctx)
	if err != nil {
		return err
	}

	for _, r := range reports {
		if r.Skipped {
			fmt.Printf("%s: skipped\n", r.PDF)
			continue
		}
		fmt.Printf("%s: %d page(s) -> %s", r.PDF, len(r.Pages), r.Output)
		if len(r.Failed) > 0 {
			fmt.Printf(" (failed pages %v)", r.Failed)
		}
		if len(r.Warnings) > 0 {
			fmt.Printf(" (%d warning(s))", len(r.Warnings))
		}
		fmt.Println()
	}
	return nil
}
