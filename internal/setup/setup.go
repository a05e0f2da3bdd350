// Package setup turns a config.Config into the loggers, recognizers and
// extractor options shared by the command-line tools.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tsawler/zonetext"
	"github.com/tsawler/zonetext/config"
	"github.com/tsawler/zonetext/layout"
	"github.com/tsawler/zonetext/model"
	"github.com/tsawler/zonetext/normalize"
	"github.com/tsawler/zonetext/ocr"
)

// Logger builds a text or JSON logger writing to w at the configured level.
func Logger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Recognizer builds the configured OCR engine. It returns a nil
// recognizer for engine "none", and also for "tesseract" when the binary
// was built without OCR support, in which case a warning is logged and
// scanned pages are skipped. The returned close function is never nil.
func Recognizer(ctx context.Context, cfg config.Config, log *slog.Logger) (ocr.Recognizer, func() error, error) {
	noop := func() error { return nil }

	switch cfg.OCR.Engine {
	case config.EngineNone, "":
		return nil, noop, nil

	case config.EngineTesseract:
		tess, err := tesseract(cfg.OCR)
		if errors.Is(err, ocr.ErrOCRNotEnabled) {
			log.Warn("tesseract not available; scanned pages will be skipped", "error", err)
			return nil, noop, nil
		}
		if err != nil {
			return nil, noop, err
		}
		return tess, noop, nil

	case config.EngineDocAI:
		docai, err := ocr.NewDocumentAI(ctx, docAIConfig(cfg.DocAI))
		if err != nil {
			return nil, noop, err
		}
		return docai, docai.Close, nil

	case config.EngineHybrid:
		docai, err := ocr.NewDocumentAI(ctx, docAIConfig(cfg.DocAI))
		if err != nil {
			return nil, noop, err
		}
		tess, err := tesseract(cfg.OCR)
		if errors.Is(err, ocr.ErrOCRNotEnabled) {
			log.Warn("tesseract not available; using Document AI alone", "error", err)
			return docai, docai.Close, nil
		}
		if err != nil {
			docai.Close()
			return nil, noop, err
		}
		h := ocr.NewHybrid(tess, docai)
		h.Threshold = cfg.OCR.HybridThreshold
		return h, docai.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown OCR engine %q", cfg.OCR.Engine)
	}
}

func tesseract(cfg config.OCRConfig) (ocr.Recognizer, error) {
	tess, err := ocr.NewTesseract(ocr.PageSegMode(cfg.PSM))
	if err != nil {
		return nil, err
	}
	if cfg.Preprocess {
		return ocr.WithPreprocessing(tess), nil
	}
	return tess, nil
}

func docAIConfig(cfg config.DocAIConfig) ocr.DocumentAIConfig {
	return ocr.DocumentAIConfig{
		ProjectID:       cfg.ProjectID,
		Location:        cfg.Location,
		ProcessorID:     cfg.ProcessorID,
		CredentialsFile: cfg.CredentialsFile,
	}
}

// Apply configures ext from the [extract] and [ocr] sections.
func Apply(ext *zonetext.Extractor, cfg config.Config) (*zonetext.Extractor, error) {
	lang, err := model.ParseLanguage(cfg.Extract.Language)
	if err != nil {
		return nil, err
	}
	strategy, err := layout.ParseStrategy(cfg.Extract.ColumnStrategy)
	if err != nil {
		return nil, err
	}
	mode, err := normalize.ParseMode(cfg.Extract.Normalization)
	if err != nil {
		return nil, err
	}

	ext = ext.
		Language(lang).
		ColumnStrategy(strategy).
		ColumnTolerance(cfg.Extract.ColumnRatio).
		Normalization(mode).
		MinWords(cfg.Extract.MinWords).
		MinChars(cfg.Extract.MinChars).
		Workers(cfg.Extract.Workers).
		MinConfidence(cfg.Extract.MinConfidence)
	if len(cfg.OCR.Languages) > 0 {
		ext = ext.OCRLanguages(cfg.OCR.Languages...)
	}
	return ext, nil
}
