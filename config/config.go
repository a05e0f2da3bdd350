// Package config loads zonetext settings from defaults, a TOML file and
// ZONETEXT_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tsawler/zonetext/layout"
	"github.com/tsawler/zonetext/model"
	"github.com/tsawler/zonetext/normalize"
)

// DefaultPath is read when Load is given an empty path.
const DefaultPath = "zonetext.toml"

// OCR engine names
const (
	EngineNone      = "none"
	EngineTesseract = "tesseract"
	EngineDocAI     = "docai"
	EngineHybrid    = "hybrid"
)

type Config struct {
	Extract ExtractConfig `toml:"extract"`
	Regions RegionsConfig `toml:"regions"`
	OCR     OCRConfig     `toml:"ocr"`
	DocAI   DocAIConfig   `toml:"docai"`
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
}

type ExtractConfig struct {
	Language       string  `toml:"language"`
	MinWords       int     `toml:"min_words"`
	MinChars       int     `toml:"min_chars"`
	ColumnRatio    float64 `toml:"column_ratio"`
	ColumnStrategy string  `toml:"column_strategy"`
	Normalization  string  `toml:"normalization"`
	Workers        int     `toml:"workers"`
	MinConfidence  float64 `toml:"min_confidence"`
}

type RegionsConfig struct {
	Dir string `toml:"dir"`
}

type OCRConfig struct {
	Engine          string   `toml:"engine"`
	Languages       []string `toml:"languages"` // Empty means derived from extract.language
	HybridThreshold float64  `toml:"hybrid_threshold"`
	Preprocess      bool     `toml:"preprocess"`
	PSM             int      `toml:"psm"`
}

type DocAIConfig struct {
	ProjectID       string `toml:"project_id"`
	Location        string `toml:"location"`
	ProcessorID     string `toml:"processor_id"`
	CredentialsFile string `toml:"credentials_file"`
}

type OutputConfig struct {
	Dir      string `toml:"dir"`
	Database string `toml:"database"` // SQLite archive path, empty to disable
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Extract: ExtractConfig{
			Language:       string(model.Cyrillic),
			MinWords:       20,
			MinChars:       50,
			ColumnRatio:    0.1,
			ColumnStrategy: layout.StrategyGreedy.String(),
			Normalization:  normalize.ModeFull.String(),
			Workers:        1,
		},
		Regions: RegionsConfig{Dir: "regions"},
		OCR:     OCRConfig{Engine: EngineTesseract, HybridThreshold: 0.6, Preprocess: true, PSM: 6},
		DocAI:   DocAIConfig{Location: "us"},
		Output:  OutputConfig{Dir: "output"},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads config: defaults -> TOML file -> env vars (env wins).
// A missing file is not an error; a file that cannot be decoded is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays ZONETEXT_* variables
func applyEnv(cfg *Config) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"ZONETEXT_LANGUAGE", &cfg.Extract.Language},
		{"ZONETEXT_COLUMN_STRATEGY", &cfg.Extract.ColumnStrategy},
		{"ZONETEXT_NORMALIZATION", &cfg.Extract.Normalization},
		{"ZONETEXT_REGION_DIR", &cfg.Regions.Dir},
		{"ZONETEXT_OCR_ENGINE", &cfg.OCR.Engine},
		{"ZONETEXT_DOCAI_PROJECT_ID", &cfg.DocAI.ProjectID},
		{"ZONETEXT_DOCAI_LOCATION", &cfg.DocAI.Location},
		{"ZONETEXT_DOCAI_PROCESSOR_ID", &cfg.DocAI.ProcessorID},
		{"ZONETEXT_DOCAI_CREDENTIALS", &cfg.DocAI.CredentialsFile},
		{"ZONETEXT_OUTPUT_DIR", &cfg.Output.Dir},
		{"ZONETEXT_DATABASE", &cfg.Output.Database},
		{"ZONETEXT_LOG_LEVEL", &cfg.Log.Level},
		{"ZONETEXT_LOG_FORMAT", &cfg.Log.Format},
	}
	for _, s := range strs {
		if v := os.Getenv(s.key); v != "" {
			*s.dst = v
		}
	}

	if v := os.Getenv("ZONETEXT_OCR_LANGUAGES"); v != "" {
		cfg.OCR.Languages = strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '+' })
	}
	if v := os.Getenv("ZONETEXT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ZONETEXT_WORKERS: %w", err)
		}
		cfg.Extract.Workers = n
	}
	if v := os.Getenv("ZONETEXT_MIN_CONFIDENCE"); v != "" {
		c, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ZONETEXT_MIN_CONFIDENCE: %w", err)
		}
		cfg.Extract.MinConfidence = c
	}
	return nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if _, err := model.ParseLanguage(c.Extract.Language); err != nil {
		errs = append(errs, fmt.Errorf("extract.language: %w", err))
	}
	if _, err := layout.ParseStrategy(c.Extract.ColumnStrategy); err != nil {
		errs = append(errs, fmt.Errorf("extract.column_strategy: %w", err))
	}
	if _, err := normalize.ParseMode(c.Extract.Normalization); err != nil {
		errs = append(errs, fmt.Errorf("extract.normalization: %w", err))
	}
	if c.Extract.MinWords < 1 {
		bad("extract.min_words must be at least 1, got %d", c.Extract.MinWords)
	}
	if c.Extract.MinChars < 1 {
		bad("extract.min_chars must be at least 1, got %d", c.Extract.MinChars)
	}
	if c.Extract.ColumnRatio <= 0 || c.Extract.ColumnRatio > 1 {
		bad("extract.column_ratio must be in (0, 1], got %v", c.Extract.ColumnRatio)
	}
	if c.Extract.Workers < 1 {
		bad("extract.workers must be at least 1, got %d", c.Extract.Workers)
	}
	if c.Extract.MinConfidence < 0 || c.Extract.MinConfidence > 1 {
		bad("extract.min_confidence must be in [0, 1], got %v", c.Extract.MinConfidence)
	}

	switch c.OCR.Engine {
	case EngineNone, EngineTesseract:
	case EngineDocAI, EngineHybrid:
		if c.DocAI.ProjectID == "" || c.DocAI.ProcessorID == "" {
			bad("ocr.engine %q needs docai.project_id and docai.processor_id", c.OCR.Engine)
		}
	default:
		bad("ocr.engine must be one of none, tesseract, docai, hybrid; got %q", c.OCR.Engine)
	}
	if c.OCR.HybridThreshold < 0 || c.OCR.HybridThreshold > 1 {
		bad("ocr.hybrid_threshold must be in [0, 1], got %v", c.OCR.HybridThreshold)
	}
	if c.OCR.PSM < 0 || c.OCR.PSM > 13 {
		bad("ocr.psm must be in [0, 13], got %d", c.OCR.PSM)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		bad("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		bad("log.format must be text or json, got %q", c.Log.Format)
	}

	return errors.Join(errs...)
}
