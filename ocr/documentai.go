package ocr

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// DocumentAIConfig identifies a Document AI OCR processor
type DocumentAIConfig struct {
	ProjectID       string
	Location        string // e.g. "us" or "eu"
	ProcessorID     string
	CredentialsFile string // Service account key; empty uses application default credentials
}

// Name returns the processor resource name.
func (c DocumentAIConfig) Name() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, c.ProcessorID)
}

// DocumentAI recognizes text with a Google Document AI processor. It is
// safe for concurrent use.
type DocumentAI struct {
	client  *documentai.DocumentProcessorClient
	name    string
	process func(ctx context.Context, req *documentaipb.ProcessRequest) (*documentaipb.ProcessResponse, error)
}

// NewDocumentAI connects to the regional Document AI endpoint.
func NewDocumentAI(ctx context.Context, cfg DocumentAIConfig) (*DocumentAI, error) {
	if cfg.ProjectID == "" || cfg.Location == "" || cfg.ProcessorID == "" {
		return nil, fmt.Errorf("document AI requires project, location and processor")
	}

	opts := []option.ClientOption{
		option.WithEndpoint(fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.Location)),
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}

	return &DocumentAI{
		client: client,
		name:   cfg.Name(),
		process: func(ctx context.Context, req *documentaipb.ProcessRequest) (*documentaipb.ProcessResponse, error) {
			return client.ProcessDocument(ctx, req)
		},
	}, nil
}

// Close releases the client connection.
func (d *DocumentAI) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}

// Recognize implements Recognizer. Confidence is the mean page layout
// confidence of the returned document.
func (d *DocumentAI) Recognize(ctx context.Context, image []byte, languages []string) (Result, error) {
	if len(image) == 0 {
		return Result{}, ErrEmptyImage
	}

	req := &documentaipb.ProcessRequest{
		Name: d.name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  image,
				MimeType: mimeType(image),
			},
		},
		SkipHumanReview: true,
	}
	if hints := languageHints(languages); len(hints) > 0 {
		req.ProcessOptions = &documentaipb.ProcessOptions{
			OcrConfig: &documentaipb.OcrConfig{
				Hints: &documentaipb.OcrConfig_Hints{LanguageHints: hints},
			},
		}
	}

	resp, err := d.process(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to process document: %w", err)
	}
	doc := resp.GetDocument()
	if doc == nil {
		return Result{}, nil
	}

	var (
		sum float64
		n   int
	)
	for _, p := range doc.GetPages() {
		if l := p.GetLayout(); l != nil {
			sum += float64(l.GetConfidence())
			n++
		}
	}

	res := Result{Text: strings.TrimSpace(doc.GetText())}
	if n > 0 {
		res.Confidence = sum / float64(n)
	}
	return res, nil
}

// mimeType sniffs the image format, falling back to PNG, the format
// produced by preprocessing.
func mimeType(image []byte) string {
	switch ct := http.DetectContentType(image); ct {
	case "image/png", "image/jpeg", "image/gif", "image/bmp", "image/webp", "image/tiff":
		return ct
	}
	if len(image) > 4 && (string(image[:4]) == "II*\x00" || string(image[:4]) == "MM\x00*") {
		return "image/tiff"
	}
	return "image/png"
}

// tesseractToBCP47 maps Tesseract model names to language hints.
var tesseractToBCP47 = map[string]string{
	"eng": "en",
	"rus": "ru",
	"ukr": "uk",
	"bel": "be",
	"bul": "bg",
	"srp": "sr",
	"deu": "de",
	"fra": "fr",
}

func languageHints(languages []string) []string {
	var hints []string
	for _, l := range languages {
		if h, ok := tesseractToBCP47[l]; ok {
			hints = append(hints, h)
		} else if l != "" {
			hints = append(hints, l)
		}
	}
	return hints
}
