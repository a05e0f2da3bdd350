//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes text with a local Tesseract installation.
type Tesseract struct {
	mode PageSegMode
}

// NewTesseract creates a Tesseract recognizer using the given page
// segmentation mode. PSM_SINGLE_BLOCK suits cropped page scans.
func NewTesseract(mode PageSegMode) (*Tesseract, error) {
	if gosseract.Version() == "" {
		return nil, fmt.Errorf("tesseract not available")
	}
	return &Tesseract{mode: mode}, nil
}

// Close is a no-op; clients are released after every call.
func (t *Tesseract) Close() error {
	return nil
}

// Recognize performs OCR on image data. Each call uses its own gosseract
// client, so a Tesseract may be shared between goroutines. Confidence is
// the mean word confidence reported in the hOCR output.
func (t *Tesseract) Recognize(ctx context.Context, image []byte, languages []string) (Result, error) {
	if len(image) == 0 {
		return Result{}, ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			return Result{}, fmt.Errorf("failed to set language: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(t.mode)); err != nil {
		return Result{}, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return Result{}, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("OCR failed: %w", err)
	}

	res := Result{Text: strings.TrimSpace(text)}

	hocr, err := client.HOCRText()
	if err != nil {
		return res, nil
	}
	if words, err := ParseHOCR(strings.NewReader(hocr)); err == nil {
		res.Confidence = MeanConfidence(words)
	}
	return res, nil
}
