//go:build !ocr

package ocr

import "context"

// Tesseract is a stub recognizer used when OCR support is not compiled in.
type Tesseract struct{}

// NewTesseract returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func NewTesseract(mode PageSegMode) (*Tesseract, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub recognizer.
// It is safe to call on a nil recognizer.
func (t *Tesseract) Close() error {
	return nil
}

// Recognize returns an error indicating OCR support is not enabled.
func (t *Tesseract) Recognize(ctx context.Context, image []byte, languages []string) (Result, error) {
	return Result{}, ErrOCRNotEnabled
}
