// Package store persists extraction results as text files and in an
// optional SQLite archive.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputName returns the file name for a single-range extraction:
// <pdfbase>_page<start>_to_<end>.txt
func OutputName(pdfPath string, start, end int) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return fmt.Sprintf("%s_page%d_to_%d.txt", base, start, end)
}

// BatchName returns the file name for a whole-document batch extraction:
// <pdfbase>_all_pages.txt
func BatchName(pdfPath string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return base + "_all_pages.txt"
}

// WriteText writes the trimmed text followed by a blank line, creating
// parent directories as needed.
func WriteText(path, text string) error {
	return write(path, strings.TrimSpace(text)+"\n\n")
}

// WriteBatchText writes the trimmed text of a batch run followed by a
// single newline.
func WriteBatchText(path, text string) error {
	return write(path, strings.TrimSpace(text)+"\n")
}

func write(path, data string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
