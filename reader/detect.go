package reader

import (
	"bytes"
	"errors"
	"io"
)

// ErrNotPDF is returned when a file carries no PDF header.
var ErrNotPDF = errors.New("not a PDF file")

// headerWindow is how far into the file the "%PDF-" header may start.
// Some producers write a few junk bytes before it.
const headerWindow = 1024

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether r starts with a PDF header within the first
// kilobyte.
func IsPDF(r io.ReaderAt) (bool, error) {
	head := make([]byte, headerWindow)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return false, err
	}
	return bytes.Contains(head[:n], pdfMagic), nil
}
