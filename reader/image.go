package reader

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// imageSource lazily parses the file with pdfcpu for image extraction.
type imageSource struct {
	file *os.File
	ctx  *pdfmodel.Context
	err  error
}

func (s *imageSource) context() (*pdfmodel.Context, error) {
	if s.ctx != nil || s.err != nil {
		return s.ctx, s.err
	}

	disableConfigDir.Do(api.DisableConfigDir)

	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		s.err = fmt.Errorf("pdfcpu read: %w", err)
		return nil, s.err
	}
	ctx, err := api.ReadValidateAndOptimize(s.file, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		s.err = fmt.Errorf("pdfcpu read: %w", err)
		return nil, s.err
	}
	s.ctx = ctx
	return ctx, nil
}

// PageImage returns the encoded bytes of the largest image on a page
// (1-indexed). Flate images come back as PNG, DCT images as JPEG and
// CCITT images as TIFF.
func (r *Reader) PageImage(n int) ([]byte, error) {
	if n < 1 || n > r.PageCount() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", n, r.PageCount())
	}

	ctx, err := r.images.context()
	if err != nil {
		return nil, err
	}

	images, err := pdfcpu.ExtractPageImages(ctx, n, false)
	if err != nil {
		return nil, fmt.Errorf("page %d: extracting images: %w", n, err)
	}

	var (
		best pdfmodel.Image
		area = -1
	)
	for _, img := range images {
		if a := img.Width * img.Height; a > area {
			best, area = img, a
		}
	}
	if area < 0 || best.Reader == nil {
		return nil, fmt.Errorf("page %d: %w", n, ErrNoImage)
	}

	data, err := io.ReadAll(best)
	if err != nil {
		return nil, fmt.Errorf("page %d: reading image: %w", n, err)
	}
	return data, nil
}
