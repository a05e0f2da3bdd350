package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// PreprocessOptions controls image cleanup before recognition
type PreprocessOptions struct {
	// MinWidth is the width below which images are upscaled.
	// Default: 1500 pixels
	MinWidth int

	// MaxScale caps the upscale factor.
	// Default: 3
	MaxScale float64

	// Binarize applies Otsu thresholding after the contrast stretch.
	// Default: true
	Binarize bool
}

// DefaultPreprocessOptions returns the default cleanup settings
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		MinWidth: 1500,
		MaxScale: 3,
		Binarize: true,
	}
}

// Preprocess decodes an image, converts it to grayscale, upscales small
// scans, stretches the contrast and optionally binarises it. The result
// is PNG encoded.
func Preprocess(data []byte, opts PreprocessOptions) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	gray := toGray(src)
	gray = upscale(gray, opts)
	stretch(gray)
	if opts.Binarize {
		binarize(gray, otsu(gray))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)
	return gray
}

func upscale(gray *image.Gray, opts PreprocessOptions) *image.Gray {
	w := gray.Bounds().Dx()
	if opts.MinWidth <= 0 || w == 0 || w >= opts.MinWidth {
		return gray
	}
	scale := float64(opts.MinWidth) / float64(w)
	if opts.MaxScale > 0 && scale > opts.MaxScale {
		scale = opts.MaxScale
	}
	h := gray.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Src, nil)
	return dst
}

// stretch maps the darkest pixel to 0 and the lightest to 255.
func stretch(gray *image.Gray) {
	lo, hi := uint8(255), uint8(0)
	for _, v := range gray.Pix {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi <= lo {
		return
	}
	span := float64(hi - lo)
	for i, v := range gray.Pix {
		gray.Pix[i] = uint8(float64(v-lo) * 255 / span)
	}
}

// otsu returns the threshold that maximises between-class variance.
func otsu(gray *image.Gray) uint8 {
	var hist [256]int
	for _, v := range gray.Pix {
		hist[v]++
	}
	total := len(gray.Pix)
	if total == 0 {
		return 128
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i * n)
	}

	var (
		sumB, best float64
		wB         int
		threshold  uint8
	)
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t * hist[t])
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		between := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = uint8(t)
		}
	}
	return threshold
}

func binarize(gray *image.Gray, threshold uint8) {
	for i, v := range gray.Pix {
		if v > threshold {
			gray.Pix[i] = 255
		} else {
			gray.Pix[i] = 0
		}
	}
}

// Preprocessing cleans images before passing them to Next. Images that
// cannot be decoded are passed through unchanged.
type Preprocessing struct {
	Next    Recognizer
	Options PreprocessOptions
}

// WithPreprocessing wraps a recognizer with default preprocessing.
func WithPreprocessing(next Recognizer) *Preprocessing {
	return &Preprocessing{Next: next, Options: DefaultPreprocessOptions()}
}

// Recognize implements Recognizer.
func (p *Preprocessing) Recognize(ctx context.Context, image []byte, languages []string) (Result, error) {
	if cleaned, err := Preprocess(image, p.Options); err == nil {
		image = cleaned
	}
	return p.Next.Recognize(ctx, image, languages)
}
