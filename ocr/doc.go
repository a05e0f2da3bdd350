// Package ocr provides optical character recognition for scanned pages.
//
// Every engine implements [Recognizer]: given an encoded image (PNG, JPEG,
// TIFF, BMP or GIF) and a list of Tesseract language codes it returns the
// recognized text and a confidence in [0, 1].
//
// Engines:
//
//   - [Tesseract] wraps the Tesseract engine via gosseract. It is only
//     compiled with the "ocr" build tag; without it [NewTesseract] returns
//     [ErrOCRNotEnabled]. Tesseract must be installed on the system:
//
//     brew install tesseract
//     apt-get install tesseract-ocr tesseract-ocr-rus
//
//   - [DocumentAI] sends the image to a Google Document AI OCR processor.
//
//   - [Hybrid] runs two engines and prefers the second when it is
//     confident enough.
//
// [Preprocessing] wraps any engine and cleans the image first
// (grayscale, upscale, contrast stretch and Otsu binarisation).
package ocr
