// Package reader provides page-level access to PDF files.
//
// Use [Open] to open a PDF file for reading:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// Pages are materialised on demand with [Reader.Page], which returns the
// page size, its deduplicated word tokens in top-left coordinates and the
// number of image XObjects it references. The text layer is decoded with
// github.com/ledongthuc/pdf.
//
// [Reader.PageImage] returns the largest embedded image of a page, the
// scan of an image-only page, as an encoded image suitable for OCR. Image
// extraction uses pdfcpu, which is only loaded the first time an image is
// requested.
//
// A Reader is not safe for concurrent use.
package reader
