package zonetext

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal extraction problem
type WarningCode string

const (
	WarnNoRegionFile   WarningCode = "no-region-file"  // Region file missing; pages run unconstrained
	WarnEmptyRegion    WarningCode = "empty-region"    // Region with zero width or height skipped
	WarnRegionNoText   WarningCode = "region-no-text"  // Region produced no text
	WarnEmptyPage      WarningCode = "empty-page"      // Page produced no text
	WarnImageHeavy     WarningCode = "image-heavy"     // Page skipped: images with little text
	WarnPageUnreadable WarningCode = "page-unreadable" // Text layer could not be decoded
	WarnNoImage        WarningCode = "no-image"        // Scanned page without an extractable image
	WarnNoRecognizer   WarningCode = "no-recognizer"   // Scanned page but OCR is not configured
	WarnOCRFailed      WarningCode = "ocr-failed"      // Recognizer returned an error
	WarnOCREmpty       WarningCode = "ocr-empty"       // Recognizer returned no text
	WarnLowConfidence  WarningCode = "low-confidence"  // Recognizer confidence below the minimum
)

// Warning is a non-fatal issue tied to a page and optionally a region.
type Warning struct {
	Page    int // 1-indexed page, 0 for document-level warnings
	Region  int // 1-indexed position in the page's region set, 0 for none
	Code    WarningCode
	Message string
}

// String formats the warning with its location
func (w Warning) String() string {
	switch {
	case w.Page > 0 && w.Region > 0:
		return fmt.Sprintf("page %d, region %d: %s", w.Page, w.Region, w.Message)
	case w.Page > 0:
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	default:
		return w.Message
	}
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = "- " + w.String()
	}
	return strings.Join(lines, "\n")
}

// HasCode reports whether any warning carries code.
func HasCode(warnings []Warning, code WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
