// Package model defines the data types shared by every stage of extraction.
//
// # Coordinates
//
// All positions are in PDF points with a top-left origin: X grows to the
// right and Top/Bottom grow downward. This matches the convention used by
// region files, so a [Rect] read from a region definition can be compared
// directly with a [Word]'s bounds.
//
// # Pages and Words
//
// A [Page] is materialised lazily by a document reader and carries the
// page's deduplicated [Word] tokens and the number of embedded images.
// A page is either [KindDigital] (usable text layer) or [KindScanned]
// (needs optical recognition).
//
// # Languages
//
// A [Language] selects the alphabet used when repairing hyphenated words
// and the model names handed to OCR engines:
//
//	lang, err := model.ParseLanguage("ru") // model.Cyrillic
//	lang.OCRLanguages()                     // []string{"rus", "eng"}
package model
