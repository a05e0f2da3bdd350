package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is the language hint of an extraction run. It drives the
// alphabet used for hyphen repair and the OCR models requested.
type Language string

const (
	// English selects the Latin alphabet and the "eng" OCR model.
	English Language = "english"
	// Cyrillic selects the Cyrillic and Latin alphabets and the
	// "rus" and "eng" OCR models.
	Cyrillic Language = "cyrillic"
)

var cyrl = language.MustParseScript("Cyrl")

// ParseLanguage accepts "english", "cyrillic" (and the aliases "latin",
// "en", "russian") or any BCP 47 tag. Tags are mapped by their likely
// script: Cyrillic-script languages such as "ru", "uk" or "sr-Cyrl" map to
// Cyrillic, everything else to English. An empty string means English.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "english", "latin":
		return English, nil
	case "cyrillic", "russian":
		return Cyrillic, nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("unknown language %q: %w", s, err)
	}
	script, _ := tag.Script()
	if script == cyrl {
		return Cyrillic, nil
	}
	return English, nil
}

// OCRLanguages returns the Tesseract model names for the language.
func (l Language) OCRLanguages() []string {
	if l == Cyrillic {
		return []string{"rus", "eng"}
	}
	return []string{"eng"}
}

// String returns the language name
func (l Language) String() string {
	return string(l)
}
