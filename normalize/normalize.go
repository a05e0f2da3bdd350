// Package normalize cleans extracted text.
//
// [ModeFull] applies compatibility normalization, repairs words split by
// a hyphen at a line break, strips bullets, control characters and dot
// leaders, and reflows lines into paragraphs separated by one blank line.
// [ModePassThrough] only applies canonical composition and trims the
// ends, leaving the extracted text otherwise untouched.
//
// Both modes are idempotent: normalizing already normalized text returns
// it unchanged.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/zonetext/model"
)

// Mode selects how much cleaning is applied
type Mode int

const (
	// ModeFull runs the complete cleaning pipeline
	ModeFull Mode = iota
	// ModePassThrough applies NFC and trims outer whitespace only
	ModePassThrough
)

// String returns the configuration name of the mode
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModePassThrough:
		return "none"
	default:
		return "unknown"
	}
}

// ParseMode converts "full", "none" or "passthrough" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return ModeFull, nil
	case "none", "passthrough", "pass-through":
		return ModePassThrough, nil
	}
	return ModeFull, fmt.Errorf("unknown normalization mode %q", s)
}

var (
	dotLeader = regexp.MustCompile(`\.{3,}`)

	latinRepair    = hyphenRepair(`a-z`)
	cyrillicRepair = hyphenRepair(`а-яёa-z`)
)

// hyphenRepair matches a word, a hyphen at the end of a line and a
// continuation starting with a lower-case letter of the given class. Only
// one newline may sit between the parts, so blank lines stay intact.
func hyphenRepair(class string) *regexp.Regexp {
	return regexp.MustCompile(`([\p{L}\p{N}_]+)-[ \t]*\n[ \t]*([` + class + `][\p{L}\p{N}_]+)`)
}

func isHyphen(r rune) bool {
	return r == '\u00ad' || (r >= '\u2010' && r <= '\u2015') || r == '\u2212'
}

func isBullet(r rune) bool {
	switch r {
	case '*', '\u2022', '\uf0b7', '\u25aa', '\u25cf', '\u25e6', '\u2023', '\u2043', '\u25a0':
		return true
	}
	return false
}

// isInvisible reports control and zero-width format runes that carry no
// text. Tabs survive until whitespace is collapsed.
func isInvisible(r rune) bool {
	if r == '\t' {
		return false
	}
	if unicode.IsControl(r) {
		return true
	}
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u200e', '\u200f', '\u2060', '\ufeff':
		return true
	}
	return false
}

// Normalizer cleans text according to a mode and language
type Normalizer struct {
	mode   Mode
	repair *regexp.Regexp
}

// New creates a normalizer. The language selects the alphabet accepted
// as a continuation when repairing hyphenated words.
func New(mode Mode, lang model.Language) *Normalizer {
	n := &Normalizer{mode: mode, repair: latinRepair}
	if lang == model.Cyrillic {
		n.repair = cyrillicRepair
	}
	return n
}

// Mode returns the normalizer's mode
func (n *Normalizer) Mode() Mode {
	return n.mode
}

// Normalize cleans s according to the normalizer's mode.
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	if n.mode == ModePassThrough {
		return strings.TrimSpace(norm.NFC.String(s))
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s, _, _ = transform.String(transform.Chain(norm.NFKC, runes.Map(func(r rune) rune {
		if isHyphen(r) {
			return '-'
		}
		return r
	})), s)

	// A match consumes the start of the next line, so a word split over
	// three or more lines needs another pass. Each pass shortens s.
	for {
		joined := n.repair.ReplaceAllString(s, "$1$2")
		if joined == s {
			break
		}
		s = joined
	}

	var (
		paragraphs []string
		buf        []string
	)
	for _, line := range strings.Split(s, "\n") {
		line = cleanLine(line)
		if line == "" {
			if len(buf) > 0 {
				paragraphs = append(paragraphs, strings.Join(buf, " "))
				buf = buf[:0]
			}
			continue
		}
		buf = append(buf, line)
	}
	if len(buf) > 0 {
		paragraphs = append(paragraphs, strings.Join(buf, " "))
	}

	return norm.NFKC.String(strings.Join(paragraphs, "\n\n"))
}

var stripRunes = runes.Remove(runes.Predicate(func(r rune) bool {
	return isBullet(r) || isInvisible(r)
}))

// cleanLine strips bullets, invisible runes and dot leaders and collapses
// whitespace.
func cleanLine(line string) string {
	line, _, _ = transform.String(stripRunes, line)
	line = dotLeader.ReplaceAllString(line, "")
	return strings.Join(strings.Fields(line), " ")
}

// Normalize applies full cleaning for the given language.
func Normalize(s string, lang model.Language) string {
	return New(ModeFull, lang).Normalize(s)
}
