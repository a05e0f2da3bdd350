package text

import "github.com/tsawler/zonetext/model"

type dedupeKey struct {
	x0, top float64
	text    string
}

// Dedupe removes words that repeat the text of an earlier word at the same
// position rounded to one decimal place. The first occurrence wins and
// order is preserved.
func Dedupe(words []model.Word) []model.Word {
	seen := make(map[dedupeKey]struct{}, len(words))
	out := make([]model.Word, 0, len(words))
	for _, w := range words {
		k := dedupeKey{model.Round1(w.X0), model.Round1(w.Top), w.Text}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Crop returns the words lying entirely inside r.
func Crop(words []model.Word, r model.Rect) []model.Word {
	var out []model.Word
	for _, w := range words {
		if r.Contains(w.Bounds()) {
			out = append(out, w)
		}
	}
	return out
}
