// Package text assembles positioned glyphs into word tokens.
//
// A PDF text layer is a stream of glyphs, each with a position and an
// advance width. The [Assembler] walks the glyphs in content order and
// starts a new word at whitespace, at a vertical jump larger than the
// y tolerance, or at a horizontal gap larger than the x tolerance:
//
//	a := text.NewAssembler()
//	words := a.Words(glyphs)
//	words = text.Dedupe(words)
//
// [Dedupe] drops tokens that repeat at the same rounded position (PDF
// producers often draw bold text twice) and [Crop] restricts a word list
// to a rectangle.
package text
