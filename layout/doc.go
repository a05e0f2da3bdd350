// Package layout reassembles word tokens into columns, lines and
// paragraphs.
//
// Column detection clusters words by their left edge. A word joins the
// first column whose mean x0 lies within pageWidth × ToleranceRatio of
// its own x0; otherwise it starts a new column:
//
//	d := layout.NewColumnDetector()
//	for _, col := range d.Detect(words, page.Width) {
//		paras := layout.Paragraphs(layout.Lines(col.Words))
//		...
//	}
//
// The default [StrategyGreedy] is sensitive to the order in which words
// are offered when two columns are closer than the tolerance.
// [StrategyLinkage] instead splits the sorted x0 values wherever two
// neighbours are farther apart than the tolerance, which gives the same
// answer for any input order.
package layout
