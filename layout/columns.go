package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/zonetext/model"
)

// Strategy selects the column clustering algorithm
type Strategy int

const (
	// StrategyGreedy compares each word with the running mean x0 of the
	// columns built so far, in creation order.
	StrategyGreedy Strategy = iota
	// StrategyLinkage splits the sorted x0 sequence at gaps wider than the
	// tolerance.
	StrategyLinkage
)

// String returns the strategy name used in configuration
func (s Strategy) String() string {
	switch s {
	case StrategyGreedy:
		return "greedy"
	case StrategyLinkage:
		return "linkage"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a configuration name into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "greedy":
		return StrategyGreedy, nil
	case "linkage":
		return StrategyLinkage, nil
	}
	return StrategyGreedy, fmt.Errorf("unknown column strategy %q", s)
}

// Column represents a detected text column on a page
type Column struct {
	// Index of the column (0-based, left to right)
	Index int

	// MeanX0 is the mean left edge of the column's words
	MeanX0 float64

	// Words in the order they joined the column
	Words []model.Word
}

// BBox returns the union of the column's word bounds.
func (c *Column) BBox() model.Rect {
	if len(c.Words) == 0 {
		return model.Rect{}
	}
	r := c.Words[0].Bounds()
	for _, w := range c.Words[1:] {
		r.X0 = min(r.X0, w.X0)
		r.Top = min(r.Top, w.Top)
		r.X1 = max(r.X1, w.X1)
		r.Bottom = max(r.Bottom, w.Bottom)
	}
	return r
}

// ColumnConfig holds configuration for column detection
type ColumnConfig struct {
	// ToleranceRatio is the fraction of the page width within which a
	// word's x0 must lie of a column's mean x0 to join it.
	// Default: 0.1
	ToleranceRatio float64

	// Strategy selects the clustering algorithm.
	// Default: StrategyGreedy
	Strategy Strategy
}

// DefaultColumnConfig returns the default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		ToleranceRatio: 0.1,
		Strategy:       StrategyGreedy,
	}
}

// ColumnDetector clusters words into columns
type ColumnDetector struct {
	config ColumnConfig
}

// NewColumnDetector creates a new column detector with default configuration
func NewColumnDetector() *ColumnDetector {
	return &ColumnDetector{
		config: DefaultColumnConfig(),
	}
}

// NewColumnDetectorWithConfig creates a column detector with custom configuration
func NewColumnDetectorWithConfig(config ColumnConfig) *ColumnDetector {
	if config.ToleranceRatio <= 0 {
		config.ToleranceRatio = DefaultColumnConfig().ToleranceRatio
	}
	return &ColumnDetector{
		config: config,
	}
}

// Config returns the detector's configuration
func (d *ColumnDetector) Config() ColumnConfig {
	return d.config
}

// Detect clusters words into columns ordered left to right by mean x0.
func (d *ColumnDetector) Detect(words []model.Word, pageWidth float64) []Column {
	if len(words) == 0 {
		return nil
	}

	tolerance := pageWidth * d.config.ToleranceRatio

	sorted := make([]model.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X0 < sorted[j].X0
	})

	var groups []*group
	if d.config.Strategy == StrategyLinkage {
		groups = linkage(sorted, tolerance)
	} else {
		groups = greedy(sorted, tolerance)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].mean() < groups[j].mean()
	})

	columns := make([]Column, len(groups))
	for i, g := range groups {
		columns[i] = Column{Index: i, MeanX0: g.mean(), Words: g.words}
	}
	return columns
}

// group accumulates words with a running x0 sum
type group struct {
	words []model.Word
	sum   float64
}

func (g *group) add(w model.Word) {
	g.words = append(g.words, w)
	g.sum += w.X0
}

func (g *group) mean() float64 {
	return g.sum / float64(len(g.words))
}

func greedy(words []model.Word, tolerance float64) []*group {
	var groups []*group
	for _, w := range words {
		placed := false
		for _, g := range groups {
			if abs(w.X0-g.mean()) < tolerance {
				g.add(w)
				placed = true
				break
			}
		}
		if !placed {
			g := &group{}
			g.add(w)
			groups = append(groups, g)
		}
	}
	return groups
}

// linkage expects words sorted by x0.
func linkage(words []model.Word, tolerance float64) []*group {
	cur := &group{}
	cur.add(words[0])
	groups := []*group{cur}
	for i := 1; i < len(words); i++ {
		if words[i].X0-words[i-1].X0 >= tolerance {
			cur = &group{}
			groups = append(groups, cur)
		}
		cur.add(words[i])
	}
	return groups
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
