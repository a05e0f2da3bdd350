// Package classify decides whether a page's text layer is usable.
package classify

import "github.com/tsawler/zonetext/model"

// Config holds the classification thresholds
type Config struct {
	// MinWords is the fewest words a page needs to count as digital.
	// Default: 20
	MinWords int

	// MinChars is the fewest characters a page with images needs to be
	// kept in unconstrained extraction.
	// Default: 50
	MinChars int
}

// DefaultConfig returns the default thresholds
func DefaultConfig() Config {
	return Config{
		MinWords: 20,
		MinChars: 50,
	}
}

// Classifier labels pages as digital or scanned
type Classifier struct {
	config Config
}

// New creates a classifier. Non-positive thresholds take their defaults.
func New(config Config) *Classifier {
	def := DefaultConfig()
	if config.MinWords <= 0 {
		config.MinWords = def.MinWords
	}
	if config.MinChars <= 0 {
		config.MinChars = def.MinChars
	}
	return &Classifier{config: config}
}

// Config returns the classifier's thresholds
func (c *Classifier) Config() Config {
	return c.config
}

// Classify returns KindScanned when the page has fewer than MinWords words.
func (c *Classifier) Classify(p *model.Page) model.Kind {
	if len(p.Words) < c.config.MinWords {
		return model.KindScanned
	}
	return model.KindDigital
}

// ImageHeavy reports whether the page carries at least one image and fewer
// than MinChars characters of text.
func (c *Classifier) ImageHeavy(p *model.Page) bool {
	return p.HasImages() && p.CharCount() < c.config.MinChars
}
