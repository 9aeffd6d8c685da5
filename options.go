package contour

import (
	"github.com/tsawler/contour/layout"
	"github.com/tsawler/contour/text"
)

// ExtractOptions holds configuration for outline extraction.
type ExtractOptions struct {
	// Number of concurrent page workers; 1 means sequential
	workers int

	// Stage configuration
	normalizer   text.NormalizerConfig
	readingOrder layout.ReadingOrderConfig
	clustering   layout.SizeClusterConfig
	classifier   layout.ClassifierConfig
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		workers:      1,
		normalizer:   text.DefaultNormalizerConfig(),
		readingOrder: layout.DefaultReadingOrderConfig(),
		clustering:   layout.DefaultSizeClusterConfig(),
		classifier:   layout.DefaultClassifierConfig(),
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}

// Workers sets the number of concurrent page workers. Page results are
// re-merged into page order before clustering, so the outline is identical
// regardless of worker count.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		n = 1
	}
	newExt.options.workers = n
	return newExt
}

// WithNormalizerConfig overrides the fragment normalizer configuration
func (e *Extractor) WithNormalizerConfig(config text.NormalizerConfig) *Extractor {
	newExt := e.clone()
	newExt.options.normalizer = config
	return newExt
}

// WithReadingOrderConfig overrides the reading order configuration
func (e *Extractor) WithReadingOrderConfig(config layout.ReadingOrderConfig) *Extractor {
	newExt := e.clone()
	newExt.options.readingOrder = config
	return newExt
}

// WithClusterConfig overrides the font size clustering configuration
func (e *Extractor) WithClusterConfig(config layout.SizeClusterConfig) *Extractor {
	newExt := e.clone()
	newExt.options.clustering = config
	return newExt
}

// WithClassifierConfig overrides the heading level classifier configuration
func (e *Extractor) WithClassifierConfig(config layout.ClassifierConfig) *Extractor {
	newExt := e.clone()
	newExt.options.classifier = config
	return newExt
}

// WithConfig applies a full configuration, typically loaded from a YAML
// file via LoadConfig
func (e *Extractor) WithConfig(config Config) *Extractor {
	newExt := e.clone()
	newExt.options = config.options()
	return newExt
}
