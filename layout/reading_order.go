package layout

import (
	"sort"

	"github.com/tsawler/contour/text"
)

// ReadingOrderConfig holds configuration for reading order resolution
type ReadingOrderConfig struct {
	// ColumnConfig is the configuration for column detection
	ColumnConfig ColumnConfig
}

// DefaultReadingOrderConfig returns sensible default configuration
func DefaultReadingOrderConfig() ReadingOrderConfig {
	return ReadingOrderConfig{
		ColumnConfig: DefaultColumnConfig(),
	}
}

// ReadingOrderResult holds the ordered fragments for one page
type ReadingOrderResult struct {
	// Spans in reading order, with ranks 0..n-1
	Spans []text.OrderedSpan

	// ColumnCount is the number of columns detected
	ColumnCount int
}

// ReadingOrderResolver produces a total reading order over the fragments
// of a page: columns left to right, fragments top to bottom within each
// column.
type ReadingOrderResolver struct {
	config  ReadingOrderConfig
	columns *ColumnDetector
}

// NewReadingOrderResolver creates a resolver with default configuration
func NewReadingOrderResolver() *ReadingOrderResolver {
	return NewReadingOrderResolverWithConfig(DefaultReadingOrderConfig())
}

// NewReadingOrderResolverWithConfig creates a resolver with custom configuration
func NewReadingOrderResolverWithConfig(config ReadingOrderConfig) *ReadingOrderResolver {
	return &ReadingOrderResolver{
		config:  config,
		columns: NewColumnDetectorWithConfig(config.ColumnConfig),
	}
}

// Resolve orders the fragments of a page and assigns each a reading rank.
// Ranks always form a gapless permutation of 0..n-1. Single-column pages
// degrade to a plain top-to-bottom, left-to-right sort.
func (r *ReadingOrderResolver) Resolve(fragments []text.Fragment) *ReadingOrderResult {
	layout := r.columns.Detect(fragments)

	spans := make([]text.OrderedSpan, 0, len(fragments))
	for _, col := range layout.Columns {
		ordered := make([]text.Fragment, len(col.Fragments))
		copy(ordered, col.Fragments)
		sortColumn(ordered)
		for _, f := range ordered {
			spans = append(spans, text.OrderedSpan{
				Fragment:    f,
				ReadingRank: len(spans),
			})
		}
	}

	return &ReadingOrderResult{
		Spans:       spans,
		ColumnCount: layout.ColumnCount(),
	}
}

// sortColumn orders fragments top to bottom, ties left to right. Zero-area
// boxes read as position (0,0) and lose any remaining tie.
func sortColumn(fragments []text.Fragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		yi, xi, zi := sortKey(fragments[i])
		yj, xj, zj := sortKey(fragments[j])
		if yi != yj {
			return yi < yj
		}
		if xi != xj {
			return xi < xj
		}
		return !zi && zj
	})
}

func sortKey(f text.Fragment) (y, x float64, degenerate bool) {
	if f.BBox.IsZero() {
		return 0, 0, true
	}
	return f.BBox.Y0, f.BBox.X0, false
}
