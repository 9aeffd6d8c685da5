package text

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizerConfig controls fragment cleanup and merging
type NormalizerConfig struct {
	// SizeTolerance is the maximum font size difference (in points) between
	// two adjacent fragments that still merge into one run
	SizeTolerance float64

	// SpaceGapFactor times the font size gives the horizontal gap above
	// which a space is inserted between merged fragments
	SpaceGapFactor float64

	// JoinGapFactor times the font size gives the maximum horizontal gap
	// between two fragments that still counts as adjacent
	JoinGapFactor float64
}

// DefaultNormalizerConfig returns sensible defaults for fragment normalization
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		SizeTolerance:  0.1,
		SpaceGapFactor: 0.3,
		JoinGapFactor:  1.0,
	}
}

// Normalizer cleans up raw decoded fragments: it drops whitespace-only
// spans, normalizes text to Unicode NFC, and merges adjacent same-line
// fragments that share typography.
type Normalizer struct {
	config NormalizerConfig
}

// NewNormalizer creates a normalizer with default configuration
func NewNormalizer() *Normalizer {
	return NewNormalizerWithConfig(DefaultNormalizerConfig())
}

// NewNormalizerWithConfig creates a normalizer with custom configuration
func NewNormalizerWithConfig(config NormalizerConfig) *Normalizer {
	return &Normalizer{config: config}
}

// Normalize returns the cleaned fragments for one page, preserving source
// order. Input is not modified.
func (n *Normalizer) Normalize(fragments []Fragment) []Fragment {
	out := make([]Fragment, 0, len(fragments))

	for _, f := range fragments {
		if f.IsWhitespaceOnly() {
			continue
		}
		f.Text = collapseSpaces(norm.NFC.String(f.Text))

		if len(out) > 0 && n.canMerge(out[len(out)-1], f) {
			out[len(out)-1] = n.merge(out[len(out)-1], f)
			continue
		}
		out = append(out, f)
	}

	return out
}

// canMerge reports whether b continues the run started by a. Both must sit
// on the same line of the same block, agree on weight and size within
// tolerance, and be horizontally adjacent.
func (n *Normalizer) canMerge(a, b Fragment) bool {
	if a.PageIndex != b.PageIndex || a.BlockIndex != b.BlockIndex || a.LineIndex != b.LineIndex {
		return false
	}
	if a.Bold != b.Bold {
		return false
	}
	if math.Abs(a.FontSize-b.FontSize) > n.config.SizeTolerance {
		return false
	}
	gap := b.BBox.X0 - a.BBox.X1
	return gap <= n.config.JoinGapFactor*a.FontSize && gap >= -0.5*a.FontSize
}

// collapseSpaces folds runs of whitespace into single spaces and trims
// the ends.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (n *Normalizer) merge(a, b Fragment) Fragment {
	sep := ""
	if gap := b.BBox.X0 - a.BBox.X1; gap > n.config.SpaceGapFactor*a.FontSize {
		sep = " "
	}

	merged := a
	merged.Text = a.Text + sep + b.Text
	merged.BBox = a.BBox.Union(b.BBox)
	if b.FontSize > merged.FontSize {
		merged.FontSize = b.FontSize
	}
	return merged
}
