package text

import (
	"strings"

	"github.com/tsawler/contour/model"
)

// Fragment represents a run of text extracted from a page along with the
// typographic attributes that drive heading detection. Coordinates are
// top-origin page points.
type Fragment struct {
	Text       string
	FontSize   float64
	Bold       bool
	BBox       model.BBox
	PageIndex  int // zero-based
	BlockIndex int
	LineIndex  int
}

// IsWhitespaceOnly reports whether the fragment carries no visible text.
func (f Fragment) IsWhitespaceOnly() bool {
	return strings.TrimSpace(f.Text) == ""
}

// OrderedSpan is a fragment that has been assigned a position in the page's
// reading order. Ranks form a gapless permutation 0..n-1 within each page.
type OrderedSpan struct {
	Fragment
	ReadingRank int
}

// Page groups the fragments that were decoded from a single page, in
// source order.
type Page struct {
	Index     int
	Width     float64
	Height    float64
	Fragments []Fragment
}
