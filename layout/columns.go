// Package layout provides page layout analysis: column detection, reading
// order resolution, font size clustering, and heading level classification.
package layout

import (
	"sort"

	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/text"
)

// Column represents a detected text column on a page
type Column struct {
	// Bounding box of the column
	BBox model.BBox

	// Fragments contained in this column (in input order)
	Fragments []text.Fragment

	// Index of the column (0-based, left to right)
	Index int
}

// ColumnLayout represents the detected column structure of a page
type ColumnLayout struct {
	// Detected columns (sorted left to right)
	Columns []Column

	// Configuration used for detection
	Config ColumnConfig
}

// ColumnConfig holds configuration for column detection
type ColumnConfig struct {
	// OverlapThreshold is the minimum horizontal overlap (in points) between
	// a fragment's x-range and a column's x-range for the fragment to join
	// that column
	// Default: 1 point
	OverlapThreshold float64
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		OverlapThreshold: 1.0,
	}
}

// ColumnDetector groups fragments into columns by clustering their
// horizontal extents
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
	return &ColumnDetector{
		config: config,
	}
}

// Detect partitions fragments into columns. A single interval-clustering
// pass walks the fragments sorted by left edge and opens a new column
// whenever the next fragment's x-range does not overlap the current
// column's x-range by more than the configured threshold. Zero-area boxes
// are treated as sitting at the origin and land in the leftmost column.
func (d *ColumnDetector) Detect(fragments []text.Fragment) *ColumnLayout {
	if len(fragments) == 0 {
		return &ColumnLayout{Config: d.config}
	}

	var sorted, degenerate []text.Fragment
	for _, f := range fragments {
		if f.BBox.IsZero() {
			degenerate = append(degenerate, f)
			continue
		}
		sorted = append(sorted, f)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.X0 < sorted[j].BBox.X0
	})

	var columns []Column
	for _, f := range sorted {
		if len(columns) > 0 {
			current := &columns[len(columns)-1]
			if current.BBox.HorizontalOverlap(f.BBox) > d.config.OverlapThreshold {
				current.Fragments = append(current.Fragments, f)
				current.BBox = current.BBox.Union(f.BBox)
				continue
			}
		}
		columns = append(columns, Column{
			BBox:      f.BBox,
			Fragments: []text.Fragment{f},
			Index:     len(columns),
		})
	}

	if len(degenerate) > 0 {
		if len(columns) == 0 {
			columns = []Column{{Fragments: degenerate}}
		} else {
			columns[0].Fragments = append(columns[0].Fragments, degenerate...)
		}
	}

	return &ColumnLayout{
		Columns: columns,
		Config:  d.config,
	}
}

// ColumnCount returns the number of detected columns.
// Safe to call on a nil layout.
func (l *ColumnLayout) ColumnCount() int {
	if l == nil {
		return 0
	}
	return len(l.Columns)
}

