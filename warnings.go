package contour

import (
	"fmt"
	"strings"
)

// WarningType categorizes non-fatal conditions encountered during
// extraction
type WarningType int

const (
	// WarningEmptyPage indicates a page with no visible text
	WarningEmptyPage WarningType = iota

	// WarningDegenerateLayout indicates a document whose font sizes give
	// no usable heading signal, so the outline is minimal
	WarningDegenerateLayout
)

// String returns a short name for the warning type
func (t WarningType) String() string {
	switch t {
	case WarningEmptyPage:
		return "empty-page"
	case WarningDegenerateLayout:
		return "degenerate-layout"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal condition. Warnings never stop
// extraction; a valid outline is still produced.
type Warning struct {
	// Type categorizes the warning
	Type WarningType

	// Message is a human-readable description
	Message string

	// Page is the 1-based page number, or 0 for document-level warnings
	Page int
}

// String formats the warning for display
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s (page %d): %s", w.Type, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Type, w.Message)
}

// FormatWarnings joins warnings into a single printable string, one per
// line
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, w.String())
	}
	return strings.Join(lines, "\n")
}
