package outline

import (
	"testing"

	"github.com/tsawler/contour/text"
)

func TestResolveTitleFromCluster(t *testing.T) {
	firstPage := []text.OrderedSpan{
		span("Annual", 20.0, 0, 0),
		span("Report", 20.0, 0, 1),
	}
	pages := [][]text.OrderedSpan{append(firstPage, bodySpans(30, 0, 2)...)}

	clusters, levels := buildClassified(pages)
	if !levels.HasTitleCluster() {
		t.Fatal("expected a Title cluster in this fixture")
	}

	title := NewTitleResolver().Resolve(pages[0], clusters, levels, "Metadata Title")
	if title != "Annual Report" {
		t.Errorf("expected %q, got %q", "Annual Report", title)
	}
}

func TestResolveTitleFallsBackToMetadata(t *testing.T) {
	pages := [][]text.OrderedSpan{bodySpans(20, 0, 0)}
	clusters, levels := buildClassified(pages)

	title := NewTitleResolver().Resolve(pages[0], clusters, levels, "  Embedded Title  ")
	if title != "Embedded Title" {
		t.Errorf("expected metadata fallback, got %q", title)
	}
}

func TestResolveTitleFallsBackToFirstFragment(t *testing.T) {
	first := span("Opening line", 10.0, 0, 0)
	pages := [][]text.OrderedSpan{append([]text.OrderedSpan{first}, bodySpans(20, 0, 1)...)}
	clusters, levels := buildClassified(pages)

	title := NewTitleResolver().Resolve(pages[0], clusters, levels, "")
	if title != "Opening line" {
		t.Errorf("expected first fragment fallback, got %q", title)
	}
}

func TestResolveTitleEmptyDocument(t *testing.T) {
	clusters, levels := buildClassified(nil)

	title := NewTitleResolver().Resolve(nil, clusters, levels, "")
	if title != "" {
		t.Errorf("expected empty title, got %q", title)
	}
}
