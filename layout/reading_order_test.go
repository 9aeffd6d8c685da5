package layout

import (
	"testing"

	"github.com/tsawler/contour/text"
)

func TestResolveSingleColumnTopToBottom(t *testing.T) {
	r := NewReadingOrderResolver()

	fragments := []text.Fragment{
		makeFragment("third", 12, 72, 300, 540, 312),
		makeFragment("first", 12, 72, 100, 540, 112),
		makeFragment("second", 12, 72, 200, 540, 212),
	}

	result := r.Resolve(fragments)
	if len(result.Spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(result.Spans))
	}

	want := []string{"first", "second", "third"}
	for i, span := range result.Spans {
		if span.Text != want[i] {
			t.Errorf("rank %d: expected %q, got %q", i, want[i], span.Text)
		}
		if span.ReadingRank != i {
			t.Errorf("expected rank %d, got %d", i, span.ReadingRank)
		}
	}
}

func TestResolveColumnsBeforeInterleaving(t *testing.T) {
	r := NewReadingOrderResolver()

	// Two columns spanning the same vertical range. All of the left column
	// must be read before any of the right column.
	fragments := []text.Fragment{
		makeFragment("right top", 10, 60, 0, 110, 10),
		makeFragment("left bottom", 10, 0, 490, 50, 500),
		makeFragment("left top", 10, 0, 0, 50, 10),
		makeFragment("right bottom", 10, 60, 490, 110, 500),
	}

	result := r.Resolve(fragments)
	want := []string{"left top", "left bottom", "right top", "right bottom"}
	for i, span := range result.Spans {
		if span.Text != want[i] {
			t.Errorf("rank %d: expected %q, got %q", i, want[i], span.Text)
		}
	}
	if result.ColumnCount != 2 {
		t.Errorf("expected 2 columns, got %d", result.ColumnCount)
	}
}

func TestResolveTiesBrokenLeftToRight(t *testing.T) {
	r := NewReadingOrderResolver()

	fragments := []text.Fragment{
		makeFragment("b", 10, 300, 100, 560, 110),
		makeFragment("a", 10, 72, 100, 540, 110),
	}

	result := r.Resolve(fragments)
	if result.Spans[0].Text != "a" || result.Spans[1].Text != "b" {
		t.Errorf("expected left fragment first, got %q then %q",
			result.Spans[0].Text, result.Spans[1].Text)
	}
}

func TestResolveRanksArePermutation(t *testing.T) {
	r := NewReadingOrderResolver()

	fragments := []text.Fragment{
		makeFragment("a", 10, 0, 0, 50, 10),
		makeFragment("b", 10, 60, 0, 110, 10),
		makeFragment("c", 10, 0, 20, 50, 30),
		{Text: "broken", FontSize: 10},
		makeFragment("d", 10, 60, 20, 110, 30),
	}

	result := r.Resolve(fragments)
	if len(result.Spans) != len(fragments) {
		t.Fatalf("expected %d spans, got %d", len(fragments), len(result.Spans))
	}

	seen := make(map[int]bool)
	for _, span := range result.Spans {
		if span.ReadingRank < 0 || span.ReadingRank >= len(fragments) {
			t.Errorf("rank %d out of range", span.ReadingRank)
		}
		if seen[span.ReadingRank] {
			t.Errorf("duplicate rank %d", span.ReadingRank)
		}
		seen[span.ReadingRank] = true
	}
}

func TestResolveEmptyPage(t *testing.T) {
	r := NewReadingOrderResolver()

	result := r.Resolve(nil)
	if len(result.Spans) != 0 {
		t.Errorf("expected no spans, got %d", len(result.Spans))
	}
}
