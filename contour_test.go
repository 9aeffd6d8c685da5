package contour

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/tsawler/contour/layout"
	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/text"
)

// fakeSource feeds hand-built pages into the pipeline
type fakeSource struct {
	pages     [][]text.Fragment
	metaTitle string
	pageErr   error
	closed    bool
}

func (s *fakeSource) PageCount() int { return len(s.pages) }

func (s *fakeSource) Page(index int) (text.Page, error) {
	if s.pageErr != nil {
		return text.Page{}, s.pageErr
	}
	return text.Page{Index: index, Width: 612, Height: 792, Fragments: s.pages[index]}, nil
}

func (s *fakeSource) MetadataTitle() string { return s.metaTitle }

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

func frag(s string, size float64, page int, y float64) text.Fragment {
	return text.Fragment{
		Text:      s,
		FontSize:  size,
		PageIndex: page,
		BBox:      model.NewBBox(72, y, 300, y+size),
	}
}

func bodyPage(page int, lines int) []text.Fragment {
	out := make([]text.Fragment, 0, lines)
	for i := 0; i < lines; i++ {
		out = append(out, frag(fmt.Sprintf("body line %d", i), 12.0, page, float64(100+14*i)))
	}
	return out
}

func TestOutlineTitleOnlyDocument(t *testing.T) {
	// Two font sizes: a lone 18pt bold fragment on page 1 over 12pt body.
	// The big fragment becomes the title and the outline stays empty.
	title := frag("Annual Report", 18.0, 0, 72)
	title.Bold = true
	src := &fakeSource{pages: [][]text.Fragment{
		append([]text.Fragment{title}, bodyPage(0, 40)...),
	}}

	o, warnings, err := FromSource(src).Outline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Title != "Annual Report" {
		t.Errorf("expected title %q, got %q", "Annual Report", o.Title)
	}
	if len(o.Outline) != 0 {
		t.Errorf("expected empty outline, got %+v", o.Outline)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestOutlineNonExclusiveSizeBecomesHeading(t *testing.T) {
	// 16pt appears on pages 1 and 2, so it cannot be the title cluster.
	// It ranks H1 and the smaller rare size on page 3 ranks H2.
	pages := [][]text.Fragment{
		append([]text.Fragment{frag("Overview", 16.0, 0, 72)}, bodyPage(0, 30)...),
		append([]text.Fragment{frag("Details", 16.0, 1, 72)}, bodyPage(1, 30)...),
		append([]text.Fragment{frag("Appendix", 14.0, 2, 72)}, bodyPage(2, 30)...),
	}
	src := &fakeSource{pages: pages, metaTitle: "Fallback Title"}

	o, _, err := FromSource(src).Outline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Title != "Fallback Title" {
		t.Errorf("expected metadata title, got %q", o.Title)
	}

	want := []struct {
		level layout.Level
		text  string
		page  int
	}{
		{layout.LevelH1, "Overview", 1},
		{layout.LevelH1, "Details", 2},
		{layout.LevelH2, "Appendix", 3},
	}
	if len(o.Outline) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(o.Outline), o.Outline)
	}
	for i, w := range want {
		e := o.Outline[i]
		if e.Level != w.level || e.Text != w.text || e.Page != w.page {
			t.Errorf("entry %d: expected %v %q page %d, got %v %q page %d",
				i, w.level, w.text, w.page, e.Level, e.Text, e.Page)
		}
	}
}

func TestOutlineTwoColumnReadingOrder(t *testing.T) {
	// Column A occupies x 0-50, column B x 60-110, both spanning the page.
	// All of column A must be read before any of column B.
	colFrag := func(s string, x0, y float64) text.Fragment {
		return text.Fragment{
			Text:      s,
			FontSize:  8.0,
			PageIndex: 0,
			BBox:      model.NewBBox(x0, y, x0+50, y+8),
		}
	}
	src := &fakeSource{pages: [][]text.Fragment{{
		colFrag("B top", 60, 0),
		colFrag("A top", 0, 0),
		colFrag("B bottom", 60, 490),
		colFrag("A bottom", 0, 490),
	}}}

	spans, _, err := FromSource(src).Fragments()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"A top", "A bottom", "B top", "B bottom"}
	if len(spans) != len(want) {
		t.Fatalf("expected %d spans, got %d", len(want), len(spans))
	}
	for i, w := range want {
		if spans[i].Text != w {
			t.Errorf("rank %d: expected %q, got %q", i, w, spans[i].Text)
		}
	}
}

func TestOutlineSingleFontSizeDocument(t *testing.T) {
	src := &fakeSource{pages: [][]text.Fragment{bodyPage(0, 20)}}

	o, warnings, err := FromSource(src).Outline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.Outline) != 0 {
		t.Errorf("expected empty outline, got %+v", o.Outline)
	}
	// Title falls back to the first visible fragment.
	if o.Title != "body line 0" {
		t.Errorf("expected first-line title, got %q", o.Title)
	}

	found := false
	for _, w := range warnings {
		if w.Type == WarningDegenerateLayout {
			found = true
		}
	}
	if !found {
		t.Error("expected a degenerate layout warning")
	}
}

func TestOutlineEmptySourceNoPages(t *testing.T) {
	src := &fakeSource{}

	o, _, err := FromSource(src).Outline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Title != "" {
		t.Errorf("expected empty title, got %q", o.Title)
	}
	if len(o.Outline) != 0 {
		t.Errorf("expected empty outline, got %+v", o.Outline)
	}

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"title":"","outline":[]}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestOutlineEmptyPageWarning(t *testing.T) {
	src := &fakeSource{pages: [][]text.Fragment{
		bodyPage(0, 10),
		nil,
	}}

	_, warnings, err := FromSource(src).Outline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, w := range warnings {
		if w.Type == WarningEmptyPage && w.Page == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected empty-page warning for page 2, got %v", warnings)
	}
}

func TestOutlineDeterministic(t *testing.T) {
	pages := [][]text.Fragment{
		append([]text.Fragment{frag("Title Here", 20.0, 0, 40), frag("Intro", 15.0, 0, 72)}, bodyPage(0, 30)...),
		append([]text.Fragment{frag("Second", 15.0, 1, 72)}, bodyPage(1, 30)...),
	}

	run := func(workers int) string {
		src := &fakeSource{pages: pages}
		o, _, err := FromSource(src).Workers(workers).Outline()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := json.Marshal(o)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		return string(data)
	}

	first := run(1)
	for i := 0; i < 5; i++ {
		if got := run(4); got != first {
			t.Fatalf("non-deterministic output:\n%s\nvs\n%s", first, got)
		}
	}
}

func TestOutlinePageErrorPropagates(t *testing.T) {
	src := &fakeSource{
		pages:   [][]text.Fragment{bodyPage(0, 5)},
		pageErr: fmt.Errorf("decode failure"),
	}

	_, _, err := FromSource(src).Outline()
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestOutlineRejectsPageIndexBeyondCount(t *testing.T) {
	bad := frag("stray", 12.0, 7, 100)
	src := &fakeSource{pages: [][]text.Fragment{{bad}}}

	_, _, err := FromSource(src).Outline()
	if err == nil {
		t.Fatal("expected error for out-of-range page index")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open("testdata/missing.pdf").Outline()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestChainingDoesNotMutateOriginal(t *testing.T) {
	base := Open("whatever.pdf")
	tuned := base.Workers(8)

	if base.options.workers != 1 {
		t.Errorf("base extractor mutated: workers = %d", base.options.workers)
	}
	if tuned.options.workers != 8 {
		t.Errorf("expected 8 workers, got %d", tuned.options.workers)
	}
}
