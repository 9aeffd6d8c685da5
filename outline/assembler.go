// Package outline assembles classified, ordered fragments into the final
// document outline: a resolved title plus a flat list of heading entries
// ordered by occurrence.
package outline

import (
	"github.com/tsawler/contour/layout"
	"github.com/tsawler/contour/text"
)

// HeadingEntry is one outline item. Pages are 1-based in output.
type HeadingEntry struct {
	Level layout.Level `json:"level"`
	Text  string       `json:"text"`
	Page  int          `json:"page"`
}

// Outline is the final artifact produced for a document
type Outline struct {
	Title   string         `json:"title"`
	Outline []HeadingEntry `json:"outline"`
}

// Assembler walks the ordered fragment stream and emits heading entries
// for fragments whose size cluster classified as H1 through H4. Title and
// body fragments never appear in the outline.
type Assembler struct{}

// NewAssembler creates an outline assembler
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble builds the heading sequence from per-page ordered spans. Pages
// must be in ascending page order. Consecutive spans on the same page with
// the same level and adjacent reading ranks merge into one entry, joined
// with a single space, so a heading wrapped across text runs stays whole.
func (a *Assembler) Assemble(pages [][]text.OrderedSpan, clusters *layout.ClusterSet, levels *layout.LevelAssignment) []HeadingEntry {
	entries := []HeadingEntry{}

	lastPage := -1
	lastRank := -1
	lastLevel := layout.LevelBody

	for _, page := range pages {
		for _, span := range page {
			id, ok := clusters.ClusterFor(span.FontSize)
			if !ok {
				continue
			}
			level := levels.LevelFor(id)
			if !level.IsHeading() {
				continue
			}

			page1 := span.PageIndex + 1
			if len(entries) > 0 &&
				level == lastLevel &&
				page1 == lastPage &&
				span.ReadingRank == lastRank+1 {
				entries[len(entries)-1].Text += " " + span.Text
			} else {
				entries = append(entries, HeadingEntry{
					Level: level,
					Text:  span.Text,
					Page:  page1,
				})
			}

			lastPage = page1
			lastRank = span.ReadingRank
			lastLevel = level
		}
	}

	return entries
}
