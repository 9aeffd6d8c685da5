// Package contour reconstructs a logical document outline (a title plus
// H1-H4 headings with page numbers) from a PDF's visual layout, without
// relying on embedded bookmarks.
//
// Basic usage:
//
//	o, warnings, err := contour.Open("document.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", contour.FormatWarnings(warnings))
//	}
//
// The pipeline normalizes each page's text fragments, resolves their
// reading order, clusters the document's font sizes, maps clusters to
// heading levels, and assembles the outline. Every stage is also
// available individually in the layout and outline packages.
package contour

import (
	"github.com/tsawler/contour/text"
)

// Source supplies decoded pages to the pipeline. reader.Document is the
// standard implementation; tests and alternative decoders can plug in
// their own.
type Source interface {
	// PageCount returns the number of pages in the document
	PageCount() int

	// Page returns the raw fragments of the page at the zero-based index
	Page(index int) (text.Page, error)

	// MetadataTitle returns the document's embedded title, or ""
	MetadataTitle() string
}

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The file is opened lazily by the first terminal operation and closed
// when that operation finishes.
//
// Example:
//
//	o, warnings, err := contour.Open("report.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor over an already-open source. The caller
// keeps ownership of the source and is responsible for closing it.
func FromSource(src Source) *Extractor {
	return &Extractor{
		source:       src,
		sourceOpened: true,
		options:      defaultOptions(),
	}
}
