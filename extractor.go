package contour

import (
	"fmt"
	"sync"

	"github.com/tsawler/contour/layout"
	"github.com/tsawler/contour/outline"
	"github.com/tsawler/contour/reader"
	"github.com/tsawler/contour/text"
)

// Extractor provides a fluent interface for reconstructing document
// outlines. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	source   Source

	// Lifecycle
	ownsSource   bool // true if we opened the source and should close it
	sourceOpened bool // true if source is ready

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		source:       e.source,
		ownsSource:   e.ownsSource,
		sourceOpened: e.sourceOpened,
		options:      e.options.clone(),
		err:          e.err,
	}
}

// ensureSource opens the document if not already open.
func (e *Extractor) ensureSource() error {
	if e.sourceOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	doc, err := reader.Open(e.filename)
	if err != nil {
		return err
	}
	e.source = doc
	e.ownsSource = true
	e.sourceOpened = true
	return nil
}

// Close releases the underlying document if this Extractor opened it.
// Terminal operations close implicitly; explicit Close is only needed
// when a chain is abandoned before a terminal operation.
func (e *Extractor) Close() error {
	if !e.ownsSource || !e.sourceOpened {
		return nil
	}
	e.sourceOpened = false
	if closer, ok := e.source.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// PageCount returns the number of pages in the document
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	defer e.Close()
	return e.source.PageCount(), nil
}

// Outline runs the full pipeline and returns the document outline.
// Warnings report degenerate layout conditions that were handled via
// fallbacks; they never accompany a nil outline.
func (e *Extractor) Outline() (*outline.Outline, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	pages, err := e.orderedPages()
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	for i, spans := range pages {
		if len(spans) == 0 {
			warnings = append(warnings, Warning{
				Type:    WarningEmptyPage,
				Message: "no visible text",
				Page:    i + 1,
			})
		}
	}

	var all []text.Fragment
	for _, spans := range pages {
		for _, span := range spans {
			all = append(all, span.Fragment)
		}
	}

	clusters := layout.NewSizeClustererWithConfig(e.options.clustering).Cluster(all)
	levels := layout.NewLevelClassifierWithConfig(e.options.classifier).Classify(clusters)

	if len(all) > 0 && clusters.Len() == 1 {
		warnings = append(warnings, Warning{
			Type:    WarningDegenerateLayout,
			Message: "single font size, headings cannot be inferred from size",
		})
	}

	var firstPage []text.OrderedSpan
	if len(pages) > 0 {
		firstPage = pages[0]
	}
	title := outline.NewTitleResolver().Resolve(firstPage, clusters, levels, e.source.MetadataTitle())
	entries := outline.NewAssembler().Assemble(pages, clusters, levels)

	return &outline.Outline{Title: title, Outline: entries}, warnings, nil
}

// Title runs the pipeline and returns only the resolved document title
func (e *Extractor) Title() (string, []Warning, error) {
	o, warnings, err := e.Outline()
	if err != nil {
		return "", warnings, err
	}
	return o.Title, warnings, nil
}

// Fragments returns every fragment of the document, normalized and in
// reading order (page-major, reading rank minor)
func (e *Extractor) Fragments() ([]text.OrderedSpan, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	pages, err := e.orderedPages()
	if err != nil {
		return nil, nil, err
	}

	var spans []text.OrderedSpan
	for _, page := range pages {
		spans = append(spans, page...)
	}
	return spans, nil, nil
}

// orderedPages normalizes and orders every page, optionally fanning pages
// out across workers. Results always come back in ascending page order
// regardless of worker completion order, so downstream clustering sees a
// deterministic stream.
func (e *Extractor) orderedPages() ([][]text.OrderedSpan, error) {
	count := e.source.PageCount()
	normalizer := text.NewNormalizerWithConfig(e.options.normalizer)
	resolver := layout.NewReadingOrderResolverWithConfig(e.options.readingOrder)

	process := func(index int) ([]text.OrderedSpan, error) {
		page, err := e.source.Page(index)
		if err != nil {
			return nil, err
		}
		for _, f := range page.Fragments {
			if f.PageIndex < 0 || f.PageIndex >= count {
				return nil, fmt.Errorf("fragment on page %d references page index %d beyond page count %d",
					index+1, f.PageIndex, count)
			}
		}
		cleaned := normalizer.Normalize(page.Fragments)
		return resolver.Resolve(cleaned).Spans, nil
	}

	pages := make([][]text.OrderedSpan, count)

	workers := e.options.workers
	if workers > count {
		workers = count
	}
	if workers <= 1 {
		for i := 0; i < count; i++ {
			spans, err := process(i)
			if err != nil {
				return nil, err
			}
			pages[i] = spans
		}
		return pages, nil
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				spans, err := process(i)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					pages[i] = spans
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < count; i++ {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return pages, nil
}
