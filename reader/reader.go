// Package reader decodes PDF files into the fragment model consumed by
// the analysis pipeline. It validates the file with pdfcpu, then walks
// each page's positioned text with the ledongthuc/pdf content reader and
// groups glyphs into fragments with font size, weight, and bounding box.
package reader

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/text"
)

// ErrNoPages indicates an otherwise valid document with an empty page tree
var ErrNoPages = errors.New("document has no pages")

// ErrPageOutOfRange indicates a page request beyond the document's page count
var ErrPageOutOfRange = errors.New("page index out of range")

const (
	// defaultPageWidth and defaultPageHeight are US letter, used when a
	// page carries no MediaBox
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0

	// glyphs further apart than this fraction of the font size start a
	// new fragment
	runGapFactor = 1.0

	// baselines closer than this fraction of the font size share a line
	lineBandFactor = 0.4

	// lines further apart than this fraction of the font size start a
	// new block
	blockGapFactor = 1.8
)

// Document is an open PDF ready for page decoding
type Document struct {
	file      *os.File
	reader    *pdf.Reader
	pageCount int
	metaTitle string
}

// Open validates and opens the PDF at path. The caller must Close the
// returned document.
func Open(path string) (*Document, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	count := reader.NumPage()
	if count <= 0 {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNoPages)
	}
	if pdfcpuCount, err := api.PageCountFile(path); err == nil && pdfcpuCount != count {
		file.Close()
		return nil, fmt.Errorf("%s: inconsistent page count (%d vs %d)", path, count, pdfcpuCount)
	}

	return &Document{
		file:      file,
		reader:    reader,
		pageCount: count,
		metaTitle: metadataTitle(reader),
	}, nil
}

// Close releases the underlying file
func (d *Document) Close() error {
	return d.file.Close()
}

// PageCount returns the number of pages in the document
func (d *Document) PageCount() int {
	return d.pageCount
}

// MetadataTitle returns the title from the document information
// dictionary, or "" when absent
func (d *Document) MetadataTitle() string {
	return d.metaTitle
}

// Page decodes the page at the given zero-based index into raw fragments.
// Fragments come back in content stream order; ordering them is the
// pipeline's job.
func (d *Document) Page(index int) (text.Page, error) {
	if index < 0 || index >= d.pageCount {
		return text.Page{}, fmt.Errorf("page %d of %d: %w", index, d.pageCount, ErrPageOutOfRange)
	}

	page := d.reader.Page(index + 1)
	result := text.Page{Index: index, Width: defaultPageWidth, Height: defaultPageHeight}
	if page.V.IsNull() {
		return result, nil
	}
	result.Width, result.Height = pageSize(page)

	glyphs, err := pageText(page)
	if err != nil {
		return text.Page{}, fmt.Errorf("page %d: %w", index+1, err)
	}

	runs := groupGlyphs(glyphs, result.Height)
	assignLines(runs)
	result.Fragments = toFragments(runs, index)
	return result, nil
}

// pageText reads the positioned text of a page. The content reader
// panics on some malformed streams, so the panic is converted into an
// error here.
func pageText(page pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()
	return page.Content().Text, nil
}

func pageSize(page pdf.Page) (w, h float64) {
	w, h = defaultPageWidth, defaultPageHeight
	box := page.V.Key("MediaBox")
	if box.Kind() == pdf.Array && box.Len() >= 4 {
		if bw := box.Index(2).Float64() - box.Index(0).Float64(); bw > 0 {
			w = bw
		}
		if bh := box.Index(3).Float64() - box.Index(1).Float64(); bh > 0 {
			h = bh
		}
	}
	return w, h
}

func metadataTitle(reader *pdf.Reader) (title string) {
	// Malformed info dictionaries are not worth failing the document for.
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	return strings.TrimSpace(info.Key("Title").Text())
}

// run is a group of adjacent glyphs sharing font and baseline, built up
// during the grouping pass. Coordinates are still bottom-origin here.
type run struct {
	text       strings.Builder
	font       string
	size       float64
	baseline   float64
	x0, x1     float64
	pageHeight float64
	line       int
	block      int
}

// groupGlyphs folds the page's per-glyph text items into runs. A new run
// starts on a font or size change, a baseline shift, or a horizontal gap
// wider than the font size.
func groupGlyphs(glyphs []pdf.Text, pageHeight float64) []*run {
	var runs []*run
	var current *run

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		if current != nil && continuesRun(current, g) {
			current.text.WriteString(g.S)
			if g.X+g.W > current.x1 {
				current.x1 = g.X + g.W
			}
			continue
		}
		current = &run{
			font:       g.Font,
			size:       g.FontSize,
			baseline:   g.Y,
			x0:         g.X,
			x1:         g.X + g.W,
			pageHeight: pageHeight,
		}
		current.text.WriteString(g.S)
		runs = append(runs, current)
	}
	return runs
}

func continuesRun(r *run, g pdf.Text) bool {
	if g.Font != r.font || g.FontSize != r.size {
		return false
	}
	if math.Abs(g.Y-r.baseline) > lineBandFactor*r.size {
		return false
	}
	gap := g.X - r.x1
	return gap <= runGapFactor*r.size && gap >= -r.size
}

// assignLines buckets runs into baseline bands and numbers lines top to
// bottom, opening a new block after a wide vertical gap.
func assignLines(runs []*run) {
	if len(runs) == 0 {
		return
	}

	type band struct {
		baseline float64
		size     float64
	}
	var bands []band
	for _, r := range runs {
		found := false
		for _, b := range bands {
			if math.Abs(r.baseline-b.baseline) <= lineBandFactor*math.Max(r.size, b.size) {
				found = true
				break
			}
		}
		if !found {
			bands = append(bands, band{baseline: r.baseline, size: r.size})
		}
	}

	// Bottom-origin coordinates: larger baseline means higher on the page.
	sort.Slice(bands, func(i, j int) bool {
		return bands[i].baseline > bands[j].baseline
	})

	lineBlock := make([]int, len(bands))
	block := 0
	for i := 1; i < len(bands); i++ {
		gap := bands[i-1].baseline - bands[i].baseline
		if gap > blockGapFactor*math.Max(bands[i].size, bands[i-1].size) {
			block++
		}
		lineBlock[i] = block
	}

	for _, r := range runs {
		for i, b := range bands {
			if math.Abs(r.baseline-b.baseline) <= lineBandFactor*math.Max(r.size, b.size) {
				r.line = i
				r.block = lineBlock[i]
				break
			}
		}
	}
}

// toFragments converts runs to fragments, flipping Y so that the fragment
// model's top-origin convention holds.
func toFragments(runs []*run, pageIndex int) []text.Fragment {
	fragments := make([]text.Fragment, 0, len(runs))
	for _, r := range runs {
		fragments = append(fragments, text.Fragment{
			Text:       r.text.String(),
			FontSize:   r.size,
			Bold:       boldFont(r.font),
			BBox:       model.NewBBox(r.x0, r.pageHeight-r.baseline-r.size, r.x1, r.pageHeight-r.baseline),
			PageIndex:  pageIndex,
			BlockIndex: r.block,
			LineIndex:  r.line,
		})
	}
	return fragments
}

// boldFont checks the font name for weight indicators
func boldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy") ||
		strings.Contains(lower, "semibold") ||
		strings.Contains(lower, "demibold")
}
