// Package layout turns per-page fragment lists into document structure.
//
// Four analyses live here. The column detector clusters fragment x-ranges
// into columns. The reading order resolver walks columns left to right and
// fragments top to bottom, assigning each fragment a reading rank. The
// size clusterer groups the document's distinct font sizes with a density
// pass whose radius adapts to the spread of the size distribution. The
// level classifier maps those clusters to Body, Title, and H1 through H4.
//
// Clustering and classification are whole-document operations: every page
// must be normalized and ordered before either runs.
package layout
