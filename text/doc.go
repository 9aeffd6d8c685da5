// Package text defines the fragment model shared by the rest of the
// pipeline and the normalizer that cleans raw decoded fragments before
// layout analysis.
//
// A Fragment is a run of text with its bounding box, font size and weight.
// The normalizer drops whitespace-only fragments, folds text to Unicode
// NFC, and merges adjacent fragments on the same line that share typography
// so that a heading split across spans is scored as one candidate.
package text
