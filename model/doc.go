// Package model provides the geometric primitives shared by the outline
// reconstruction pipeline.
//
// All coordinates are top-origin: (0,0) is the top-left corner of the page
// and Y grows downward. Decoders working in the native PDF coordinate
// system (Y up) are expected to flip Y before handing fragments to the
// pipeline; the reader package does this.
package model
