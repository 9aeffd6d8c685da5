// integration.go provides one-call helpers over the fluent Extractor
package contour

import (
	"github.com/tsawler/contour/outline"
)

// ExtractOutline reconstructs the outline of the PDF at path with default
// configuration, discarding warnings.
//
// Example:
//
//	o, err := contour.ExtractOutline("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(o.Title)
//	for _, h := range o.Outline {
//	    fmt.Printf("%s %s (page %d)\n", h.Level, h.Text, h.Page)
//	}
func ExtractOutline(path string) (*outline.Outline, error) {
	o, _, err := Open(path).Outline()
	return o, err
}

// ExtractOutlineWithConfig reconstructs the outline with custom configuration
func ExtractOutlineWithConfig(path string, config Config) (*outline.Outline, error) {
	o, _, err := Open(path).WithConfig(config).Outline()
	return o, err
}
