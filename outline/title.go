package outline

import (
	"strings"

	"github.com/tsawler/contour/layout"
	"github.com/tsawler/contour/text"
)

// TitleResolver chooses the document title through an ordered fallback
// chain: title cluster text, then embedded metadata, then the first
// visible fragment on the first page.
type TitleResolver struct{}

// NewTitleResolver creates a title resolver
func NewTitleResolver() *TitleResolver {
	return &TitleResolver{}
}

// Resolve returns the document title. firstPage holds the first page's
// spans in reading order. The result is empty only when the document has
// no fragments and no metadata title.
func (r *TitleResolver) Resolve(firstPage []text.OrderedSpan, clusters *layout.ClusterSet, levels *layout.LevelAssignment, metadataTitle string) string {
	if levels.HasTitleCluster() {
		if title := r.clusterTitle(firstPage, clusters, levels.TitleClusterID); title != "" {
			return title
		}
	}

	if title := strings.TrimSpace(metadataTitle); title != "" {
		return title
	}

	for _, span := range firstPage {
		if !span.IsWhitespaceOnly() {
			return span.Text
		}
	}
	return ""
}

// clusterTitle concatenates, in reading order, the first-page spans whose
// size belongs to the title cluster.
func (r *TitleResolver) clusterTitle(firstPage []text.OrderedSpan, clusters *layout.ClusterSet, titleID int) string {
	var parts []string
	for _, span := range firstPage {
		if id, ok := clusters.ClusterFor(span.FontSize); ok && id == titleID {
			parts = append(parts, span.Text)
		}
	}
	return strings.Join(parts, " ")
}
