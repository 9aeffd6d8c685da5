package layout

import (
	"fmt"
	"math"
	"sort"
)

// Level is the semantic role assigned to a size cluster
type Level int

const (
	// LevelBody is ordinary body text, never emitted in the outline
	LevelBody Level = iota
	// LevelTitle is the document title cluster, at most one per document
	LevelTitle
	// LevelH1 through LevelH4 are the heading ranks, largest size first
	LevelH1
	LevelH2
	LevelH3
	LevelH4
)

// String returns the canonical name of the level
func (l Level) String() string {
	switch l {
	case LevelTitle:
		return "Title"
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	case LevelH4:
		return "H4"
	default:
		return "Body"
	}
}

// MarshalJSON encodes the level as its canonical name
func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", l.String())), nil
}

// IsHeading reports whether the level appears in the outline
func (l Level) IsHeading() bool {
	return l >= LevelH1 && l <= LevelH4
}

// ClassifierConfig holds configuration for heading level assignment
type ClassifierConfig struct {
	// TitleRatio is the minimum representative size of the title cluster
	// relative to the body cluster. A candidate below this ratio is
	// demoted to H1 and the title falls back to metadata or first line
	// Default: 1.3
	TitleRatio float64

	// SizeTolerance is the representative size difference (in points)
	// under which two clusters count as the same size, letting boldness
	// break the rank tie
	// Default: 0.5
	SizeTolerance float64

	// DiscardBeyondH4 drops clusters ranked past H4 instead of folding
	// them into H4
	// Default: false
	DiscardBeyondH4 bool
}

// DefaultClassifierConfig returns sensible default configuration
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		TitleRatio:      1.3,
		SizeTolerance:   0.5,
		DiscardBeyondH4: false,
	}
}

// LevelAssignment maps cluster IDs to semantic levels
type LevelAssignment struct {
	levels map[int]Level

	// BodyClusterID is the cluster classified as body text, -1 when the
	// document has no clusters
	BodyClusterID int

	// TitleClusterID is the cluster promoted to Title, -1 when none was
	TitleClusterID int
}

// LevelFor returns the level assigned to a cluster. Unknown IDs map to Body.
func (a *LevelAssignment) LevelFor(clusterID int) Level {
	if a == nil {
		return LevelBody
	}
	return a.levels[clusterID]
}

// HasTitleCluster reports whether a cluster was promoted to Title
func (a *LevelAssignment) HasTitleCluster() bool {
	return a != nil && a.TitleClusterID >= 0
}

// LevelClassifier assigns semantic levels to size clusters
type LevelClassifier struct {
	config ClassifierConfig
}

// NewLevelClassifier creates a classifier with default configuration
func NewLevelClassifier() *LevelClassifier {
	return NewLevelClassifierWithConfig(DefaultClassifierConfig())
}

// NewLevelClassifierWithConfig creates a classifier with custom configuration
func NewLevelClassifierWithConfig(config ClassifierConfig) *LevelClassifier {
	return &LevelClassifier{config: config}
}

// Classify maps every cluster in the set to a level. The body cluster is
// the one with the most occurrences, smallest size winning ties. The
// largest remaining cluster becomes Title only when it is exclusive to the
// first page and big enough relative to body; the rest rank H1 downward
// by size, bolder clusters winning near-ties. Always total: a single
// cluster classifies as Body.
func (c *LevelClassifier) Classify(set *ClusterSet) *LevelAssignment {
	assignment := &LevelAssignment{
		levels:         make(map[int]Level),
		BodyClusterID:  -1,
		TitleClusterID: -1,
	}
	if set.Len() == 0 {
		return assignment
	}

	body := set.Clusters[0]
	for _, cluster := range set.Clusters[1:] {
		if cluster.Count > body.Count {
			body = cluster
			continue
		}
		if cluster.Count == body.Count && cluster.Representative < body.Representative {
			body = cluster
		}
	}
	assignment.BodyClusterID = body.ID
	assignment.levels[body.ID] = LevelBody

	remaining := make([]SizeCluster, 0, set.Len()-1)
	for _, cluster := range set.Clusters {
		if cluster.ID != body.ID {
			remaining = append(remaining, cluster)
		}
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return c.ranksAbove(remaining[i], remaining[j])
	})

	if len(remaining) > 0 && c.qualifiesAsTitle(remaining[0], body) {
		assignment.TitleClusterID = remaining[0].ID
		assignment.levels[remaining[0].ID] = LevelTitle
		remaining = remaining[1:]
	}

	for i, cluster := range remaining {
		switch {
		case i < 4:
			assignment.levels[cluster.ID] = LevelH1 + Level(i)
		case c.config.DiscardBeyondH4:
			assignment.levels[cluster.ID] = LevelBody
		default:
			assignment.levels[cluster.ID] = LevelH4
		}
	}

	return assignment
}

// ranksAbove orders clusters for level assignment: larger representative
// size first, boldness deciding near-ties, cluster ID as the final
// deterministic tie-break.
func (c *LevelClassifier) ranksAbove(a, b SizeCluster) bool {
	if math.Abs(a.Representative-b.Representative) <= c.config.SizeTolerance {
		if a.BoldRatio() != b.BoldRatio() {
			return a.BoldRatio() > b.BoldRatio()
		}
		if a.Representative != b.Representative {
			return a.Representative > b.Representative
		}
		return a.ID < b.ID
	}
	return a.Representative > b.Representative
}

func (c *LevelClassifier) qualifiesAsTitle(candidate, body SizeCluster) bool {
	if !candidate.FirstPageOnly {
		return false
	}
	if body.Representative <= 0 {
		return false
	}
	return candidate.Representative >= c.config.TitleRatio*body.Representative
}
