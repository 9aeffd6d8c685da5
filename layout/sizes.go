package layout

import (
	"math"
	"sort"

	"github.com/tsawler/contour/text"
)

// SizeCluster groups font sizes that play the same typographic role
type SizeCluster struct {
	// ID identifies the cluster within one clustering run
	ID int

	// Sizes are the distinct member sizes, ascending
	Sizes []float64

	// Representative is the occurrence-weighted mean of the member sizes
	Representative float64

	// Count is the total number of fragment occurrences across all members
	Count int

	// BoldCount is how many of those occurrences were bold
	BoldCount int

	// FirstPageOnly reports whether every occurrence sits on the first page
	FirstPageOnly bool
}

// BoldRatio returns the fraction of occurrences that are bold
func (c SizeCluster) BoldRatio() float64 {
	if c.Count == 0 {
		return 0
	}
	return float64(c.BoldCount) / float64(c.Count)
}

// ClusterSet is the result of one clustering run over a whole document
type ClusterSet struct {
	// Clusters ordered by representative size ascending
	Clusters []SizeCluster

	byBucket map[int]int
}

// ClusterFor returns the ID of the cluster containing the given font size.
// The second return value is false for sizes never seen during clustering.
func (s *ClusterSet) ClusterFor(size float64) (int, bool) {
	if s == nil {
		return 0, false
	}
	id, ok := s.byBucket[sizeBucket(size)]
	return id, ok
}

// Get returns the cluster with the given ID
func (s *ClusterSet) Get(id int) (SizeCluster, bool) {
	if s == nil || id < 0 || id >= len(s.Clusters) {
		return SizeCluster{}, false
	}
	return s.Clusters[id], true
}

// Len returns the number of clusters. Safe to call on a nil set.
func (s *ClusterSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Clusters)
}

// SizeClusterConfig holds configuration for font size clustering
type SizeClusterConfig struct {
	// RadiusFraction scales the standard deviation of the distinct sizes
	// to obtain the clustering neighborhood radius, making the method
	// scale-invariant across documents with different base sizes
	// Default: 0.15
	RadiusFraction float64

	// MinRadius is the floor for the neighborhood radius in points, so
	// that near-identical sizes always cluster together
	// Default: 0.25
	MinRadius float64

	// MinDensity is the minimum total occurrence count for a size run to
	// form one cluster; sparser runs break apart into singletons
	// Default: 3
	MinDensity int
}

// DefaultSizeClusterConfig returns sensible default configuration
func DefaultSizeClusterConfig() SizeClusterConfig {
	return SizeClusterConfig{
		RadiusFraction: 0.15,
		MinRadius:      0.25,
		MinDensity:     3,
	}
}

// SizeClusterer partitions the distinct font sizes of a document into
// clusters using a density pass in 1-D size space
type SizeClusterer struct {
	config SizeClusterConfig
}

// NewSizeClusterer creates a clusterer with default configuration
func NewSizeClusterer() *SizeClusterer {
	return NewSizeClustererWithConfig(DefaultSizeClusterConfig())
}

// NewSizeClustererWithConfig creates a clusterer with custom configuration
func NewSizeClustererWithConfig(config SizeClusterConfig) *SizeClusterer {
	return &SizeClusterer{config: config}
}

// sizeStats accumulates per-distinct-size occurrence data during the
// collection pass
type sizeStats struct {
	size          float64
	count         int
	boldCount     int
	firstPageOnly bool
}

// Cluster groups the font sizes seen across all fragments of a document.
// Sizes are quantized to 0.1pt buckets before clustering. A document with
// a single distinct size yields exactly one cluster.
func (c *SizeClusterer) Cluster(fragments []text.Fragment) *ClusterSet {
	stats := collectSizeStats(fragments)
	if len(stats) == 0 {
		return &ClusterSet{byBucket: map[int]int{}}
	}

	eps := c.radius(stats)

	// Single-linkage over the sorted distinct sizes: a gap wider than the
	// radius ends the current run.
	var runs [][]sizeStats
	run := []sizeStats{stats[0]}
	for _, s := range stats[1:] {
		if s.size-run[len(run)-1].size <= eps {
			run = append(run, s)
			continue
		}
		runs = append(runs, run)
		run = []sizeStats{s}
	}
	runs = append(runs, run)

	// Runs below the density floor are noise; each of their sizes stands
	// alone as a singleton cluster.
	var groups [][]sizeStats
	for _, r := range runs {
		total := 0
		for _, s := range r {
			total += s.count
		}
		if total >= c.config.MinDensity || len(r) == 1 {
			groups = append(groups, r)
			continue
		}
		for _, s := range r {
			groups = append(groups, []sizeStats{s})
		}
	}

	set := &ClusterSet{
		Clusters: make([]SizeCluster, 0, len(groups)),
		byBucket: make(map[int]int),
	}
	for _, g := range groups {
		cluster := buildCluster(len(set.Clusters), g)
		for _, s := range g {
			set.byBucket[sizeBucket(s.size)] = cluster.ID
		}
		set.Clusters = append(set.Clusters, cluster)
	}
	return set
}

// radius derives the neighborhood radius from the spread of the distinct
// sizes, with a floor so degenerate distributions still merge rounding
// jitter.
func (c *SizeClusterer) radius(stats []sizeStats) float64 {
	if len(stats) < 2 {
		return c.config.MinRadius
	}

	var sum float64
	for _, s := range stats {
		sum += s.size
	}
	mean := sum / float64(len(stats))

	var variance float64
	for _, s := range stats {
		d := s.size - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(len(stats)))

	return math.Max(c.config.RadiusFraction*stddev, c.config.MinRadius)
}

func collectSizeStats(fragments []text.Fragment) []sizeStats {
	byBucket := make(map[int]*sizeStats)
	for _, f := range fragments {
		b := sizeBucket(f.FontSize)
		s, ok := byBucket[b]
		if !ok {
			s = &sizeStats{size: quantizeSize(f.FontSize), firstPageOnly: true}
			byBucket[b] = s
		}
		s.count++
		if f.Bold {
			s.boldCount++
		}
		if f.PageIndex != 0 {
			s.firstPageOnly = false
		}
	}

	stats := make([]sizeStats, 0, len(byBucket))
	for _, s := range byBucket {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].size < stats[j].size
	})
	return stats
}

func buildCluster(id int, members []sizeStats) SizeCluster {
	cluster := SizeCluster{
		ID:            id,
		Sizes:         make([]float64, 0, len(members)),
		FirstPageOnly: true,
	}

	var weighted float64
	for _, s := range members {
		cluster.Sizes = append(cluster.Sizes, s.size)
		cluster.Count += s.count
		cluster.BoldCount += s.boldCount
		if !s.firstPageOnly {
			cluster.FirstPageOnly = false
		}
		weighted += s.size * float64(s.count)
	}
	if cluster.Count > 0 {
		cluster.Representative = weighted / float64(cluster.Count)
	}
	return cluster
}

func sizeBucket(size float64) int {
	return int(math.Round(size * 10))
}

func quantizeSize(size float64) float64 {
	return float64(sizeBucket(size)) / 10
}
