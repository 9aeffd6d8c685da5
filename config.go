package contour

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/contour/layout"
	"github.com/tsawler/contour/text"
)

// Config is the file-based configuration surface. Zero values fall back
// to the built-in defaults, so a partial YAML file is fine.
type Config struct {
	// Workers is the number of concurrent page workers (default: 1).
	Workers int `json:"workers" yaml:"workers"`

	Normalizer struct {
		// SizeTolerance is the font size difference below which adjacent
		// same-line fragments merge (default: 0.1).
		SizeTolerance float64 `json:"size_tolerance" yaml:"size_tolerance"`

		// SpaceGapFactor scales the font size to the horizontal gap that
		// inserts a space when merging (default: 0.3).
		SpaceGapFactor float64 `json:"space_gap_factor" yaml:"space_gap_factor"`

		// JoinGapFactor scales the font size to the maximum gap still
		// treated as adjacent when merging (default: 1.0).
		JoinGapFactor float64 `json:"join_gap_factor" yaml:"join_gap_factor"`
	} `json:"normalizer" yaml:"normalizer"`

	Columns struct {
		// OverlapThreshold is the horizontal overlap in points required to
		// join a column (default: 1.0).
		OverlapThreshold float64 `json:"overlap_threshold" yaml:"overlap_threshold"`
	} `json:"columns" yaml:"columns"`

	Clustering struct {
		// RadiusFraction scales the size distribution's standard deviation
		// to the clustering radius (default: 0.15).
		RadiusFraction float64 `json:"radius_fraction" yaml:"radius_fraction"`

		// MinRadius is the radius floor in points (default: 0.25).
		MinRadius float64 `json:"min_radius" yaml:"min_radius"`

		// MinDensity is the occurrence count below which a size run breaks
		// into singletons (default: 3).
		MinDensity int `json:"min_density" yaml:"min_density"`
	} `json:"clustering" yaml:"clustering"`

	Classifier struct {
		// TitleRatio is the minimum title-to-body size ratio (default: 1.3).
		TitleRatio float64 `json:"title_ratio" yaml:"title_ratio"`

		// SizeTolerance is the size difference treated as a tie, letting
		// boldness decide rank (default: 0.5).
		SizeTolerance float64 `json:"size_tolerance" yaml:"size_tolerance"`

		// DiscardBeyondH4 drops clusters ranked past H4 instead of folding
		// them into H4 (default: false).
		DiscardBeyondH4 bool `json:"discard_beyond_h4" yaml:"discard_beyond_h4"`
	} `json:"classifier" yaml:"classifier"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	var config Config
	config.defaults()
	return config
}

func (c *Config) defaults() {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Normalizer.SizeTolerance <= 0 {
		c.Normalizer.SizeTolerance = text.DefaultNormalizerConfig().SizeTolerance
	}
	if c.Normalizer.SpaceGapFactor <= 0 {
		c.Normalizer.SpaceGapFactor = text.DefaultNormalizerConfig().SpaceGapFactor
	}
	if c.Normalizer.JoinGapFactor <= 0 {
		c.Normalizer.JoinGapFactor = text.DefaultNormalizerConfig().JoinGapFactor
	}
	if c.Columns.OverlapThreshold <= 0 {
		c.Columns.OverlapThreshold = layout.DefaultColumnConfig().OverlapThreshold
	}
	if c.Clustering.RadiusFraction <= 0 {
		c.Clustering.RadiusFraction = layout.DefaultSizeClusterConfig().RadiusFraction
	}
	if c.Clustering.MinRadius <= 0 {
		c.Clustering.MinRadius = layout.DefaultSizeClusterConfig().MinRadius
	}
	if c.Clustering.MinDensity <= 0 {
		c.Clustering.MinDensity = layout.DefaultSizeClusterConfig().MinDensity
	}
	if c.Classifier.TitleRatio <= 0 {
		c.Classifier.TitleRatio = layout.DefaultClassifierConfig().TitleRatio
	}
	if c.Classifier.SizeTolerance <= 0 {
		c.Classifier.SizeTolerance = layout.DefaultClassifierConfig().SizeTolerance
	}
}

// options converts the file configuration into runtime options
func (c Config) options() ExtractOptions {
	c.defaults()

	opts := defaultOptions()
	opts.workers = c.Workers
	opts.normalizer = text.NormalizerConfig{
		SizeTolerance:  c.Normalizer.SizeTolerance,
		SpaceGapFactor: c.Normalizer.SpaceGapFactor,
		JoinGapFactor:  c.Normalizer.JoinGapFactor,
	}
	opts.readingOrder = layout.ReadingOrderConfig{
		ColumnConfig: layout.ColumnConfig{
			OverlapThreshold: c.Columns.OverlapThreshold,
		},
	}
	opts.clustering = layout.SizeClusterConfig{
		RadiusFraction: c.Clustering.RadiusFraction,
		MinRadius:      c.Clustering.MinRadius,
		MinDensity:     c.Clustering.MinDensity,
	}
	opts.classifier = layout.ClassifierConfig{
		TitleRatio:      c.Classifier.TitleRatio,
		SizeTolerance:   c.Classifier.SizeTolerance,
		DiscardBeyondH4: c.Classifier.DiscardBeyondH4,
	}
	return opts
}

// LoadConfig reads a YAML configuration file. Missing keys keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}

	config.defaults()
	return config, nil
}
