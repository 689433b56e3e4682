package scoring

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Weights holds the hand-tuned weight for each subscore. All subscores
// are normalized to [0, 1] before weighting, so the weights also bound
// each signal's maximum contribution to the total.
type Weights struct {
	Lexical  float64 `json:"lexical"`  // TF-IDF relevance (default: 0.40)
	Topics   float64 `json:"topics"`   // categorical topic match (default: 0.15)
	Tags     float64 `json:"tags"`     // categorical tag match (default: 0.10)
	Recency  float64 `json:"recency"`  // publication age decay (default: 0.15)
	Quality  float64 `json:"quality"`  // structural richness (default: 0.10)
	Geo      float64 `json:"geo"`      // distance within radius (default: 0.05)
	Behavior float64 `json:"behavior"` // learned affinities (default: 0.05)
}

// CalibrationConfig represents the JSON structure of the calibration file.
type CalibrationConfig struct {
	Version string  `json:"version"` // Config version for future compatibility
	Weights Weights `json:"weights"` // Weight overrides
}

// DefaultWeights returns the default weight configuration.
//
// Formula: total = (lexical * 0.40) + (topics * 0.15) + (tags * 0.10) +
// (recency * 0.15) + (quality * 0.10) + (geo * 0.05) + (behavior * 0.05)
//
// The weighted sum is bounded by 1.0; only the proximity multiplier,
// applied after summation, can push the total past it.
func DefaultWeights() *Weights {
	return &Weights{
		Lexical:  0.40,
		Topics:   0.15,
		Tags:     0.10,
		Recency:  0.15,
		Quality:  0.10,
		Geo:      0.05,
		Behavior: 0.05,
	}
}

// LoadCalibration loads scoring weights from a JSON calibration file.
// Partial configurations are merged with defaults so a file may override
// a single weight. On any error the defaults are returned alongside the
// error so callers can degrade gracefully.
func LoadCalibration(filePath string) (*Weights, error) {
	if filePath == "" {
		return DefaultWeights(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		slog.Warn("failed to read calibration file, using defaults",
			"path", filePath,
			"error", err)
		return DefaultWeights(), fmt.Errorf("failed to read calibration file: %w", err)
	}

	var config CalibrationConfig
	if err := json.Unmarshal(data, &config); err != nil {
		slog.Warn("failed to parse calibration file, using defaults",
			"path", filePath,
			"error", err)
		return DefaultWeights(), fmt.Errorf("failed to parse calibration file: %w", err)
	}

	defaults := DefaultWeights()
	merged := MergeCalibration(defaults, &config.Weights)
	logCalibrationOverrides(defaults, merged)

	return merged, nil
}

// MergeCalibration merges override weights into base weights. Only
// non-zero override values are applied, which allows partial overrides in
// the calibration file.
func MergeCalibration(base *Weights, override *Weights) *Weights {
	if base == nil {
		return DefaultWeights()
	}
	if override == nil {
		result := *base
		return &result
	}

	result := *base

	if override.Lexical != 0 {
		result.Lexical = override.Lexical
	}
	if override.Topics != 0 {
		result.Topics = override.Topics
	}
	if override.Tags != 0 {
		result.Tags = override.Tags
	}
	if override.Recency != 0 {
		result.Recency = override.Recency
	}
	if override.Quality != 0 {
		result.Quality = override.Quality
	}
	if override.Geo != 0 {
		result.Geo = override.Geo
	}
	if override.Behavior != 0 {
		result.Behavior = override.Behavior
	}

	return &result
}

// logCalibrationOverrides logs which weights were overridden from defaults.
func logCalibrationOverrides(defaults *Weights, loaded *Weights) {
	var overrides []string

	check := func(name string, def, got float64) {
		if got != def {
			overrides = append(overrides, fmt.Sprintf("%s: %.2f -> %.2f", name, def, got))
		}
	}
	check("lexical", defaults.Lexical, loaded.Lexical)
	check("topics", defaults.Topics, loaded.Topics)
	check("tags", defaults.Tags, loaded.Tags)
	check("recency", defaults.Recency, loaded.Recency)
	check("quality", defaults.Quality, loaded.Quality)
	check("geo", defaults.Geo, loaded.Geo)
	check("behavior", defaults.Behavior, loaded.Behavior)

	if len(overrides) > 0 {
		slog.Info("loaded scoring calibration with overrides",
			"overrides", overrides)
	} else {
		slog.Info("loaded scoring calibration (using all defaults)")
	}
}
