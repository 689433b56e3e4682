// Package model defines the shared data types exchanged between the
// relevance engine and its host application.
package model

// Coordinate represents a geographic coordinate with latitude and longitude.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ContentItem is a single candidate document supplied by the host's
// ingestion pipeline. Items are read-only for the duration of a scoring
// call; the engine never mutates them.
type ContentItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Summary     string      `json:"summary"`
	Body        string      `json:"body,omitempty"`
	Topics      []string    `json:"topics"`
	Tags        []string    `json:"tags,omitempty"`
	PublishedAt int64       `json:"published_at"` // epoch milliseconds
	Coordinate  *Coordinate `json:"coordinate,omitempty"`
	Source      string      `json:"source"`
	ImageURL    string      `json:"image_url,omitempty"`
	Locations   []string    `json:"locations,omitempty"`
}

// UserLocation is an already-resolved user position with a search radius.
// Geocoding from free text to coordinates happens upstream.
type UserLocation struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius_km"`
}

// BehaviorProfile carries the user's learned affinities, produced and
// persisted by profile management upstream.
type BehaviorProfile struct {
	TopicWeights  map[string]float64 `json:"topic_weights,omitempty"`
	SourceWeights map[string]float64 `json:"source_weights,omitempty"`
	Bookmarked    map[string]bool    `json:"bookmarked,omitempty"`
}

// Profile bundles everything known about the user for one scoring call.
// Location and Behavior are optional; their subscores are omitted when nil.
type Profile struct {
	Interests []string         `json:"interests"`
	Location  *UserLocation    `json:"location,omitempty"`
	Behavior  *BehaviorProfile `json:"behavior,omitempty"`
}

// ScoreBreakdown reports the independent subscores for one item. Each
// subscore is normalized to [0, 1] before its weight is applied; Total is
// the weighted sum times ProximityBoost. ProximityBoost is reported
// separately so callers can distinguish inherent relevance from a
// location-driven boost.
type ScoreBreakdown struct {
	Lexical        float64  `json:"lexical"`
	Topics         float64  `json:"topics"`
	Tags           float64  `json:"tags"`
	Recency        float64  `json:"recency"`
	Quality        float64  `json:"quality"`
	Geo            float64  `json:"geo"`
	Behavior       float64  `json:"behavior"`
	Total          float64  `json:"total"`
	ProximityBoost float64  `json:"proximity_boost"`
	MatchedTerms   []string `json:"matched_terms,omitempty"`
}

// ScoredItem pairs a candidate with its breakdown and a human-readable
// reason for UI display.
type ScoredItem struct {
	Item      ContentItem    `json:"item"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Reason    string         `json:"reason"`
}

// MatchResult summarizes a batch keyword resolution against the canonical
// topic registry. Confidence is matched-count over attempted-count, and 0
// when nothing was attempted.
type MatchResult struct {
	Identifiers []string `json:"identifiers"`
	Unmatched   []string `json:"unmatched,omitempty"`
	Confidence  float64  `json:"confidence"`
}
