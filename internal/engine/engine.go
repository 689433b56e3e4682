// Package engine orchestrates one relevance pass: interest expansion,
// corpus statistics, and composite scoring over a candidate set.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/toplocs/newsrelevance/internal/corpus"
	"github.com/toplocs/newsrelevance/internal/geo"
	"github.com/toplocs/newsrelevance/internal/knowledge"
	"github.com/toplocs/newsrelevance/internal/model"
	"github.com/toplocs/newsrelevance/internal/scoring"
	"github.com/toplocs/newsrelevance/internal/tracing"
)

// Config holds the engine dependencies. All fields are optional:
// nil weights fall back to the calibrated defaults and nil metrics
// disable instrumentation.
type Config struct {
	Weights *scoring.Weights
	Metrics *scoring.Metrics
}

// Engine scores candidate content items against a user profile. It is
// stateless between calls and safe for concurrent use.
type Engine struct {
	weights *scoring.Weights
	metrics *scoring.Metrics
	logger  *slog.Logger

	now func() time.Time
}

// New creates an engine with the given configuration.
func New(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		weights: cfg.Weights,
		metrics: cfg.Metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Score ranks items for the profile, highest relevance first. Interests
// are expanded once and corpus statistics are built once, then shared
// read-only across all items. An empty candidate set returns an empty
// non-nil slice; an empty interest list still yields a valid ranking
// driven by the interest-agnostic subscores.
func (e *Engine) Score(ctx context.Context, items []model.ContentItem, profile model.Profile) []model.ScoredItem {
	_, endSpan := tracing.StartScoringSpan(ctx, len(items))
	defer endSpan(nil)

	start := e.now()

	expanded := knowledge.ExpandAll(profile.Interests)
	stats := corpus.Build(items)

	results := scoring.Score(scoring.Input{
		Items:         items,
		ExpandedTerms: expanded,
		InterestCount: len(profile.Interests),
		Location:      profile.Location,
		Behavior:      profile.Behavior,
		Stats:         stats,
		Now:           start,
	}, e.weights)

	elapsed := e.now().Sub(start)
	e.metrics.ObservePass(len(items), elapsed.Seconds())

	// Coarse geohash label only; precise coordinates stay out of logs.
	locationLabel := "none"
	if profile.Location != nil {
		locationLabel = geo.Encode(profile.Location.Lat, profile.Location.Lng, geo.DefaultPrecision)
	}

	e.logger.Debug("scoring pass complete",
		"items", len(items),
		"interests", len(profile.Interests),
		"expanded_terms", len(expanded),
		"location", locationLabel,
		"duration_ms", elapsed.Milliseconds(),
	)

	return results
}
