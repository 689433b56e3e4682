package topics

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/toplocs/newsrelevance/internal/model"
	"github.com/toplocs/newsrelevance/internal/strutil"
)

// DefaultRefreshInterval is how long one cache snapshot stays fresh.
const DefaultRefreshInterval = 5 * time.Minute

// editDistanceThreshold is the minimum similarity for the fuzzy
// resolution step.
const editDistanceThreshold = 0.7

// synonyms maps common keyword spellings to the canonical label they
// should resolve through.
var synonyms = map[string]string{
	"artificial intelligence": "ai",
	"machine learning":        "ai",
	"tech":                    "technology",
	"football":                "soccer",
	"fussball":                "soccer",
	"futbol":                  "soccer",
	"wellness":                "health",
	"fitness":                 "health",
	"movies":                  "film",
	"cinema":                  "film",
	"cooking":                 "food",
	"cuisine":                 "food",
	"tunes":                   "music",
}

// defaultEntries is the fixed fallback set installed when the registry
// yields nothing. The matcher index is never empty after first use.
var defaultEntries = []Entry{
	{ID: "topic:ai", Title: "AI", Slug: "ai"},
	{ID: "topic:technology", Title: "Technology", Slug: "technology"},
	{ID: "topic:music", Title: "Music", Slug: "music"},
	{ID: "topic:sport", Title: "Sport", Slug: "sport"},
	{ID: "topic:food", Title: "Food", Slug: "food"},
	{ID: "topic:politics", Title: "Politics", Slug: "politics"},
	{ID: "topic:science", Title: "Science", Slug: "science"},
	{ID: "topic:health", Title: "Health", Slug: "health"},
	{ID: "topic:travel", Title: "Travel", Slug: "travel"},
	{ID: "topic:art", Title: "Art", Slug: "art"},
}

// snapshot is one immutable cache generation. It is replaced wholesale
// on refresh and therefore safe to read without locking.
type snapshot struct {
	titleToID map[string]string
	titles    []string // lowercase titles, sorted, for deterministic scans
	fetchedAt time.Time
	fallback  bool
}

// Config holds matcher tuning knobs. The zero value is usable.
type Config struct {
	// RefreshInterval overrides DefaultRefreshInterval when positive.
	RefreshInterval time.Duration

	// Metrics receives matcher observations when non-nil.
	Metrics *Metrics
}

// Matcher resolves keywords against the cached topic registry index.
// Safe for concurrent use: reads load an immutable snapshot, and refresh
// is serialized behind a mutex while the swap itself is atomic.
type Matcher struct {
	registry Registry
	interval time.Duration
	metrics  *Metrics
	logger   *slog.Logger

	snap      atomic.Pointer[snapshot]
	refreshMu sync.Mutex

	// now is the clock source, overridable in tests.
	now func() time.Time
}

// NewMatcher creates a matcher over the given registry.
func NewMatcher(registry Registry, cfg Config, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Matcher{
		registry: registry,
		interval: interval,
		metrics:  cfg.Metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// MatchKeyword resolves a free-text keyword to a canonical topic
// identifier. Resolution order: exact title match, synonym lookup,
// substring containment, then edit-distance similarity above 0.7. The
// first match wins; the second return value is false when nothing
// matched.
//
// Registry failures never surface here: the matcher degrades to the last
// good snapshot, or to the fixed default set before any successful
// fetch.
func (m *Matcher) MatchKeyword(ctx context.Context, keyword string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(keyword))
	if normalized == "" {
		return "", false
	}

	snap := m.current(ctx)

	if id, ok := snap.titleToID[normalized]; ok {
		m.metrics.IncMatch(StrategyExact)
		return id, true
	}

	if canonical, ok := synonyms[normalized]; ok {
		if id, ok := snap.titleToID[canonical]; ok {
			m.metrics.IncMatch(StrategySynonym)
			return id, true
		}
	}

	for _, title := range snap.titles {
		if strings.Contains(title, normalized) || strings.Contains(normalized, title) {
			m.metrics.IncMatch(StrategySubstring)
			return snap.titleToID[title], true
		}
	}

	for _, title := range snap.titles {
		if strutil.Similarity(normalized, title) > editDistanceThreshold {
			m.metrics.IncMatch(StrategyFuzzy)
			return snap.titleToID[title], true
		}
	}

	m.metrics.IncMatch(StrategyMiss)
	return "", false
}

// MatchBatch resolves a keyword list and reports the resolved
// identifiers (deduplicated, input order), the unmatched keywords, and a
// confidence ratio of matched over attempted.
func (m *Matcher) MatchBatch(ctx context.Context, keywords []string) model.MatchResult {
	result := model.MatchResult{}
	seen := make(map[string]bool)

	attempted := 0
	matched := 0
	for _, keyword := range keywords {
		if strings.TrimSpace(keyword) == "" {
			continue
		}
		attempted++
		id, ok := m.MatchKeyword(ctx, keyword)
		if !ok {
			result.Unmatched = append(result.Unmatched, keyword)
			continue
		}
		matched++
		if !seen[id] {
			seen[id] = true
			result.Identifiers = append(result.Identifiers, id)
		}
	}

	if attempted > 0 {
		result.Confidence = float64(matched) / float64(attempted)
	}
	return result
}

// current returns a fresh snapshot, refreshing from the registry when
// the cached one is older than the refresh interval.
func (m *Matcher) current(ctx context.Context) *snapshot {
	if snap := m.snap.Load(); snap != nil && m.now().Sub(snap.fetchedAt) < m.interval {
		return snap
	}

	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	// Another caller may have refreshed while we waited.
	if snap := m.snap.Load(); snap != nil && m.now().Sub(snap.fetchedAt) < m.interval {
		return snap
	}

	return m.refresh(ctx)
}

// refresh fetches the registry and swaps in a new snapshot. On failure
// or an empty enumeration the last good index is kept (with a renewed
// timestamp so a flapping registry is not hammered on every call), or
// the default set is installed when no index exists yet.
func (m *Matcher) refresh(ctx context.Context) *snapshot {
	start := m.now()
	entries, err := m.registry.Enumerate(ctx)
	m.metrics.ObserveRefresh(m.now().Sub(start).Seconds(), err)

	if err != nil || len(entries) == 0 {
		if err != nil {
			m.logger.Warn("topic registry enumeration failed",
				"error", err)
		} else {
			m.logger.Warn("topic registry returned no entries")
		}

		if prev := m.snap.Load(); prev != nil {
			kept := &snapshot{
				titleToID: prev.titleToID,
				titles:    prev.titles,
				fetchedAt: m.now(),
				fallback:  prev.fallback,
			}
			m.snap.Store(kept)
			return kept
		}

		m.metrics.IncFallback()
		m.logger.Warn("installing default topic set",
			"topics", len(defaultEntries))
		fallback := buildSnapshot(defaultEntries, m.now())
		fallback.fallback = true
		m.snap.Store(fallback)
		return fallback
	}

	fresh := buildSnapshot(entries, m.now())
	m.snap.Store(fresh)
	m.logger.Debug("refreshed topic registry cache",
		"topics", len(entries))
	return fresh
}

// buildSnapshot indexes entries by lowercase title. Duplicate titles keep
// the first entry in ID order.
func buildSnapshot(entries []Entry, fetchedAt time.Time) *snapshot {
	titleToID := make(map[string]string, len(entries))
	titles := make([]string, 0, len(entries))
	for _, entry := range entries {
		title := strings.ToLower(strings.TrimSpace(entry.Title))
		if title == "" {
			continue
		}
		if _, exists := titleToID[title]; exists {
			continue
		}
		titleToID[title] = entry.ID
		titles = append(titles, title)
	}
	sort.Strings(titles)

	return &snapshot{
		titleToID: titleToID,
		titles:    titles,
		fetchedAt: fetchedAt,
	}
}
