package topics

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

// fakeRegistry is an in-memory Registry for matcher unit tests.
type fakeRegistry struct {
	entries []Entry
	err     error
	calls   int
}

func (f *fakeRegistry) Enumerate(ctx context.Context) ([]Entry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func (f *fakeRegistry) Ping(ctx context.Context) error {
	return f.err
}

func testEntries() []Entry {
	return []Entry{
		{ID: "topic:music", Title: "Music", Slug: "music"},
		{ID: "topic:technology", Title: "Technology", Slug: "technology"},
		{ID: "topic:science", Title: "Science", Slug: "science"},
		{ID: "topic:ai", Title: "AI", Slug: "ai"},
		{ID: "topic:food", Title: "Food", Slug: "food"},
	}
}

func newTestMatcher(registry Registry) *Matcher {
	return NewMatcher(registry, Config{}, slog.Default())
}

// TestMatchKeywordCascade covers the four resolution strategies in order.
func TestMatchKeywordCascade(t *testing.T) {
	matcher := newTestMatcher(&fakeRegistry{entries: testEntries()})
	ctx := context.Background()

	tests := []struct {
		name       string
		keyword    string
		expectedID string
		expectOK   bool
	}{
		{
			name:    "exact case-insensitive",
			keyword: "MUSIC", expectedID: "topic:music", expectOK: true,
		},
		{
			name:    "exact with whitespace",
			keyword: "  science  ", expectedID: "topic:science", expectOK: true,
		},
		{
			name:    "synonym resolution",
			keyword: "tech", expectedID: "topic:technology", expectOK: true,
		},
		{
			name:    "synonym multi-word",
			keyword: "artificial intelligence", expectedID: "topic:ai", expectOK: true,
		},
		{
			name:    "substring containment keyword over title",
			keyword: "technology news", expectedID: "topic:technology", expectOK: true,
		},
		{
			name:    "substring containment title over keyword",
			keyword: "scien", expectedID: "topic:science", expectOK: true,
		},
		{
			name:    "edit distance similarity",
			keyword: "musik", expectedID: "topic:music", expectOK: true,
		},
		{
			name:    "no match",
			keyword: "zzzzz", expectOK: false,
		},
		{
			name:    "empty keyword",
			keyword: "   ", expectOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := matcher.MatchKeyword(ctx, tt.keyword)
			if ok != tt.expectOK {
				t.Fatalf("MatchKeyword(%q) ok = %v, expected %v", tt.keyword, ok, tt.expectOK)
			}
			if id != tt.expectedID {
				t.Errorf("MatchKeyword(%q) = %q, expected %q", tt.keyword, id, tt.expectedID)
			}
		})
	}
}

// TestMatchKeywordFallback verifies the default set installs when the
// registry yields nothing.
func TestMatchKeywordFallback(t *testing.T) {
	t.Run("empty registry", func(t *testing.T) {
		matcher := newTestMatcher(&fakeRegistry{})
		id, ok := matcher.MatchKeyword(context.Background(), "ai")
		if !ok || id != "topic:ai" {
			t.Errorf("expected fallback to resolve 'ai', got (%q, %v)", id, ok)
		}
		id, ok = matcher.MatchKeyword(context.Background(), "technology")
		if !ok || id != "topic:technology" {
			t.Errorf("expected fallback to resolve 'technology', got (%q, %v)", id, ok)
		}
	})

	t.Run("registry error", func(t *testing.T) {
		matcher := newTestMatcher(&fakeRegistry{err: errors.New("connection refused")})
		id, ok := matcher.MatchKeyword(context.Background(), "music")
		if !ok || id != "topic:music" {
			t.Errorf("expected fallback to resolve 'music', got (%q, %v)", id, ok)
		}
	})
}

// TestMatcherKeepsLastGoodCache verifies a registry that starts failing
// does not evict the previously fetched index.
func TestMatcherKeepsLastGoodCache(t *testing.T) {
	registry := &fakeRegistry{entries: testEntries()}
	matcher := newTestMatcher(registry)

	current := time.Now()
	matcher.now = func() time.Time { return current }

	if _, ok := matcher.MatchKeyword(context.Background(), "music"); !ok {
		t.Fatal("expected initial match to succeed")
	}

	// Registry goes down, cache goes stale.
	registry.err = errors.New("connection refused")
	current = current.Add(10 * time.Minute)

	id, ok := matcher.MatchKeyword(context.Background(), "music")
	if !ok || id != "topic:music" {
		t.Errorf("expected last good cache to serve 'music', got (%q, %v)", id, ok)
	}
}

// TestMatcherRefreshInterval verifies the registry is only re-fetched
// once the snapshot is older than the refresh interval.
func TestMatcherRefreshInterval(t *testing.T) {
	registry := &fakeRegistry{entries: testEntries()}
	matcher := newTestMatcher(registry)

	current := time.Now()
	matcher.now = func() time.Time { return current }
	ctx := context.Background()

	matcher.MatchKeyword(ctx, "music")
	matcher.MatchKeyword(ctx, "science")
	matcher.MatchKeyword(ctx, "food")
	if registry.calls != 1 {
		t.Errorf("expected 1 enumeration within the interval, got %d", registry.calls)
	}

	current = current.Add(DefaultRefreshInterval + time.Second)
	matcher.MatchKeyword(ctx, "music")
	if registry.calls != 2 {
		t.Errorf("expected re-fetch after interval, got %d calls", registry.calls)
	}
}

// TestMatchBatch covers identifiers, unmatched keywords, and confidence.
func TestMatchBatch(t *testing.T) {
	matcher := newTestMatcher(&fakeRegistry{entries: testEntries()})
	ctx := context.Background()

	t.Run("mixed batch", func(t *testing.T) {
		result := matcher.MatchBatch(ctx, []string{"music", "zzzzz", "tech", "Music"})

		if len(result.Identifiers) != 2 {
			t.Fatalf("expected 2 deduplicated identifiers, got %v", result.Identifiers)
		}
		if result.Identifiers[0] != "topic:music" || result.Identifiers[1] != "topic:technology" {
			t.Errorf("unexpected identifiers %v", result.Identifiers)
		}
		if len(result.Unmatched) != 1 || result.Unmatched[0] != "zzzzz" {
			t.Errorf("expected unmatched [zzzzz], got %v", result.Unmatched)
		}
		// 3 of 4 attempts matched.
		if result.Confidence != 0.75 {
			t.Errorf("expected confidence 0.75, got %f", result.Confidence)
		}
	})

	t.Run("nothing attempted", func(t *testing.T) {
		result := matcher.MatchBatch(ctx, []string{"", "   "})
		if result.Confidence != 0 {
			t.Errorf("expected confidence 0, got %f", result.Confidence)
		}
		if len(result.Identifiers) != 0 || len(result.Unmatched) != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
	})
}

// TestDecodeEntry covers CBOR decoding, the JSON fallback, and invalid
// payloads.
func TestDecodeEntry(t *testing.T) {
	t.Run("cbor roundtrip", func(t *testing.T) {
		original := Entry{ID: "topic:music", Title: "Music", Slug: "music"}
		data, err := EncodeEntry(original)
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		decoded, err := DecodeEntry(data)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if decoded != original {
			t.Errorf("roundtrip mismatch: %+v vs %+v", decoded, original)
		}
	})

	t.Run("json fallback", func(t *testing.T) {
		decoded, err := DecodeEntry([]byte(`{"id":"topic:ai","title":"AI","slug":"ai"}`))
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if decoded.ID != "topic:ai" || decoded.Title != "AI" {
			t.Errorf("unexpected entry %+v", decoded)
		}
	})

	t.Run("invalid payloads", func(t *testing.T) {
		for _, data := range [][]byte{nil, {}, []byte("garbage"), []byte(`{"slug":"x"}`)} {
			if _, err := DecodeEntry(data); err == nil {
				t.Errorf("expected error for payload %q", data)
			}
		}
	})
}
