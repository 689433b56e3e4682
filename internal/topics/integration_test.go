//go:build integration

package topics

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testRegistryKey = "topics:registry"

// startRedis runs a throwaway Redis container and returns a connected client.
func startRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("warning: failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("failed to resolve redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { client.Close() })
	return client
}

func seedRegistry(t *testing.T, client *redis.Client, entries []Entry) {
	t.Helper()

	ctx := context.Background()
	for _, entry := range entries {
		data, err := EncodeEntry(entry)
		if err != nil {
			t.Fatalf("failed to encode entry %q: %v", entry.ID, err)
		}
		if err := client.HSet(ctx, testRegistryKey, entry.ID, data).Err(); err != nil {
			t.Fatalf("failed to seed entry %q: %v", entry.ID, err)
		}
	}
}

func TestRedisRegistryEnumerate(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	seedRegistry(t, client, []Entry{
		{ID: "topic:music", Title: "Music", Slug: "music"},
		{ID: "topic:ai", Title: "AI", Slug: "ai"},
	})
	// JSON payloads from older writers must still decode.
	if err := client.HSet(ctx, testRegistryKey, "topic:food",
		`{"id":"topic:food","title":"Food","slug":"food"}`).Err(); err != nil {
		t.Fatalf("failed to seed json entry: %v", err)
	}
	// Corrupt payloads are skipped, not fatal.
	if err := client.HSet(ctx, testRegistryKey, "topic:bad", "garbage").Err(); err != nil {
		t.Fatalf("failed to seed bad entry: %v", err)
	}

	registry := NewRedisRegistry(client, testRegistryKey, 0)
	if err := registry.Ping(ctx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	entries, err := registry.Enumerate(ctx)
	if err != nil {
		t.Fatalf("enumerate failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
	// Sorted by ID for deterministic iteration.
	want := []string{"topic:ai", "topic:food", "topic:music"}
	for i, id := range want {
		if entries[i].ID != id {
			t.Errorf("entry %d: expected ID %q, got %q", i, id, entries[i].ID)
		}
	}
}

func TestMatcherAgainstRedis(t *testing.T) {
	client := startRedis(t)

	seedRegistry(t, client, []Entry{
		{ID: "topic:music", Title: "Music", Slug: "music"},
		{ID: "topic:technology", Title: "Technology", Slug: "technology"},
		{ID: "topic:science", Title: "Science", Slug: "science"},
	})

	registry := NewRedisRegistry(client, testRegistryKey, 0)
	matcher := NewMatcher(registry, Config{}, slog.Default())

	result := matcher.MatchBatch(context.Background(), []string{"music", "tech", "unknownthing"})
	if len(result.Identifiers) != 2 {
		t.Fatalf("expected 2 identifiers, got %v", result.Identifiers)
	}
	if result.Identifiers[0] != "topic:music" || result.Identifiers[1] != "topic:technology" {
		t.Errorf("unexpected identifiers %v", result.Identifiers)
	}
	if len(result.Unmatched) != 1 || result.Unmatched[0] != "unknownthing" {
		t.Errorf("expected unmatched [unknownthing], got %v", result.Unmatched)
	}
}
