// Package topics resolves free-text keywords to identifiers in the
// external canonical topic registry, backed by a periodically refreshed
// read-through cache with a fixed fallback set.
package topics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/redis/go-redis/v9"

	"github.com/toplocs/newsrelevance/internal/tracing"
)

// DefaultFetchTimeout bounds one registry enumeration. The registry is
// eventually consistent and may be slow or unreachable; past this bound
// the matcher degrades to its fallback set instead of blocking scoring.
const DefaultFetchTimeout = 1 * time.Second

// Registry enumeration errors.
var (
	ErrInvalidEntry = errors.New("invalid registry entry payload")
)

// Entry is one canonical topic owned by the external registry.
type Entry struct {
	ID    string `cbor:"id" json:"id"`
	Title string `cbor:"title" json:"title"`
	Slug  string `cbor:"slug" json:"slug"`
}

// Registry enumerates the external topic registry. Implementations must
// honor context cancellation; returning zero entries is a valid (if
// degraded) outcome the matcher handles with its fallback set.
type Registry interface {
	// Enumerate returns every known topic entry.
	Enumerate(ctx context.Context) ([]Entry, error)

	// Ping reports whether the registry is reachable.
	Ping(ctx context.Context) error
}

// RedisRegistry reads the topic registry from a redis hash. Each hash
// value is a CBOR-encoded Entry; JSON payloads are tolerated for
// registries populated by older writers.
type RedisRegistry struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

// NewRedisRegistry creates a registry reader over the given client and
// hash key. A non-positive timeout falls back to DefaultFetchTimeout.
func NewRedisRegistry(client *redis.Client, key string, timeout time.Duration) *RedisRegistry {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &RedisRegistry{
		client:  client,
		key:     key,
		timeout: timeout,
	}
}

// Enumerate fetches the full hash and decodes every entry. Entries that
// fail to decode are skipped rather than failing the enumeration; the
// result is sorted by ID so repeated reads are deterministic.
func (r *RedisRegistry) Enumerate(ctx context.Context) (entries []Entry, err error) {
	ctx, endSpan := tracing.StartRegistrySpan(ctx, tracing.RegistryOperationEnumerate)
	defer func() { endSpan(err) }()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate topic registry: %w", err)
	}

	entries = make([]Entry, 0, len(values))
	for _, payload := range values {
		entry, err := DecodeEntry([]byte(payload))
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

// Ping checks registry reachability with a redis PING.
func (r *RedisRegistry) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// DecodeEntry decodes a registry entry payload, trying CBOR first and
// falling back to JSON. An entry without an ID or title is invalid.
func DecodeEntry(data []byte) (Entry, error) {
	if len(data) == 0 {
		return Entry{}, ErrInvalidEntry
	}

	var entry Entry
	dec := cbor.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&entry); err != nil {
		entry = Entry{}
		if jsonErr := json.Unmarshal(data, &entry); jsonErr != nil {
			return Entry{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
		}
	}

	if entry.ID == "" || entry.Title == "" {
		return Entry{}, ErrInvalidEntry
	}
	return entry, nil
}

// EncodeEntry encodes a registry entry as CBOR, the format registry
// writers produce. Primarily used by ingestion tooling and tests.
func EncodeEntry(entry Entry) ([]byte, error) {
	return cbor.Marshal(entry)
}
