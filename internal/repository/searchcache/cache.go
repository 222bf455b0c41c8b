// Package searchcache is the cache coherency layer: deterministic key
// derivation, per-kind TTL policy, and pattern invalidation hooks for the
// mutation-producing collaborators. The cache is advisory, not
// authoritative; every backend failure is absorbed here and reported as a
// miss so an unavailable cache degrades latency, never availability.
package searchcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/FeritTasdildiren/iyisiniye/internal/db"
)

// Kind buckets queries for TTL policy. TTLs are per query kind, not per
// query instance.
type Kind string

// Query kinds.
const (
	KindSearch  Kind = "search"  // bulk search results
	KindDetail  Kind = "detail"  // single-entity detail lookups
	KindSuggest Kind = "suggest" // short-prefix suggestion lookups
)

// Default TTLs per kind. Suggestions churn far less than search results and
// their query space is small and reusable, hence the longer window.
const (
	DefaultSearchTTL  = 300 * time.Second
	DefaultDetailTTL  = 900 * time.Second
	DefaultSuggestTTL = 3600 * time.Second
)

// TTLConfig holds the per-kind expiry windows.
type TTLConfig struct {
	Search  time.Duration
	Detail  time.Duration
	Suggest time.Duration
}

// DefaultTTLs returns the standard TTL policy.
func DefaultTTLs() TTLConfig {
	return TTLConfig{
		Search:  DefaultSearchTTL,
		Detail:  DefaultDetailTTL,
		Suggest: DefaultSuggestTTL,
	}
}

// store is the consumer interface for the cache backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
}

// Cache derives keys, applies TTL policy, and exposes invalidation.
type Cache struct {
	store   store
	prefix  string
	ttls    TTLConfig
	lookups *prometheus.CounterVec // labels: kind, outcome
	logger  *zap.Logger
}

// New creates the cache coherency layer.
// lookups is a counter vec with labels "kind" and "outcome", passed explicitly.
func New(s store, prefix string, ttls TTLConfig, lookups *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{store: s, prefix: prefix, ttls: ttls, lookups: lookups, logger: logger}
}

// Key derives a deterministic cache key from a query's canonical fields.
// Fields are ordered lexicographically by name before hashing, so two
// semantically identical requests yield the same key no matter how the raw
// input was ordered. Names and values are length-prefixed into the hasher:
// field values are free text, and a plain separator join would let a
// crafted value alias another field set. xxhash is collision-resistant
// enough for this key space; secrecy is not a requirement.
func (c *Cache) Key(kind Kind, fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	d := xxhash.New()
	for _, name := range names {
		val := fields[name]
		fmt.Fprintf(d, "%d:%s%d:%s", len(name), name, len(val), val)
	}

	return fmt.Sprintf("%s%s:%016x", c.prefix, kind, d.Sum64())
}

// Lookup reads a cached payload into out. Returns false on miss, on any
// backend error, and on payloads that no longer deserialize.
func (c *Cache) Lookup(ctx context.Context, kind Kind, fields map[string]string, out any) bool {
	key := c.Key(kind, fields)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("cache lookup failed, treating as miss",
				zap.String("key", key), zap.Error(err))
		}
		c.incLookup(kind, "miss")
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("cache payload unreadable, treating as miss",
			zap.String("key", key), zap.Error(err))
		c.incLookup(kind, "miss")
		return false
	}

	c.incLookup(kind, "hit")
	return true
}

// Store caches a payload under the kind's TTL. Failures are logged and
// dropped; a store that never lands only costs the next caller a query.
func (c *Cache) Store(ctx context.Context, kind Kind, fields map[string]string, val any) {
	key := c.Key(kind, fields)

	data, err := json.Marshal(val)
	if err != nil {
		c.logger.Warn("cache store skipped, payload not serializable",
			zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.store.SetWithTTL(ctx, key, data, c.ttlFor(kind)); err != nil {
		c.logger.Warn("cache store failed",
			zap.String("key", key), zap.Error(err))
	}
}

// InvalidateVenue drops every cached payload a venue mutation can stale:
// all bulk search pages, all suggestions, and the venue's detail entry.
// Called by the scraping collaborator after a venue upsert.
func (c *Cache) InvalidateVenue(ctx context.Context, slug string) int {
	return c.invalidate(ctx,
		c.kindPattern(KindSearch),
		c.kindPattern(KindSuggest),
		c.Key(KindDetail, DetailFields(slug)),
	)
}

// InvalidateDishScores drops payloads that embed dish scores: search pages
// and the venue's detail entry. Suggestions carry no scores and survive.
// Called by the NLP collaborator after a score recompute.
func (c *Cache) InvalidateDishScores(ctx context.Context, slug string) int {
	return c.invalidate(ctx,
		c.kindPattern(KindSearch),
		c.Key(KindDetail, DetailFields(slug)),
	)
}

// invalidate deletes keys by glob pattern, absorbing backend errors.
func (c *Cache) invalidate(ctx context.Context, patterns ...string) int {
	var deleted int
	for _, p := range patterns {
		n, err := c.store.DeleteByPattern(ctx, p)
		deleted += n
		if err != nil {
			c.logger.Warn("cache invalidation incomplete",
				zap.String("pattern", p), zap.Error(err))
		}
	}
	return deleted
}

func (c *Cache) kindPattern(kind Kind) string {
	return c.prefix + string(kind) + ":*"
}

func (c *Cache) ttlFor(kind Kind) time.Duration {
	switch kind {
	case KindDetail:
		return c.ttls.Detail
	case KindSuggest:
		return c.ttls.Suggest
	default:
		return c.ttls.Search
	}
}

func (c *Cache) incLookup(kind Kind, outcome string) {
	if c.lookups != nil {
		c.lookups.WithLabelValues(string(kind), outcome).Inc()
	}
}

// DetailFields is the canonical field set of a detail lookup.
func DetailFields(slug string) map[string]string {
	return map[string]string{"slug": slug}
}

// SuggestFields is the canonical field set of a suggestion lookup.
func SuggestFields(prefix string, limit int) map[string]string {
	return map[string]string{"prefix": prefix, "limit": fmt.Sprintf("%d", limit)}
}
