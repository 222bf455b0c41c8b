// Package iyisiniye is the embedded Go client for the venue search engine.
// It wires the same storage, cache, and ranking stack the HTTP server runs,
// for callers that live next to the database (batch jobs, the scraper, the
// scoring pipeline).
package iyisiniye

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/FeritTasdildiren/iyisiniye/internal/db"
	dbPostgres "github.com/FeritTasdildiren/iyisiniye/internal/db/postgres"
	dbRedis "github.com/FeritTasdildiren/iyisiniye/internal/db/redis"
	"github.com/FeritTasdildiren/iyisiniye/internal/repository/searchcache"
	venuerepo "github.com/FeritTasdildiren/iyisiniye/internal/repository/venue"
	searchuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/search"
	suggestuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/suggest"
	venueuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/venue"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the iyisiniye SDK entry point.
type Client struct {
	pool       *dbPostgres.Pool
	store      *dbRedis.Store
	searchSvc  *searchuc.Service
	venueSvc   *venueuc.Service
	suggestSvc *suggestuc.Service
}

// New creates a Client and connects to the database. The cache is optional;
// without WithCache every query goes straight to storage.
// The provided context bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		maxConns:  10,
		keyPrefix: "iyisiniye:",
		ttls:      searchcache.DefaultTTLs(),
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.dsn == "" {
		return nil, errors.New("iyisiniye: postgres dsn required (use WithPostgres)")
	}

	pool, err := dbPostgres.NewPool(ctx, dbPostgres.Config{
		DSN:      cfg.dsn,
		MaxConns: cfg.maxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("iyisiniye: create postgres pool: %w", err)
	}
	if err := pool.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		pool.Close()
		return nil, fmt.Errorf("iyisiniye: postgres not ready: %w", err)
	}

	var store *dbRedis.Store
	if len(cfg.cacheAddrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Username: cfg.cacheUsername,
			Password: cfg.cachePassword,
			DB:       cfg.cacheDB,
		})
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("iyisiniye: create cache store: %w", err)
		}
	}

	return wireClient(pool, store, cfg), nil
}

func wireClient(pool *dbPostgres.Pool, store *dbRedis.Store, cfg *clientConfig) *Client {
	repo := venuerepo.New(pool, nil)

	var cache *searchcache.Cache
	if store != nil {
		cache = searchcache.New(store, cfg.keyPrefix, cfg.ttls, nil, cfg.logger)
	} else {
		cache = searchcache.New(noopStore{}, cfg.keyPrefix, cfg.ttls, nil, cfg.logger)
	}

	return &Client{
		pool:       pool,
		store:      store,
		searchSvc:  searchuc.New(repo, cache, nil),
		venueSvc:   venueuc.New(repo, cache, nil),
		suggestSvc: suggestuc.New(repo, cache, 0),
	}
}

// Close releases the database and cache connections.
func (c *Client) Close() {
	c.pool.Close()
	if c.store != nil {
		c.store.Close()
	}
}

// Venue fetches a venue by slug with its full scored-dish list.
func (c *Client) Venue(ctx context.Context, slug string) (*VenueDetail, error) {
	detail, _, err := c.venueSvc.Detail(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("venue %q: %w", slug, err)
	}
	return venueDetailFromInternal(detail), nil
}

// Suggest returns venue names starting with prefix.
func (c *Client) Suggest(ctx context.Context, prefix string, limit int) ([]Suggestion, error) {
	resp, _, err := c.suggestSvc.Suggest(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest %q: %w", prefix, err)
	}
	out := make([]Suggestion, len(resp.Suggestions))
	for i, s := range resp.Suggestions {
		out[i] = Suggestion{Slug: s.Slug, Name: s.Name}
	}
	return out, nil
}

// VenueChanged drops every cached payload a venue mutation can stale.
// The scraper calls this after each upsert.
func (c *Client) VenueChanged(ctx context.Context, slug string) (int, error) {
	n, err := c.venueSvc.VenueChanged(ctx, slug)
	if err != nil {
		return 0, fmt.Errorf("invalidate venue %q: %w", slug, err)
	}
	return n, nil
}

// DishScoresRecomputed drops score-bearing cached payloads for a venue.
// The scoring batch calls this after each recompute.
func (c *Client) DishScoresRecomputed(ctx context.Context, slug string) (int, error) {
	n, err := c.venueSvc.DishScoresRecomputed(ctx, slug)
	if err != nil {
		return 0, fmt.Errorf("invalidate dish scores %q: %w", slug, err)
	}
	return n, nil
}

// noopStore is the cache backend used when no cache is configured; every
// read misses and writes vanish.
type noopStore struct{}

func (noopStore) Get(context.Context, string) ([]byte, error) {
	return nil, db.ErrKeyNotFound
}

func (noopStore) SetWithTTL(context.Context, string, []byte, time.Duration) error { return nil }

func (noopStore) DeleteByPattern(context.Context, string) (int, error) { return 0, nil }
