package iyisiniye

import (
	"time"

	"go.uber.org/zap"

	"github.com/FeritTasdildiren/iyisiniye/internal/repository/searchcache"
)

type clientConfig struct {
	dsn      string
	maxConns int

	cacheAddrs    []string
	cacheUsername string
	cachePassword string
	cacheDB       int
	keyPrefix     string
	ttls          searchcache.TTLConfig

	logger *zap.Logger
}

// Option configures the Client.
type Option func(*clientConfig)

// WithPostgres sets the storage connection string. Required.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) { c.dsn = dsn }
}

// WithMaxConns sets the storage pool size.
func WithMaxConns(n int) Option {
	return func(c *clientConfig) { c.maxConns = n }
}

// WithCache enables the cache coherency layer over the given backend addrs.
func WithCache(addrs ...string) Option {
	return func(c *clientConfig) { c.cacheAddrs = addrs }
}

// WithCacheAuth sets cache backend credentials.
func WithCacheAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.cacheUsername = username
		c.cachePassword = password
	}
}

// WithCacheDB selects the cache backend logical database.
func WithCacheDB(db int) Option {
	return func(c *clientConfig) { c.cacheDB = db }
}

// WithCacheKeyPrefix overrides the cache key namespace.
func WithCacheKeyPrefix(prefix string) Option {
	return func(c *clientConfig) { c.keyPrefix = prefix }
}

// WithTTLs overrides the per-kind cache expiry windows.
func WithTTLs(search, detail, suggest time.Duration) Option {
	return func(c *clientConfig) {
		c.ttls = searchcache.TTLConfig{Search: search, Detail: detail, Suggest: suggest}
	}
}

// WithLogger sets the logger for cache degradation warnings.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}
