package venue

import (
	"context"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/result"
	"github.com/FeritTasdildiren/iyisiniye/internal/repository/searchcache"
)

// Repository defines the storage contract for detail lookups.
type Repository interface {
	BySlug(ctx context.Context, slug string) (*result.VenueDetail, error)
}

// Cache is the coherency layer contract: failure-silent reads and writes
// plus the entity-scoped invalidation hooks.
type Cache interface {
	Lookup(ctx context.Context, kind searchcache.Kind, fields map[string]string, out any) bool
	Store(ctx context.Context, kind searchcache.Kind, fields map[string]string, val any)
	InvalidateVenue(ctx context.Context, slug string) int
	InvalidateDishScores(ctx context.Context, slug string) int
}
