package search

import (
	"context"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/predicate"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/ranking"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/result"
	"github.com/FeritTasdildiren/iyisiniye/internal/repository/searchcache"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	SearchPage(
		ctx context.Context,
		preds []predicate.Predicate, chain ranking.Chain,
		limit, offset int,
	) ([]result.RankedVenue, error)

	Count(ctx context.Context, preds []predicate.Predicate) (int, error)

	TopDishes(ctx context.Context, venueIDs []int64) ([]domain.DishScore, error)
}

// Cache is the coherency layer contract. Both methods are failure-silent:
// Lookup reports a miss on any backend error and Store never raises.
type Cache interface {
	Lookup(ctx context.Context, kind searchcache.Kind, fields map[string]string, out any) bool
	Store(ctx context.Context, kind searchcache.Kind, fields map[string]string, val any)
}
