package suggest

import (
	"context"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/result"
	"github.com/FeritTasdildiren/iyisiniye/internal/repository/searchcache"
)

// Repository defines the storage contract for name suggestions.
type Repository interface {
	SuggestNames(ctx context.Context, prefix string, limit int) ([]result.Suggestion, error)
}

// Cache is the failure-silent coherency layer contract.
type Cache interface {
	Lookup(ctx context.Context, kind searchcache.Kind, fields map[string]string, out any) bool
	Store(ctx context.Context, kind searchcache.Kind, fields map[string]string, val any)
}
