package chi

import (
	"context"

	chiRouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/predicate"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/ranking"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/result"
	"github.com/FeritTasdildiren/iyisiniye/internal/repository/searchcache"
	healthuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/health"
	searchuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/search"
	suggestuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/suggest"
	venueuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/venue"
)

// stubRepo satisfies every storage contract the handlers reach.
type stubRepo struct {
	pageFn    func(ctx context.Context, preds []predicate.Predicate, chain ranking.Chain, limit, offset int) ([]result.RankedVenue, error)
	countFn   func(ctx context.Context, preds []predicate.Predicate) (int, error)
	topFn     func(ctx context.Context, venueIDs []int64) ([]domain.DishScore, error)
	bySlugFn  func(ctx context.Context, slug string) (*result.VenueDetail, error)
	suggestFn func(ctx context.Context, prefix string, limit int) ([]result.Suggestion, error)
}

func (s *stubRepo) SearchPage(
	ctx context.Context, preds []predicate.Predicate, chain ranking.Chain, limit, offset int,
) ([]result.RankedVenue, error) {
	if s.pageFn == nil {
		return nil, nil
	}
	return s.pageFn(ctx, preds, chain, limit, offset)
}

func (s *stubRepo) Count(ctx context.Context, preds []predicate.Predicate) (int, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx, preds)
}

func (s *stubRepo) TopDishes(ctx context.Context, venueIDs []int64) ([]domain.DishScore, error) {
	if s.topFn == nil {
		return nil, nil
	}
	return s.topFn(ctx, venueIDs)
}

func (s *stubRepo) BySlug(ctx context.Context, slug string) (*result.VenueDetail, error) {
	if s.bySlugFn == nil {
		return nil, domain.ErrNotFound
	}
	return s.bySlugFn(ctx, slug)
}

func (s *stubRepo) SuggestNames(ctx context.Context, prefix string, limit int) ([]result.Suggestion, error) {
	if s.suggestFn == nil {
		return nil, nil
	}
	return s.suggestFn(ctx, prefix, limit)
}

// noCache always misses; invalidations report the configured eviction count.
type noCache struct {
	evicted       int
	venueSlugs    []string
	dishScoreSlug []string
}

func (c *noCache) Lookup(context.Context, searchcache.Kind, map[string]string, any) bool {
	return false
}

func (c *noCache) Store(context.Context, searchcache.Kind, map[string]string, any) {}

func (c *noCache) InvalidateVenue(_ context.Context, slug string) int {
	c.venueSlugs = append(c.venueSlugs, slug)
	return c.evicted
}

func (c *noCache) InvalidateDishScores(_ context.Context, slug string) int {
	c.dishScoreSlug = append(c.dishScoreSlug, slug)
	return c.evicted
}

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(context.Context) error { return p.err }

// testRouter wires a full router over the stub repo, mirroring main.
func testRouter(repo *stubRepo, cache *noCache, keys []string, pingers ...*stubPinger) *chiRouter.Mux {
	dbPing := &stubPinger{}
	cachePing := &stubPinger{}
	if len(pingers) > 0 {
		dbPing = pingers[0]
	}
	if len(pingers) > 1 {
		cachePing = pingers[1]
	}

	server := NewServer(
		searchuc.New(repo, cache, nil),
		venueuc.New(repo, cache, nil),
		suggestuc.New(repo, cache, 0),
		healthuc.New(dbPing, cachePing),
		zap.NewNop(),
	)

	r := chiRouter.NewRouter()
	server.Routes(r, keys)
	return r
}
