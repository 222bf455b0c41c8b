// Package search assembles the response envelope for a normalized search
// request: cache lookup, concurrent primary and count queries, dish
// enrichment, and pagination math.
package search

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/predicate"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/ranking"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/request"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/result"
	"github.com/FeritTasdildiren/iyisiniye/internal/repository/searchcache"
)

// TopDishesPerVenue caps the dish enrichment per result row.
const TopDishesPerVenue = 3

// Service executes venue searches.
type Service struct {
	repo     Repository
	cache    Cache
	requests *prometheus.CounterVec // labels: sort, cache
}

// New creates a search service.
// requests is a counter vec with labels "sort" and "cache"; it may be nil.
func New(repo Repository, cache Cache, requests *prometheus.CounterVec) *Service {
	return &Service{repo: repo, cache: cache, requests: requests}
}

// Search runs a normalized request end to end and reports whether the
// response was served from cache. A miss runs the page and count queries
// concurrently over the same predicate set, then enriches the page rows
// with their best dishes in a single batched query.
func (s *Service) Search(ctx context.Context, req *request.Request) (*result.Response, bool, error) {
	fields := req.Fields()

	var cached result.Response
	if s.cache.Lookup(ctx, searchcache.KindSearch, fields, &cached) {
		s.count(req, "hit")
		return &cached, true, nil
	}

	preds := predicate.Build(req)
	chain := ranking.For(req)

	var (
		page  []result.RankedVenue
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.repo.SearchPage(gctx, preds, chain, req.PageSize(), req.Offset())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, preds)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	if err := s.attachTopDishes(ctx, page); err != nil {
		return nil, false, err
	}

	resp := &result.Response{
		Data:       page,
		Pagination: result.NewPagination(total, req.Page(), req.PageSize()),
		Filters:    result.FiltersFrom(req),
	}

	s.cache.Store(ctx, searchcache.KindSearch, fields, resp)
	s.count(req, "miss")

	return resp, false, nil
}

// attachTopDishes fetches dish scores for the page's venues in one query
// and distributes up to TopDishesPerVenue per row. Rows without scored
// dishes get an empty slice, not null.
func (s *Service) attachTopDishes(ctx context.Context, page []result.RankedVenue) error {
	ids := make([]int64, 0, len(page))
	for i := range page {
		page[i].TopDishes = []result.DishEntry{}
		ids = append(ids, page[i].ID)
	}
	if len(ids) == 0 {
		return nil
	}

	dishes, err := s.repo.TopDishes(ctx, ids)
	if err != nil {
		return fmt.Errorf("enrich top dishes: %w", err)
	}

	byVenue := make(map[int64][]result.DishEntry, len(page))
	// rows arrive ordered by score descending within each venue
	for _, d := range dishes {
		if len(byVenue[d.VenueID]) >= TopDishesPerVenue {
			continue
		}
		byVenue[d.VenueID] = append(byVenue[d.VenueID], dishEntry(d))
	}

	for i := range page {
		if entries, ok := byVenue[page[i].ID]; ok {
			page[i].TopDishes = entries
		}
	}
	return nil
}

func dishEntry(d domain.DishScore) result.DishEntry {
	return result.DishEntry{
		Name:        d.DishName,
		Score:       d.Score,
		ReviewCount: d.ReviewCount,
	}
}

func (s *Service) count(req *request.Request, cache string) {
	if s.requests != nil {
		s.requests.WithLabelValues(string(req.Sort()), cache).Inc()
	}
}
