// Package venue serves single-venue detail lookups and receives the
// invalidation signals from the mutation-producing collaborators: the
// scraper after a venue upsert, the scoring batch after a dish recompute.
package venue

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/result"
	"github.com/FeritTasdildiren/iyisiniye/internal/repository/searchcache"
)

// Service handles venue detail reads and cache invalidation triggers.
type Service struct {
	repo          Repository
	cache         Cache
	invalidations *prometheus.CounterVec // label: trigger
}

// New creates a venue service. invalidations may be nil.
func New(repo Repository, cache Cache, invalidations *prometheus.CounterVec) *Service {
	return &Service{repo: repo, cache: cache, invalidations: invalidations}
}

// Detail returns a venue with its full scored-dish list and reports whether
// the payload came from cache. Unknown and inactive slugs both surface as
// ErrNotFound.
func (s *Service) Detail(ctx context.Context, slug string) (*result.VenueDetail, bool, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, false, domain.NewValidationError("slug", "must not be empty")
	}

	fields := searchcache.DetailFields(slug)

	var cached result.VenueDetail
	if s.cache.Lookup(ctx, searchcache.KindDetail, fields, &cached) {
		return &cached, true, nil
	}

	detail, err := s.repo.BySlug(ctx, slug)
	if err != nil {
		return nil, false, err
	}

	s.cache.Store(ctx, searchcache.KindDetail, fields, detail)
	return detail, false, nil
}

// VenueChanged is the upsert hook. It drops every cached payload the
// mutation can stale and returns the number of evicted entries.
func (s *Service) VenueChanged(ctx context.Context, slug string) (int, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return 0, domain.NewValidationError("slug", "must not be empty")
	}
	s.countInvalidation("venue")
	return s.cache.InvalidateVenue(ctx, slug), nil
}

// DishScoresRecomputed is the scoring-batch hook. Suggestion entries carry
// no scores and are left intact.
func (s *Service) DishScoresRecomputed(ctx context.Context, slug string) (int, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return 0, domain.NewValidationError("slug", "must not be empty")
	}
	s.countInvalidation("dish_scores")
	return s.cache.InvalidateDishScores(ctx, slug), nil
}

func (s *Service) countInvalidation(trigger string) {
	if s.invalidations != nil {
		s.invalidations.WithLabelValues(trigger).Inc()
	}
}
