// Package suggest serves short-prefix venue name suggestions. The query
// space is tiny and slow-moving, so these payloads get the longest TTL.
package suggest

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/result"
	"github.com/FeritTasdildiren/iyisiniye/internal/repository/searchcache"
)

// Prefix and limit bounds.
const (
	MinPrefixLen = 2
	DefaultLimit = 10
	MaxLimit     = 25
)

// Service handles venue name suggestions.
type Service struct {
	repo         Repository
	cache        Cache
	defaultLimit int
}

// New creates a suggestion service. defaultLimit is applied when a caller
// passes no limit; values outside (0, MaxLimit] fall back to DefaultLimit.
func New(repo Repository, cache Cache, defaultLimit int) *Service {
	if defaultLimit <= 0 || defaultLimit > MaxLimit {
		defaultLimit = DefaultLimit
	}
	return &Service{repo: repo, cache: cache, defaultLimit: defaultLimit}
}

// Suggest returns venue names starting with prefix, most-reviewed first,
// and reports whether the payload came from cache. limit <= 0 takes the
// configured default; oversized limits clamp rather than fail.
func (s *Service) Suggest(ctx context.Context, prefix string, limit int) (*result.SuggestResponse, bool, error) {
	prefix = strings.TrimSpace(strings.ToLower(prefix))
	if utf8.RuneCountInString(prefix) < MinPrefixLen {
		return nil, false, domain.NewValidationError("prefix", "must be at least 2 characters")
	}

	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	fields := searchcache.SuggestFields(prefix, limit)

	var cached result.SuggestResponse
	if s.cache.Lookup(ctx, searchcache.KindSuggest, fields, &cached) {
		return &cached, true, nil
	}

	suggestions, err := s.repo.SuggestNames(ctx, prefix, limit)
	if err != nil {
		return nil, false, err
	}
	if suggestions == nil {
		suggestions = []result.Suggestion{}
	}

	resp := &result.SuggestResponse{Prefix: prefix, Suggestions: suggestions}
	s.cache.Store(ctx, searchcache.KindSuggest, fields, resp)

	return resp, false, nil
}
