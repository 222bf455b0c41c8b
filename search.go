package iyisiniye

import (
	"context"
	"fmt"
	"strconv"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/request"
)

// Search starts a fluent search query.
//
//	page, err := client.Search("kebap").District("kadikoy").MinScore(8).Do(ctx)
func (c *Client) Search(query string) *SearchBuilder {
	return &SearchBuilder{client: c, query: query}
}

// SearchBuilder is a fluent builder for venue search queries.
type SearchBuilder struct {
	client *Client

	query     string
	district  string
	cuisine   string
	priceTier int
	minScore  float64
	sortBy    string
	page      int
	pageSize  int

	hasOrigin bool
	lat, lng  float64
}

// District filters to a single district, case-insensitive.
func (b *SearchBuilder) District(name string) *SearchBuilder {
	b.district = name
	return b
}

// Cuisine filters to venues tagged with the cuisine.
func (b *SearchBuilder) Cuisine(tag string) *SearchBuilder {
	b.cuisine = tag
	return b
}

// PriceTier filters to an exact price tier (1 to 4).
func (b *SearchBuilder) PriceTier(tier int) *SearchBuilder {
	b.priceTier = tier
	return b
}

// MinScore filters to venues scoring at least s (1 to 10).
func (b *SearchBuilder) MinScore(s float64) *SearchBuilder {
	b.minScore = s
	return b
}

// SortBy sets the ordering: relevance, distance, or recency.
func (b *SearchBuilder) SortBy(sort string) *SearchBuilder {
	b.sortBy = sort
	return b
}

// Near sets the origin for the 10km radius filter and distance ordering.
func (b *SearchBuilder) Near(lat, lng float64) *SearchBuilder {
	b.hasOrigin = true
	b.lat = lat
	b.lng = lng
	return b
}

// Page selects the 1-based result page.
func (b *SearchBuilder) Page(n int) *SearchBuilder {
	b.page = n
	return b
}

// PageSize sets rows per page (1 to 50).
func (b *SearchBuilder) PageSize(n int) *SearchBuilder {
	b.pageSize = n
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) (*SearchPage, error) {
	req, err := request.New(b.raw())
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	resp, hit, err := b.client.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return searchPageFromInternal(resp, hit), nil
}

// raw lowers the builder state to the normalizer's parameter form.
func (b *SearchBuilder) raw() map[string]string {
	raw := map[string]string{"q": b.query}
	if b.district != "" {
		raw["district"] = b.district
	}
	if b.cuisine != "" {
		raw["cuisine"] = b.cuisine
	}
	if b.priceTier != 0 {
		raw["price_tier"] = strconv.Itoa(b.priceTier)
	}
	if b.minScore != 0 {
		raw["min_score"] = strconv.FormatFloat(b.minScore, 'f', -1, 64)
	}
	if b.sortBy != "" {
		raw["sort_by"] = b.sortBy
	}
	if b.page != 0 {
		raw["page"] = strconv.Itoa(b.page)
	}
	if b.pageSize != 0 {
		raw["page_size"] = strconv.Itoa(b.pageSize)
	}
	if b.hasOrigin {
		raw["lat"] = strconv.FormatFloat(b.lat, 'f', -1, 64)
		raw["lng"] = strconv.FormatFloat(b.lng, 'f', -1, 64)
	}
	return raw
}
