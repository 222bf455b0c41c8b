// Package result materializes the response envelope: ranked rows, the
// pagination block, and a verbatim echo of the applied filters. The types
// round-trip through JSON unchanged, which the cache layer relies on.
package result

import (
	"time"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/request"
)

// DishEntry is one of a venue's best-scoring dishes.
type DishEntry struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	ReviewCount int     `json:"review_count"`
}

// RankedVenue is a venue projected into a search result. DistanceMeters is
// present only when the request supplied an origin coordinate.
type RankedVenue struct {
	ID             int64       `json:"id"`
	Slug           string      `json:"slug"`
	Name           string      `json:"name"`
	Address        string      `json:"address"`
	District       string      `json:"district"`
	CuisineTags    []string    `json:"cuisine_tags"`
	PriceTier      int         `json:"price_tier"`
	Score          *float64    `json:"score"`
	ReviewCount    int         `json:"review_count"`
	Latitude       *float64    `json:"lat"`
	Longitude      *float64    `json:"lng"`
	DistanceMeters *float64    `json:"distance_m,omitempty"`
	TopDishes      []DishEntry `json:"top_dishes"`
}

// Pagination describes the page window of a response.
type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagination computes the pagination block for a total row count.
func NewPagination(total, page, pageSize int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Pagination{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// AppliedFilters echoes the request filters verbatim. Unset optional filters
// are null so the caller can tell "not applied" from "applied but vacuous".
type AppliedFilters struct {
	Query     string   `json:"q"`
	District  *string  `json:"district"`
	Cuisine   *string  `json:"cuisine"`
	PriceTier *int     `json:"price_tier"`
	MinScore  *float64 `json:"min_score"`
	SortBy    string   `json:"sort_by"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
}

// FiltersFrom builds the filter echo for a validated request.
func FiltersFrom(req *request.Request) AppliedFilters {
	f := AppliedFilters{
		Query:  req.Query(),
		SortBy: string(req.Sort()),
	}
	if d := req.District(); d != "" {
		f.District = &d
	}
	if c := req.Cuisine(); c != "" {
		f.Cuisine = &c
	}
	if t := req.PriceTier(); t != 0 {
		f.PriceTier = &t
	}
	if s := req.MinScore(); s != 0 {
		f.MinScore = &s
	}
	if o := req.Origin(); o != nil {
		lat, lng := o.Latitude, o.Longitude
		f.Latitude = &lat
		f.Longitude = &lng
	}
	return f
}

// Response is the full search envelope.
type Response struct {
	Data       []RankedVenue  `json:"data"`
	Pagination Pagination     `json:"pagination"`
	Filters    AppliedFilters `json:"filters"`
}

// VenueDetail is the single-entity lookup payload: the venue plus its full
// scored-dish list in descending score order.
type VenueDetail struct {
	RankedVenue
	CreatedAt time.Time   `json:"created_at"`
	Dishes    []DishEntry `json:"dishes"`
}

// Suggestion is a short-prefix venue name suggestion.
type Suggestion struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// SuggestResponse is the suggestion lookup payload.
type SuggestResponse struct {
	Prefix      string       `json:"prefix"`
	Suggestions []Suggestion `json:"suggestions"`
}
