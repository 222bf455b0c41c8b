package iyisiniye

import (
	"time"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/result"
)

// Dish is one of a venue's scored dishes.
type Dish struct {
	Name        string
	Score       float64
	ReviewCount int
}

// Venue is a search result row.
type Venue struct {
	ID             int64
	Slug           string
	Name           string
	Address        string
	District       string
	CuisineTags    []string
	PriceTier      int
	Score          *float64
	ReviewCount    int
	Latitude       *float64
	Longitude      *float64
	DistanceMeters *float64
	TopDishes      []Dish
}

// Pagination describes the page window of a search.
type Pagination struct {
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// SearchPage is one page of ranked venues.
type SearchPage struct {
	Venues     []Venue
	Pagination Pagination
	CacheHit   bool
}

// VenueDetail is a single venue with its full scored-dish list.
type VenueDetail struct {
	Venue
	CreatedAt time.Time
	Dishes    []Dish
}

// Suggestion is a venue name suggestion.
type Suggestion struct {
	Slug string
	Name string
}

func venueFromInternal(r *result.RankedVenue) Venue {
	dishes := make([]Dish, len(r.TopDishes))
	for i, d := range r.TopDishes {
		dishes[i] = Dish{Name: d.Name, Score: d.Score, ReviewCount: d.ReviewCount}
	}
	return Venue{
		ID:             r.ID,
		Slug:           r.Slug,
		Name:           r.Name,
		Address:        r.Address,
		District:       r.District,
		CuisineTags:    r.CuisineTags,
		PriceTier:      r.PriceTier,
		Score:          r.Score,
		ReviewCount:    r.ReviewCount,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		DistanceMeters: r.DistanceMeters,
		TopDishes:      dishes,
	}
}

func searchPageFromInternal(resp *result.Response, hit bool) *SearchPage {
	venues := make([]Venue, len(resp.Data))
	for i := range resp.Data {
		venues[i] = venueFromInternal(&resp.Data[i])
	}
	return &SearchPage{
		Venues: venues,
		Pagination: Pagination{
			Total:      resp.Pagination.Total,
			Page:       resp.Pagination.Page,
			PageSize:   resp.Pagination.PageSize,
			TotalPages: resp.Pagination.TotalPages,
			HasNext:    resp.Pagination.HasNext,
			HasPrev:    resp.Pagination.HasPrev,
		},
		CacheHit: hit,
	}
}

func venueDetailFromInternal(d *result.VenueDetail) *VenueDetail {
	dishes := make([]Dish, len(d.Dishes))
	for i, dd := range d.Dishes {
		dishes[i] = Dish{Name: dd.Name, Score: dd.Score, ReviewCount: dd.ReviewCount}
	}
	return &VenueDetail{
		Venue:     venueFromInternal(&d.RankedVenue),
		CreatedAt: d.CreatedAt,
		Dishes:    dishes,
	}
}
