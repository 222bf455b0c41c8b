// Package request turns raw, untyped search parameters into an immutable,
// validated Request. Validation is pure and happens before any I/O.
package request

import (
	"strconv"
	"strings"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/geo"
)

// Search parameter limits.
const (
	MinQueryLength  = 2
	MaxQueryLength  = 100
	DefaultPageSize = 20
	MaxPageSize     = 50
	MinPriceTier    = 1
	MaxPriceTier    = 4
	MinScoreFloor   = 1
	MinScoreCeil    = 10
)

// Sort selects the result ordering rule.
type Sort string

// Supported sort modes.
const (
	SortRelevance Sort = "relevance"
	SortDistance  Sort = "distance"
	SortRecency   Sort = "recency"
)

// IsValid reports whether the sort mode is one of the supported values.
func (s Sort) IsValid() bool {
	return s == SortRelevance || s == SortDistance || s == SortRecency
}

// Origin is the caller's coordinate for distance filtering and ordering.
type Origin struct {
	Latitude  float64
	Longitude float64
}

// Request is a validated, normalized search query.
type Request struct {
	query     string
	district  string  // "" = not applied
	cuisine   string  // "" = not applied
	priceTier int     // 0 = not applied
	minScore  float64 // 0 = not applied
	sort      Sort
	page      int
	pageSize  int
	origin    *Origin
}

// Parameter keys accepted by New.
const (
	keyQuery     = "q"
	keyDistrict  = "district"
	keyCuisine   = "cuisine"
	keyPriceTier = "price_tier"
	keyMinScore  = "min_score"
	keySortBy    = "sort_by"
	keyPage      = "page"
	keyPageSize  = "page_size"
	keyLat       = "lat"
	keyLng       = "lng"
)

// New validates and normalizes raw key-value search parameters.
// Text is trimmed and lower-cased, numeric filters are coerced from string
// and range-checked. sort_by=distance requires both coordinates; a request
// that asks for distance ordering without an origin is rejected rather than
// silently reordered.
func New(raw map[string]string) (Request, error) {
	r := Request{
		sort:     SortRelevance,
		page:     1,
		pageSize: DefaultPageSize,
	}

	q := strings.ToLower(strings.TrimSpace(raw[keyQuery]))
	if len([]rune(q)) < MinQueryLength {
		return Request{}, domain.NewValidationError(keyQuery, "query must be at least 2 characters")
	}
	if len([]rune(q)) > MaxQueryLength {
		return Request{}, domain.NewValidationError(keyQuery, "query must be at most 100 characters")
	}
	r.query = q

	r.district = strings.ToLower(strings.TrimSpace(raw[keyDistrict]))
	r.cuisine = strings.ToLower(strings.TrimSpace(raw[keyCuisine]))

	if v, ok := nonEmpty(raw, keyPriceTier); ok {
		tier, err := strconv.Atoi(v)
		if err != nil || tier < MinPriceTier || tier > MaxPriceTier {
			return Request{}, domain.NewValidationError(keyPriceTier, "price tier must be an integer between 1 and 4")
		}
		r.priceTier = tier
	}

	if v, ok := nonEmpty(raw, keyMinScore); ok {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil || score < MinScoreFloor || score > MinScoreCeil {
			return Request{}, domain.NewValidationError(keyMinScore, "minimum score must be a number between 1 and 10")
		}
		r.minScore = score
	}

	if v, ok := nonEmpty(raw, keySortBy); ok {
		s := Sort(v)
		if s == "score" { // legacy alias kept from the v1 API
			s = SortRelevance
		}
		if !s.IsValid() {
			return Request{}, domain.NewValidationError(keySortBy, "sort must be one of relevance, distance, recency")
		}
		r.sort = s
	}

	if v, ok := nonEmpty(raw, keyPage); ok {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return Request{}, domain.NewValidationError(keyPage, "page must be an integer >= 1")
		}
		r.page = page
	}

	if v, ok := nonEmpty(raw, keyPageSize); ok {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > MaxPageSize {
			return Request{}, domain.NewValidationError(keyPageSize, "page size must be an integer between 1 and 50")
		}
		r.pageSize = size
	}

	origin, err := parseOrigin(raw)
	if err != nil {
		return Request{}, err
	}
	r.origin = origin

	if r.sort == SortDistance && r.origin == nil {
		return Request{}, domain.NewValidationError("coordinates", "sort_by=distance requires both lat and lng")
	}

	return r, nil
}

func parseOrigin(raw map[string]string) (*Origin, error) {
	latStr, hasLat := nonEmpty(raw, keyLat)
	lngStr, hasLng := nonEmpty(raw, keyLng)
	if !hasLat && !hasLng {
		return nil, nil
	}
	if hasLat != hasLng {
		return nil, domain.NewValidationError("coordinates", "lat and lng must be provided together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, domain.NewValidationError(keyLat, "latitude must be a number")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, domain.NewValidationError(keyLng, "longitude must be a number")
	}
	if !geo.ValidateCoordinates(lat, lng) {
		return nil, domain.NewValidationError("coordinates", "latitude must be in [-90,90] and longitude in [-180,180]")
	}

	return &Origin{Latitude: lat, Longitude: lng}, nil
}

func nonEmpty(raw map[string]string, key string) (string, bool) {
	v := strings.TrimSpace(raw[key])
	return v, v != ""
}

// Query returns the normalized search text.
func (r *Request) Query() string { return r.query }

// District returns the district filter ("" = not applied).
func (r *Request) District() string { return r.district }

// Cuisine returns the cuisine tag filter ("" = not applied).
func (r *Request) Cuisine() string { return r.cuisine }

// PriceTier returns the price tier filter (0 = not applied).
func (r *Request) PriceTier() int { return r.priceTier }

// MinScore returns the minimum reputation score filter (0 = not applied).
func (r *Request) MinScore() float64 { return r.minScore }

// Sort returns the ordering rule.
func (r *Request) Sort() Sort { return r.sort }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the page size.
func (r *Request) PageSize() int { return r.pageSize }

// Offset returns the row offset for the current page.
func (r *Request) Offset() int { return (r.page - 1) * r.pageSize }

// Origin returns the caller coordinate (nil when absent).
func (r *Request) Origin() *Origin { return r.origin }

// Fields returns the set fields as a canonical name-to-value map.
// The cache layer derives keys from this map; two semantically identical
// requests always produce identical maps regardless of how the raw input
// was ordered.
func (r *Request) Fields() map[string]string {
	f := map[string]string{
		keyQuery:    r.query,
		keySortBy:   string(r.sort),
		keyPage:     strconv.Itoa(r.page),
		keyPageSize: strconv.Itoa(r.pageSize),
	}
	if r.district != "" {
		f[keyDistrict] = r.district
	}
	if r.cuisine != "" {
		f[keyCuisine] = r.cuisine
	}
	if r.priceTier != 0 {
		f[keyPriceTier] = strconv.Itoa(r.priceTier)
	}
	if r.minScore != 0 {
		f[keyMinScore] = strconv.FormatFloat(r.minScore, 'f', -1, 64)
	}
	if r.origin != nil {
		f[keyLat] = strconv.FormatFloat(r.origin.Latitude, 'f', -1, 64)
		f[keyLng] = strconv.FormatFloat(r.origin.Longitude, 'f', -1, 64)
	}
	return f
}
