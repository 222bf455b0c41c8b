// Package predicate models search filters as a tagged-variant list that a
// storage translator compiles to the target query language. Keeping the
// variants free of SQL keeps filter composition testable on its own.
package predicate

import "github.com/FeritTasdildiren/iyisiniye/internal/domain/search/request"

// TrigramThreshold is the minimum pg_trgm similarity for a fuzzy name match.
const TrigramThreshold = 0.2

// RadiusMeters is the fixed geo filter radius.
const RadiusMeters = 10_000.0

// Predicate is a single filter clause. All predicates of a set are conjoined.
type Predicate interface {
	isPredicate()
}

// Active restricts results to venues with the activation flag set.
// Every predicate set starts with it; it is never bypassable.
type Active struct{}

// TextMatch combines two independent signals with OR semantics: a full-text
// match over normalized name+address, or a trigram similarity above
// Threshold against the name alone. FTS misses typos, trigram misses stemmed
// variants; the union covers both.
type TextMatch struct {
	Query     string
	Threshold float64
}

// District is a case-insensitive exact district match.
type District struct {
	Name string
}

// Cuisine requires the tag to appear in the venue's cuisine-tag set.
type Cuisine struct {
	Tag string
}

// PriceTier is an exact price tier match.
type PriceTier struct {
	Tier int
}

// MinScore keeps venues whose reputation score is at least Score.
// Unrated venues never satisfy it.
type MinScore struct {
	Score float64
}

// GeoRadius keeps venues within Meters of the origin, measured geodesically
// over the storage engine's geography type.
type GeoRadius struct {
	Latitude  float64
	Longitude float64
	Meters    float64
}

func (Active) isPredicate()    {}
func (TextMatch) isPredicate() {}
func (District) isPredicate()  {}
func (Cuisine) isPredicate()   {}
func (PriceTier) isPredicate() {}
func (MinScore) isPredicate()  {}
func (GeoRadius) isPredicate() {}

// Build produces the ordered predicate set for a validated request.
// The set is valid even when only Active applies; a vacuous filter set is
// the storage layer's problem, not a short-circuit here.
func Build(req *request.Request) []Predicate {
	preds := []Predicate{
		Active{},
		TextMatch{Query: req.Query(), Threshold: TrigramThreshold},
	}
	if d := req.District(); d != "" {
		preds = append(preds, District{Name: d})
	}
	if c := req.Cuisine(); c != "" {
		preds = append(preds, Cuisine{Tag: c})
	}
	if t := req.PriceTier(); t != 0 {
		preds = append(preds, PriceTier{Tier: t})
	}
	if s := req.MinScore(); s != 0 {
		preds = append(preds, MinScore{Score: s})
	}
	if o := req.Origin(); o != nil {
		preds = append(preds, GeoRadius{
			Latitude:  o.Latitude,
			Longitude: o.Longitude,
			Meters:    RadiusMeters,
		})
	}
	return preds
}
