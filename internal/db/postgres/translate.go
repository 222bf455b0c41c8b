package postgres

import (
	"fmt"
	"strings"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/predicate"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/ranking"
)

// venueColumns is the projection shared by the search and detail queries.
// Coordinates are extracted from the geography column; distance is appended
// separately because it depends on the request origin.
const venueColumns = `v.id, v.slug, v.name, coalesce(v.address, ''), coalesce(v.district, ''),
	coalesce(v.cuisine_tags, '{}'), coalesce(v.price_tier, 0), v.score, coalesce(v.review_count, 0),
	ST_Y(v.location::geometry), ST_X(v.location::geometry),
	v.active, v.created_at`

// Translation compiles a predicate set into a WHERE clause with positional
// arguments, remembering the origin placeholders for the distance projection.
type Translation struct {
	Where  string
	Args   []any
	latArg int // placeholder index of the origin latitude, 0 when absent
	lngArg int
}

// HasOrigin reports whether the predicate set carried a geo origin.
func (t *Translation) HasOrigin() bool { return t.latArg != 0 }

// Translate compiles predicates to SQL fragments conjoined with AND.
func Translate(preds []predicate.Predicate) (*Translation, error) {
	if len(preds) == 0 {
		return nil, fmt.Errorf("empty predicate set")
	}

	t := &Translation{}
	frags := make([]string, 0, len(preds))

	arg := func(v any) int {
		t.Args = append(t.Args, v)
		return len(t.Args)
	}

	for _, p := range preds {
		switch v := p.(type) {
		case predicate.Active:
			frags = append(frags, "v.active = TRUE")
		case predicate.TextMatch:
			q := arg(v.Query)
			th := arg(v.Threshold)
			frags = append(frags, fmt.Sprintf(
				"(to_tsvector('turkish', unaccent(coalesce(v.name, '') || ' ' || coalesce(v.address, ''))) @@ plainto_tsquery('turkish', unaccent($%d)) OR similarity(v.name, $%d) > $%d)",
				q, q, th))
		case predicate.District:
			frags = append(frags, fmt.Sprintf("lower(v.district) = $%d", arg(v.Name)))
		case predicate.Cuisine:
			frags = append(frags, fmt.Sprintf("$%d = ANY(v.cuisine_tags)", arg(v.Tag)))
		case predicate.PriceTier:
			frags = append(frags, fmt.Sprintf("v.price_tier = $%d", arg(v.Tier)))
		case predicate.MinScore:
			frags = append(frags, fmt.Sprintf("v.score >= $%d", arg(v.Score)))
		case predicate.GeoRadius:
			lng := arg(v.Longitude)
			lat := arg(v.Latitude)
			m := arg(v.Meters)
			t.lngArg, t.latArg = lng, lat
			frags = append(frags, fmt.Sprintf(
				"ST_DWithin(v.location, ST_SetSRID(ST_Point($%d, $%d), 4326)::geography, $%d)",
				lng, lat, m))
		default:
			return nil, fmt.Errorf("unknown predicate type %T", p)
		}
	}

	t.Where = strings.Join(frags, " AND ")
	return t, nil
}

// OrderBy renders an ordering chain.
func OrderBy(chain ranking.Chain) string {
	terms := make([]string, 0, len(chain))
	for _, term := range chain {
		expr := columnFor(term.Key)
		dir := "ASC"
		if term.Direction == ranking.Desc {
			dir = "DESC"
		}
		s := expr + " " + dir
		if term.NullsLast {
			s += " NULLS LAST"
		}
		terms = append(terms, s)
	}
	return strings.Join(terms, ", ")
}

func columnFor(key ranking.Key) string {
	switch key {
	case ranking.KeyScore:
		return "v.score"
	case ranking.KeyDistance:
		return "distance"
	case ranking.KeyCreatedAt:
		return "v.created_at"
	default:
		return "v.id"
	}
}

// SearchSQL builds the primary paginated venue query. The distance column is
// always selected so row scanning has one shape; it is NULL when the request
// carried no origin.
func SearchSQL(preds []predicate.Predicate, chain ranking.Chain, limit, offset int) (string, []any, error) {
	t, err := Translate(preds)
	if err != nil {
		return "", nil, err
	}
	if chain.UsesDistance() && !t.HasOrigin() {
		return "", nil, fmt.Errorf("distance ordering requires a geo predicate")
	}

	distanceExpr := "NULL::double precision"
	if t.HasOrigin() {
		distanceExpr = fmt.Sprintf(
			"ST_Distance(v.location, ST_SetSRID(ST_Point($%d, $%d), 4326)::geography)",
			t.lngArg, t.latArg)
	}

	args := t.Args
	args = append(args, limit, offset)
	sql := fmt.Sprintf(
		"SELECT %s,\n\t%s AS distance\nFROM venues v\nWHERE %s\nORDER BY %s\nLIMIT $%d OFFSET $%d",
		venueColumns, distanceExpr, t.Where, OrderBy(chain), len(args)-1, len(args))

	return sql, args, nil
}

// CountSQL builds the companion total-count query over the same predicates.
func CountSQL(preds []predicate.Predicate) (string, []any, error) {
	t, err := Translate(preds)
	if err != nil {
		return "", nil, err
	}
	return "SELECT count(*) FROM venues v WHERE " + t.Where, t.Args, nil
}
