// Package ranking maps a sort mode to an explicit ordering chain with null
// handling and a deterministic tie-break. The storage translator renders the
// chain; nothing here depends on query syntax.
package ranking

import "github.com/FeritTasdildiren/iyisiniye/internal/domain/search/request"

// Key names an orderable projection of a venue row.
type Key string

// Orderable keys.
const (
	KeyScore     Key = "score"
	KeyDistance  Key = "distance"
	KeyCreatedAt Key = "created_at"
	KeyID        Key = "id"
)

// Direction of a single ordering term.
type Direction string

// Directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Term is one link of an ordering chain.
type Term struct {
	Key       Key
	Direction Direction
	NullsLast bool
}

// Chain is a total order: terms applied in sequence, ending in a
// deterministic tie-break so equal rows never depend on storage row order.
type Chain []Term

// For returns the ordering chain for the request's sort mode.
//
//	relevance: score desc (nulls last), id asc
//	distance:  distance asc, score desc (nulls last), id asc
//	recency:   created_at desc, score desc (nulls last), id asc
//
// Relevance pushes unrated venues below rated ones; distance keeps a
// sensible secondary order among equidistant venues. Every chain ends on id
// ascending so ordering is stable for a fixed data snapshot.
func For(req *request.Request) Chain {
	byScore := Term{Key: KeyScore, Direction: Desc, NullsLast: true}
	byID := Term{Key: KeyID, Direction: Asc}

	switch req.Sort() {
	case request.SortDistance:
		return Chain{{Key: KeyDistance, Direction: Asc}, byScore, byID}
	case request.SortRecency:
		return Chain{{Key: KeyCreatedAt, Direction: Desc}, byScore, byID}
	default:
		return Chain{byScore, byID}
	}
}

// UsesDistance reports whether the chain orders on distance and therefore
// requires the distance projection to be selected.
func (c Chain) UsesDistance() bool {
	for _, t := range c {
		if t.Key == KeyDistance {
			return true
		}
	}
	return false
}
