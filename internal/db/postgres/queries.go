package postgres

// Fixed-shape queries used by the venue repository alongside the translated
// search. All reads are parametrized; the engine never writes to these
// tables.

// DetailSQL is the single-venue lookup by slug. Inactive venues are not
// served, mirroring the search predicate invariant.
const DetailSQL = "SELECT " + venueColumns + `,
	NULL::double precision AS distance
FROM venues v
WHERE v.active = TRUE AND v.slug = $1`

// TopDishesSQL fetches all scored dishes for a page's venue ids, globally
// ordered by descending score. The caller takes the first N per venue; the
// id list is bounded by page size, never the full table.
const TopDishesSQL = `SELECT ds.venue_id, ds.dish_name, ds.score, coalesce(ds.review_count, 0), coalesce(ds.confidence, 0)
FROM dish_scores ds
WHERE ds.venue_id = ANY($1) AND ds.score IS NOT NULL
ORDER BY ds.score DESC, ds.venue_id ASC, ds.dish_name ASC`

// SuggestSQL is the short-prefix name suggestion lookup. Accent folding
// matches the FTS normalization so "karakoy" finds "Karaköy".
const SuggestSQL = `SELECT v.slug, v.name
FROM venues v
WHERE v.active = TRUE AND unaccent(lower(v.name)) LIKE unaccent($1) || '%'
ORDER BY coalesce(v.review_count, 0) DESC, v.name ASC
LIMIT $2`
