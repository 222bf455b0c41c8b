// Package venue implements read-only storage access for venues and their
// derived dish scores.
package venue

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/FeritTasdildiren/iyisiniye/internal/db/postgres"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/predicate"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/ranking"
	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/result"
)

// querier is the consumer interface for storage reads (ISP).
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo executes the engine's storage queries.
type Repo struct {
	db            querier
	queryDuration *prometheus.HistogramVec // label: query
}

// New creates a venue repository.
// queryDuration is a histogram vec with a "query" label; nil disables timing.
func New(db querier, queryDuration *prometheus.HistogramVec) *Repo {
	return &Repo{db: db, queryDuration: queryDuration}
}

// observe records one query's duration. Meant to be deferred, so start is
// bound at the call site.
func (r *Repo) observe(query string, start time.Time) {
	if r.queryDuration != nil {
		r.queryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	}
}

// SearchPage runs the primary filtered, sorted, paginated query and returns
// one page of ranked rows. DistanceMeters is populated only when the
// predicate set carried a geo origin.
func (r *Repo) SearchPage(
	ctx context.Context,
	preds []predicate.Predicate, chain ranking.Chain,
	limit, offset int,
) ([]result.RankedVenue, error) {
	defer r.observe("search", time.Now())

	sql, args, err := postgres.SearchSQL(preds, chain, limit, offset)
	if err != nil {
		return nil, domain.NewStorageError("search venues", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, domain.NewStorageError("search venues", err)
	}
	defer rows.Close()

	page := make([]result.RankedVenue, 0, limit)
	for rows.Next() {
		rv, err := scanRankedVenue(rows)
		if err != nil {
			return nil, domain.NewStorageError("scan venue row", err)
		}
		page = append(page, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("search venues", err)
	}

	return page, nil
}

// Count runs the companion total-count query over the same predicate set.
func (r *Repo) Count(ctx context.Context, preds []predicate.Predicate) (int, error) {
	defer r.observe("count", time.Now())

	sql, args, err := postgres.CountSQL(preds)
	if err != nil {
		return 0, domain.NewStorageError("count venues", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, domain.NewStorageError("count venues", err)
	}
	return total, nil
}

// TopDishes fetches all non-null dish scores for the given venue ids in
// global descending-score order. Grouping to the best N per venue is the
// assembler's job.
func (r *Repo) TopDishes(ctx context.Context, venueIDs []int64) ([]domain.DishScore, error) {
	if len(venueIDs) == 0 {
		return nil, nil
	}
	defer r.observe("top_dishes", time.Now())

	rows, err := r.db.Query(ctx, postgres.TopDishesSQL, venueIDs)
	if err != nil {
		return nil, domain.NewStorageError("top dishes", err)
	}
	defer rows.Close()

	var scores []domain.DishScore
	for rows.Next() {
		var ds domain.DishScore
		if err := rows.Scan(&ds.VenueID, &ds.DishName, &ds.Score, &ds.ReviewCount, &ds.Confidence); err != nil {
			return nil, domain.NewStorageError("scan dish score", err)
		}
		scores = append(scores, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("top dishes", err)
	}

	return scores, nil
}

// BySlug fetches one active venue and its full scored-dish list.
// Returns domain.ErrNotFound for unknown or inactive slugs.
func (r *Repo) BySlug(ctx context.Context, slug string) (*result.VenueDetail, error) {
	defer r.observe("detail", time.Now())

	row := r.db.QueryRow(ctx, postgres.DetailSQL, slug)

	rv, createdAt, err := scanVenueRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewStorageError("venue by slug", err)
	}

	dishes, err := r.TopDishes(ctx, []int64{rv.ID})
	if err != nil {
		return nil, err
	}

	detail := &result.VenueDetail{
		RankedVenue: rv,
		CreatedAt:   createdAt,
		Dishes:      make([]result.DishEntry, 0, len(dishes)),
	}
	for _, ds := range dishes {
		detail.Dishes = append(detail.Dishes, result.DishEntry{
			Name:        ds.DishName,
			Score:       ds.Score,
			ReviewCount: ds.ReviewCount,
		})
	}

	return detail, nil
}

// likeEscaper neutralizes LIKE metacharacters so a prefix always matches
// literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SuggestNames returns active venue names matching a normalized prefix.
func (r *Repo) SuggestNames(ctx context.Context, prefix string, limit int) ([]result.Suggestion, error) {
	defer r.observe("suggest", time.Now())

	rows, err := r.db.Query(ctx, postgres.SuggestSQL, likeEscaper.Replace(prefix), limit)
	if err != nil {
		return nil, domain.NewStorageError("suggest names", err)
	}
	defer rows.Close()

	suggestions := make([]result.Suggestion, 0, limit)
	for rows.Next() {
		var s result.Suggestion
		if err := rows.Scan(&s.Slug, &s.Name); err != nil {
			return nil, domain.NewStorageError("scan suggestion", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("suggest names", err)
	}

	return suggestions, nil
}

// scanRankedVenue reads one search row.
func scanRankedVenue(rows pgx.Rows) (result.RankedVenue, error) {
	rv, _, err := scanVenueRow(rows)
	return rv, err
}

// scanVenueRow reads the shared venue projection from a row scanner.
func scanVenueRow(row pgx.Row) (result.RankedVenue, time.Time, error) {
	var (
		rv        result.RankedVenue
		active    bool
		createdAt time.Time
	)
	err := row.Scan(
		&rv.ID, &rv.Slug, &rv.Name, &rv.Address, &rv.District,
		&rv.CuisineTags, &rv.PriceTier, &rv.Score, &rv.ReviewCount,
		&rv.Latitude, &rv.Longitude,
		&active, &createdAt,
		&rv.DistanceMeters,
	)
	if err != nil {
		return result.RankedVenue{}, time.Time{}, err
	}
	return rv, createdAt, nil
}
