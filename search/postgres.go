package search

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/carebase/terminology/models/fhir"
)

// resourceTable holds one row per stored terminology resource, with the
// sortable fields lifted out of the JSON content into columns.
const resourceTable = "resource"

// PostgresSearcher implements Searcher over the resource table.
type PostgresSearcher struct {
	db  *sqlx.DB
	log zerolog.Logger
}

// NewPostgresSearcher creates a new PostgresSearcher.
func NewPostgresSearcher(db *sqlx.DB, log zerolog.Logger) *PostgresSearcher {
	return &PostgresSearcher{
		db:  db,
		log: log,
	}
}

// Search executes the request and decodes each matching row's content.
func (s *PostgresSearcher) Search(ctx context.Context, req Request) ([]fhir.CanonicalResource, error) {
	sqlStr, args, err := buildSearchSQL(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	s.log.Debug().
		Str("resourceType", string(req.ResourceType)).
		Str("sql", sqlStr).
		Msg("Executing resource search")

	rows, err := s.db.QueryxContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("resource search failed: %w", err)
	}
	defer rows.Close()

	var results []fhir.CanonicalResource
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}
		resource, err := fhir.UnmarshalCanonical(content)
		if err != nil {
			return nil, fmt.Errorf("failed to decode stored resource: %w", err)
		}
		results = append(results, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resource search failed: %w", err)
	}

	return results, nil
}

// buildSearchSQL renders a request to SQL. Kept separate from execution so
// the generated shape is testable without a database.
func buildSearchSQL(req Request) (string, []interface{}, error) {
	b := sq.Select("content").
		From(resourceTable).
		Where(sq.Eq{"resource_type": string(req.ResourceType)})

	for _, f := range req.Filters {
		b = b.Where(sq.Eq{f.Field: f.Value})
	}
	for _, rule := range req.Sorts {
		if rule.Descending {
			b = b.OrderBy(rule.Field + " DESC NULLS FIRST")
		} else {
			b = b.OrderBy(rule.Field + " ASC NULLS LAST")
		}
	}

	return b.PlaceholderFormat(sq.Dollar).ToSql()
}
