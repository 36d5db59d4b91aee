// Package loader imports terminology resources from a remote FHIR endpoint
// into the local resource table.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"

	sq "github.com/Masterminds/squirrel"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/carebase/terminology/models/fhir"
)

// Loader fetches terminology resources over HTTP and stores them.
type Loader struct {
	client *retryablehttp.Client
	db     *sqlx.DB
	log    zerolog.Logger
}

// New creates a Loader writing to db.
func New(db *sqlx.DB, log zerolog.Logger) *Loader {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	return &Loader{
		client: client,
		db:     db,
		log:    log,
	}
}

// Load fetches the resource at sourceURL, stores it under the given
// project, and returns the decoded resource.
func (l *Loader) Load(ctx context.Context, project, sourceURL string) (fhir.CanonicalResource, error) {
	resource, content, err := l.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	if err := l.Store(ctx, project, resource, content); err != nil {
		return nil, err
	}

	l.log.Info().
		Str("resourceType", string(resource.GetResourceType())).
		Str("url", resource.GetUrl()).
		Str("project", project).
		Msg("Imported terminology resource")

	return resource, nil
}

// Fetch retrieves and decodes a terminology resource, returning it along
// with its raw JSON form.
func (l *Loader) Fetch(ctx context.Context, sourceURL string) (fhir.CanonicalResource, []byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/fhir+json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("server returned status %d for %s", resp.StatusCode, sourceURL)
	}

	resource, err := fhir.UnmarshalCanonical(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode resource from %s: %w", sourceURL, err)
	}

	return resource, body, nil
}

// Store upserts a resource row, lifting the sortable fields out of the
// content. Absent version and date are stored as NULL so descending sorts
// treat them as greatest.
func (l *Loader) Store(ctx context.Context, project string, resource fhir.CanonicalResource, content []byte) error {
	id, err := resourceID(resource)
	if err != nil {
		return err
	}

	sqlStr, args, err := sq.Insert("resource").
		Columns("resource_type", "id", "url", "version", "date", "project_id", "content").
		Values(
			string(resource.GetResourceType()),
			id,
			resource.GetUrl(),
			nullIfEmpty(resource.GetVersion()),
			nullIfEmpty(resource.GetDate()),
			project,
			content,
		).
		Suffix("ON CONFLICT (resource_type, id) DO UPDATE SET url = EXCLUDED.url, version = EXCLUDED.version, date = EXCLUDED.date, project_id = EXCLUDED.project_id, content = EXCLUDED.content").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert: %w", err)
	}

	if _, err := l.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("failed to store %s %s: %w", resource.GetResourceType(), resource.GetUrl(), err)
	}
	return nil
}

func resourceID(resource fhir.CanonicalResource) (string, error) {
	var id *string
	switch r := resource.(type) {
	case *fhir.CodeSystem:
		id = r.Id
	case *fhir.ValueSet:
		id = r.Id
	case *fhir.ConceptMap:
		id = r.Id
	default:
		return "", fmt.Errorf("unsupported resource type %T", resource)
	}
	if id == nil || *id == "" {
		return "", fmt.Errorf("%s %s has no id", resource.GetResourceType(), resource.GetUrl())
	}
	return *id, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
