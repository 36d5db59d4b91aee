package terminology

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/carebase/terminology/models/fhir"
	"github.com/carebase/terminology/search"
)

// Resolver reduces all stored resources sharing a canonical URL to the one
// current resource.
type Resolver struct {
	search      search.Searcher
	baseProject string
	log         zerolog.Logger
}

// NewResolver creates a Resolver. baseProject is the id of the project
// holding the specification-shipped reference resources; during tie-breaks
// its resources never shadow locally curated ones.
func NewResolver(searcher search.Searcher, baseProject string, log zerolog.Logger) *Resolver {
	return &Resolver{
		search:      searcher,
		baseProject: baseProject,
		log:         log,
	}
}

// Resolve returns the single current resource of the given kind with the
// given canonical URL. Candidates are ordered by version then date, both
// descending and both lexical, with absent values sorting greatest ("no
// version means current"). Exact ties are broken by demoting base-project
// resources; the relative order among resources on the same side of that
// split is stable but otherwise unspecified. Returns ErrNotFound when
// nothing matches.
func (r *Resolver) Resolve(ctx context.Context, kind fhir.ResourceType, url string) (fhir.CanonicalResource, error) {
	if url == "" {
		return nil, fmt.Errorf("canonical url is required")
	}

	results, err := r.search.Search(ctx, search.Request{
		ResourceType: kind,
		Filters:      []search.Filter{{Field: "url", Value: url}},
		Sorts: []search.Sort{
			{Field: "version", Descending: true},
			{Field: "date", Descending: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s %s: %w", kind, url, err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s with url %s", ErrNotFound, kind, url)
	}

	if len(results) > 1 {
		r.log.Debug().
			Str("resourceType", string(kind)).
			Str("url", url).
			Int("candidates", len(results)).
			Msg("Multiple resources share canonical URL, breaking tie")

		// The search already sorted by version and date; the comparator
		// repeats that ordering so the base-project demotion kicks in
		// only on exact ties. A reference copy shipped with the base
		// project must never shadow a locally curated resource sharing
		// the same URL.
		slices.SortStableFunc(results, func(a, b fhir.CanonicalResource) int {
			if c := compareDesc(a.GetVersion(), b.GetVersion()); c != 0 {
				return c
			}
			if c := compareDesc(a.GetDate(), b.GetDate()); c != 0 {
				return c
			}
			return r.baseRank(a) - r.baseRank(b)
		})
	}

	return results[0], nil
}

// compareDesc orders lexically descending, with the empty string (absent
// value) sorting as the greatest value.
func compareDesc(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	return strings.Compare(b, a)
}

func (r *Resolver) baseRank(resource fhir.CanonicalResource) int {
	if resource.GetProject() == r.baseProject {
		return 1
	}
	return 0
}
