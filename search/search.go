// Package search provides the resource search collaborator the resolver
// depends on: equality filtering and multi-field sorting over the stored
// terminology resources.
package search

import (
	"context"

	"github.com/carebase/terminology/models/fhir"
)

// Filter is an equality constraint on a resource column.
type Filter struct {
	Field string
	Value string
}

// Sort orders results by a resource column. Descending sorts treat absent
// values as greatest, so an unversioned resource sorts before all versioned
// ones ("no version means current").
type Sort struct {
	Field      string
	Descending bool
}

// Request describes one search call.
type Request struct {
	ResourceType fhir.ResourceType
	Filters      []Filter
	Sorts        []Sort
}

// Searcher returns all stored resources matching a request, in the
// requested order. An empty result is not an error. Implementations must
// sort stably.
type Searcher interface {
	Search(ctx context.Context, req Request) ([]fhir.CanonicalResource, error)
}
