package terminology

import (
	"fmt"

	"github.com/carebase/terminology/models/fhir"
	"github.com/carebase/terminology/query"
)

// ancestorCTE names the recursive reference of the traversal query.
const ancestorCTE = "cte_ancestors"

// FindAncestor builds a query answering whether ancestorCode is reachable
// from the codings produced by base by following zero or more parent edges
// of cs. base is the seed set and must select the coding columns id, code
// and display; the seed itself is reachable at distance zero, so a coding
// in the seed is trivially its own ancestor.
//
// The returned query yields at most one row, the code and display of the
// ancestor, or no rows when it is unreachable. No I/O happens here; the
// caller hands the query to the execution engine. Fails with
// ErrInvalidFilter when cs is not an is-a hierarchy.
func FindAncestor(base *query.SelectQuery, cs *fhir.CodeSystem, ancestorCode string) (*query.SelectQuery, error) {
	property, err := ParentProperty(cs)
	if err != nil {
		return nil, err
	}

	step := query.NewSelect(CodingTable,
		CodingTable+".id", CodingTable+".code", CodingTable+".display")
	edgeAlias := step.NextAlias()
	defAlias := step.NextAlias()

	// The edge's target is the concept, so each step row is a parent of
	// some concept already known to be reachable.
	step.InnerJoin(
		fmt.Sprintf("%s %s ON %s.target_id = %s.id",
			CodingPropertyTable, edgeAlias, edgeAlias, CodingTable),
	)
	step.InnerJoin(
		fmt.Sprintf("%s %s ON %s.id = %s.property_id AND %s.code = ?",
			CodeSystemPropertyTable, defAlias, defAlias, edgeAlias, defAlias),
		property.Code,
	)
	step.InnerJoin(
		fmt.Sprintf("%s ON %s.coding_id = %s.id", ancestorCTE, edgeAlias, ancestorCTE),
	)
	step.Where(CodingTable+".code_system_id = ?", derefString(cs.Id))

	q := query.WithRecursive(ancestorCTE, base, step, "code", "display")
	q.Where("code = ?", ancestorCode)
	q.Limit(1)
	return q, nil
}
