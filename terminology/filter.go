package terminology

import (
	"fmt"

	"github.com/carebase/terminology/query"
)

// AddPropertyFilter extends q, a query over the coding table, with a
// predicate on whether each coding carries the given property/value pair.
// With isEqual true only codings carrying the pair survive; with isEqual
// false only codings not carrying it do. An unknown property code is not
// an error, it simply matches nothing; the filter asks "does this optional
// property exist".
//
// Two fresh join aliases are allocated from q, so the filter can be
// applied repeatedly to the same query.
func AddPropertyFilter(q *query.SelectQuery, propertyCode, value string, isEqual bool) *query.SelectQuery {
	propAlias := q.NextAlias()
	defAlias := q.NextAlias()

	q.LeftJoin(
		fmt.Sprintf("%s %s ON %s.coding_id = %s.id AND %s.value = ?",
			CodingPropertyTable, propAlias, propAlias, q.Table(), propAlias),
		value,
	)
	q.LeftJoin(
		fmt.Sprintf("%s %s ON %s.id = %s.property_id AND %s.code = ?",
			CodeSystemPropertyTable, defAlias, defAlias, propAlias, defAlias),
		propertyCode,
	)

	if isEqual {
		q.Where(fmt.Sprintf("%s.id IS NOT NULL", defAlias))
	} else {
		q.Where(fmt.Sprintf("%s.id IS NULL", defAlias))
	}
	return q
}

// ExcludeAbstract keeps only selectable concepts by filtering out codings
// marked notSelectable=true.
func ExcludeAbstract(q *query.SelectQuery) *query.SelectQuery {
	return AddPropertyFilter(q, "notSelectable", "true", false)
}
