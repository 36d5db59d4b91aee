package terminology

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carebase/terminology/models/fhir"
	"github.com/carebase/terminology/query"
	"github.com/carebase/terminology/util"
)

func hierarchicalCodeSystem() *fhir.CodeSystem {
	return &fhir.CodeSystem{
		Id:               util.StringPtr("cs-1"),
		Url:              util.StringPtr("http://example.com/cs"),
		Status:           "active",
		HierarchyMeaning: util.StringPtr(fhir.HierarchyMeaningIsA),
		Property: []fhir.CodeSystemProperty{
			{Code: "parent", Uri: util.StringPtr(ParentPropertyURI), Type: fhir.PropertyTypeCode},
		},
	}
}

func seedQuery(code string) *query.SelectQuery {
	q := query.NewSelect(CodingTable, "coding.id", "coding.code", "coding.display")
	q.Where("coding.code_system_id = ?", "cs-1")
	q.Where("coding.code = ?", code)
	return q
}

func TestFindAncestorSQL(t *testing.T) {
	q, err := FindAncestor(seedQuery("A"), hierarchicalCodeSystem(), "C")
	require.NoError(t, err)

	sqlStr, args, err := q.SQL()
	require.NoError(t, err)
	require.Equal(t,
		"WITH RECURSIVE cte_ancestors AS ("+
			"SELECT coding.id, coding.code, coding.display FROM coding "+
			"WHERE coding.code_system_id = $1 AND coding.code = $2"+
			" UNION "+
			"SELECT coding.id, coding.code, coding.display FROM coding "+
			"INNER JOIN coding_property T1 ON T1.target_id = coding.id "+
			"INNER JOIN code_system_property T2 ON T2.id = T1.property_id AND T2.code = $3 "+
			"INNER JOIN cte_ancestors ON T1.coding_id = cte_ancestors.id "+
			"WHERE coding.code_system_id = $4"+
			") "+
			"SELECT code, display FROM cte_ancestors WHERE code = $5 LIMIT 1",
		sqlStr)
	require.Equal(t, []interface{}{"cs-1", "A", "parent", "cs-1", "C"}, args)
}

func TestFindAncestorUsesResolvedParentPropertyCode(t *testing.T) {
	cs := hierarchicalCodeSystem()
	cs.Property[0].Code = "broader"

	q, err := FindAncestor(seedQuery("A"), cs, "C")
	require.NoError(t, err)

	_, args, err := q.SQL()
	require.NoError(t, err)
	require.Contains(t, args, "broader")
}

func TestFindAncestorSynthesizedParentProperty(t *testing.T) {
	cs := hierarchicalCodeSystem()
	cs.Property = nil

	q, err := FindAncestor(seedQuery("A"), cs, "C")
	require.NoError(t, err)

	_, args, err := q.SQL()
	require.NoError(t, err)
	require.Contains(t, args, "is-a")
}

func TestFindAncestorRejectsNonHierarchy(t *testing.T) {
	cs := hierarchicalCodeSystem()
	cs.HierarchyMeaning = util.StringPtr(fhir.HierarchyMeaningPartOf)

	_, err := FindAncestor(seedQuery("A"), cs, "C")
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestFindAncestorComposesWithPropertyFilter(t *testing.T) {
	seed := seedQuery("A")
	ExcludeAbstract(seed)

	q, err := FindAncestor(seed, hierarchicalCodeSystem(), "C")
	require.NoError(t, err)

	sqlStr, _, err := q.SQL()
	require.NoError(t, err)
	// The seed's filter joins keep their aliases; the step query's joins
	// live in their own scope inside the union.
	require.Contains(t, sqlStr, "LEFT JOIN coding_property T1")
	require.Contains(t, sqlStr, "T2.id IS NULL")
	require.Contains(t, sqlStr, "INNER JOIN cte_ancestors ON T1.coding_id = cte_ancestors.id")
}
