package fhir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshalCanonicalCodeSystem(t *testing.T) {
	data := []byte(`{
		"resourceType": "CodeSystem",
		"url": "http://example.com/cs",
		"version": "2.1",
		"date": "2021-03-01",
		"status": "active",
		"hierarchyMeaning": "is-a",
		"meta": {"project": "tenant-a"}
	}`)

	resource, err := UnmarshalCanonical(data)
	require.NoError(t, err)

	cs, ok := resource.(*CodeSystem)
	require.True(t, ok)
	require.Equal(t, ResourceTypeCodeSystem, cs.GetResourceType())
	require.Equal(t, "http://example.com/cs", cs.GetUrl())
	require.Equal(t, "2.1", cs.GetVersion())
	require.Equal(t, "2021-03-01", cs.GetDate())
	require.Equal(t, "tenant-a", cs.GetProject())
	require.Equal(t, HierarchyMeaningIsA, *cs.HierarchyMeaning)
}

func TestUnmarshalCanonicalValueSet(t *testing.T) {
	data := []byte(`{
		"resourceType": "ValueSet",
		"url": "http://example.com/vs",
		"status": "active",
		"compose": {"include": [{"system": "http://example.com/cs", "concept": [{"code": "a"}]}]}
	}`)

	resource, err := UnmarshalCanonical(data)
	require.NoError(t, err)

	vs, ok := resource.(*ValueSet)
	require.True(t, ok)
	require.Equal(t, "http://example.com/vs", vs.GetUrl())
	require.Len(t, vs.Compose.Include, 1)
}

func TestUnmarshalCanonicalConceptMap(t *testing.T) {
	data := []byte(`{
		"resourceType": "ConceptMap",
		"url": "http://example.com/cm",
		"status": "draft"
	}`)

	resource, err := UnmarshalCanonical(data)
	require.NoError(t, err)

	cm, ok := resource.(*ConceptMap)
	require.True(t, ok)
	require.Equal(t, ResourceTypeConceptMap, cm.GetResourceType())
}

func TestUnmarshalCanonicalUnknownType(t *testing.T) {
	_, err := UnmarshalCanonical([]byte(`{"resourceType": "Patient"}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Patient")
}

func TestUnmarshalCanonicalInvalidJSON(t *testing.T) {
	_, err := UnmarshalCanonical([]byte(`{`))
	require.Error(t, err)
}

func TestCanonicalViewAbsentFields(t *testing.T) {
	cs := &CodeSystem{Status: "draft"}

	require.Equal(t, "", cs.GetUrl())
	require.Equal(t, "", cs.GetVersion())
	require.Equal(t, "", cs.GetDate())
	require.Equal(t, "", cs.GetProject())
}
