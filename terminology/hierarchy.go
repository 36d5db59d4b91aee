package terminology

import (
	"fmt"

	"github.com/carebase/terminology/models/fhir"
)

// ParentProperty returns the property descriptor encoding the is-a parent
// edge of cs. It requires cs to declare an is-a hierarchy and fails with
// ErrInvalidFilter otherwise. When the code system declares no property
// with the well-known parent URI, a default descriptor is synthesized;
// many widely used terminologies declare hierarchyMeaning without
// registering a named parent property.
func ParentProperty(cs *fhir.CodeSystem) (*fhir.CodeSystemProperty, error) {
	if cs.HierarchyMeaning == nil || *cs.HierarchyMeaning != fhir.HierarchyMeaningIsA {
		return nil, fmt.Errorf("%w: CodeSystem %s does not have an is-a hierarchy", ErrInvalidFilter, derefString(cs.Url))
	}

	for i := range cs.Property {
		p := &cs.Property[i]
		if p.Uri != nil && *p.Uri == ParentPropertyURI {
			return p, nil
		}
	}

	code := "parent"
	if cs.HierarchyMeaning != nil {
		code = *cs.HierarchyMeaning
	}
	uri := ParentPropertyURI
	return &fhir.CodeSystemProperty{
		Code: code,
		Uri:  &uri,
		Type: fhir.PropertyTypeCode,
	}, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
