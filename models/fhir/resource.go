package fhir

import (
	"encoding/json"
	"fmt"
)

// ResourceType identifies one of the terminology resource kinds this module
// stores and resolves.
type ResourceType string

const (
	ResourceTypeCodeSystem ResourceType = "CodeSystem"
	ResourceTypeValueSet   ResourceType = "ValueSet"
	ResourceTypeConceptMap ResourceType = "ConceptMap"
)

// Meta carries resource metadata. Project marks the project that owns the
// resource; resources shipped with the base specification project carry the
// base project id there.
type Meta struct {
	VersionId   *string `json:"versionId,omitempty"`
	LastUpdated *string `json:"lastUpdated,omitempty"`
	Project     *string `json:"project,omitempty"`
}

// CanonicalResource is the shared read-only view over CodeSystem, ValueSet
// and ConceptMap. Version and date are reported as plain strings; both order
// lexically, and the empty string means absent.
type CanonicalResource interface {
	GetResourceType() ResourceType
	GetUrl() string
	GetVersion() string
	GetDate() string
	GetProject() string
}

// UnmarshalCanonical decodes a terminology resource from its JSON form,
// dispatching on the resourceType discriminant.
func UnmarshalCanonical(data []byte) (CanonicalResource, error) {
	var envelope struct {
		ResourceType ResourceType `json:"resourceType"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to read resourceType: %w", err)
	}

	switch envelope.ResourceType {
	case ResourceTypeCodeSystem:
		var cs CodeSystem
		if err := json.Unmarshal(data, &cs); err != nil {
			return nil, fmt.Errorf("failed to parse CodeSystem: %w", err)
		}
		return &cs, nil
	case ResourceTypeValueSet:
		var vs ValueSet
		if err := json.Unmarshal(data, &vs); err != nil {
			return nil, fmt.Errorf("failed to parse ValueSet: %w", err)
		}
		return &vs, nil
	case ResourceTypeConceptMap:
		var cm ConceptMap
		if err := json.Unmarshal(data, &cm); err != nil {
			return nil, fmt.Errorf("failed to parse ConceptMap: %w", err)
		}
		return &cm, nil
	default:
		return nil, fmt.Errorf("unsupported resourceType: %q", envelope.ResourceType)
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func metaProject(m *Meta) string {
	if m == nil {
		return ""
	}
	return derefString(m.Project)
}
