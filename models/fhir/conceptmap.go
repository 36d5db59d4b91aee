package fhir

// ConceptMap defines mappings between concepts of a source and a target
// code system or value set.
type ConceptMap struct {
	Id        *string           `json:"id,omitempty"`
	Meta      *Meta             `json:"meta,omitempty"`
	Url       *string           `json:"url,omitempty"`
	Version   *string           `json:"version,omitempty"`
	Name      *string           `json:"name,omitempty"`
	Status    string            `json:"status"`
	Date      *string           `json:"date,omitempty"`
	SourceUri *string           `json:"sourceUri,omitempty"`
	TargetUri *string           `json:"targetUri,omitempty"`
	Group     []ConceptMapGroup `json:"group,omitempty"`
}

type ConceptMapGroup struct {
	Source  *string                  `json:"source,omitempty"`
	Target  *string                  `json:"target,omitempty"`
	Element []ConceptMapGroupElement `json:"element"`
}

type ConceptMapGroupElement struct {
	Code    *string                        `json:"code,omitempty"`
	Display *string                        `json:"display,omitempty"`
	Target  []ConceptMapGroupElementTarget `json:"target,omitempty"`
}

type ConceptMapGroupElementTarget struct {
	Code        *string `json:"code,omitempty"`
	Display     *string `json:"display,omitempty"`
	Equivalence string  `json:"equivalence"`
}

func (cm *ConceptMap) GetResourceType() ResourceType { return ResourceTypeConceptMap }
func (cm *ConceptMap) GetUrl() string                { return derefString(cm.Url) }
func (cm *ConceptMap) GetVersion() string            { return derefString(cm.Version) }
func (cm *ConceptMap) GetDate() string               { return derefString(cm.Date) }
func (cm *ConceptMap) GetProject() string            { return metaProject(cm.Meta) }
