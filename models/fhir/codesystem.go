package fhir

// HierarchyMeaning values for CodeSystem.hierarchyMeaning.
const (
	HierarchyMeaningGroupedBy      = "grouped-by"
	HierarchyMeaningIsA            = "is-a"
	HierarchyMeaningPartOf         = "part-of"
	HierarchyMeaningClassifiedWith = "classified-with"
)

// CodeSystemProperty types.
const (
	PropertyTypeCode    = "code"
	PropertyTypeCoding  = "Coding"
	PropertyTypeString  = "string"
	PropertyTypeInteger = "integer"
	PropertyTypeBoolean = "boolean"
)

// CodeSystem declares a set of codes, optionally organized as a hierarchy.
type CodeSystem struct {
	Id               *string              `json:"id,omitempty"`
	Meta             *Meta                `json:"meta,omitempty"`
	Url              *string              `json:"url,omitempty"`
	Version          *string              `json:"version,omitempty"`
	Name             *string              `json:"name,omitempty"`
	Title            *string              `json:"title,omitempty"`
	Status           string               `json:"status"`
	Date             *string              `json:"date,omitempty"`
	Content          *string              `json:"content,omitempty"`
	HierarchyMeaning *string              `json:"hierarchyMeaning,omitempty"`
	Property         []CodeSystemProperty `json:"property,omitempty"`
	Concept          []CodeSystemConcept  `json:"concept,omitempty"`
}

// CodeSystemProperty declares a property concepts of the code system may
// carry. Uri identifies the property's meaning; the well-known parent and
// child properties are matched by Uri, not Code.
type CodeSystemProperty struct {
	Code        string  `json:"code"`
	Uri         *string `json:"uri,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
}

// CodeSystemConcept is a single defined concept.
type CodeSystemConcept struct {
	Code     string                      `json:"code"`
	Display  *string                     `json:"display,omitempty"`
	Property []CodeSystemConceptProperty `json:"property,omitempty"`
	Concept  []CodeSystemConcept         `json:"concept,omitempty"`
}

// CodeSystemConceptProperty is a property value on a defined concept.
type CodeSystemConceptProperty struct {
	Code        string  `json:"code"`
	ValueCode   *string `json:"valueCode,omitempty"`
	ValueString *string `json:"valueString,omitempty"`
	ValueCoding *Coding `json:"valueCoding,omitempty"`
}

func (cs *CodeSystem) GetResourceType() ResourceType { return ResourceTypeCodeSystem }
func (cs *CodeSystem) GetUrl() string                { return derefString(cs.Url) }
func (cs *CodeSystem) GetVersion() string            { return derefString(cs.Version) }
func (cs *CodeSystem) GetDate() string               { return derefString(cs.Date) }
func (cs *CodeSystem) GetProject() string            { return metaProject(cs.Meta) }
