package fhir

// ValueSet selects a set of codes drawn from one or more code systems.
type ValueSet struct {
	Id      *string          `json:"id,omitempty"`
	Meta    *Meta            `json:"meta,omitempty"`
	Url     *string          `json:"url,omitempty"`
	Version *string          `json:"version,omitempty"`
	Name    *string          `json:"name,omitempty"`
	Title   *string          `json:"title,omitempty"`
	Status  string           `json:"status"`
	Date    *string          `json:"date,omitempty"`
	Compose *ValueSetCompose `json:"compose,omitempty"`
}

type ValueSetCompose struct {
	Include []ValueSetComposeInclude `json:"include"`
	Exclude []ValueSetComposeInclude `json:"exclude,omitempty"`
}

type ValueSetComposeInclude struct {
	System   *string                         `json:"system,omitempty"`
	Version  *string                         `json:"version,omitempty"`
	Concept  []ValueSetComposeIncludeConcept `json:"concept,omitempty"`
	Filter   []ValueSetComposeIncludeFilter  `json:"filter,omitempty"`
	ValueSet []string                        `json:"valueSet,omitempty"`
}

type ValueSetComposeIncludeConcept struct {
	Code    string  `json:"code"`
	Display *string `json:"display,omitempty"`
}

type ValueSetComposeIncludeFilter struct {
	Property string `json:"property"`
	Op       string `json:"op"`
	Value    string `json:"value"`
}

func (vs *ValueSet) GetResourceType() ResourceType { return ResourceTypeValueSet }
func (vs *ValueSet) GetUrl() string                { return derefString(vs.Url) }
func (vs *ValueSet) GetVersion() string            { return derefString(vs.Version) }
func (vs *ValueSet) GetDate() string               { return derefString(vs.Date) }
func (vs *ValueSet) GetProject() string            { return metaProject(vs.Meta) }
