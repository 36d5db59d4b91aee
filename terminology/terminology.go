// Package terminology resolves canonical terminology resources to a single
// current version and builds the relational queries that answer hierarchy
// questions over coded concepts. The package only constructs queries; it
// never executes them. The one external call it makes is the resource
// search used by the resolver.
package terminology

import "errors"

// Well-known concept property URIs. Other components may rely on these when
// inspecting property descriptors produced here.
const (
	ParentPropertyURI        = "http://hl7.org/fhir/concept-properties#parent"
	ChildPropertyURI         = "http://hl7.org/fhir/concept-properties#child"
	NotSelectablePropertyURI = "http://hl7.org/fhir/concept-properties#notSelectable"
)

// Tables of the concept store this package builds queries against. The
// store owns their schema and lifecycle; this package only reads them.
const (
	CodingTable             = "coding"
	CodingPropertyTable     = "coding_property"
	CodeSystemPropertyTable = "code_system_property"
)

var (
	// ErrNotFound reports that no stored resource matched a canonical
	// lookup.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidFilter reports that a hierarchy-dependent operation was
	// requested on a code system that is not an is-a hierarchy.
	ErrInvalidFilter = errors.New("invalid filter")
)
