package fhir

// Coding is a reference to a single concept defined by a code system.
type Coding struct {
	System  *string `json:"system,omitempty"`
	Version *string `json:"version,omitempty"`
	Code    *string `json:"code,omitempty"`
	Display *string `json:"display,omitempty"`
}
