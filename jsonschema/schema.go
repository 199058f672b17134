// Package jsonschema holds the JSON Schema subset used to export query
// parameter schemas.
package jsonschema

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	PropertyOrder        []string           `json:"x-order,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// Nullable wraps s so that null is accepted as well.
func Nullable(s *Schema) *Schema {
	return &Schema{AnyOf: []*Schema{s, {Type: "null"}}}
}
