package codec

import (
	js "github.com/reoring/qstate/jsonschema"
)

func (stringCodec) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil }
func (boolCodec) JSONSchema() (*js.Schema, error)   { return &js.Schema{Type: "boolean"}, nil }
func (numberCodec) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "number"}, nil }
func (intCodec) JSONSchema() (*js.Schema, error)    { return &js.Schema{Type: "integer"}, nil }

func (stringsCodec) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "array", Items: &js.Schema{Type: "string"}, Description: "comma-delimited"}, nil
}

func (numbersCodec) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "array", Items: &js.Schema{Type: "number"}, Description: "comma-delimited"}, nil
}

func (rfc3339Codec) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time"}, nil
}

// JSON values are carried as a string holding the encoded document.
func (jsonCodec[T]) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "json"}, nil
}
