package codec

import (
	json "github.com/goccy/go-json"

	qstate "github.com/reoring/qstate"
)

// JSON returns a codec that stores T as compact JSON in a single parameter
// (?filter={"cat":"tech"}). Values that fail to unmarshal decode as absent.
func JSON[T any]() qstate.Codec[T] { return jsonCodec[T]{} }

type jsonCodec[T any] struct{}

func (jsonCodec[T]) Expect() string { return "a JSON-encodable value" }
func (jsonCodec[T]) Accept(v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}
func (jsonCodec[T]) Format(v T) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
func (jsonCodec[T]) Parse(s string) (T, bool) {
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}
