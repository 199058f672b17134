package codec

import (
	qstate "github.com/reoring/qstate"
)

// Func builds a codec for T from a format and a parse function. expect names
// the type in mismatch messages ("a color"). Values are admitted when their
// dynamic type is exactly T.
func Func[T any](expect string, format func(T) (string, error), parse func(string) (T, bool)) qstate.Codec[T] {
	return &funcCodec[T]{expect: expect, format: format, parse: parse}
}

type funcCodec[T any] struct {
	expect string
	format func(T) (string, error)
	parse  func(string) (T, bool)
}

func (c *funcCodec[T]) Expect() string { return c.expect }
func (c *funcCodec[T]) Accept(v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}
func (c *funcCodec[T]) Format(v T) (string, error) { return c.format(v) }
func (c *funcCodec[T]) Parse(s string) (T, bool)   { return c.parse(s) }
