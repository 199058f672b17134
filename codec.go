package qstate

import (
	"reflect"
)

// Codec converts between a typed value T and its query-string form.
// Codecs never see the null/undefined markers: ToURL and FromURL pass them
// through unchanged before delegating.
type Codec[T any] interface {
	// Expect names the accepted type for mismatch messages, with article
	// ("a number", "an array").
	Expect() string
	// Accept admits a runtime value as T. It returns false on a type mismatch.
	Accept(v any) (T, bool)
	// Format renders a value for the URL.
	Format(v T) (string, error)
	// Parse reads a URL string. It returns false when the string cannot be
	// decoded, which upstream treats as "no value".
	Parse(s string) (T, bool)
}

// ToURL serializes v with c. nil becomes the null marker and Undefined stays
// undefined; any other value must be admitted by c.Accept.
func ToURL[T any](c Codec[T], v any) (Raw, error) {
	if v == nil {
		return NullRaw(), nil
	}
	if IsUndefined(v) {
		return Raw{}, nil
	}
	t, ok := c.Accept(v)
	if !ok {
		return Raw{}, typeMismatch(c.Expect(), v)
	}
	str, err := c.Format(t)
	if err != nil {
		return Raw{}, err
	}
	return StringRaw(str), nil
}

// FromURL deserializes r with c. The null marker becomes nil, an undefined or
// undecodable value becomes Undefined.
func FromURL[T any](c Codec[T], r Raw) any {
	switch r.Kind {
	case RawNull:
		return nil
	case RawString:
		v, ok := c.Parse(r.Value)
		if !ok {
			return Undefined
		}
		return v
	default:
		return Undefined
	}
}

// describe names the runtime type of v the way the messages expect
// ("a number", "an array").
func describe(v any) string {
	if v == nil {
		return "null"
	}
	if IsUndefined(v) {
		return "undefined"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Func:
		return "a function"
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return describe(rv.Elem().Interface())
	default:
		return "an object"
	}
}
