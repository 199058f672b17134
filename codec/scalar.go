// Package codec provides the built-in scalar codecs used by query parameter
// definitions.
package codec

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	qstate "github.com/reoring/qstate"
)

// String returns the identity codec for strings.
func String() qstate.Codec[string] { return stringCodec{} }

// Bool returns the codec for booleans ("true"/"false"; a bare "?flag"
// decodes to true).
func Bool() qstate.Codec[bool] { return boolCodec{} }

// Number returns the codec for finite float64 values. Any Go numeric type is
// accepted on write.
func Number() qstate.Codec[float64] { return numberCodec{} }

// Int returns the codec for integers written in base 10.
func Int() qstate.Codec[int] { return intCodec{} }

type stringCodec struct{}

func (stringCodec) Expect() string { return "a string" }
func (stringCodec) Accept(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
func (stringCodec) Format(v string) (string, error) { return v, nil }
func (stringCodec) Parse(s string) (string, bool)   { return s, true }

type boolCodec struct{}

func (boolCodec) Expect() string { return "a boolean" }
func (boolCodec) Accept(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}
func (boolCodec) Format(v bool) (string, error) { return strconv.FormatBool(v), nil }
func (boolCodec) Parse(s string) (bool, bool) {
	switch s {
	case "true", "":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

type numberCodec struct{}

func (numberCodec) Expect() string { return "a number" }
func (numberCodec) Accept(v any) (float64, bool) {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
func (numberCodec) Format(v float64) (string, error) { return formatFloat(v), nil }
func (numberCodec) Parse(s string) (float64, bool) {
	f, ok := parseFloat(s)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

type intCodec struct{}

func (intCodec) Expect() string { return "an integer" }
func (intCodec) Accept(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt || f >= -math.MinInt {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}
func (intCodec) Format(v int) (string, error) { return strconv.Itoa(v), nil }
func (intCodec) Parse(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

// ---- helpers ----

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// formatFloat writes the shortest decimal form that parses back to v.
func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// parseFloat rejects out-of-range and non-finite input.
func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
