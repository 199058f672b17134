package codec

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	qstate "github.com/reoring/qstate"
)

// Delimiter separates array elements. Elements are not escaped, so a string
// element containing a comma does not survive a round trip.
const Delimiter = ","

// Strings returns the comma-delimited codec for string arrays.
func Strings() qstate.Codec[[]string] { return stringsCodec{} }

// Numbers returns the comma-delimited codec for number arrays. Elements that
// do not parse decode to NaN.
func Numbers() qstate.Codec[[]float64] { return numbersCodec{} }

type stringsCodec struct{}

func (stringsCodec) Expect() string { return "an array" }
func (stringsCodec) Accept(v any) ([]string, bool) {
	if ss, ok := v.([]string); ok {
		return ss, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]string, rv.Len())
	for i := range out {
		out[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return out, true
}
func (stringsCodec) Format(v []string) (string, error) { return strings.Join(v, Delimiter), nil }
func (stringsCodec) Parse(s string) ([]string, bool) {
	if s == "" {
		return []string{}, true
	}
	return strings.Split(s, Delimiter), true
}

type numbersCodec struct{}

func (numbersCodec) Expect() string { return "an array" }
func (numbersCodec) Accept(v any) ([]float64, bool) {
	if fs, ok := v.([]float64); ok {
		return fs, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]float64, rv.Len())
	for i := range out {
		f, ok := toFloat(rv.Index(i).Interface())
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}
func (numbersCodec) Format(v []float64) (string, error) {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = formatFloat(f)
	}
	return strings.Join(parts, Delimiter), nil
}
func (numbersCodec) Parse(s string) ([]float64, bool) {
	if s == "" {
		return []float64{}, true
	}
	parts := strings.Split(s, Delimiter)
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, ok := parseFloat(p)
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out, true
}
