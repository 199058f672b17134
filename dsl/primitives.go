package dsl

import (
	"time"

	qstate "github.com/reoring/qstate"
	"github.com/reoring/qstate/codec"
)

// String returns a definition decoding the raw value unchanged.
func String() qstate.Def[string] { return qstate.Define(codec.String()) }

// Bool returns a boolean definition. A bare key (?flag) decodes as true.
func Bool() qstate.Def[bool] { return qstate.Define(codec.Bool()) }

// Number returns a float64 definition.
func Number() qstate.Def[float64] { return qstate.Define(codec.Number()) }

// Int returns an int definition. Fractional values do not decode.
func Int() qstate.Def[int] { return qstate.Define(codec.Int()) }

// Strings returns a comma-separated string list definition.
func Strings() qstate.Def[[]string] { return qstate.Define(codec.Strings()) }

// Numbers returns a comma-separated number list definition. Elements that
// are not numbers decode as NaN.
func Numbers() qstate.Def[[]float64] { return qstate.Define(codec.Numbers()) }

// JSON returns a definition carrying T as a JSON document.
func JSON[T any]() qstate.Def[T] { return qstate.Define(codec.JSON[T]()) }

// Time returns an RFC 3339 timestamp definition.
func Time() qstate.Def[time.Time] { return qstate.Define(codec.TimeRFC3339()) }

// Custom wraps an arbitrary codec.
func Custom[T any](c qstate.Codec[T]) qstate.Def[T] { return qstate.Define(c) }
