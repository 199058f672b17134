// Package dsl provides short builders for query parameter definitions.
//
// Overview
//   - Primitives: String()/Bool()/Number()/Int() decode a single value.
//   - Arrays: Strings()/Numbers() decode comma-separated lists.
//   - Structured: JSON[T]() and Time() carry richer values in one parameter.
//   - Custom(c) adapts any qstate.Codec[T].
//
// Every builder returns a qstate.Def[T], so defaults and validators chain:
//
//	sortBy := qstate.NewKey("sortBy",
//	    dsl.String().Default("rating").Validate(rules.MustOneOf([]string{"rating", "price"})))
//	page := qstate.NewKey("page", dsl.Int().Default(1))
//	schema := qstate.MustSchema(sortBy, page)
//
// Definitions are immutable values; reuse one across schemas freely.
package dsl
