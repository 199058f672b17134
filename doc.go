// Package qstate binds typed application state to a URL query string.
//
// It provides:
//
// - Scalar codecs between typed values and their query-string form (Codec, ToURL, FromURL)
// - Parameter definitions with default-value policy and validators (Def, Key)
// - Schema-wide serialization, validation with default fallback, and merge strategies
// - A URLSearchParams-compatible query string reader/writer (ParseQuery, FormatQuery)
// - JSON Schema export of a parameter schema (Schema.JSONSchema)
//
// Design policy:
// - Keep the engine in the root package; builders live under dsl/, scalar codecs under codec/,
//   reusable validators under rules/, and routing glue under binding/ and middleware/.
// - Every operation is a pure data transform. The current URL is always an explicit input.
//
// Typical usage:
//
//	page := qstate.NewKey("page", dsl.Number().Default(1))
//	sort := qstate.NewKey("sort", dsl.String().Default("price").Validate(rules.MustOneOf([]string{"price", "rating"})))
//	s := qstate.MustSchema(page, sort)
//
//	state, err := qstate.DecodeState(ctx, s, qstate.ParseQuery(r.URL.RawQuery))
//	n, _ := page.Get(state)
//
//	update := qstate.NewValues()
//	page.Set(update, n+1)
//	q, err := qstate.BuildQueryStringFromCurrent(ctx, s, r.URL.RawQuery, update, qstate.PreserveAll)
package qstate
