package qstate_test

import (
	"context"
	"errors"
	"testing"

	qstate "github.com/reoring/qstate"
	"github.com/reoring/qstate/dsl"
	"github.com/reoring/qstate/rules"
)

func below10(_ context.Context, v any, _ *qstate.Values) error {
	if f, ok := v.(float64); ok && f >= 10 {
		return qstate.Invalid("must be below 10")
	}
	return nil
}

func abSchema() qstate.Schema {
	return qstate.MustSchema(
		qstate.NewKey("a", dsl.Number().Default(6).Validate(below10)),
		qstate.NewKey("b", dsl.String().Default("x")),
	)
}

func productSchema() qstate.Schema {
	return qstate.MustSchema(
		qstate.NewKey("search", dsl.String().Default("")),
		qstate.NewKey("minRating", dsl.Number().Default(0)),
		qstate.NewKey("sortBy", dsl.String().Default("rating").Validate(rules.MustOneOf([]string{"rating", "price"}))),
	)
}

func TestDecodeState_Defaults(t *testing.T) {
	got, err := qstate.DecodeState(context.Background(), abSchema(), qstate.NewRawParams())
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if a, _ := got.Get("a"); a != 6.0 {
		t.Fatalf("a: %#v", a)
	}
	if b, _ := got.Get("b"); b != "x" {
		t.Fatalf("b: %#v", b)
	}
}

func TestDecodeState_RejectedValueFallsBack(t *testing.T) {
	got, err := qstate.DecodeState(context.Background(), abSchema(), qstate.RawOf("a", "12"))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if a, _ := got.Get("a"); a != 6.0 {
		t.Fatalf("expected default 6, got %#v", a)
	}
	got, err = qstate.DecodeState(context.Background(), abSchema(), qstate.RawOf("a", "3", "b", "y"))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if a, _ := got.Get("a"); a != 3.0 {
		t.Fatalf("a: %#v", a)
	}
}

func TestDecodeState_IgnoresExternalParams(t *testing.T) {
	got, err := qstate.DecodeState(context.Background(), abSchema(), qstate.RawOf("utm_source", "fb"))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Has("utm_source") || got.Len() != 2 {
		t.Fatalf("unexpected keys: %v", got.Keys())
	}
}

func TestDecodeState_UndecodableUsesDefault(t *testing.T) {
	got, err := qstate.DecodeState(context.Background(), abSchema(), qstate.RawOf("a", "six"))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if a, _ := got.Get("a"); a != 6.0 {
		t.Fatalf("a: %#v", a)
	}
}

func TestDecodeState_MissingDefault(t *testing.T) {
	s := qstate.MustSchema(qstate.NewKey("page", dsl.Number()))
	_, err := qstate.DecodeState(context.Background(), s, qstate.NewRawParams())
	if !qstate.IsMissingDefault(err) {
		t.Fatalf("expected missing_default, got %v", err)
	}
	if err.Error() != "page Missing default value" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	s = qstate.MustSchema(qstate.NewKey("page", dsl.Number().AllowUndefined()))
	got, err := qstate.DecodeState(context.Background(), s, qstate.NewRawParams())
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if v, ok := got.Get("page"); !ok || !qstate.IsUndefined(v) {
		t.Fatalf("expected undefined entry, got %#v", v)
	}
}

func TestDecodeState_NullPassesThrough(t *testing.T) {
	s := qstate.MustSchema(qstate.NewKey("cursor", dsl.String().NullDefault()))
	got, err := qstate.DecodeState(context.Background(), s, qstate.ParseQuery("cursor=null"))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if v, ok := got.Get("cursor"); !ok || v != nil {
		t.Fatalf("expected null, got %#v", v)
	}
}

func TestDecodeState_NonValidationErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	s := qstate.MustSchema(qstate.NewKey("a", dsl.Number().Default(1).Validate(
		func(context.Context, any, *qstate.Values) error { return boom })))
	_, err := qstate.DecodeState(context.Background(), s, qstate.NewRawParams())
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err.Error() != "a boom" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestDecodeState_ContextData(t *testing.T) {
	type tenant struct{ DefaultSort string }
	s := qstate.MustSchema(qstate.NewKey("sortBy", dsl.String().DefaultFunc(func(ctx context.Context) string {
		if tn, ok := qstate.DataAs[tenant](ctx); ok {
			return tn.DefaultSort
		}
		return "rating"
	})))
	ctx := qstate.WithData(context.Background(), tenant{DefaultSort: "price"})
	got, err := qstate.DecodeState(ctx, s, qstate.NewRawParams())
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if v, _ := got.Get("sortBy"); v != "price" {
		t.Fatalf("expected context default, got %#v", v)
	}
	got, _ = qstate.DecodeState(context.Background(), s, qstate.NewRawParams())
	if v, _ := got.Get("sortBy"); v != "rating" {
		t.Fatalf("expected fallback default, got %#v", v)
	}
}

func TestDecodeStateWithMeta_Presence(t *testing.T) {
	d, err := qstate.DecodeStateWithMeta(context.Background(), abSchema(), qstate.RawOf("a", "12"))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !d.Seen("a") || !d.DefaultApplied("a") {
		t.Fatalf("a presence: %v", d.Presence["a"])
	}
	if d.Seen("b") || !d.DefaultApplied("b") {
		t.Fatalf("b presence: %v", d.Presence["b"])
	}
	if len(d.Fallbacks) != 1 || d.Fallbacks[0].Path != "a" || d.Fallbacks[0].Message != "a must be below 10" {
		t.Fatalf("unexpected fallbacks: %+v", d.Fallbacks)
	}
	if d.Fallbacks[0].Params["rejected"] != 12.0 {
		t.Fatalf("rejected value not recorded: %+v", d.Fallbacks[0].Params)
	}

	d, err = qstate.DecodeStateWithMeta(context.Background(), abSchema(), qstate.ParseQuery("a=4&b=null"))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if d.DefaultApplied("a") || len(d.Fallbacks) != 0 {
		t.Fatalf("a should come from the URL")
	}
	if d.Presence["b"] != qstate.PresenceSeen|qstate.PresenceWasNull {
		t.Fatalf("b presence: %v", d.Presence["b"])
	}
}

func TestBuildQueryString(t *testing.T) {
	s := qstate.MustSchema(
		qstate.NewKey("stringParam", dsl.String().Default("")),
		qstate.NewKey("booleanParam", dsl.Bool().Default(true)),
	)
	qs, err := qstate.BuildQueryString(context.Background(), s, qstate.ValuesOf("stringParam", "value", "booleanParam", false), nil)
	if err != nil {
		t.Fatalf("build err: %v", err)
	}
	if qs != "stringParam=value&booleanParam=false" {
		t.Fatalf("unexpected: %s", qs)
	}
}

func TestBuildQueryString_SingleNumber(t *testing.T) {
	s := qstate.MustSchema(qstate.NewKey("a", dsl.Number()))
	qs, err := qstate.BuildQueryString(context.Background(), s, qstate.ValuesOf("a", 3), nil)
	if err != nil || qs != "a=3" {
		t.Fatalf("got %q, %v", qs, err)
	}
}

func TestBuildQueryString_WithOtherParams(t *testing.T) {
	update := qstate.ValuesOf("search", "sport shoes", "sortBy", "rating")
	qs, err := qstate.BuildQueryString(context.Background(), productSchema(), update, nil)
	if err != nil || qs != "search=sport+shoes&sortBy=rating" {
		t.Fatalf("got %q, %v", qs, err)
	}
	qs, err = qstate.BuildQueryString(context.Background(), productSchema(), update, qstate.RawOf("utm_source", "facebook"))
	if err != nil || qs != "utm_source=facebook&search=sport+shoes&sortBy=rating" {
		t.Fatalf("got %q, %v", qs, err)
	}
}

func TestBuildQueryString_Errors(t *testing.T) {
	ctx := context.Background()
	_, err := qstate.BuildQueryString(ctx, productSchema(), qstate.ValuesOf("search", 3), nil)
	if !qstate.IsTypeMismatch(err) || err.Error() != "search was expecting a string but received a number." {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err = qstate.BuildQueryString(ctx, productSchema(), qstate.ValuesOf("unknown", "x"), nil)
	want := `"unknown" is not defined in queryParams Schema. Defined query params are: ["search","minRating","sortBy"].`
	if !qstate.IsUnknownParameter(err) || err.Error() != want {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err = qstate.BuildQueryString(ctx, productSchema(), qstate.ValuesOf("sortBy", "name"), nil)
	if !qstate.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "sortBy Invalid value 'name'. Accepted values are: rating,price." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	iss, _ := qstate.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "sortBy" {
		t.Fatalf("unexpected issues: %+v", iss)
	}
}

func TestBuildQueryString_Null(t *testing.T) {
	s := qstate.MustSchema(
		qstate.NewKey("cursor", dsl.String().NullDefault()),
		qstate.NewKey("q", dsl.String().Default("")),
	)
	ctx := context.Background()
	qs, err := qstate.BuildQueryString(ctx, s, qstate.ValuesOf("cursor", nil), nil)
	if err != nil || qs != "cursor=null" {
		t.Fatalf("got %q, %v", qs, err)
	}
	_, err = qstate.BuildQueryString(ctx, s, qstate.ValuesOf("q", nil), nil)
	if !qstate.IsTypeMismatch(err) || err.Error() != "q was expecting a string but received null." {
		t.Fatalf("unexpected err: %v", err)
	}
	qs, err = qstate.BuildQueryString(ctx, s, qstate.ValuesOf("q", qstate.Undefined), nil)
	if err != nil || qs != "" {
		t.Fatalf("undefined should be omitted, got %q, %v", qs, err)
	}
}

func TestBuildQueryStringFromCurrent(t *testing.T) {
	qs, err := qstate.BuildQueryStringFromCurrent(context.Background(), productSchema(),
		"?search=boots&utm_source=fb", qstate.ValuesOf("minRating", 4), qstate.PreserveAll)
	if err != nil {
		t.Fatalf("build err: %v", err)
	}
	if qs != "search=boots&utm_source=fb&minRating=4" {
		t.Fatalf("unexpected: %s", qs)
	}
}

func TestPickMatchingSchema(t *testing.T) {
	s := qstate.MustSchema(qstate.NewKey("a", dsl.Number()))
	got := qstate.PickMatchingSchema(s, qstate.ValuesOf("a", 1, "b", 2))
	if got.Len() != 1 {
		t.Fatalf("unexpected keys: %v", got.Keys())
	}
	if a, _ := got.Get("a"); a != 1 {
		t.Fatalf("a: %#v", a)
	}
	// no type validation
	got = qstate.PickMatchingSchema(s, qstate.ValuesOf("a", "not a number"))
	if a, _ := got.Get("a"); a != "not a number" {
		t.Fatalf("a: %#v", a)
	}
	if qstate.PickMatchingSchema(s, nil).Len() != 0 {
		t.Fatalf("nil record should pick nothing")
	}
}
