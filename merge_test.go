package qstate_test

import (
	"context"
	"testing"

	qstate "github.com/reoring/qstate"
	"github.com/reoring/qstate/dsl"
)

func mergeSchema() qstate.Schema {
	return qstate.MustSchema(
		qstate.NewKey("a", dsl.Number().Default(0)),
		qstate.NewKey("b", dsl.String().Default("x")),
	)
}

func TestEncodeStateUpdate_Strategies(t *testing.T) {
	cases := []struct {
		name    string
		st      qstate.Strategy
		current *qstate.RawParams
		want    string
	}{
		{"preserve all", qstate.PreserveAll, qstate.RawOf("a", "1", "utm_source", "fb"), "a=2&utm_source=fb"},
		{"preserve external only", qstate.PreserveExternalOnly, qstate.RawOf("a", "1", "utm_source", "fb"), "utm_source=fb&a=2"},
		{"preserve external drops other schema keys", qstate.PreserveExternalOnly, qstate.RawOf("b", "y", "utm_source", "fb"), "utm_source=fb&a=2"},
		{"preserve all with default", qstate.PreserveAllWithDefault, qstate.RawOf("utm_source", "fb"), "a=2&b=x&utm_source=fb"},
		{"preserve all with default keeps current", qstate.PreserveAllWithDefault, qstate.RawOf("b", "y"), "a=2&b=y"},
		{"preserve none", qstate.PreserveNone, qstate.RawOf("a", "1", "utm_source", "fb"), "a=2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := qstate.FormatQuery(tc.current)
			out, err := qstate.EncodeStateUpdate(context.Background(), mergeSchema(), tc.current, qstate.ValuesOf("a", 2), tc.st)
			if err != nil {
				t.Fatalf("encode err: %v", err)
			}
			if got := qstate.FormatQuery(out); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
			if qstate.FormatQuery(tc.current) != before {
				t.Fatalf("current params were modified")
			}
		})
	}
}

func TestEncodeStateUpdate_FailureLeavesNothing(t *testing.T) {
	out, err := qstate.EncodeStateUpdate(context.Background(), mergeSchema(), qstate.RawOf("a", "1"), qstate.ValuesOf("a", "two"), qstate.PreserveAll)
	if out != nil || !qstate.IsTypeMismatch(err) {
		t.Fatalf("expected type mismatch and no output, got %v, %v", out, err)
	}
	_, err = qstate.EncodeStateUpdate(context.Background(), mergeSchema(), nil, qstate.ValuesOf("a", 1), qstate.Strategy(42))
	if !qstate.HasCode(err, qstate.CodeUnknownStrategy) {
		t.Fatalf("expected unknown strategy, got %v", err)
	}
}

func TestParseStrategy(t *testing.T) {
	for _, st := range []qstate.Strategy{qstate.PreserveAll, qstate.PreserveExternalOnly, qstate.PreserveAllWithDefault, qstate.PreserveNone} {
		got, err := qstate.ParseStrategy(st.String())
		if err != nil || got != st {
			t.Fatalf("%s: got %v, %v", st, got, err)
		}
	}
	if got, err := qstate.ParseStrategy(" PRESERVE_EXTERNAL_ONLY "); err != nil || got != qstate.PreserveExternalOnly {
		t.Fatalf("case-insensitive parse failed: %v, %v", got, err)
	}
	if _, err := qstate.ParseStrategy("keep_some"); !qstate.HasCode(err, qstate.CodeUnknownStrategy) {
		t.Fatalf("expected unknown strategy, got %v", err)
	}
	var st qstate.Strategy
	if err := st.UnmarshalText([]byte("preserve_none")); err != nil || st != qstate.PreserveNone {
		t.Fatalf("unmarshal failed: %v, %v", st, err)
	}
	if b, err := qstate.PreserveAll.MarshalText(); err != nil || string(b) != "preserve_all" {
		t.Fatalf("marshal failed: %s, %v", b, err)
	}
	if _, err := qstate.Strategy(9).MarshalText(); err == nil {
		t.Fatalf("expected error for out-of-range strategy")
	}
}

func TestExternalAndSchemaParams(t *testing.T) {
	raw := qstate.RawOf("a", "1", "utm_source", "fb", "b", "y")
	ext := qstate.ExternalParams(mergeSchema(), raw)
	if ext.Len() != 1 || !ext.Has("utm_source") {
		t.Fatalf("external: %v", ext.Keys())
	}
	own := qstate.SchemaParams(mergeSchema(), raw)
	if own.Len() != 2 || own.Has("utm_source") {
		t.Fatalf("schema: %v", own.Keys())
	}
}
