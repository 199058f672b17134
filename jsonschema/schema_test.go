package jsonschema

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestNullable_Marshal(t *testing.T) {
	b, err := json.Marshal(Nullable(&Schema{Type: "string"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"anyOf":[{"type":"string"},{"type":"null"}]}`; got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}
