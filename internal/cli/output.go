package cli

import (
	"io"
	"math"

	json "github.com/goccy/go-json"

	qstate "github.com/reoring/qstate"
)

type fallbackJSON struct {
	Param   string `json:"param"`
	Message string `json:"message"`
}

type stateJSON struct {
	Values         map[string]any `json:"values"`
	DefaultApplied []string       `json:"defaultApplied,omitempty"`
	Fallbacks      []fallbackJSON `json:"fallbacks,omitempty"`
}

func newStateJSON(s qstate.Schema, d qstate.Decoded) stateJSON {
	out := stateJSON{Values: valuesJSON(d.Values)}
	for _, k := range s.Keys() {
		if d.DefaultApplied(k) {
			out.DefaultApplied = append(out.DefaultApplied, k)
		}
	}
	for _, it := range d.Fallbacks {
		out.Fallbacks = append(out.Fallbacks, fallbackJSON{Param: it.Path, Message: it.Message})
	}
	return out
}

// valuesJSON drops Undefined entries and spells non-finite numbers as strings.
func valuesJSON(v *qstate.Values) map[string]any {
	out := make(map[string]any, v.Len())
	for k, x := range v.All() {
		if qstate.IsUndefined(x) {
			continue
		}
		out[k] = jsonSafe(x)
	}
	return out
}

func jsonSafe(x any) any {
	switch t := x.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return formatNonFinite(t)
		}
	case []float64:
		out := make([]any, len(t))
		for i, f := range t {
			out[i] = jsonSafe(f)
		}
		return out
	}
	return x
}

func formatNonFinite(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f > 0:
		return "Infinity"
	default:
		return "-Infinity"
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
