package qstate

// RawKind tells which of the three query-string states a Raw holds.
type RawKind uint8

const (
	RawUndefined RawKind = iota // Absent; never written to a query string.
	RawNull                     // Written as the literal "null".
	RawString                   // A plain string value (possibly empty).
)

// Raw is a single raw query-string value. The zero value is undefined.
type Raw struct {
	Kind  RawKind
	Value string
}

// StringRaw returns a Raw holding s.
func StringRaw(s string) Raw { return Raw{Kind: RawString, Value: s} }

// NullRaw returns the null marker.
func NullRaw() Raw { return Raw{Kind: RawNull} }

// IsUndefined reports whether the value is absent.
func (r Raw) IsUndefined() bool { return r.Kind == RawUndefined }

// IsNull reports whether the value is the null marker.
func (r Raw) IsNull() bool { return r.Kind == RawNull }

// String renders the value for diagnostics.
func (r Raw) String() string {
	switch r.Kind {
	case RawNull:
		return "null"
	case RawString:
		return r.Value
	default:
		return "undefined"
	}
}

type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined is the decoded-side marker for "no value". It is distinct from nil,
// which is the null marker.
var Undefined any = undefinedValue{}

// IsUndefined reports whether v is the Undefined marker.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedValue)
	return ok
}
