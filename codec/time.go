package codec

import (
	"time"

	qstate "github.com/reoring/qstate"
)

// TimeRFC3339 returns a codec between RFC3339 strings and time.Time.
// Output is normalized to UTC with trailing zero fractions trimmed.
func TimeRFC3339() qstate.Codec[time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Expect() string { return "a time" }
func (rfc3339Codec) Accept(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}
func (rfc3339Codec) Format(v time.Time) (string, error) { return formatRFC3339Canonical(v), nil }
func (rfc3339Codec) Parse(s string) (time.Time, bool) {
	t, err := parseRFC3339(s)
	return t, err == nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
