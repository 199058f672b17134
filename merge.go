package qstate

import (
	"context"
	"fmt"
	"strings"

	"github.com/reoring/qstate/i18n"
)

// Strategy decides how much of the existing query string survives an update.
type Strategy int

const (
	PreserveAll            Strategy = iota // Keep every existing raw param, schema and external.
	PreserveExternalOnly                   // Keep only raw params outside the schema.
	PreserveAllWithDefault                 // PreserveAll, plus serialized defaults for absent schema keys.
	PreserveNone                           // Start from empty.
)

var strategyNames = [...]string{
	PreserveAll:            "preserve_all",
	PreserveExternalOnly:   "preserve_external_only",
	PreserveAllWithDefault: "preserve_all_with_default",
	PreserveNone:           "preserve_none",
}

func (st Strategy) String() string {
	if st >= 0 && int(st) < len(strategyNames) {
		return strategyNames[st]
	}
	return fmt.Sprintf("Strategy(%d)", int(st))
}

// ParseStrategy accepts the snake_case names, case-insensitively
// ("preserve_all", "PRESERVE_EXTERNAL_ONLY", ...).
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range strategyNames {
		if s == n {
			return Strategy(i), nil
		}
	}
	return 0, unknownStrategy(name)
}

// MarshalText implements encoding.TextMarshaler.
func (st Strategy) MarshalText() ([]byte, error) {
	if st < 0 || int(st) >= len(strategyNames) {
		return nil, unknownStrategy(st.String())
	}
	return []byte(st.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (st *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*st = v
	return nil
}

func unknownStrategy(name string) Issues {
	return Issues{{
		Code:    CodeUnknownStrategy,
		Message: i18n.T(CodeUnknownStrategy, map[string]string{"strategy": name}),
		Params:  map[string]any{"strategy": name},
	}}
}

// MergeBase computes the raw params an update is merged into.
func MergeBase(ctx context.Context, s Schema, current *RawParams, st Strategy) (*RawParams, error) {
	switch st {
	case PreserveAll:
		return current.Clone(), nil
	case PreserveExternalOnly:
		return ExternalParams(s, current), nil
	case PreserveNone:
		return NewRawParams(), nil
	case PreserveAllWithDefault:
		base, err := SerializeAll(s, DefaultState(ctx, s))
		if err != nil {
			return nil, err
		}
		base.Merge(current)
		return base, nil
	default:
		return nil, unknownStrategy(st.String())
	}
}

// ExternalParams returns the raw params whose keys are not declared in s.
func ExternalParams(s Schema, raw *RawParams) *RawParams {
	out := NewRawParams()
	for k, v := range raw.All() {
		if !s.Has(k) {
			out.Set(k, v)
		}
	}
	return out
}

// SchemaParams returns the raw params whose keys are declared in s.
func SchemaParams(s Schema, raw *RawParams) *RawParams {
	out := NewRawParams()
	for k, v := range raw.All() {
		if s.Has(k) {
			out.Set(k, v)
		}
	}
	return out
}

// EncodeStateUpdate validates update (rejecting on the first failure),
// serializes it and merges it over the base selected by st. New values win
// on key collision. current is not modified.
func EncodeStateUpdate(ctx context.Context, s Schema, current *RawParams, update *Values, st Strategy) (*RawParams, error) {
	if _, err := ValidatePartial(ctx, s, update, true); err != nil {
		return nil, err
	}
	base, err := MergeBase(ctx, s, current, st)
	if err != nil {
		return nil, err
	}
	serialized, err := SerializeAll(s, update)
	if err != nil {
		return nil, err
	}
	base.Merge(serialized)
	return base, nil
}
