package qstate

import (
	"context"
)

// DecodeState is the read path: it decodes one value per schema key from
// raw and heals values rejected by validators with their defaults.
// Type, unknown-parameter and missing-default failures are returned.
func DecodeState(ctx context.Context, s Schema, raw *RawParams) (*Values, error) {
	d, err := DecodeStateWithMeta(ctx, s, raw)
	if err != nil {
		return nil, err
	}
	return d.Values, nil
}

// DecodeStateWithMeta is DecodeState returning presence metadata and the
// list of validation fallbacks.
func DecodeStateWithMeta(ctx context.Context, s Schema, raw *RawParams) (Decoded, error) {
	pm := make(PresenceMap, s.Len())
	for k, p := range s.Params() {
		r, _ := raw.Get(k)
		flags := presenceOf(r)
		if !decodesFromURL(p, r) {
			flags |= PresenceDefaultApplied
		}
		pm[k] = flags
	}
	values, err := DeserializeAll(ctx, s, raw)
	if err != nil {
		return Decoded{}, err
	}
	values, fallbacks, err := validateKeys(ctx, s, values, s.keys, false)
	if err != nil {
		return Decoded{}, err
	}
	for _, it := range fallbacks {
		pm[it.Path] |= PresenceDefaultApplied
	}
	return Decoded{Values: values, Presence: pm, Fallbacks: fallbacks}, nil
}

// decodesFromURL reports whether the URL value itself (not the default)
// yields the decoded value.
func decodesFromURL(p Param, r Raw) bool {
	if r.IsUndefined() {
		return false
	}
	if d, ok := p.(interface{ fromURL(Raw) any }); ok {
		return !IsUndefined(d.fromURL(r))
	}
	return true
}

// BuildQueryString builds a brand-new query string from update, merged over
// other (raw params outside the schema, already in string form). update is
// validated first and any failure aborts the call.
func BuildQueryString(ctx context.Context, s Schema, update *Values, other *RawParams) (string, error) {
	if _, err := ValidatePartial(ctx, s, update, true); err != nil {
		return "", err
	}
	serialized, err := SerializeAll(s, update)
	if err != nil {
		return "", err
	}
	out := other.Clone()
	out.Merge(serialized)
	return FormatQuery(out), nil
}

// BuildQueryStringFromCurrent parses the current query string, applies update
// with strategy st and returns the new query string.
func BuildQueryStringFromCurrent(ctx context.Context, s Schema, currentQuery string, update *Values, st Strategy) (string, error) {
	next, err := EncodeStateUpdate(ctx, s, ParseQuery(currentQuery), update, st)
	if err != nil {
		return "", err
	}
	return FormatQuery(next), nil
}
