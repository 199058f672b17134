package qstate

import (
	"context"
	"errors"
)

// ValidateAll runs every schema validator against state. With throwOnError a
// rejected value aborts the call (write path). Without it the value is
// replaced by the parameter's default and validation continues (read path).
// state itself is never modified.
func ValidateAll(ctx context.Context, s Schema, state *Values, throwOnError bool) (*Values, error) {
	out, _, err := validateKeys(ctx, s, state, s.keys, throwOnError)
	return out, err
}

// ValidatePartial is ValidateAll restricted to the keys present in partial.
// Keys unknown to the schema are skipped; SerializeAll reports them.
func ValidatePartial(ctx context.Context, s Schema, partial *Values, throwOnError bool) (*Values, error) {
	keys := make([]string, 0, partial.Len())
	for k := range partial.All() {
		if s.Has(k) {
			keys = append(keys, k)
		}
	}
	out, _, err := validateKeys(ctx, s, partial, keys, throwOnError)
	return out, err
}

// validateKeys returns the validated copy and, in recover mode, one issue per
// value that was replaced by its default.
func validateKeys(ctx context.Context, s Schema, state *Values, keys []string, throwOnError bool) (*Values, Issues, error) {
	out := state.Clone()
	var fallbacks Issues
	for _, k := range keys {
		p := s.params[k]
		v, ok := out.Get(k)
		if !ok {
			v = Undefined
		}
		verr := p.RunValidator(ctx, v, out)
		if verr == nil {
			continue
		}
		var ve *ValidationError
		if throwOnError || !errors.As(verr, &ve) {
			return nil, nil, atParam(k, verr)
		}
		fallbacks = append(fallbacks, Issue{
			Path:    k,
			Code:    CodeValidation,
			Message: k + " " + ve.Message,
			Cause:   verr,
			Params:  map[string]any{"rejected": v},
		})
		out.Set(k, p.GetDefault(ctx))
	}
	return out, fallbacks, nil
}
