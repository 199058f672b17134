package qstate

import "context"

// SerializeAll converts every entry of state to its raw form. Keys without a
// schema entry fail with unknown_parameter; Undefined results are omitted.
// Field errors carry the parameter name.
func SerializeAll(s Schema, state *Values) (*RawParams, error) {
	out := NewRawParams()
	for k, v := range state.All() {
		p, ok := s.Param(k)
		if !ok {
			return nil, unknownParameter(k, s.Keys())
		}
		raw, err := p.Serialize(v)
		if err != nil {
			return nil, atParam(k, err)
		}
		if raw.IsUndefined() {
			continue
		}
		out.Set(k, raw)
	}
	return out, nil
}

// DeserializeAll decodes one value per schema key (in schema order), whether
// or not the key is present in raw. It does not run validators.
func DeserializeAll(ctx context.Context, s Schema, raw *RawParams) (*Values, error) {
	out := NewValues()
	for k, p := range s.Params() {
		r, _ := raw.Get(k)
		v, err := p.Deserialize(ctx, r)
		if err != nil {
			return nil, atParam(k, err)
		}
		out.Set(k, v)
	}
	return out, nil
}

// DefaultState resolves every parameter's default value.
func DefaultState(ctx context.Context, s Schema) *Values {
	out := NewValues()
	for k, p := range s.Params() {
		out.Set(k, p.GetDefault(ctx))
	}
	return out
}

// PickMatchingSchema keeps only the entries of rec whose key is declared in s,
// in schema order. It performs no type validation.
func PickMatchingSchema(s Schema, rec *Values) *Values {
	out := NewValues()
	if rec == nil {
		return out
	}
	for _, k := range s.keys {
		if v, ok := rec.Get(k); ok {
			out.Set(k, v)
		}
	}
	return out
}
