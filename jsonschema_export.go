package qstate

import (
	"context"

	js "github.com/reoring/qstate/jsonschema"
)

// JSONSchema exports s as an object schema, one property per parameter in
// schema order. Parameters outside the schema are allowed, as they are on the
// query string. Codecs that do not describe themselves export as strings.
func (s Schema) JSONSchema(ctx context.Context) (*js.Schema, error) {
	allow := true
	out := &js.Schema{
		Type:                 "object",
		Properties:           make(map[string]*js.Schema, len(s.keys)),
		PropertyOrder:        append([]string(nil), s.keys...),
		AdditionalProperties: &allow,
	}
	for k, p := range s.Params() {
		ps, err := paramJSONSchema(ctx, p)
		if err != nil {
			return nil, configError("%s: %s", k, err.Error())
		}
		out.Properties[k] = ps
	}
	return out, nil
}

func paramJSONSchema(ctx context.Context, p Param) (*js.Schema, error) {
	ps := &js.Schema{Type: "string"}
	if d, ok := p.(interface{ jsonSchema() (*js.Schema, error) }); ok {
		s, err := d.jsonSchema()
		if err != nil {
			return nil, err
		}
		if s != nil {
			ps = s
		}
	}
	if dv := p.GetDefault(ctx); dv != nil && !IsUndefined(dv) {
		ps.Default = dv
	}
	if p.Describe().AllowNull {
		ps = js.Nullable(ps)
	}
	return ps, nil
}
