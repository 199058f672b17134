package qstate

import (
	"context"

	js "github.com/reoring/qstate/jsonschema"
)

// Validator rejects a value by returning a *ValidationError. It receives the
// candidate value, the whole decoded (or partial) state it belongs to, and
// the caller's context. Validators must be pure.
type Validator func(ctx context.Context, v any, state *Values) error

// Param is the type-erased view of a parameter definition used by Schema.
type Param interface {
	// Serialize converts a decoded value to its raw form.
	Serialize(v any) (Raw, error)
	// Deserialize converts a raw value, falling back to the default when the
	// raw value is absent or undecodable.
	Deserialize(ctx context.Context, r Raw) (any, error)
	// GetDefault resolves the default value (Undefined when none).
	GetDefault(ctx context.Context) any
	// RunValidator runs the attached validator, if any.
	RunValidator(ctx context.Context, v any, state *Values) error
	// Describe reports static facts about the definition.
	Describe() ParamInfo
}

// ParamInfo describes a parameter definition.
type ParamInfo struct {
	Expect         string `json:"expect"`
	AllowNull      bool   `json:"allowNull"`
	AllowUndefined bool   `json:"allowUndefined"`
	HasDefault     bool   `json:"hasDefault"`
	HasValidator   bool   `json:"hasValidator"`
}

// Def is an immutable parameter definition over a codec. Builder methods
// return a modified copy, so a Def shared between schemas is never mutated.
type Def[T any] struct {
	codec          Codec[T]
	def            func(ctx context.Context) any
	validator      Validator
	allowNull      bool
	allowUndefined bool
	err            error
}

// Define returns a definition without default or validator.
func Define[T any](c Codec[T]) Def[T] {
	if c == nil {
		return Def[T]{err: configError("parameter definition requires a codec")}
	}
	return Def[T]{codec: c}
}

// Default sets a static default value.
func (d Def[T]) Default(v T) Def[T] {
	d.def = func(context.Context) any { return v }
	return d
}

// DefaultFunc computes the default from the context on every resolution.
func (d Def[T]) DefaultFunc(fn func(ctx context.Context) T) Def[T] {
	if fn == nil {
		d.err = configError("DefaultFunc requires a function")
		return d
	}
	d.def = func(ctx context.Context) any { return fn(ctx) }
	return d
}

// NullDefault makes null the default. It implies AllowNull.
func (d Def[T]) NullDefault() Def[T] {
	d.def = func(context.Context) any { return nil }
	d.allowNull = true
	return d
}

// Validate attaches a validator, replacing any previous one.
func (d Def[T]) Validate(fn Validator) Def[T] {
	if fn == nil {
		d.err = configError("Validate requires a validator function")
		return d
	}
	d.validator = fn
	return d
}

// AllowNull permits writing null for this parameter.
func (d Def[T]) AllowNull() Def[T] {
	d.allowNull = true
	return d
}

// AllowUndefined lets decoding yield Undefined when there is neither a URL
// value nor a default, instead of failing with missing_default.
func (d Def[T]) AllowUndefined() Def[T] {
	d.allowUndefined = true
	return d
}

// Err returns the configuration error recorded while building the definition.
func (d Def[T]) Err() error { return d.err }

// Codec returns the underlying codec.
func (d Def[T]) Codec() Codec[T] { return d.codec }

func (d Def[T]) Serialize(v any) (Raw, error) {
	if v == nil && !d.allowNull {
		return Raw{}, typeMismatch(d.codec.Expect(), nil)
	}
	return ToURL(d.codec, v)
}

func (d Def[T]) Deserialize(ctx context.Context, r Raw) (any, error) {
	v := FromURL(d.codec, r)
	if !IsUndefined(v) {
		return v, nil
	}
	dv := d.GetDefault(ctx)
	if IsUndefined(dv) {
		if d.allowUndefined {
			return Undefined, nil
		}
		return Undefined, missingDefault()
	}
	return dv, nil
}

func (d Def[T]) fromURL(r Raw) any { return FromURL(d.codec, r) }

func (d Def[T]) jsonSchema() (*js.Schema, error) {
	if c, ok := any(d.codec).(interface{ JSONSchema() (*js.Schema, error) }); ok {
		return c.JSONSchema()
	}
	return nil, nil
}

func (d Def[T]) GetDefault(ctx context.Context) any {
	if d.def == nil {
		return Undefined
	}
	return d.def(ctx)
}

func (d Def[T]) RunValidator(ctx context.Context, v any, state *Values) error {
	if d.validator == nil {
		return nil
	}
	return d.validator(ctx, v, state)
}

func (d Def[T]) Describe() ParamInfo {
	info := ParamInfo{
		AllowNull:      d.allowNull,
		AllowUndefined: d.allowUndefined,
		HasDefault:     d.def != nil,
		HasValidator:   d.validator != nil,
	}
	if d.codec != nil {
		info.Expect = d.codec.Expect()
	}
	return info
}

// Field is a named schema entry.
type Field interface {
	FieldName() string
	FieldParam() Param
}

// Key is a typed schema field. It gives typed access to the values of one
// parameter inside a Values record.
type Key[T any] struct {
	name string
	def  Def[T]
}

// NewKey binds a definition to a parameter name.
func NewKey[T any](name string, d Def[T]) Key[T] { return Key[T]{name: name, def: d} }

func (k Key[T]) FieldName() string { return k.name }
func (k Key[T]) FieldParam() Param { return k.def }

// Name returns the parameter name.
func (k Key[T]) Name() string { return k.name }

// Get returns the typed value. It returns false when the value is absent,
// null or Undefined.
func (k Key[T]) Get(v *Values) (T, bool) {
	x, ok := v.Get(k.name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := x.(T)
	return t, ok
}

// Set stores a typed value.
func (k Key[T]) Set(v *Values, x T) { v.Set(k.name, x) }

// SetNull stores the null marker.
func (k Key[T]) SetNull(v *Values) { v.Set(k.name, nil) }

type namedParam struct {
	name string
	p    Param
}

func (n namedParam) FieldName() string { return n.name }
func (n namedParam) FieldParam() Param { return n.p }

// Named binds an untyped Param to a name, for schemas assembled at runtime.
func Named(name string, p Param) Field { return namedParam{name: name, p: p} }
