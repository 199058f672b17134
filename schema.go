package qstate

import (
	"errors"
	"iter"
	"slices"
)

// Schema is an ordered, immutable set of named parameter definitions.
type Schema struct {
	keys   []string
	params map[string]Param
}

// NewSchema builds a schema from fields. Empty or duplicate names and
// misconfigured definitions are reported as ConfigErrors.
func NewSchema(fields ...Field) (Schema, error) {
	s := Schema{params: make(map[string]Param, len(fields))}
	var errs []error
	for _, f := range fields {
		if f == nil {
			errs = append(errs, configError("nil schema field"))
			continue
		}
		name := f.FieldName()
		p := f.FieldParam()
		switch {
		case name == "":
			errs = append(errs, configError("schema field name must not be empty"))
			continue
		case p == nil:
			errs = append(errs, configError("%q has no parameter definition", name))
			continue
		}
		if _, dup := s.params[name]; dup {
			errs = append(errs, configError("%q is defined more than once", name))
			continue
		}
		if e, ok := p.(interface{ Err() error }); ok && e.Err() != nil {
			errs = append(errs, configError("%s: %s", name, e.Err().Error()))
			continue
		}
		s.keys = append(s.keys, name)
		s.params[name] = p
	}
	if len(errs) > 0 {
		return Schema{}, errors.Join(errs...)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(fields ...Field) Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Keys returns the parameter names in declaration order.
func (s Schema) Keys() []string { return slices.Clone(s.keys) }

// Len returns the number of parameters.
func (s Schema) Len() int { return len(s.keys) }

// Has reports whether name is declared.
func (s Schema) Has(name string) bool {
	_, ok := s.params[name]
	return ok
}

// Param returns the definition declared under name.
func (s Schema) Param(name string) (Param, bool) {
	p, ok := s.params[name]
	return p, ok
}

// Params iterates over the definitions in declaration order.
func (s Schema) Params() iter.Seq2[string, Param] {
	return func(yield func(string, Param) bool) {
		for _, k := range s.keys {
			if !yield(k, s.params[k]) {
				return
			}
		}
	}
}
