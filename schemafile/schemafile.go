// Package schemafile loads query parameter schemas declared in YAML.
//
//	strategy: preserve_external_only
//	params:
//	  - name: search
//	    type: string
//	    default: ""
//	  - name: sortBy
//	    type: string
//	    default: rating
//	    oneOf: [rating, price]
//	  - name: minRating
//	    type: number
//	    default: 0
//	    min: 0
//	    max: 5
//	  - name: cursor
//	    type: string
//	    default: null
//
// Supported types: string, boolean, number, integer, strings, numbers, json,
// time. "default: null" makes null the default; omitting default leaves the
// parameter without one.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	qstate "github.com/reoring/qstate"
	"github.com/reoring/qstate/dsl"
	"github.com/reoring/qstate/rules"
)

// Document is the YAML shape of a schema file.
type Document struct {
	Strategy string      `yaml:"strategy,omitempty"`
	Params   []ParamSpec `yaml:"params"`
}

// ParamSpec declares one parameter.
type ParamSpec struct {
	Name           string     `yaml:"name"`
	Type           string     `yaml:"type"`
	Default        yaml.Node  `yaml:"default"`
	AllowNull      bool       `yaml:"allowNull,omitempty"`
	AllowUndefined bool       `yaml:"allowUndefined,omitempty"`
	OneOf          yaml.Node  `yaml:"oneOf"`
	Min            *float64   `yaml:"min,omitempty"`
	Max            *float64   `yaml:"max,omitempty"`
	Pattern        string     `yaml:"pattern,omitempty"`
	MaxItems       *int       `yaml:"maxItems,omitempty"`
	NotEmpty       bool       `yaml:"notEmpty,omitempty"`
}

// File is a loaded schema file.
type File struct {
	Document Document
	Schema   qstate.Schema
	// Strategy is the declared merge strategy (PreserveAll when omitted).
	Strategy qstate.Strategy
}

// LoadFile reads and builds the schema file at path.
func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Load reads a schema file from r.
func Load(r io.Reader) (*File, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse builds a schema from YAML. Unknown fields are rejected.
func Parse(b []byte) (*File, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &qstate.ConfigError{Message: "invalid schema file: " + err.Error()}
	}
	return Build(doc)
}

// Build turns a Document into a schema.
func Build(doc Document) (*File, error) {
	f := &File{Document: doc}
	if doc.Strategy != "" {
		st, err := qstate.ParseStrategy(doc.Strategy)
		if err != nil {
			return nil, &qstate.ConfigError{Message: err.Error()}
		}
		f.Strategy = st
	}
	fields := make([]qstate.Field, 0, len(doc.Params))
	var errs []error
	for _, p := range doc.Params {
		fd, err := buildParam(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fields = append(fields, fd)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	s, err := qstate.NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	f.Schema = s
	return f, nil
}

func buildParam(p ParamSpec) (qstate.Field, error) {
	switch p.Type {
	case "string", "":
		vs, err := comparableRules[string](p)
		if err != nil {
			return nil, err
		}
		if p.Pattern != "" {
			v, err := rules.Pattern(p.Pattern)
			if err != nil {
				return nil, paramError(p, err.Error())
			}
			vs = append(vs, v)
		}
		return finish(p, dsl.String(), vs)
	case "boolean":
		return finish(p, dsl.Bool(), nil)
	case "number":
		vs, err := comparableRules[float64](p)
		if err != nil {
			return nil, err
		}
		if p.Min != nil || p.Max != nil {
			vs = append(vs, rules.Between(bound(p.Min, -maxFloat), bound(p.Max, maxFloat)))
		}
		return finish(p, dsl.Number(), vs)
	case "integer":
		vs, err := comparableRules[int](p)
		if err != nil {
			return nil, err
		}
		if p.Min != nil || p.Max != nil {
			vs = append(vs, rules.Between(int(bound(p.Min, minInt)), int(bound(p.Max, maxInt))))
		}
		return finish(p, dsl.Int(), vs)
	case "strings":
		return finish(p, dsl.Strings(), listRules(p))
	case "numbers":
		return finish(p, dsl.Numbers(), listRules(p))
	case "json":
		return finish(p, dsl.JSON[any](), nil)
	case "time":
		return finish[time.Time](p, dsl.Time(), nil)
	default:
		return nil, paramError(p, fmt.Sprintf("unknown type %q", p.Type))
	}
}

const (
	maxFloat = 1.7976931348623157e308
	maxInt   = float64(1<<53 - 1)
	minInt   = -maxInt
)

func bound(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func comparableRules[T comparable](p ParamSpec) ([]qstate.Validator, error) {
	var vs []qstate.Validator
	if p.OneOf.Kind != 0 {
		var values []T
		if err := p.OneOf.Decode(&values); err != nil {
			return nil, paramError(p, "oneOf: "+err.Error())
		}
		v, err := rules.OneOf(values)
		if err != nil {
			return nil, paramError(p, err.Error())
		}
		vs = append(vs, v)
	}
	if p.NotEmpty {
		vs = append(vs, rules.NotEmpty())
	}
	return vs, nil
}

func listRules(p ParamSpec) []qstate.Validator {
	var vs []qstate.Validator
	if p.NotEmpty {
		vs = append(vs, rules.NotEmpty())
	}
	if p.MaxItems != nil {
		vs = append(vs, rules.MaxItems(*p.MaxItems))
	}
	return vs
}

func finish[T any](p ParamSpec, d qstate.Def[T], vs []qstate.Validator) (qstate.Field, error) {
	if p.Default.Kind != 0 {
		if p.Default.ShortTag() == "!!null" {
			d = d.NullDefault()
		} else {
			var v T
			if err := p.Default.Decode(&v); err != nil {
				return nil, paramError(p, "default: "+err.Error())
			}
			d = d.Default(v)
		}
	}
	if p.AllowNull {
		d = d.AllowNull()
	}
	if p.AllowUndefined {
		d = d.AllowUndefined()
	}
	if len(vs) > 0 {
		d = d.Validate(rules.All(vs...))
	}
	return qstate.NewKey(p.Name, d), nil
}

func paramError(p ParamSpec, msg string) error {
	return &qstate.ConfigError{Message: fmt.Sprintf("param %q: %s", p.Name, msg)}
}
