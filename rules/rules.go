// Package rules provides reusable validators for query parameter definitions.
//
// Validators reject with *qstate.ValidationError, so on the read path the
// rejected value is replaced by the parameter default and on the write path
// the update is refused.
package rules

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	qstate "github.com/reoring/qstate"
	"github.com/reoring/qstate/i18n"
)

// OneOf returns a validator accepting only values equal to one of values.
// A nil slice is a configuration error.
func OneOf[T comparable](values []T) (qstate.Validator, error) {
	if values == nil {
		return nil, &qstate.ConfigError{Message: "Validator 'oneOf()' takes an array as first argument."}
	}
	accepted := slices.Clone(values)
	parts := make([]string, len(accepted))
	for i, a := range accepted {
		parts[i] = fmt.Sprint(a)
	}
	list := strings.Join(parts, ",")
	return func(_ context.Context, v any, _ *qstate.Values) error {
		if t, ok := v.(T); ok && slices.Contains(accepted, t) {
			return nil
		}
		return reject("not_one_of", map[string]string{"value": show(v), "accepted": list})
	}, nil
}

// MustOneOf is like OneOf but panics on a configuration error.
func MustOneOf[T comparable](values []T) qstate.Validator {
	return must(OneOf(values))
}

// Between accepts numbers within [lo, hi]. Values of another type pass; the
// codec is responsible for types.
func Between[N cmp.Ordered](lo, hi N) qstate.Validator {
	return func(_ context.Context, v any, _ *qstate.Values) error {
		n, ok := v.(N)
		if !ok {
			return nil
		}
		if n < lo || n > hi {
			return reject("out_of_range", map[string]string{
				"value": show(v), "min": fmt.Sprint(lo), "max": fmt.Sprint(hi),
			})
		}
		return nil
	}
}

// NotEmpty rejects null, empty strings and empty lists.
func NotEmpty() qstate.Validator {
	return func(_ context.Context, v any, _ *qstate.Values) error {
		if v == nil {
			return reject("empty", nil)
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
			if rv.Len() == 0 {
				return reject("empty", nil)
			}
		}
		return nil
	}
}

// MaxItems rejects lists longer than n.
func MaxItems(n int) qstate.Validator {
	return func(_ context.Context, v any, _ *qstate.Values) error {
		if v == nil {
			return nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil
		}
		if rv.Len() > n {
			return reject("too_many_items", map[string]string{
				"count": strconv.Itoa(rv.Len()), "max": strconv.Itoa(n),
			})
		}
		return nil
	}
}

// Pattern accepts strings matching expr. An invalid expression is a
// configuration error.
func Pattern(expr string) (qstate.Validator, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &qstate.ConfigError{Message: fmt.Sprintf("Validator 'pattern()' got an invalid expression: %v", err)}
	}
	return func(_ context.Context, v any, _ *qstate.Values) error {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		if !re.MatchString(s) {
			return reject("pattern", map[string]string{"value": s, "pattern": expr})
		}
		return nil
	}, nil
}

// MustPattern is like Pattern but panics on a configuration error.
func MustPattern(expr string) qstate.Validator { return must(Pattern(expr)) }

// All runs validators in order and returns the first rejection.
func All(vs ...qstate.Validator) qstate.Validator {
	vs = slices.DeleteFunc(slices.Clone(vs), func(v qstate.Validator) bool { return v == nil })
	return func(ctx context.Context, v any, state *qstate.Values) error {
		for _, fn := range vs {
			if err := fn(ctx, v, state); err != nil {
				return err
			}
		}
		return nil
	}
}

// ------- helpers -------

func reject(code string, data map[string]string) error {
	return &qstate.ValidationError{Message: i18n.T(code, data)}
}

func show(v any) string {
	switch {
	case v == nil:
		return "null"
	case qstate.IsUndefined(v):
		return "undefined"
	}
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func must(v qstate.Validator, err error) qstate.Validator {
	if err != nil {
		panic(err)
	}
	return v
}
