package qstate

import (
	"iter"
	"slices"
)

// Record is a string-keyed map that remembers insertion order.
// Setting an existing key replaces its value but keeps its original position.
// The zero value is an empty record ready to use.
type Record[V any] struct {
	keys []string
	m    map[string]V
}

// RawParams is the literal content of a query string before any schema
// interpretation. It may contain keys outside the schema (external params).
type RawParams = Record[Raw]

// Values maps parameter names to decoded values. nil is the null marker and
// Undefined is the undefined marker.
type Values = Record[any]

// NewValues returns an empty Values record.
func NewValues() *Values { return &Values{} }

// NewRawParams returns an empty RawParams record.
func NewRawParams() *RawParams { return &RawParams{} }

// ValuesOf builds a Values record from alternating key/value arguments.
// It panics when a key is not a string or the argument count is odd.
func ValuesOf(kv ...any) *Values {
	if len(kv)%2 != 0 {
		panic("qstate: ValuesOf requires key/value pairs")
	}
	v := &Values{}
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("qstate: ValuesOf keys must be strings")
		}
		v.Set(k, kv[i+1])
	}
	return v
}

// RawOf builds a RawParams record of string values from alternating
// key/value arguments. It panics when the argument count is odd.
func RawOf(kv ...string) *RawParams {
	if len(kv)%2 != 0 {
		panic("qstate: RawOf requires key/value pairs")
	}
	r := &RawParams{}
	for i := 0; i < len(kv); i += 2 {
		r.Set(kv[i], StringRaw(kv[i+1]))
	}
	return r
}

// Set stores v under k.
func (r *Record[V]) Set(k string, v V) {
	if r.m == nil {
		r.m = make(map[string]V)
	}
	if _, ok := r.m[k]; !ok {
		r.keys = append(r.keys, k)
	}
	r.m[k] = v
}

// Get returns the value stored under k.
func (r *Record[V]) Get(k string) (V, bool) {
	if r == nil || r.m == nil {
		var zero V
		return zero, false
	}
	v, ok := r.m[k]
	return v, ok
}

// Has reports whether k is present.
func (r *Record[V]) Has(k string) bool {
	_, ok := r.Get(k)
	return ok
}

// Delete removes k.
func (r *Record[V]) Delete(k string) {
	if r == nil || r.m == nil {
		return
	}
	if _, ok := r.m[k]; !ok {
		return
	}
	delete(r.m, k)
	if i := slices.Index(r.keys, k); i >= 0 {
		r.keys = slices.Delete(r.keys, i, i+1)
	}
}

// Len returns the number of keys.
func (r *Record[V]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns a copy of the keys in insertion order.
func (r *Record[V]) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.keys)
}

// All iterates over the entries in insertion order.
func (r *Record[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if r == nil {
			return
		}
		for _, k := range r.keys {
			if !yield(k, r.m[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy.
func (r *Record[V]) Clone() *Record[V] {
	out := &Record[V]{}
	if r == nil {
		return out
	}
	out.keys = slices.Clone(r.keys)
	out.m = make(map[string]V, len(r.m))
	for k, v := range r.m {
		out.m[k] = v
	}
	return out
}

// Merge sets every entry of other into r. Entries of other win on collision;
// keys new to r are appended in other's order.
func (r *Record[V]) Merge(other *Record[V]) {
	for k, v := range other.All() {
		r.Set(k, v)
	}
}

// Map returns the entries as a plain map (order is lost).
func (r *Record[V]) Map() map[string]V {
	out := make(map[string]V, r.Len())
	for k, v := range r.All() {
		out[k] = v
	}
	return out
}
