package qstate

import "context"

type contextKey int

const (
	_ctxKeyData contextKey = iota
)

// WithData returns a child context carrying the caller's context data. The
// value is handed unchanged to default-value functions and validators.
func WithData(ctx context.Context, data any) context.Context {
	return context.WithValue(ctx, _ctxKeyData, data)
}

// Data returns the context data attached by WithData, or nil.
func Data(ctx context.Context) any {
	if ctx == nil {
		return nil
	}
	return ctx.Value(_ctxKeyData)
}

// DataAs returns the context data as T.
func DataAs[T any](ctx context.Context) (T, bool) {
	var zero T
	v := Data(ctx)
	if v == nil {
		return zero, false
	}
	if tv, ok := v.(T); ok {
		return tv, true
	}
	return zero, false
}
