// Package middleware binds query parameter schemas to net/http handlers.
//
// Bind decodes the request query string before the handler runs and stores
// the result in the request context:
//
//	r := chi.NewRouter()
//	r.With(middleware.Bind(schema)).Get("/products", func(w http.ResponseWriter, r *http.Request) {
//	    d, _ := middleware.DecodedFromContext(r.Context())
//	    page, _ := pageKey.Get(d.Values)
//	    ...
//	})
package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	qstate "github.com/reoring/qstate"
)

type ctxKeyDecoded struct{}

// ContextWithDecoded attaches decoded query state to the context.
func ContextWithDecoded(ctx context.Context, d qstate.Decoded) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded{}, d)
}

// DecodedFromContext retrieves the decoded query state stored by Bind.
func DecodedFromContext(ctx context.Context) (qstate.Decoded, bool) {
	d, ok := ctx.Value(ctxKeyDecoded{}).(qstate.Decoded)
	return d, ok
}

// ErrorHandler writes the response for a request whose query failed to decode.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures Bind.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	metrics     *Metrics
	onError     ErrorHandler
	contextData func(*http.Request) any
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records decode outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithErrorHandler replaces the default 400 JSON response.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		if h != nil {
			c.onError = h
		}
	}
}

// WithContextData derives the context data handed to default functions and
// validators from the request.
func WithContextData(fn func(*http.Request) any) Option {
	return func(c *config) { c.contextData = fn }
}

// Bind returns middleware that decodes r.URL.RawQuery with s. On success the
// handler runs with the qstate.Decoded stored in the request context; on
// failure the error handler responds and the handler is not called.
func Bind(s qstate.Schema, opts ...Option) func(http.Handler) http.Handler {
	cfg := config{logger: slog.Default(), onError: DefaultErrorHandler}
	for _, o := range opts {
		o(&cfg)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if cfg.contextData != nil {
				ctx = qstate.WithData(ctx, cfg.contextData(r))
			}
			d, err := qstate.DecodeStateWithMeta(ctx, s, qstate.ParseQuery(r.URL.RawQuery))
			cfg.metrics.observe(d, err)
			if err != nil {
				cfg.logger.Warn("query decode failed", "path", r.URL.Path, "error", err)
				cfg.onError(w, r, err)
				return
			}
			for _, it := range d.Fallbacks {
				cfg.logger.Debug("query param replaced by default", "path", r.URL.Path, "param", it.Path, "reason", it.Message)
			}
			next.ServeHTTP(w, r.WithContext(ContextWithDecoded(ctx, d)))
		})
	}
}

// DefaultErrorHandler responds 400 with ErrorPayload(err).
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	WriteJSON(w, http.StatusBadRequest, ErrorPayload(err))
}

// IssueJSON is the wire shape of one issue.
type IssueJSON struct {
	Path    string         `json:"path,omitempty"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// ErrorPayload shapes err for JSON responses: {"issues":[...]} for Issues,
// {"error":"..."} otherwise.
func ErrorPayload(err error) map[string]any {
	iss, ok := qstate.AsIssues(err)
	if !ok {
		return map[string]any{"error": err.Error()}
	}
	out := make([]IssueJSON, len(iss))
	for i, it := range iss {
		out[i] = IssueJSON{Path: it.Path, Code: it.Code, Message: it.Message, Params: it.Params}
	}
	return map[string]any{"issues": out}
}

// WriteJSON writes v as a JSON response with the given status. HTML
// characters are not escaped, so query strings stay readable.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Redirect merges update into the request's query string with strategy st
// and redirects to the result. Nothing is written when the update is
// rejected; the error is returned for the caller to report. WithContextData
// applies as in Bind; other options are ignored. Without it, context data
// stored by Bind is used.
func Redirect(w http.ResponseWriter, r *http.Request, s qstate.Schema, update *qstate.Values, st qstate.Strategy, code int, opts ...Option) error {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	ctx := r.Context()
	if cfg.contextData != nil {
		ctx = qstate.WithData(ctx, cfg.contextData(r))
	}
	qs, err := qstate.BuildQueryStringFromCurrent(ctx, s, r.URL.RawQuery, update, st)
	if err != nil {
		return err
	}
	target := r.URL.Path
	if qs != "" {
		target += "?" + qs
	}
	http.Redirect(w, r, target, code)
	return nil
}
