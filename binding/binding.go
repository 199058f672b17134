// Package binding ties a query parameter schema to a host's current URL and
// navigation.
//
// The host supplies a Location (read the current query string) and a
// Navigator (commit a new one). Binding.State decodes the current URL and
// Binding.Set applies a partial update with one read and at most one write:
// when validation or serialization fails nothing is navigated.
package binding

import (
	"context"
	"log/slog"

	qstate "github.com/reoring/qstate"
)

// Mode determines how a URL update is committed.
type Mode int

const (
	// ModePush adds a new history entry (default behavior).
	ModePush Mode = iota

	// ModeReplace replaces the current history entry.
	ModeReplace
)

func (m Mode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "push"
}

// Location reports the query component of the current URL, with or without
// the leading '?'.
type Location interface {
	CurrentQuery() string
}

// Navigator commits a new query string.
type Navigator interface {
	Navigate(ctx context.Context, query string, mode Mode) error
}

// LocationFunc adapts a function to Location.
type LocationFunc func() string

func (f LocationFunc) CurrentQuery() string { return f() }

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, query string, mode Mode) error

func (f NavigatorFunc) Navigate(ctx context.Context, query string, mode Mode) error {
	return f(ctx, query, mode)
}

// Option configures a Binding or a single Set call.
type Option interface {
	apply(*options)
}

type options struct {
	strategy qstate.Strategy
	mode     Mode
	logger   *slog.Logger
}

type strategyOption qstate.Strategy

func (o strategyOption) apply(c *options) { c.strategy = qstate.Strategy(o) }

type modeOption Mode

func (o modeOption) apply(c *options) { c.mode = Mode(o) }

type loggerOption struct{ l *slog.Logger }

func (o loggerOption) apply(c *options) {
	if o.l != nil {
		c.logger = o.l
	}
}

// WithStrategy sets the merge strategy (default qstate.PreserveAll).
func WithStrategy(st qstate.Strategy) Option { return strategyOption(st) }

// Mode options as values, mirroring the history API verbs.
var (
	// Push creates a new history entry.
	Push Option = modeOption(ModePush)

	// Replace updates the URL without a new history entry (filters, search boxes).
	Replace Option = modeOption(ModeReplace)
)

// WithLogger sets the logger. It is ignored when passed to Set.
func WithLogger(l *slog.Logger) Option { return loggerOption{l: l} }

// Binding reads and writes one schema's state through a Location and a
// Navigator. It is safe for concurrent use as long as the collaborators are.
type Binding struct {
	schema qstate.Schema
	loc    Location
	nav    Navigator
	opts   options
	memo   qstate.Memo
}

// New returns a Binding for schema.
func New(schema qstate.Schema, loc Location, nav Navigator, opts ...Option) *Binding {
	b := &Binding{
		schema: schema,
		loc:    loc,
		nav:    nav,
		opts:   options{strategy: qstate.PreserveAll, mode: ModePush, logger: slog.Default()},
	}
	for _, o := range opts {
		o.apply(&b.opts)
	}
	return b
}

// Schema returns the bound schema.
func (b *Binding) Schema() qstate.Schema { return b.schema }

// State decodes the current URL. Values rejected by validators are replaced
// by their defaults. While the decoded content does not change the same
// snapshot pointer is returned.
func (b *Binding) State(ctx context.Context) (*qstate.Values, error) {
	d, err := b.Decode(ctx)
	if err != nil {
		return nil, err
	}
	return b.memo.Reuse(d.Values), nil
}

// Decode is State with presence metadata. It does not consult the memo.
func (b *Binding) Decode(ctx context.Context) (qstate.Decoded, error) {
	d, err := qstate.DecodeStateWithMeta(ctx, b.schema, qstate.ParseQuery(b.loc.CurrentQuery()))
	if err != nil {
		b.opts.logger.Warn("query state decode failed", "error", err)
		return qstate.Decoded{}, err
	}
	for _, it := range d.Fallbacks {
		b.opts.logger.Debug("query param replaced by default", "param", it.Path, "reason", it.Message)
	}
	return d, nil
}

// QueryString returns the query string Set would navigate to, without
// navigating.
func (b *Binding) QueryString(ctx context.Context, update *qstate.Values, opts ...Option) (string, error) {
	o := b.callOptions(opts)
	return qstate.BuildQueryStringFromCurrent(ctx, b.schema, b.loc.CurrentQuery(), update, o.strategy)
}

// Set merges update into the current URL and navigates to the result.
func (b *Binding) Set(ctx context.Context, update *qstate.Values, opts ...Option) error {
	o := b.callOptions(opts)
	next, err := qstate.BuildQueryStringFromCurrent(ctx, b.schema, b.loc.CurrentQuery(), update, o.strategy)
	if err != nil {
		b.opts.logger.Warn("query state update rejected", "strategy", o.strategy, "error", err)
		return err
	}
	return b.nav.Navigate(ctx, next, o.mode)
}

func (b *Binding) callOptions(opts []Option) options {
	o := b.opts
	for _, opt := range opts {
		opt.apply(&o)
	}
	o.logger = b.opts.logger
	return o
}
