package binding

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	qstate "github.com/reoring/qstate"
	"github.com/reoring/qstate/dsl"
	"github.com/reoring/qstate/rules"
)

var (
	search = qstate.NewKey("search", dsl.String().Default(""))
	sortBy = qstate.NewKey("sortBy", dsl.String().Default("rating").Validate(rules.MustOneOf([]string{"rating", "price"})))
	page   = qstate.NewKey("page", dsl.Int().Default(1))
)

func testSchema() qstate.Schema { return qstate.MustSchema(search, sortBy, page) }

type countingLocation struct {
	*History
	reads int
}

func (c *countingLocation) CurrentQuery() string {
	c.reads++
	return c.History.CurrentQuery()
}

func TestBinding_StateDecodesCurrentURL(t *testing.T) {
	h := NewHistory("?search=boots&sortBy=bogus&utm_source=fb")
	b := New(testSchema(), h, h)
	st, err := b.State(context.Background())
	if err != nil {
		t.Fatalf("state err: %v", err)
	}
	if v, _ := search.Get(st); v != "boots" {
		t.Fatalf("search: %q", v)
	}
	if v, _ := sortBy.Get(st); v != "rating" {
		t.Fatalf("sortBy should fall back, got %q", v)
	}
	if v, _ := page.Get(st); v != 1 {
		t.Fatalf("page: %d", v)
	}
}

func TestBinding_StateIsMemoized(t *testing.T) {
	h := NewHistory("search=boots")
	b := New(testSchema(), h, h)
	ctx := context.Background()
	s1, _ := b.State(ctx)
	s2, _ := b.State(ctx)
	if s1 != s2 {
		t.Fatalf("expected the same snapshot while the URL is unchanged")
	}
	if err := b.Set(ctx, qstate.ValuesOf("page", 2)); err != nil {
		t.Fatalf("set err: %v", err)
	}
	s3, _ := b.State(ctx)
	if s3 == s1 {
		t.Fatalf("expected a new snapshot after navigation")
	}
}

func TestBinding_SetPushesAndPreserves(t *testing.T) {
	h := NewHistory("search=boots&utm_source=fb")
	loc := &countingLocation{History: h}
	b := New(testSchema(), loc, h)
	if err := b.Set(context.Background(), qstate.ValuesOf("page", 3)); err != nil {
		t.Fatalf("set err: %v", err)
	}
	if loc.reads != 1 {
		t.Fatalf("expected exactly one read, got %d", loc.reads)
	}
	if got := h.CurrentQuery(); got != "search=boots&utm_source=fb&page=3" {
		t.Fatalf("unexpected query: %s", got)
	}
	if h.Len() != 2 || !h.Back() || h.CurrentQuery() != "search=boots&utm_source=fb" {
		t.Fatalf("expected a pushed entry: %v", h.Entries())
	}
}

func TestBinding_SetWithStrategyAndReplace(t *testing.T) {
	h := NewHistory("search=boots&utm_source=fb")
	b := New(testSchema(), h, h, WithStrategy(qstate.PreserveExternalOnly))
	if err := b.Set(context.Background(), qstate.ValuesOf("page", 2), Replace); err != nil {
		t.Fatalf("set err: %v", err)
	}
	if h.Len() != 1 {
		t.Fatalf("replace must not add entries: %v", h.Entries())
	}
	if got := h.CurrentQuery(); got != "utm_source=fb&page=2" {
		t.Fatalf("unexpected query: %s", got)
	}
	if err := b.Set(context.Background(), qstate.ValuesOf("page", 5), WithStrategy(qstate.PreserveNone)); err != nil {
		t.Fatalf("set err: %v", err)
	}
	if got := h.CurrentQuery(); got != "page=5" {
		t.Fatalf("unexpected query: %s", got)
	}
}

func TestBinding_RejectedUpdateDoesNotNavigate(t *testing.T) {
	h := NewHistory("search=boots")
	writes := 0
	nav := NavigatorFunc(func(ctx context.Context, q string, m Mode) error {
		writes++
		return h.Navigate(ctx, q, m)
	})
	var logs bytes.Buffer
	b := New(testSchema(), h, nav, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	ctx := context.Background()

	err := b.Set(ctx, qstate.ValuesOf("sortBy", "name"))
	if !qstate.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	err = b.Set(ctx, qstate.ValuesOf("nope", 1))
	if !qstate.IsUnknownParameter(err) {
		t.Fatalf("expected unknown parameter, got %v", err)
	}
	err = b.Set(ctx, qstate.ValuesOf("page", "2"))
	if !qstate.IsTypeMismatch(err) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if writes != 0 || h.CurrentQuery() != "search=boots" {
		t.Fatalf("no navigation expected, got %d writes", writes)
	}
	if !strings.Contains(logs.String(), "query state update rejected") {
		t.Fatalf("expected a warning log, got %q", logs.String())
	}
}

func TestBinding_NavigatorErrorIsReturned(t *testing.T) {
	boom := errors.New("router gone")
	b := New(testSchema(), LocationFunc(func() string { return "" }),
		NavigatorFunc(func(context.Context, string, Mode) error { return boom }))
	if err := b.Set(context.Background(), qstate.ValuesOf("page", 2)); !errors.Is(err, boom) {
		t.Fatalf("expected navigator error, got %v", err)
	}
}

func TestBinding_QueryStringDoesNotNavigate(t *testing.T) {
	h := NewHistory("search=boots")
	b := New(testSchema(), h, h)
	qs, err := b.QueryString(context.Background(), qstate.ValuesOf("sortBy", "price"), WithStrategy(qstate.PreserveAllWithDefault))
	if err != nil {
		t.Fatalf("query string err: %v", err)
	}
	if qs != "search=boots&sortBy=price&page=1" {
		t.Fatalf("unexpected: %s", qs)
	}
	if h.Len() != 1 {
		t.Fatalf("QueryString must not navigate")
	}
}

func TestBinding_DecodeReportsFallbacks(t *testing.T) {
	h := NewHistory("sortBy=bogus")
	b := New(testSchema(), h, h)
	d, err := b.Decode(context.Background())
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(d.Fallbacks) != 1 || !d.Seen("sortBy") || !d.DefaultApplied("sortBy") {
		t.Fatalf("unexpected metadata: %+v", d)
	}
}

func TestHistory_PushDropsForwardEntries(t *testing.T) {
	h := NewHistory("a=1")
	ctx := context.Background()
	_ = h.Navigate(ctx, "a=2", ModePush)
	_ = h.Navigate(ctx, "?a=3", ModePush)
	if !h.Back() || !h.Back() || h.Back() {
		t.Fatalf("unexpected back behavior")
	}
	_ = h.Navigate(ctx, "a=4", ModePush)
	if got := h.Entries(); len(got) != 2 || got[1] != "a=4" {
		t.Fatalf("unexpected entries: %v", got)
	}
	if h.Forward() {
		t.Fatalf("no forward entry expected")
	}
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := h.Navigate(cctx, "a=5", ModePush); err == nil {
		t.Fatalf("expected canceled context to fail")
	}
}
