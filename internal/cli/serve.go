package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	qstate "github.com/reoring/qstate"
	"github.com/reoring/qstate/middleware"
	"github.com/reoring/qstate/schemafile"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve decode and build endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.schema()
			if err != nil {
				return err
			}
			st, err := opts.strategy(f)
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			srv := &http.Server{
				Addr:              opts.cfg.Addr,
				Handler:           newHandler(f, st, opts.logger, reg),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(cmd.Context(), srv, opts.logger)
		},
	}
	cmd.Flags().StringVar(&opts.cfg.Addr, "addr", opts.cfg.Addr, "listen address (env QSTATE_ADDR)")
	return cmd
}

func runServer(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildRequest is the body of POST /query.
type buildRequest struct {
	Current  string         `json:"current"`
	Update   map[string]any `json:"update"`
	Strategy string         `json:"strategy,omitempty"`
}

type buildResponse struct {
	Query string `json:"query"`
}

func newHandler(f *schemafile.File, st qstate.Strategy, logger *slog.Logger, reg *prometheus.Registry) http.Handler {
	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/schema", func(w http.ResponseWriter, _ *http.Request) {
		params := make(map[string]qstate.ParamInfo, f.Schema.Len())
		for k, p := range f.Schema.Params() {
			params[k] = p.Describe()
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]any{"keys": f.Schema.Keys(), "params": params, "strategy": st})
	})
	r.Get("/schema.json", func(w http.ResponseWriter, r *http.Request) {
		out, err := f.Schema.JSONSchema(r.Context())
		if err != nil {
			middleware.WriteJSON(w, http.StatusInternalServerError, middleware.ErrorPayload(err))
			return
		}
		middleware.WriteJSON(w, http.StatusOK, out)
	})
	r.With(middleware.Bind(f.Schema, middleware.WithLogger(logger), middleware.WithMetrics(metrics))).
		Get("/state", func(w http.ResponseWriter, r *http.Request) {
			d, _ := middleware.DecodedFromContext(r.Context())
			middleware.WriteJSON(w, http.StatusOK, newStateJSON(f.Schema, d))
		})
	r.Post("/query", func(w http.ResponseWriter, r *http.Request) {
		var req buildRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		strategy := st
		if req.Strategy != "" {
			parsed, err := qstate.ParseStrategy(req.Strategy)
			if err != nil {
				middleware.WriteJSON(w, http.StatusBadRequest, middleware.ErrorPayload(err))
				return
			}
			strategy = parsed
		}
		qs, err := qstate.BuildQueryStringFromCurrent(r.Context(), f.Schema, req.Current, orderedUpdate(f.Schema, req.Update), strategy)
		if err != nil {
			logger.Warn("query update rejected", "error", err)
			middleware.WriteJSON(w, http.StatusBadRequest, middleware.ErrorPayload(err))
			return
		}
		middleware.WriteJSON(w, http.StatusOK, buildResponse{Query: qs})
	})
	return r
}

// orderedUpdate orders a JSON object's entries by schema declaration;
// undeclared keys follow in sorted order so SerializeAll reports them.
func orderedUpdate(s qstate.Schema, m map[string]any) *qstate.Values {
	out := qstate.NewValues()
	for _, k := range s.Keys() {
		if v, ok := m[k]; ok {
			out.Set(k, v)
		}
	}
	var extra []string
	for k := range m {
		if !s.Has(k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	for _, k := range extra {
		out.Set(k, m[k])
	}
	return out
}
