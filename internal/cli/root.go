// Package cli implements the qstate command.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	qstate "github.com/reoring/qstate"
	"github.com/reoring/qstate/i18n"
	"github.com/reoring/qstate/schemafile"
)

// Version is set at build time with -ldflags "-X github.com/reoring/qstate/internal/cli.Version=...".
var Version = "dev"

type rootOptions struct {
	cfg    Config
	logger *slog.Logger
	file   *schemafile.File
}

// NewRootCmd builds the qstate command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cfg, cfgErr := LoadConfig()
	opts.cfg = cfg

	cmd := &cobra.Command{
		Use:           "qstate",
		Short:         "Decode, build and merge schema-driven URL query strings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			logger, err := newLogger(cmd.ErrOrStderr(), opts.cfg.LogLevel, opts.cfg.LogFormat)
			if err != nil {
				return err
			}
			opts.logger = logger
			i18n.SetLanguage(opts.cfg.Lang)
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.cfg.Schema, "schema", opts.cfg.Schema, "schema YAML file (env QSTATE_SCHEMA)")
	pf.StringVar(&opts.cfg.Strategy, "strategy", opts.cfg.Strategy, "merge strategy: preserve_all, preserve_external_only, preserve_all_with_default, preserve_none (env QSTATE_STRATEGY)")
	pf.StringVar(&opts.cfg.LogLevel, "log-level", opts.cfg.LogLevel, "log level (env QSTATE_LOG_LEVEL)")
	pf.StringVar(&opts.cfg.LogFormat, "log-format", opts.cfg.LogFormat, "log format: text or json (env QSTATE_LOG_FORMAT)")
	pf.StringVar(&opts.cfg.Lang, "lang", opts.cfg.Lang, "message language: en or ja (env QSTATE_LANG)")

	cmd.AddCommand(
		newDecodeCmd(opts),
		newBuildCmd(opts),
		newMergeCmd(opts),
		newPickCmd(opts),
		newJSONSchemaCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) schema() (*schemafile.File, error) {
	if o.file != nil {
		return o.file, nil
	}
	if o.cfg.Schema == "" {
		return nil, errors.New("no schema file: set --schema or QSTATE_SCHEMA")
	}
	f, err := schemafile.LoadFile(o.cfg.Schema)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("schema loaded", "path", o.cfg.Schema, "params", f.Schema.Len())
	o.file = f
	return f, nil
}

// strategy returns the flag/env strategy, else the schema file's.
func (o *rootOptions) strategy(f *schemafile.File) (qstate.Strategy, error) {
	if o.cfg.Strategy == "" {
		return f.Strategy, nil
	}
	return qstate.ParseStrategy(o.cfg.Strategy)
}

// parseAssignments reads k=v pairs. Values are JSON literals (3, true, null,
// ["a","b"]); anything that is not valid JSON is taken as a plain string.
// String parameters of s keep the text as written, except for null.
func parseAssignments(s qstate.Schema, pairs []string) (*qstate.Values, error) {
	out := qstate.NewValues()
	for _, p := range pairs {
		k, raw, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid assignment %q (want key=value)", p)
		}
		var v any = raw
		if raw == "null" {
			v = nil
		} else if !isStringParam(s, k) {
			var j any
			if err := json.Unmarshal([]byte(raw), &j); err == nil {
				v = j
			}
		}
		out.Set(k, v)
	}
	return out, nil
}

func isStringParam(s qstate.Schema, name string) bool {
	p, ok := s.Param(name)
	return ok && p.Describe().Expect == "a string"
}

// parseRawAssignments reads k=v pairs as raw query values.
func parseRawAssignments(pairs []string) (*qstate.RawParams, error) {
	out := qstate.NewRawParams()
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid assignment %q (want key=value)", p)
		}
		out.Set(k, qstate.StringRaw(v))
	}
	return out, nil
}
