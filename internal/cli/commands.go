package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	qstate "github.com/reoring/qstate"
)

func newDecodeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode QUERY",
		Short: "Decode a query string into typed state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.schema()
			if err != nil {
				return err
			}
			d, err := qstate.DecodeStateWithMeta(cmd.Context(), f.Schema, qstate.ParseQuery(args[0]))
			if err != nil {
				return err
			}
			for _, it := range d.Fallbacks {
				opts.logger.Debug("query param replaced by default", "param", it.Path, "reason", it.Message)
			}
			return writeJSON(cmd.OutOrStdout(), newStateJSON(f.Schema, d))
		},
	}
}

func newBuildCmd(opts *rootOptions) *cobra.Command {
	var sets, others []string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a new query string from values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.schema()
			if err != nil {
				return err
			}
			update, err := parseAssignments(f.Schema, sets)
			if err != nil {
				return err
			}
			other, err := parseRawAssignments(others)
			if err != nil {
				return err
			}
			qs, err := qstate.BuildQueryString(cmd.Context(), f.Schema, update, other)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), qs)
			return err
		},
	}
	fs := cmd.Flags()
	fs.StringArrayVar(&sets, "set", nil, "schema value as key=JSON (repeatable)")
	fs.StringArrayVar(&others, "other", nil, "extra raw param as key=value (repeatable)")
	return cmd
}

func newMergeCmd(opts *rootOptions) *cobra.Command {
	var sets []string
	var current string
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Apply values to an existing query string",
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
			update, err := parseAssignments(f.Schema, sets)
			if err != nil {
				return err
			}
			qs, err := qstate.BuildQueryStringFromCurrent(cmd.Context(), f.Schema, current, update, st)
			if err != nil {
				return err
			}
			opts.logger.Debug("query merged", "strategy", st.String())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), qs)
			return err
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&current, "current", "", "current query string")
	fs.StringArrayVar(&sets, "set", nil, "schema value as key=JSON (repeatable)")
	return cmd
}

func newPickCmd(opts *rootOptions) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Keep only the values whose key is declared in the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.schema()
			if err != nil {
				return err
			}
			rec, err := parseAssignments(f.Schema, sets)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), valuesJSON(qstate.PickMatchingSchema(f.Schema, rec)))
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "value as key=JSON (repeatable)")
	return cmd
}

func newJSONSchemaCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "jsonschema",
		Short: "Print the schema as a JSON Schema object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.schema()
			if err != nil {
				return err
			}
			out, err := f.Schema.JSONSchema(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), Version)
			return err
		},
	}
}
