package qstate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/qstate/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeTypeMismatch     = "type_mismatch"
	CodeUnknownParameter = "unknown_parameter"
	CodeMissingDefault   = "missing_default"
	CodeValidation       = "validation"
	CodeConfig           = "config"
	CodeUnknownStrategy  = "unknown_strategy"
)

// Issue represents a single failure tied to a query parameter.
type Issue struct {
	Path    string // Parameter name ("" when the issue is not tied to one).
	Code    string // One of the codes listed above.
	Message string // Fully rendered message, parameter name included.
	Cause   error  // Optional: underlying error (for example a *ValidationError).
	// Params carries structured parameters (e.g., {"expected":"a number","received":"a string"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error joins the rendered messages of the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the issue causes to errors.Is / errors.As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// IsTypeMismatch reports whether a codec rejected a value of the wrong type.
func IsTypeMismatch(err error) bool { return HasCode(err, CodeTypeMismatch) }

// IsUnknownParameter reports whether a key had no schema entry.
func IsUnknownParameter(err error) bool { return HasCode(err, CodeUnknownParameter) }

// IsMissingDefault reports whether a field had neither a URL value nor a default.
func IsMissingDefault(err error) bool { return HasCode(err, CodeMissingDefault) }

// IsValidation reports whether a validator rejected a value.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || HasCode(err, CodeValidation)
}

// IsConfig reports whether a schema or validator was misconfigured.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce) || HasCode(err, CodeConfig)
}

// ValidationError is returned by validators to reject a value. Validators that
// return any other error type abort decoding instead of falling back to the
// default.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a *ValidationError with a formatted message.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConfigError reports a malformed schema construction.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

func configError(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// ---- issue builders ----

func typeMismatch(expected string, got any) Issues {
	received := describe(got)
	return Issues{{
		Code:    CodeTypeMismatch,
		Message: i18n.T(CodeTypeMismatch, map[string]string{"expected": expected, "received": received}),
		Params:  map[string]any{"expected": expected, "received": received},
	}}
}

func missingDefault() Issues {
	return Issues{{Code: CodeMissingDefault, Message: i18n.T(CodeMissingDefault, nil)}}
}

func unknownParameter(name string, valid []string) Issues {
	return Issues{{
		Path:    name,
		Code:    CodeUnknownParameter,
		Message: i18n.T(CodeUnknownParameter, map[string]string{"param": name, "valid": quoteList(valid)}),
		Params:  map[string]any{"param": name, "valid": valid},
	}}
}

// atParam attributes err to the parameter name by prefixing each message,
// mirroring how field errors surface to callers ("page was expecting ...").
func atParam(name string, err error) error {
	if err == nil {
		return nil
	}
	iss, ok := AsIssues(err)
	if !ok {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return Issues{{Path: name, Code: CodeValidation, Message: name + " " + ve.Message, Cause: err}}
		}
		return fmt.Errorf("%s %w", name, err)
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		if it.Path == "" {
			it.Path = name
			it.Message = name + " " + it.Message
		}
		out[i] = it
	}
	return out
}

func quoteList(keys []string) string {
	b := &strings.Builder{}
	b.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%q", k)
	}
	b.WriteByte(']')
	return b.String()
}
