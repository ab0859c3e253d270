// Package casterr defines the typed errors surfaced by scenario generation.
//
// Every failure carries a Kind that tells the caller who is at fault:
//
//   - KindConfiguration: the declared scenario set is malformed or incomplete
//     (bad converter id, missing key, unresolvable observer token).
//   - KindRuleFormat: a rule definition string is malformed.
//   - KindUsage: the caller violated a protocol (double dispatch, transient
//     injection on an unsupported target).
//
// Errors are never retried internally.
package casterr

import (
	"errors"
	"fmt"
)

// Kind categorizes an Error.
type Kind string

const (
	KindConfiguration Kind = "CONFIGURATION"
	KindRuleFormat    Kind = "RULE_FORMAT"
	KindUsage         Kind = "USAGE"
)

// Error codes. Codes are stable identifiers suitable for CLI output and tests.
const (
	CodeMissingKey             = "missing_key"
	CodeCaseOutOfRange         = "case_out_of_range"
	CodeDuplicateCase          = "duplicate_case"
	CodeInvalidDebugIndex      = "invalid_debug_index"
	CodeConverterNotFound      = "converter_not_found"
	CodeConverterInitFailed    = "converter_init_failed"
	CodeConverterCountMismatch = "converter_count_mismatch"
	CodeConversionFailed       = "conversion_failed"
	CodeInvalidPair            = "invalid_pair"
	CodeAmbiguousOutcome       = "ambiguous_outcome"
	CodeNoOutcome              = "no_outcome"
	CodeUnknownVariant         = "unknown_variant"
	CodeInvalidSource          = "invalid_source"

	CodeNullDefinition        = "null_definition"
	CodeTrailingSeparator     = "trailing_separator"
	CodeMissingColon          = "missing_colon"
	CodeTooManyColons         = "too_many_colons"
	CodeInvalidColonPlacement = "invalid_colon_placement"
	CodeDuplicateOutcome      = "duplicate_outcome"
	CodeInvalidClause         = "invalid_clause"

	CodeDispatchConsumed  = "dispatch_consumed"
	CodeUnsupportedTarget = "unsupported_target"
	CodeNoVariants        = "no_variants"
)

// NoCase marks an error that is not tied to a case index.
const NoCase = -1

// Error is the single error type for all three kinds.
type Error struct {
	// Kind identifies who is at fault.
	Kind Kind

	// Code identifies the specific failure within the kind.
	Code string

	// Message is a human-readable description.
	Message string

	// Key is the configuration key involved, if any.
	Key string

	// CaseIndex is the 0-based case position, or NoCase.
	CaseIndex int

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Kind, e.Code, e.Message)
	if e.Key != "" {
		msg += fmt.Sprintf(" (key=%s)", e.Key)
	}
	if e.CaseIndex != NoCase {
		msg += fmt.Sprintf(" (case=%d)", e.CaseIndex)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Configuration creates a KindConfiguration error not tied to a case.
func Configuration(code, format string, args ...any) *Error {
	return &Error{
		Kind:      KindConfiguration,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		CaseIndex: NoCase,
	}
}

// RuleFormat creates a KindRuleFormat error.
func RuleFormat(code, format string, args ...any) *Error {
	return &Error{
		Kind:      KindRuleFormat,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		CaseIndex: NoCase,
	}
}

// Usage creates a KindUsage error.
func Usage(code, format string, args ...any) *Error {
	return &Error{
		Kind:      KindUsage,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		CaseIndex: NoCase,
	}
}

// MissingKey reports an absent required configuration key for a case.
func MissingKey(key string, caseIndex int) *Error {
	return &Error{
		Kind:      KindConfiguration,
		Code:      CodeMissingKey,
		Message:   "required key is not configured",
		Key:       key,
		CaseIndex: caseIndex,
	}
}

// WithCase returns a copy of e bound to the given case index.
func (e *Error) WithCase(caseIndex int) *Error {
	cp := *e
	cp.CaseIndex = caseIndex
	return &cp
}

// WithKey returns a copy of e bound to the given configuration key.
func (e *Error) WithKey(key string) *Error {
	cp := *e
	cp.Key = key
	return &cp
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	cp := *e
	cp.Cause = cause
	return &cp
}

// IsConfiguration reports whether err is, or wraps, a configuration error.
func IsConfiguration(err error) bool {
	return isKind(err, KindConfiguration)
}

// IsRuleFormat reports whether err is, or wraps, a rule format error.
func IsRuleFormat(err error) bool {
	return isKind(err, KindRuleFormat)
}

// IsUsage reports whether err is, or wraps, a usage error.
func IsUsage(err error) bool {
	return isKind(err, KindUsage)
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func isKind(err error, kind Kind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
