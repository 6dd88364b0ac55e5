package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"time"
)

// Error types for the notegrep engine
type ErrorType string

const (
	// Query-level errors: rejected before traversal begins
	ErrorTypeQuery      ErrorType = "query"
	ErrorTypeExpression ErrorType = "expression"

	// File errors: terminal for the affected file only
	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypePermission   ErrorType = "permission"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// QueryError represents an invalid query: a bad searchType/target/block
// combination or an empty query string. It is always raised before any file
// is visited and aborts the whole search.
type QueryError struct {
	Type      ErrorType
	Field     string
	Value     string
	Reason    string
	Timestamp time.Time
}

// NewQueryError creates a new query-level error
func NewQueryError(field, value, reason string) *QueryError {
	return &QueryError{
		Type:      ErrorTypeQuery,
		Field:     field,
		Value:     value,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface
func (e *QueryError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid query: %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid query: %s: %s", e.Field, e.Reason)
}

// ExprError represents a malformed advanced-search expression. Position is a
// 0-based byte offset into the expression text; Suggestion carries a
// did-you-mean hint for unknown function names, or "" when none applies.
type ExprError struct {
	Type       ErrorType
	Expression string
	Position   int
	Token      string
	Suggestion string
	Underlying error
	Timestamp  time.Time
}

// NewExprError creates a new expression parse/evaluation error
func NewExprError(expr string, pos int, token string, err error) *ExprError {
	return &ExprError{
		Type:       ErrorTypeExpression,
		Expression: expr,
		Position:   pos,
		Token:      token,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithSuggestion attaches a did-you-mean hint to the error
func (e *ExprError) WithSuggestion(s string) *ExprError {
	e.Suggestion = s
	return e
}

// Error implements the error interface
func (e *ExprError) Error() string {
	msg := fmt.Sprintf("expression error at offset %d", e.Position)
	if e.Token != "" {
		msg += fmt.Sprintf(" (near %q)", e.Token)
	}
	msg += fmt.Sprintf(": %v", e.Underlying)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ExprError) Unwrap() error {
	return e.Underlying
}

// FileError represents a file-related error captured during a replace batch.
// Search swallows per-file errors; replace records them per file instead.
type FileError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewFileError creates a new file error
func NewFileError(op, path string, err error) *FileError {
	errorType := ErrorTypeFileNotFound
	if isPermissionError(err) {
		errorType = ErrorTypePermission
	}

	return &FileError{
		Type:       errorType,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// isPermissionError checks if the error is a permission error
func isPermissionError(err error) bool {
	return stderrors.Is(err, fs.ErrPermission)
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *FileError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}
