package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryFilesystem Category = "filesystem"
	CategoryTemplate   Category = "template"
	CategoryProvision  Category = "provision"
	CategoryConfig     Category = "config"
)

// CLIError is a structured error with an identifying code, the path it concerns, and a fix hint.
type CLIError struct {
	// Code is a unique error identifier (e.g., "E110").
	Code string

	// Category is the error type (filesystem, template, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Path is the file or directory the error concerns, if any.
	Path string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *CLIError) Unwrap() error {
	return e.Wrapped
}

// WithPath records the file or directory the error concerns.
func (e *CLIError) WithPath(p string) *CLIError {
	e.Path = p
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *CLIError) WithSuggestion(s string) *CLIError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *CLIError) WithDetail(d string) *CLIError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *CLIError) Wrap(err error) *CLIError {
	e.Wrapped = err
	return e
}

// New creates a CLIError from a registered error code.
func New(code string) *CLIError {
	template, ok := registry[code]
	if !ok {
		return &CLIError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &CLIError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// As reports whether err is, or wraps, a CLIError and returns the outermost one.
func As(err error) (*CLIError, bool) {
	var ce *CLIError
	ok := stderrors.As(err, &ce)
	return ce, ok
}

// HasCode reports whether any CLIError in err's chain carries the given code.
func HasCode(err error, code string) bool {
	for {
		ce, ok := As(err)
		if !ok {
			return false
		}
		if ce.Code == code {
			return true
		}
		err = ce.Wrapped
	}
}
