package errors

import (
	"fmt"
)

// ParseError represents a YAML configuration parsing failure with optional
// line metadata. Configuration errors are the only fatal category: the filter
// cannot fall back per block when the global defaults are unreadable.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SpecError captures a failure while resolving a figure specification from a
// block: a malformed attribute value or an unreadable dependency file. Scoped
// to the block it was raised for.
type SpecError struct {
	Attr    string
	Message string
	Err     error
}

// NewSpecError constructs a SpecError.
func NewSpecError(attr, message string, err error) error {
	return &SpecError{Attr: attr, Message: message, Err: err}
}

func (e *SpecError) Error() string {
	if e == nil {
		return ""
	}
	if e.Attr != "" {
		return fmt.Sprintf("spec error: %s: %s", e.Attr, e.Message)
	}
	return fmt.Sprintf("spec error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *SpecError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ChecksError indicates a toolkit's static validation of the script text
// failed before any process was spawned.
type ChecksError struct {
	Toolkit string
	Message string
}

// NewChecksError constructs a ChecksError for the given toolkit.
func NewChecksError(toolkit, message string) error {
	return &ChecksError{Toolkit: toolkit, Message: message}
}

func (e *ChecksError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("check failed [%s]: %s", e.Toolkit, e.Message)
}

// ExecError represents a toolkit process that exited nonzero while the
// toolkit itself was confirmed installed.
type ExecError struct {
	Command  string
	ExitCode int
	Stderr   string
}

// NewExecError constructs an ExecError.
func NewExecError(command string, exitCode int, stderr string) error {
	return &ExecError{Command: command, ExitCode: exitCode, Stderr: stderr}
}

func (e *ExecError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stderr != "" {
		return fmt.Sprintf("execution error: %q exited with code %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("execution error: %q exited with code %d", e.Command, e.ExitCode)
}

// UnavailableError indicates the toolkit's executable could not be resolved,
// either before spawning or inferred after a failed spawn.
type UnavailableError struct {
	Toolkit string
}

// NewUnavailableError constructs an UnavailableError.
func NewUnavailableError(toolkit string) error {
	return &UnavailableError{Toolkit: toolkit}
}

func (e *UnavailableError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("toolkit unavailable: %s", e.Toolkit)
}
