// Package serrors defines the structured error kinds surfaced by the
// styling engine, with stable codes and source locations suitable for
// terminal rendering.
package serrors

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
)

// Severity represents the severity level of an error
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error codes, one per failure kind of the engine.
const (
	CodeParse         = "STY1001"
	CodeAstDrift      = "STY2001"
	CodeIgnoreMarkers = "STY3001"
	CodeInvalidOption = "STY4001"
	CodeCacheIO       = "STY5001"
)

// SourceLocation represents a location in source code
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// String renders the location as file:line:col
func (l SourceLocation) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// StyleError is the error type returned by the engine
type StyleError struct {
	Code     string
	Severity Severity
	Message  string
	Location *SourceLocation
	Hint     string
	Wrapped  error
}

// Error implements the error interface
func (e *StyleError) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Location, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap supports errors.Is and errors.As chains
func (e *StyleError) Unwrap() error {
	return e.Wrapped
}

// Render returns a colorized human-readable form for terminal output
func (e *StyleError) Render() string {
	var label string
	switch e.Severity {
	case Warning:
		label = color.YellowString("warning")
	case Fatal:
		label = color.New(color.FgRed, color.Bold).Sprint("fatal")
	default:
		label = color.RedString("error")
	}
	out := fmt.Sprintf("%s[%s]: %s", label, e.Code, e.Message)
	if e.Location != nil {
		out += "\n  --> " + e.Location.String()
	}
	if e.Hint != "" {
		out += "\n  " + color.CyanString("hint: ") + e.Hint
	}
	return out
}

// NewParseError reports source that does not parse
func NewParseError(file string, line, col int, message string) *StyleError {
	return &StyleError{
		Code:     CodeParse,
		Severity: Error,
		Message:  message,
		Location: &SourceLocation{File: file, Line: line, Column: col},
	}
}

// NewAstDrift reports a failed round-trip validation
func NewAstDrift(file, hint string) *StyleError {
	return &StyleError{
		Code:     CodeAstDrift,
		Severity: Fatal,
		Message:  "styling changed the abstract syntax tree",
		Location: locFor(file),
		Hint:     hint,
	}
}

// NewIgnoreMarkerMismatch reports unbalanced styler: off/on markers
func NewIgnoreMarkerMismatch(file string, line int) *StyleError {
	return &StyleError{
		Code:     CodeIgnoreMarkers,
		Severity: Warning,
		Message:  "unbalanced ignore markers, ignoring disabled for this file",
		Location: &SourceLocation{File: file, Line: line, Column: 1},
	}
}

// NewInvalidOption reports an unusable option value
func NewInvalidOption(message string) *StyleError {
	return &StyleError{
		Code:     CodeInvalidOption,
		Severity: Fatal,
		Message:  message,
	}
}

// NewCacheIO reports a cache read or write failure
func NewCacheIO(err error) *StyleError {
	return &StyleError{
		Code:     CodeCacheIO,
		Severity: Warning,
		Message:  "cache unavailable: " + err.Error(),
		Wrapped:  err,
	}
}

func locFor(file string) *SourceLocation {
	if file == "" {
		return nil
	}
	return &SourceLocation{File: file, Line: 1, Column: 1}
}

// IsCode reports whether err is a StyleError carrying the given code
func IsCode(err error, code string) bool {
	var se *StyleError
	return errors.As(err, &se) && se.Code == code
}
