package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout dataview
var (
	ErrScreenNotFound    = errors.New("screen not found")
	ErrUnsupportedFormat = errors.New("unsupported record file format")
	ErrNoRecords         = errors.New("no record list found")
	ErrNoDatabaseURL     = errors.New("no database URL configured")
	ErrInvalidState      = errors.New("invalid view state")
)

// Error is a structured error with context and suggestions
type Error struct {
	Title       string   // Short error title
	Message     string   // Detailed message
	Context     string   // What was being attempted
	Causes      []string // Possible causes
	Suggestions []string // Actionable suggestions with commands
	Err         error    // Wrapped error
}

func (e *Error) Error() string {
	return e.Title
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Format returns a nicely formatted error message
func (e *Error) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Title))

	if e.Message != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Message))
	}
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Context))
	}
	if e.Err != nil && e.Err.Error() != e.Message {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Err))
	}

	if len(e.Causes) > 0 {
		sb.WriteString("\n  Possible causes:\n")
		for _, cause := range e.Causes {
			sb.WriteString(fmt.Sprintf("    • %s\n", cause))
		}
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n  Try:\n")
		for _, sug := range e.Suggestions {
			sb.WriteString(fmt.Sprintf("    $ %s\n", sug))
		}
	}

	return sb.String()
}

// NewError creates a new Error
func NewError(title string) *Error {
	return &Error{Title: title}
}

// WithMessage adds a detailed message
func (e *Error) WithMessage(msg string) *Error {
	e.Message = msg
	return e
}

// WithContext adds context about what was being attempted
func (e *Error) WithContext(ctx string) *Error {
	e.Context = ctx
	return e
}

// WithCause adds a possible cause
func (e *Error) WithCause(cause string) *Error {
	e.Causes = append(e.Causes, cause)
	return e
}

// WithCauses adds multiple possible causes
func (e *Error) WithCauses(causes ...string) *Error {
	e.Causes = append(e.Causes, causes...)
	return e
}

// WithSuggestion adds an actionable suggestion
func (e *Error) WithSuggestion(sug string) *Error {
	e.Suggestions = append(e.Suggestions, sug)
	return e
}

// WithSuggestions adds multiple suggestions
func (e *Error) WithSuggestions(sugs ...string) *Error {
	e.Suggestions = append(e.Suggestions, sugs...)
	return e
}

// Wrap wraps an underlying error
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// ══════════════════════════════════════════════════════════════════════════
// Pre-built error constructors for common cases
// ══════════════════════════════════════════════════════════════════════════

// ScreenNotFoundError returns a structured error for an unknown screen
func ScreenNotFoundError(name string) *Error {
	return NewError(fmt.Sprintf("Screen '%s' not found", name)).
		WithSuggestions(
			"dataview screens                # List available screens",
			"dataview view <file>            # View without a screen",
		).
		Wrap(ErrScreenNotFound)
}

// UnsupportedFormatError returns a structured error for a record file that
// cannot be read
func UnsupportedFormatError(path string) *Error {
	return NewError("Unsupported record file").
		WithContext(path).
		WithMessage("Record files must be JSON (.json), JSON lines (.jsonl, .ndjson) or TOML (.toml)").
		Wrap(ErrUnsupportedFormat)
}

// DatabaseConnectionError returns a structured error for DB connection issues
func DatabaseConnectionError(url string, err error) *Error {
	return NewError("Cannot connect to database").
		WithContext(url).
		WithCauses(
			"Database server is not running",
			"Invalid connection credentials",
			"Network connectivity issues",
			"Database does not exist",
		).
		WithSuggestions(
			"dataview config database.url <url>   # Set the connection URL",
			"DATAVIEW_DATABASE_URL=<url> dataview sql <query>",
		).
		Wrap(err)
}

// InvalidStateError returns a structured error for an unparseable --state
func InvalidStateError(raw string, err error) *Error {
	return NewError("Invalid view state").
		WithContext(raw).
		WithMessage("State must be a query string like sort=name&dir=asc&page=2").
		Wrap(errors.Join(ErrInvalidState, err))
}

// MissingArgumentError returns an error for missing required argument
func MissingArgumentError(argName, example string) *Error {
	e := NewError(fmt.Sprintf("Missing required argument: <%s>", argName))
	if example != "" {
		e.WithSuggestion(example)
	}
	return e
}

// TooManyArgumentsError returns an error for too many arguments
func TooManyArgumentsError(expected int, got int) *Error {
	return NewError(fmt.Sprintf("Too many arguments: expected %d, got %d", expected, got))
}
