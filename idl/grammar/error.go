package grammar

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// ErrorContext indicates the environment where parser errors will be displayed
type ErrorContext string

const (
	// ErrorContextTerminal indicates errors will be displayed in terminal with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain indicates errors will be displayed without ANSI codes (logs, CI, etc)
	ErrorContextPlain ErrorContext = "plain"
)

// ErrorSeverity indicates the severity level of a parser error
type ErrorSeverity string

const (
	SeverityError   ErrorSeverity = "error"   // Syntax errors that prevent parsing
	SeverityWarning ErrorSeverity = "warning" // Best-effort parsing warnings
	SeverityHint    ErrorSeverity = "hint"    // Suggestions for improvement
)

// ErrorKind categorizes parser errors for programmatic handling
type ErrorKind string

const (
	ErrorKindSyntax  ErrorKind = "syntax"  // Invalid syntax (malformed IDL)
	ErrorKindLexical ErrorKind = "lexical" // Character-level error (bad byte in input)
	ErrorKindUnknown ErrorKind = "unknown" // Uncategorized
)

// ParseError represents a structured parser error with source location
type ParseError struct {
	Err         error         // Underlying error
	Kind        ErrorKind     // Error category
	Severity    ErrorSeverity // Error severity
	Message     string        // Human-readable message
	Pos         Position      // Source location where the error occurred
	Token       string        // Token or character that caused the error (optional)
	Suggestions []string      // Possible fixes
}

// Error implements error interface
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// FormatError generates context-appropriate error message
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.formatPlainError()
	}
	return e.formatTerminalError()
}

// formatPlainError creates concise error for logs and non-TTY output
func (e *ParseError) formatPlainError() string {
	msg := fmt.Sprintf("%s error: %s (line %d, column %d)", e.Kind, e.Message, e.Pos.Line, e.Pos.Character+1)
	if e.Token != "" {
		msg += fmt.Sprintf(" near '%s'", e.Token)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// formatTerminalError creates rich colored error for terminal
func (e *ParseError) formatTerminalError() string {
	var baseMsg string
	switch e.Severity {
	case SeverityError:
		baseMsg = pterm.Red(e.Message)
	case SeverityWarning:
		baseMsg = pterm.Yellow(e.Message)
	case SeverityHint:
		baseMsg = pterm.LightCyan(e.Message)
	default:
		baseMsg = e.Message
	}

	context := fmt.Sprintf("\n\n%s", pterm.LightCyan("Context:"))
	context += fmt.Sprintf("\n  %s line %d, column %d", pterm.Yellow("Location:"), e.Pos.Line, e.Pos.Character+1)
	if e.Token != "" {
		context += fmt.Sprintf("\n  %s '%s'", pterm.Yellow("Token:"), e.Token)
	}

	if len(e.Suggestions) > 0 {
		context += fmt.Sprintf("\n\n%s", pterm.Green("Suggestions:"))
		for _, suggestion := range e.Suggestions {
			context += fmt.Sprintf("\n  - %s", suggestion)
		}
	}

	return fmt.Sprintf("%s%s", baseMsg, context)
}

// Unwrap for errors.Is/As compatibility
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Builder pattern for constructing ParseErrors

// NewParseError creates a new ParseError with the given kind and message
func NewParseError(kind ErrorKind, message string) *ParseError {
	return &ParseError{
		Kind:     kind,
		Severity: SeverityError,
		Message:  message,
	}
}

// WithPosition sets the source location where the error occurred
func (e *ParseError) WithPosition(pos Position) *ParseError {
	e.Pos = pos
	return e
}

// WithToken sets the token that caused the error
func (e *ParseError) WithToken(token string) *ParseError {
	e.Token = token
	return e
}

// WithSeverity sets the error severity
func (e *ParseError) WithSeverity(sev ErrorSeverity) *ParseError {
	e.Severity = sev
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithUnderlying sets the underlying error
func (e *ParseError) WithUnderlying(err error) *ParseError {
	e.Err = err
	return e
}
