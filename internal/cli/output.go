package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // expected conflict (project exists, nothing tracked, ...)
	ExitCommandError = 2 // command/storage error (bad path, lock held, corrupt log, ...)
)

// ExitError carries a specific exit code out of a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors without one
// count as ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Styles for the status words the tool leads its messages with.
var (
	styleGood = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleBad  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ErrorLine formats a fatal error for stderr. lipgloss degrades the
// styling on its own when the output is not a terminal.
func ErrorLine(err error) string {
	return styleBad.Render("Error:") + " " + err.Error()
}

// painter renders a styled fragment. plainPaint drops the styling; it is
// what --no-color and the golden tests use.
type painter func(style lipgloss.Style, s string) string

func plainPaint(_ lipgloss.Style, s string) string { return s }

func styledPaint(style lipgloss.Style, s string) string { return style.Render(s) }

// painter returns the fragment renderer honoring the color setting.
func (o *RootOptions) painter() painter {
	if o.NoColor {
		return plainPaint
	}
	return styledPaint
}

// formatDuration renders a duration as "1h 2m 3s", omitting leading
// zero components.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
