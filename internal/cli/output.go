package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/arcadejump/internal/compiler"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Failure of the work itself (degenerate jump, failed scenarios)
	ExitCommandError = 2 // Command error (invalid paths, invalid sources, etc.)
)

// Error codes reported in CLI responses. Diagnostics of .jump sources carry
// the compiler codes (E200-E209) instead.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeScanError    = "E002" // Directory scan error
	ErrCodeNoFiles      = "E003" // No .jump files found
	ErrCodeLoadFailed   = "E004" // CUE presets could not be loaded
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeConfig       = "E006" // Invalid jumpgen.yaml
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeInvalidInput = "E008" // Malformed command argument
	ErrCodeDegenerate   = "E009" // A null input left the jump undefined
	ErrCodeCache        = "E010" // Generation cache could not be used
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
	Color     bool // Colour diagnostic codes in text output
}

// newFormatter builds the formatter of a command. Colour is enabled when
// stdout is a terminal and NO_COLOR is unset.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		Color:     isTerminal(cmd.OutOrStdout()),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E206", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", f.paint(code), message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}

// Diagnostics outputs the diagnostics of a .jump source. In text format
// each diagnostic is followed by its source line and a caret under the
// offending token.
func (f *OutputFormatter) Diagnostics(src []byte, diags compiler.Diagnostics) error {
	if len(diags) == 0 {
		return nil
	}
	if f.Format == "json" {
		errs := make([]CLIError, len(diags))
		for i, d := range diags {
			errs[i] = CLIError{Code: d.Code, Message: d.Message, Details: d.Pos.String()}
		}
		return f.encode(CLIResponse{Status: "error", Error: &errs[0], Data: errs})
	}

	// Positions refer to the NFC form the compiler scans.
	lines := strings.Split(norm.NFC.String(string(src)), "\n")
	for _, d := range diags {
		fmt.Fprintf(f.Writer, "%s: %s: %s\n", d.Pos, f.paint(d.Code), d.Message)
		if d.Pos.Line < 1 || d.Pos.Line > len(lines) {
			continue
		}
		line := lines[d.Pos.Line-1]
		fmt.Fprintf(f.Writer, "\t%s\n\t%s^\n", line, caretIndent(line, d.Pos.Column))
	}
	return nil
}

// caretIndent reproduces the whitespace of line up to column so that a
// caret lines up under tabs.
func caretIndent(line string, column int) string {
	if n := column - 1; n < len(line) {
		line = line[:max(n, 0)]
	}
	var b bytes.Buffer
	for _, r := range line {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func (f *OutputFormatter) paint(code string) string {
	if !f.Color {
		return code
	}
	return "\x1b[31m" + code + "\x1b[0m"
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
