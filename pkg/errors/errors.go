package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"clipctl/pkg/logger"

	"github.com/fatih/color"
)

type ExitCode int

const (
	ExitCodeSuccess              ExitCode = 0
	ExitCodeGeneral              ExitCode = 1
	ExitCodeConfig               ExitCode = 2
	ExitCodeClipboardUnavailable ExitCode = 3
	ExitCodePathNotFound         ExitCode = 4
	ExitCodeUnsupported          ExitCode = 5
	ExitCodeValidation           ExitCode = 6
	ExitCodeFileOperation        ExitCode = 7
	ExitCodeCancellation         ExitCode = 8
	ExitCodeEncoding             ExitCode = 9
)

const ErrMsgHistoryFailed = "History operation failed"

type Error struct {
	Code       ExitCode
	Message    string
	Underlying error
	Suggestion string
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func New(code ExitCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NewWithError(code ExitCode, message string, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
	}
}

func NewWithSuggestion(code ExitCode, message string, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	if wrapped, ok := err.(*Error); ok {
		return &Error{
			Code:       wrapped.Code,
			Message:    message + ": " + wrapped.Message,
			Underlying: wrapped.Underlying,
			Suggestion: wrapped.Suggestion,
		}
	}

	return &Error{
		Code:       ExitCodeGeneral,
		Message:    message,
		Underlying: err,
	}
}

func WrapWithCode(err error, code ExitCode, message string) *Error {
	if err == nil {
		return nil
	}

	var errMsg string
	if wrapped, ok := err.(*Error); ok {
		errMsg = wrapped.Message
		if wrapped.Underlying != nil {
			errMsg += ": " + wrapped.Underlying.Error()
		}
	} else {
		errMsg = err.Error()
	}

	return &Error{
		Code:       code,
		Message:    message + ": " + errMsg,
		Underlying: err,
	}
}

// CodeOf returns the exit code carried by the first *Error in err's chain,
// or ExitCodeGeneral.
func CodeOf(err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ExitCodeGeneral
}

func IsExitCode(err error, code ExitCode) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// HandleReturn prints err to stderr and returns the exit code the process
// should terminate with. It does not call os.Exit.
func HandleReturn(err error) ExitCode {
	return Report(os.Stderr, err)
}

// Report writes the user-facing rendering of err to w.
func Report(w io.Writer, err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}

	exitCode := ExitCodeGeneral
	message := err.Error()
	var suggestion string

	var e *Error
	if stderrors.As(err, &e) {
		exitCode = e.Code
		suggestion = e.Suggestion

		if e.Underlying != nil {
			logger.Debug().Err(e.Underlying).Msg(e.Message)
		}
	}

	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, message)

	if suggestion != "" {
		yellow.Fprint(w, "Suggestion: ")
		lines := strings.Split(strings.TrimRight(suggestion, "\n"), "\n")
		for i, line := range lines {
			if i == 0 {
				fmt.Fprintln(w, line)
			} else if strings.HasPrefix(line, "  -") {
				cyan.Fprintln(w, line)
			} else {
				fmt.Fprintln(w, "           "+line)
			}
		}
	}

	fmt.Fprintln(w)

	return exitCode
}

func ConfigError(message string) *Error {
	return &Error{
		Code:       ExitCodeConfig,
		Message:    message,
		Suggestion: "Check your configuration file or the CLIPCTL_* environment variables.\nRun 'clipctl config path' to locate the file.",
	}
}

func ValidationError(message string) *Error {
	return &Error{
		Code:    ExitCodeValidation,
		Message: message,
	}
}

func ClipboardUnavailableError(err error) *Error {
	return &Error{
		Code:       ExitCodeClipboardUnavailable,
		Message:    "Clipboard is not available",
		Underlying: err,
		Suggestion: "On Linux install wl-clipboard (Wayland) or xclip (X11) and run inside a graphical session.",
	}
}

func UnsupportedError(what string, err error) *Error {
	return &Error{
		Code:       ExitCodeUnsupported,
		Message:    fmt.Sprintf("%s is not supported on this platform", what),
		Underlying: err,
	}
}

func PathNotFoundError(patterns []string) *Error {
	suggestion := "Check the path, or use --literal-path to skip wildcard expansion."
	if len(patterns) > 1 {
		suggestion += "\nUnresolved paths:\n"
		for _, p := range patterns {
			suggestion += fmt.Sprintf("  - %s\n", p)
		}
	}
	message := "Path not found"
	if len(patterns) == 1 {
		message = fmt.Sprintf("Cannot find path '%s' because it does not exist", patterns[0])
	}
	return &Error{
		Code:       ExitCodePathNotFound,
		Message:    message,
		Suggestion: suggestion,
	}
}

func EncodingError(err error) *Error {
	return &Error{
		Code:       ExitCodeEncoding,
		Message:    "Failed to encode HTML clipboard content",
		Underlying: err,
	}
}

func FileError(operation, path string, err error) *Error {
	return &Error{
		Code:       ExitCodeFileOperation,
		Message:    fmt.Sprintf("Failed to %s '%s'", operation, path),
		Underlying: err,
	}
}

func CancelledError(operation string) *Error {
	return &Error{
		Code:       ExitCodeCancellation,
		Message:    fmt.Sprintf("Operation cancelled: %s", operation),
		Suggestion: "No changes were made to the clipboard.",
	}
}

// CommandError wraps errors from command handlers with consistent formatting.
// It preserves the original error chain for inspection while providing
// a user-friendly message.
func CommandError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", operation, err)
}
