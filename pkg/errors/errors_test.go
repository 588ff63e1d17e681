package errors

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "basic error without underlying",
			err:      &Error{Code: ExitCodeGeneral, Message: "test error"},
			expected: "test error",
		},
		{
			name:     "error with underlying",
			err:      &Error{Code: ExitCodeConfig, Message: "config error", Underlying: errors.New("file not found")},
			expected: "config error: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:       ExitCodeGeneral,
		Message:    "test error",
		Underlying: underlying,
	}

	if err.Unwrap() != underlying {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), underlying)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is() should find the underlying error")
	}
}

func TestNewWithError(t *testing.T) {
	underlying := errors.New("wl-paste missing")
	err := NewWithError(ExitCodeClipboardUnavailable, "clipboard read failed", underlying)

	if err.Code != ExitCodeClipboardUnavailable {
		t.Errorf("Code = %d, want %d", err.Code, ExitCodeClipboardUnavailable)
	}
	if err.Message != "clipboard read failed" {
		t.Errorf("Message = %q, want %q", err.Message, "clipboard read failed")
	}
	if err.Underlying != underlying {
		t.Errorf("Underlying = %v, want %v", err.Underlying, underlying)
	}
}

func TestWrap(t *testing.T) {
	underlying := errors.New("original error")
	err := Wrap(underlying, "wrapped message")

	if err.Error() != "wrapped message: original error" {
		t.Errorf("Error() = %q, want %q", err.Error(), "wrapped message: original error")
	}

	if Wrap(nil, "message") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapWithCode(t *testing.T) {
	underlying := errors.New("original error")
	err := WrapWithCode(underlying, ExitCodeUnsupported, "not supported")

	if err.Code != ExitCodeUnsupported {
		t.Errorf("Code = %d, want %d", err.Code, ExitCodeUnsupported)
	}
	if err.Message != "not supported: original error" {
		t.Errorf("Message = %q, want %q", err.Message, "not supported: original error")
	}
}

func TestWrapKeepsCode(t *testing.T) {
	inner := New(ExitCodePathNotFound, "not found error")
	err := Wrap(inner, "outer error")

	if err.Code != ExitCodePathNotFound {
		t.Errorf("Code = %d, want %d", err.Code, ExitCodePathNotFound)
	}
	if err.Message != "outer error: not found error" {
		t.Errorf("Message = %q, want %q", err.Message, "outer error: not found error")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{name: "nil", err: nil, want: ExitCodeSuccess},
		{name: "plain", err: errors.New("boom"), want: ExitCodeGeneral},
		{name: "direct", err: ValidationError("bad"), want: ExitCodeValidation},
		{name: "wrapped by fmt", err: fmt.Errorf("set: %w", EncodingError(errors.New("overflow"))), want: ExitCodeEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %d, want %d", got, tt.want)
			}
		})
	}

	if IsExitCode(nil, ExitCodeGeneral) {
		t.Error("IsExitCode() should return false for nil error")
	}
	if !IsExitCode(CancelledError("set"), ExitCodeCancellation) {
		t.Error("IsExitCode() should return true for matching code")
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	code := Report(&buf, PathNotFoundError([]string{"/tmp/a*", "/tmp/b"}))

	if code != ExitCodePathNotFound {
		t.Errorf("Report() = %d, want %d", code, ExitCodePathNotFound)
	}
	out := buf.String()
	for _, want := range []string{"Error: ", "Path not found", "Suggestion: ", "  - /tmp/a*", "  - /tmp/b"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report() output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if code := Report(&buf, nil); code != ExitCodeSuccess || buf.Len() != 0 {
		t.Errorf("Report(nil) = %d with output %q, want success and no output", code, buf.String())
	}
}

func TestHelperFunctions(t *testing.T) {
	tests := []struct {
		name string
		fn   func() *Error
		code ExitCode
	}{
		{name: "ConfigError", fn: func() *Error { return ConfigError("invalid yaml") }, code: ExitCodeConfig},
		{name: "ValidationError", fn: func() *Error { return ValidationError("missing value") }, code: ExitCodeValidation},
		{name: "ClipboardUnavailableError", fn: func() *Error { return ClipboardUnavailableError(errors.New("no display")) }, code: ExitCodeClipboardUnavailable},
		{name: "UnsupportedError", fn: func() *Error { return UnsupportedError("audio", nil) }, code: ExitCodeUnsupported},
		{name: "PathNotFoundError", fn: func() *Error { return PathNotFoundError([]string{"x"}) }, code: ExitCodePathNotFound},
		{name: "EncodingError", fn: func() *Error { return EncodingError(errors.New("overflow")) }, code: ExitCodeEncoding},
		{name: "FileError", fn: func() *Error { return FileError("write", "out.png", errors.New("denied")) }, code: ExitCodeFileOperation},
		{name: "CancelledError", fn: func() *Error { return CancelledError("set") }, code: ExitCodeCancellation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if err.Code != tt.code {
				t.Errorf("%s() returned error with code %d, want %d", tt.name, err.Code, tt.code)
			}
		})
	}
}

func TestPathNotFoundErrorMessage(t *testing.T) {
	err := PathNotFoundError([]string{"/no/such"})
	want := "Cannot find path '/no/such' because it does not exist"
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

func TestCommandError(t *testing.T) {
	if CommandError("get", nil) != nil {
		t.Error("CommandError(nil) should return nil")
	}
	inner := errors.New("boom")
	err := CommandError("get clipboard", inner)
	if err.Error() != "get clipboard: boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "get clipboard: boom")
	}
	if !errors.Is(err, inner) {
		t.Error("CommandError() should keep the error chain")
	}
}
