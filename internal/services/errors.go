package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolNotFound marks failures caused by an external binary missing
	// from the execution path.
	ErrToolNotFound = errors.New("external tool not found")
	// ErrToolFailed marks a non-zero exit from an external tool.
	ErrToolFailed = errors.New("external tool failed")
	// ErrMalformedOutput marks unparseable output from an external tool
	// (invalid JSON, undetectable text encoding).
	ErrMalformedOutput = errors.New("malformed tool output")
	// ErrMissingInput marks absent prerequisites: no such directory, no
	// tracks, no track for the requested language.
	ErrMissingInput = errors.New("missing input")
	// ErrConfiguration marks invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes tool and operation context while
// tagging it with the provided marker for later classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, tool, operation, message string, err error) error {
	detail := buildDetail(tool, operation, message)
	if marker == nil {
		marker = ErrToolFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCodeError carries the exit code of a failed external invocation so
// callers can report it without parsing error text.
type ExitCodeError struct {
	Tool string
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("%s exited with code %d: %v", e.Tool, e.Code, e.Err)
}

func (e *ExitCodeError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrToolFailed
}

// ExitCode extracts the exit code from err when it wraps an ExitCodeError.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

func buildDetail(tool, operation, message string) string {
	parts := make([]string, 0, 3)
	if tool = strings.TrimSpace(tool); tool != "" {
		parts = append(parts, tool)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
