package extract

import "fmt"

// Code classifies why an extraction was rejected or failed. Validation
// codes are raised before any process is spawned; ExecutionFailed is the
// only code that can occur afterwards.
type Code string

const (
	InputNotFound     Code = "input-not-found"
	OutputDirError    Code = "output-dir-error"
	InvalidTimeFormat Code = "invalid-time-format"
	InvalidFPS        Code = "invalid-fps"
	InvalidPattern    Code = "invalid-pattern"
	ToolNotFound      Code = "tool-not-found"
	ExecutionFailed   Code = "execution-failed"
)

// Error is the typed failure returned to callers. ExitCode carries the
// external process's exit status for ExecutionFailed; validation failures
// leave it zero and the process-level code is the caller's choice.
type Error struct {
	Code     Code
	Err      error
	ExitCode int
	Stderr   string // Captured ffmpeg stderr for ExecutionFailed.
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Validation reports whether the failure occurred before execution started.
func (e *Error) Validation() bool { return e.Code != ExecutionFailed }

func failf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

func fail(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}
