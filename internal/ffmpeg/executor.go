package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr   string
	ExitCode int // 0 on success; ffmpeg's exit status otherwise.
	Err      error
}

// Execute runs an assembled argument slice. When verbose, stderr is tee'd
// to os.Stderr in real time so the user sees ffmpeg's own progress lines;
// otherwise it is captured silently for error reporting.
func Execute(ctx context.Context, args []string, verbose bool) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr:   stderrBuf.String(),
		ExitCode: exitCode(err),
		Err:      err,
	}
}

// exitCode extracts the process exit status from a Run error. Failures
// that never produced an exit status (e.g. start errors) map to 1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return 1
}
