// Package check provides system diagnostics (the check subcommand) and the
// pre-run tool lookup for ffmpeg and ffprobe.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors returned when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH. Install it and try again.")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// FFmpegAvailable verifies ffmpeg is on PATH. Called before any command
// is assembled so the failure surfaces before validation side effects.
func FFmpegAvailable() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	return nil
}

// FfprobeAvailable verifies ffprobe is on PATH. Probing is optional for
// extraction, so callers may treat this failure as a warning.
func FfprobeAvailable() error {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// RunCheck runs the interactive diagnostics flow: prints availability and
// versions of ffmpeg/ffprobe and verifies the image encoders used for
// frame output. Informational only; returns false if anything failed.
func RunCheck(log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(log, "ffmpeg")
	ok = checkTool(log, "ffprobe") && ok
	ok = checkImageEncoder(log, "mjpeg") && ok
	ok = checkImageEncoder(log, "png") && ok
	return ok
}

// checkTool verifies the binary is on PATH and logs its version string.
func checkTool(log Logger, name string) bool {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("%s not found", name)
		return false
	}
	cmd := exec.Command(name, "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return false
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
	return true
}

// checkImageEncoder runs a minimal one-frame encode against the null muxer
// to verify the still-image encoder works.
func checkImageEncoder(log Logger, codec string) bool {
	if runSilent("ffmpeg", encoderTestArgs(codec)...) {
		log.Success("%s encoder works", codec)
		return true
	}
	log.Error("%s test encode failed", codec)
	return false
}

// encoderTestArgs returns the ffmpeg arguments for a minimal single-frame
// test encode with the given image codec.
func encoderTestArgs(codec string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=64x64:d=0.1",
		"-frames:v", "1",
		"-c:v", codec,
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
