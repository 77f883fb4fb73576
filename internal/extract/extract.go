// Package extract is the frame-extraction core: it validates a request,
// assembles the ffmpeg command, optionally executes it, and summarizes the
// outcome. It never prints; presentation belongs to the caller.
package extract

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/backmassage/framegrab/internal/check"
	"github.com/backmassage/framegrab/internal/ffmpeg"
	"github.com/backmassage/framegrab/internal/pattern"
)

// Request carries the raw, possibly-untrusted options for one extraction.
// String fields hold the values exactly as the user supplied them;
// validation decides whether they are acceptable.
type Request struct {
	Input     string
	OutputDir string
	Start     string // Optional; seconds or H:MM:SS[.ms].
	End       string // Optional; same formats as Start.
	FPS       string // Optional; must parse as a positive number.
	Pattern   string
	Overwrite bool
	Verbose   bool
	DryRun    bool
}

// Result is the successful outcome of [Run]. Exactly one of the two shapes
// applies: a dry-run preview (Preview true, FrameCount meaningless) or a
// completed extraction with the number of matching frame files found.
type Result struct {
	Args       []string // Assembled ffmpeg argument vector.
	Command    string   // Shell-quoted rendering of Args for display.
	Preview    bool     // Dry-run: nothing was executed or written.
	FrameCount int
	OutputDir  string
}

// Summary returns the one-line human-readable outcome.
func (r *Result) Summary() string {
	if r.Preview {
		return r.Command
	}
	return fmt.Sprintf("Wrote %d frames to %s", r.FrameCount, r.OutputDir)
}

// Seams for tests: substitute a fake ffmpeg binary lookup and runner.
var (
	lookFFmpeg = check.FFmpegAvailable
	executeFn  = ffmpeg.Execute
)

// Validate checks every field of req and locates ffmpeg, returning the
// ready-to-build job. All failure modes surface here, before any side
// effect; Build itself cannot fail.
func Validate(req *Request) (*ffmpeg.Job, error) {
	if err := lookFFmpeg(); err != nil {
		return nil, fail(ToolNotFound, err)
	}

	fi, err := os.Stat(req.Input)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, failf(InputNotFound, "input file not found: %s", req.Input)
	}

	if fi, err := os.Stat(req.OutputDir); err == nil && !fi.IsDir() {
		return nil, failf(OutputDirError, "output path exists but is not a directory: %s", req.OutputDir)
	}

	job := &ffmpeg.Job{
		Input:     req.Input,
		Overwrite: req.Overwrite,
		Verbose:   req.Verbose,
	}

	if req.Start != "" {
		start, err := ParseTime(req.Start)
		if err != nil {
			return nil, failf(InvalidTimeFormat, "start: %v", err)
		}
		job.Start = start
	}
	if req.End != "" {
		end, err := ParseTime(req.End)
		if err != nil {
			return nil, failf(InvalidTimeFormat, "end: %v", err)
		}
		job.End = end
	}

	if req.FPS != "" {
		fps, err := strconv.ParseFloat(req.FPS, 64)
		if err != nil || fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
			return nil, failf(InvalidFPS, "fps must be a number > 0 (got %q)", req.FPS)
		}
		job.FPS = fps
	}

	if err := pattern.Validate(req.Pattern); err != nil {
		return nil, fail(InvalidPattern, err)
	}
	job.JPEG = pattern.IsJPEG(req.Pattern)
	job.OutputFile = filepath.Join(req.OutputDir, req.Pattern)

	return job, nil
}

// Run is the single entry point for callers: validate, assemble, and
// (unless dry-run) execute and count the produced frames. The returned
// error is always a *Error carrying the failure code.
func Run(ctx context.Context, req *Request) (*Result, error) {
	job, err := Validate(req)
	if err != nil {
		return nil, err
	}

	args := ffmpeg.Build(job)
	result := &Result{
		Args:      args,
		Command:   ffmpeg.CommandString(args),
		OutputDir: req.OutputDir,
	}

	if req.DryRun {
		result.Preview = true
		return result, nil
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, failf(OutputDirError, "cannot create output directory %s: %v", req.OutputDir, err)
	}

	res := executeFn(ctx, args, req.Verbose)
	if res.Err != nil {
		return nil, &Error{
			Code:     ExecutionFailed,
			Err:      fmt.Errorf("ffmpeg exited with status %d", res.ExitCode),
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
	}

	result.FrameCount = countFrames(req.OutputDir, req.Pattern)
	return result, nil
}

// countFrames counts files in dir matching the glob derived from the
// frame pattern (e.g. frame_%06d.jpg -> frame_*.jpg).
func countFrames(dir, p string) int {
	matches, err := filepath.Glob(filepath.Join(dir, pattern.Glob(p)))
	if err != nil {
		return 0
	}
	return len(matches)
}
