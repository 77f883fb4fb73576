package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/framegrab/internal/check"
	"github.com/backmassage/framegrab/internal/ffmpeg"
)

// withFFmpegOnPath stubs the binary lookup so tests pass without ffmpeg
// installed. Restored automatically via t.Cleanup.
func withFFmpegOnPath(t *testing.T) {
	t.Helper()
	orig := lookFFmpeg
	lookFFmpeg = func() error { return nil }
	t.Cleanup(func() { lookFFmpeg = orig })
}

// withExecutor replaces the process runner for the duration of the test.
func withExecutor(t *testing.T, fn func(ctx context.Context, args []string, verbose bool) ffmpeg.ExecResult) {
	t.Helper()
	orig := executeFn
	executeFn = fn
	t.Cleanup(func() { executeFn = orig })
}

// writeInput creates a small fake video file and returns its path.
func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(path, []byte("fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func validRequest(t *testing.T) *Request {
	dir := t.TempDir()
	return &Request{
		Input:     writeInput(t, dir),
		OutputDir: filepath.Join(dir, "frames"),
		Pattern:   "frame_%06d.jpg",
	}
}

func TestValidate_RejectionCodes(t *testing.T) {
	withFFmpegOnPath(t)

	tests := []struct {
		name   string
		mutate func(*Request)
		want   Code
	}{
		{"missing input", func(r *Request) { r.Input = r.Input + ".nope" }, InputNotFound},
		{"input is a directory", func(r *Request) { r.Input = filepath.Dir(r.Input) }, InputNotFound},
		{"bad start time", func(r *Request) { r.Start = "99:99" }, InvalidTimeFormat},
		{"negative start", func(r *Request) { r.Start = "-1" }, InvalidTimeFormat},
		{"bad end time", func(r *Request) { r.End = "abc" }, InvalidTimeFormat},
		{"zero fps", func(r *Request) { r.FPS = "0" }, InvalidFPS},
		{"negative fps", func(r *Request) { r.FPS = "-3" }, InvalidFPS},
		{"non-numeric fps", func(r *Request) { r.FPS = "fast" }, InvalidFPS},
		{"nan fps", func(r *Request) { r.FPS = "NaN" }, InvalidFPS},
		{"inf fps", func(r *Request) { r.FPS = "+Inf" }, InvalidFPS},
		{"bad pattern extension", func(r *Request) { r.Pattern = "frame_%06d.txt" }, InvalidPattern},
		{"no placeholder", func(r *Request) { r.Pattern = "frame.jpg" }, InvalidPattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)
			_, err := Validate(req)
			var xerr *Error
			if !errors.As(err, &xerr) {
				t.Fatalf("Validate() error = %v, want *Error", err)
			}
			if xerr.Code != tt.want {
				t.Errorf("code = %q, want %q", xerr.Code, tt.want)
			}
			if !xerr.Validation() {
				t.Error("validation failures must report Validation() == true")
			}
		})
	}
}

func TestValidate_OutputPathOccupiedByFile(t *testing.T) {
	withFFmpegOnPath(t)
	req := validRequest(t)
	if err := os.WriteFile(req.OutputDir, []byte("occupied"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Validate(req)
	var xerr *Error
	if !errors.As(err, &xerr) || xerr.Code != OutputDirError {
		t.Errorf("Validate() error = %v, want OutputDirError", err)
	}
}

func TestValidate_ToolNotFound(t *testing.T) {
	orig := lookFFmpeg
	lookFFmpeg = func() error { return check.ErrFfmpegNotFound }
	t.Cleanup(func() { lookFFmpeg = orig })

	req := validRequest(t)
	_, err := Validate(req)
	var xerr *Error
	if !errors.As(err, &xerr) || xerr.Code != ToolNotFound {
		t.Fatalf("Validate() error = %v, want ToolNotFound", err)
	}
	if !errors.Is(err, check.ErrFfmpegNotFound) {
		t.Error("ToolNotFound should wrap the sentinel error")
	}
}

func TestValidate_BuildsJob(t *testing.T) {
	withFFmpegOnPath(t)
	req := validRequest(t)
	req.Start = "00:00:05"
	req.End = "00:00:10"
	req.FPS = "2"
	req.Overwrite = true

	job, err := Validate(req)
	if err != nil {
		t.Fatal(err)
	}
	if job.Start != "00:00:05" || job.End != "00:00:10" {
		t.Errorf("times = %q..%q, want originals preserved", job.Start, job.End)
	}
	if job.FPS != 2 {
		t.Errorf("FPS = %v, want 2", job.FPS)
	}
	if !job.JPEG {
		t.Error("JPEG should be set for a .jpg pattern")
	}
	if !job.Overwrite {
		t.Error("Overwrite should carry over")
	}
	want := filepath.Join(req.OutputDir, req.Pattern)
	if job.OutputFile != want {
		t.Errorf("OutputFile = %q, want %q", job.OutputFile, want)
	}
}

func TestRun_DryRunLeavesNoTrace(t *testing.T) {
	withFFmpegOnPath(t)
	withExecutor(t, func(context.Context, []string, bool) ffmpeg.ExecResult {
		t.Fatal("dry-run must not execute")
		return ffmpeg.ExecResult{}
	})

	req := validRequest(t)
	req.DryRun = true

	result, err := Run(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Preview {
		t.Error("dry-run result should be marked Preview")
	}
	if len(result.Args) == 0 || result.Args[0] != "ffmpeg" {
		t.Errorf("Args = %v, want assembled ffmpeg command", result.Args)
	}
	if result.Summary() != result.Command {
		t.Errorf("Summary() = %q, want the command text", result.Summary())
	}
	if _, err := os.Stat(req.OutputDir); !os.IsNotExist(err) {
		t.Error("dry-run must not create the output directory")
	}
}

func TestRun_ExecutesAndCounts(t *testing.T) {
	withFFmpegOnPath(t)
	req := validRequest(t)

	withExecutor(t, func(_ context.Context, args []string, _ bool) ffmpeg.ExecResult {
		// Behave like ffmpeg: write frames matching the output pattern.
		for i := 1; i <= 7; i++ {
			name := fmt.Sprintf("frame_%06d.jpg", i)
			if err := os.WriteFile(filepath.Join(req.OutputDir, name), []byte("img"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		return ffmpeg.ExecResult{}
	})

	result, err := Run(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.Preview {
		t.Error("executed run should not be a preview")
	}
	if result.FrameCount != 7 {
		t.Errorf("FrameCount = %d, want 7", result.FrameCount)
	}
	want := "Wrote 7 frames to " + req.OutputDir
	if result.Summary() != want {
		t.Errorf("Summary() = %q, want %q", result.Summary(), want)
	}
}

func TestRun_CountIgnoresNonMatchingFiles(t *testing.T) {
	withFFmpegOnPath(t)
	req := validRequest(t)

	withExecutor(t, func(context.Context, []string, bool) ffmpeg.ExecResult {
		files := []string{"frame_000001.jpg", "frame_000002.jpg", "notes.txt", "other_1.png"}
		for _, name := range files {
			if err := os.WriteFile(filepath.Join(req.OutputDir, name), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		return ffmpeg.ExecResult{}
	})

	result, err := Run(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.FrameCount != 2 {
		t.Errorf("FrameCount = %d, want 2", result.FrameCount)
	}
}

func TestRun_PropagatesExitCode(t *testing.T) {
	withFFmpegOnPath(t)
	withExecutor(t, func(context.Context, []string, bool) ffmpeg.ExecResult {
		return ffmpeg.ExecResult{
			Err:      errors.New("exit status 187"),
			ExitCode: 187,
			Stderr:   "in.mp4: Invalid data found when processing input",
		}
	})

	req := validRequest(t)
	_, err := Run(context.Background(), req)
	var xerr *Error
	if !errors.As(err, &xerr) {
		t.Fatalf("Run() error = %v, want *Error", err)
	}
	if xerr.Code != ExecutionFailed {
		t.Errorf("code = %q, want ExecutionFailed", xerr.Code)
	}
	if xerr.ExitCode != 187 {
		t.Errorf("ExitCode = %d, want 187", xerr.ExitCode)
	}
	if xerr.Validation() {
		t.Error("ExecutionFailed must report Validation() == false")
	}
	if xerr.Stderr == "" {
		t.Error("captured stderr should be carried on the error")
	}
}

func TestRun_CreatesOutputDir(t *testing.T) {
	withFFmpegOnPath(t)
	withExecutor(t, func(context.Context, []string, bool) ffmpeg.ExecResult {
		return ffmpeg.ExecResult{}
	})

	req := validRequest(t)
	req.OutputDir = filepath.Join(req.OutputDir, "deeper")
	if _, err := Run(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(req.OutputDir)
	if err != nil || !fi.IsDir() {
		t.Errorf("output directory was not created: %v", err)
	}
}
