// Command framegrab extracts still frames from a video file via ffmpeg.
// It validates options, assembles the ffmpeg command, and either prints it
// (--dry-run) or executes it and reports how many frames were written.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/framegrab/internal/extract"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" these retain their defaults.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

// Exit codes: 0 success, 1 environment/usage errors, exitValidation for
// rejected options, and ffmpeg's own exit status when execution fails.
const exitValidation = 2

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		var xerr *extract.Error
		if errors.As(err, &xerr) {
			// Already rendered through the logger by the command.
			if xerr.Code == extract.ExecutionFailed {
				return xerr.ExitCode
			}
			return exitValidation
		}
		fmt.Fprintf(os.Stderr, "framegrab: %v\n", err)
		return 1
	}
	return 0
}
