// Package ffmpeg builds and executes the ffmpeg invocation for a single
// frame-extraction job. Build is a pure function from Job to argument
// slice; all validation happens before a Job is constructed.
package ffmpeg

import (
	"strconv"
	"strings"
)

// Job holds the validated parameters of one extraction. Time values are
// kept as the strings the user supplied and passed to ffmpeg verbatim.
type Job struct {
	Input      string
	OutputFile string  // Output directory joined with the frame pattern.
	Start      string  // Optional seek position; "" means from the start.
	End        string  // Optional stop position; "" means to the end.
	FPS        float64 // Optional sample rate; 0 means every source frame.
	JPEG       bool    // Append the JPEG quality flag.
	Overwrite  bool    // -y when set, -n otherwise.
	Verbose    bool    // Raise -loglevel from error to info.
}

// Build constructs the complete ffmpeg argument slice for a job. Token
// order is fixed: documented examples and the tests rely on it, and -ss
// sits before -i so ffmpeg seeks on the input side (fast seek).
func Build(job *Job) []string {
	args := make([]string, 0, 16)

	args = append(args, "ffmpeg", "-hide_banner")

	// Loglevel: info when verbose, otherwise error.
	if job.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	if job.Start != "" {
		args = append(args, "-ss", job.Start)
	}

	args = append(args, "-i", job.Input)

	if job.End != "" {
		args = append(args, "-to", job.End)
	}

	if job.FPS > 0 {
		args = append(args, "-vf", "fps="+strconv.FormatFloat(job.FPS, 'f', -1, 64))
	}

	// Fixed quality for JPEG output; PNG is lossless and needs no tuning.
	if job.JPEG {
		args = append(args, "-q:v", "2")
	}

	if job.Overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}

	args = append(args, job.OutputFile)
	return args
}

// CommandString renders an argument slice as a copy-pasteable shell string,
// quoting tokens that contain shell metacharacters. Display only: execution
// always uses the argument vector, never a shell.
func CommandString(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$&|;<>()*?[]#~`!{}") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
