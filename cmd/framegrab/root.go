package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backmassage/framegrab/internal/check"
	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/display"
	"github.com/backmassage/framegrab/internal/extract"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/pattern"
	"github.com/backmassage/framegrab/internal/probe"
	"github.com/backmassage/framegrab/internal/term"
)

// rootFlags collects the raw flag values; they are folded into the Config
// after the optional defaults file is loaded, so that flags always win.
type rootFlags struct {
	configPath string
	start      string
	end        string
	fps        string
	pattern    string
	overwrite  bool
	dryRun     bool
	verbose    bool
	forceColor bool
	noColor    bool
	logFile    string
}

func newRootCommand() *cobra.Command {
	var fl rootFlags

	rootCmd := &cobra.Command{
		Use:   "framegrab <input_video> <output_dir>",
		Short: "Extract still frames from a video via ffmpeg",
		Long: `Framegrab builds and runs an ffmpeg command that extracts still frames
from a video file into an output directory, numbered by a printf-style
filename pattern. Use --dry-run to print the command without executing it.`,
		Example: `  framegrab sample.mp4 frames/
  framegrab sample.mp4 frames/ --start 00:00:05 --end 10 --fps 2 \
      --pattern "img_%05d.png" --verbose --dry-run`,
		Version:       version + " (" + commit + ")",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, &fl)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&fl.start, "start", "", "Start time (seconds or H:MM:SS[.ms])")
	flags.StringVar(&fl.end, "end", "", "End time (seconds or H:MM:SS[.ms])")
	flags.StringVar(&fl.fps, "fps", "", "Sample at a fixed frames per second")
	flags.StringVar(&fl.pattern, "pattern", "frame_%06d.jpg", "Output filename pattern (.jpg/.jpeg/.png)")
	flags.BoolVarP(&fl.overwrite, "overwrite", "f", false, "Overwrite existing output files (ffmpeg -y)")
	flags.BoolVarP(&fl.dryRun, "dry-run", "d", false, "Print the ffmpeg command without executing it")
	flags.BoolVarP(&fl.verbose, "verbose", "v", false, "Verbose output (relay ffmpeg log lines)")
	flags.BoolVar(&fl.forceColor, "color", false, "Force colored logs")
	flags.BoolVar(&fl.noColor, "no-color", false, "Disable colored logs")
	flags.StringVarP(&fl.logFile, "log", "l", "", "Append logs to file")
	rootCmd.PersistentFlags().StringVarP(&fl.configPath, "config", "c", "", "Defaults file path (TOML)")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newProbeCommand())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// buildConfig layers defaults, the optional TOML file, and changed flags.
func buildConfig(cmd *cobra.Command, fl *rootFlags) (config.Config, error) {
	cfg := config.DefaultConfig()
	if err := config.LoadFile(&cfg, fl.configPath); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("pattern") {
		cfg.Pattern = fl.pattern
	}
	if flags.Changed("overwrite") {
		cfg.Overwrite = fl.overwrite
	}
	if flags.Changed("verbose") {
		cfg.Verbose = fl.verbose
	}
	if flags.Changed("log") {
		cfg.LogFile = fl.logFile
	}
	if fl.noColor {
		cfg.ColorMode = term.ColorNever
	} else if fl.forceColor {
		cfg.ColorMode = term.ColorAlways
	}
	cfg.Start = fl.start
	cfg.End = fl.end
	cfg.DryRun = fl.dryRun

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runExtract(cmd *cobra.Command, args []string, fl *rootFlags) error {
	cfg, err := buildConfig(cmd, fl)
	if err != nil {
		return err
	}
	cfg.Input = args[0]
	cfg.OutputDir = config.NormalizeDirArg(args[1])

	log, err := logging.NewLogger(cfg.ColorMode, cfg.LogFile)
	if err != nil {
		return err
	}
	defer log.Close()

	req := &extract.Request{
		Input:     cfg.Input,
		OutputDir: cfg.OutputDir,
		Start:     cfg.Start,
		End:       cfg.End,
		FPS:       requestFPS(cmd, fl, &cfg),
		Pattern:   cfg.Pattern,
		Overwrite: cfg.Overwrite,
		Verbose:   cfg.Verbose,
		DryRun:    cfg.DryRun,
	}

	log.Debug(cfg.Verbose, "Assembling ffmpeg command...")
	if cfg.Verbose {
		logPlan(log, req)
	}

	// Validate before anything advisory runs: a rejected request must
	// not spawn a process, not even the ffprobe guard.
	if _, err := extract.Validate(req); err != nil {
		return logExtractError(log, cfg.Verbose, err)
	}

	if !cfg.DryRun {
		fpsGuard(cmd.Context(), log, req)
	}

	result, err := extract.Run(cmd.Context(), req)
	if err != nil {
		return logExtractError(log, cfg.Verbose, err)
	}

	if result.Preview {
		fmt.Fprintln(cmd.OutOrStdout(), result.Command)
		log.Debug(cfg.Verbose, "(dry-run) Not executing ffmpeg.")
		return nil
	}

	log.Success("%s", result.Summary())
	return nil
}

// requestFPS resolves the frame-rate string for the request: an explicit
// --fps wins (even an invalid one, so validation can reject it), otherwise
// a positive rate from the defaults file applies.
func requestFPS(cmd *cobra.Command, fl *rootFlags, cfg *config.Config) string {
	if cmd.Flags().Changed("fps") {
		return fl.fps
	}
	if cfg.FPS > 0 {
		return strconv.FormatFloat(cfg.FPS, 'f', -1, 64)
	}
	return ""
}

// logPlan reports the effective options before assembly.
func logPlan(log *logging.Logger, req *extract.Request) {
	log.Debug(true, "In:      %s", req.Input)
	log.Debug(true, "Out:     %s", req.OutputDir)
	log.Debug(true, "Pattern: %s (first frame: %s)", req.Pattern, previewOrRaw(req.Pattern))
	if req.Start != "" {
		log.Debug(true, "Start:   %s", req.Start)
	}
	if req.End != "" {
		log.Debug(true, "End:     %s", req.End)
	}
	if req.FPS != "" {
		log.Debug(true, "FPS:     %s", req.FPS)
	}
}

// fpsGuard probes the source and warns when the requested sample rate
// exceeds the source frame rate (extraction would duplicate frames).
// Probe failures are silently ignored; the guard is advisory.
func fpsGuard(ctx context.Context, log *logging.Logger, req *extract.Request) {
	if req.FPS == "" || check.FfprobeAvailable() != nil {
		return
	}
	fps, err := strconv.ParseFloat(req.FPS, 64)
	if err != nil || fps <= 0 {
		return
	}
	info, err := probe.Probe(ctx, req.Input)
	if err != nil {
		return
	}
	if info.FPS > 0 && fps > info.FPS {
		log.Warn("Requested %s fps exceeds the source rate (%s); frames will repeat",
			req.FPS, display.FormatFPS(info.FPS))
	}
	if n := info.EstimateFrames(extract.TimeToSeconds(req.Start), extract.TimeToSeconds(req.End), fps); n > 0 {
		log.Debug(req.Verbose, "Estimated frames: ~%d", n)
	}
}

// previewOrRaw renders the first frame filename, or echoes the pattern
// unchanged when it is not renderable (validation will reject it anyway).
func previewOrRaw(p string) string {
	if pattern.Validate(p) != nil {
		return p
	}
	return pattern.Preview(p, 1)
}

// logExtractError renders a typed extraction failure through the logger
// and passes the error back for exit-code mapping.
func logExtractError(log *logging.Logger, verbose bool, err error) error {
	var xerr *extract.Error
	if errors.As(err, &xerr) {
		log.Error("%v", xerr)
		// Without verbose, ffmpeg's stderr was captured silently;
		// surface its tail so the failure is diagnosable.
		if xerr.Code == extract.ExecutionFailed && !verbose {
			logStderrTail(log, xerr.Stderr)
		}
	}
	return err
}

func logStderrTail(log *logging.Logger, stderr string) {
	if stderr == "" {
		return
	}
	log.Error("Last ffmpeg output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}
