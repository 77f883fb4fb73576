package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/framegrab/internal/extract"
	"github.com/backmassage/framegrab/internal/term"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCommand()

	want := []string{"check", "probe", "config"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing %q subcommand", name)
		}
	}
}

func TestBuildConfig_FlagOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	content := `pattern = "from_file_%d.png"
fps = 3.0
overwrite = true
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var fl rootFlags
	fl.configPath = cfgPath
	root := newRootCommand()
	if err := root.ParseFlags([]string{"--pattern", "from_flag_%d.jpg"}); err != nil {
		t.Fatal(err)
	}
	fl.pattern = "from_flag_%d.jpg"

	cfg, err := buildConfig(root, &fl)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Pattern != "from_flag_%d.jpg" {
		t.Errorf("Pattern = %q, want flag value to win", cfg.Pattern)
	}
	// File values hold where no flag was passed.
	if cfg.FPS != 3.0 {
		t.Errorf("FPS = %v, want 3.0 from file", cfg.FPS)
	}
	if !cfg.Overwrite {
		t.Error("Overwrite should come from the file")
	}
}

func TestBuildConfig_ColorFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // keep the user's defaults file out
	tests := []struct {
		name  string
		force bool
		no    bool
		want  term.ColorMode
	}{
		{"default auto", false, false, term.ColorAuto},
		{"force color", true, false, term.ColorAlways},
		{"no color", false, true, term.ColorNever},
		{"no-color wins over color", true, true, term.ColorNever},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fl := rootFlags{forceColor: tt.force, noColor: tt.no}
			cfg, err := buildConfig(newRootCommand(), &fl)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.ColorMode != tt.want {
				t.Errorf("ColorMode = %q, want %q", cfg.ColorMode, tt.want)
			}
		})
	}
}

func TestRequestFPS(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Run("explicit flag wins", func(t *testing.T) {
		root := newRootCommand()
		if err := root.ParseFlags([]string{"--fps", "0"}); err != nil {
			t.Fatal(err)
		}
		fl := rootFlags{fps: "0"}
		cfg, err := buildConfig(root, &fl)
		if err != nil {
			t.Fatal(err)
		}
		cfg.FPS = 5 // file default must not mask the explicit (invalid) flag
		if got := requestFPS(root, &fl, &cfg); got != "0" {
			t.Errorf("requestFPS = %q, want %q", got, "0")
		}
	})

	t.Run("file default applies when flag unset", func(t *testing.T) {
		root := newRootCommand()
		fl := rootFlags{}
		cfg, err := buildConfig(root, &fl)
		if err != nil {
			t.Fatal(err)
		}
		cfg.FPS = 2.5
		if got := requestFPS(root, &fl, &cfg); got != "2.5" {
			t.Errorf("requestFPS = %q, want %q", got, "2.5")
		}
	})

	t.Run("empty when nothing set", func(t *testing.T) {
		root := newRootCommand()
		fl := rootFlags{}
		cfg, err := buildConfig(root, &fl)
		if err != nil {
			t.Fatal(err)
		}
		if got := requestFPS(root, &fl, &cfg); got != "" {
			t.Errorf("requestFPS = %q, want empty", got)
		}
	})
}

// writeFakeTool installs an executable shell script named name in dir.
func writeFakeTool(t *testing.T, dir, name, script string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestRunExtract_RejectsBeforeProbing(t *testing.T) {
	bin := t.TempDir()
	marker := filepath.Join(bin, "probed")
	writeFakeTool(t, bin, "ffmpeg", "#!/bin/sh\nexit 0\n")
	writeFakeTool(t, bin, "ffprobe", "#!/bin/sh\ntouch "+marker+"\nexit 0\n")
	t.Setenv("PATH", bin)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	input := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(input, []byte("fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCommand()
	if err := root.ParseFlags([]string{"--fps", "2", "--start", "99:99", "--no-color"}); err != nil {
		t.Fatal(err)
	}
	fl := rootFlags{fps: "2", start: "99:99", noColor: true}

	err := runExtract(root, []string{input, filepath.Join(dir, "frames")}, &fl)
	var xerr *extract.Error
	if !errors.As(err, &xerr) || xerr.Code != extract.InvalidTimeFormat {
		t.Fatalf("runExtract() error = %v, want InvalidTimeFormat", err)
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Error("ffprobe was spawned for a request that fails validation")
	}
}

func TestPreviewOrRaw(t *testing.T) {
	if got := previewOrRaw("frame_%06d.jpg"); got != "frame_000001.jpg" {
		t.Errorf("previewOrRaw = %q, want frame_000001.jpg", got)
	}
	if got := previewOrRaw("broken.txt"); got != "broken.txt" {
		t.Errorf("previewOrRaw = %q, want pattern echoed", got)
	}
}
