package display

import (
	"fmt"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatDuration renders a duration in seconds as H:MM:SS.cc, matching the
// time syntax ffmpeg accepts for -ss/-to.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := int(seconds) / 3600
	m := (int(seconds) % 3600) / 60
	s := seconds - float64(h*3600+m*60)
	return fmt.Sprintf("%d:%02d:%05.2f", h, m, s)
}

// FormatFPS returns a short frame-rate label (e.g. "29.97 fps", "25 fps").
func FormatFPS(fps float64) string {
	if fps <= 0 {
		return "unknown"
	}
	if fps == float64(int64(fps)) {
		return fmt.Sprintf("%d fps", int64(fps))
	}
	return fmt.Sprintf("%.2f fps", fps)
}
