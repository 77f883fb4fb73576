package extract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// reClockTime matches H:MM:SS with up to two hour digits and an optional
// millisecond fraction, e.g. "00:01:05.25", "9:59:59.123".
var reClockTime = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})(?:\.(\d{1,3}))?$`)

// ParseTime validates a time value: either non-negative seconds
// ("12", "12.5") or a clock time ("H:MM:SS[.ms]"). The original string is
// returned unchanged so it reaches ffmpeg exactly as the user wrote it.
func ParseTime(value string) (string, error) {
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return "", fmt.Errorf("time must be a non-negative number (got %q)", value)
		}
		return value, nil
	}
	if reClockTime.MatchString(value) {
		return value, nil
	}
	return "", fmt.Errorf("time must be seconds (e.g. 12.5) or H:MM:SS[.ms] (e.g. 00:01:05.25), got %q", value)
}

// TimeToSeconds converts an already-validated time value to seconds,
// for duration estimates. Returns 0 for the empty string.
func TimeToSeconds(value string) float64 {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		return seconds
	}
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0
	}
	h, _ := strconv.ParseFloat(parts[0], 64)
	m, _ := strconv.ParseFloat(parts[1], 64)
	s, _ := strconv.ParseFloat(parts[2], 64)
	return h*3600 + m*60 + s
}
