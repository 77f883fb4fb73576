package probe

import "fmt"

// VideoInfo is the parsed output of a single ffprobe call: the container
// plus the first non-attached-pic video stream.
type VideoInfo struct {
	Path     string
	Format   string
	Codec    string
	PixFmt   string
	Width    int
	Height   int
	Duration float64 // Seconds; 0 when the container does not report it.
	Size     int64   // Bytes.
	FPS      float64 // Average frame rate; 0 when unknown.
}

// Resolution returns "WxH", or "unknown" when dimensions are missing.
func (v *VideoInfo) Resolution() string {
	if v.Width <= 0 || v.Height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// EstimateFrames predicts how many frames sampling at rate fps over the
// span [start, end] will produce. end <= 0 means "until the end of the
// video"; both bounds are clamped to the known duration. Returns 0 when
// the estimate cannot be made (unknown duration or non-positive rate).
func (v *VideoInfo) EstimateFrames(start, end, fps float64) int {
	if fps <= 0 || v.Duration <= 0 {
		return 0
	}
	if end <= 0 || end > v.Duration {
		end = v.Duration
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return 0
	}
	return int((end-start)*fps + 0.5)
}
