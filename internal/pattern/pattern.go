// Package pattern validates and manipulates printf-style frame filename
// patterns (e.g. "frame_%06d.jpg"): the same pattern string is handed to
// ffmpeg for sequential numbering and converted to a glob for counting the
// files it produced.
package pattern

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Supported image extensions (lowercase, with leading dot).
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// rePlaceholder matches a printf integer placeholder with optional
// zero-padding width, e.g. %d, %04d, %06d.
var rePlaceholder = regexp.MustCompile(`%0?\d*d`)

// Validate checks that p ends in a supported image extension and contains
// exactly one integer placeholder.
func Validate(p string) error {
	ext := strings.ToLower(filepath.Ext(p))
	if !supportedExtensions[ext] {
		return fmt.Errorf("unsupported pattern extension %q (use one of: .jpg, .jpeg, .png)", ext)
	}
	switch n := len(rePlaceholder.FindAllString(p, -1)); {
	case n == 0:
		return fmt.Errorf("pattern %q has no frame-number placeholder (e.g. %%06d)", p)
	case n > 1:
		return fmt.Errorf("pattern %q has %d placeholders, want exactly one", p, n)
	}
	return nil
}

// IsJPEG reports whether p names a JPEG output (drives the -q:v quality flag).
func IsJPEG(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".jpg" || ext == ".jpeg"
}

// Glob converts a frame pattern to a filesystem glob by replacing the
// placeholder with "*". Example: "frame_%06d.jpg" -> "frame_*.jpg".
func Glob(p string) string {
	return rePlaceholder.ReplaceAllString(p, "*")
}

// Preview renders the pattern with frame number n, showing the user the
// first filename ffmpeg will write. Only the placeholder itself is
// formatted; any other percent signs in the pattern stay literal.
// Call only after Validate.
func Preview(p string, n int) string {
	loc := rePlaceholder.FindStringIndex(p)
	if loc == nil {
		return p
	}
	return p[:loc[0]] + fmt.Sprintf(p[loc[0]:loc[1]], n) + p[loc[1]:]
}
