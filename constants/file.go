package constants

import "strings"

// Defaults for the rendering and mode-decision calibration values.
const (
	// DefaultDPI is the rasterization resolution for IMAGE-mode pages.
	DefaultDPI = 200
	// MaxDPI caps user-supplied resolutions; above this the payloads get
	// too large for the vision endpoint without improving recognition.
	MaxDPI = 300
	// DefaultMinTextChars is the non-whitespace text length above which a
	// page is considered text-based rather than scanned.
	DefaultMinTextChars = 100
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDF reports whether the extension names a PDF document.
func IsPDF(ext string) bool {
	return NormalizeExt(ext) == "pdf"
}
