package lang

import (
	"path/filepath"
	"strings"
)

// extensionTags maps file extensions to language tags.
var extensionTags = map[string]string{
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".mts":  "typescript",
	".cts":  "typescript",
	".py":   "python",
	".go":   "go",
	".java": "java",
}

// DetectTag maps a file path to a language tag by extension. Unknown
// extensions return the empty tag, which Lookup resolves to the
// C-family default.
func DetectTag(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return extensionTags[ext]
}

// IsSupportedFile reports whether the path has a recognized source
// extension.
func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := extensionTags[ext]
	return ok
}

// SupportedExtensions returns the recognized file extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionTags))
	for ext := range extensionTags {
		exts = append(exts, ext)
	}
	return exts
}
