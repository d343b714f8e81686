package errors

import (
	"strings"
	"unicode"
)

// ValidateGlyphName validates a glyph name from the generation manifest.
// Glyph names become file basenames under the glyph directory, so the
// validation is intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateGlyphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "glyph name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "glyph name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "glyph name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "glyph name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "glyph name contains invalid characters: %q", "..")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "glyph name cannot be a hidden file")
	}

	return nil
}

// ValidateOutputPath validates an output file path from the manifest.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "output path too long (max 500 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid control characters")
		}
	}

	return nil
}
