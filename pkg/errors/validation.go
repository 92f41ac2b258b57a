package errors

import (
	"strings"
	"unicode"
)

// maxCampaignName bounds campaign names accepted from the outer surfaces.
// The generator itself places no limit on text fields.
const maxCampaignName = 256

// ValidateCampaignName checks a campaign name supplied through the CLI or API.
// Empty names are valid (the generator falls back to a placeholder headline).
//
// Rejected:
//   - Names longer than 256 characters
//   - Control characters, including null bytes and newlines
func ValidateCampaignName(name string) error {
	if len(name) > maxCampaignName {
		return New(ErrCodeInvalidInput, "campaign name too long (max %d characters)", maxCampaignName)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "campaign name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a relative file name inside an archive or output
// directory. It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
