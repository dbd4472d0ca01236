package errors

import (
	"strings"
	"unicode"
)

// ValidateMechanism validates a mechanism name supplied by the CLI or API.
// Valid names are "ttc2" (two-sided top trading cycles), "ttc1" (one-sided
// top trading cycles) and "da" (deferred acceptance).
func ValidateMechanism(name string) error {
	switch name {
	case "ttc2", "ttc1", "da":
		return nil
	case "":
		return New(ErrCodeInvalidMechanism, "mechanism name cannot be empty")
	default:
		return New(ErrCodeInvalidMechanism, "unknown mechanism: %q (must be one of: ttc2, ttc1, da)", name)
	}
}

// ValidateOutputPath validates an output file path for safety.
// It prevents path traversal and rejects control characters.
func ValidateOutputPath(path string) error {
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
