package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// identifierRegex matches groupIds, artifactIds and classifiers as Maven
// repositories lay them out on disk.
var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9._-]*$`)

// ValidateIdentifier validates a groupId, artifactId or classifier for
// safety and correctness. kind names the value in the returned message.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateIdentifier(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "%s too long (max 256 characters)", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", kind)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "%s contains invalid characters: %q", kind, pattern)
		}
	}

	if !identifierRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid %s: %q", kind, name)
	}

	return nil
}

// extensionRegex matches file extensions such as "jar", "pom" or "tar.gz".
var extensionRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateExtension validates the file extension of an artifact download.
func ValidateExtension(ext string) error {
	if ext == "" {
		return New(ErrCodeInvalidArgument, "extension cannot be empty")
	}
	if strings.Contains(ext, "..") || !extensionRegex.MatchString(ext) {
		return New(ErrCodeInvalidArgument, "invalid extension: %q", ext)
	}
	return nil
}

// ValidateURL validates a repository URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
