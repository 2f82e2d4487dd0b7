package errors

import (
	"strings"
	"unicode"
)

// ValidatePluginName validates a plugin package name for safety and
// correctness. Plugin names double as directory names and registry key
// segments, so the rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidatePluginName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidManifest, "plugin name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidManifest, "plugin name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidManifest, "plugin name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidManifest, "plugin name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateRegistryKey validates a qualified registry key of the form
// "<module>.<TypeName>". Both segments must be non-empty.
func ValidateRegistryKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "registry key cannot be empty")
	}

	i := strings.LastIndex(key, ".")
	if i <= 0 || i == len(key)-1 {
		return New(ErrCodeInvalidInput, "registry key must have the form <module>.<TypeName>: %q", key)
	}

	return nil
}
