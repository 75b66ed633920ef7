package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidatePackageName validates a user-supplied package name.
// Surrounding whitespace is not rejected here; callers trim before validating.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, backslash)
//   - Maximum length of 256 characters
//
// Source-specific constraints (the test repository's uppercase rule) are
// enforced separately by the source that owns them.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// versionForbidden lists characters a version string may never contain.
// The set guards against shell metacharacters leaking into registry URLs.
const versionForbidden = " <>|;&"

// ValidateVersion validates a user-supplied version string.
// Version strings are otherwise opaque; no range syntax is interpreted.
func ValidateVersion(version string) error {
	if version == "" {
		return New(ErrCodeInvalidVersion, "version cannot be empty")
	}

	if i := strings.IndexAny(version, versionForbidden); i >= 0 {
		return New(ErrCodeInvalidVersion, "version contains forbidden character %q", version[i])
	}

	return nil
}

// ValidateEndpointURL validates a registry endpoint URL.
// It must be an http or https URL with a non-empty host.
func ValidateEndpointURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidRepo, "endpoint URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidRepo, err, "invalid endpoint URL %q", rawURL)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidRepo, "endpoint URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidRepo, "endpoint URL %q has no host", rawURL)
	}

	return nil
}
