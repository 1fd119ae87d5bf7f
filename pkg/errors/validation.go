package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateItemName validates a user-supplied item name (field, register,
// address block or memory map). The rules are intentionally conservative:
// names end up as identifiers in generated headers and as path segments in
// document-update paths, so anything that could break either is rejected.
func ValidateItemName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}

	// Dots and separators would corrupt document-update paths.
	if strings.ContainsAny(name, "./\\ \t") {
		return New(ErrCodeInvalidName, "name cannot contain separators or whitespace: %q", name)
	}

	return nil
}

// identifierRegex matches names usable as C identifiers, the common
// convention for register-map names.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier validates that name is a legal C-style identifier.
func ValidateIdentifier(name string) error {
	if err := ValidateItemName(name); err != nil {
		return err
	}

	if !identifierRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "name is not a valid identifier: %q", name)
	}

	return nil
}

// ValidateDocumentPath validates a document file path supplied on the
// command line. It prevents traversal outside the working tree for paths
// that are persisted into sessions.
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "document path cannot be empty")
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

	return nil
}
