package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds member identities read from documents.
const maxIDLength = 128

// ValidateMemberID validates a member identity read from an input document.
// Identities end up in SVG ids and Graphviz node names, so the rules are
// conservative:
//   - No empty identities
//   - No control characters or null bytes
//   - No surrounding whitespace
//   - Maximum length of 128 bytes
func ValidateMemberID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "member id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "member id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "member id contains invalid control characters")
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "member id %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateProductName validates the product prefix used in export filenames.
// It must be a plain filename fragment without path components.
func ValidateProductName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "product name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "product name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "product name cannot contain %q", "..")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "product name contains invalid control characters")
		}
	}

	return nil
}
