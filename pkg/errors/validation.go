package errors

import (
	"strings"
	"unicode"
)

// Directions lists the accepted graph layout directions, matching the
// Graphviz rankdir attribute values.
var Directions = []string{"LR", "RL", "TB", "BT"}

// ValidateDirection validates a graph layout direction.
func ValidateDirection(dir string) error {
	for _, d := range Directions {
		if dir == d {
			return nil
		}
	}
	return New(ErrCodeInvalidDirection, "invalid direction %q (must be one of %s)", dir, strings.Join(Directions, ", "))
}

// Formats lists the accepted output formats for visualization artifacts.
var Formats = []string{"dot", "svg", "png", "pdf"}

// ValidateFormat validates a single output format name.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if format == f {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format %q (must be one of %s)", format, strings.Join(Formats, ", "))
}

// ValidateFormats validates a list of output format names.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateIdentifier validates an identifier for basic sanity before it
// reaches a store lookup. Identifiers here are qualified names, blank
// node labels, or record UUIDs; all are short printable strings.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 512 characters
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(id) > 512 {
		return New(ErrCodeInvalidInput, "identifier too long (max 512 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}

	return nil
}
