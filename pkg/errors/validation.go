package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxNameLength bounds tree and node names accepted at the CLI/API boundary.
const maxNameLength = 256

// ValidateName validates a tree or node name.
//
// Names become path segments, so the separator is rejected along with
// control characters:
//   - No empty names
//   - No control characters or null bytes
//   - No "." (the dotted-path separator)
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTree, "name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidTree, "name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTree, "name contains invalid control characters")
		}
	}

	if strings.Contains(name, ".") {
		return New(ErrCodeInvalidTree, "name %q contains the path separator", name)
	}

	return nil
}

// ValidateNodePath validates a dotted node path such as ".app.svc".
//
// Validation rules:
//   - Path must start with "."
//   - Every segment must be non-empty
//   - No control characters
func ValidateNodePath(path string) error {
	if !strings.HasPrefix(path, ".") {
		return New(ErrCodeInvalidPath, "path %q must start with '.'", path)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, seg := range strings.Split(path[1:], ".") {
		if seg == "" {
			return New(ErrCodeInvalidPath, "path %q has an empty segment", path)
		}
	}

	return nil
}

// ValidateLayoutScale validates the global radius unit and the vertical gap
// between depth levels. Both must be finite and strictly positive.
func ValidateLayoutScale(baseScale, baseGap float64) error {
	if !isFinite(baseScale) || baseScale <= 0 {
		return New(ErrCodeInvalidOption, "base scale must be a positive number, got %v", baseScale)
	}
	if !isFinite(baseGap) || baseGap <= 0 {
		return New(ErrCodeInvalidOption, "base gap must be a positive number, got %v", baseGap)
	}
	return nil
}

// ValidateOrigin validates the root position of a layout.
func ValidateOrigin(x, y, z float64) error {
	if !isFinite(x) || !isFinite(y) || !isFinite(z) {
		return New(ErrCodeInvalidOption, "origin must be finite, got (%v, %v, %v)", x, y, z)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
