package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxIDLength bounds item and snapshot identifiers.
const maxIDLength = 256

// ValidateItemID validates an item identifier supplied by a caller.
// IDs end up in cache keys, SVG attributes and storage documents, so they
// are restricted to printable characters without quotes or angle brackets.
//
// An empty ID is valid: the engine generates one.
func ValidateItemID(id string) error {
	if id == "" {
		return nil
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "item id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "item id %q contains whitespace or control characters", id)
		}
	}

	if strings.ContainsAny(id, `"'<>&`) {
		return New(ErrCodeInvalidID, "item id %q contains markup characters", id)
	}

	return nil
}

// ValidateSnapshotID validates a stored snapshot identifier.
// Snapshot IDs become file names in the file store, so path separators and
// traversal sequences are rejected.
func ValidateSnapshotID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "snapshot id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "snapshot id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "snapshot id contains invalid characters")
		}
	}

	if strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return New(ErrCodeInvalidID, "snapshot id cannot contain path components")
	}

	return nil
}

// ValidateMeasure checks that v is a finite, non-negative measurement.
// name is used in the error message only.
func ValidateMeasure(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeMeasurement, "%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeMeasurement, "%s must be non-negative, got %v", name, v)
	}
	return nil
}
