// Package faults defines the error kinds shared by the matching pipeline.
//
// Errors are tagged with one of the exported sentinels so callers can decide
// with errors.Is whether a failure is a fail-fast configuration problem, a
// validation failure on supplied data, or a missing similarity backend.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration         = errors.New("configuration error")
	ErrValidation            = errors.New("validation error")
	ErrSimilarityUnavailable = errors.New("similarity engine unavailable")
	ErrNotFound              = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short label for the marker carried by err, or "internal".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrSimilarityUnavailable):
		return "similarity"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "matching failure"
	}
	return strings.Join(parts, ": ")
}
