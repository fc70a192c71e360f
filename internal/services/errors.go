package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Disposition describes how the rename loop should account for a directory
// whose processing failed.
type Disposition string

const (
	// DispositionSkipped covers expected conditions: unusable input, nothing
	// to do, or a destination conflict that safety rules refuse to overwrite.
	DispositionSkipped Disposition = "skipped"
	// DispositionFailed covers everything else.
	DispositionFailed Disposition = "failed"
)

// FailureDisposition maps a directory-processing error to the counter bucket
// the run summary should record it under. Processing always continues either
// way; the distinction is purely for accounting.
func FailureDisposition(err error) Disposition {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return DispositionSkipped
	default:
		return DispositionFailed
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
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
