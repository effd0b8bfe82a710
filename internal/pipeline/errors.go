// Package pipeline carries the error taxonomy shared by the batch passes.
//
// Per-record problems (a bad name, a missing auxiliary field) degrade that
// record's classification and are never wrapped with these markers; only
// dataset-level failures abort a pass.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingInput marks a required dataset that is absent entirely.
	ErrMissingInput = errors.New("missing input")
	// ErrSchemaMismatch marks an input whose usable columns are absent.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrTransient marks failures worth retrying after the run.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes pass context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, pass, operation, message string, err error) error {
	detail := buildDetail(pass, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(pass, operation, message string) string {
	parts := make([]string, 0, 3)
	if pass = strings.TrimSpace(pass); pass != "" {
		parts = append(parts, pass)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pass failure"
	}
	return strings.Join(parts, ": ")
}
