package pipeline_test

import (
	"errors"
	"fmt"
	"testing"

	"playerlink/internal/pipeline"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := fmt.Errorf("open catalog.db: no such file")
	err := pipeline.Wrap(pipeline.ErrMissingInput, "match", "load reference", "catalog missing", cause)
	if !errors.Is(err, pipeline.ErrMissingInput) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := pipeline.Wrap(nil, "fullfuzzy", "save", "", nil)
	if !errors.Is(err, pipeline.ErrTransient) {
		t.Fatalf("expected transient default, got %v", err)
	}
}

func TestWrapDetailOrdering(t *testing.T) {
	err := pipeline.Wrap(pipeline.ErrSchemaMismatch, "ingest", "reference csv", "no name column", nil)
	want := "schema mismatch: ingest: reference csv: no name column"
	if err.Error() != want {
		t.Fatalf("Wrap message = %q, want %q", err.Error(), want)
	}
}
