package testsupport

import (
	"context"
	"testing"

	"playerlink/internal/catalog"
)

// SeedReference replaces the catalog's reference table with the given rows.
func SeedReference(t testing.TB, store *catalog.Store, players []catalog.ReferencePlayer) {
	t.Helper()
	if err := store.ReplaceReferencePlayers(context.Background(), players); err != nil {
		t.Fatalf("seed reference players: %v", err)
	}
}

// SeedAppearances replaces the catalog's appearance table with the given rows.
func SeedAppearances(t testing.TB, store *catalog.Store, appearances []catalog.Appearance) {
	t.Helper()
	if err := store.ReplaceAppearances(context.Background(), appearances); err != nil {
		t.Fatalf("seed appearances: %v", err)
	}
}
