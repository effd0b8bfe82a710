package mapstore_test

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"playerlink/internal/mapstore"
)

func intPtr(v int) *int { return &v }

func TestOpenEmptyDirectory(t *testing.T) {
	store, err := mapstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if len(store.Accepted()) != 0 || len(store.Review()) != 0 {
		t.Fatal("expected empty tables for a fresh directory")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := mapstore.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	store.Append(mapstore.AcceptedRow{QueryID: "5503", RawName: "Lionel Messi", ReferenceID: "158023", Score: 100, Method: mapstore.MethodExact})
	store.Upsert(mapstore.ReviewRow{QueryID: "5503", RawName: "Lionel Messi", CandidateID: "158023", CandidateName: "L. Messi", Score: intPtr(100), Method: mapstore.MethodExact, Status: mapstore.StatusAccepted})
	store.Upsert(mapstore.ReviewRow{QueryID: "9999", RawName: "Unknown Player", Method: mapstore.MethodNone, Status: mapstore.StatusUnmatched})
	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reloaded, err := mapstore.Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reloaded.Close()

	if len(reloaded.Accepted()) != 1 {
		t.Fatalf("accepted rows = %d, want 1", len(reloaded.Accepted()))
	}
	got := reloaded.Accepted()[0]
	if got.QueryID != "5503" || got.ReferenceID != "158023" || got.Score != 100 || got.Method != mapstore.MethodExact {
		t.Fatalf("unexpected accepted row: %+v", got)
	}

	row, ok := reloaded.Get("9999")
	if !ok {
		t.Fatal("expected review row for 9999")
	}
	if row.Status != mapstore.StatusUnmatched || row.Score != nil || row.CandidateID != "" {
		t.Fatalf("unexpected review row: %+v", row)
	}
	scored, _ := reloaded.Get("5503")
	if scored.Score == nil || *scored.Score != 100 {
		t.Fatalf("score did not round-trip: %+v", scored)
	}
}

func TestAppendRejectsDuplicateQueryID(t *testing.T) {
	store, err := mapstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	first := store.Append(mapstore.AcceptedRow{QueryID: "1", ReferenceID: "a", Method: mapstore.MethodFuzzy})
	second := store.Append(mapstore.AcceptedRow{QueryID: "1", ReferenceID: "b", Method: mapstore.MethodFullFuzzy})
	if !first || second {
		t.Fatalf("Append dedupe broken: first=%v second=%v", first, second)
	}
	if len(store.Accepted()) != 1 || store.Accepted()[0].ReferenceID != "a" {
		t.Fatalf("accepted table mutated by duplicate: %+v", store.Accepted())
	}
	if !store.HasAccepted("1") || store.HasAccepted("2") {
		t.Fatal("HasAccepted membership wrong")
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	store, err := mapstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	store.Upsert(mapstore.ReviewRow{QueryID: "7", RawName: "Som Eone", Status: mapstore.StatusUnmatched, Method: mapstore.MethodNone})
	store.Upsert(mapstore.ReviewRow{QueryID: "7", RawName: "Som Eone", CandidateID: "c1", Score: intPtr(80), Status: mapstore.StatusReview, Method: mapstore.MethodFullFuzzy})

	if len(store.Review()) != 1 {
		t.Fatalf("expected one row per query id, got %d", len(store.Review()))
	}
	row, _ := store.Get("7")
	if row.Status != mapstore.StatusReview || row.CandidateID != "c1" {
		t.Fatalf("upsert did not replace: %+v", row)
	}
}

func TestColumnOrderIsStable(t *testing.T) {
	dir := t.TempDir()
	store, err := mapstore.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	store.Upsert(mapstore.ReviewRow{QueryID: "1", RawName: "x", Status: mapstore.StatusUnmatched, Method: mapstore.MethodNone})
	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	store.Close()

	file, err := os.Open(filepath.Join(dir, "player_map_review.csv"))
	if err != nil {
		t.Fatalf("open review csv: %v", err)
	}
	defer file.Close()
	header, err := csv.NewReader(file).Read()
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	want := []string{"query_id", "raw_name", "candidate_reference_id", "candidate_name", "score", "method", "status"}
	if len(header) != len(want) {
		t.Fatalf("header = %v, want %v", header, want)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], want[i])
		}
	}
}

func TestOpenRefusesSecondHolder(t *testing.T) {
	dir := t.TempDir()
	store, err := mapstore.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if _, err := mapstore.Open(dir); !errors.Is(err, mapstore.ErrLocked) {
		t.Fatalf("second Open = %v, want ErrLocked", err)
	}
}
