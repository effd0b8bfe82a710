package report_test

import (
	"context"
	"testing"

	"playerlink/internal/catalog"
	"playerlink/internal/mapstore"
	"playerlink/internal/report"
	"playerlink/internal/testsupport"
)

func TestCollect(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cat := testsupport.MustOpenCatalog(t, cfg)
	testsupport.SeedReference(t, cat, []catalog.ReferencePlayer{
		{ReferenceID: "R1", ShortName: "L. Messi"},
		{ReferenceID: "R2", ShortName: "K. De Bruyne"},
	})
	testsupport.SeedAppearances(t, cat, []catalog.Appearance{
		{MatchID: 1, TeamID: 10, QueryID: "Q1", QueryName: "Lionel Messi"},
		{MatchID: 1, TeamID: 20, QueryID: "Q2", QueryName: "Kevin De Bruyne"},
		{MatchID: 2, TeamID: 10, QueryID: "Q1", QueryName: "Lionel Messi"},
		{MatchID: 2, TeamID: 30, QueryID: "Q3", QueryName: "Unknown Player"},
	})
	if err := cat.ReplaceMatches(context.Background(), []catalog.Match{
		{MatchID: 1}, {MatchID: 2},
	}); err != nil {
		t.Fatalf("seed matches: %v", err)
	}

	maps, err := mapstore.Open(cfg.Paths.MappingDir)
	if err != nil {
		t.Fatalf("open mapping store: %v", err)
	}
	defer maps.Close()

	maps.Append(mapstore.AcceptedRow{QueryID: "Q1", RawName: "Lionel Messi", ReferenceID: "R1", Score: 100, Method: mapstore.MethodExact})
	maps.Append(mapstore.AcceptedRow{QueryID: "Q2", RawName: "Kevin De Bruyne", ReferenceID: "R2", Score: 88, Method: mapstore.MethodFuzzy})
	s1, s2 := 100, 88
	maps.Upsert(mapstore.ReviewRow{QueryID: "Q1", Score: &s1, Status: mapstore.StatusAccepted})
	maps.Upsert(mapstore.ReviewRow{QueryID: "Q2", Score: &s2, Status: mapstore.StatusAcceptedFuzzy})
	s3 := 78
	maps.Upsert(mapstore.ReviewRow{QueryID: "Q3", Score: &s3, CandidateID: "R2", Status: mapstore.StatusReview})

	stats, err := report.Collect(context.Background(), cat, maps)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if stats.ReferencePlayers != 2 || stats.QueryPlayers != 3 || stats.Matches != 2 {
		t.Fatalf("counts = %+v", stats)
	}
	if stats.AcceptedRows != 2 {
		t.Fatalf("accepted = %d, want 2", stats.AcceptedRows)
	}
	// Match 1 has both slots accepted; match 2 carries unresolved Q3.
	if stats.FullyMappedMatches != 1 {
		t.Fatalf("fully mapped = %d, want 1", stats.FullyMappedMatches)
	}
	if got := stats.CoveragePercent(); got < 66 || got > 67 {
		t.Fatalf("coverage = %.2f, want ~66.67", got)
	}

	byStatus := make(map[mapstore.Status]int)
	for _, sc := range stats.ByStatus {
		byStatus[sc.Status] = sc.Count
	}
	if byStatus[mapstore.StatusAccepted] != 1 || byStatus[mapstore.StatusAcceptedFuzzy] != 1 || byStatus[mapstore.StatusReview] != 1 {
		t.Fatalf("status counts = %+v", stats.ByStatus)
	}
}

func TestSimulate(t *testing.T) {
	s1, s2, s3 := 92, 80, 74
	rows := []mapstore.ReviewRow{
		{QueryID: "A", Score: &s1},
		{QueryID: "B", Score: &s2},
		{QueryID: "C", Score: &s3},
		{QueryID: "D"}, // no candidate recorded
	}

	bands := report.Simulate(rows, []int{90, 80, 70})
	want := []int{1, 2, 3}
	for i, band := range bands {
		if band.WouldAccept != want[i] {
			t.Fatalf("threshold %d: would accept %d, want %d", band.Threshold, band.WouldAccept, want[i])
		}
	}
}
