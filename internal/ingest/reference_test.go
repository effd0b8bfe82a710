package ingest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"playerlink/internal/ingest"
	"playerlink/internal/pipeline"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadReferenceCSV(t *testing.T) {
	csv := `sofifa_id,short_name,long_name,player_positions,overall,age,nationality,club,value_eur
158023,L. Messi,Lionel Andrés Messi Cuccittini,"RW, ST, CF",91,35,Argentina,Paris Saint-Germain,54000000
192985,K. De Bruyne,Kevin De Bruyne,"CM, CAM",91,31,Belgium,Manchester City,107500000
`
	path := writeFile(t, t.TempDir(), "male_players.csv", csv)

	players, err := ingest.ReadReferenceCSV(path)
	if err != nil {
		t.Fatalf("ReadReferenceCSV failed: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("players = %d, want 2", len(players))
	}
	p := players[0]
	if p.ReferenceID != "158023" || p.ShortName != "L. Messi" || p.Positions != "RW, ST, CF" || p.Overall != 91 || p.Age != 35 {
		t.Fatalf("unexpected player: %+v", p)
	}
	// Extra columns in the source are ignored.
	if p.Club != "Paris Saint-Germain" {
		t.Fatalf("club = %q", p.Club)
	}
}

func TestReadReferenceCSVToleratesMissingOptionalColumns(t *testing.T) {
	csv := "short_name\nL. Messi\nK. De Bruyne\n"
	path := writeFile(t, t.TempDir(), "players.csv", csv)

	players, err := ingest.ReadReferenceCSV(path)
	if err != nil {
		t.Fatalf("ReadReferenceCSV failed: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("players = %d, want 2", len(players))
	}
	// Row index substitutes for a missing identifier column.
	if players[0].ReferenceID != "0" || players[1].ReferenceID != "1" {
		t.Fatalf("synthesized ids wrong: %q, %q", players[0].ReferenceID, players[1].ReferenceID)
	}
	if players[0].Positions != "" || players[0].Overall != 0 {
		t.Fatalf("optional fields should default: %+v", players[0])
	}
}

func TestReadReferenceCSVNoNameColumnIsFatal(t *testing.T) {
	path := writeFile(t, t.TempDir(), "players.csv", "sofifa_id,overall\n1,90\n")
	_, err := ingest.ReadReferenceCSV(path)
	if !errors.Is(err, pipeline.ErrSchemaMismatch) {
		t.Fatalf("err = %v, want ErrSchemaMismatch", err)
	}
}

func TestReadReferenceCSVMissingFile(t *testing.T) {
	_, err := ingest.ReadReferenceCSV(filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.Is(err, pipeline.ErrMissingInput) {
		t.Fatalf("err = %v, want ErrMissingInput", err)
	}
}
