package ingest_test

import (
	"errors"
	"testing"

	"playerlink/internal/ingest"
	"playerlink/internal/pipeline"
)

const competitionsJSON = `[
  {"competition_id": 2, "competition_name": "Premier League", "country_name": "England", "competition_gender": "male", "competition_youth": false, "competition_international": false},
  {"competition_id": 11, "competition_name": "La Liga", "country_name": "Spain", "competition_gender": "male", "competition_youth": false, "competition_international": false},
  {"competition_id": 37, "competition_name": "FA Women's Super League", "country_name": "England", "competition_gender": "female", "competition_youth": false, "competition_international": false},
  {"competition_id": 55, "competition_name": "UEFA Euro", "country_name": "Europe", "competition_gender": "male", "competition_youth": false, "competition_international": true},
  {"competition_id": 2, "competition_name": "Premier League", "country_name": "England", "competition_gender": "male", "competition_youth": false, "competition_international": false}
]`

const matchJSON = `[
  {"match_id": 3773586, "match_date": "2021-05-16",
   "competition": {"competition_id": 11}, "season": {"season_name": "2020/2021"},
   "home_team": {"home_team_id": 217, "home_team_name": "Barcelona"},
   "away_team": {"away_team_id": 205, "away_team_name": "Celta Vigo"},
   "home_score": 1, "away_score": 2}
]`

const lineupJSON = `[
  {"team_id": 217, "team_name": "Barcelona", "lineup": [
    {"player_id": 5503, "player_name": "Lionel Andrés Messi Cuccittini", "jersey_number": 10,
     "country": {"name": "Argentina"},
     "positions": [{"position": "Right Wing", "start_reason": "Starting XI"}]},
    {"player_id": 8206, "player_name": "Antoine Griezmann", "jersey_number": 7,
     "positions": [{"position": "Center Forward", "start_reason": "Substitution - On (Tactical)"}]}
  ]},
  {"team_id": 205, "team_name": "Celta Vigo", "lineup": [
    {"player_id": 6935, "player_name": "Iago Aspas", "jersey_number": 10,
     "country": {"name": "Spain"},
     "positions": [{"position": "Center Forward", "start_reason": "Starting XI"}]}
  ]}
]`

func TestReadCompetitionsFiltersBig5(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "competitions.json", competitionsJSON)

	ids, err := ingest.ReadCompetitions(dir)
	if err != nil {
		t.Fatalf("ReadCompetitions failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 11 {
		t.Fatalf("ids = %v, want [2 11]", ids)
	}
}

func TestReadCompetitionsMissingFile(t *testing.T) {
	_, err := ingest.ReadCompetitions(t.TempDir())
	if !errors.Is(err, pipeline.ErrMissingInput) {
		t.Fatalf("err = %v, want ErrMissingInput", err)
	}
}

func TestReadMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "matches/11/90.json", matchJSON)

	matches, err := ingest.ReadMatches(dir, []int64{11, 99})
	if err != nil {
		t.Fatalf("ReadMatches failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	m := matches[0]
	if m.MatchID != 3773586 || m.CompetitionID != 11 || m.SeasonName != "2020/2021" {
		t.Fatalf("unexpected match: %+v", m)
	}
	if m.HomeTeamName != "Barcelona" || m.AwayScore != 2 {
		t.Fatalf("teams/scores wrong: %+v", m)
	}
}

func TestReadStartingLineupKeepsStartersOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lineups/3773586.json", lineupJSON)

	rows, err := ingest.ReadStartingLineup(dir, 3773586)
	if err != nil {
		t.Fatalf("ReadStartingLineup failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (substitute excluded)", len(rows))
	}
	first := rows[0]
	if first.QueryID != "5503" || first.Position != "Right Wing" || first.Country != "Argentina" || first.TeamName != "Barcelona" {
		t.Fatalf("unexpected appearance: %+v", first)
	}
	for _, row := range rows {
		if row.QueryID == "8206" {
			t.Fatal("substitute should not appear in starting lineup")
		}
	}
}

func TestReadStartingLineupMissingFileIsEmpty(t *testing.T) {
	rows, err := ingest.ReadStartingLineup(t.TempDir(), 42)
	if err != nil || rows != nil {
		t.Fatalf("missing lineup should be empty, got %v, %v", rows, err)
	}
}
