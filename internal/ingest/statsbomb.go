package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"playerlink/internal/catalog"
	"playerlink/internal/pipeline"
)

// Big-5 league selection. Competitions are kept when they match by country
// or by name keyword and are male, senior, domestic competitions.
var (
	big5Countries = map[string]struct{}{
		"England": {}, "Spain": {}, "Italy": {}, "Germany": {}, "France": {},
	}
	big5Keywords = []string{"premier", "la liga", "laliga", "serie a", "bundesliga", "ligue 1"}
)

type competition struct {
	CompetitionID   int64  `json:"competition_id"`
	CompetitionName string `json:"competition_name"`
	CountryName     string `json:"country_name"`
	Gender          string `json:"competition_gender"`
	Youth           bool   `json:"competition_youth"`
	International   bool   `json:"competition_international"`
}

type matchTeam struct {
	HomeTeamID   int64  `json:"home_team_id"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamID   int64  `json:"away_team_id"`
	AwayTeamName string `json:"away_team_name"`
}

type matchEntry struct {
	MatchID     int64     `json:"match_id"`
	MatchDate   string    `json:"match_date"`
	HomeTeam    matchTeam `json:"home_team"`
	AwayTeam    matchTeam `json:"away_team"`
	HomeScore   int       `json:"home_score"`
	AwayScore   int       `json:"away_score"`
	Competition struct {
		CompetitionID int64 `json:"competition_id"`
	} `json:"competition"`
	Season struct {
		SeasonName string `json:"season_name"`
	} `json:"season"`
}

type lineupTeam struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
	Lineup   []struct {
		PlayerID     int64  `json:"player_id"`
		PlayerName   string `json:"player_name"`
		JerseyNumber int    `json:"jersey_number"`
		Country      *struct {
			Name string `json:"name"`
		} `json:"country"`
		Positions []struct {
			Position    string `json:"position"`
			StartReason string `json:"start_reason"`
		} `json:"positions"`
	} `json:"lineup"`
}

// ReadCompetitions selects the Big-5 competition ids from competitions.json
// under the dataset directory.
func ReadCompetitions(dir string) ([]int64, error) {
	path := filepath.Join(dir, "competitions.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pipeline.Wrap(pipeline.ErrMissingInput, "ingest", "competitions", path, err)
		}
		return nil, fmt.Errorf("read competitions: %w", err)
	}

	var comps []competition
	if err := json.Unmarshal(data, &comps); err != nil {
		return nil, pipeline.Wrap(pipeline.ErrSchemaMismatch, "ingest", "competitions", "unparsable json", err)
	}

	seen := make(map[int64]struct{})
	var ids []int64
	for _, comp := range comps {
		if comp.Gender != "male" || comp.Youth || comp.International {
			continue
		}
		if !isBig5(comp) {
			continue
		}
		if _, dup := seen[comp.CompetitionID]; dup {
			continue
		}
		seen[comp.CompetitionID] = struct{}{}
		ids = append(ids, comp.CompetitionID)
	}
	return ids, nil
}

func isBig5(comp competition) bool {
	if _, ok := big5Countries[comp.CountryName]; ok {
		return true
	}
	name := strings.ToLower(comp.CompetitionName)
	for _, kw := range big5Keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// ReadMatches loads every match file for the given competitions. A missing
// competition folder is skipped; some competitions ship without matches.
func ReadMatches(dir string, competitionIDs []int64) ([]catalog.Match, error) {
	var out []catalog.Match
	for _, compID := range competitionIDs {
		folder := filepath.Join(dir, "matches", strconv.FormatInt(compID, 10))
		files, err := filepath.Glob(filepath.Join(folder, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("scan matches folder: %w", err)
		}
		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("read match file %s: %w", file, err)
			}
			var entries []matchEntry
			if err := json.Unmarshal(data, &entries); err != nil {
				// Some files hold a single match object.
				var single matchEntry
				if err2 := json.Unmarshal(data, &single); err2 != nil {
					return nil, pipeline.Wrap(pipeline.ErrSchemaMismatch, "ingest", "matches", file, err)
				}
				entries = []matchEntry{single}
			}
			for _, entry := range entries {
				if entry.MatchID == 0 {
					continue
				}
				competitionID := entry.Competition.CompetitionID
				if competitionID == 0 {
					competitionID = compID
				}
				out = append(out, catalog.Match{
					MatchID:       entry.MatchID,
					CompetitionID: competitionID,
					SeasonName:    entry.Season.SeasonName,
					MatchDate:     entry.MatchDate,
					HomeTeamID:    entry.HomeTeam.HomeTeamID,
					HomeTeamName:  entry.HomeTeam.HomeTeamName,
					AwayTeamID:    entry.AwayTeam.AwayTeamID,
					AwayTeamName:  entry.AwayTeam.AwayTeamName,
					HomeScore:     entry.HomeScore,
					AwayScore:     entry.AwayScore,
				})
			}
		}
	}
	return out, nil
}

// ReadStartingLineup extracts the starting XI for one match. A missing
// lineup file yields no rows; players without a "Starting" position entry
// are not part of the lineup.
func ReadStartingLineup(dir string, matchID int64) ([]catalog.Appearance, error) {
	path := filepath.Join(dir, "lineups", strconv.FormatInt(matchID, 10)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read lineup %d: %w", matchID, err)
	}

	var teams []lineupTeam
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, pipeline.Wrap(pipeline.ErrSchemaMismatch, "ingest", "lineups", path, err)
	}

	var out []catalog.Appearance
	for _, team := range teams {
		for _, player := range team.Lineup {
			started := ""
			for _, pos := range player.Positions {
				if strings.Contains(pos.StartReason, "Starting") {
					started = pos.Position
					break
				}
			}
			if started == "" {
				continue
			}
			appearance := catalog.Appearance{
				MatchID:   matchID,
				TeamID:    team.TeamID,
				TeamName:  team.TeamName,
				QueryID:   strconv.FormatInt(player.PlayerID, 10),
				QueryName: player.PlayerName,
				Jersey:    player.JerseyNumber,
				Position:  started,
			}
			if player.Country != nil {
				appearance.Country = player.Country.Name
			}
			out = append(out, appearance)
		}
	}
	return out, nil
}

// ReadAllLineups extracts starting lineups for every given match id.
func ReadAllLineups(dir string, matchIDs []int64) ([]catalog.Appearance, error) {
	var out []catalog.Appearance
	for _, matchID := range matchIDs {
		rows, err := ReadStartingLineup(dir, matchID)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}
