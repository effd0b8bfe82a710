package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"playerlink/internal/config"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.CatalogPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// ReplaceReferencePlayers swaps in a freshly ingested reference table.
func (s *Store) ReplaceReferencePlayers(ctx context.Context, players []ReferencePlayer) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM reference_players"); err != nil {
			return fmt.Errorf("clear reference_players: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO reference_players
            (reference_id, short_name, long_name, positions, nationality, club, overall, age)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()
		for _, p := range players {
			if _, err := stmt.ExecContext(ctx, p.ReferenceID, p.ShortName, p.LongName, p.Positions, p.Nationality, p.Club, p.Overall, p.Age); err != nil {
				return fmt.Errorf("insert reference player %s: %w", p.ReferenceID, err)
			}
		}
		return nil
	})
}

// ReferencePlayers returns the reference table ordered by insertion, which
// keeps index builds deterministic across runs.
func (s *Store) ReferencePlayers(ctx context.Context) ([]ReferencePlayer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT reference_id, short_name, long_name, positions, nationality, club, overall, age
        FROM reference_players ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query reference_players: %w", err)
	}
	defer rows.Close()

	var out []ReferencePlayer
	for rows.Next() {
		var p ReferencePlayer
		var overall, age sql.NullInt64
		if err := rows.Scan(&p.ReferenceID, &p.ShortName, &p.LongName, &p.Positions, &p.Nationality, &p.Club, &overall, &age); err != nil {
			return nil, fmt.Errorf("scan reference player: %w", err)
		}
		p.Overall = int(overall.Int64)
		p.Age = int(age.Int64)
		out = append(out, p)
	}
	return out, rows.Err()
}

// ReferencePlayerCount returns the number of reference records.
func (s *Store) ReferencePlayerCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM reference_players").Scan(&n); err != nil {
		return 0, fmt.Errorf("count reference_players: %w", err)
	}
	return n, nil
}

// ReplaceMatches swaps in a freshly ingested match table.
func (s *Store) ReplaceMatches(ctx context.Context, matches []Match) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM matches"); err != nil {
			return fmt.Errorf("clear matches: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO matches
            (match_id, competition_id, season_name, match_date, home_team_id, home_team_name, away_team_id, away_team_name, home_score, away_score)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()
		for _, m := range matches {
			if _, err := stmt.ExecContext(ctx, m.MatchID, m.CompetitionID, m.SeasonName, m.MatchDate, m.HomeTeamID, m.HomeTeamName, m.AwayTeamID, m.AwayTeamName, m.HomeScore, m.AwayScore); err != nil {
				return fmt.Errorf("insert match %d: %w", m.MatchID, err)
			}
		}
		return nil
	})
}

// MatchCount returns the number of canonical matches.
func (s *Store) MatchCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM matches").Scan(&n); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return n, nil
}

// MatchIDs returns all canonical match ids in ascending order.
func (s *Store) MatchIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT match_id FROM matches ORDER BY match_id")
	if err != nil {
		return nil, fmt.Errorf("query match ids: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan match id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ReplaceAppearances swaps in freshly ingested starting-lineup rows.
func (s *Store) ReplaceAppearances(ctx context.Context, appearances []Appearance) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM appearances"); err != nil {
			return fmt.Errorf("clear appearances: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO appearances
            (match_id, team_id, team_name, query_id, query_name, jersey, position, country)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()
		for _, a := range appearances {
			if _, err := stmt.ExecContext(ctx, a.MatchID, a.TeamID, a.TeamName, a.QueryID, a.QueryName, a.Jersey, a.Position, a.Country); err != nil {
				return fmt.Errorf("insert appearance %s in match %d: %w", a.QueryID, a.MatchID, err)
			}
		}
		return nil
	})
}

// Appearances returns all starting-lineup rows in insertion order.
func (s *Store) Appearances(ctx context.Context) ([]Appearance, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT match_id, team_id, team_name, query_id, query_name, jersey, position, country
        FROM appearances ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query appearances: %w", err)
	}
	defer rows.Close()

	var out []Appearance
	for rows.Next() {
		var a Appearance
		var jersey sql.NullInt64
		if err := rows.Scan(&a.MatchID, &a.TeamID, &a.TeamName, &a.QueryID, &a.QueryName, &jersey, &a.Position, &a.Country); err != nil {
			return nil, fmt.Errorf("scan appearance: %w", err)
		}
		a.Jersey = int(jersey.Int64)
		out = append(out, a)
	}
	return out, rows.Err()
}

// QueryPlayers returns the distinct query-side identities ordered by query
// id, each with the name from its first appearance.
func (s *Store) QueryPlayers(ctx context.Context) ([]QueryPlayer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT query_id, query_name FROM (
            SELECT query_id, query_name, MIN(rowid) AS first_seen
            FROM appearances GROUP BY query_id
        ) ORDER BY query_id`)
	if err != nil {
		return nil, fmt.Errorf("query distinct players: %w", err)
	}
	defer rows.Close()

	var out []QueryPlayer
	for rows.Next() {
		var p QueryPlayer
		if err := rows.Scan(&p.QueryID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan query player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// QueryPositions returns each query id's position from its first appearance.
func (s *Store) QueryPositions(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT query_id, position FROM (
            SELECT query_id, position, MIN(rowid) AS first_seen
            FROM appearances GROUP BY query_id
        )`)
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var id, pos string
		if err := rows.Scan(&id, &pos); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		out[id] = pos
	}
	return out, rows.Err()
}

// BeginPassRun records the start of a resolution pass and returns its run id.
func (s *Store) BeginPassRun(ctx context.Context, pass string) (string, error) {
	runID := uuid.NewString()
	started := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO pass_runs (run_id, pass, started_at) VALUES (?, ?, ?)",
		runID, pass, started,
	); err != nil {
		return "", fmt.Errorf("insert pass run: %w", err)
	}
	return runID, nil
}

// FinishPassRun records a pass's completion counters.
func (s *Store) FinishPassRun(ctx context.Context, runID string, processed, promoted int) error {
	finished := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx,
		"UPDATE pass_runs SET finished_at = ?, processed = ?, promoted = ? WHERE run_id = ?",
		finished, processed, promoted, runID,
	); err != nil {
		return fmt.Errorf("finish pass run: %w", err)
	}
	return nil
}

// PassRuns returns the audit trail, newest first.
func (s *Store) PassRuns(ctx context.Context) ([]PassRun, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, pass, started_at, finished_at, processed, promoted
        FROM pass_runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query pass runs: %w", err)
	}
	defer rows.Close()

	var out []PassRun
	for rows.Next() {
		var r PassRun
		var finished sql.NullString
		if err := rows.Scan(&r.RunID, &r.Pass, &r.StartedAt, &finished, &r.Processed, &r.Promoted); err != nil {
			return nil, fmt.Errorf("scan pass run: %w", err)
		}
		r.FinishedAt = finished.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
