package mapstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
)

const (
	acceptedFile = "player_map.csv"
	reviewFile   = "player_map_review.csv"
	lockFile     = "mappings.lock"
)

var (
	acceptedHeader = []string{"query_id", "raw_name", "reference_id", "score", "method"}
	reviewHeader   = []string{"query_id", "raw_name", "candidate_reference_id", "candidate_name", "score", "method", "status"}
)

// ErrLocked indicates another pass currently holds the mapping store.
var ErrLocked = errors.New("mapping store is locked by another pass")

// Store is the in-memory mapping state for one read-modify-write cycle.
type Store struct {
	dir  string
	lock *flock.Flock

	accepted    []AcceptedRow
	acceptedIDs map[string]struct{}
	review      []ReviewRow
	reviewByID  map[string]int
}

// Open acquires the mapping directory lock and loads both tables. Missing
// files are treated as empty tables; the first pass starts from nothing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure mapping directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire mapping lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	s := &Store{
		dir:         dir,
		lock:        lock,
		acceptedIDs: make(map[string]struct{}),
		reviewByID:  make(map[string]int),
	}
	if err := s.load(); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return s, nil
}

// Close releases the mapping directory lock. It does not save.
func (s *Store) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

// Append adds a row to the accepted table unless the query id is already
// accepted. It reports whether the row was added.
func (s *Store) Append(row AcceptedRow) bool {
	if _, dup := s.acceptedIDs[row.QueryID]; dup {
		return false
	}
	s.accepted = append(s.accepted, row)
	s.acceptedIDs[row.QueryID] = struct{}{}
	return true
}

// HasAccepted reports whether the query id already has an accepted mapping.
func (s *Store) HasAccepted(queryID string) bool {
	_, ok := s.acceptedIDs[queryID]
	return ok
}

// Accepted returns the accepted table in append order.
func (s *Store) Accepted() []AcceptedRow { return s.accepted }

// Upsert writes the review row for its query id, replacing any existing row.
func (s *Store) Upsert(row ReviewRow) {
	if pos, ok := s.reviewByID[row.QueryID]; ok {
		s.review[pos] = row
		return
	}
	s.reviewByID[row.QueryID] = len(s.review)
	s.review = append(s.review, row)
}

// Get returns the review row for a query id.
func (s *Store) Get(queryID string) (ReviewRow, bool) {
	pos, ok := s.reviewByID[queryID]
	if !ok {
		return ReviewRow{}, false
	}
	return s.review[pos], true
}

// Review returns the review table in insertion order. Mutations must go
// through Upsert so the id index stays consistent.
func (s *Store) Review() []ReviewRow { return s.review }

// Save writes both tables back atomically: each file is fully written to a
// temp file in the same directory and renamed over the previous version, so
// a crash mid-save never exposes partial state.
func (s *Store) Save() error {
	if err := s.writeAccepted(); err != nil {
		return err
	}
	return s.writeReview()
}

func (s *Store) load() error {
	if err := s.loadAccepted(); err != nil {
		return err
	}
	return s.loadReview()
}

func (s *Store) loadAccepted() error {
	records, header, err := readCSV(filepath.Join(s.dir, acceptedFile))
	if err != nil {
		return err
	}
	if records == nil {
		return nil
	}
	col := columnLookup(header)
	for _, rec := range records {
		row := AcceptedRow{
			QueryID:     col.get(rec, "query_id"),
			RawName:     col.get(rec, "raw_name"),
			ReferenceID: col.get(rec, "reference_id"),
			Method:      Method(col.get(rec, "method")),
		}
		if v, err := strconv.Atoi(col.get(rec, "score")); err == nil {
			row.Score = v
		}
		if row.QueryID == "" {
			continue
		}
		s.Append(row)
	}
	return nil
}

func (s *Store) loadReview() error {
	records, header, err := readCSV(filepath.Join(s.dir, reviewFile))
	if err != nil {
		return err
	}
	if records == nil {
		return nil
	}
	col := columnLookup(header)
	for _, rec := range records {
		row := ReviewRow{
			QueryID:       col.get(rec, "query_id"),
			RawName:       col.get(rec, "raw_name"),
			CandidateID:   col.get(rec, "candidate_reference_id"),
			CandidateName: col.get(rec, "candidate_name"),
			Method:        Method(col.get(rec, "method")),
			Status:        Status(col.get(rec, "status")),
		}
		if raw := col.get(rec, "score"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				row.Score = &v
			}
		}
		if row.QueryID == "" {
			continue
		}
		s.Upsert(row)
	}
	return nil
}

func (s *Store) writeAccepted() error {
	rows := make([][]string, 0, len(s.accepted))
	for _, row := range s.accepted {
		rows = append(rows, []string{
			row.QueryID,
			row.RawName,
			row.ReferenceID,
			strconv.Itoa(row.Score),
			string(row.Method),
		})
	}
	return writeCSVAtomic(filepath.Join(s.dir, acceptedFile), acceptedHeader, rows)
}

func (s *Store) writeReview() error {
	rows := make([][]string, 0, len(s.review))
	for _, row := range s.review {
		score := ""
		if row.Score != nil {
			score = strconv.Itoa(*row.Score)
		}
		rows = append(rows, []string{
			row.QueryID,
			row.RawName,
			row.CandidateID,
			row.CandidateName,
			score,
			string(row.Method),
			string(row.Status),
		})
	}
	return writeCSVAtomic(filepath.Join(s.dir, reviewFile), reviewHeader, rows)
}

// readCSV returns (nil, nil, nil) when the file does not exist.
func readCSV(path string) ([][]string, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(all) == 0 {
		return [][]string{}, nil, nil
	}
	return all[1:], all[0], nil
}

func writeCSVAtomic(path string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

type columns map[string]int

func columnLookup(header []string) columns {
	col := make(columns, len(header))
	for i, name := range header {
		col[name] = i
	}
	return col
}

func (c columns) get(record []string, name string) string {
	pos, ok := c[name]
	if !ok || pos >= len(record) {
		return ""
	}
	return record[pos]
}
