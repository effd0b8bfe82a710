package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"playerlink/internal/catalog"
	"playerlink/internal/pipeline"
)

// Reference CSV columns we keep. Anything else in the source is dropped.
const (
	colReferenceID = "sofifa_id"
	colShortName   = "short_name"
	colLongName    = "long_name"
	colPositions   = "player_positions"
	colNationality = "nationality"
	colClub        = "club"
	colOverall     = "overall"
	colAge         = "age"
)

// ReadReferenceCSV loads the attribute dataset from a CSV export. A missing
// file is ErrMissingInput; a header with neither name column is
// ErrSchemaMismatch. Records without a usable name are skipped. When the
// identifier column is absent the row index substitutes for it.
func ReadReferenceCSV(path string) ([]catalog.ReferencePlayer, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pipeline.Wrap(pipeline.ErrMissingInput, "ingest", "reference csv", path, err)
		}
		return nil, fmt.Errorf("open reference csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrSchemaMismatch, "ingest", "reference csv", "empty or unreadable header", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	if _, hasShort := cols[colShortName]; !hasShort {
		if _, hasLong := cols[colLongName]; !hasLong {
			return nil, pipeline.Wrap(pipeline.ErrSchemaMismatch, "ingest", "reference csv", "no usable name column", nil)
		}
	}

	field := func(record []string, name string) string {
		pos, ok := cols[name]
		if !ok || pos >= len(record) {
			return ""
		}
		return record[pos]
	}

	var players []catalog.ReferencePlayer
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read reference csv row %d: %w", row, err)
		}

		shortName := field(record, colShortName)
		longName := field(record, colLongName)
		if shortName == "" && longName == "" {
			continue
		}
		id := field(record, colReferenceID)
		if id == "" {
			id = strconv.Itoa(row)
		}
		player := catalog.ReferencePlayer{
			ReferenceID: id,
			ShortName:   shortName,
			LongName:    longName,
			Positions:   field(record, colPositions),
			Nationality: field(record, colNationality),
			Club:        field(record, colClub),
		}
		if v, err := strconv.Atoi(field(record, colOverall)); err == nil {
			player.Overall = v
		}
		if v, err := strconv.Atoi(field(record, colAge)); err == nil {
			player.Age = v
		}
		players = append(players, player)
	}
	return players, nil
}
