// Package report aggregates mapping coverage statistics for the stats
// command: tier counts, per-match completeness, and a what-if sweep over
// alternative auto-accept thresholds.
package report

import (
	"context"
	"fmt"
	"sort"

	"playerlink/internal/catalog"
	"playerlink/internal/mapstore"
)

// statusOrder fixes the reporting order from strongest to weakest tier.
var statusOrder = []mapstore.Status{
	mapstore.StatusAccepted,
	mapstore.StatusAcceptedFuzzy,
	mapstore.StatusAcceptedFuzzyPos,
	mapstore.StatusReview,
	mapstore.StatusUnmatched,
}

// StatusCount is one tier's row count in the review table.
type StatusCount struct {
	Status mapstore.Status
	Count  int
}

// MethodCount is one scoring stage's row count in the accepted table.
type MethodCount struct {
	Method mapstore.Method
	Count  int
}

// ThresholdBand reports how many review-table candidates would clear a
// hypothetical auto-accept threshold.
type ThresholdBand struct {
	Threshold   int
	WouldAccept int
}

// Stats is the aggregated coverage picture.
type Stats struct {
	ReferencePlayers int
	QueryPlayers     int
	Matches          int

	AcceptedRows int
	ByStatus     []StatusCount
	ByMethod     []MethodCount

	FullyMappedMatches int
	Thresholds         []ThresholdBand
}

// CoveragePercent returns accepted rows over query players, 0-100.
func (s *Stats) CoveragePercent() float64 {
	if s.QueryPlayers == 0 {
		return 0
	}
	return 100 * float64(s.AcceptedRows) / float64(s.QueryPlayers)
}

// Collect builds the full stats picture from the catalog and the mapping
// tables. The default threshold sweep runs from 90 down to 60 in steps of 5.
func Collect(ctx context.Context, cat *catalog.Store, maps *mapstore.Store) (*Stats, error) {
	stats := &Stats{}

	var err error
	if stats.ReferencePlayers, err = cat.ReferencePlayerCount(ctx); err != nil {
		return nil, fmt.Errorf("count reference players: %w", err)
	}
	if stats.Matches, err = cat.MatchCount(ctx); err != nil {
		return nil, fmt.Errorf("count matches: %w", err)
	}
	queries, err := cat.QueryPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load query players: %w", err)
	}
	stats.QueryPlayers = len(queries)

	accepted := maps.Accepted()
	stats.AcceptedRows = len(accepted)
	stats.ByMethod = countMethods(accepted)
	stats.ByStatus = countStatuses(maps.Review())
	stats.Thresholds = Simulate(maps.Review(), []int{90, 85, 80, 75, 70, 65, 60})

	appearances, err := cat.Appearances(ctx)
	if err != nil {
		return nil, fmt.Errorf("load appearances: %w", err)
	}
	stats.FullyMappedMatches = fullyMapped(appearances, maps)

	return stats, nil
}

// Simulate counts, for each threshold, the review-table rows whose recorded
// candidate score reaches it. Rows without a scored candidate never qualify.
func Simulate(rows []mapstore.ReviewRow, thresholds []int) []ThresholdBand {
	bands := make([]ThresholdBand, 0, len(thresholds))
	for _, threshold := range thresholds {
		band := ThresholdBand{Threshold: threshold}
		for _, row := range rows {
			if row.Score != nil && *row.Score >= threshold {
				band.WouldAccept++
			}
		}
		bands = append(bands, band)
	}
	return bands
}

func countStatuses(rows []mapstore.ReviewRow) []StatusCount {
	counts := make(map[mapstore.Status]int)
	for _, row := range rows {
		counts[row.Status]++
	}
	out := make([]StatusCount, 0, len(statusOrder))
	for _, status := range statusOrder {
		out = append(out, StatusCount{Status: status, Count: counts[status]})
	}
	return out
}

func countMethods(rows []mapstore.AcceptedRow) []MethodCount {
	counts := make(map[mapstore.Method]int)
	for _, row := range rows {
		counts[row.Method]++
	}
	methods := make([]mapstore.Method, 0, len(counts))
	for method := range counts {
		methods = append(methods, method)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })
	out := make([]MethodCount, 0, len(methods))
	for _, method := range methods {
		out = append(out, MethodCount{Method: method, Count: counts[method]})
	}
	return out
}

// fullyMapped counts matches whose every starting-lineup slot resolved to an
// accepted mapping.
func fullyMapped(appearances []catalog.Appearance, maps *mapstore.Store) int {
	complete := make(map[int64]bool)
	for _, a := range appearances {
		if _, seen := complete[a.MatchID]; !seen {
			complete[a.MatchID] = true
		}
		if !maps.HasAccepted(a.QueryID) {
			complete[a.MatchID] = false
		}
	}
	n := 0
	for _, ok := range complete {
		if ok {
			n++
		}
	}
	return n
}
