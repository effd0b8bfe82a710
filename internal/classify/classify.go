// Package classify maps similarity scores and auxiliary evidence to
// confidence tiers. Transitions are monotonic: once a row reaches an
// accepted tier it is never re-evaluated or downgraded.
package classify

import (
	"playerlink/internal/mapstore"
	"playerlink/internal/position"
)

// Thresholds are the score cutoffs between confidence tiers.
type Thresholds struct {
	// AutoAccept is the minimum fuzzy score for accepted_fuzzy.
	AutoAccept int
	// ReviewLow is the minimum fuzzy score worth recording for review.
	ReviewLow int
	// PositionMin is the minimum score for a position-corroborated
	// promotion.
	PositionMin int
	// PositionUnknownMin is the stricter score bar when the query side has
	// no positional signal to corroborate or contradict.
	PositionUnknownMin int
}

// Default returns the observed production thresholds.
func Default() Thresholds {
	return Thresholds{
		AutoAccept:         85,
		ReviewLow:          75,
		PositionMin:        75,
		PositionUnknownMin: 80,
	}
}

// Classify assigns the tier for a fuzzy score. Exact matches bypass this and
// go straight to accepted; found reports whether any candidate was scored.
func (t Thresholds) Classify(score int, found bool) mapstore.Status {
	switch {
	case !found:
		return mapstore.StatusUnmatched
	case score >= t.AutoAccept:
		return mapstore.StatusAcceptedFuzzy
	case score >= t.ReviewLow:
		return mapstore.StatusReview
	default:
		return mapstore.StatusUnmatched
	}
}

// Promote reports whether a non-terminal row with a recorded candidate
// qualifies for accepted_fuzzy_pos. Matching known groups corroborate the
// candidate at PositionMin; an unknown query-side group neither corroborates
// nor contradicts, so the score alone must clear PositionUnknownMin.
func (t Thresholds) Promote(score int, query, candidate position.Group) bool {
	if score < t.PositionMin {
		return false
	}
	if query != position.Unknown && query == candidate {
		return true
	}
	return query == position.Unknown && score >= t.PositionUnknownMin
}
