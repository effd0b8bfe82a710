package scoring

// Best is the top-scoring candidate from one scoring stage.
type Best struct {
	Index int // position in the reference index
	Score int
}

// Scorer compares a normalized query against a candidate string.
type Scorer func(query, candidate string) int

// BestCandidate scores the query against every candidate string and returns
// the highest score at or above floor. Ties keep the first candidate in list
// order, so results are stable for a given index build.
func BestCandidate(query string, candidates []int, norms []string, score Scorer, floor int) (Best, bool) {
	best := Best{Index: -1, Score: -1}
	for _, idx := range candidates {
		if idx < 0 || idx >= len(norms) {
			continue
		}
		if s := score(query, norms[idx]); s > best.Score {
			best = Best{Index: idx, Score: s}
		}
	}
	if best.Index < 0 || best.Score < floor {
		return Best{}, false
	}
	return best, true
}
