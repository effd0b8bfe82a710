package refindex

import (
	"sort"

	"playerlink/internal/nameutil"
)

// CandidateOptions bound the work the candidate generator may do per query.
type CandidateOptions struct {
	// TokenCeiling skips tokens whose posting list is longer than this;
	// such tokens are too common to narrow anything. Zero disables the
	// ceiling.
	TokenCeiling int
	// MaxCandidates caps the returned candidate set. Zero means no cap.
	MaxCandidates int
}

// Candidates returns a bounded set of reference positions worth fuzzy-scoring
// against the normalized query. Only tokens over the posting ceiling are
// dropped as uninformative; a token absent from the index contributes an
// empty posting list, so a query carrying an out-of-vocabulary token (a
// misspelled name part) vetoes the intersection and yields no candidates.
// Two or more surviving lists intersect; a single list passes through; when
// the ceiling filtered every token the least-common tokens' lists are
// unioned until the cap is reached. An empty result means the query has no
// searchable candidates and is a valid outcome, not an error.
func (x *Index) Candidates(normalizedQuery string, opts CandidateOptions) []int {
	tokens := nameutil.Tokens(normalizedQuery)
	if len(tokens) == 0 {
		return nil
	}

	lists := make([][]int, 0, len(tokens))
	for _, token := range tokens {
		list := x.postings[token]
		if opts.TokenCeiling > 0 && len(list) > opts.TokenCeiling {
			continue
		}
		lists = append(lists, list)
	}

	var candidates []int
	switch {
	case len(lists) >= 2:
		candidates = intersect(lists)
	case len(lists) == 1:
		candidates = append([]int(nil), lists[0]...)
	default:
		candidates = x.unionRarest(tokens, opts.MaxCandidates)
	}

	if opts.MaxCandidates > 0 && len(candidates) > opts.MaxCandidates {
		candidates = candidates[:opts.MaxCandidates]
	}
	return candidates
}

// intersect keeps the positions present in every list, preserving the first
// list's order so truncation stays deterministic.
func intersect(lists [][]int) []int {
	rest := make([]map[int]struct{}, 0, len(lists)-1)
	for _, list := range lists[1:] {
		set := make(map[int]struct{}, len(list))
		for _, pos := range list {
			set[pos] = struct{}{}
		}
		rest = append(rest, set)
	}
	var out []int
	seen := make(map[int]struct{})
	for _, pos := range lists[0] {
		if _, dup := seen[pos]; dup {
			continue
		}
		seen[pos] = struct{}{}
		inAll := true
		for _, set := range rest {
			if _, ok := set[pos]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, pos)
		}
	}
	return out
}

// unionRarest accumulates posting lists from the least-common tokens until
// the cap fills. This is the fallback when the ceiling filtered every token:
// better a broad candidate pool than none at all.
func (x *Index) unionRarest(tokens []string, maxCandidates int) []int {
	ordered := append([]string(nil), tokens...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(x.postings[ordered[i]]) < len(x.postings[ordered[j]])
	})

	var out []int
	seen := make(map[int]struct{})
	for _, token := range ordered {
		for _, pos := range x.postings[token] {
			if _, dup := seen[pos]; dup {
				continue
			}
			seen[pos] = struct{}{}
			out = append(out, pos)
		}
		if maxCandidates > 0 && len(out) >= maxCandidates {
			break
		}
	}
	return out
}
