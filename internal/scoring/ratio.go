package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Ratio scores the similarity of two strings on a 0-100 scale. The default
// levenshtein options weigh a substitution as an insert plus a delete, which
// matches difflib's ratio: 100 * 2*M / (len(a)+len(b)).
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	r := levenshtein.RatioForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	return int(math.Round(r * 100))
}

// TokenSortRatio compares the two strings with their whitespace tokens
// sorted, making the score invariant to name-part order
// ("messi lionel" vs "lionel messi" scores 100).
func TokenSortRatio(a, b string) int {
	return Ratio(sortTokens(a), sortTokens(b))
}

// TokenSetRatio compares the strings as token sets: the sorted intersection
// is scored against each side's intersection-plus-remainder form and the best
// of the three pairings wins. Duplicate tokens and subset relationships
// ("lionel messi" vs "lionel andres messi") no longer drag the score down.
func TokenSetRatio(a, b string) int {
	setA := tokenSet(a)
	setB := tokenSet(b)

	var common, restA, restB []string
	for token := range setA {
		if _, ok := setB[token]; ok {
			common = append(common, token)
		} else {
			restA = append(restA, token)
		}
	}
	for token := range setB {
		if _, ok := setA[token]; !ok {
			restB = append(restB, token)
		}
	}
	sort.Strings(common)
	sort.Strings(restA)
	sort.Strings(restB)

	base := strings.Join(common, " ")
	combinedA := strings.TrimSpace(base + " " + strings.Join(restA, " "))
	combinedB := strings.TrimSpace(base + " " + strings.Join(restB, " "))

	best := Ratio(base, combinedA)
	if s := Ratio(base, combinedB); s > best {
		best = s
	}
	if s := Ratio(combinedA, combinedB); s > best {
		best = s
	}
	return best
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(s) {
		set[token] = struct{}{}
	}
	return set
}
