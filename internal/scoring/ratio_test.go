package scoring_test

import (
	"testing"

	"playerlink/internal/scoring"
)

func TestRatio(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"lionel messi", "lionel messi", 100},
		{"", "", 100},
		{"lionel", "", 0},
		{"lionel messi", "lionel mesi", 96},
	}
	for _, tc := range cases {
		if got := scoring.Ratio(tc.a, tc.b); got != tc.want {
			t.Fatalf("Ratio(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestTokenSortRatioOrderInvariant(t *testing.T) {
	if got := scoring.TokenSortRatio("messi lionel", "lionel messi"); got != 100 {
		t.Fatalf("token-sort should neutralize order, got %d", got)
	}
	forward := scoring.TokenSortRatio("kevin de bruyne", "bruyne kevin de")
	if forward != 100 {
		t.Fatalf("expected 100 for reordered tokens, got %d", forward)
	}
}

func TestTokenSetRatioSubset(t *testing.T) {
	// The shorter name is a token subset of the longer one; token-set
	// scoring recognizes that even when token-sort does not.
	set := scoring.TokenSetRatio("lionel messi", "lionel andres messi")
	if set != 100 {
		t.Fatalf("TokenSetRatio subset = %d, want 100", set)
	}
	srt := scoring.TokenSortRatio("lionel messi", "lionel andres messi")
	if srt >= set {
		t.Fatalf("expected token-set (%d) to beat token-sort (%d) on subsets", set, srt)
	}
}

func TestTokenSetRatioDuplicates(t *testing.T) {
	if got := scoring.TokenSetRatio("messi messi", "messi"); got != 100 {
		t.Fatalf("duplicate tokens should not lower the score, got %d", got)
	}
}

func TestBestCandidate(t *testing.T) {
	norms := []string{"lionel messi", "luka modric", "lionel scaloni"}

	best, ok := scoring.BestCandidate("lionel messi", []int{0, 1, 2}, norms, scoring.TokenSortRatio, 0)
	if !ok || best.Index != 0 || best.Score != 100 {
		t.Fatalf("unexpected best: %+v ok=%v", best, ok)
	}

	if _, ok := scoring.BestCandidate("totally different", []int{1}, norms, scoring.TokenSortRatio, 75); ok {
		t.Fatal("expected no candidate above floor")
	}

	if _, ok := scoring.BestCandidate("anything", nil, norms, scoring.TokenSortRatio, 0); ok {
		t.Fatal("expected no result for empty candidate set")
	}
}

func TestBestCandidateTieKeepsFirst(t *testing.T) {
	norms := []string{"lionel messi", "lionel messi"}
	best, ok := scoring.BestCandidate("lionel messi", []int{0, 1}, norms, scoring.TokenSortRatio, 0)
	if !ok || best.Index != 0 {
		t.Fatalf("tie should keep first candidate, got %+v", best)
	}
}
