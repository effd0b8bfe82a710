package nameutil_test

import (
	"reflect"
	"testing"

	"playerlink/internal/nameutil"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Lionel Messi", "lionel messi"},
		{"diacritics", "José Gayà", "jose gaya"},
		{"apostrophe", "N'Golo Kanté", "ngolo kante"},
		{"periods", "L. Messi", "l messi"},
		{"quotes", `Sergio "Kun" Agüero`, "sergio kun aguero"},
		{"whitespace runs", "  Luka   Modric  ", "luka modric"},
		{"empty", "", ""},
		{"only punctuation", `.'"`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := nameutil.Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"José O'Brien.", "KEVIN DE BRUYNE", "Ødegaard", "  plain  name  "}
	for _, in := range inputs {
		once := nameutil.Normalize(in)
		twice := nameutil.Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeCaseAndPunctuationInvariant(t *testing.T) {
	if nameutil.Normalize("José O'Brien.") != nameutil.Normalize("JOSE OBRIEN") {
		t.Fatalf("expected case/diacritic/punctuation variants to normalize equally")
	}
}

func TestTokens(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"l messi", []string{"messi"}},
		{"kevin de bruyne", []string{"kevin", "de", "bruyne"}},
		{"", nil},
		{"a b c", nil},
	}
	for _, tc := range cases {
		got := nameutil.Tokens(tc.in)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Tokens(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
