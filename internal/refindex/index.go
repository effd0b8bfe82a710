package refindex

import (
	"strings"

	"playerlink/internal/nameutil"
)

// variantSeparator joins a record's name variants into one comparison
// string. Normalization never produces a "|" so the separator cannot collide
// with a name token; it is also excluded from the token index below.
const variantSeparator = " || "

// Entry is one reference record presented to the index builder.
type Entry struct {
	ID       string   // stable external identifier
	Name     string   // display name reported back on candidates
	Variants []string // raw name variants, order fixed
}

// Index is the blocking index over the reference dataset.
type Index struct {
	ids      []string
	names    []string
	norms    []string
	exact    map[string]int
	postings map[string][]int

	duplicateNorms int
}

// Build constructs the index from the reference entries in order. Duplicate
// normalized strings keep the first writer in the exact table; later records
// remain reachable through the token index.
func Build(entries []Entry) *Index {
	idx := &Index{
		ids:      make([]string, 0, len(entries)),
		names:    make([]string, 0, len(entries)),
		norms:    make([]string, 0, len(entries)),
		exact:    make(map[string]int, len(entries)),
		postings: make(map[string][]int),
	}
	for _, entry := range entries {
		pos := len(idx.norms)
		norm := nameutil.Normalize(strings.Join(entry.Variants, variantSeparator))
		idx.ids = append(idx.ids, entry.ID)
		idx.names = append(idx.names, entry.Name)
		idx.norms = append(idx.norms, norm)

		if _, seen := idx.exact[norm]; seen {
			idx.duplicateNorms++
		} else if norm != "" {
			idx.exact[norm] = pos
		}

		recorded := make(map[string]struct{})
		for _, token := range nameutil.Tokens(norm) {
			if token == strings.TrimSpace(variantSeparator) {
				continue
			}
			// A token repeated within one record indexes it once.
			if _, dup := recorded[token]; dup {
				continue
			}
			recorded[token] = struct{}{}
			idx.postings[token] = append(idx.postings[token], pos)
		}
	}
	return idx
}

// Len returns the number of indexed reference records.
func (x *Index) Len() int { return len(x.norms) }

// Exact looks up a whole normalized string and returns the first record
// indexed under it.
func (x *Index) Exact(normalized string) (int, bool) {
	pos, ok := x.exact[normalized]
	return pos, ok
}

// ID returns the reference identifier at the given index position.
func (x *Index) ID(pos int) string { return x.ids[pos] }

// Name returns the display name at the given index position.
func (x *Index) Name(pos int) string { return x.names[pos] }

// Norm returns the combined normalized string at the given index position.
func (x *Index) Norm(pos int) string { return x.norms[pos] }

// Norms exposes the full normalized-string slice for scoring.
func (x *Index) Norms() []string { return x.norms }

// DuplicateNorms reports how many records shared a normalized string with an
// earlier record. These are a known precision ceiling: two distinct players
// with identical normalized names cannot be told apart by name alone.
func (x *Index) DuplicateNorms() int { return x.duplicateNorms }
