// Package scoring computes string similarity between normalized names.
//
// Scores are integers on a 0-100 scale using insert/delete edit distance
// (difflib ratio semantics). Token-sort comparison neutralizes name-order
// differences; token-set comparison additionally ignores duplicated tokens,
// which helps when one side carries extra name parts.
package scoring
