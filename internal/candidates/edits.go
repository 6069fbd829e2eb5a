// Package candidates generates correction candidates within one or two
// elementary edits of a token.
package candidates

import (
	"iter"

	mapset "github.com/deckarep/golang-set/v2"
)

// Alphabet is the set of letters used for substitutions and insertions.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// Edits1 returns every string one deletion, adjacent transposition,
// substitution or insertion away from token.
func Edits1(token string) mapset.Set[string] {
	return mapset.NewThreadUnsafeSet(edits1(token)...)
}

// Edits2 yields the edits1 of every element of Edits1(token). The sequence is
// lazy and may repeat strings.
func Edits2(token string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e1 := range Edits1(token).ToSlice() {
			for _, e2 := range edits1(e1) {
				if !yield(e2) {
					return
				}
			}
		}
	}
}

// edits1 lists the single edits of token without removing duplicates:
// deletes, transposes, replaces and inserts, 54*len+25 strings in total.
func edits1(token string) []string {
	r := []rune(token)
	n := len(r)
	out := make([]string, 0, 54*n+25)
	splice := func(left []rune, mid []rune, right []rune) string {
		buf := make([]rune, 0, len(left)+len(mid)+len(right))
		buf = append(buf, left...)
		buf = append(buf, mid...)
		return string(append(buf, right...))
	}

	for i := 0; i < n; i++ {
		out = append(out, splice(r[:i], nil, r[i+1:]))
	}
	for i := 0; i+1 < n; i++ {
		out = append(out, splice(r[:i], []rune{r[i+1], r[i]}, r[i+2:]))
	}
	for i := 0; i < n; i++ {
		for _, c := range Alphabet {
			out = append(out, splice(r[:i], []rune{c}, r[i+1:]))
		}
	}
	for i := 0; i <= n; i++ {
		for _, c := range Alphabet {
			out = append(out, splice(r[:i], []rune{c}, r[i:]))
		}
	}
	return out
}
