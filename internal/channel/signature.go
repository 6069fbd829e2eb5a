package channel

import (
	"errors"
	"fmt"
	"slices"
)

// Boundary stands in for the character before position 0.
const Boundary = '#'

var (
	ErrNoDivergence = errors.New("original and candidate are identical")
	ErrNoSignature  = errors.New("no signature for edit")
)

// Classify names the edit from candidate (intended) to original (typed) by
// comparing lengths, then letter multisets.
func Classify(original, candidate string) ErrorKind {
	o, c := []rune(original), []rune(candidate)
	switch {
	case len(o) < len(c):
		return Deletion
	case len(o) > len(c):
		return Insertion
	case isAnagram(o, c):
		return Transposition
	default:
		return Substitution
	}
}

func isAnagram(a, b []rune) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// Signature extracts the two characters that key the edit in the error tables.
// Calling it with identical strings is a programming error and returns
// ErrNoDivergence.
func Signature(kind ErrorKind, original, candidate string) (string, error) {
	if original == candidate {
		return "", ErrNoDivergence
	}
	o, c := []rune(original), []rune(candidate)
	var (
		pair [2]rune
		ok   bool
	)
	switch kind {
	case Insertion:
		pair, ok = insertionPair(o, c)
	case Deletion:
		pair, ok = deletionPair(o, c)
	case Substitution:
		pair, ok = substitutionPair(o, c)
	case Transposition:
		pair, ok = transpositionPair(o, c)
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownErrorKind, int(kind))
	}
	if !ok {
		return "", fmt.Errorf("%w: %s %q -> %q", ErrNoSignature, kind, candidate, original)
	}
	return string(pair[:]), nil
}

// divergence is the first index where a and b differ, scanning the first
// limit positions, or limit when they agree.
func divergence(a, b []rune, limit int) int {
	for i := 0; i < limit; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return limit
}

func before(r []rune, i int) rune {
	if i == 0 {
		return Boundary
	}
	return r[i-1]
}

// insertionPair: the character before the inserted one, then the inserted one.
func insertionPair(o, c []rune) ([2]rune, bool) {
	if len(o) <= len(c) {
		return [2]rune{}, false
	}
	p := divergence(o, c, len(c))
	return [2]rune{before(o, p), o[p]}, true
}

// deletionPair: the typed character before the gap, then the dropped one.
func deletionPair(o, c []rune) ([2]rune, bool) {
	if len(c) <= len(o) {
		return [2]rune{}, false
	}
	p := divergence(o, c, len(o))
	return [2]rune{before(o, p), c[p]}, true
}

// substitutionPair: the typed character, then the intended one.
func substitutionPair(o, c []rune) ([2]rune, bool) {
	n := min(len(o), len(c))
	p := divergence(o, c, n)
	if p == n {
		return [2]rune{}, false
	}
	return [2]rune{o[p], c[p]}, true
}

// transpositionPair: the swapped characters in their intended order.
func transpositionPair(o, c []rune) ([2]rune, bool) {
	if len(o) != len(c) {
		return [2]rune{}, false
	}
	p := divergence(o, c, len(o))
	if p+1 >= len(o) {
		return [2]rune{}, false
	}
	return [2]rune{o[p+1], o[p]}, true
}
