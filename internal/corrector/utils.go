package corrector

import (
	"cmp"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
)

// editDistance is the unrestricted Damerau-Levenshtein distance, so a second
// edit inside a transposed pair still counts as two.
func editDistance(a, b string) int {
	return edlib.DamerauLevenshteinDistance(a, b)
}

// argmax returns the first candidate with the highest score.
func argmax(scored []Candidate) Candidate {
	best := scored[0]
	for _, c := range scored[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best
}

// byScore orders by descending score, then fewer edits, then term.
func byScore(a, b Candidate) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Edits, b.Edits); c != 0 {
		return c
	}
	return strings.Compare(a.Term, b.Term)
}

func topK(scored []Candidate, k int) []Candidate {
	if k <= 0 {
		return nil
	}
	ranked := append([]Candidate(nil), scored...)
	slices.SortStableFunc(ranked, byScore)
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

func isTitle(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) == string(r[0]) && strings.ToLower(string(r[1:])) == string(r[1:])
}

func isUpper(s string) bool { return strings.ToUpper(s) == s }

func title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}

// restoreCase applies the casing pattern of typed to the lowercase correction.
func restoreCase(typed, corrected string) string {
	switch {
	case strings.ToLower(typed) == corrected:
		return typed
	case len([]rune(typed)) > 1 && isUpper(typed):
		return strings.ToUpper(corrected)
	case isTitle(typed):
		return title(corrected)
	}
	return corrected
}
