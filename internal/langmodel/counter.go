package langmodel

import (
	"strconv"
	"strings"
)

const (
	StartMarker = "<s>"
	EndMarker   = "</s>"
)

// Ngram is an ordered tuple of tokens.
type Ngram []string

// Key is the flat map key of the ngram in NgramCounts. Every token is
// prefixed with its byte length, so distinct tuples never share a key
// whatever characters the tokens contain.
func (g Ngram) Key() string {
	var b strings.Builder
	for _, t := range g {
		b.WriteString(strconv.Itoa(len(t)))
		b.WriteByte(':')
		b.WriteString(t)
	}
	return b.String()
}

// NgramCount is one entry of the ngram table.
type NgramCount struct {
	Ngram Ngram
	Count int
}

// Split tokenizes text into characters or whitespace separated words.
func Split(text string, chars bool) []string {
	if !chars {
		return strings.Fields(text)
	}
	out := make([]string, 0, len(text))
	for _, r := range text {
		out = append(out, string(r))
	}
	return out
}

// CountTokens returns per token frequencies and their sum.
func CountTokens(tokens []string) (map[string]int, int) {
	freq := make(map[string]int)
	for _, t := range tokens {
		freq[t]++
	}
	return freq, len(tokens)
}

// Pad prepends n-1 start markers and appends one end marker.
func Pad(tokens []string, n int) []string {
	padded := make([]string, 0, len(tokens)+n)
	for i := 0; i < n-1; i++ {
		padded = append(padded, StartMarker)
	}
	padded = append(padded, tokens...)
	return append(padded, EndMarker)
}

// CountNgrams slides a window of size n over padded. Distinct ngrams are
// returned in first-seen order alongside the counts.
func CountNgrams(padded []string, n int) (map[string]int, []Ngram) {
	counts := make(map[string]int)
	var order []Ngram
	for i := 0; i+n <= len(padded); i++ {
		g := Ngram(padded[i : i+n : i+n])
		key := g.Key()
		if _, ok := counts[key]; !ok {
			order = append(order, g)
		}
		counts[key]++
	}
	return counts, order
}
