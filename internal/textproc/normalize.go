package textproc

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nonAlphaRe = regexp.MustCompile(`[^A-Za-z]`)

// Normalizer lowercases text, replaces non letters with spaces and drops
// English stopwords.
type Normalizer struct {
	stop map[string]struct{}
}

func NewNormalizer() *Normalizer {
	return NewNormalizerWithStopwords(EnglishStopwords)
}

func NewNormalizerWithStopwords(stopwords []string) *Normalizer {
	stop := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stop[w] = struct{}{}
	}
	return &Normalizer{stop: stop}
}

func (n *Normalizer) Normalize(text string) string {
	// Casers keep state, one per call
	text = cases.Lower(language.English).String(text)
	text = nonAlphaRe.ReplaceAllString(text, " ")
	var kept []string
	for _, w := range Tokenize(text) {
		if _, ok := n.stop[w]; !ok {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func (n *Normalizer) IsStopword(word string) bool {
	_, ok := n.stop[word]
	return ok
}
