package channel

import (
	"iter"
	"math"
	"strings"
)

// Floor replaces a zero probability before taking its logarithm.
const Floor = 0.0001

// Vocabulary is the read-only view of token frequencies the scorer needs.
type Vocabulary interface {
	Frequency(token string) int
	Total() int
	All() iter.Seq2[string, int]
}

// Scorer computes log P(original | candidate) + log P(candidate).
type Scorer struct {
	vocab  Vocabulary
	tables *ErrorTables
}

func NewScorer(vocab Vocabulary, tables *ErrorTables) *Scorer {
	return &Scorer{vocab: vocab, tables: tables}
}

// CoOccurrence sums the frequencies of vocabulary tokens containing sig. A
// signature starting with Boundary matches token prefixes.
func (s *Scorer) CoOccurrence(sig string) int {
	match := strings.Contains
	if rest, ok := strings.CutPrefix(sig, string(Boundary)); ok {
		sig, match = rest, strings.HasPrefix
	}
	count := 0
	for token, freq := range s.vocab.All() {
		if match(token, sig) {
			count += freq
		}
	}
	return count
}

// LogProbability scores candidate as the intended word for the typed original.
// It fails with ErrNoDivergence when the two are equal.
func (s *Scorer) LogProbability(candidate, original string) (float64, error) {
	kind := Classify(original, candidate)
	sig, err := Signature(kind, original, candidate)
	if err != nil {
		return 0, err
	}

	pErr := 0.0
	if co := s.CoOccurrence(sig); co > 0 {
		pErr = float64(s.tables.Count(kind, sig)) / float64(co)
	}
	pCand := 0.0
	if total := s.vocab.Total(); total > 0 {
		pCand = float64(s.vocab.Frequency(candidate)) / float64(total)
	}
	return math.Log(floor(pErr)) + math.Log(floor(pCand)), nil
}

func floor(p float64) float64 {
	if p == 0 {
		return Floor
	}
	return p
}
