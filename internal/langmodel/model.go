// Package langmodel implements a word or character level n-gram language model
// with Laplace smoothing and sampling based text generation.
package langmodel

import (
	"iter"
	"maps"
	"math"
	"math/rand/v2"
	"slices"

	"spellchecker/pkg/options"
)

// LanguageModel is a Markov model over n-grams. The window size and the token
// mode are fixed at construction. A built model is safe for concurrent reads,
// except Generate which draws from the shared random source.
type LanguageModel struct {
	n     int
	chars bool
	rng   *rand.Rand

	vocab      Vocabulary
	counts     map[string]int // flat normal form: Ngram.Key() -> count
	ngrams     []Ngram        // distinct keys of counts in first-seen order
	ngramTotal int

	// derived from counts: (n-1)-prefix key -> continuations, in first-seen order
	index    map[string][]continuation
	contexts []Ngram
}

type continuation struct {
	token string
	count int
}

func New(opts ...options.Options) *LanguageModel {
	o := options.Resolve(opts...)
	return &LanguageModel{
		n:      o.WindowSize,
		chars:  o.Chars,
		rng:    o.Rand,
		vocab:  Vocabulary{freq: map[string]int{}},
		counts: map[string]int{},
		index:  map[string][]continuation{},
	}
}

// Build populates the model from text, discarding any previous state.
func (lm *LanguageModel) Build(text string) {
	tokens := Split(text, lm.chars)
	freq, total := CountTokens(tokens)
	padded := Pad(tokens, lm.n)
	counts, order := CountNgrams(padded, lm.n)

	lm.vocab = Vocabulary{freq: freq, total: total}
	lm.counts = counts
	lm.ngrams = order
	lm.ngramTotal = len(padded) - lm.n + 1
	lm.index = make(map[string][]continuation)
	lm.contexts = lm.contexts[:0]
	for _, g := range order {
		prefix := g[:lm.n-1]
		key := prefix.Key()
		if _, ok := lm.index[key]; !ok {
			lm.contexts = append(lm.contexts, prefix)
		}
		lm.index[key] = append(lm.index[key], continuation{token: g[lm.n-1], count: counts[g.Key()]})
	}
}

// EvaluateText returns the summed natural log probability of the ngrams of
// text. When any token of text is out of vocabulary every window is scored
// with Smooth, otherwise with count/TotalTokenCount. A zero probability adds
// nothing to the sum, so the result is not a normalised log-likelihood.
func (lm *LanguageModel) EvaluateText(text string) float64 {
	tokens := Split(text, lm.chars)
	smooth := lm.hasOOV(tokens)
	padded := Pad(tokens, lm.n)

	logProb := 0.0
	for i := lm.n - 1; i < len(padded); i++ {
		g := Ngram(padded[i-lm.n+1 : i+1])
		var p float64
		if smooth {
			p = lm.Smooth(g)
		} else if lm.vocab.total > 0 {
			p = float64(lm.counts[g.Key()]) / float64(lm.vocab.total)
		}
		if p > 0 {
			logProb += math.Log(p)
		}
	}
	return logProb
}

func (lm *LanguageModel) hasOOV(tokens []string) bool {
	for _, t := range tokens {
		if !lm.vocab.Contains(t) {
			return true
		}
	}
	return false
}

// Smooth returns the add-one probability of g:
// (count(g)+1) / (sum of all ngram counts + number of distinct ngrams).
// An empty model returns 1.
func (lm *LanguageModel) Smooth(g Ngram) float64 {
	denom := lm.ngramTotal + len(lm.counts)
	if denom == 0 {
		return 1
	}
	return float64(lm.counts[g.Key()]+1) / float64(denom)
}

// Frequencies returns a copy of the token frequency table.
func (lm *LanguageModel) Frequencies() map[string]int { return maps.Clone(lm.vocab.freq) }

// NgramCounts returns a copy of the ngram table keyed by Ngram.Key. Each
// entry carries its tuple.
func (lm *LanguageModel) NgramCounts() map[string]NgramCount {
	out := make(map[string]NgramCount, len(lm.ngrams))
	for _, g := range lm.ngrams {
		key := g.Key()
		out[key] = NgramCount{Ngram: slices.Clone(g), Count: lm.counts[key]}
	}
	return out
}

// Ngrams yields the distinct ngrams and their counts in first-seen order.
func (lm *LanguageModel) Ngrams() iter.Seq2[Ngram, int] {
	return func(yield func(Ngram, int) bool) {
		for _, g := range lm.ngrams {
			if !yield(slices.Clone(g), lm.counts[g.Key()]) {
				return
			}
		}
	}
}

func (lm *LanguageModel) Count(g Ngram) int { return lm.counts[g.Key()] }

func (lm *LanguageModel) WindowSize() int { return lm.n }

func (lm *LanguageModel) Chars() bool { return lm.chars }

func (lm *LanguageModel) TotalTokenCount() int { return lm.vocab.total }

// Vocabulary exposes the token frequencies without mutation rights.
func (lm *LanguageModel) Vocabulary() Vocabulary { return lm.vocab }
