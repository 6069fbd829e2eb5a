// Package corrector finds the most likely correction of a text under a noisy
// channel model: a language model prices the intended words and error tables
// price the typos that produced the observed ones.
package corrector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"

	"spellchecker/internal/candidates"
	"spellchecker/internal/channel"
	"spellchecker/internal/customdict"
	"spellchecker/internal/langmodel"
	"spellchecker/internal/textproc"
)

var ErrNoLanguageModel = errors.New("no language model set")

type Tokenizer interface {
	Tokenize(text string) []string
}

type Normalizer interface {
	Normalize(text string) string
}

// SpellChecker holds a language model and error tables, both replaceable.
// Checking a text does not modify either.
type SpellChecker struct {
	config     Config
	tokenizer  Tokenizer
	normalizer Normalizer

	mu          sync.RWMutex
	lm          *langmodel.LanguageModel
	tables      *channel.ErrorTables
	customWords map[string]bool
	dict        *customdict.CustomDict
}

func New(cfg Config, lm *langmodel.LanguageModel) *SpellChecker {
	return &SpellChecker{
		config:      cfg,
		tokenizer:   textproc.WordTokenizer{},
		normalizer:  textproc.NewNormalizer(),
		lm:          lm,
		customWords: make(map[string]bool),
	}
}

// SetLanguageModel replaces the language model.
func (sc *SpellChecker) SetLanguageModel(lm *langmodel.LanguageModel) {
	sc.mu.Lock()
	sc.lm = lm
	sc.mu.Unlock()
}

// SetErrorTables replaces the error tables. Nil tables count no errors.
func (sc *SpellChecker) SetErrorTables(tables *channel.ErrorTables) {
	sc.mu.Lock()
	sc.tables = tables
	sc.mu.Unlock()
}

func (sc *SpellChecker) SetTokenizer(t Tokenizer) {
	sc.mu.Lock()
	sc.tokenizer = t
	sc.mu.Unlock()
}

func (sc *SpellChecker) SetNormalizer(n Normalizer) {
	sc.mu.Lock()
	sc.normalizer = n
	sc.mu.Unlock()
}

func (sc *SpellChecker) LanguageModel() *langmodel.LanguageModel {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.lm
}

// EvaluateText returns the language model log-likelihood of text.
func (sc *SpellChecker) EvaluateText(text string) (float64, error) {
	lm := sc.LanguageModel()
	if lm == nil {
		return 0, ErrNoLanguageModel
	}
	return lm.EvaluateText(text), nil
}

// SpellCheck returns the most probable correction of text. alpha is the
// probability of keeping a lexical word as typed.
func (sc *SpellChecker) SpellCheck(text string, alpha float64, normalize bool) (string, error) {
	res, err := sc.CorrectText(text, alpha, normalize)
	if err != nil {
		return "", err
	}
	return res.Corrected, nil
}

type checkState struct {
	tokenizer  Tokenizer
	normalizer Normalizer

	vocab   langmodel.Vocabulary
	gen     *candidates.Generator
	scorer  *channel.Scorer
	custom  map[string]bool
	alpha   float64
	prior   bool
	topK    int
	caseFix bool
}

func (sc *SpellChecker) state(alpha float64) (*checkState, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.lm == nil {
		return nil, ErrNoLanguageModel
	}
	vocab := sc.lm.Vocabulary()
	return &checkState{
		tokenizer:  sc.tokenizer,
		normalizer: sc.normalizer,
		vocab:      vocab,
		gen:        candidates.NewGenerator(vocab),
		scorer:     channel.NewScorer(vocab, sc.tables),
		custom:     sc.customWords,
		alpha:      alpha,
		prior:      sc.config.UniformPrior,
		topK:       sc.config.TopKSuggestions,
		caseFix:    sc.config.PreserveCase,
	}, nil
}

// CorrectText is SpellCheck with the decision taken for every token.
func (sc *SpellChecker) CorrectText(text string, alpha float64, normalize bool) (CorrectionResult, error) {
	res := CorrectionResult{Original: text}
	st, err := sc.state(alpha)
	if err != nil {
		return res, err
	}
	if normalize {
		text = st.normalizer.Normalize(text)
	}

	tokens := st.tokenizer.Tokenize(text)
	out := make([]string, 0, len(tokens))
	res.Tokens = make([]TokenCorrection, 0, len(tokens))
	for _, tok := range tokens {
		tc, err := st.correctToken(tok)
		if err != nil {
			return res, fmt.Errorf("correct %q: %w", tok, err)
		}
		out = append(out, tc.Corrected)
		res.Tokens = append(res.Tokens, tc)
	}
	res.Corrected = strings.Join(out, " ")
	return res, nil
}

func (st *checkState) correctToken(token string) (TokenCorrection, error) {
	tc := TokenCorrection{Token: token, Corrected: token, Tier: TierKept}
	word := token
	if st.caseFix {
		word = strings.ToLower(token)
	}
	if textproc.IsPunctuationOrNumber(token) || st.vocab.Contains(word) || st.custom[strings.ToLower(token)] {
		return tc, nil
	}

	var scored []Candidate
	if known := st.gen.KnownEdits1(word); known.Cardinality() > 0 {
		tc.Tier = TierEdits1
		scored = st.frequencyScores(word, candidates.Sorted(known))
	} else if known := st.gen.KnownEdits2(word); known.Cardinality() > 0 {
		tc.Tier = TierEdits2
		scored = st.frequencyScores(word, candidates.Sorted(known))
	} else {
		// the pool is the same known edits2, empty by now
		var err error
		tc.Tier = TierNoisyChannel
		scored, err = st.channelScores(word, candidates.Sorted(known))
		if err != nil {
			return tc, err
		}
	}
	if len(scored) == 0 {
		tc.Tier = TierUnresolved
		return tc, nil
	}

	best := argmax(scored)
	tc.Corrected = best.Term
	if st.caseFix {
		tc.Corrected = restoreCase(token, best.Term)
	}
	tc.Edits = best.Edits
	tc.Suggestions = topK(scored, st.topK)
	return tc, nil
}

// frequencyScores prices each candidate by its relative frequency; the typed
// word itself scores at least alpha.
func (st *checkState) frequencyScores(word string, pool []string) []Candidate {
	total := float64(st.vocab.Total())
	scored := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		score := 0.0
		if total > 0 {
			score = float64(st.vocab.Frequency(c)) / total
		}
		if c == word {
			score = math.Max(st.alpha, score)
		}
		scored = append(scored, Candidate{Term: c, Score: score, Edits: editDistance(word, c)})
	}
	return scored
}

// channelScores prices each candidate with the noisy channel; the typed word
// itself scores log(alpha).
func (st *checkState) channelScores(word string, pool []string) ([]Candidate, error) {
	scored := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		var score float64
		if c == word {
			score = math.Log(st.alpha)
		} else {
			lp, err := st.scorer.LogProbability(c, word)
			if err != nil {
				return nil, err
			}
			score = lp
			if st.prior {
				score += math.Log((1 - st.alpha) / float64(len(pool)))
			}
		}
		scored = append(scored, Candidate{Term: c, Score: score, Edits: editDistance(word, c)})
	}
	return scored, nil
}

// Suggest ranks the known words within two edits of token by noisy channel
// score and returns the best k. k <= 0 uses the configured TopKSuggestions.
func (sc *SpellChecker) Suggest(token string, alpha float64, k int) ([]Candidate, error) {
	st, err := sc.state(alpha)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = st.topK
	}
	word := token
	if st.caseFix {
		word = strings.ToLower(token)
	}
	pool := st.gen.KnownEdits1(word).Union(st.gen.KnownEdits2(word))
	if st.vocab.Contains(word) {
		pool.Add(word)
	}
	scored, err := st.channelScores(word, candidates.Sorted(pool))
	if err != nil {
		return nil, err
	}
	return topK(scored, k), nil
}

// UseCustomDict loads the words of dict and keeps dict for later updates.
func (sc *SpellChecker) UseCustomDict(ctx context.Context, dict *customdict.CustomDict) error {
	words, err := dict.All(ctx)
	if err != nil {
		return fmt.Errorf("load custom words: %w", err)
	}
	custom := make(map[string]bool, len(words))
	for _, w := range words {
		custom[strings.ToLower(w)] = true
	}
	sc.mu.Lock()
	sc.dict = dict
	sc.customWords = custom
	sc.mu.Unlock()
	log.Printf("[spellcheck] loaded %d custom words", len(words))
	return nil
}

// AddCustomWord adds a word that is never corrected, persisting it when a
// custom dictionary is attached.
func (sc *SpellChecker) AddCustomWord(ctx context.Context, word string) error {
	lw := strings.ToLower(word)
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.dict != nil {
		if err := sc.dict.Add(ctx, lw); err != nil {
			return err
		}
	}
	custom := make(map[string]bool, len(sc.customWords)+1)
	for w := range sc.customWords {
		custom[w] = true
	}
	custom[lw] = true
	sc.customWords = custom
	return nil
}

// RemoveCustomWord removes a custom word from memory and the attached store.
func (sc *SpellChecker) RemoveCustomWord(ctx context.Context, word string) error {
	lw := strings.ToLower(word)
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.dict != nil {
		if err := sc.dict.Remove(ctx, lw); err != nil {
			return err
		}
	}
	custom := make(map[string]bool, len(sc.customWords))
	for w := range sc.customWords {
		if w != lw {
			custom[w] = true
		}
	}
	sc.customWords = custom
	return nil
}
