package langmodel

import (
	"slices"
	"strings"
)

// Generate samples a context uniformly among the distinct contexts of the
// model and continues it up to length tokens.
func (lm *LanguageModel) Generate(length int) string {
	if len(lm.contexts) == 0 {
		return ""
	}
	ctx := lm.contexts[lm.rng.IntN(len(lm.contexts))]
	output := slices.Clone(trimStart(ctx))
	if len(output) >= length {
		return lm.join(output[:max(length, 0)])
	}
	return lm.continueFrom(slices.Clone(ctx), output, length)
}

// GenerateFrom continues context up to length tokens. A context at least
// length tokens long is returned truncated to its first length tokens.
// Generation stops early when no ngram continues the current context.
func (lm *LanguageModel) GenerateFrom(context string, length int) string {
	tokens := Split(context, lm.chars)
	if len(tokens) >= length {
		return lm.join(tokens[:max(length, 0)])
	}
	return lm.continueFrom(lm.window(tokens), tokens, length)
}

func (lm *LanguageModel) continueFrom(window Ngram, output []string, length int) string {
	for len(output) < length {
		conts := lm.index[window.Key()]
		if len(conts) == 0 {
			break
		}
		next := lm.sample(conts)
		output = append(output, next)
		if len(window) > 0 {
			window = append(window[1:len(window):len(window)], next)
		}
	}
	// a unigram model can draw </s> more than once
	for len(output) > 0 && output[len(output)-1] == EndMarker {
		output = output[:len(output)-1]
	}
	return lm.join(trimStart(output))
}

// window is the trailing n-1 tokens of tokens, left padded with start markers.
func (lm *LanguageModel) window(tokens []string) Ngram {
	w := make(Ngram, lm.n-1)
	for i := range w {
		j := len(tokens) - len(w) + i
		if j < 0 {
			w[i] = StartMarker
		} else {
			w[i] = tokens[j]
		}
	}
	return w
}

// sample draws one continuation weighted by count/TotalTokenCount. The weights
// are not renormalised over the candidates.
func (lm *LanguageModel) sample(conts []continuation) string {
	total := float64(lm.vocab.total)
	if total == 0 {
		total = 1
	}
	sum := 0.0
	for _, c := range conts {
		sum += float64(c.count) / total
	}
	r := lm.rng.Float64() * sum
	acc := 0.0
	for _, c := range conts {
		acc += float64(c.count) / total
		if r < acc {
			return c.token
		}
	}
	return conts[len(conts)-1].token
}

func (lm *LanguageModel) join(tokens []string) string {
	if lm.chars {
		return strings.Join(tokens, "")
	}
	return strings.Join(tokens, " ")
}

func trimStart(tokens []string) []string {
	for len(tokens) > 0 && tokens[0] == StartMarker {
		tokens = tokens[1:]
	}
	return tokens
}
