package candidates

import (
	"iter"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Vocabulary reports whether a token was observed by the language model.
type Vocabulary interface {
	Contains(token string) bool
}

type Generator struct {
	vocab Vocabulary
}

func NewGenerator(vocab Vocabulary) *Generator {
	return &Generator{vocab: vocab}
}

// Known keeps the words present in the vocabulary.
func (g *Generator) Known(words iter.Seq[string]) mapset.Set[string] {
	known := mapset.NewThreadUnsafeSet[string]()
	for w := range words {
		if g.vocab.Contains(w) {
			known.Add(w)
		}
	}
	return known
}

// KnownEdits1 is Known over Edits1(word).
func (g *Generator) KnownEdits1(word string) mapset.Set[string] {
	return g.Known(slices.Values(edits1(word)))
}

// KnownEdits2 is Known over Edits2(word).
func (g *Generator) KnownEdits2(word string) mapset.Set[string] {
	return g.Known(Edits2(word))
}

// Candidates is the first tier pool: the word itself when known, its known
// single edits, and the literal word.
func (g *Generator) Candidates(word string) mapset.Set[string] {
	pool := g.Known(slices.Values([]string{word}))
	pool = pool.Union(g.KnownEdits1(word))
	pool.Add(word)
	return pool
}

// Sorted returns the elements of s in lexical order.
func Sorted(s mapset.Set[string]) []string {
	out := s.ToSlice()
	slices.Sort(out)
	return out
}
