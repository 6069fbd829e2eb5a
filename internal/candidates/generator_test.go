package candidates

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

type vocab map[string]int

func (v vocab) Contains(token string) bool {
	_, ok := v[token]
	return ok
}

func TestKnown(t *testing.T) {
	g := NewGenerator(vocab{"cat": 3, "act": 1})
	got := g.Known(slices.Values([]string{"cat", "dog", "act", "cat"}))
	assert.Equal(t, []string{"act", "cat"}, Sorted(got))
}

func TestKnownEdits(t *testing.T) {
	g := NewGenerator(vocab{"spelling": 1, "spell": 1, "the": 1})

	assert.Equal(t, []string{"spelling"}, Sorted(g.KnownEdits1("speling")))
	assert.Equal(t, []string{"spelling"}, Sorted(g.KnownEdits2("spling")))
	assert.Equal(t, 0, g.KnownEdits1("spling").Cardinality())
}

func TestCandidates(t *testing.T) {
	g := NewGenerator(vocab{"cat": 1, "bat": 1, "cart": 1})

	assert.Equal(t, []string{"bat", "cart", "cat"}, Sorted(g.Candidates("cat")))
	assert.Equal(t, []string{"bat", "cat", "xat"}, Sorted(g.Candidates("xat")))
	assert.Equal(t, []string{"zzzz"}, Sorted(g.Candidates("zzzz")))
}
