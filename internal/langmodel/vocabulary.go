package langmodel

import (
	"iter"
	"maps"
)

// Vocabulary is a read-only view of the token frequencies of a built model.
type Vocabulary struct {
	freq  map[string]int
	total int
}

func (v Vocabulary) Frequency(token string) int { return v.freq[token] }

func (v Vocabulary) Contains(token string) bool {
	_, ok := v.freq[token]
	return ok
}

// Total is the total token count, the sum of all frequencies.
func (v Vocabulary) Total() int { return v.total }

func (v Vocabulary) Len() int { return len(v.freq) }

func (v Vocabulary) All() iter.Seq2[string, int] { return maps.All(v.freq) }
