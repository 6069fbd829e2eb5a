// Package textproc holds the text collaborators of the spell checker: a word
// tokenizer, an optional normalizer and the punctuation and number sets.
package textproc

import "regexp"

// words with inner apostrophes, numbers with separators, ellipsis and dashes,
// any other non space symbol on its own
var tokenRe = regexp.MustCompile(`\p{L}+(?:'\p{L}+)*|\p{N}+(?:[.,]\p{N}+)*|\.\.\.|--|[^\s\p{L}\p{N}]`)

// Tokenize splits text into words, numbers and punctuation tokens.
func Tokenize(text string) []string { return tokenRe.FindAllString(text, -1) }

// WordTokenizer adapts Tokenize to the corrector.Tokenizer interface.
type WordTokenizer struct{}

func (WordTokenizer) Tokenize(text string) []string { return Tokenize(text) }
