package textproc

import (
	"regexp"
	"strings"
)

const punctuationChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var punctuations = func() map[string]bool {
	m := map[string]bool{"...": true, "--": true, "``": true, "''": true, "«": true, "»": true, "“": true, "”": true, "‘": true, "’": true, "—": true, "–": true}
	for _, r := range punctuationChars {
		m[string(r)] = true
	}
	return m
}()

var numberRe = regexp.MustCompile(`^\p{N}+(?:[.,]\p{N}+)*$`)

func IsPunctuation(token string) bool { return punctuations[token] }

func IsNumber(token string) bool { return numberRe.MatchString(token) }

// IsPunctuationOrNumber reports tokens the spell checker never corrects.
func IsPunctuationOrNumber(token string) bool {
	return IsPunctuation(token) || IsNumber(strings.TrimPrefix(token, "-"))
}
