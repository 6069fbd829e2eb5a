// Package channel implements the error side of the noisy channel: classifying
// the edit between a typed token and a candidate, extracting its two
// character signature and scoring it against observed error counts.
package channel

import (
	"errors"
	"fmt"
)

// ErrorKind is the elementary edit that turned the intended word into the
// typed token.
type ErrorKind int

const (
	Insertion ErrorKind = iota // typed token has an extra character
	Deletion                   // typed token lost a character
	Substitution
	Transposition
)

var ErrUnknownErrorKind = errors.New("unknown error kind")

var kindNames = [...]string{
	Insertion:     "insertion",
	Deletion:      "deletion",
	Substitution:  "substitution",
	Transposition: "transposition",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

func Kinds() []ErrorKind {
	return []ErrorKind{Insertion, Deletion, Substitution, Transposition}
}

func ParseErrorKind(s string) (ErrorKind, error) {
	for i, name := range kindNames {
		if name == s {
			return ErrorKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownErrorKind, s)
}
