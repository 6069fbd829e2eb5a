package channel

import (
	"fmt"
	"io"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrorTables holds observed error counts per kind and signature. The zero
// value and a nil *ErrorTables count nothing.
type ErrorTables struct {
	counts [len(kindNames)]map[string]int
}

// NewTables copies raw, keyed by kind name ("insertion", "deletion",
// "substitution", "transposition").
func NewTables(raw map[string]map[string]int) (*ErrorTables, error) {
	t := &ErrorTables{}
	for name, table := range raw {
		kind, err := ParseErrorKind(name)
		if err != nil {
			return nil, err
		}
		t.counts[kind] = maps.Clone(table)
	}
	return t, nil
}

func (t *ErrorTables) Count(kind ErrorKind, signature string) int {
	if t == nil || kind < 0 || int(kind) >= len(t.counts) {
		return 0
	}
	return t.counts[kind][signature]
}

// Len is the number of signatures recorded for kind.
func (t *ErrorTables) Len(kind ErrorKind) int {
	if t == nil || kind < 0 || int(kind) >= len(t.counts) {
		return 0
	}
	return len(t.counts[kind])
}

// Raw returns a copy of the tables keyed by kind name.
func (t *ErrorTables) Raw() map[string]map[string]int {
	out := make(map[string]map[string]int)
	if t == nil {
		return out
	}
	for _, k := range Kinds() {
		if t.counts[k] != nil {
			out[k.String()] = maps.Clone(t.counts[k])
		}
	}
	return out
}

// DecodeTables reads a YAML document mapping kind names to signature counts:
//
//	deletion:
//	  ll: 6
//	substitution:
//	  yi: 15
func DecodeTables(r io.Reader) (*ErrorTables, error) {
	var raw map[string]map[string]int
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode error tables: %w", err)
	}
	return NewTables(raw)
}

func LoadTables(path string) (*ErrorTables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open error tables: %w", err)
	}
	defer f.Close()
	return DecodeTables(f)
}
