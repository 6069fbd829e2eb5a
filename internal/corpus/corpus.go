// Package corpus reads training text from disk.
package corpus

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Load returns the content of the file at path. The file is memory-mapped
// and copied out once, so large corpora are not read through a buffer.
func Load(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat corpus: %w", err)
	}
	if info.Size() == 0 {
		// zero length files cannot be mapped
		return "", nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return "", fmt.Errorf("map corpus: %w", err)
	}
	defer m.Unmap()
	return string(m), nil
}

// Stdin is the path LoadAll reads from standard input.
const Stdin = "-"

// LoadAll concatenates several corpora, separated by newlines.
func LoadAll(paths ...string) (string, error) {
	var text []byte
	for i, p := range paths {
		var (
			s   string
			err error
		)
		if p == Stdin {
			s, err = Read(os.Stdin)
		} else {
			s, err = Load(p)
		}
		if err != nil {
			return "", err
		}
		if i > 0 {
			text = append(text, '\n')
		}
		text = append(text, s...)
	}
	return string(text), nil
}

// Read is Load for sources that are not files, such as stdin.
func Read(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read corpus: %w", err)
	}
	return string(b), nil
}
