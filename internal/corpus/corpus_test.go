package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "big.txt", "the cat sat\non the mat\n")
	text, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "the cat sat\non the mat\n", text)
}

func TestLoadEmpty(t *testing.T) {
	text, err := Load(writeFile(t, "empty.txt", ""))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAll(t *testing.T) {
	a := writeFile(t, "a.txt", "one two")
	b := writeFile(t, "b.txt", "three")
	text, err := LoadAll(a, b)
	require.NoError(t, err)
	assert.Equal(t, "one two\nthree", text)
}

func TestRead(t *testing.T) {
	text, err := Read(strings.NewReader("from a reader"))
	require.NoError(t, err)
	assert.Equal(t, "from a reader", text)
}
