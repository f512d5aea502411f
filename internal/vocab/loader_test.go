package vocab_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junyi/vocabflash/internal/vocab"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "set.json", `{
		"meta": {"name": "basics", "level": "A2"},
		"words": [
			{"word": "  ebb  ", "phonetic": "/ɛb/", "definition": "to recede", "difficulty": 3, "frequency": 5, "category": "nature"},
			{"word": "flow", "definition": ""},
			{"word": "surge", "definition": "a sudden increase", "difficulty": 99, "frequency": 0}
		]
	}`)

	loader := vocab.NewLoader(dir)
	res, err := loader.Load("set.json")
	require.NoError(t, err)

	require.Len(t, res.Words, 2)
	assert.Equal(t, "ebb", res.Words[0].Word)
	assert.Equal(t, "/ɛb/", res.Words[0].Phonetic)
	assert.Equal(t, "nature", res.Words[0].Category)

	// Out-of-range numbers are clamped, not rejected.
	assert.Equal(t, 10, res.Words[1].Difficulty)
	assert.Equal(t, 1, res.Words[1].Frequency)

	require.Len(t, res.RowErrors, 1)
	assert.Contains(t, res.RowErrors[0], "missing definition")
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "words.csv", "word,definition,phonetic,example,difficulty,frequency,category\n"+
		"gregarious,sociable,/ɡrɪˈɡɛːrɪəs/,a gregarious host,6,12,character\n"+
		"terse,brief\n"+
		",no word here\n")

	loader := vocab.NewLoader(dir)
	res, err := loader.Load("words.csv")
	require.NoError(t, err)

	require.Len(t, res.Words, 2)
	assert.Equal(t, "gregarious", res.Words[0].Word)
	assert.Equal(t, 6, res.Words[0].Difficulty)
	assert.Equal(t, "character", res.Words[0].Category)

	// Short rows fall back to defaults for the missing columns.
	assert.Equal(t, "terse", res.Words[1].Word)
	assert.Equal(t, 1, res.Words[1].Difficulty)
	assert.Equal(t, 1, res.Words[1].Frequency)

	require.Len(t, res.RowErrors, 1)
	assert.Contains(t, res.RowErrors[0], "line 4")
}

func TestLoadTXT(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "list.txt", "# common words\nhouse\n\n  tree  \n# comment\nriver\n")

	loader := vocab.NewLoader(dir)
	res, err := loader.Load("list.txt")
	require.NoError(t, err)

	require.Len(t, res.Words, 3)
	assert.Equal(t, "house", res.Words[0].Word)
	assert.Equal(t, "tree", res.Words[1].Word)
	assert.Equal(t, "(no definition)", res.Words[0].Definition)
	assert.Empty(t, res.RowErrors)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "words.pdf", "not really a pdf")

	loader := vocab.NewLoader(dir)
	_, err := loader.Load("words.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported vocabulary format")
}

func TestLoadAbsolutePathBypassesBaseDir(t *testing.T) {
	other := t.TempDir()
	path := writeFile(t, other, "elsewhere.txt", "word\n")

	loader := vocab.NewLoader(t.TempDir())
	res, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, res.Words, 1)
}

func TestNormalizeSet(t *testing.T) {
	set := &vocab.Set{
		Words: []vocab.Entry{
			{Word: "apt", Definition: "suitable", Difficulty: -3},
			{Word: "", Definition: "nothing"},
		},
	}

	res := vocab.NormalizeSet(set)
	require.Len(t, res.Words, 1)
	assert.Equal(t, 1, res.Words[0].Difficulty)
	require.Len(t, res.RowErrors, 1)
	assert.Contains(t, res.RowErrors[0], "word 2")
}
