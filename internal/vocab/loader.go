// Package vocab loads vocabulary files into model entries. Supported
// formats: JSON (structured set with metadata), CSV (word,definition,...),
// TXT (one word per line) and XLSX spreadsheets.
package vocab

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/junyi/vocabflash/internal/logger"
	"github.com/junyi/vocabflash/internal/models"
)

// SetMeta describes a JSON vocabulary set.
type SetMeta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Version     string `json:"version"`
}

// Set is the JSON vocabulary file layout.
type Set struct {
	Meta  SetMeta `json:"meta"`
	Words []Entry `json:"words"`
}

// Entry is one word as it appears in a vocabulary file.
type Entry struct {
	Word       string `json:"word"`
	Phonetic   string `json:"phonetic"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Difficulty int    `json:"difficulty"`
	Frequency  int    `json:"frequency"`
	Category   string `json:"category"`
}

// Result carries the parsed entries plus per-row problems. A row error does
// not abort the load; the row is skipped.
type Result struct {
	Words     []models.Vocabulary
	RowErrors []string
}

// Loader reads vocabulary files from a base directory. Relative paths
// resolve against the directory; absolute paths are used as-is.
type Loader struct {
	dir string
	log *logger.Logger
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir: dir,
		log: logger.Default().WithPrefix("vocab"),
	}
}

// Load parses a vocabulary file, dispatching on the file extension.
func (l *Loader) Load(path string) (*Result, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dir, path)
	}

	l.log.Debug("loading vocabulary file: %s", path)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return l.loadJSON(path)
	case ".csv":
		return l.loadCSV(path)
	case ".txt":
		return l.loadTXT(path)
	case ".xlsx":
		return l.loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported vocabulary format: %s", filepath.Ext(path))
	}
}

func (l *Loader) loadJSON(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	res := NormalizeSet(&set)
	l.log.Info("loaded %d words from %s (%d rejected)", len(res.Words), filepath.Base(path), len(res.RowErrors))
	return res, nil
}

// loadCSV expects columns: word, definition, phonetic, example, difficulty,
// frequency, category. Only the first two are required; a header row is
// detected and skipped.
func (l *Loader) loadCSV(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	res := &Result{}
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "word") {
			continue
		}

		e := Entry{Word: field(row, 0), Definition: field(row, 1), Phonetic: field(row, 2), Example: field(row, 3), Category: field(row, 6)}
		e.Difficulty = atoiOr(field(row, 4), 1)
		e.Frequency = atoiOr(field(row, 5), 1)

		v, err := normalize(e)
		if err != nil {
			res.RowErrors = append(res.RowErrors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		res.Words = append(res.Words, v)
	}

	l.log.Info("loaded %d words from %s (%d rejected)", len(res.Words), filepath.Base(path), len(res.RowErrors))
	return res, nil
}

// loadTXT reads one word per line with no definitions; entries get a
// placeholder definition so they can be edited later.
func (l *Loader) loadTXT(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, line := range strings.Split(string(data), "\n") {
		word := strings.TrimSpace(line)
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		res.Words = append(res.Words, models.Vocabulary{
			Word:       word,
			Definition: "(no definition)",
			Difficulty: 1,
			Frequency:  1,
		})
	}

	l.log.Info("loaded %d words from %s", len(res.Words), filepath.Base(path))
	return res, nil
}

// loadXLSX reads the first sheet with the same column layout as CSV.
func (l *Loader) loadXLSX(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	res := &Result{}
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "word") {
			continue
		}

		e := Entry{Word: field(row, 0), Definition: field(row, 1), Phonetic: field(row, 2), Example: field(row, 3), Category: field(row, 6)}
		e.Difficulty = atoiOr(field(row, 4), 1)
		e.Frequency = atoiOr(field(row, 5), 1)

		v, err := normalize(e)
		if err != nil {
			res.RowErrors = append(res.RowErrors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		res.Words = append(res.Words, v)
	}

	l.log.Info("loaded %d words from %s (%d rejected)", len(res.Words), filepath.Base(path), len(res.RowErrors))
	return res, nil
}

// NormalizeSet validates an already-parsed set, for example one fetched from
// a remote source rather than a local file.
func NormalizeSet(set *Set) *Result {
	res := &Result{}
	for i, e := range set.Words {
		v, err := normalize(e)
		if err != nil {
			res.RowErrors = append(res.RowErrors, fmt.Sprintf("word %d: %v", i+1, err))
			continue
		}
		res.Words = append(res.Words, v)
	}
	return res
}

// normalize validates required fields and clamps numeric ones.
func normalize(e Entry) (models.Vocabulary, error) {
	word := strings.TrimSpace(e.Word)
	definition := strings.TrimSpace(e.Definition)
	if word == "" {
		return models.Vocabulary{}, fmt.Errorf("missing word")
	}
	if definition == "" {
		return models.Vocabulary{}, fmt.Errorf("missing definition for %q", word)
	}

	frequency := e.Frequency
	if frequency < 1 {
		frequency = 1
	}

	return models.Vocabulary{
		Word:       word,
		Phonetic:   strings.TrimSpace(e.Phonetic),
		Definition: definition,
		Example:    strings.TrimSpace(e.Example),
		Difficulty: models.ClampDifficulty(e.Difficulty),
		Frequency:  frequency,
		Category:   strings.TrimSpace(e.Category),
	}, nil
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return def
}
