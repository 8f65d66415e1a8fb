package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/errs"

	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/sweep"
	"github.com/san-kum/parallax/internal/transform"
)

var Error = errs.Class("storage")

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return Error.Wrap(os.MkdirAll(s.baseDir, 0755))
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Timestamp time.Time          `json:"timestamp"`
	From      float64            `json:"from"`
	To        float64            `json:"to"`
	Step      float64            `json:"step"`
	Pointer   input.Pointer      `json:"pointer"`
	Frames    int                `json:"frames"`
	Columns   []string           `json:"columns"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Table is a sweep flattened to one column per element term.
type Table struct {
	Columns []string
	Offsets []float64
	Values  [][]float64
}

// Column returns the values of the named "<element>.<term>" column.
func (t *Table) Column(name string) ([]float64, bool) {
	for i, c := range t.Columns {
		if c == name {
			return t.Values[i], true
		}
	}
	return nil, false
}

func ColumnName(id string, term transform.Term) string {
	return id + "." + term.String()
}

// SplitColumn is the inverse of ColumnName.
func SplitColumn(name string) (string, transform.Term, error) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return "", 0, Error.New("malformed column: %q", name)
	}
	term, err := transform.ParseTerm(name[i+1:])
	if err != nil {
		return "", 0, Error.Wrap(err)
	}
	return name[:i], term, nil
}

// Tabulate keeps, per element, every term present in at least one frame.
func Tabulate(r *sweep.Result) *Table {
	t := &Table{Offsets: r.Offsets}
	for _, id := range r.IDs() {
		var has transform.Term
		for _, f := range r.Frames {
			if d, ok := f.Lookup(id); ok {
				has |= d.Has
			}
		}
		for _, term := range transform.Terms() {
			if has&term == 0 {
				continue
			}
			col := make([]float64, len(r.Frames))
			for i, f := range r.Frames {
				d, _ := f.Lookup(id)
				col[i] = d.Value(term)
			}
			t.Columns = append(t.Columns, ColumnName(id, term))
			t.Values = append(t.Values, col)
		}
	}
	return t
}

// Save writes a run directory holding metadata.json and frames.csv. A
// partially written directory is removed when any step fails.
func (s *Store) Save(r *sweep.Result) (_ string, err error) {
	runID := fmt.Sprintf("%s_%d", RunPrefix(r.Scene), time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", Error.Wrap(err)
	}
	defer func() {
		if err != nil {
			_ = os.RemoveAll(runDir)
		}
	}()

	table := Tabulate(r)
	meta := RunMetadata{
		ID:        runID,
		Scene:     r.Scene,
		Timestamp: time.Now(),
		From:      r.Config.From,
		To:        r.Config.To,
		Step:      r.Config.Step,
		Pointer:   r.Config.Pointer,
		Frames:    len(r.Frames),
		Columns:   table.Columns,
		Metrics:   r.Metrics,
	}

	err = writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return Error.Wrap(enc.Encode(meta))
	})
	if err != nil {
		return "", err
	}
	err = writeFile(filepath.Join(runDir, framesFile), func(w io.Writer) error {
		return WriteCSV(w, table)
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

// RunPrefix reduces a scene name to letters, digits, '-' and '_' so a run
// ID always names a single directory under the store.
func RunPrefix(scene string) string {
	prefix := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, scene)
	if strings.Trim(prefix, "_") == "" {
		return "run"
	}
	return prefix
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, Error.Wrap(f.Close())) }()
	return write(f)
}

// WriteCSV writes the offset column followed by every table column.
func WriteCSV(out io.Writer, t *Table) error {
	w := csv.NewWriter(out)

	header := append([]string{"offset"}, t.Columns...)
	if err := w.Write(header); err != nil {
		return Error.Wrap(err)
	}
	for i, off := range t.Offsets {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(off, 'f', -1, 64))
		for _, col := range t.Values {
			row = append(row, strconv.FormatFloat(col[i], 'f', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return Error.Wrap(err)
		}
	}
	w.Flush()
	return Error.Wrap(w.Error())
}

// List returns saved runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, Error.Wrap(err)
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, Error.Wrap(err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, Error.Wrap(err)
	}
	return &meta, nil
}

func (s *Store) LoadTable(runID string) (*Table, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer file.Close()

	return ReadCSV(file)
}

func ReadCSV(in io.Reader) (*Table, error) {
	r := csv.NewReader(in)
	records, err := r.ReadAll()
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if len(records) == 0 {
		return nil, Error.New("empty frames file")
	}

	header := records[0]
	if len(header) == 0 || header[0] != "offset" {
		return nil, Error.New("frames file must start with an offset column")
	}
	t := &Table{
		Columns: header[1:],
		Offsets: make([]float64, 0, len(records)-1),
		Values:  make([][]float64, len(header)-1),
	}
	for _, rec := range records[1:] {
		vals := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, Error.New("bad value %q in column %s", field, header[j])
			}
			vals[j] = v
		}
		t.Offsets = append(t.Offsets, vals[0])
		for j := range t.Columns {
			t.Values[j] = append(t.Values[j], vals[j+1])
		}
	}
	return t, nil
}
