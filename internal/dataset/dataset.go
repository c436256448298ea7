package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrEmpty is returned when the input holds no header row once comments are removed.
	ErrEmpty = errors.New("no columns to parse from file")
	// ErrRagged is returned when a data row has more fields than the header.
	ErrRagged = errors.New("row has more fields than header")
)

// CommentMarker starts a comment that runs to the end of the line.
const CommentMarker = '#'

// Dataset is a fully materialized table of named columns.
type Dataset struct {
	Name    string
	Columns []*Column
	Rows    int
}

// Column holds one column's cells. Values[i] is NaN when Raw[i] is empty or not a number.
type Column struct {
	Name   string
	Raw    []string
	Values []float64
}

// Load reads a delimited file from disk. The delimiter is ',' unless the
// file name ends in .tsv.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open csv")
	}
	defer f.Close()
	return Read(f, filepath.Base(path), sniffDelimiter(path))
}

// Read parses delimited text from r. Text from an unquoted CommentMarker to
// the end of its line is dropped before parsing; lines holding only a
// comment count neither as header nor as data.
func Read(r io.Reader, name string, delim rune) (*Dataset, error) {
	body, err := stripComments(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read input")
	}

	cr := csv.NewReader(strings.NewReader(body))
	cr.FieldsPerRecord = -1
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, errors.Wrap(err, "unable to read header")
	}
	names := dedupe(header)
	if len(names) == 0 {
		return nil, ErrEmpty
	}

	ds := &Dataset{Name: name, Columns: make([]*Column, len(names))}
	for i, n := range names {
		ds.Columns[i] = &Column{Name: n}
	}

	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.Wrapf(err, "unable to read row %d", ds.Rows+1)
		}
		if len(rec) > len(names) {
			return nil, errors.Wrapf(ErrRagged, "expected %d fields in data row %d, saw %d", len(names), ds.Rows+1, len(rec))
		}
		ds.Rows++
		for j, c := range ds.Columns {
			cell := ""
			if j < len(rec) {
				cell = strings.TrimSpace(rec[j])
			}
			c.Raw = append(c.Raw, cell)
			c.Values = append(c.Values, parseNumeric(cell))
		}
	}
	return ds, nil
}

// Names returns the column names in file order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Name
	}
	return out
}

// Column looks a column up by exact name.
func (d *Dataset) Column(name string) (*Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Numeric reports whether at least one cell parsed as a number.
func (c *Column) Numeric() bool {
	for _, v := range c.Values {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Divided returns a copy of the values divided by divisor.
func (c *Column) Divided(divisor float64) []float64 {
	out := make([]float64, len(c.Values))
	for i, v := range c.Values {
		out[i] = v / divisor
	}
	return out
}

// stripComments cuts every line at the first CommentMarker outside double
// quotes and drops lines left blank by the cut. Quote state carries across
// lines so quoted fields may span them.
func stripComments(r io.Reader) (string, error) {
	var b strings.Builder
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	first, inQuote := true, false
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		startedInQuote := inQuote
		line, inQuote = cutComment(line, inQuote)
		if !startedInQuote && strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func cutComment(line string, inQuote bool) (string, bool) {
	for i, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == CommentMarker && !inQuote:
			return line[:i], false
		}
	}
	return line, inQuote
}

// dedupe trims header names and renames repeats to name.1, name.2, ...,
// skipping any candidate already taken by another column.
func dedupe(header []string) []string {
	counts := make(map[string]int, len(header))
	out := make([]string, 0, len(header))
	for _, h := range header {
		n := strings.TrimSpace(h)
		for k := counts[n]; k > 0; k = counts[n] {
			counts[n] = k + 1
			n = fmt.Sprintf("%s.%d", n, k)
		}
		counts[n]++
		out = append(out, n)
	}
	return out
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

func parseNumeric(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
