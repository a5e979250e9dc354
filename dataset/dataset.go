// Package dataset loads delimited text tables into index-labeled,
// column-oriented form and provides the slicing operations the analysis
// layer needs: column selection, column-wise concatenation of two sources,
// row subsetting by index label, and mean-normalization.
//
// Tables are backed by go-gota dataframes; this package owns the row-index
// semantics (the first file column) which gota itself does not model.
package dataset

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Options controls how a delimited file is read.
type Options struct {
	// Delimiter for the file. If 0, inferred from the extension
	// (.tsv reads as tab-separated) and defaults to comma.
	Delimiter rune
}

// Table is an ordered collection of named float columns plus a row index
// of unique labels taken from the file's first column.
type Table struct {
	df        dataframe.DataFrame
	index     []string
	indexName string
}

// Load reads a delimited file with a header row into a Table. The first
// column becomes the row index; every remaining column is a data column.
// Duplicate index labels are rejected since they would make row selection
// ambiguous.
func Load(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	df := dataframe.ReadCSV(f,
		dataframe.WithDelimiter(delim),
		dataframe.HasHeader(true),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, df.Err)
	}
	names := df.Names()
	if len(names) < 2 {
		return nil, fmt.Errorf("table %s needs an index column and at least one data column", path)
	}

	indexName := names[0]
	labels := df.Col(indexName).Records()
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			return nil, fmt.Errorf("table %s: duplicate row label %q", path, l)
		}
		seen[l] = struct{}{}
	}

	data := df.Select(names[1:])
	if data.Err != nil {
		return nil, fmt.Errorf("select data columns: %w", data.Err)
	}
	return &Table{df: data, index: labels, indexName: indexName}, nil
}

// sniffDelimiter picks a delimiter from the filename; tab for .tsv,
// comma otherwise.
func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// Columns returns the ordered data column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.df.Names()...)
}

// Index returns the ordered row labels.
func (t *Table) Index() []string {
	return append([]string(nil), t.index...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.df.Nrow() }

// Require verifies that every named column exists.
func (t *Table) Require(names ...string) error {
	have := make(map[string]struct{}, t.df.Ncol())
	for _, n := range t.df.Names() {
		have[n] = struct{}{}
	}
	for _, n := range names {
		if _, ok := have[n]; !ok {
			return &MissingKeyError{Kind: "column", Key: n}
		}
	}
	return nil
}

// Column returns the named column as float64 values. Non-numeric cells
// surface as NaN, which downstream variance checks reject explicitly.
func (t *Table) Column(name string) ([]float64, error) {
	if err := t.Require(name); err != nil {
		return nil, err
	}
	return t.df.Col(name).Float(), nil
}

// Concat merges the columns of b onto a. The two tables must carry the
// same row index in the same order, and must not share column names.
func Concat(a, b *Table) (*Table, error) {
	if len(a.index) != len(b.index) {
		return nil, &IndexMismatchError{
			Reason: fmt.Sprintf("%d rows vs %d rows", len(a.index), len(b.index)),
		}
	}
	for i := range a.index {
		if a.index[i] != b.index[i] {
			return nil, &IndexMismatchError{
				Reason: fmt.Sprintf("label %q vs %q at row %d", a.index[i], b.index[i], i),
			}
		}
	}
	have := make(map[string]struct{})
	for _, n := range a.df.Names() {
		have[n] = struct{}{}
	}
	for _, n := range b.df.Names() {
		if _, dup := have[n]; dup {
			return nil, fmt.Errorf("column %q present in both sources", n)
		}
	}
	merged := a.df.CBind(b.df)
	if merged.Err != nil {
		return nil, fmt.Errorf("concat tables: %w", merged.Err)
	}
	return &Table{df: merged, index: a.Index(), indexName: a.indexName}, nil
}

// SelectRows reduces the table to the given index labels, in the given
// order. Every label must exist.
func (t *Table) SelectRows(labels []string) error {
	pos := make(map[string]int, len(t.index))
	for i, l := range t.index {
		pos[l] = i
	}
	idxs := make([]int, len(labels))
	for i, l := range labels {
		p, ok := pos[l]
		if !ok {
			return &MissingKeyError{Kind: "row", Key: l}
		}
		idxs[i] = p
	}
	sub := t.df.Subset(idxs)
	if sub.Err != nil {
		return fmt.Errorf("select rows: %w", sub.Err)
	}
	t.df = sub
	t.index = append([]string(nil), labels...)
	return nil
}

// Normalize divides every value in each named column by that column's
// mean, a simple scale-invariance transform. A zero or NaN mean aborts
// with a DegenerateColumnError rather than spreading Inf/NaN through the
// statistics downstream.
func (t *Table) Normalize(cols []string) error {
	for _, name := range cols {
		vals, err := t.Column(name)
		if err != nil {
			return err
		}
		mean := 0.0
		for _, v := range vals {
			mean += v
		}
		mean /= float64(len(vals))
		if mean == 0 {
			return &DegenerateColumnError{Column: name, Reason: "zero mean under normalization"}
		}
		if mean != mean {
			return &DegenerateColumnError{Column: name, Reason: "mean is NaN (non-numeric or missing values)"}
		}
		scaled := make([]float64, len(vals))
		for i, v := range vals {
			scaled[i] = v / mean
		}
		mutated := t.df.Mutate(series.New(scaled, series.Float, name))
		if mutated.Err != nil {
			return fmt.Errorf("normalize %q: %w", name, mutated.Err)
		}
		t.df = mutated
	}
	return nil
}
