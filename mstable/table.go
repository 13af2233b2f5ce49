// Package mstable normalizes mass-spectrometry proteomics result tables
// (MaxQuant and CPTAC CDAP pipelines) into gene-indexed matrices suitable
// for import into cBioPortal.
package mstable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

var (
	// ErrEmptyTable indicates a table with a header but no data rows.
	ErrEmptyTable = errors.New("mstable: table has no data rows")

	// ErrMissingColumn indicates that a column the pipeline depends on is
	// absent from the input.
	ErrMissingColumn = errors.New("mstable: required column is missing")

	// ErrNoMatchingColumns indicates that the sample pattern selected zero
	// columns. This is fatal: an empty sample set would silently corrupt
	// every downstream step.
	ErrNoMatchingColumns = errors.New("mstable: sample pattern matched no columns")

	// ErrNegativeValue indicates a negative intensity fed to a calculation
	// that is only defined over non-negative linear-scale values.
	ErrNegativeValue = errors.New("mstable: negative value is out of domain")

	// ErrMissingAnnotation indicates a row whose identifier cannot be built
	// from the available annotation columns.
	ErrMissingAnnotation = errors.New("mstable: row annotation is missing or malformed")
)

// Raw is one experiment file as loaded from disk, before any normalization:
// all columns present, all cells still strings.
type Raw struct {
	Cols []string
	Rows [][]string

	colIdx map[string]int
}

// ReadRaw loads a tab-separated experiment file with a header row.
func ReadRaw(r io.Reader) (*Raw, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(records) == 0 {
		return nil, pfx.Err(ErrEmptyTable)
	}

	raw := &Raw{Cols: records[0], Rows: records[1:]}
	raw.reindex()

	return raw, nil
}

func (r *Raw) reindex() {
	r.colIdx = make(map[string]int, len(r.Cols))
	for i, col := range r.Cols {
		// First occurrence wins so that lookups are stable even when an
		// input repeats a column name.
		if _, seen := r.colIdx[col]; !seen {
			r.colIdx[col] = i
		}
	}
}

// nameLeadingIndex adopts an unnamed leading column as name. Tables written
// with a pandas-style index carry the row key in a first column whose header
// cell is empty; naming it lets the rest of the pipeline address it like any
// other column. A table that already has a column with that name is left
// alone.
func (r *Raw) nameLeadingIndex(name string) {
	if len(r.Cols) == 0 || r.Cols[0] != "" || r.HasCol(name) {
		return
	}

	r.Cols[0] = name
	r.reindex()
}

// Col returns the position of the first column with the given name.
func (r *Raw) Col(name string) (int, bool) {
	i, ok := r.colIdx[name]
	return i, ok
}

// HasCol reports whether a column with the given name exists.
func (r *Raw) HasCol(name string) bool {
	_, ok := r.colIdx[name]
	return ok
}

// RequireColumns confirms that the table is nonempty and that every named
// column is present.
func (r *Raw) RequireColumns(names ...string) error {
	if len(r.Rows) == 0 {
		return pfx.Err(ErrEmptyTable)
	}

	for _, name := range names {
		if !r.HasCol(name) {
			return pfx.Err(fmt.Errorf("%w: %q", ErrMissingColumn, name))
		}
	}

	return nil
}

// Table is a numeric matrix keyed by composite row identifiers of the form
// GENE|GENE or GENE|GENE_<ptm site>. Identifiers and column names are not
// necessarily unique until the table has passed through CollapseRows or
// CollapseColumns.
type Table struct {
	IndexName string
	Index     []string
	Cols      []string
	Data      [][]null.Float
}

// Cell parses a raw cell into a numeric value. Unparseable, infinite, and
// NaN inputs all become the missing value.
func Cell(s string) null.Float {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return null.NewFloat(0, false)
	}

	return finite(v)
}

// finite maps non-finite values to the missing value so that no Inf or NaN
// survives into downstream arithmetic.
func finite(v float64) null.Float {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return null.NewFloat(0, false)
	}

	return null.FloatFrom(v)
}

// Gene returns the group key of a composite row identifier (the text before
// the first '|').
func Gene(id string) string {
	for i := 0; i < len(id); i++ {
		if id[i] == '|' {
			return id[:i]
		}
	}

	return id
}

// WriteTSV serializes the table as tab-separated text with a leading
// identifier column. Missing values are written as fill (conventionally ""
// or "0"). If entrez is non-nil, an Entrez_Gene_Id column resolved from the
// row's gene symbol is inserted after the identifier; unresolvable genes are
// written as NA.
func (t *Table) WriteTSV(w io.Writer, fill string, entrez func(gene string) (string, bool)) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	header := make([]string, 0, len(t.Cols)+2)
	header = append(header, t.IndexName)
	if entrez != nil {
		header = append(header, "Entrez_Gene_Id")
	}
	header = append(header, t.Cols...)
	if err := cw.Write(header); err != nil {
		return pfx.Err(err)
	}

	for i, id := range t.Index {
		line := make([]string, 0, len(header))
		line = append(line, id)
		if entrez != nil {
			e, ok := entrez(Gene(id))
			if !ok {
				e = "NA"
			}
			line = append(line, e)
		}
		for _, v := range t.Data[i] {
			if !v.Valid {
				line = append(line, fill)
				continue
			}
			line = append(line, strconv.FormatFloat(v.Float64, 'g', -1, 64))
		}
		if err := cw.Write(line); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()

	return pfx.Err(cw.Error())
}
