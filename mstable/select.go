package mstable

import (
	"fmt"
	"regexp"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// CompileSample compiles a sample-column expression so that it matches from
// the start of the column name without requiring a full-string match,
// mirroring the behavior the CPTAC and MaxQuant conventions assume.
func CompileSample(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + expr + ")")
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("sample pattern %q: %w", expr, err))
	}

	return re, nil
}

// CaptureRename returns a column renamer that extracts the given capture
// group of re from the column name and prepends prefix. Sample barcodes are
// renamed this way, e.g. "AO-A12D-01A-41 Log Ratio" to "TCGA-AO-A12D-01".
// Columns the expression cannot match are left unchanged.
func CaptureRename(re *regexp.Regexp, group int, prefix string) func(string) string {
	return func(col string) string {
		m := re.FindStringSubmatch(col)
		if m == nil || group >= len(m) {
			return col
		}

		return prefix + m[group]
	}
}

// SelectColumns builds a numeric Table from the sample columns of raw. A
// column is selected when pattern matches at the start of its name; original
// column order is preserved. The row index and its header name are supplied
// by the identifier-building step. rename, if non-nil, rewrites each
// selected column name. Selecting zero columns is an error, never an empty
// table.
func SelectColumns(raw *Raw, index []string, indexName string, pattern *regexp.Regexp, rename func(string) string) (*Table, error) {
	if len(index) != len(raw.Rows) {
		return nil, pfx.Err(fmt.Errorf("mstable: %d identifiers for %d rows", len(index), len(raw.Rows)))
	}

	var selected []int
	var cols []string
	for i, col := range raw.Cols {
		if !pattern.MatchString(col) {
			continue
		}
		selected = append(selected, i)
		if rename != nil {
			col = rename(col)
		}
		cols = append(cols, col)
	}
	if len(selected) == 0 {
		return nil, pfx.Err(fmt.Errorf("%w: pattern %q", ErrNoMatchingColumns, pattern.String()))
	}

	t := &Table{
		IndexName: indexName,
		Index:     index,
		Cols:      cols,
		Data:      make([][]null.Float, len(raw.Rows)),
	}
	for i, row := range raw.Rows {
		vals := make([]null.Float, len(selected))
		for j, c := range selected {
			vals[j] = Cell(row[c])
		}
		t.Data[i] = vals
	}

	return t, nil
}
