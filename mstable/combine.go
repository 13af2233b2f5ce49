package mstable

import (
	"fmt"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// CombineHorizontal stacks the sample columns of several tables that share
// the same row index, then collapses any column names the stacking
// duplicated. This is how multiple batches of the same assay are merged.
func CombineHorizontal(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, pfx.Err(ErrEmptyTable)
	}

	first := tables[0]
	out := &Table{
		IndexName: first.IndexName,
		Index:     first.Index,
		Data:      make([][]null.Float, len(first.Index)),
	}

	for n, t := range tables {
		if err := sameIndex(first, t); err != nil {
			return nil, pfx.Err(fmt.Errorf("table %d: %w", n, err))
		}
		out.Cols = append(out.Cols, t.Cols...)
		for i := range t.Data {
			out.Data[i] = append(out.Data[i], t.Data[i]...)
		}
	}

	return CollapseColumns(out), nil
}

// CombineVertical stacks the rows of several tables that share the same
// sample columns, then collapses any identifiers the stacking duplicated.
// This is how a protein-level table and a PTM-level table of the same
// cohort become one matrix; the result is keyed as Hugo_Symbol.
func CombineVertical(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, pfx.Err(ErrEmptyTable)
	}

	first := tables[0]
	out := &Table{
		IndexName: "Hugo_Symbol",
		Cols:      first.Cols,
	}

	for n, t := range tables {
		if err := sameCols(first, t); err != nil {
			return nil, pfx.Err(fmt.Errorf("table %d: %w", n, err))
		}
		out.Index = append(out.Index, t.Index...)
		out.Data = append(out.Data, t.Data...)
	}

	return CollapseRows(out), nil
}

func sameIndex(a, b *Table) error {
	if len(a.Index) != len(b.Index) {
		return fmt.Errorf("mstable: row count mismatch (%d vs %d)", len(a.Index), len(b.Index))
	}
	for i := range a.Index {
		if a.Index[i] != b.Index[i] {
			return fmt.Errorf("mstable: row identifier mismatch at %d (%q vs %q)", i, a.Index[i], b.Index[i])
		}
	}

	return nil
}

func sameCols(a, b *Table) error {
	if len(a.Cols) != len(b.Cols) {
		return fmt.Errorf("mstable: column count mismatch (%d vs %d)", len(a.Cols), len(b.Cols))
	}
	for i := range a.Cols {
		if a.Cols[i] != b.Cols[i] {
			return fmt.Errorf("mstable: column mismatch at %d (%q vs %q)", i, a.Cols[i], b.Cols[i])
		}
	}

	return nil
}
