package mstable

import (
	"github.com/montanaflynn/stats"
	"gopkg.in/guregu/null.v3"
)

// CollapseColumns merges columns that share a name into a single column
// holding the element-wise mean of the available values. Columns whose name
// occurs exactly once keep their original order; collapsed columns follow.
// A table with no duplicated column names is returned unchanged.
func CollapseColumns(t *Table) *Table {
	counts := make(map[string]int, len(t.Cols))
	for _, col := range t.Cols {
		counts[col]++
	}

	var hasDup bool
	for _, n := range counts {
		if n > 1 {
			hasDup = true
			break
		}
	}
	if !hasDup {
		return t
	}

	var singles []int
	var dupOrder []string
	dupCols := make(map[string][]int)
	for i, col := range t.Cols {
		if counts[col] == 1 {
			singles = append(singles, i)
			continue
		}
		if _, seen := dupCols[col]; !seen {
			dupOrder = append(dupOrder, col)
		}
		dupCols[col] = append(dupCols[col], i)
	}

	out := &Table{
		IndexName: t.IndexName,
		Index:     t.Index,
		Data:      make([][]null.Float, len(t.Index)),
	}
	for _, i := range singles {
		out.Cols = append(out.Cols, t.Cols[i])
	}
	out.Cols = append(out.Cols, dupOrder...)

	for r := range t.Data {
		vals := make([]null.Float, 0, len(out.Cols))
		for _, i := range singles {
			vals = append(vals, t.Data[r][i])
		}
		for _, col := range dupOrder {
			group := make([]null.Float, 0, len(dupCols[col]))
			for _, i := range dupCols[col] {
				group = append(group, t.Data[r][i])
			}
			vals = append(vals, nanMean(group))
		}
		out.Data[r] = vals
	}

	return out
}

// CollapseRows merges rows that share an identifier into a single row
// holding the element-wise mean of the available values. Rows whose
// identifier occurs exactly once keep their original order; collapsed rows
// follow. A table with no duplicated identifiers is returned unchanged.
func CollapseRows(t *Table) *Table {
	counts := make(map[string]int, len(t.Index))
	for _, id := range t.Index {
		counts[id]++
	}

	var hasDup bool
	for _, n := range counts {
		if n > 1 {
			hasDup = true
			break
		}
	}
	if !hasDup {
		return t
	}

	var singles []int
	var dupOrder []string
	dupRows := make(map[string][]int)
	for i, id := range t.Index {
		if counts[id] == 1 {
			singles = append(singles, i)
			continue
		}
		if _, seen := dupRows[id]; !seen {
			dupOrder = append(dupOrder, id)
		}
		dupRows[id] = append(dupRows[id], i)
	}

	out := &Table{
		IndexName: t.IndexName,
		Cols:      t.Cols,
	}
	for _, i := range singles {
		out.Index = append(out.Index, t.Index[i])
		out.Data = append(out.Data, t.Data[i])
	}
	for _, id := range dupOrder {
		vals := make([]null.Float, len(t.Cols))
		for c := range t.Cols {
			group := make([]null.Float, 0, len(dupRows[id]))
			for _, i := range dupRows[id] {
				group = append(group, t.Data[i][c])
			}
			vals[c] = nanMean(group)
		}
		out.Index = append(out.Index, id)
		out.Data = append(out.Data, vals)
	}

	return out
}

// nanMean averages the available values of a group. A group with no
// available values yields the missing value.
func nanMean(group []null.Float) null.Float {
	avail := make([]float64, 0, len(group))
	for _, v := range group {
		if v.Valid {
			avail = append(avail, v.Float64)
		}
	}

	m, err := stats.Mean(avail)
	if err != nil {
		return null.NewFloat(0, false)
	}

	return null.FloatFrom(m)
}
