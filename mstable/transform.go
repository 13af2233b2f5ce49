package mstable

import (
	"math"

	"github.com/montanaflynn/stats"
	"gopkg.in/guregu/null.v3"
)

// Exp2 undoes a log2 transform cell-wise, recovering linear-scale ratios
// from, e.g., iTRAQ log ratios ahead of calculations that require a linear
// scale.
func Exp2(t *Table) *Table {
	out := &Table{
		IndexName: t.IndexName,
		Index:     t.Index,
		Cols:      t.Cols,
		Data:      make([][]null.Float, len(t.Data)),
	}
	for i, row := range t.Data {
		vals := make([]null.Float, len(row))
		for j, v := range row {
			if !v.Valid {
				vals[j] = v
				continue
			}
			vals[j] = finite(math.Exp2(v.Float64))
		}
		out.Data[i] = vals
	}

	return out
}

// NormalizeToRowMean divides every value by the mean of the available
// values in its row, turning absolute per-sample intensities into ratios
// against the row's typical signal. Rows with no available values are left
// missing.
func NormalizeToRowMean(t *Table) *Table {
	out := &Table{
		IndexName: t.IndexName,
		Index:     t.Index,
		Cols:      t.Cols,
		Data:      make([][]null.Float, len(t.Data)),
	}
	for i, row := range t.Data {
		avail := make([]float64, 0, len(row))
		for _, v := range row {
			if v.Valid {
				avail = append(avail, v.Float64)
			}
		}
		mean, err := stats.Mean(avail)

		vals := make([]null.Float, len(row))
		for j, v := range row {
			if !v.Valid || err != nil {
				vals[j] = null.NewFloat(0, false)
				continue
			}
			vals[j] = finite(v.Float64 / mean)
		}
		out.Data[i] = vals
	}

	return out
}

// SummarizeByGene collapses a site-level table into a per-gene summary by
// summing the available values of all rows sharing a gene symbol. Genes
// appear in first-occurrence order; a gene whose rows are all missing for a
// sample stays missing for that sample.
func SummarizeByGene(t *Table) *Table {
	out := &Table{
		IndexName: "Hugo_Symbol",
		Cols:      t.Cols,
	}

	rowFor := make(map[string]int)
	for i, id := range t.Index {
		g := Gene(id)
		r, seen := rowFor[g]
		if !seen {
			r = len(out.Index)
			rowFor[g] = r
			out.Index = append(out.Index, g)
			out.Data = append(out.Data, make([]null.Float, len(t.Cols)))
		}
		for j, v := range t.Data[i] {
			if !v.Valid {
				continue
			}
			if !out.Data[r][j].Valid {
				out.Data[r][j] = v
				continue
			}
			out.Data[r][j] = finite(out.Data[r][j].Float64 + v.Float64)
		}
	}

	return out
}
