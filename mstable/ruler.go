package mstable

import (
	"fmt"
	"strings"

	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/unit/constant"
	"gopkg.in/guregu/null.v3"
)

// DefaultDNAMassPerCell is the approximate mass in grams of the diploid
// human genome, the internal standard the proteomic ruler scales
// histone signal against.
const DefaultDNAMassPerCell = 6.5e-12

// ProteomicRuler converts linear-scale MS intensities into estimated copy
// numbers per cell:
//
//	copies = signal * (Avogadro / molar mass) / histone signal * DNA mass
//
// where the histone signal is the per-sample sum over rows whose gene
// symbol contains "HIST". mass resolves a gene symbol to its molar mass in
// g/mol; rows it cannot resolve become missing, not zero. The method is
// only defined over non-negative intensities, so any negative input aborts
// with ErrNegativeValue before any output is produced.
func ProteomicRuler(t *Table, mass func(gene string) (float64, bool), dnaMassPerCell float64) (*Table, error) {
	for i, row := range t.Data {
		for j, v := range row {
			if v.Valid && v.Float64 < 0 {
				return nil, pfx.Err(fmt.Errorf("%w: %g at row %q, column %q", ErrNegativeValue, v.Float64, t.Index[i], t.Cols[j]))
			}
		}
	}

	histone := make([]float64, len(t.Cols))
	for j := range t.Cols {
		var sig []float64
		for i, id := range t.Index {
			if !strings.Contains(Gene(id), "HIST") {
				continue
			}
			if v := t.Data[i][j]; v.Valid {
				sig = append(sig, v.Float64)
			}
		}
		histone[j] = floats.Sum(sig)
	}

	out := &Table{
		IndexName: t.IndexName,
		Index:     t.Index,
		Cols:      t.Cols,
		Data:      make([][]null.Float, len(t.Data)),
	}
	for i, row := range t.Data {
		vals := make([]null.Float, len(row))
		m, ok := mass(Gene(t.Index[i]))
		for j, v := range row {
			if !ok || !v.Valid {
				vals[j] = null.NewFloat(0, false)
				continue
			}
			// A zero histone sum divides out to +Inf, which finite maps
			// to missing.
			vals[j] = finite(v.Float64 * (float64(constant.Avogadro) / m) / histone[j] * dnaMassPerCell)
		}
		out.Data[i] = vals
	}

	return out, nil
}
