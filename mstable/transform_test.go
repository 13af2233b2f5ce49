package mstable

import (
	"testing"

	"gopkg.in/guregu/null.v3"
)

func TestLog2Transform(t *testing.T) {
	pipe, err := New("cdap_precursor_area")
	if err != nil {
		t.Fatal(err)
	}

	tbl := &Table{
		Index: []string{"TP53|TP53"},
		Cols:  []string{"S1", "S2", "S3", "S4"},
		Data: [][]null.Float{{
			null.FloatFrom(1024),
			null.FloatFrom(0),
			null.FloatFrom(-4),
			null.NewFloat(0, false),
		}},
	}

	out := pipe.Transform(tbl)
	// Exact powers of two come back as integer exponents.
	if v := out.Data[0][0]; !v.Valid || v.Float64 != 10 {
		t.Errorf("got %+v", v)
	}
	// Zero and negative inputs become missing, never -Inf or NaN.
	if out.Data[0][1].Valid || out.Data[0][2].Valid || out.Data[0][3].Valid {
		t.Errorf("got %+v", out.Data[0])
	}
}

func TestExp2(t *testing.T) {
	tbl := &Table{
		Index: []string{"TP53|TP53"},
		Cols:  []string{"S1", "S2"},
		Data:  [][]null.Float{{null.FloatFrom(3), null.NewFloat(0, false)}},
	}

	out := Exp2(tbl)
	if v := out.Data[0][0]; !v.Valid || v.Float64 != 8 {
		t.Errorf("got %+v", v)
	}
	if out.Data[0][1].Valid {
		t.Errorf("got %+v", out.Data[0][1])
	}
}

func TestNormalizeToRowMean(t *testing.T) {
	tbl := &Table{
		Index: []string{"TP53|TP53", "EGFR|EGFR"},
		Cols:  []string{"S1", "S2", "S3"},
		Data: [][]null.Float{
			{null.FloatFrom(1), null.FloatFrom(3), null.NewFloat(0, false)},
			{null.NewFloat(0, false), null.NewFloat(0, false), null.NewFloat(0, false)},
		},
	}

	out := NormalizeToRowMean(tbl)
	// Row mean over available values is 2.
	if v := out.Data[0][0]; !v.Valid || v.Float64 != 0.5 {
		t.Errorf("got %+v", v)
	}
	if v := out.Data[0][1]; !v.Valid || v.Float64 != 1.5 {
		t.Errorf("got %+v", v)
	}
	if out.Data[0][2].Valid {
		t.Errorf("got %+v", out.Data[0][2])
	}
	for _, v := range out.Data[1] {
		if v.Valid {
			t.Errorf("all-missing row should stay missing, got %+v", v)
		}
	}
}

func TestSummarizeByGene(t *testing.T) {
	tbl := &Table{
		IndexName: "PTM",
		Index:     []string{"TP53|TP53_PS15", "TP53|TP53_PS20", "EGFR|EGFR_PY1068"},
		Cols:      []string{"S1", "S2"},
		Data: [][]null.Float{
			{null.FloatFrom(1), null.NewFloat(0, false)},
			{null.FloatFrom(2), null.NewFloat(0, false)},
			{null.FloatFrom(5), null.FloatFrom(6)},
		},
	}

	out := SummarizeByGene(tbl)
	if out.IndexName != "Hugo_Symbol" {
		t.Errorf("got index name %q", out.IndexName)
	}
	if len(out.Index) != 2 || out.Index[0] != "TP53" || out.Index[1] != "EGFR" {
		t.Errorf("got index %v", out.Index)
	}
	if v := out.Data[0][0]; !v.Valid || v.Float64 != 3 {
		t.Errorf("got %+v", v)
	}
	if out.Data[0][1].Valid {
		t.Errorf("got %+v", out.Data[0][1])
	}
	if v := out.Data[1][1]; !v.Valid || v.Float64 != 6 {
		t.Errorf("got %+v", v)
	}
}
