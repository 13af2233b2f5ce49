package mstable

import (
	"testing"

	"gopkg.in/guregu/null.v3"
)

func TestCombineHorizontal(t *testing.T) {
	a := &Table{
		IndexName: "Hugo_Symbol",
		Index:     []string{"TP53|TP53"},
		Cols:      []string{"S1", "S2"},
		Data:      [][]null.Float{{null.FloatFrom(1), null.FloatFrom(2)}},
	}
	b := &Table{
		IndexName: "Hugo_Symbol",
		Index:     []string{"TP53|TP53"},
		Cols:      []string{"S2", "S3"},
		Data:      [][]null.Float{{null.FloatFrom(4), null.FloatFrom(8)}},
	}

	out, err := CombineHorizontal(a, b)
	if err != nil {
		t.Fatal(err)
	}
	// The duplicated S2 is re-collapsed into its mean and moves after the
	// singleton columns.
	if len(out.Cols) != 3 || out.Cols[0] != "S1" || out.Cols[1] != "S3" || out.Cols[2] != "S2" {
		t.Errorf("got columns %v", out.Cols)
	}
	if v := out.Data[0][2]; !v.Valid || v.Float64 != 3 {
		t.Errorf("got %+v", v)
	}
}

func TestCombineHorizontalIndexMismatch(t *testing.T) {
	a := &Table{Index: []string{"TP53|TP53"}, Cols: []string{"S1"}, Data: [][]null.Float{{null.FloatFrom(1)}}}
	b := &Table{Index: []string{"EGFR|EGFR"}, Cols: []string{"S2"}, Data: [][]null.Float{{null.FloatFrom(1)}}}

	if _, err := CombineHorizontal(a, b); err == nil {
		t.Error("expected an error for mismatched row identifiers")
	}
}

// TestCombineVertical stacks a protein-level table onto a PTM-level table
// of the same cohort: both identifiers survive and no cross-row averaging
// occurs.
func TestCombineVertical(t *testing.T) {
	prot := &Table{
		IndexName: "Hugo_Symbol",
		Index:     []string{"TP53|TP53"},
		Cols:      []string{"S1", "S2"},
		Data:      [][]null.Float{{null.FloatFrom(1), null.FloatFrom(2)}},
	}
	ptm := &Table{
		IndexName: "PTM",
		Index:     []string{"TP53|TP53_PS15"},
		Cols:      []string{"S1", "S2"},
		Data:      [][]null.Float{{null.FloatFrom(3), null.FloatFrom(4)}},
	}

	out, err := CombineVertical(prot, ptm)
	if err != nil {
		t.Fatal(err)
	}
	if out.IndexName != "Hugo_Symbol" {
		t.Errorf("got index name %q", out.IndexName)
	}
	if len(out.Index) != 2 || out.Index[0] != "TP53|TP53" || out.Index[1] != "TP53|TP53_PS15" {
		t.Errorf("got index %v", out.Index)
	}
	if v := out.Data[0][0]; !v.Valid || v.Float64 != 1 {
		t.Errorf("got %+v", v)
	}
	if v := out.Data[1][0]; !v.Valid || v.Float64 != 3 {
		t.Errorf("got %+v", v)
	}
}

func TestCombineVerticalColumnMismatch(t *testing.T) {
	a := &Table{Index: []string{"TP53|TP53"}, Cols: []string{"S1"}, Data: [][]null.Float{{null.FloatFrom(1)}}}
	b := &Table{Index: []string{"EGFR|EGFR"}, Cols: []string{"S2"}, Data: [][]null.Float{{null.FloatFrom(1)}}}

	if _, err := CombineVertical(a, b); err == nil {
		t.Error("expected an error for mismatched columns")
	}
}

func TestCombineVerticalRecollapses(t *testing.T) {
	a := &Table{
		IndexName: "Hugo_Symbol",
		Index:     []string{"TP53|TP53"},
		Cols:      []string{"S1"},
		Data:      [][]null.Float{{null.FloatFrom(1)}},
	}
	b := &Table{
		IndexName: "Hugo_Symbol",
		Index:     []string{"TP53|TP53"},
		Cols:      []string{"S1"},
		Data:      [][]null.Float{{null.FloatFrom(3)}},
	}

	out, err := CombineVertical(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Index) != 1 {
		t.Errorf("got index %v", out.Index)
	}
	if v := out.Data[0][0]; !v.Valid || v.Float64 != 2 {
		t.Errorf("got %+v", v)
	}
}
