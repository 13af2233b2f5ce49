package mstable

import (
	"errors"
	"strings"
	"testing"
)

func TestSelectColumns(t *testing.T) {
	in := "Gene\tAO-A12D-01A Log Ratio\tNotes\tC8-A131-01A Log Ratio\nTP53\t1\tx\t2\n"
	raw, err := ReadRaw(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	pattern, err := CompileSample(CDAPSampleExpr + " Log Ratio")
	if err != nil {
		t.Fatal(err)
	}
	bare, err := CompileSample(CDAPSampleExpr)
	if err != nil {
		t.Fatal(err)
	}

	tbl, err := SelectColumns(raw, []string{"TP53|TP53"}, "Hugo_Symbol", pattern, CaptureRename(bare, 1, "TCGA-"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Cols) != 2 || tbl.Cols[0] != "TCGA-AO-A12D-01" || tbl.Cols[1] != "TCGA-C8-A131-01" {
		t.Errorf("got columns %v", tbl.Cols)
	}
	if !tbl.Data[0][0].Valid || tbl.Data[0][0].Float64 != 1 {
		t.Errorf("got %+v", tbl.Data[0][0])
	}
}

func TestSelectColumnsNoMatch(t *testing.T) {
	raw, err := ReadRaw(strings.NewReader("Gene\tVal\nTP53\t1\n"))
	if err != nil {
		t.Fatal(err)
	}

	pattern, err := CompileSample(`Intensity .+`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := SelectColumns(raw, []string{"TP53|TP53"}, "Hugo_Symbol", pattern, nil); !errors.Is(err, ErrNoMatchingColumns) {
		t.Errorf("expected ErrNoMatchingColumns, got %v", err)
	}
}

func TestSelectColumnsAnchoring(t *testing.T) {
	// The pattern must match at the start of the name, not anywhere in it.
	raw, err := ReadRaw(strings.NewReader("Gene\tSummed Intensity S1\tIntensity S1\nTP53\t1\t2\n"))
	if err != nil {
		t.Fatal(err)
	}

	pattern, err := CompileSample(`Intensity [A-Za-z0-9\s]+`)
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := SelectColumns(raw, []string{"TP53|TP53"}, "Hugo_Symbol", pattern, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Cols) != 1 || tbl.Cols[0] != "Intensity S1" {
		t.Errorf("got columns %v", tbl.Cols)
	}
}
