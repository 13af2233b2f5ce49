package mstable

import (
	"errors"
	"strings"
	"testing"

	"gopkg.in/guregu/null.v3"
)

func TestReadRaw(t *testing.T) {
	in := "Gene\tVal\nTP53\t1.5\nEGFR\t2\n"
	raw, err := ReadRaw(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(raw.Cols) != 2 || len(raw.Rows) != 2 {
		t.Errorf("got %d cols, %d rows", len(raw.Cols), len(raw.Rows))
	}
	if i, ok := raw.Col("Val"); !ok || i != 1 {
		t.Errorf("Val column at %d, ok=%v", i, ok)
	}
}

func TestRequireColumns(t *testing.T) {
	raw, err := ReadRaw(strings.NewReader("Gene\tVal\nTP53\t1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := raw.RequireColumns("Gene", "Val"); err != nil {
		t.Error(err)
	}
	if err := raw.RequireColumns("Q-value"); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}

	empty, err := ReadRaw(strings.NewReader("Gene\tVal\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := empty.RequireColumns("Gene"); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestCell(t *testing.T) {
	if v := Cell("2.5"); !v.Valid || v.Float64 != 2.5 {
		t.Errorf("got %+v", v)
	}
	for _, s := range []string{"", "NA", "Inf", "-Inf", "NaN"} {
		if v := Cell(s); v.Valid {
			t.Errorf("%q should be missing, got %+v", s, v)
		}
	}
}

func TestGene(t *testing.T) {
	if g := Gene("TP53|TP53_PS15"); g != "TP53" {
		t.Errorf("got %q", g)
	}
	if g := Gene("TP53"); g != "TP53" {
		t.Errorf("got %q", g)
	}
}

func TestWriteTSV(t *testing.T) {
	tbl := &Table{
		IndexName: "Hugo_Symbol",
		Index:     []string{"TP53|TP53", "EGFR|EGFR"},
		Cols:      []string{"S1", "S2"},
		Data: [][]null.Float{
			{null.FloatFrom(1.5), null.NewFloat(0, false)},
			{null.FloatFrom(3), null.FloatFrom(4)},
		},
	}

	var b strings.Builder
	if err := tbl.WriteTSV(&b, "", nil); err != nil {
		t.Fatal(err)
	}
	want := "Hugo_Symbol\tS1\tS2\nTP53|TP53\t1.5\t\nEGFR|EGFR\t3\t4\n"
	if b.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", b.String(), want)
	}

	b.Reset()
	entrez := func(gene string) (string, bool) {
		if gene == "TP53" {
			return "7157", true
		}
		return "", false
	}
	if err := tbl.WriteTSV(&b, "0", entrez); err != nil {
		t.Fatal(err)
	}
	want = "Hugo_Symbol\tEntrez_Gene_Id\tS1\tS2\nTP53|TP53\t7157\t1.5\t0\nEGFR|EGFR\tNA\t3\t4\n"
	if b.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", b.String(), want)
	}
}
