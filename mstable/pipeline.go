package mstable

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// Policy constants encoding the accepted statistical cutoffs for the
// supported instruments. These are not configurable.
const (
	// MaxQuantMaxQValue is the false-discovery cutoff for MaxQuant
	// proteome rows; rows at or above it are dropped.
	MaxQuantMaxQValue = 0.05

	// MaxQuantMinLocalization is the site-localization confidence cutoff
	// for MaxQuant PTM rows; rows at or below it are dropped.
	MaxQuantMinLocalization = 0.75
)

// Options carries the per-run inputs an identifier builder may need.
type Options struct {
	// PTMPrefix labels the modification class, e.g. "P" for phosphosites.
	PTMPrefix string

	// GeneByProtein resolves a version-stripped protein accession to a gene
	// symbol. When non-nil, CDAP PTM tables are assumed to key rows on
	// protein accessions rather than embedded gene symbols; rows the lookup
	// cannot resolve become NA|NA instead of failing the run.
	GeneByProtein func(accession string) (string, bool)
}

// Pipeline describes one supported instrument/analysis convention: the raw
// columns it requires, how its noise rows are recognized, how its row
// identifiers are built, and how its values are transformed.
type Pipeline struct {
	Name string

	// RequiredColumns must all be present in the raw input.
	RequiredColumns []string

	// DefaultSampleExpr selects sample columns when the caller supplies no
	// expression of its own.
	DefaultSampleExpr string

	// SamplePrefix is prepended to the sample expression before matching
	// (MaxQuant column names carry the measurement kind before the sample
	// name).
	SamplePrefix string

	// SampleSuffix is appended to the sample expression before matching
	// (CDAP column names carry the measurement kind after the barcode).
	SampleSuffix string

	// indexColumn, when set, names an unnamed leading column before the
	// required-column check runs. CDAP exports key their rows on a
	// pandas-style index whose header cell is blank.
	indexColumn string

	drop      func(raw *Raw, row []string) bool
	identify  func(raw *Raw, opt Options) ([]string, string, error)
	transform func(v float64) null.Float
}

// Pipelines is the closed set of supported pipelines.
var Pipelines = map[string]Pipeline{
	"maxquant_proteome": {
		Name:              "maxquant_proteome",
		RequiredColumns:   []string{"Protein IDs", "Gene names", "Q-value"},
		DefaultSampleExpr: MaxQuantSampleExpr,
		SamplePrefix:      MaxQuantSamplePrefix,
		drop:              maxquantProteomeDrop,
		identify:          maxquantProteomeIdentify,
		transform:         finite,
	},
	"maxquant_ptm": {
		Name:              "maxquant_ptm",
		RequiredColumns:   []string{"Protein", "Gene names", "Localization prob", "Amino acid", "Positions within proteins"},
		DefaultSampleExpr: MaxQuantSampleExpr,
		SamplePrefix:      MaxQuantSamplePrefix,
		drop:              maxquantPTMDrop,
		identify:          maxquantPTMIdentify,
		transform:         finite,
	},
	"cdap_itraq": {
		Name:              "cdap_itraq",
		RequiredColumns:   []string{"Gene"},
		DefaultSampleExpr: CDAPSampleExpr,
		SampleSuffix:      " Log Ratio",
		indexColumn:       "Gene",
		drop:              cdapDrop,
		identify:          cdapIdentify,
		transform:         finite,
	},
	"cdap_precursor_area": {
		Name:              "cdap_precursor_area",
		RequiredColumns:   []string{"Gene"},
		DefaultSampleExpr: CDAPSampleExpr,
		SampleSuffix:      " Area",
		indexColumn:       "Gene",
		drop:              cdapDrop,
		identify:          cdapIdentify,
		transform:         log2,
	},
}

// New returns the named pipeline.
func New(name string) (Pipeline, error) {
	p, exists := Pipelines[name]
	if !exists {
		names := make([]string, 0, len(Pipelines))
		for n := range Pipelines {
			names = append(names, n)
		}

		return Pipeline{}, fmt.Errorf("pipeline %s is not found. Valid pipeline names include: %s", name, strings.Join(names, ", "))
	}

	return p, nil
}

// Check confirms that raw is nonempty and carries every column this
// pipeline depends on. Pipelines whose inputs key rows on an unnamed
// leading index column adopt that column under its conventional name
// first.
func (p Pipeline) Check(raw *Raw) error {
	if p.indexColumn != "" {
		raw.nameLeadingIndex(p.indexColumn)
	}
	if err := raw.RequireColumns(p.RequiredColumns...); err != nil {
		return pfx.Err(fmt.Errorf("%s: %w", p.Name, err))
	}

	return nil
}

// Filter returns a copy of raw without the rows this pipeline considers
// noise: decoys, contaminants, summary rows, and rows below the pipeline's
// statistical cutoffs.
func (p Pipeline) Filter(raw *Raw) (*Raw, error) {
	kept := make([][]string, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		if p.drop(raw, row) {
			continue
		}
		kept = append(kept, row)
	}
	if len(kept) == 0 {
		return nil, pfx.Err(fmt.Errorf("%s: %w after filtering", p.Name, ErrEmptyTable))
	}

	out := &Raw{Cols: raw.Cols, Rows: kept}
	out.reindex()

	return out, nil
}

// Identify builds the composite row identifier for every row and returns
// the identifiers along with the header name the output index should carry.
func (p Pipeline) Identify(raw *Raw, opt Options) ([]string, string, error) {
	ids, indexName, err := p.identify(raw, opt)
	if err != nil {
		return nil, "", pfx.Err(fmt.Errorf("%s: %w", p.Name, err))
	}

	return ids, indexName, nil
}

// SamplePattern compiles the sample-column pattern for this pipeline. An
// empty expr falls back to the pipeline default. The pipeline's sample
// suffix is appended so that, e.g., CDAP iTRAQ selects only the barcode
// columns carrying log ratios.
func (p Pipeline) SamplePattern(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		expr = p.DefaultSampleExpr
	}

	return CompileSample(p.SamplePrefix + "(?:" + expr + ")" + regexp.QuoteMeta(p.SampleSuffix))
}

// SampleRename returns the column renamer paired with SamplePattern. CDAP
// columns are renamed to the captured sample barcode behind the cohort
// prefix ("TCGA-"); MaxQuant columns are renamed to the part of the name
// the sample expression matches.
func (p Pipeline) SampleRename(expr, cohortPrefix string) (func(string) string, error) {
	if expr == "" {
		expr = p.DefaultSampleExpr
	}

	if p.SampleSuffix != "" {
		re, err := CompileSample(expr)
		if err != nil {
			return nil, err
		}

		return CaptureRename(re, 1, cohortPrefix), nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("sample pattern %q: %w", expr, err))
	}

	return CaptureRename(re, 0, ""), nil
}

// Transform applies the pipeline's per-cell value transform and returns a
// new table. Values the transform cannot represent become missing.
func (p Pipeline) Transform(t *Table) *Table {
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
			vals[j] = p.transform(v.Float64)
		}
		out.Data[i] = vals
	}

	return out
}
