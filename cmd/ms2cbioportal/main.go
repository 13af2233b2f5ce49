// ms2cbioportal converts CPTAC CDAP and MaxQuant mass-spectrometry result
// tables into a single gene-indexed matrix and a metadata sidecar that
// cBioPortal can import. Use it for one tissue type (i.e. breast cancer)
// at a time.
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	_ "github.com/cBioPortal/CPTAC-proteomics-pipeline/compileinfoprint"
	"github.com/cBioPortal/CPTAC-proteomics-pipeline/mstable"
	"github.com/cBioPortal/CPTAC-proteomics-pipeline/refseq"
)

type config struct {
	proteomeFiles string
	pipeline      string
	sampleExpr    string
	cohortPrefix  string

	ptmFiles    string
	ptmPipeline string
	ptmPrefixes string
	annotation  string

	useRuler  bool
	massFile  string
	dnaMass   float64
	rowMean   bool
	entrez    bool
	fill      string
	summaryTo string

	output   string
	metaOut  string
	cancerID string
}

func main() {
	var cfg config

	flag.StringVar(&cfg.proteomeFiles, "proteome-files", "", "Comma-separated list of protein abundance files.")
	flag.StringVar(&cfg.pipeline, "pipeline", "", "Processing pipeline for the proteome files, one of: maxquant_proteome, cdap_itraq, cdap_precursor_area.")
	flag.StringVar(&cfg.sampleExpr, "sample-regex", "", "Regular expression for sample column names. Defaults to the pipeline's convention.")
	flag.StringVar(&cfg.cohortPrefix, "cohort-prefix", "TCGA-", "Prefix prepended to the captured sample barcode of CDAP columns.")
	flag.StringVar(&cfg.ptmFiles, "ptm-files", "", "Comma-separated list of PTM files. Optional; requires -ptm-prefixes.")
	flag.StringVar(&cfg.ptmPipeline, "ptm-pipeline", "", "Processing pipeline for the PTM files. Defaults to the PTM counterpart of -pipeline.")
	flag.StringVar(&cfg.ptmPrefixes, "ptm-prefixes", "", "Comma-separated modification class letters paired with -ptm-files, e.g. P,P for phosphosites.")
	flag.StringVar(&cfg.annotation, "annotation", "", "Annotation file produced by refseq2tsv, for CDAP PTM files keyed on protein accessions.")
	flag.BoolVar(&cfg.useRuler, "ruler", false, "Apply the proteomic ruler to estimate copies per cell. Requires -mass-table and linear-scale input.")
	flag.StringVar(&cfg.massFile, "mass-table", "", "Molar-mass table (Gene, MolarMass columns) for the proteomic ruler.")
	flag.Float64Var(&cfg.dnaMass, "dna-mass", mstable.DefaultDNAMassPerCell, "DNA mass per cell in grams, for the proteomic ruler.")
	flag.BoolVar(&cfg.rowMean, "row-mean", false, "Normalize each row to the mean of its available values.")
	flag.BoolVar(&cfg.entrez, "entrez", false, "Insert an Entrez_Gene_Id column resolved from -annotation.")
	flag.StringVar(&cfg.fill, "fill-missing", "", "Value written for missing cells, e.g. 0. Defaults to empty.")
	flag.StringVar(&cfg.summaryTo, "summary-file", "", "If set, also write a per-gene summary of the PTM tables to this path.")
	flag.StringVar(&cfg.output, "output-file", "", "Path for the combined output table.")
	flag.StringVar(&cfg.metaOut, "meta-file", "", "Path for the metadata sidecar.")
	flag.StringVar(&cfg.cancerID, "cancer-id", "", "Official cancer study ID, i.e. brca_tcga_pub.")
	flag.Parse()

	if cfg.proteomeFiles == "" || cfg.pipeline == "" || cfg.output == "" || cfg.metaOut == "" || cfg.cancerID == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg config) error {
	pipe, err := mstable.New(cfg.pipeline)
	if err != nil {
		return err
	}

	ptmFiles, ptmPrefixes, ptmPipe, err := ptmSetup(cfg)
	if err != nil {
		return err
	}

	var lookup *refseq.Lookup
	if cfg.annotation != "" {
		if lookup, err = loadLookup(cfg.annotation); err != nil {
			return err
		}
	}

	var masses *refseq.MassTable
	if cfg.useRuler {
		if masses, err = loadMasses(cfg.massFile); err != nil {
			return err
		}
	}

	log.Printf("Processing %d proteome file(s) with pipeline %s", len(strings.Split(cfg.proteomeFiles, ",")), pipe.Name)
	var protTables []*mstable.Table
	for _, fname := range strings.Split(cfg.proteomeFiles, ",") {
		t, err := processFile(fname, pipe, cfg, mstable.Options{})
		if err != nil {
			return err
		}
		protTables = append(protTables, t)
	}
	combined, err := mstable.CombineHorizontal(protTables...)
	if err != nil {
		return err
	}

	var ptmCombined *mstable.Table
	if len(ptmFiles) > 0 {
		log.Printf("Processing %d PTM file(s) with pipeline %s", len(ptmFiles), ptmPipe.Name)
		opt := mstable.Options{}
		if lookup != nil && ptmPipe.SampleSuffix != "" {
			opt.GeneByProtein = lookup.GeneByProtein
		}

		var ptmTables []*mstable.Table
		for i, fname := range ptmFiles {
			opt.PTMPrefix = ptmPrefixes[i]
			t, err := processFile(fname, ptmPipe, cfg, opt)
			if err != nil {
				return err
			}
			ptmTables = append(ptmTables, t)
		}
		if ptmCombined, err = mstable.CombineHorizontal(ptmTables...); err != nil {
			return err
		}
		if combined, err = mstable.CombineVertical(combined, ptmCombined); err != nil {
			return err
		}
	}

	if cfg.rowMean {
		combined = mstable.NormalizeToRowMean(combined)
	}

	if cfg.useRuler {
		if pipe.Name == "cdap_itraq" {
			// iTRAQ values are log2 ratios; the ruler needs linear scale.
			combined = mstable.Exp2(combined)
		}
		if combined, err = mstable.ProteomicRuler(combined, masses.Mass, cfg.dnaMass); err != nil {
			return err
		}
	}

	var entrez func(string) (string, bool)
	if cfg.entrez && lookup != nil {
		entrez = lookup.EntrezByGene
	}

	if err := writeTable(cfg.output, combined, cfg.fill, entrez); err != nil {
		return err
	}
	log.Printf("Wrote %d rows x %d samples to %s", len(combined.Index), len(combined.Cols), cfg.output)

	if cfg.summaryTo != "" && ptmCombined != nil {
		if err := writeTable(cfg.summaryTo, mstable.SummarizeByGene(ptmCombined), cfg.fill, entrez); err != nil {
			return err
		}
		log.Printf("Wrote PTM summary to %s", cfg.summaryTo)
	}

	if err := os.WriteFile(cfg.metaOut, []byte(mstable.Meta(cfg.cancerID, cfg.output)), 0o644); err != nil {
		return err
	}

	return nil
}

// ptmSetup validates the PTM argument set before any file is touched. The
// PTM arguments are all-or-nothing: a partial set aborts the run.
func ptmSetup(cfg config) ([]string, []string, mstable.Pipeline, error) {
	if cfg.ptmFiles == "" && cfg.ptmPrefixes == "" {
		return nil, nil, mstable.Pipeline{}, nil
	}
	if cfg.ptmFiles == "" || cfg.ptmPrefixes == "" {
		return nil, nil, mstable.Pipeline{}, errPartialPTM
	}

	files := strings.Split(cfg.ptmFiles, ",")
	prefixes := strings.Split(cfg.ptmPrefixes, ",")
	if len(files) != len(prefixes) {
		return nil, nil, mstable.Pipeline{}, errPartialPTM
	}

	name := cfg.ptmPipeline
	if name == "" {
		name = ptmCounterpart[cfg.pipeline]
	}
	pipe, err := mstable.New(name)
	if err != nil {
		return nil, nil, mstable.Pipeline{}, err
	}

	return files, prefixes, pipe, nil
}

// ptmCounterpart maps a proteome pipeline to the pipeline its PTM files
// use when -ptm-pipeline is not given. The CDAP pipelines carry PTM tables
// in the same format as proteome tables.
var ptmCounterpart = map[string]string{
	"maxquant_proteome":   "maxquant_ptm",
	"cdap_itraq":          "cdap_itraq",
	"cdap_precursor_area": "cdap_precursor_area",
}

var errPartialPTM = errors.New("attempting to process PTMs without all arguments set (-ptm-files, -ptm-prefixes, one prefix per file)")

func processFile(fname string, pipe mstable.Pipeline, cfg config, opt mstable.Options) (*mstable.Table, error) {
	f, err := mstable.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := mstable.ReadRaw(f)
	if err != nil {
		return nil, err
	}
	if err := pipe.Check(raw); err != nil {
		return nil, err
	}
	if raw, err = pipe.Filter(raw); err != nil {
		return nil, err
	}

	ids, indexName, err := pipe.Identify(raw, opt)
	if err != nil {
		return nil, err
	}

	pattern, err := pipe.SamplePattern(cfg.sampleExpr)
	if err != nil {
		return nil, err
	}
	rename, err := pipe.SampleRename(cfg.sampleExpr, cfg.cohortPrefix)
	if err != nil {
		return nil, err
	}

	t, err := mstable.SelectColumns(raw, ids, indexName, pattern, rename)
	if err != nil {
		return nil, err
	}

	// The ruler needs linear-scale intensities, so the log transform is
	// skipped when it will run.
	if !(cfg.useRuler && pipe.Name == "cdap_precursor_area") {
		t = pipe.Transform(t)
	}

	return mstable.CollapseColumns(t), nil
}

func loadLookup(fname string) (*refseq.Lookup, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := refseq.ReadRecords(f)
	if err != nil {
		return nil, err
	}

	return refseq.BuildLookup(records), nil
}

func loadMasses(fname string) (*refseq.MassTable, error) {
	if fname == "" {
		return nil, errors.New("-ruler requires -mass-table")
	}

	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return refseq.ReadMassTable(f)
}

func writeTable(fname string, t *mstable.Table, fill string, entrez func(string) (string, bool)) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	return t.WriteTSV(f, fill, entrez)
}
