package refseq

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Lookup is an immutable mapping from protein accessions and gene symbols
// to annotation values. Duplicate keys in the source records are resolved
// by keeping the first occurrence; the upstream reference data is assumed
// canonical-first. Lookup misses are an expected condition (novel isoforms,
// withdrawn accessions) and are reported through the ok result, never as an
// error.
type Lookup struct {
	geneByProtein   map[string]string
	entrezByProtein map[string]string
	entrezByGene    map[string]string
}

// BuildLookup indexes an ordered sequence of annotation records.
func BuildLookup(records []Record) *Lookup {
	l := &Lookup{
		geneByProtein:   make(map[string]string, len(records)),
		entrezByProtein: make(map[string]string, len(records)),
		entrezByGene:    make(map[string]string, len(records)),
	}

	for _, rec := range records {
		if rec.Protein != "" {
			if _, seen := l.geneByProtein[rec.Protein]; !seen && rec.Gene != "" {
				l.geneByProtein[rec.Protein] = rec.Gene
			}
			if _, seen := l.entrezByProtein[rec.Protein]; !seen && rec.Entrez != "" {
				l.entrezByProtein[rec.Protein] = rec.Entrez
			}
		}
		if rec.Gene != "" && rec.Entrez != "" {
			if _, seen := l.entrezByGene[rec.Gene]; !seen {
				l.entrezByGene[rec.Gene] = rec.Entrez
			}
		}
	}

	return l
}

// GeneByProtein resolves a version-stripped protein accession to its gene
// symbol.
func (l *Lookup) GeneByProtein(accession string) (string, bool) {
	g, ok := l.geneByProtein[accession]
	return g, ok
}

// EntrezByProtein resolves a version-stripped protein accession to its
// Entrez gene ID.
func (l *Lookup) EntrezByProtein(accession string) (string, bool) {
	e, ok := l.entrezByProtein[accession]
	return e, ok
}

// EntrezByGene resolves a gene symbol to its Entrez gene ID.
func (l *Lookup) EntrezByGene(gene string) (string, bool) {
	e, ok := l.entrezByGene[gene]
	return e, ok
}

// ReadRecords loads a tab-separated annotation table previously written by
// WriteRecords (or by the reference builder).
func ReadRecords(r io.Reader) ([]Record, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.Comma = '\t'
		cr.LazyQuotes = true
		return cr
	})

	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, pfx.Err(err)
	}

	return records, nil
}

// WriteRecords writes the annotation table as tab-separated text.
func WriteRecords(w io.Writer, records []Record) error {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		cw := csv.NewWriter(out)
		cw.Comma = '\t'
		return gocsv.NewSafeCSVWriter(cw)
	})

	return pfx.Err(gocsv.Marshal(&records, w))
}
