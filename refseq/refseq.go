// Package refseq builds the reference lookup from RefSeq GenPept flat
// files: protein accession to gene symbol and Entrez gene ID, plus a
// molar-mass table keyed by gene symbol.
package refseq

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/carbocation/pfx"
)

// Record is one protein entry of the annotation table.
type Record struct {
	Protein string `csv:"Protein"`
	MRNA    string `csv:"mRNA"`
	Gene    string `csv:"Gene"`
	Entrez  string `csv:"Entrez"`
}

var (
	genePattern   = regexp.MustCompile(`"(.+)"`)
	entrezPattern = regexp.MustCompile(`GeneID:([0-9]+)"`)
)

// ParseGenPept reads a RefSeq *.protein.gpff flat file. Entries are blocks
// of annotation lines terminated by a // line; within a block, the VERSION
// line carries the protein accession, DBSOURCE the source mRNA accession,
// and the /gene= and /db_xref="GeneID: qualifiers the gene symbol and
// Entrez ID. Version suffixes are stripped from both accessions.
func ParseGenPept(r io.Reader) ([]Record, error) {
	var records []Record
	var cur Record

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "//" {
			records = append(records, cur)
			cur = Record{}
			continue
		}

		switch {
		case strings.HasPrefix(line, "VERSION"):
			if f := strings.Fields(line); len(f) > 1 {
				cur.Protein = TrimVersion(f[1])
			}
		case strings.HasPrefix(line, "DBSOURCE"):
			if f := strings.Fields(line); len(f) > 1 {
				cur.MRNA = TrimVersion(f[len(f)-1])
			}
		case strings.HasPrefix(line, "/gene="):
			if m := genePattern.FindStringSubmatch(line); m != nil {
				cur.Gene = m[1]
			}
		case strings.Contains(line, `/db_xref="GeneID:`):
			if m := entrezPattern.FindStringSubmatch(line); m != nil {
				cur.Entrez = m[1]
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return records, nil
}

// TrimVersion strips the version suffix of an accession: everything from
// the first '.' on. Callers must strip versions before consulting a Lookup.
func TrimVersion(accession string) string {
	if i := strings.IndexByte(accession, '.'); i >= 0 {
		return accession[:i]
	}

	return accession
}
