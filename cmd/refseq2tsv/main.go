// refseq2tsv builds the annotation table mapping RefSeq protein and
// transcript accessions to HUGO symbols and Entrez gene IDs, by parsing a
// folder of RefSeq human.<N>.protein.gpff flat files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/cBioPortal/CPTAC-proteomics-pipeline/compileinfoprint"
	"github.com/cBioPortal/CPTAC-proteomics-pipeline/refseq"
)

// RefSeq splits the human proteome into 26 per-chromosome release files.
const refseqFileCount = 26

func main() {
	var folder, output string

	flag.StringVar(&folder, "refseq-folder", "", "Folder holding the RefSeq human.<N>.protein.gpff files.")
	flag.StringVar(&output, "output-file", "", "Path for the annotation table.")
	flag.Parse()

	if folder == "" || output == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(folder, output); err != nil {
		log.Fatalln(err)
	}
}

func run(folder, output string) error {
	var records []refseq.Record
	for chrom := 1; chrom <= refseqFileCount; chrom++ {
		fname := filepath.Join(folder, fmt.Sprintf("human.%d.protein.gpff", chrom))
		recs, err := parseOne(fname)
		if err != nil {
			return err
		}
		records = append(records, recs...)
		log.Println("Done processing", fname)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := refseq.WriteRecords(f, records); err != nil {
		return err
	}
	log.Printf("Wrote %d records to %s", len(records), output)

	return nil
}

func parseOne(fname string) ([]refseq.Record, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return refseq.ParseGenPept(f)
}
