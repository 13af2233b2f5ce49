package mstable

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// CDAPSampleExpr captures the TCGA sample barcode at the start of a CDAP
// sample column name.
const CDAPSampleExpr = `([A-Z0-9]{2}\-[A-Z0-9]{4}\-[A-Z0-9]{2})[A-Z0-9\-]+`

// summaryPattern recognizes the Mean/Median/StdDev summary rows that CDAP
// embeds among the gene rows.
var summaryPattern = regexp.MustCompile(`Mean|Median|StdDev`)

// residueRun locates each run of residue letters in an uppercased
// modification-site string, e.g. the S and T of "S15T20".
var residueRun = regexp.MustCompile(`[A-Z]+`)

func cdapDrop(raw *Raw, row []string) bool {
	gene, _ := raw.Col("Gene")

	if row[gene] == "" {
		return true
	}

	return summaryPattern.MatchString(row[gene])
}

// cdapIdentify builds row identifiers for a CDAP table. A table without a
// Phosphosite column is an unmodified proteome and falls back to the plain
// GENE|GENE form; the fallback is decided by column presence, never per
// row. When a protein-accession lookup is supplied, the key field holds
// accessions (as in RefSeq-annotated phosphosite files) and rows the lookup
// cannot resolve become NA|NA rather than failing the run.
func cdapIdentify(raw *Raw, opt Options) ([]string, string, error) {
	gi, _ := raw.Col("Gene")
	si, hasSite := raw.Col("Phosphosite")

	ids := make([]string, len(raw.Rows))
	for i, row := range raw.Rows {
		key := row[gi]

		if !hasSite {
			ids[i] = key + "|" + key
			continue
		}

		site, ok := ptmSite(row[si], opt.PTMPrefix)

		if opt.GeneByProtein != nil {
			g, found := opt.GeneByProtein(trimVersion(key))
			if !found || !ok {
				ids[i] = "NA|NA"
				continue
			}
			ids[i] = fmt.Sprintf("%s|%s_%s", g, g, site)
			continue
		}

		if !ok {
			return nil, "", fmt.Errorf("row %d: %w: phosphosite %q", i, ErrMissingAnnotation, row[si])
		}
		ids[i] = fmt.Sprintf("%s|%s_%s", key, key, site)
	}

	indexName := "Hugo_Symbol"
	if hasSite {
		indexName = "PTM"
	}

	return ids, indexName, nil
}

// ptmSite rewrites the site half of a CDAP phosphosite annotation
// ("NP_000537.3:s15t20") into the canonical suffix ("PS15_T20"): uppercase
// the sites, chain each residue run with a separator, and prepend the
// modification-class prefix.
func ptmSite(anno, prefix string) (string, bool) {
	i := strings.IndexByte(anno, ':')
	if i < 0 || i+1 == len(anno) {
		return "", false
	}

	site := strings.ToUpper(anno[i+1:])
	site = residueRun.ReplaceAllString(site, "_${0}")
	site = strings.TrimPrefix(site, "_")

	return prefix + site, true
}

// trimVersion strips the version suffix from an accession ("NP_000537.3"
// to "NP_000537") so that it can be resolved against the reference lookup.
func trimVersion(acc string) string {
	if i := strings.IndexByte(acc, '.'); i >= 0 {
		return acc[:i]
	}

	return acc
}

// log2 is the value transform for linear-scale precursor-area intensities.
// Zero and negative intensities have no logarithm and become missing, never
// -Inf.
func log2(v float64) null.Float {
	if v <= 0 {
		return null.NewFloat(0, false)
	}

	return finite(math.Log2(v))
}
