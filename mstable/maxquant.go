package mstable

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxQuantSamplePrefix matches the measurement kind MaxQuant prepends
	// to each sample column: raw intensities for unlabeled runs and
	// reporter intensities for labeled runs.
	MaxQuantSamplePrefix = `(?:Reporter intensity |Intensity )`

	// MaxQuantSampleExpr is the default expression for the sample name
	// that follows the measurement kind.
	MaxQuantSampleExpr = `[A-Za-z0-9\s]+`
)

// decoyPattern recognizes reversed-sequence and known-contaminant matches
// anywhere in the protein identifier list.
var decoyPattern = regexp.MustCompile(`REV|CON`)

func maxquantProteomeDrop(raw *Raw, row []string) bool {
	prot, _ := raw.Col("Protein IDs")
	gene, _ := raw.Col("Gene names")
	qval, _ := raw.Col("Q-value")

	// An empty protein field cannot be cleared of being a decoy, so it is
	// dropped along with the pattern matches.
	if row[prot] == "" || decoyPattern.MatchString(row[prot]) {
		return true
	}
	if row[gene] == "" {
		return true
	}

	// Rows are kept only when the Q-value parses and passes the cutoff.
	q, err := strconv.ParseFloat(row[qval], 64)
	if err != nil || math.IsNaN(q) {
		return true
	}

	return q >= MaxQuantMaxQValue
}

func maxquantPTMDrop(raw *Raw, row []string) bool {
	prot, _ := raw.Col("Protein")
	gene, _ := raw.Col("Gene names")
	loc, _ := raw.Col("Localization prob")

	if row[prot] == "" || decoyPattern.MatchString(row[prot]) {
		return true
	}
	if row[gene] == "" {
		return true
	}

	p, err := strconv.ParseFloat(row[loc], 64)
	if err != nil || math.IsNaN(p) {
		return true
	}

	return p <= MaxQuantMinLocalization
}

func maxquantProteomeIdentify(raw *Raw, opt Options) ([]string, string, error) {
	gi, _ := raw.Col("Gene names")

	ids := make([]string, len(raw.Rows))
	for i, row := range raw.Rows {
		g := firstListed(row[gi])
		if g == "" {
			return nil, "", fmt.Errorf("row %d: %w: empty gene name", i, ErrMissingAnnotation)
		}
		ids[i] = g + "|" + g
	}

	return ids, "Hugo_Symbol", nil
}

func maxquantPTMIdentify(raw *Raw, opt Options) ([]string, string, error) {
	gi, _ := raw.Col("Gene names")
	ai, _ := raw.Col("Amino acid")
	pi, _ := raw.Col("Positions within proteins")

	ids := make([]string, len(raw.Rows))
	for i, row := range raw.Rows {
		g := firstListed(row[gi])
		aa := row[ai]
		pos := firstListed(row[pi])
		if g == "" || aa == "" || pos == "" {
			return nil, "", fmt.Errorf("row %d: %w: gene/residue/position incomplete", i, ErrMissingAnnotation)
		}
		ids[i] = fmt.Sprintf("%s|%s_%s%s%s", g, g, opt.PTMPrefix, aa, pos)
	}

	return ids, "PTM", nil
}

// firstListed resolves a semicolon-separated list of candidate annotations
// to its first entry. Downstream consumers only need one representative
// value per row.
func firstListed(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		return s[:i]
	}

	return s
}
