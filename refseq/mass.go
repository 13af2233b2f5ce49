package refseq

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// MassRecord is one row of the molar-mass table.
type MassRecord struct {
	Gene      string  `csv:"Gene"`
	MolarMass float64 `csv:"MolarMass"`
}

// MassTable maps gene symbols to protein molar mass in g/mol. First
// occurrence per gene wins.
type MassTable struct {
	mass map[string]float64
}

// ReadMassTable loads a tab-separated molar-mass table with Gene and
// MolarMass columns.
func ReadMassTable(r io.Reader) (*MassTable, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.Comma = '\t'
		cr.LazyQuotes = true
		return cr
	})

	var records []MassRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, pfx.Err(err)
	}

	m := &MassTable{mass: make(map[string]float64, len(records))}
	for _, rec := range records {
		if rec.Gene == "" {
			continue
		}
		if _, seen := m.mass[rec.Gene]; !seen {
			m.mass[rec.Gene] = rec.MolarMass
		}
	}

	return m, nil
}

// Mass resolves a gene symbol to its molar mass.
func (m *MassTable) Mass(gene string) (float64, bool) {
	v, ok := m.mass[gene]
	return v, ok
}
