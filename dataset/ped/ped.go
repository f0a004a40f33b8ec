/*
Package ped reads the population individuals belong to from
tab-separated pedigree files with a header line, such as the ones
published by the 1000 Genomes Project. The individual id is read
from the second column and its population from the seventh.
*/
package ped

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	familyIDColumn     = 0
	individualIDColumn = 1
	populationColumn   = 6
)

// Record is the pedigree information of an individual.
type Record struct {
	FamilyID     string
	IndividualID string
	Population   string
}

// ReadFile takes the path to a pedigree file and
// returns the records on it.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return records, nil
}

/*
Read takes a reader of pedigree content and returns the records on
it, skipping the header line. An error is returned if a line has too
few columns or lacks an individual id or population.
*/
func Read(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, errors.New("missing header line")
		}
		return nil, errors.Wrap(err, "reading header line")
	}
	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if len(row) <= populationColumn {
			return nil, errors.Errorf("line %d: expected at least %d columns, got %d", line, populationColumn+1, len(row))
		}
		rec := Record{row[familyIDColumn], row[individualIDColumn], row[populationColumn]}
		if rec.IndividualID == "" || rec.Population == "" {
			return nil, errors.Errorf("line %d: missing individual id or population", line)
		}
		records = append(records, rec)
	}
	return records, nil
}
