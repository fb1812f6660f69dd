// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pdiddy/genephen-engine/internal/cohortdb"
	"github.com/pdiddy/genephen-engine/internal/penetrance"
)

// WriteCohortCSV writes the cohort table (header plus rows) to w.
// An empty database yields a header-only file, a valid state.
func WriteCohortCSV(w io.Writer, db *cohortdb.Database) error {
	return writeTable(w, CohortHeader, CohortRows(db))
}

// WriteIndividualCSV writes the individual table (header plus rows) to w.
func WriteIndividualCSV(w io.Writer, db *penetrance.Database) error {
	return writeTable(w, IndividualHeader, IndividualRows(db))
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
