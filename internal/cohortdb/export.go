// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cohortdb

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/genephen-engine/pkg/types"
)

// exportFile is the persisted JSON layout: a top-level object with the
// gene and the cohort array. This is the de facto interchange format for
// the downstream report stage and must round-trip losslessly.
type exportFile struct {
	Gene    string             `json:"gene"`
	Cohorts []types.CohortData `json:"cohorts"`
}

// Save writes the database to path as indented JSON. The write is
// complete-or-fail; callers wanting atomicity write to a temporary path
// and rename.
func (d *Database) Save(path string) error {
	data, err := json.MarshalIndent(exportFile{Gene: d.gene, Cohorts: d.Cohorts()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cohort database: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reconstructs a database from a Save file. A malformed file is a
// total failure: the whole input is untrustworthy, so Load halts instead
// of salvaging records.
func Load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cohort database %s: %w", path, err)
	}
	var file exportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing cohort database %s: %w", path, err)
	}

	db := New(file.Gene)
	for _, c := range file.Cohorts {
		if err := db.AddCohort(c); err != nil {
			return nil, fmt.Errorf("loading cohort database %s: %w", path, err)
		}
	}
	return db, nil
}
