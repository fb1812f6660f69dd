// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package penetrance

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/genephen-engine/pkg/types"
)

// exportStudy is one study in the persisted layout: the study fields plus
// derived counts for readers that skim the file. The derived fields are
// ignored on load, so the layout round-trips losslessly.
type exportStudy struct {
	types.FamilyStudy
	NIndividuals int      `json:"n_individuals"`
	NCarriers    int      `json:"n_carriers"`
	NAffected    int      `json:"n_affected"`
	NUnaffected  int      `json:"n_unaffected"`
	Penetrance   *float64 `json:"penetrance"`
}

// exportFile is the persisted JSON layout: a top-level object with the
// gene and the study array.
type exportFile struct {
	Gene    string        `json:"gene"`
	Studies []exportStudy `json:"studies"`
}

// loadFile mirrors exportFile for reading; the derived per-study fields
// are dropped.
type loadFile struct {
	Gene    string              `json:"gene"`
	Studies []types.FamilyStudy `json:"studies"`
}

// Save writes the database to path as indented JSON. Complete-or-fail;
// callers wanting atomicity write to a temporary path and rename.
func (d *Database) Save(path string) error {
	file := exportFile{Gene: d.gene}
	for _, s := range d.Studies() {
		es := exportStudy{
			FamilyStudy:  s,
			NIndividuals: len(s.Individuals),
			NCarriers:    len(s.Carriers("")),
			NAffected:    len(s.AffectedCarriers("")),
			NUnaffected:  len(s.UnaffectedCarriers("")),
		}
		if p, ok := s.Penetrance("", ""); ok {
			es.Penetrance = &p
		}
		file.Studies = append(file.Studies, es)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling penetrance database: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reconstructs a database from a Save file. A malformed file is a
// total failure and halts processing.
func Load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading penetrance database %s: %w", path, err)
	}
	var file loadFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing penetrance database %s: %w", path, err)
	}

	db := New(file.Gene)
	for _, s := range file.Studies {
		if err := db.AddStudy(s); err != nil {
			return nil, fmt.Errorf("loading penetrance database %s: %w", path, err)
		}
	}
	return db, nil
}
