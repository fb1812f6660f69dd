// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/genephen-engine/internal/cohortdb"
	"github.com/pdiddy/genephen-engine/internal/penetrance"
)

const (
	cohortSuffix = "-cohorts.json"
	studySuffix  = "-studies.json"
)

// CohortExportPath is the canonical location of a gene's cohort export.
func CohortExportPath(dir, gene string) string {
	return filepath.Join(dir, gene+cohortSuffix)
}

// StudyExportPath is the canonical location of a gene's penetrance export.
func StudyExportPath(dir, gene string) string {
	return filepath.Join(dir, gene+studySuffix)
}

// SaveAll writes every gene's database pair to dir using the canonical
// export layout. Empty databases are skipped.
func (d *Driver) SaveAll(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, gene := range d.genes {
		pair := d.pairs[gene]
		if pair.Cohorts.Len() > 0 {
			if err := pair.Cohorts.Save(CohortExportPath(dir, gene)); err != nil {
				return err
			}
		}
		if pair.Penetrance.Len() > 0 {
			if err := pair.Penetrance.Save(StudyExportPath(dir, gene)); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadPair reconstructs a gene's database pair from dir. A missing export
// file yields an empty database for that representation; empty input is a
// valid state.
func LoadPair(dir, gene string) (*Pair, error) {
	pair := &Pair{Gene: gene}

	cohortPath := CohortExportPath(dir, gene)
	if _, err := os.Stat(cohortPath); err == nil {
		db, err := cohortdb.Load(cohortPath)
		if err != nil {
			return nil, err
		}
		pair.Cohorts = db
	} else if os.IsNotExist(err) {
		pair.Cohorts = cohortdb.New(gene)
	} else {
		return nil, fmt.Errorf("checking %s: %w", cohortPath, err)
	}

	studyPath := StudyExportPath(dir, gene)
	if _, err := os.Stat(studyPath); err == nil {
		db, err := penetrance.Load(studyPath)
		if err != nil {
			return nil, err
		}
		pair.Penetrance = db
	} else if os.IsNotExist(err) {
		pair.Penetrance = penetrance.New(gene)
	} else {
		return nil, fmt.Errorf("checking %s: %w", studyPath, err)
	}

	return pair, nil
}

// GenesInDir lists the genes with at least one export file in dir, sorted.
func GenesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading export directory %s: %w", dir, err)
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, cohortSuffix):
			seen[strings.TrimSuffix(name, cohortSuffix)] = true
		case strings.HasSuffix(name, studySuffix):
			seen[strings.TrimSuffix(name, studySuffix)] = true
		}
	}

	genes := make([]string, 0, len(seen))
	for gene := range seen {
		genes = append(genes, gene)
	}
	sort.Strings(genes)
	return genes, nil
}
