// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package penetrance aggregates individual-level family studies across
// papers for one gene and answers carrier/penetrance queries. Its central
// invariant: a carrier with unknown phenotype status counts as neither
// affected nor unaffected, so penetrance is never artificially inflated
// or deflated.
package penetrance

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/genephen-engine/pkg/types"
)

// Database holds one gene's family studies in insertion order, at most
// one per paper.
type Database struct {
	gene    string
	order   []string
	studies map[string]types.FamilyStudy
	log     logrus.FieldLogger
}

// New creates an empty database for the given gene.
func New(gene string) *Database {
	return &Database{
		gene:    gene,
		studies: make(map[string]types.FamilyStudy),
		log:     logrus.StandardLogger(),
	}
}

// Gene returns the database's gene.
func (d *Database) Gene() string {
	return d.gene
}

// Len returns the number of stored studies.
func (d *Database) Len() int {
	return len(d.order)
}

// AddStudy validates and inserts a study. A given paper yields at most
// one study: re-insertion under an existing pmid replaces the stored
// record in place (idempotent re-run semantics), preserving its position
// in the flattening order.
func (d *Database) AddStudy(s types.FamilyStudy) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("rejecting study: %w", err)
	}
	if _, exists := d.studies[s.PMID]; exists {
		d.log.WithField("pmid", s.PMID).Warn("replacing study with duplicate pmid")
	} else {
		d.order = append(d.order, s.PMID)
	}
	d.studies[s.PMID] = s
	return nil
}

// Studies returns all studies in insertion order.
func (d *Database) Studies() []types.FamilyStudy {
	out := make([]types.FamilyStudy, 0, len(d.order))
	for _, pmid := range d.order {
		out = append(out, d.studies[pmid])
	}
	return out
}

// AllIndividuals flattens every study's individuals, ordered by study
// insertion then by source order within each study. Deterministic; no
// re-sorting.
func (d *Database) AllIndividuals() []types.Individual {
	var out []types.Individual
	for _, s := range d.Studies() {
		out = append(out, s.Individuals...)
	}
	return out
}

// AllCarriers returns every individual with a carrier genotype
// (heterozygous, homozygous, or compound heterozygous).
func (d *Database) AllCarriers() []types.Individual {
	var out []types.Individual
	for _, ind := range d.AllIndividuals() {
		if ind.IsCarrier() {
			out = append(out, ind)
		}
	}
	return out
}

// AffectedCarriers returns carriers with explicitly affected status,
// additionally requiring the named phenotype when one is given.
func (d *Database) AffectedCarriers(phenotype string) []types.Individual {
	var out []types.Individual
	for _, c := range d.AllCarriers() {
		if c.Affected != types.Affected {
			continue
		}
		if phenotype != "" && !c.HasPhenotype(phenotype) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// UnaffectedCarriers returns carriers whose papers explicitly report them
// as unaffected, with an optional genotype filter. Unknown-status carriers
// appear in neither this nor AffectedCarriers.
func (d *Database) UnaffectedCarriers(genotype types.Genotype) []types.Individual {
	var out []types.Individual
	for _, c := range d.AllCarriers() {
		if c.Affected != types.Unaffected {
			continue
		}
		if genotype != "" && c.Genotype != genotype {
			continue
		}
		out = append(out, c)
	}
	return out
}
