// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cohortdb aggregates cohort-level genotype/phenotype counts
// across papers for one gene. Cohorts are keyed by (pmid, genotype,
// variant) with last-write-wins replacement so pipeline re-runs never
// double-count.
package cohortdb

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/genephen-engine/pkg/types"
)

// Key is the de-duplication key for a cohort. An absent variant is the
// empty string, a distinct "unspecified variant" bucket that never merges
// with named-variant cohorts from the same paper.
type Key struct {
	PMID     string
	Genotype types.Genotype
	Variant  string
}

// Database holds one gene's cohorts in insertion order.
type Database struct {
	gene    string
	order   []Key
	cohorts map[Key]types.CohortData
	log     logrus.FieldLogger
}

// New creates an empty database for the given gene.
func New(gene string) *Database {
	return &Database{
		gene:    gene,
		cohorts: make(map[Key]types.CohortData),
		log:     logrus.StandardLogger(),
	}
}

// Gene returns the database's gene.
func (d *Database) Gene() string {
	return d.gene
}

// Len returns the number of stored cohorts.
func (d *Database) Len() int {
	return len(d.order)
}

// AddCohort validates and inserts a cohort. A repeated insert for the same
// (pmid, genotype, variant) key replaces the stored record in place; the
// replacement is logged, not an error. A cohort for a different gene is
// accepted with a warning rather than rejected, so a mixed input stream
// degrades loudly instead of crashing.
func (d *Database) AddCohort(c types.CohortData) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("rejecting cohort: %w", err)
	}
	if c.Gene != "" && d.gene != "" && c.Gene != d.gene {
		d.log.WithFields(logrus.Fields{"pmid": c.PMID, "cohort_gene": c.Gene, "database_gene": d.gene}).
			Warn("cohort gene differs from database gene")
	}

	key := Key{PMID: c.PMID, Genotype: c.Genotype, Variant: c.Variant}
	if _, exists := d.cohorts[key]; exists {
		d.log.WithFields(logrus.Fields{"pmid": c.PMID, "genotype": c.Genotype, "variant": c.Variant}).
			Warn("replacing cohort with duplicate key")
	} else {
		d.order = append(d.order, key)
	}
	d.cohorts[key] = c
	return nil
}

// Cohorts returns all cohorts in insertion order.
func (d *Database) Cohorts() []types.CohortData {
	out := make([]types.CohortData, 0, len(d.order))
	for _, key := range d.order {
		out = append(out, d.cohorts[key])
	}
	return out
}

// FilterByGenotype returns the cohorts with the given genotype, in
// insertion order.
func (d *Database) FilterByGenotype(genotype types.Genotype) []types.CohortData {
	var out []types.CohortData
	for _, c := range d.Cohorts() {
		if c.Genotype == genotype {
			out = append(out, c)
		}
	}
	return out
}

// FilterByVariant returns cohorts whose variant contains the given string,
// case-insensitively. Cohorts without a variant never match.
func (d *Database) FilterByVariant(variant string) []types.CohortData {
	needle := strings.ToLower(variant)
	var out []types.CohortData
	for _, c := range d.Cohorts() {
		if c.Variant != "" && strings.Contains(strings.ToLower(c.Variant), needle) {
			out = append(out, c)
		}
	}
	return out
}

// filtered returns the cohorts matching the optional genotype filter.
// An empty genotype means no filter.
func (d *Database) filtered(genotype types.Genotype) []types.CohortData {
	if genotype == "" {
		return d.Cohorts()
	}
	return d.FilterByGenotype(genotype)
}

// TotalCarriers sums carrier counts across cohorts matching the optional
// genotype filter.
func (d *Database) TotalCarriers(genotype types.Genotype) int {
	total := 0
	for _, c := range d.filtered(genotype) {
		total += c.TotalCarriers
	}
	return total
}
