// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
)

// CohortData is one paper's aggregate genotype/phenotype counts, from
// papers that report statistics rather than individual patients
// ("50 patients with heterozygous variants, 35 had long QT syndrome").
type CohortData struct {
	// PMID is the source paper identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Gene is the gene of interest.
	Gene string `json:"gene" yaml:"gene"`

	// Variant is the specific variant, empty when the cohort spans
	// multiple (or unspecified) variants.
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`

	// Genotype is the normalized genotype category shared by the cohort.
	Genotype Genotype `json:"genotype" yaml:"genotype"`

	// TotalCarriers is the cohort size. Always positive.
	TotalCarriers int `json:"total_carriers" yaml:"total_carriers"`

	// PhenotypeCounts lists per-phenotype affected counts in source
	// order. Phenotype names are unique within the list. May be empty.
	PhenotypeCounts []PhenotypeCount `json:"phenotype_counts" yaml:"phenotype_counts"`

	// Population describes the cohort when stated (e.g. "probands").
	Population string `json:"population,omitempty" yaml:"population,omitempty"`

	// Notes carries any additional context from the source paper.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// AffectedCount returns the affected count for the named phenotype and
// whether the cohort reports that phenotype at all. Absence of reporting
// is not evidence of absence, so callers must check the second value
// before using the count in a denominator.
func (c CohortData) AffectedCount(phenotype string) (int, bool) {
	for _, pc := range c.PhenotypeCounts {
		if pc.Phenotype == phenotype {
			return pc.AffectedCount, true
		}
	}
	return 0, false
}

// UnaffectedCount derives the carriers without the named phenotype.
// The second value is false when the cohort does not report the phenotype.
func (c CohortData) UnaffectedCount(phenotype string) (int, bool) {
	affected, ok := c.AffectedCount(phenotype)
	if !ok {
		return 0, false
	}
	return c.TotalCarriers - affected, true
}

// Frequency is the fraction of the cohort's carriers with the named
// phenotype. The second value is false when the cohort does not report it.
func (c CohortData) Frequency(phenotype string) (float64, bool) {
	affected, ok := c.AffectedCount(phenotype)
	if !ok || c.TotalCarriers == 0 {
		return 0, false
	}
	return float64(affected) / float64(c.TotalCarriers), true
}

// Validate checks the cohort's invariants: positive carrier count, unique
// phenotype names, and every affected_count within total_carriers.
func (c CohortData) Validate() error {
	if c.PMID == "" {
		return fmt.Errorf("pmid cannot be blank")
	}
	if c.TotalCarriers <= 0 {
		return fmt.Errorf("cohort %s: total_carriers %d must be positive", c.PMID, c.TotalCarriers)
	}
	seen := make(map[string]bool, len(c.PhenotypeCounts))
	for _, pc := range c.PhenotypeCounts {
		if err := pc.Validate(c.TotalCarriers); err != nil {
			return fmt.Errorf("cohort %s: %w", c.PMID, err)
		}
		if seen[pc.Phenotype] {
			return fmt.Errorf("cohort %s: duplicate phenotype %q", c.PMID, pc.Phenotype)
		}
		seen[pc.Phenotype] = true
	}
	return nil
}
