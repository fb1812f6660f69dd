// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the genotype/phenotype data model shared across the
// aggregation pipeline: observation primitives, individual and cohort
// records, and the stage configuration structs.
package types

import (
	"fmt"
	"strings"
)

// PhenotypeObservation is a single phenotype mention for one variant
// carrier. Immutable once created; owned by the Individual or extraction
// record that created it.
type PhenotypeObservation struct {
	// Phenotype is the phenotype name (e.g. "long QT syndrome"). Required.
	Phenotype string `json:"phenotype" yaml:"phenotype"`

	// Severity is an optional free-text severity qualifier.
	Severity string `json:"severity,omitempty" yaml:"severity,omitempty"`

	// OnsetAge is an optional free-text age-of-onset pointer
	// (e.g. "infancy", "28").
	OnsetAge string `json:"onset_age,omitempty" yaml:"onset_age,omitempty"`

	// Notes carries any additional context from the source paper.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Validate checks that the observation names a phenotype.
func (p PhenotypeObservation) Validate() error {
	if strings.TrimSpace(p.Phenotype) == "" {
		return fmt.Errorf("phenotype cannot be blank")
	}
	return nil
}

// PhenotypeCount is the number of carriers in a cohort who have a given
// phenotype. The unaffected count is derived from the owning cohort's
// total_carriers and never stored.
type PhenotypeCount struct {
	// Phenotype is the phenotype name. Unique within the owning cohort.
	Phenotype string `json:"phenotype" yaml:"phenotype"`

	// AffectedCount is the number of carriers with this phenotype.
	AffectedCount int `json:"affected_count" yaml:"affected_count"`

	// Notes carries any additional context from the source paper.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// UnaffectedCount derives the number of carriers without this phenotype
// from the owning cohort's total carrier count.
func (p PhenotypeCount) UnaffectedCount(totalCarriers int) int {
	return totalCarriers - p.AffectedCount
}

// Validate checks the count against the owning cohort's total carriers.
func (p PhenotypeCount) Validate(totalCarriers int) error {
	if strings.TrimSpace(p.Phenotype) == "" {
		return fmt.Errorf("phenotype cannot be blank")
	}
	if p.AffectedCount < 0 {
		return fmt.Errorf("phenotype %q: affected_count %d is negative", p.Phenotype, p.AffectedCount)
	}
	if p.AffectedCount > totalCarriers {
		return fmt.Errorf("phenotype %q: affected_count %d exceeds total_carriers %d",
			p.Phenotype, p.AffectedCount, totalCarriers)
	}
	return nil
}
