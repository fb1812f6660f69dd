// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Individual is one person's genotype/phenotype/demographic record from a
// family or case-report paper. Created during classification of one paper's
// payload and immutable thereafter; owned exclusively by its parent
// FamilyStudy.
type Individual struct {
	// IndividualID identifies the person within its study
	// (e.g. "proband", "mother", "patient_1"). Unique per study only.
	IndividualID string `json:"individual_id" yaml:"individual_id"`

	// PMID is the source paper identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Gene is the gene of interest (e.g. "KCNH2").
	Gene string `json:"gene" yaml:"gene"`

	// Variant is the specific variant when the paper names one
	// (e.g. "p.Ser906Leu").
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`

	// Genotype is the normalized genotype category.
	Genotype Genotype `json:"genotype" yaml:"genotype"`

	// Affected is the tri-state phenotype status. Encoded on the wire as
	// true, false, or null.
	Affected AffectedStatus `json:"affected" yaml:"affected"`

	// Phenotypes lists the individual's phenotype observations in source
	// order. Empty for unaffected carriers.
	Phenotypes []PhenotypeObservation `json:"phenotypes,omitempty" yaml:"phenotypes,omitempty"`

	// Age is the individual's age at report time. Nil when not stated;
	// zero is a meaningful age.
	Age *float64 `json:"age,omitempty" yaml:"age,omitempty"`

	// Sex is the normalized sex value.
	Sex Sex `json:"sex,omitempty" yaml:"sex,omitempty"`

	// AgeAtOnset is the age when first symptoms appeared, when stated.
	AgeAtOnset *float64 `json:"age_at_onset,omitempty" yaml:"age_at_onset,omitempty"`

	// AgeAtDiagnosis is the age at diagnosis, when stated.
	AgeAtDiagnosis *float64 `json:"age_at_diagnosis,omitempty" yaml:"age_at_diagnosis,omitempty"`

	// Relation is the family relation when stated (e.g. "mother", "proband").
	Relation string `json:"relation,omitempty" yaml:"relation,omitempty"`

	// FamilyID links individuals of the same family across a study.
	FamilyID string `json:"family_id,omitempty" yaml:"family_id,omitempty"`
}

// IsCarrier reports whether the individual carries the variant
// (heterozygous, homozygous, or compound heterozygous).
func (i Individual) IsCarrier() bool {
	return i.Genotype.IsCarrier()
}

// IsAffectedCarrier reports whether the individual is a carrier with
// explicitly affected status.
func (i Individual) IsAffectedCarrier() bool {
	return i.IsCarrier() && i.Affected == Affected
}

// IsUnaffectedCarrier reports whether the individual is a carrier the
// paper explicitly reports as unaffected. Unknown status never counts.
func (i Individual) IsUnaffectedCarrier() bool {
	return i.IsCarrier() && i.Affected == Unaffected
}

// HasPhenotype reports whether the named phenotype appears in the
// individual's observation list.
func (i Individual) HasPhenotype(phenotype string) bool {
	for _, p := range i.Phenotypes {
		if p.Phenotype == phenotype {
			return true
		}
	}
	return false
}

// Validate checks the individual's internal invariants.
func (i Individual) Validate() error {
	if strings.TrimSpace(i.IndividualID) == "" {
		return fmt.Errorf("individual_id cannot be blank")
	}
	for _, p := range i.Phenotypes {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("individual %q: %w", i.IndividualID, err)
		}
	}
	for name, v := range map[string]*float64{
		"age":              i.Age,
		"age_at_onset":     i.AgeAtOnset,
		"age_at_diagnosis": i.AgeAtDiagnosis,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("individual %q: %s %v is negative", i.IndividualID, name, *v)
		}
	}
	if i.Age != nil && i.AgeAtOnset != nil && *i.AgeAtOnset > *i.Age {
		return fmt.Errorf("individual %q: age_at_onset %v exceeds age %v",
			i.IndividualID, *i.AgeAtOnset, *i.Age)
	}
	return nil
}
