// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
)

// FamilyStudy is one paper's set of individuals sharing a variant. One
// FamilyStudy per extraction payload classified as individual-level. Never
// mutated after insertion into a database except by aggregation
// re-derivation.
type FamilyStudy struct {
	// PMID is the source paper identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Gene is the gene of interest.
	Gene string `json:"gene" yaml:"gene"`

	// Variant is the variant under study, "unknown" when the payload
	// names none.
	Variant string `json:"variant" yaml:"variant"`

	// Individuals lists the study's members in source order. Non-empty.
	Individuals []Individual `json:"individuals" yaml:"individuals"`
}

// AddIndividual appends an individual, inheriting the study's pmid, gene,
// variant, and a default family id when the individual omits them.
func (f *FamilyStudy) AddIndividual(ind Individual) {
	ind.PMID = f.PMID
	if ind.Gene == "" {
		ind.Gene = f.Gene
	}
	if ind.Variant == "" {
		ind.Variant = f.Variant
	}
	if ind.FamilyID == "" {
		ind.FamilyID = f.PMID + "_family1"
	}
	f.Individuals = append(f.Individuals, ind)
}

// Carriers returns the study's carriers in source order, optionally
// filtered to a single genotype. An empty genotype means no filter.
func (f FamilyStudy) Carriers(genotype Genotype) []Individual {
	var carriers []Individual
	for _, ind := range f.Individuals {
		if !ind.IsCarrier() {
			continue
		}
		if genotype != "" && ind.Genotype != genotype {
			continue
		}
		carriers = append(carriers, ind)
	}
	return carriers
}

// AffectedCarriers returns carriers with explicitly affected status.
func (f FamilyStudy) AffectedCarriers(genotype Genotype) []Individual {
	var affected []Individual
	for _, c := range f.Carriers(genotype) {
		if c.Affected == Affected {
			affected = append(affected, c)
		}
	}
	return affected
}

// UnaffectedCarriers returns carriers the paper explicitly reports as
// unaffected. Unknown-status carriers appear in neither bucket.
func (f FamilyStudy) UnaffectedCarriers(genotype Genotype) []Individual {
	var unaffected []Individual
	for _, c := range f.Carriers(genotype) {
		if c.Affected == Unaffected {
			unaffected = append(unaffected, c)
		}
	}
	return unaffected
}

// Penetrance is the fraction of the study's carriers who are affected,
// optionally restricted to a named phenotype and genotype. The second
// return value is false when the study has no matching carriers.
func (f FamilyStudy) Penetrance(phenotype string, genotype Genotype) (float64, bool) {
	carriers := f.Carriers(genotype)
	if len(carriers) == 0 {
		return 0, false
	}
	affected := 0
	for _, c := range carriers {
		if c.Affected != Affected {
			continue
		}
		if phenotype != "" && !c.HasPhenotype(phenotype) {
			continue
		}
		affected++
	}
	return float64(affected) / float64(len(carriers)), true
}

// PhenotypeCounts counts how many carriers exhibit each phenotype.
func (f FamilyStudy) PhenotypeCounts(genotype Genotype) map[string]int {
	counts := make(map[string]int)
	for _, c := range f.Carriers(genotype) {
		for _, p := range c.Phenotypes {
			counts[p.Phenotype]++
		}
	}
	return counts
}

// Validate checks the study's invariants: at least one individual, unique
// individual ids, and valid members.
func (f FamilyStudy) Validate() error {
	if f.PMID == "" {
		return fmt.Errorf("pmid cannot be blank")
	}
	if len(f.Individuals) == 0 {
		return fmt.Errorf("family study %s has no individuals", f.PMID)
	}
	seen := make(map[string]bool, len(f.Individuals))
	for _, ind := range f.Individuals {
		if err := ind.Validate(); err != nil {
			return err
		}
		if seen[ind.IndividualID] {
			return fmt.Errorf("duplicate individual_id %q in study %s", ind.IndividualID, f.PMID)
		}
		seen[ind.IndividualID] = true
	}
	return nil
}
