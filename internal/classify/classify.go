// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"github.com/pdiddy/genephen-engine/pkg/types"
)

// Kind discriminates the classification sum type.
type Kind int

const (
	// KindCohort is a single cohort-level payload.
	KindCohort Kind = iota

	// KindMultipleCohorts is a payload describing several distinct
	// cohorts from one paper.
	KindMultipleCohorts

	// KindFamily is an individual-level payload yielding one FamilyStudy.
	KindFamily
)

// Result is the typed outcome of classifying one payload. Exactly one
// branch is populated: Cohorts for KindCohort (length 1) and
// KindMultipleCohorts (length ≥ 1), Study for KindFamily.
type Result struct {
	Kind    Kind
	Cohorts []types.CohortData
	Study   *types.FamilyStudy
}

// Classify inspects a raw payload's shape and converts it into typed
// records. Errors are *ClassificationError (shape matches nothing) or
// *ValidationError (shape matched, values violate an invariant); both are
// per-paper outcomes, never fatal to an aggregation run.
func Classify(data []byte, pmid, gene string) (*Result, error) {
	raw, err := decodePayload(data, pmid)
	if err != nil {
		return nil, err
	}

	// The payload's own gene wins over the caller-supplied context gene.
	if raw.Gene != "" {
		gene = raw.Gene
	}

	switch {
	case raw.TotalCarriers != nil:
		cohort, err := convertCohort(rawCohort{
			Variant:         raw.Variant,
			Genotype:        raw.Genotype,
			TotalCarriers:   raw.TotalCarriers,
			PhenotypeCounts: raw.PhenotypeCounts,
			Population:      raw.Population,
			Notes:           raw.Notes,
		}, pmid, gene)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindCohort, Cohorts: []types.CohortData{cohort}}, nil

	case raw.Individuals != nil:
		study, err := convertFamily(raw, pmid, gene)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindFamily, Study: study}, nil

	case raw.Cohorts != nil || raw.CohortData != nil:
		subCohorts := raw.Cohorts
		if subCohorts == nil {
			subCohorts = raw.CohortData
		}
		if len(subCohorts) == 0 {
			return nil, &ValidationError{PMID: pmid, Reason: "cohort list is empty"}
		}
		cohorts := make([]types.CohortData, 0, len(subCohorts))
		for _, rc := range subCohorts {
			if rc.TotalCarriers == nil {
				return nil, &ValidationError{PMID: pmid, Reason: "cohort entry missing total_carriers"}
			}
			cohort, err := convertCohort(rc, pmid, gene)
			if err != nil {
				return nil, err
			}
			cohorts = append(cohorts, cohort)
		}
		if len(cohorts) == 1 {
			return &Result{Kind: KindCohort, Cohorts: cohorts}, nil
		}
		return &Result{Kind: KindMultipleCohorts, Cohorts: cohorts}, nil

	default:
		return nil, &ClassificationError{
			PMID:   pmid,
			Reason: "no total_carriers, individuals, or cohort list",
		}
	}
}

// convertCohort builds a validated CohortData from one cohort-shaped
// object. Invariant violations are reported, never clamped.
func convertCohort(rc rawCohort, pmid, gene string) (types.CohortData, error) {
	counts := make([]types.PhenotypeCount, 0, len(rc.PhenotypeCounts))
	for _, pc := range rc.PhenotypeCounts {
		if pc.AffectedCount == nil {
			return types.CohortData{}, &ValidationError{
				PMID:   pmid,
				Reason: "phenotype count entry missing affected_count",
			}
		}
		counts = append(counts, types.PhenotypeCount{
			Phenotype:     pc.name(),
			AffectedCount: *pc.AffectedCount,
			Notes:         pc.Notes,
		})
	}

	cohort := types.CohortData{
		PMID:            pmid,
		Gene:            gene,
		Variant:         rc.Variant,
		Genotype:        types.NormalizeGenotype(rc.Genotype),
		TotalCarriers:   *rc.TotalCarriers,
		PhenotypeCounts: counts,
		Population:      rc.Population,
		Notes:           rc.Notes,
	}
	if err := cohort.Validate(); err != nil {
		return types.CohortData{}, &ValidationError{PMID: pmid, Reason: err.Error()}
	}
	return cohort, nil
}

// convertFamily builds a validated FamilyStudy from an individual-level
// payload. The study variant is the payload's, falling back to the first
// individual naming one, then "unknown".
func convertFamily(raw *rawPayload, pmid, gene string) (*types.FamilyStudy, error) {
	if len(raw.Individuals) == 0 {
		return nil, &ValidationError{PMID: pmid, Reason: "individuals list is empty"}
	}

	variant := raw.Variant
	if variant == "" {
		for _, ri := range raw.Individuals {
			if ri.Variant != "" {
				variant = ri.Variant
				break
			}
		}
	}
	if variant == "" {
		variant = "unknown"
	}

	study := &types.FamilyStudy{PMID: pmid, Gene: gene, Variant: variant}
	for i, ri := range raw.Individuals {
		ind := types.Individual{
			IndividualID:   ri.id(i),
			Variant:        ri.Variant,
			Genotype:       types.NormalizeGenotype(ri.Genotype),
			Affected:       ri.Affected,
			Age:            ri.Age,
			Sex:            types.NormalizeSex(ri.Sex),
			AgeAtOnset:     ri.AgeAtOnset,
			AgeAtDiagnosis: ri.AgeAtDiagnosis,
			Relation:       ri.Relation,
			FamilyID:       ri.FamilyID,
		}
		for _, rp := range ri.Phenotypes {
			ind.Phenotypes = append(ind.Phenotypes, types.PhenotypeObservation{
				Phenotype: rp.name(),
				Severity:  rp.Severity,
				OnsetAge:  rp.OnsetAge,
				Notes:     rp.Notes,
			})
		}
		study.AddIndividual(ind)
	}

	if err := study.Validate(); err != nil {
		return nil, &ValidationError{PMID: pmid, Reason: err.Error()}
	}
	return study, nil
}
