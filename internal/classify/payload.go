// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify turns raw LLM extraction payloads into typed cohort or
// family-study records. It decides by payload shape, not content semantics,
// and produces a closed set of outcomes: cohort, multiple cohorts, family
// study, or a classification/validation failure.
package classify

import (
	"encoding/json"
	"fmt"

	"github.com/pdiddy/genephen-engine/pkg/types"
)

// rawPayload is the superset of fields a payload may carry. Which fields
// are populated decides the classification:
//
//	total_carriers + phenotype_counts  → cohort
//	individuals                        → family study
//	cohorts / cohort_data              → multiple cohorts
type rawPayload struct {
	Gene     string `json:"gene"`
	Variant  string `json:"variant"`
	Genotype string `json:"genotype"`

	// Cohort shape.
	TotalCarriers   *int                 `json:"total_carriers"`
	PhenotypeCounts []rawPhenotypeCount  `json:"phenotype_counts"`
	Population      string               `json:"population"`
	Notes           string               `json:"notes"`

	// Family shape.
	Individuals []rawIndividual `json:"individuals"`

	// Multiple-cohorts shape. The unified extraction schema emits
	// "cohort_data"; "cohorts" is accepted as the database-export spelling.
	Cohorts    []rawCohort `json:"cohorts"`
	CohortData []rawCohort `json:"cohort_data"`
}

// rawCohort is one cohort-shaped sub-object of a multiple-cohorts payload.
type rawCohort struct {
	Variant         string              `json:"variant"`
	Genotype        string              `json:"genotype"`
	TotalCarriers   *int                `json:"total_carriers"`
	PhenotypeCounts []rawPhenotypeCount `json:"phenotype_counts"`
	Population      string              `json:"population"`
	Notes           string              `json:"notes"`
}

// rawPhenotypeCount accepts the snake_case wire fields of a phenotype
// count entry.
type rawPhenotypeCount struct {
	Phenotype     string `json:"phenotype"`
	Name          string `json:"name"`
	AffectedCount *int   `json:"affected_count"`
	Notes         string `json:"notes"`
}

// name returns the phenotype name, accepting the legacy "name" spelling
// some extraction prompts produce.
func (r rawPhenotypeCount) name() string {
	if r.Phenotype != "" {
		return r.Phenotype
	}
	return r.Name
}

// rawIndividual accepts the snake_case wire fields of one individual.
// Optional numerics are pointers so an absent field stays absent; zero is a
// meaningful age.
type rawIndividual struct {
	IndividualID   string               `json:"individual_id"`
	ID             string               `json:"id"`
	Relation       string               `json:"relation"`
	Variant        string               `json:"variant"`
	Genotype       string               `json:"genotype"`
	Affected       types.AffectedStatus `json:"affected"`
	Phenotypes     []rawPhenotype       `json:"phenotypes"`
	Age            *float64             `json:"age"`
	Sex            string               `json:"sex"`
	AgeAtOnset     *float64             `json:"age_at_onset"`
	AgeAtDiagnosis *float64             `json:"age_at_diagnosis"`
	FamilyID       string               `json:"family_id"`
}

// id returns the individual identifier, accepting the legacy "id" spelling.
// Falls back to a generated patient_N id when the payload names none.
func (r rawIndividual) id(position int) string {
	if r.IndividualID != "" {
		return r.IndividualID
	}
	if r.ID != "" {
		return r.ID
	}
	return fmt.Sprintf("patient_%d", position+1)
}

// rawPhenotype accepts one phenotype observation.
type rawPhenotype struct {
	Phenotype string `json:"phenotype"`
	Name      string `json:"name"`
	Severity  string `json:"severity"`
	OnsetAge  string `json:"onset_age"`
	Notes     string `json:"notes"`
}

func (r rawPhenotype) name() string {
	if r.Phenotype != "" {
		return r.Phenotype
	}
	return r.Name
}

// decodePayload parses the raw bytes into the superset shape. A payload
// that is not a JSON object at the top level cannot be classified.
func decodePayload(data []byte, pmid string) (*rawPayload, error) {
	var raw rawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ClassificationError{PMID: pmid, Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}
	return &raw, nil
}
