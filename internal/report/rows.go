// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles export views over completed databases: flat
// tabular row sets for CSV/XLSX and a combined cohort+individual summary
// that keeps the two counting methodologies separately labeled.
package report

import (
	"strconv"
	"strings"

	"github.com/pdiddy/genephen-engine/internal/cohortdb"
	"github.com/pdiddy/genephen-engine/internal/penetrance"
)

// phenotypeDelimiter joins an individual's phenotype list into one CSV field.
const phenotypeDelimiter = "; "

// CohortHeader is the column layout of the cohort table: one row per
// (cohort, phenotype_count) pair.
var CohortHeader = []string{
	"pmid", "gene", "variant", "genotype", "total_carriers", "population",
	"phenotype", "affected_count", "unaffected_count", "notes",
}

// IndividualHeader is the column layout of the individual table: one row
// per individual, phenotypes flattened to a delimited string.
var IndividualHeader = []string{
	"pmid", "gene", "variant", "genotype", "individual_id", "relation",
	"affected", "sex", "age", "age_at_onset", "age_at_diagnosis",
	"family_id", "phenotypes",
}

// CohortRows flattens the database into table rows (header excluded).
// A cohort with three phenotype counts yields three rows sharing its
// carrier/genotype/variant fields; a cohort with none yields a single row
// with empty phenotype columns so its carrier counts still appear.
func CohortRows(db *cohortdb.Database) [][]string {
	var rows [][]string
	for _, c := range db.Cohorts() {
		base := []string{
			c.PMID, c.Gene, c.Variant, string(c.Genotype),
			strconv.Itoa(c.TotalCarriers), c.Population,
		}
		if len(c.PhenotypeCounts) == 0 {
			rows = append(rows, append(append([]string{}, base...), "", "", "", c.Notes))
			continue
		}
		for _, pc := range c.PhenotypeCounts {
			row := append([]string{}, base...)
			row = append(row,
				pc.Phenotype,
				strconv.Itoa(pc.AffectedCount),
				strconv.Itoa(pc.UnaffectedCount(c.TotalCarriers)),
				pc.Notes,
			)
			rows = append(rows, row)
		}
	}
	return rows
}

// IndividualRows flattens the database into table rows (header excluded),
// one per individual in deterministic flattening order.
func IndividualRows(db *penetrance.Database) [][]string {
	var rows [][]string
	for _, ind := range db.AllIndividuals() {
		var phenotypes []string
		for _, p := range ind.Phenotypes {
			phenotypes = append(phenotypes, p.Phenotype)
		}
		rows = append(rows, []string{
			ind.PMID, ind.Gene, ind.Variant, string(ind.Genotype),
			ind.IndividualID, ind.Relation, ind.Affected.String(),
			string(ind.Sex), formatOptionalFloat(ind.Age),
			formatOptionalFloat(ind.AgeAtOnset), formatOptionalFloat(ind.AgeAtDiagnosis),
			ind.FamilyID, strings.Join(phenotypes, phenotypeDelimiter),
		})
	}
	return rows
}

// formatOptionalFloat renders an optional numeric field, keeping absent
// distinct from zero.
func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
