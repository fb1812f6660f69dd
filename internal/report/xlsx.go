// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/genephen-engine/internal/cohortdb"
	"github.com/pdiddy/genephen-engine/internal/penetrance"
)

const (
	sheetCohorts     = "Cohorts"
	sheetIndividuals = "Individuals"
	sheetSummary     = "Summary"
)

// summaryHeader is the column layout of the combined-statistics sheet.
var summaryHeader = []string{
	"phenotype", "genotype",
	"cohort_affected", "cohort_total",
	"individual_affected", "individual_total",
	"combined_affected", "combined_total", "combined_frequency",
}

// WriteWorkbook writes one gene's pair of databases plus the combined
// report as an XLSX workbook with Cohorts, Individuals, and Summary
// sheets mirroring the CSV layouts.
func WriteWorkbook(path string, cohorts *cohortdb.Database, individuals *penetrance.Database) error {
	combined := BuildCombined(cohorts, individuals)

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetCohorts)
	if err := writeSheet(f, sheetCohorts, CohortHeader, CohortRows(cohorts)); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetIndividuals); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheetIndividuals, err)
	}
	if err := writeSheet(f, sheetIndividuals, IndividualHeader, IndividualRows(individuals)); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheetSummary, err)
	}
	if err := writeSheet(f, sheetSummary, summaryHeader, summaryRows(combined)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// summaryRows renders the combined statistics as table rows.
func summaryRows(rep CombinedReport) [][]string {
	var rows [][]string
	for _, stat := range rep.Combined {
		frequency := ""
		if stat.CombinedFrequency != nil {
			frequency = strconv.FormatFloat(*stat.CombinedFrequency, 'f', 4, 64)
		}
		rows = append(rows, []string{
			stat.Phenotype, string(stat.Genotype),
			strconv.Itoa(stat.CohortSource.Affected), strconv.Itoa(stat.CohortSource.Total),
			strconv.Itoa(stat.IndividualSource.Affected), strconv.Itoa(stat.IndividualSource.Total),
			strconv.Itoa(stat.CombinedAffected), strconv.Itoa(stat.CombinedTotal),
			frequency,
		})
	}
	return rows
}

// writeSheet fills one sheet with a header row and data rows.
func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("addressing cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("writing header cell %s: %w", cell, err)
		}
	}
	for r, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return fmt.Errorf("addressing cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}
	return nil
}
