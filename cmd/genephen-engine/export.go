// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/genephen-engine/internal/aggregate"
	"github.com/pdiddy/genephen-engine/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export [gene]",
	Short: "Write tabular reports (CSV or XLSX) from database exports",
	Long: `Export loads a gene's database exports and writes flat tables: one row
per (cohort, phenotype) pair for cohort data, one row per individual for
penetrance data. The xlsx format adds a Summary sheet with the combined
per-phenotype statistics. Without a gene argument it exports every gene
in the input directory.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("input-dir", "output", "directory of database exports")
	exportCmd.Flags().String("output-dir", "output", "directory for report files")
	exportCmd.Flags().String("format", "csv", "report format: csv or xlsx")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	format, _ := cmd.Flags().GetString("format")

	genes := args
	if len(genes) == 0 {
		var err error
		genes, err = aggregate.GenesInDir(inputDir)
		if err != nil {
			return err
		}
	}
	if len(genes) == 0 {
		fmt.Println("No database exports found.")
		return nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, gene := range genes {
		pair, err := aggregate.LoadPair(inputDir, gene)
		if err != nil {
			return err
		}

		switch format {
		case "csv", "":
			if err := writeCSV(outputDir, gene, pair); err != nil {
				return err
			}
			fmt.Printf("Exported %s-cohorts.csv and %s-individuals.csv\n", gene, gene)
		case "xlsx":
			path := filepath.Join(outputDir, gene+".xlsx")
			if err := report.WriteWorkbook(path, pair.Cohorts, pair.Penetrance); err != nil {
				return err
			}
			fmt.Printf("Exported %s\n", path)
		default:
			return fmt.Errorf("unsupported format %q: use csv or xlsx", format)
		}
	}
	return nil
}

func writeCSV(outputDir, gene string, pair *aggregate.Pair) error {
	cohortFile, err := os.Create(filepath.Join(outputDir, gene+"-cohorts.csv"))
	if err != nil {
		return fmt.Errorf("creating cohort CSV: %w", err)
	}
	defer cohortFile.Close()
	if err := report.WriteCohortCSV(cohortFile, pair.Cohorts); err != nil {
		return err
	}

	indFile, err := os.Create(filepath.Join(outputDir, gene+"-individuals.csv"))
	if err != nil {
		return fmt.Errorf("creating individual CSV: %w", err)
	}
	defer indFile.Close()
	return report.WriteIndividualCSV(indFile, pair.Penetrance)
}
