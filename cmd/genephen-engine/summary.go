// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/genephen-engine/internal/aggregate"
	"github.com/pdiddy/genephen-engine/internal/report"
	"github.com/pdiddy/genephen-engine/pkg/types"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [gene]",
	Short: "Print combined cohort and penetrance statistics for a gene",
	Long: `Summary loads a gene's database exports and prints the combined report:
cohort-level phenotype statistics, individual-level penetrance counts, and
per-phenotype combined frequencies with the contribution of each source
labeled. Without a gene argument it summarizes every gene in the input
directory.`,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().String("input-dir", "output", "directory of database exports")
	summaryCmd.Flags().String("genotype", "", "restrict cohort statistics to one genotype")
	summaryCmd.Flags().Bool("json", false, "emit JSON instead of YAML")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	genotype, _ := cmd.Flags().GetString("genotype")
	jsonOutput, _ := cmd.Flags().GetBool("json")

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

	var reports []report.CombinedReport
	for _, gene := range genes {
		pair, err := aggregate.LoadPair(inputDir, gene)
		if err != nil {
			return err
		}
		rep := report.BuildCombined(pair.Cohorts, pair.Penetrance)
		if genotype != "" {
			rep.Cohort = pair.Cohorts.Summary(types.NormalizeGenotype(genotype))
		}
		reports = append(reports, rep)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	data, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
