// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/genephen-engine/internal/aggregate"
	"github.com/pdiddy/genephen-engine/pkg/types"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Route extraction payloads into per-gene databases",
	Long: `Aggregate reads payload envelopes (*.json) from the payloads directory,
classifies each as cohort-level or individual-level, applies the relevance
confidence gate, and writes per-gene database exports plus a per-paper
outcome audit to the output directory.

A paper that fails classification or validation is tallied and skipped;
the run continues.`,
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().String("payloads-dir", "payloads", "directory of payload envelopes")
	aggregateCmd.Flags().String("output-dir", "output", "directory for database exports")
	aggregateCmd.Flags().Float64("min-confidence", 0, "relevance confidence threshold (default 0.7)")
	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	payloadsDir, _ := cmd.Flags().GetString("payloads-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	minConfidence, _ := cmd.Flags().GetFloat64("min-confidence")

	cfg := types.AggregationConfig{
		GateConfig:  types.GateConfig{MinConfidence: minConfidence},
		PayloadsDir: payloadsDir,
		OutputDir:   outputDir,
	}

	driver := aggregate.NewDriver(cfg.GateConfig, logrus.StandardLogger())

	summary, err := driver.ProcessDir(cfg.PayloadsDir, os.Stdout)
	if err != nil {
		return err
	}

	if err := driver.SaveAll(cfg.OutputDir); err != nil {
		return err
	}
	if err := writeOutcomes(cfg.OutputDir, driver); err != nil {
		return err
	}

	for _, gene := range driver.Genes() {
		pair := driver.Pair(gene)
		fmt.Fprintf(os.Stdout, "%s: %d cohort(s), %d family study(ies)\n",
			gene, pair.Cohorts.Len(), pair.Penetrance.Len())
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d paper(s) failed aggregation",
			summary.ClassificationFailures+summary.ValidationFailures)
	}
	return nil
}

// writeOutcomes records the per-paper audit trail next to the exports.
func writeOutcomes(dir string, driver *aggregate.Driver) error {
	audit := struct {
		Summary  aggregate.RunSummary     `yaml:"summary"`
		Outcomes []aggregate.PaperOutcome `yaml:"outcomes"`
	}{
		Summary:  driver.Summary(),
		Outcomes: driver.Outcomes(),
	}
	data, err := yaml.Marshal(audit)
	if err != nil {
		return fmt.Errorf("marshaling outcomes: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "outcomes.yaml"), data, 0o644)
}
