// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the genephen-engine CLI.
// The upstream pipeline (PubMed retrieval, LLM extraction) hands over raw
// per-paper payloads; the CLI aggregates them into cohort and penetrance
// databases, summarizes, exports, and indexes the results.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the genephen-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "genephen-engine",
	Short: "Aggregate genotype/phenotype extraction results from gene literature",
	Long: `genephen-engine aggregates structured extraction payloads produced from
biomedical literature into two complementary databases per gene: cohort-level
aggregate statistics and individual-level penetrance records.

Each stage is a subcommand: aggregate routes payloads into databases, summary
prints cross-paper statistics, export writes tabular reports, and store
indexes completed databases into SQLite.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./genephen-engine.yaml or ~/.config/genephen-engine/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("genephen-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "genephen-engine"))
		}
	}

	viper.SetEnvPrefix("GENEPHEN_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
