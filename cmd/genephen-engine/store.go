// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/genephen-engine/internal/aggregate"
	"github.com/pdiddy/genephen-engine/internal/store"
	"github.com/pdiddy/genephen-engine/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store [gene]",
	Short: "Index database exports into the SQLite store",
	Long: `Store loads database exports and ingests them into a SQLite index at
data/index/genephen.db for ad-hoc querying across runs. Re-ingesting a
gene replaces its rows. Without a gene argument it ingests every gene in
the input directory.`,
	RunE: runStore,
}

func init() {
	storeCmd.Flags().String("input-dir", "output", "directory of database exports")
	storeCmd.Flags().String("data-dir", "data", "base directory for the SQLite index")
	rootCmd.AddCommand(storeCmd)
}

func runStore(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	dataDir, _ := cmd.Flags().GetString("data-dir")

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

	s, err := store.NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer s.Close()

	for _, gene := range genes {
		pair, err := aggregate.LoadPair(inputDir, gene)
		if err != nil {
			return err
		}
		summary, err := s.IngestPair(context.Background(), gene, pair.Cohorts, pair.Penetrance)
		if err != nil {
			return err
		}
		fmt.Printf("indexed %s (%d cohorts, %d studies, %d individuals)\n",
			gene, summary.Cohorts, summary.Studies, summary.Individuals)
	}
	return nil
}
