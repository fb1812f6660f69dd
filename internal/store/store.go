// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists completed cohort and penetrance databases to a
// SQLite index for ad-hoc querying across runs. Ingestion replaces a
// gene's rows wholesale, matching the in-memory databases' idempotent
// re-run semantics.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/genephen-engine/internal/cohortdb"
	"github.com/pdiddy/genephen-engine/internal/penetrance"
	"github.com/pdiddy/genephen-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "genephen.db"
)

// Store manages the SQLite index database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the index database at dataDir/index/genephen.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS cohorts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			pmid TEXT NOT NULL,
			gene TEXT NOT NULL,
			variant TEXT NOT NULL DEFAULT '',
			genotype TEXT NOT NULL,
			total_carriers INTEGER NOT NULL,
			population TEXT,
			notes TEXT,
			UNIQUE(pmid, gene, genotype, variant)
		)`,
		`CREATE TABLE IF NOT EXISTS phenotype_counts (
			cohort_rowid INTEGER NOT NULL REFERENCES cohorts(rowid) ON DELETE CASCADE,
			phenotype TEXT NOT NULL,
			affected_count INTEGER NOT NULL,
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS studies (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			pmid TEXT NOT NULL,
			gene TEXT NOT NULL,
			variant TEXT NOT NULL,
			UNIQUE(pmid, gene)
		)`,
		`CREATE TABLE IF NOT EXISTS individuals (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			study_rowid INTEGER NOT NULL REFERENCES studies(rowid) ON DELETE CASCADE,
			individual_id TEXT NOT NULL,
			pmid TEXT NOT NULL,
			gene TEXT NOT NULL,
			variant TEXT,
			genotype TEXT NOT NULL,
			affected TEXT NOT NULL,
			age REAL,
			sex TEXT,
			age_at_onset REAL,
			age_at_diagnosis REAL,
			relation TEXT,
			family_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS individual_phenotypes (
			individual_rowid INTEGER NOT NULL REFERENCES individuals(rowid) ON DELETE CASCADE,
			phenotype TEXT NOT NULL,
			severity TEXT,
			onset_age TEXT,
			notes TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cohorts_gene ON cohorts(gene)`,
		`CREATE INDEX IF NOT EXISTS idx_studies_gene ON studies(gene)`,
		`CREATE INDEX IF NOT EXISTS idx_individuals_gene ON individuals(gene)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from one ingestion run.
type IngestSummary struct {
	Cohorts     int
	Studies     int
	Individuals int
}

// IngestPair replaces one gene's rows with the contents of its database
// pair, in a single transaction.
func (s *Store) IngestPair(ctx context.Context, gene string, cohorts *cohortdb.Database, individuals *penetrance.Database) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM cohorts WHERE gene = ?`,
		`DELETE FROM studies WHERE gene = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, gene); err != nil {
			return IngestSummary{}, fmt.Errorf("clearing gene %s: %w", gene, err)
		}
	}

	var summary IngestSummary

	for _, c := range cohorts.Cohorts() {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO cohorts (pmid, gene, variant, genotype, total_carriers, population, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.PMID, c.Gene, c.Variant, string(c.Genotype), c.TotalCarriers, c.Population, c.Notes,
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("inserting cohort %s: %w", c.PMID, err)
		}
		cohortRowID, err := res.LastInsertId()
		if err != nil {
			return IngestSummary{}, fmt.Errorf("cohort rowid: %w", err)
		}
		for _, pc := range c.PhenotypeCounts {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO phenotype_counts (cohort_rowid, phenotype, affected_count, notes)
				 VALUES (?, ?, ?, ?)`,
				cohortRowID, pc.Phenotype, pc.AffectedCount, pc.Notes,
			); err != nil {
				return IngestSummary{}, fmt.Errorf("inserting phenotype count %q: %w", pc.Phenotype, err)
			}
		}
		summary.Cohorts++
	}

	for _, study := range individuals.Studies() {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO studies (pmid, gene, variant) VALUES (?, ?, ?)`,
			study.PMID, study.Gene, study.Variant,
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("inserting study %s: %w", study.PMID, err)
		}
		studyRowID, err := res.LastInsertId()
		if err != nil {
			return IngestSummary{}, fmt.Errorf("study rowid: %w", err)
		}
		summary.Studies++

		for _, ind := range study.Individuals {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO individuals (study_rowid, individual_id, pmid, gene, variant, genotype,
					affected, age, sex, age_at_onset, age_at_diagnosis, relation, family_id)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				studyRowID, ind.IndividualID, ind.PMID, ind.Gene, ind.Variant,
				string(ind.Genotype), ind.Affected.String(),
				nullableFloat(ind.Age), string(ind.Sex),
				nullableFloat(ind.AgeAtOnset), nullableFloat(ind.AgeAtDiagnosis),
				ind.Relation, ind.FamilyID,
			)
			if err != nil {
				return IngestSummary{}, fmt.Errorf("inserting individual %s: %w", ind.IndividualID, err)
			}
			indRowID, err := res.LastInsertId()
			if err != nil {
				return IngestSummary{}, fmt.Errorf("individual rowid: %w", err)
			}
			for _, p := range ind.Phenotypes {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO individual_phenotypes (individual_rowid, phenotype, severity, onset_age, notes)
					 VALUES (?, ?, ?, ?, ?)`,
					indRowID, p.Phenotype, p.Severity, p.OnsetAge, p.Notes,
				); err != nil {
					return IngestSummary{}, fmt.Errorf("inserting phenotype %q: %w", p.Phenotype, err)
				}
			}
			summary.Individuals++
		}
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing ingest: %w", err)
	}
	return summary, nil
}

// nullableFloat maps an optional numeric to a SQL value, keeping absent
// distinct from zero.
func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// Genes lists the genes present in the index, sorted.
func (s *Store) Genes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT gene FROM cohorts UNION SELECT gene FROM studies ORDER BY gene`)
	if err != nil {
		return nil, fmt.Errorf("querying genes: %w", err)
	}
	defer rows.Close()

	var genes []string
	for rows.Next() {
		var gene string
		if err := rows.Scan(&gene); err != nil {
			return nil, fmt.Errorf("scanning gene: %w", err)
		}
		genes = append(genes, gene)
	}
	return genes, rows.Err()
}

// Counts returns the stored cohort and individual counts for a gene.
func (s *Store) Counts(ctx context.Context, gene string) (cohorts, individuals int, err error) {
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM cohorts WHERE gene = ?`, gene).Scan(&cohorts); err != nil {
		return 0, 0, fmt.Errorf("counting cohorts: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM individuals WHERE gene = ?`, gene).Scan(&individuals); err != nil {
		return 0, 0, fmt.Errorf("counting individuals: %w", err)
	}
	return cohorts, individuals, nil
}
