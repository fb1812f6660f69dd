// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cohortdb

import (
	"github.com/pdiddy/genephen-engine/pkg/types"
)

// AggregatePhenotypeCounts sums affected and total carrier counts for the
// named phenotype across cohorts matching the optional genotype filter.
// Only cohorts that report the phenotype contribute: a cohort that never
// mentions it is excluded from the denominator entirely, because absence
// of reporting is not evidence of absence.
func (d *Database) AggregatePhenotypeCounts(phenotype string, genotype types.Genotype) (affected, total int) {
	for _, c := range d.filtered(genotype) {
		count, ok := c.AffectedCount(phenotype)
		if !ok {
			continue
		}
		affected += count
		total += c.TotalCarriers
	}
	return affected, total
}

// AggregateFrequency is affected/total across the matching cohorts. The
// second value is false when no cohort reports the phenotype (zero
// denominator); callers get a defined sentinel, never a division failure.
func (d *Database) AggregateFrequency(phenotype string, genotype types.Genotype) (float64, bool) {
	affected, total := d.AggregatePhenotypeCounts(phenotype, genotype)
	if total == 0 {
		return 0, false
	}
	return float64(affected) / float64(total), true
}

// PhenotypeStat is the per-phenotype block of a cohort summary.
// Frequency is nil when the denominator is zero.
type PhenotypeStat struct {
	AffectedCount int      `json:"affected_count" yaml:"affected_count"`
	TotalCarriers int      `json:"total_carriers" yaml:"total_carriers"`
	Frequency     *float64 `json:"frequency" yaml:"frequency"`
}

// Summary is the external-facing cohort report: totals plus per-phenotype
// statistics for every phenotype seen across the filtered cohorts. A pure
// read view; building it never mutates the database.
type Summary struct {
	Gene                string                   `json:"gene" yaml:"gene"`
	GenotypeFilter      types.Genotype           `json:"genotype_filter,omitempty" yaml:"genotype_filter,omitempty"`
	TotalCohorts        int                      `json:"total_cohorts" yaml:"total_cohorts"`
	TotalCarriers       int                      `json:"total_carriers" yaml:"total_carriers"`
	PhenotypeStatistics map[string]PhenotypeStat `json:"phenotype_statistics" yaml:"phenotype_statistics"`
}

// Summary builds the summary over cohorts matching the optional genotype
// filter. An empty database yields zero counts and an empty statistics
// map, a valid state rather than an error.
func (d *Database) Summary(genotype types.Genotype) Summary {
	cohorts := d.filtered(genotype)

	phenotypes := make(map[string]bool)
	totalCarriers := 0
	for _, c := range cohorts {
		totalCarriers += c.TotalCarriers
		for _, pc := range c.PhenotypeCounts {
			phenotypes[pc.Phenotype] = true
		}
	}

	stats := make(map[string]PhenotypeStat, len(phenotypes))
	for phenotype := range phenotypes {
		affected, total := d.AggregatePhenotypeCounts(phenotype, genotype)
		stat := PhenotypeStat{AffectedCount: affected, TotalCarriers: total}
		if total > 0 {
			freq := float64(affected) / float64(total)
			stat.Frequency = &freq
		}
		stats[phenotype] = stat
	}

	return Summary{
		Gene:                d.gene,
		GenotypeFilter:      genotype,
		TotalCohorts:        len(cohorts),
		TotalCarriers:       totalCarriers,
		PhenotypeStatistics: stats,
	}
}
