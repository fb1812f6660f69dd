// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"sort"

	"github.com/pdiddy/genephen-engine/internal/cohortdb"
	"github.com/pdiddy/genephen-engine/internal/penetrance"
	"github.com/pdiddy/genephen-engine/pkg/types"
)

// SourceCounts is one source's contribution to a phenotype+genotype cell.
type SourceCounts struct {
	Affected int `json:"affected" yaml:"affected"`
	Total    int `json:"total" yaml:"total"`
}

// CombinedStat merges cohort-derived and individual-derived counts for one
// phenotype+genotype pair. The per-source split stays visible so a
// consumer can see the provenance of every number; the combined frequency
// never silently blends the two methodologies into an opaque figure.
type CombinedStat struct {
	Phenotype         string         `json:"phenotype" yaml:"phenotype"`
	Genotype          types.Genotype `json:"genotype" yaml:"genotype"`
	CohortSource      SourceCounts   `json:"cohort_source" yaml:"cohort_source"`
	IndividualSource  SourceCounts   `json:"individual_source" yaml:"individual_source"`
	CombinedAffected  int            `json:"combined_affected" yaml:"combined_affected"`
	CombinedTotal     int            `json:"combined_total" yaml:"combined_total"`
	CombinedFrequency *float64       `json:"combined_frequency" yaml:"combined_frequency"`
}

// CombinedReport is the cross-representation summary for one gene.
type CombinedReport struct {
	Gene       string             `json:"gene" yaml:"gene"`
	Cohort     cohortdb.Summary   `json:"cohort_summary" yaml:"cohort_summary"`
	Individual penetrance.Summary `json:"individual_summary" yaml:"individual_summary"`
	Combined   []CombinedStat     `json:"combined_statistics" yaml:"combined_statistics"`
}

// carrierGenotypes are the genotype buckets the combined statistics
// enumerate.
var carrierGenotypes = []types.Genotype{
	types.GenotypeHeterozygous,
	types.GenotypeHomozygous,
	types.GenotypeCompoundHet,
}

// BuildCombined assembles the combined report over a gene's completed
// database pair. Read-only fan-in: neither database is mutated.
func BuildCombined(cohorts *cohortdb.Database, individuals *penetrance.Database) CombinedReport {
	rep := CombinedReport{
		Gene:       cohorts.Gene(),
		Cohort:     cohorts.Summary(""),
		Individual: individuals.Summary(),
	}
	if rep.Gene == "" {
		rep.Gene = individuals.Gene()
	}

	phenotypes := make(map[string]bool)
	for name := range rep.Cohort.PhenotypeStatistics {
		phenotypes[name] = true
	}
	for _, c := range individuals.AllCarriers() {
		for _, p := range c.Phenotypes {
			phenotypes[p.Phenotype] = true
		}
	}

	names := make([]string, 0, len(phenotypes))
	for name := range phenotypes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, genotype := range carrierGenotypes {
			stat := combinedStat(cohorts, individuals, name, genotype)
			if stat.CohortSource.Total == 0 && stat.IndividualSource.Total == 0 {
				continue
			}
			rep.Combined = append(rep.Combined, stat)
		}
	}
	return rep
}

// combinedStat computes one phenotype+genotype cell. The individual-side
// denominator counts carriers of the genotype with known affected status:
// unknown-status carriers are excluded from the denominator for the same
// reason they are excluded from both query buckets.
func combinedStat(cohorts *cohortdb.Database, individuals *penetrance.Database, phenotype string, genotype types.Genotype) CombinedStat {
	stat := CombinedStat{Phenotype: phenotype, Genotype: genotype}

	stat.CohortSource.Affected, stat.CohortSource.Total =
		cohorts.AggregatePhenotypeCounts(phenotype, genotype)

	for _, c := range individuals.AllCarriers() {
		if c.Genotype != genotype || c.Affected == types.AffectedUnknown {
			continue
		}
		stat.IndividualSource.Total++
		if c.Affected == types.Affected && c.HasPhenotype(phenotype) {
			stat.IndividualSource.Affected++
		}
	}

	stat.CombinedAffected = stat.CohortSource.Affected + stat.IndividualSource.Affected
	stat.CombinedTotal = stat.CohortSource.Total + stat.IndividualSource.Total
	if stat.CombinedTotal > 0 {
		freq := float64(stat.CombinedAffected) / float64(stat.CombinedTotal)
		stat.CombinedFrequency = &freq
	}
	return stat
}
