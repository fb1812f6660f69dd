// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package penetrance

// OverallPenetrance is affected carriers over all carriers across every
// study, optionally restricted to a named phenotype. The second value is
// false when the database holds no carriers.
func (d *Database) OverallPenetrance(phenotype string) (float64, bool) {
	carriers := d.AllCarriers()
	if len(carriers) == 0 {
		return 0, false
	}
	affected := d.AffectedCarriers(phenotype)
	return float64(len(affected)) / float64(len(carriers)), true
}

// PenetranceByPhenotype maps every phenotype seen among carriers to its
// penetrance across all carriers.
func (d *Database) PenetranceByPhenotype() map[string]float64 {
	carriers := d.AllCarriers()
	if len(carriers) == 0 {
		return map[string]float64{}
	}

	phenotypes := make(map[string]bool)
	for _, c := range carriers {
		for _, p := range c.Phenotypes {
			phenotypes[p.Phenotype] = true
		}
	}

	out := make(map[string]float64, len(phenotypes))
	for phenotype := range phenotypes {
		out[phenotype] = float64(len(d.AffectedCarriers(phenotype))) / float64(len(carriers))
	}
	return out
}

// Summary is the external-facing individual-level report. A pure read
// view; building it never mutates the database.
type Summary struct {
	Gene               string   `json:"gene" yaml:"gene"`
	TotalStudies       int      `json:"total_studies" yaml:"total_studies"`
	TotalIndividuals   int      `json:"total_individuals" yaml:"total_individuals"`
	TotalCarriers      int      `json:"total_carriers" yaml:"total_carriers"`
	AffectedCarriers   int      `json:"affected_carriers" yaml:"affected_carriers"`
	UnaffectedCarriers int      `json:"unaffected_carriers" yaml:"unaffected_carriers"`
	OverallPenetrance  *float64 `json:"overall_penetrance" yaml:"overall_penetrance"`
}

// Summary builds the summary over all studies. An empty database yields
// zero counts and a nil penetrance, a valid state rather than an error.
func (d *Database) Summary() Summary {
	s := Summary{
		Gene:               d.gene,
		TotalStudies:       d.Len(),
		TotalIndividuals:   len(d.AllIndividuals()),
		TotalCarriers:      len(d.AllCarriers()),
		AffectedCarriers:   len(d.AffectedCarriers("")),
		UnaffectedCarriers: len(d.UnaffectedCarriers("")),
	}
	if p, ok := d.OverallPenetrance(""); ok {
		s.OverallPenetrance = &p
	}
	return s
}
