// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package penetrance

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/genephen-engine/pkg/types"
)

// familyStudy builds the canonical tri-state family: an affected proband,
// an explicitly unaffected mother, and a father with unknown status.
func familyStudy(pmid string) types.FamilyStudy {
	study := types.FamilyStudy{PMID: pmid, Gene: "SCN1A", Variant: "p.Arg1648His"}
	study.AddIndividual(types.Individual{
		IndividualID: "proband",
		Genotype:     types.GenotypeHeterozygous,
		Affected:     types.Affected,
		Phenotypes:   []types.PhenotypeObservation{{Phenotype: "epilepsy"}},
	})
	study.AddIndividual(types.Individual{
		IndividualID: "mother",
		Genotype:     types.GenotypeHeterozygous,
		Affected:     types.Unaffected,
		Relation:     "mother",
	})
	study.AddIndividual(types.Individual{
		IndividualID: "father",
		Genotype:     types.GenotypeHeterozygous,
		Affected:     types.AffectedUnknown,
		Relation:     "father",
	})
	return study
}

func TestAddStudyRejectsInvalid(t *testing.T) {
	db := New("SCN1A")
	if err := db.AddStudy(types.FamilyStudy{PMID: "1"}); err == nil {
		t.Fatal("expected rejection of study without individuals")
	}
	if db.Len() != 0 {
		t.Errorf("Len() = %d after rejected insert, want 0", db.Len())
	}
}

func TestAddStudyDuplicatePMIDReplaces(t *testing.T) {
	db := New("SCN1A")
	if err := db.AddStudy(familyStudy("1")); err != nil {
		t.Fatal(err)
	}
	if err := db.AddStudy(familyStudy("2")); err != nil {
		t.Fatal(err)
	}

	replacement := types.FamilyStudy{PMID: "1", Gene: "SCN1A", Variant: "p.Thr226Met"}
	replacement.AddIndividual(types.Individual{
		IndividualID: "case1",
		Genotype:     types.GenotypeHomozygous,
		Affected:     types.Affected,
	})
	if err := db.AddStudy(replacement); err != nil {
		t.Fatal(err)
	}

	if db.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", db.Len())
	}
	// The replacement keeps the original position in the flattening order.
	first := db.Studies()[0]
	if first.PMID != "1" || first.Variant != "p.Thr226Met" || len(first.Individuals) != 1 {
		t.Errorf("replaced study = %+v, want single-member p.Thr226Met study first", first)
	}
}

func TestAllIndividualsFlatteningOrder(t *testing.T) {
	db := New("SCN1A")
	if err := db.AddStudy(familyStudy("20")); err != nil {
		t.Fatal(err)
	}
	if err := db.AddStudy(familyStudy("10")); err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, ind := range db.AllIndividuals() {
		got = append(got, ind.PMID+"/"+ind.IndividualID)
	}
	want := []string{
		"20/proband", "20/mother", "20/father",
		"10/proband", "10/mother", "10/father",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllIndividuals order = %v, want %v", got, want)
	}
}

// The tri-state invariant end to end: three carriers, one affected, one
// unaffected, the unknown-status father in neither bucket.
func TestCarrierBuckets(t *testing.T) {
	db := New("SCN1A")
	if err := db.AddStudy(familyStudy("1")); err != nil {
		t.Fatal(err)
	}

	if got := len(db.AllCarriers()); got != 3 {
		t.Errorf("AllCarriers = %d, want 3", got)
	}

	affected := db.AffectedCarriers("")
	if len(affected) != 1 || affected[0].IndividualID != "proband" {
		t.Errorf("AffectedCarriers = %v, want [proband]", affected)
	}

	unaffected := db.UnaffectedCarriers("")
	if len(unaffected) != 1 || unaffected[0].IndividualID != "mother" {
		t.Errorf("UnaffectedCarriers = %v, want [mother]", unaffected)
	}
}

func TestAffectedCarriersPhenotypeFilter(t *testing.T) {
	db := New("SCN1A")
	if err := db.AddStudy(familyStudy("1")); err != nil {
		t.Fatal(err)
	}

	if got := len(db.AffectedCarriers("epilepsy")); got != 1 {
		t.Errorf("AffectedCarriers(epilepsy) = %d, want 1", got)
	}
	if got := len(db.AffectedCarriers("ataxia")); got != 0 {
		t.Errorf("AffectedCarriers(ataxia) = %d, want 0", got)
	}
}

func TestUnaffectedCarriersGenotypeFilter(t *testing.T) {
	db := New("SCN1A")
	if err := db.AddStudy(familyStudy("1")); err != nil {
		t.Fatal(err)
	}

	if got := len(db.UnaffectedCarriers(types.GenotypeHeterozygous)); got != 1 {
		t.Errorf("UnaffectedCarriers(het) = %d, want 1", got)
	}
	if got := len(db.UnaffectedCarriers(types.GenotypeHomozygous)); got != 0 {
		t.Errorf("UnaffectedCarriers(hom) = %d, want 0", got)
	}
}

func TestNonCarriersExcluded(t *testing.T) {
	study := types.FamilyStudy{PMID: "1", Gene: "SCN1A", Variant: "v"}
	study.AddIndividual(types.Individual{
		IndividualID: "proband",
		Genotype:     types.GenotypeHeterozygous,
		Affected:     types.Affected,
	})
	study.AddIndividual(types.Individual{
		IndividualID: "sibling",
		Genotype:     types.GenotypeWildType,
		Affected:     types.Affected, // phenocopy; not a carrier
	})

	db := New("SCN1A")
	if err := db.AddStudy(study); err != nil {
		t.Fatal(err)
	}
	if got := len(db.AllCarriers()); got != 1 {
		t.Errorf("AllCarriers = %d, want 1 (wild-type excluded)", got)
	}
	if got := len(db.AffectedCarriers("")); got != 1 {
		t.Errorf("AffectedCarriers = %d, want 1", got)
	}
}

func TestOverallPenetrance(t *testing.T) {
	db := New("SCN1A")
	if err := db.AddStudy(familyStudy("1")); err != nil {
		t.Fatal(err)
	}

	p, ok := db.OverallPenetrance("")
	if !ok {
		t.Fatal("OverallPenetrance ok=false with carriers present")
	}
	if want := 1.0 / 3.0; p != want {
		t.Errorf("OverallPenetrance = %v, want %v", p, want)
	}

	if _, ok := New("SCN1A").OverallPenetrance(""); ok {
		t.Error("empty database should yield ok=false")
	}
}

func TestPenetranceByPhenotype(t *testing.T) {
	db := New("SCN1A")
	if err := db.AddStudy(familyStudy("1")); err != nil {
		t.Fatal(err)
	}

	byPhenotype := db.PenetranceByPhenotype()
	if want := 1.0 / 3.0; byPhenotype["epilepsy"] != want {
		t.Errorf("PenetranceByPhenotype[epilepsy] = %v, want %v", byPhenotype["epilepsy"], want)
	}

	if got := New("SCN1A").PenetranceByPhenotype(); len(got) != 0 {
		t.Errorf("empty database map = %v, want empty", got)
	}
}

func TestSummary(t *testing.T) {
	db := New("SCN1A")
	if err := db.AddStudy(familyStudy("1")); err != nil {
		t.Fatal(err)
	}

	s := db.Summary()
	if s.Gene != "SCN1A" || s.TotalStudies != 1 || s.TotalIndividuals != 3 {
		t.Errorf("Summary = %+v", s)
	}
	if s.TotalCarriers != 3 || s.AffectedCarriers != 1 || s.UnaffectedCarriers != 1 {
		t.Errorf("carrier counts = %d/%d/%d, want 3/1/1", s.TotalCarriers, s.AffectedCarriers, s.UnaffectedCarriers)
	}
	if s.OverallPenetrance == nil || *s.OverallPenetrance != 1.0/3.0 {
		t.Errorf("OverallPenetrance = %v, want 1/3", s.OverallPenetrance)
	}
}

func TestSummaryEmptyDatabase(t *testing.T) {
	s := New("SCN1A").Summary()
	if s.TotalStudies != 0 || s.TotalIndividuals != 0 || s.TotalCarriers != 0 {
		t.Errorf("empty summary = %+v, want zeros", s)
	}
	if s.OverallPenetrance != nil {
		t.Errorf("OverallPenetrance = %v, want nil for empty database", s.OverallPenetrance)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := New("SCN1A")
	if err := db.AddStudy(familyStudy("1")); err != nil {
		t.Fatal(err)
	}
	if err := db.AddStudy(familyStudy("2")); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "scn1a-studies.json")
	if err := db.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Gene() != "SCN1A" {
		t.Errorf("loaded gene = %q", loaded.Gene())
	}
	// The derived per-study counts in the file must not leak back in.
	if !reflect.DeepEqual(loaded.Studies(), db.Studies()) {
		t.Errorf("loaded studies differ:\ngot  %+v\nwant %+v", loaded.Studies(), db.Studies())
	}
	if !reflect.DeepEqual(loaded.Summary(), db.Summary()) {
		t.Error("loaded summary differs from original")
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error loading malformed file")
	}
}
