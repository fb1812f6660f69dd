// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/genephen-engine/pkg/types"
)

func TestClassifyCohort(t *testing.T) {
	payload := []byte(`{
		"genotype": "Heterozygous",
		"total_carriers": 50,
		"phenotype_counts": [
			{"phenotype": "long QT syndrome", "affected_count": 35},
			{"phenotype": "syncope", "affected_count": 12}
		],
		"population": "probands"
	}`)

	res, err := Classify(payload, "12345", "KCNH2")
	require.NoError(t, err)
	require.Equal(t, KindCohort, res.Kind)
	require.Len(t, res.Cohorts, 1)
	assert.Nil(t, res.Study)

	c := res.Cohorts[0]
	assert.Equal(t, "12345", c.PMID)
	assert.Equal(t, "KCNH2", c.Gene)
	assert.Equal(t, types.GenotypeHeterozygous, c.Genotype)
	assert.Equal(t, 50, c.TotalCarriers)
	assert.Equal(t, "probands", c.Population)
	require.Len(t, c.PhenotypeCounts, 2)
	assert.Equal(t, 35, c.PhenotypeCounts[0].AffectedCount)
}

func TestClassifyFamily(t *testing.T) {
	payload := []byte(`{
		"variant": "p.Arg1648His",
		"individuals": [
			{"individual_id": "proband", "genotype": "heterozygous", "affected": true,
			 "phenotypes": [{"phenotype": "epilepsy"}], "age": 12, "sex": "male"},
			{"individual_id": "mother", "genotype": "heterozygous", "affected": false, "relation": "mother"},
			{"individual_id": "father", "genotype": "heterozygous", "affected": null, "relation": "father"}
		]
	}`)

	res, err := Classify(payload, "98765", "SCN1A")
	require.NoError(t, err)
	require.Equal(t, KindFamily, res.Kind)
	require.NotNil(t, res.Study)
	assert.Empty(t, res.Cohorts)

	study := res.Study
	assert.Equal(t, "98765", study.PMID)
	assert.Equal(t, "SCN1A", study.Gene)
	assert.Equal(t, "p.Arg1648His", study.Variant)
	require.Len(t, study.Individuals, 3)

	assert.Equal(t, types.Affected, study.Individuals[0].Affected)
	assert.Equal(t, types.Unaffected, study.Individuals[1].Affected)
	assert.Equal(t, types.AffectedUnknown, study.Individuals[2].Affected)
	assert.Equal(t, "98765_family1", study.Individuals[0].FamilyID)
	require.NotNil(t, study.Individuals[0].Age)
	assert.Equal(t, 12.0, *study.Individuals[0].Age)
}

func TestClassifyMultipleCohorts(t *testing.T) {
	payload := []byte(`{
		"cohort_data": [
			{"genotype": "heterozygous", "total_carriers": 40,
			 "phenotype_counts": [{"phenotype": "long QT syndrome", "affected_count": 28}]},
			{"genotype": "homozygous", "total_carriers": 5,
			 "phenotype_counts": [{"phenotype": "long QT syndrome", "affected_count": 5}]}
		]
	}`)

	res, err := Classify(payload, "55555", "KCNH2")
	require.NoError(t, err)
	assert.Equal(t, KindMultipleCohorts, res.Kind)
	require.Len(t, res.Cohorts, 2)
	assert.Equal(t, types.GenotypeHeterozygous, res.Cohorts[0].Genotype)
	assert.Equal(t, types.GenotypeHomozygous, res.Cohorts[1].Genotype)
}

func TestClassifySingleEntryCohortListCollapses(t *testing.T) {
	payload := []byte(`{
		"cohorts": [
			{"genotype": "heterozygous", "total_carriers": 40,
			 "phenotype_counts": [{"phenotype": "syncope", "affected_count": 10}]}
		]
	}`)

	res, err := Classify(payload, "55556", "KCNH2")
	require.NoError(t, err)
	assert.Equal(t, KindCohort, res.Kind)
	assert.Len(t, res.Cohorts, 1)
}

func TestClassifyPayloadGeneWins(t *testing.T) {
	payload := []byte(`{"gene": "SCN5A", "genotype": "heterozygous", "total_carriers": 10, "phenotype_counts": []}`)

	res, err := Classify(payload, "777", "KCNH2")
	require.NoError(t, err)
	assert.Equal(t, "SCN5A", res.Cohorts[0].Gene)
}

func TestClassifyFamilyVariantFallback(t *testing.T) {
	t.Run("first individual variant", func(t *testing.T) {
		payload := []byte(`{"individuals": [
			{"individual_id": "a", "genotype": "heterozygous"},
			{"individual_id": "b", "genotype": "heterozygous", "variant": "p.Gly123Ser"}
		]}`)
		res, err := Classify(payload, "1", "GENE")
		require.NoError(t, err)
		assert.Equal(t, "p.Gly123Ser", res.Study.Variant)
	})

	t.Run("no variant anywhere", func(t *testing.T) {
		payload := []byte(`{"individuals": [{"individual_id": "a", "genotype": "heterozygous"}]}`)
		res, err := Classify(payload, "1", "GENE")
		require.NoError(t, err)
		assert.Equal(t, "unknown", res.Study.Variant)
	})
}

func TestClassifyLegacySpellings(t *testing.T) {
	payload := []byte(`{
		"individuals": [
			{"id": "case1", "genotype": "heterozygous",
			 "phenotypes": [{"name": "epilepsy"}]},
			{"genotype": "homozygous"}
		]
	}`)

	res, err := Classify(payload, "2", "GENE")
	require.NoError(t, err)
	require.Len(t, res.Study.Individuals, 2)
	assert.Equal(t, "case1", res.Study.Individuals[0].IndividualID)
	assert.Equal(t, "epilepsy", res.Study.Individuals[0].Phenotypes[0].Phenotype)
	// Unnamed individuals get a positional id.
	assert.Equal(t, "patient_2", res.Study.Individuals[1].IndividualID)
}

func TestClassifyEmptyIndividualsIsValidationError(t *testing.T) {
	payload := []byte(`{"individuals": []}`)

	_, err := Classify(payload, "333", "GENE")
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "want *ValidationError, got %T", err)
	assert.Equal(t, "333", vErr.PMID)
	assert.Contains(t, vErr.Reason, "empty")
}

func TestClassifyUnrecognizedShapeIsClassificationError(t *testing.T) {
	for name, payload := range map[string][]byte{
		"empty object":     []byte(`{}`),
		"unrelated fields": []byte(`{"title": "a paper", "year": 2020}`),
		"not an object":    []byte(`[1, 2, 3]`),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Classify(payload, "444", "GENE")
			require.Error(t, err)

			var cErr *ClassificationError
			require.True(t, errors.As(err, &cErr), "want *ClassificationError, got %T", err)
			assert.Equal(t, "444", cErr.PMID)
		})
	}
}

func TestClassifyInvariantViolationIsValidationError(t *testing.T) {
	payload := []byte(`{
		"genotype": "heterozygous",
		"total_carriers": 10,
		"phenotype_counts": [{"phenotype": "syncope", "affected_count": 11}]
	}`)

	_, err := Classify(payload, "555", "GENE")
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "want *ValidationError, got %T", err)
	assert.Contains(t, vErr.Reason, "exceeds total_carriers")
}

func TestClassifyZeroCarriersIsValidationError(t *testing.T) {
	payload := []byte(`{"genotype": "heterozygous", "total_carriers": 0, "phenotype_counts": []}`)

	_, err := Classify(payload, "556", "GENE")
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "want *ValidationError, got %T", err)
}

func TestClassifyUnknownGenotypeNormalized(t *testing.T) {
	payload := []byte(`{"genotype": "het carrier", "total_carriers": 3, "phenotype_counts": []}`)

	res, err := Classify(payload, "6", "GENE")
	require.NoError(t, err)
	assert.Equal(t, types.GenotypeUnknown, res.Cohorts[0].Genotype)
}
