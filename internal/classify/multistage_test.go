// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/genephen-engine/pkg/types"
)

// mockFilter returns a canned verdict and counts calls.
type mockFilter struct {
	verdict Relevance
	err     error
	calls   int
}

func (m *mockFilter) Check(_ context.Context, _ string) (Relevance, error) {
	m.calls++
	return m.verdict, m.err
}

// mockExtractor returns a canned payload and counts calls.
type mockExtractor struct {
	payload json.RawMessage
	err     error
	calls   int
}

func (m *mockExtractor) Extract(_ context.Context, _ string) (json.RawMessage, error) {
	m.calls++
	return m.payload, m.err
}

var cohortPayload = json.RawMessage(`{
	"genotype": "heterozygous",
	"total_carriers": 50,
	"phenotype_counts": [{"phenotype": "long QT syndrome", "affected_count": 35}]
}`)

func TestMultiStageExtractsRelevantPaper(t *testing.T) {
	filter := &mockFilter{verdict: Relevance{Relevant: true, Confidence: 0.9}}
	extractor := &mockExtractor{payload: cohortPayload}
	m := NewMultiStage(filter, extractor, types.GateConfig{}, nil)

	out := m.Extract(context.Background(), "article text", "12345", "KCNH2")

	assert.Equal(t, OutcomeCohort, out.Kind)
	require.NotNil(t, out.Result)
	assert.Equal(t, 1, filter.calls)
	assert.Equal(t, 1, extractor.calls)
	assert.Equal(t, Stats{Filtered: 0, Extracted: 1}, m.Stats())
}

// Below the threshold the expensive stage must never run.
func TestMultiStageGateSkipsExtraction(t *testing.T) {
	tests := []struct {
		name    string
		verdict Relevance
	}{
		{"not relevant", Relevance{Relevant: false, Confidence: 0.95, Reason: "review article"}},
		{"low confidence", Relevance{Relevant: true, Confidence: 0.5, Reason: "borderline"}},
		{"just below threshold", Relevance{Relevant: true, Confidence: 0.69}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := &mockFilter{verdict: tt.verdict}
			extractor := &mockExtractor{payload: cohortPayload}
			m := NewMultiStage(filter, extractor, types.GateConfig{MinConfidence: 0.7}, nil)

			out := m.Extract(context.Background(), "text", "1", "GENE")

			assert.Equal(t, OutcomeFiltered, out.Kind)
			assert.Equal(t, tt.verdict.Confidence, out.Confidence)
			assert.Equal(t, tt.verdict.Reason, out.Reason)
			assert.Equal(t, 0, extractor.calls, "extractor must not be called for filtered papers")
			assert.Equal(t, Stats{Filtered: 1, Extracted: 0}, m.Stats())
		})
	}
}

func TestMultiStageAtThresholdExtracts(t *testing.T) {
	filter := &mockFilter{verdict: Relevance{Relevant: true, Confidence: 0.7}}
	extractor := &mockExtractor{payload: cohortPayload}
	m := NewMultiStage(filter, extractor, types.GateConfig{MinConfidence: 0.7}, nil)

	out := m.Extract(context.Background(), "text", "1", "GENE")

	assert.Equal(t, OutcomeCohort, out.Kind)
	assert.Equal(t, 1, extractor.calls)
}

// A broken filter assumes relevance at confidence 0.5; with the default
// 0.7 threshold the paper is still filtered, but the reason records the
// filter error for the audit trail.
func TestMultiStageFilterErrorAssumesRelevant(t *testing.T) {
	filter := &mockFilter{err: errors.New("rate limited")}
	extractor := &mockExtractor{payload: cohortPayload}

	t.Run("default threshold filters", func(t *testing.T) {
		m := NewMultiStage(filter, extractor, types.GateConfig{}, nil)
		out := m.Extract(context.Background(), "text", "1", "GENE")

		assert.Equal(t, OutcomeFiltered, out.Kind)
		assert.Equal(t, 0.5, out.Confidence)
		assert.Contains(t, out.Reason, "rate limited")
	})

	t.Run("permissive threshold extracts", func(t *testing.T) {
		m := NewMultiStage(filter, extractor, types.GateConfig{MinConfidence: 0.3}, nil)
		out := m.Extract(context.Background(), "text", "1", "GENE")

		assert.Equal(t, OutcomeCohort, out.Kind)
	})
}

func TestMultiStageExtractorFailure(t *testing.T) {
	filter := &mockFilter{verdict: Relevance{Relevant: true, Confidence: 0.9}}
	extractor := &mockExtractor{err: errors.New("model timeout")}
	m := NewMultiStage(filter, extractor, types.GateConfig{}, nil)

	out := m.Extract(context.Background(), "text", "1", "GENE")

	assert.Equal(t, OutcomeClassificationFailure, out.Kind)
	require.Error(t, out.Err)
	var cErr *ClassificationError
	assert.True(t, errors.As(out.Err, &cErr))
}

func TestClassifyOutcomeTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    OutcomeKind
	}{
		{"cohort", `{"genotype":"heterozygous","total_carriers":5,"phenotype_counts":[]}`, OutcomeCohort},
		{"family", `{"individuals":[{"individual_id":"a","genotype":"heterozygous"}]}`, OutcomeFamily},
		{"validation failure", `{"individuals":[]}`, OutcomeValidationFailure},
		{"classification failure", `{}`, OutcomeClassificationFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ClassifyOutcome([]byte(tt.payload), "1", "GENE")
			assert.Equal(t, tt.want, out.Kind)
		})
	}
}

func TestStaticRelevance(t *testing.T) {
	s := StaticRelevance{Verdict: Relevance{Relevant: true, Confidence: 0.8}}
	rel, err := s.Check(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, 0.8, rel.Confidence)
}

func TestOutcomeKindString(t *testing.T) {
	tests := map[OutcomeKind]string{
		OutcomeCohort:                "cohort",
		OutcomeFamily:                "family",
		OutcomeFiltered:              "filtered",
		OutcomeClassificationFailure: "classification_failure",
		OutcomeValidationFailure:     "validation_failure",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
	}
}
