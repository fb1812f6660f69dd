// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/genephen-engine/pkg/types"
)

// Relevance is a filter verdict: whether a paper looks worth the expensive
// extraction call, with a confidence in [0,1] retained for audit.
type Relevance struct {
	Relevant   bool    `json:"relevant" yaml:"relevant"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Reason     string  `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// RelevanceFilter is the cheap first-stage classifier. Implementations are
// supplied by the caller (an LLM-backed filter in production, a mock or
// precomputed-score filter in tests and offline runs).
type RelevanceFilter interface {
	Check(ctx context.Context, text string) (Relevance, error)
}

// PayloadExtractor is the expensive second stage: it turns article text
// into a raw JSON extraction payload. The LLM call itself lives behind
// this interface; the core only ever sees the final payload.
type PayloadExtractor interface {
	Extract(ctx context.Context, text string) (json.RawMessage, error)
}

// OutcomeKind is the per-paper outcome taxonomy the aggregation driver
// tallies.
type OutcomeKind int

const (
	// OutcomeCohort means the paper yielded one or more cohort records.
	OutcomeCohort OutcomeKind = iota

	// OutcomeFamily means the paper yielded a family study.
	OutcomeFamily

	// OutcomeFiltered means the relevance gate declined extraction.
	// Not an error; tracked separately for cost accounting.
	OutcomeFiltered

	// OutcomeClassificationFailure means the payload shape matched no
	// known pattern (or extraction itself failed).
	OutcomeClassificationFailure

	// OutcomeValidationFailure means the shape matched but a value
	// violated an invariant.
	OutcomeValidationFailure
)

// String returns the outcome name used in logs and reports.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCohort:
		return "cohort"
	case OutcomeFamily:
		return "family"
	case OutcomeFiltered:
		return "filtered"
	case OutcomeClassificationFailure:
		return "classification_failure"
	case OutcomeValidationFailure:
		return "validation_failure"
	default:
		return "unknown"
	}
}

// Outcome is the result of processing one paper. Result is populated for
// cohort/family outcomes; Confidence and Reason are populated for filtered
// outcomes; Err is populated for failures.
type Outcome struct {
	Kind       OutcomeKind
	Result     *Result
	Confidence float64
	Reason     string
	Err        error
}

// Stats counts gate decisions across a MultiStageExtractor's lifetime.
type Stats struct {
	Filtered  int `json:"filtered" yaml:"filtered"`
	Extracted int `json:"extracted" yaml:"extracted"`
}

// MultiStageExtractor runs a cheap relevance filter before the expensive
// extraction stage. Papers below the confidence threshold are recorded as
// filtered outcomes without any extractor call, so the gate never
// fabricates data.
type MultiStageExtractor struct {
	filter    RelevanceFilter
	extractor PayloadExtractor
	threshold float64
	stats     Stats
	log       logrus.FieldLogger
}

// NewMultiStage builds a gate around the given filter and extractor.
func NewMultiStage(filter RelevanceFilter, extractor PayloadExtractor, cfg types.GateConfig, log logrus.FieldLogger) *MultiStageExtractor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &MultiStageExtractor{
		filter:    filter,
		extractor: extractor,
		threshold: cfg.Threshold(),
		log:       log,
	}
}

// Extract runs the two stages against one paper's text and classifies the
// extractor's payload. A filter error is treated as relevant at confidence
// 0.5 so transient filter failures never drop papers silently.
func (m *MultiStageExtractor) Extract(ctx context.Context, text, pmid, gene string) Outcome {
	rel, err := m.filter.Check(ctx, text)
	if err != nil {
		m.log.WithFields(logrus.Fields{"pmid": pmid, "error": err}).
			Warn("relevance filter failed, assuming relevant")
		rel = Relevance{Relevant: true, Confidence: 0.5, Reason: fmt.Sprintf("filter error: %v", err)}
	}

	if !rel.Relevant || rel.Confidence < m.threshold {
		m.stats.Filtered++
		m.log.WithFields(logrus.Fields{
			"pmid":       pmid,
			"confidence": rel.Confidence,
			"threshold":  m.threshold,
		}).Info("skipping extraction")
		return Outcome{Kind: OutcomeFiltered, Confidence: rel.Confidence, Reason: rel.Reason}
	}

	m.stats.Extracted++
	payload, err := m.extractor.Extract(ctx, text)
	if err != nil {
		return Outcome{
			Kind: OutcomeClassificationFailure,
			Err:  &ClassificationError{PMID: pmid, Reason: fmt.Sprintf("extraction failed: %v", err)},
		}
	}

	return ClassifyOutcome(payload, pmid, gene)
}

// Stats returns the gate's filtered/extracted counters.
func (m *MultiStageExtractor) Stats() Stats {
	return m.stats
}

// ClassifyOutcome classifies an already-extracted payload into a
// driver-ready outcome.
func ClassifyOutcome(data []byte, pmid, gene string) Outcome {
	res, err := Classify(data, pmid, gene)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return Outcome{Kind: OutcomeValidationFailure, Err: err}
		}
		return Outcome{Kind: OutcomeClassificationFailure, Err: err}
	}
	if res.Kind == KindFamily {
		return Outcome{Kind: OutcomeFamily, Result: res}
	}
	return Outcome{Kind: OutcomeCohort, Result: res}
}

// StaticRelevance is a RelevanceFilter fed from a precomputed verdict,
// used when relevance scoring happened upstream (e.g. recorded in a
// payload envelope).
type StaticRelevance struct {
	Verdict Relevance
}

// Check returns the precomputed verdict.
func (s StaticRelevance) Check(_ context.Context, _ string) (Relevance, error) {
	return s.Verdict, nil
}
