// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate routes a stream of per-paper extraction payloads into
// per-gene cohort and penetrance databases, tallying per-paper outcomes.
// A bad paper is tallied and skipped, never fatal to the run; each gene
// owns an independent database pair with no cross-talk.
package aggregate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/genephen-engine/internal/classify"
	"github.com/pdiddy/genephen-engine/internal/cohortdb"
	"github.com/pdiddy/genephen-engine/internal/penetrance"
	"github.com/pdiddy/genephen-engine/pkg/types"
)

// Payload is one paper's extraction envelope: provenance, an optional
// precomputed relevance verdict feeding the confidence gate, and the raw
// payload handed over by the extraction collaborator.
type Payload struct {
	Gene      string              `json:"gene"`
	PMID      string              `json:"pmid"`
	Relevance *classify.Relevance `json:"relevance,omitempty"`
	Payload   json.RawMessage     `json:"payload"`
}

// RunSummary counts per-paper outcomes across an aggregation run.
type RunSummary struct {
	Cohorts                int `json:"cohorts" yaml:"cohorts"`
	Families               int `json:"families" yaml:"families"`
	Filtered               int `json:"filtered" yaml:"filtered"`
	ClassificationFailures int `json:"classification_failures" yaml:"classification_failures"`
	ValidationFailures     int `json:"validation_failures" yaml:"validation_failures"`
}

// Total returns the number of papers processed.
func (s RunSummary) Total() int {
	return s.Cohorts + s.Families + s.Filtered + s.ClassificationFailures + s.ValidationFailures
}

// HasFailures reports whether any paper failed classification or
// validation. Filtered papers are not failures.
func (s RunSummary) HasFailures() bool {
	return s.ClassificationFailures > 0 || s.ValidationFailures > 0
}

// PaperOutcome is the per-paper audit record: what happened to one pmid,
// with the filter confidence retained for filtered papers.
type PaperOutcome struct {
	PMID       string               `json:"pmid" yaml:"pmid"`
	Gene       string               `json:"gene" yaml:"gene"`
	Outcome    classify.OutcomeKind `json:"-" yaml:"-"`
	OutcomeStr string               `json:"outcome" yaml:"outcome"`
	Confidence float64              `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Detail     string               `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Pair is one gene's independent database pair.
type Pair struct {
	Gene       string
	Cohorts    *cohortdb.Database
	Penetrance *penetrance.Database
}

// Driver consumes payloads and maintains the per-gene database pairs.
// Single-threaded by design: callers serialize access, typically by
// feeding one completed payload stream per run.
type Driver struct {
	gate     types.GateConfig
	pairs    map[string]*Pair
	genes    []string
	outcomes []PaperOutcome
	summary  RunSummary
	log      logrus.FieldLogger
}

// NewDriver creates a driver with the given gate configuration.
func NewDriver(gate types.GateConfig, log logrus.FieldLogger) *Driver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Driver{
		gate:  gate,
		pairs: make(map[string]*Pair),
		log:   log,
	}
}

// Pair returns the database pair for a gene, creating it on first use.
func (d *Driver) Pair(gene string) *Pair {
	if p, ok := d.pairs[gene]; ok {
		return p
	}
	p := &Pair{
		Gene:       gene,
		Cohorts:    cohortdb.New(gene),
		Penetrance: penetrance.New(gene),
	}
	d.pairs[gene] = p
	d.genes = append(d.genes, gene)
	return p
}

// Genes returns the genes seen so far, in first-seen order.
func (d *Driver) Genes() []string {
	return d.genes
}

// Summary returns the run's outcome tallies.
func (d *Driver) Summary() RunSummary {
	return d.summary
}

// Outcomes returns the per-paper audit records in processing order.
func (d *Driver) Outcomes() []PaperOutcome {
	return d.outcomes
}

// Process routes one payload into the matching gene's databases and
// records its outcome. It never returns an error: every paper lands in
// exactly one tally bucket.
func (d *Driver) Process(p Payload) PaperOutcome {
	outcome := d.classifyPayload(p)
	record := PaperOutcome{
		PMID:       p.PMID,
		Gene:       p.Gene,
		Outcome:    outcome.Kind,
		OutcomeStr: outcome.Kind.String(),
		Confidence: outcome.Confidence,
	}

	switch outcome.Kind {
	case classify.OutcomeFiltered:
		d.summary.Filtered++
		record.Detail = outcome.Reason
	case classify.OutcomeClassificationFailure:
		d.summary.ClassificationFailures++
		record.Detail = outcome.Err.Error()
	case classify.OutcomeValidationFailure:
		d.summary.ValidationFailures++
		record.Detail = outcome.Err.Error()
	case classify.OutcomeCohort:
		pair := d.Pair(p.Gene)
		rejected := false
		for _, c := range outcome.Result.Cohorts {
			if err := pair.Cohorts.AddCohort(c); err != nil {
				// AddCohort re-checks invariants; a rejection here is a
				// validation failure for the whole paper.
				d.summary.ValidationFailures++
				record.Outcome = classify.OutcomeValidationFailure
				record.OutcomeStr = record.Outcome.String()
				record.Detail = err.Error()
				rejected = true
				break
			}
		}
		if !rejected {
			d.summary.Cohorts++
		}
	case classify.OutcomeFamily:
		pair := d.Pair(p.Gene)
		if err := pair.Penetrance.AddStudy(*outcome.Result.Study); err != nil {
			d.summary.ValidationFailures++
			record.Outcome = classify.OutcomeValidationFailure
			record.OutcomeStr = record.Outcome.String()
			record.Detail = err.Error()
		} else {
			d.summary.Families++
		}
	}

	d.log.WithFields(logrus.Fields{
		"pmid":    p.PMID,
		"gene":    p.Gene,
		"outcome": record.OutcomeStr,
	}).Info("processed paper")

	d.outcomes = append(d.outcomes, record)
	return record
}

// classifyPayload applies the confidence gate to the envelope's relevance
// verdict, then classifies the raw payload.
func (d *Driver) classifyPayload(p Payload) classify.Outcome {
	if p.Relevance != nil {
		rel := *p.Relevance
		if !rel.Relevant || rel.Confidence < d.gate.Threshold() {
			return classify.Outcome{
				Kind:       classify.OutcomeFiltered,
				Confidence: rel.Confidence,
				Reason:     rel.Reason,
			}
		}
	}
	return classify.ClassifyOutcome(p.Payload, p.PMID, p.Gene)
}

// ProcessDir reads every *.json payload envelope in dir (sorted by name
// for determinism) and routes it through Process, writing progress lines
// to w. A file that is not a valid envelope is tallied as a
// classification failure; only a missing directory aborts the run.
func (d *Driver) ProcessDir(dir string, w io.Writer) (RunSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return RunSummary{}, fmt.Errorf("reading payloads directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			d.summary.ClassificationFailures++
			continue
		}

		var payload Payload
		if err := json.Unmarshal(data, &payload); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", name, err)
			d.summary.ClassificationFailures++
			continue
		}
		if payload.PMID == "" || payload.Gene == "" {
			fmt.Fprintf(w, "failed  %s: envelope missing pmid or gene\n", name)
			d.summary.ClassificationFailures++
			continue
		}

		record := d.Process(payload)
		switch record.Outcome {
		case classify.OutcomeFiltered:
			fmt.Fprintf(w, "filtered %s (confidence %.2f)\n", payload.PMID, record.Confidence)
		case classify.OutcomeClassificationFailure, classify.OutcomeValidationFailure:
			fmt.Fprintf(w, "failed  %s: %s\n", payload.PMID, record.Detail)
		default:
			fmt.Fprintf(w, "aggregated %s (%s)\n", payload.PMID, record.OutcomeStr)
		}
	}

	fmt.Fprintf(w, "\ncohorts: %d, families: %d, filtered: %d, classification failures: %d, validation failures: %d\n",
		d.summary.Cohorts, d.summary.Families, d.summary.Filtered,
		d.summary.ClassificationFailures, d.summary.ValidationFailures)

	return d.summary, nil
}
