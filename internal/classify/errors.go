// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "fmt"

// ClassificationError reports a payload whose shape matches none of the
// known patterns. It is a per-paper outcome: the paper is tallied and
// excluded, and the aggregation run continues.
type ClassificationError struct {
	PMID   string
	Reason string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("pmid %s: cannot classify payload: %s", e.PMID, e.Reason)
}

// ValidationError reports a payload whose shape matched but whose values
// violate an invariant (e.g. affected_count above total_carriers, an empty
// individuals list). The record is rejected, never silently corrected.
type ValidationError struct {
	PMID   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pmid %s: invalid payload: %s", e.PMID, e.Reason)
}
