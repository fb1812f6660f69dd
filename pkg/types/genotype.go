// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Genotype is the closed set of genotype categories an extraction payload
// may carry. Unrecognized strings normalize to GenotypeUnknown rather than
// being dropped.
type Genotype string

const (
	GenotypeHeterozygous Genotype = "heterozygous"
	GenotypeHomozygous   Genotype = "homozygous"
	GenotypeCompoundHet  Genotype = "compound_heterozygous"
	GenotypeWildType     Genotype = "wild-type"
	GenotypeUnknown      Genotype = "unknown"
)

// carrierGenotypes is the set of genotypes that make an individual a
// carrier of the variant under study.
var carrierGenotypes = map[Genotype]bool{
	GenotypeHeterozygous: true,
	GenotypeHomozygous:   true,
	GenotypeCompoundHet:  true,
}

// NormalizeGenotype maps a producer-supplied genotype string onto the
// closed Genotype set via case-insensitive exact match. Anything
// unrecognized (including the empty string) becomes GenotypeUnknown.
func NormalizeGenotype(s string) Genotype {
	switch Genotype(strings.ToLower(strings.TrimSpace(s))) {
	case GenotypeHeterozygous:
		return GenotypeHeterozygous
	case GenotypeHomozygous:
		return GenotypeHomozygous
	case GenotypeCompoundHet:
		return GenotypeCompoundHet
	case GenotypeWildType:
		return GenotypeWildType
	default:
		return GenotypeUnknown
	}
}

// IsCarrier reports whether the genotype carries the variant.
func (g Genotype) IsCarrier() bool {
	return carrierGenotypes[g]
}

// Sex is the closed set of sex values. Unrecognized strings normalize to
// SexUnknown.
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// NormalizeSex maps a producer-supplied sex string onto the closed Sex set.
func NormalizeSex(s string) Sex {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale
	case SexFemale:
		return SexFemale
	default:
		return SexUnknown
	}
}

// AffectedStatus is the tri-state phenotype status of a carrier: affected,
// unaffected, or unknown. Unknown is the zero value so an absent field
// decodes to unknown, never to unaffected. Individuals with unknown status
// are excluded from both affected and unaffected queries.
type AffectedStatus int

const (
	// AffectedUnknown means the paper does not state whether the
	// individual exhibits the phenotype.
	AffectedUnknown AffectedStatus = iota

	// Affected means the individual exhibits at least one phenotype.
	Affected

	// Unaffected means the paper explicitly reports the individual as
	// phenotype-free (e.g. an asymptomatic carrier).
	Unaffected
)

// AffectedFromBool converts an optional wire boolean to a status.
func AffectedFromBool(b *bool) AffectedStatus {
	switch {
	case b == nil:
		return AffectedUnknown
	case *b:
		return Affected
	default:
		return Unaffected
	}
}

// String returns the human-readable status name.
func (a AffectedStatus) String() string {
	switch a {
	case Affected:
		return "affected"
	case Unaffected:
		return "unaffected"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the status as the wire tri-state boolean:
// true, false, or null.
func (a AffectedStatus) MarshalJSON() ([]byte, error) {
	switch a {
	case Affected:
		return []byte("true"), nil
	case Unaffected:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes the wire tri-state boolean. null and absent both
// yield AffectedUnknown.
func (a *AffectedStatus) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*a = AffectedUnknown
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("affected must be true, false, or null: %w", err)
	}
	if b {
		*a = Affected
	} else {
		*a = Unaffected
	}
	return nil
}
