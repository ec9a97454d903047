// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package patterns is the PHI pattern library: one recognizer per
// element type, each returning zero or more scored hits for a text
// fragment. Recognizers never fail; a non-match is an empty result.
package patterns

import (
	"phi-validate/internal/phi"
)

// Hit is one raw pattern match within a text fragment.
type Hit struct {
	Value      string
	Confidence float64
}

// Pattern recognizes occurrences of one PHI element type.
type Pattern struct {
	Type phi.ElementType

	// Find scans a fragment and returns every hit. It must accept
	// arbitrary input, including empty strings and non-ASCII text.
	Find func(text string) []Hit
}

// Library is an immutable set of patterns. Build a full catalogue with
// Default, or a reduced one with New for testing.
type Library struct {
	patterns []Pattern
}

// New builds a library from an explicit pattern set.
func New(pats ...Pattern) *Library {
	return &Library{patterns: pats}
}

// Default returns the full PHI pattern catalogue.
func Default() *Library {
	return New(
		SSN(),
		MRN(),
		Phone(),
		DOB(),
		Email(),
		Address(),
		Name(),
		InsuranceID(),
	)
}

// Patterns returns the library's patterns in registration order.
func (l *Library) Patterns() []Pattern {
	return l.patterns
}
