// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"regexp"

	"phi-validate/internal/phi"
)

// mrnRegex matches the literal MRN prefix followed by six or more
// digits, optionally separated by a colon or whitespace as it appears
// in chart headers ("MRN123456", "MRN: 123456").
var mrnRegex = regexp.MustCompile(`(?i)\bMRN[:\s]*\d{6,}\b`)

// MRN returns the Medical Record Number pattern.
func MRN() Pattern {
	return Pattern{
		Type: phi.ElementMRN,
		Find: func(text string) []Hit {
			var hits []Hit
			for _, m := range mrnRegex.FindAllString(text, -1) {
				hits = append(hits, Hit{Value: m, Confidence: 1.0})
			}
			return hits
		},
	}
}
