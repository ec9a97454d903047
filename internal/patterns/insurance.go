// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"regexp"

	"phi-validate/internal/phi"
)

// insuranceRegex matches member IDs issued by the common synthetic
// payers: a two letter payer prefix followed by eight digits. The
// required letter prefix keeps it disjoint from MRN values.
var insuranceRegex = regexp.MustCompile(`\b(?:MC|MD|BC|UH|AE)\d{8}\b`)

// InsuranceID returns the insurance member ID pattern.
func InsuranceID() Pattern {
	return Pattern{
		Type: phi.ElementInsuranceID,
		Find: func(text string) []Hit {
			var hits []Hit
			for _, m := range insuranceRegex.FindAllString(text, -1) {
				hits = append(hits, Hit{Value: m, Confidence: 1.0})
			}
			return hits
		},
	}
}
