// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"regexp"

	"phi-validate/internal/phi"
)

// ssnRegex matches the ###-##-#### grouping only. Undelimited nine
// digit runs are too ambiguous against MRNs and account numbers.
var ssnRegex = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

// SSN returns the Social Security Number pattern. The grouping is
// deterministic, so hits carry full confidence.
func SSN() Pattern {
	return Pattern{
		Type: phi.ElementSSN,
		Find: func(text string) []Hit {
			var hits []Hit
			for _, m := range ssnRegex.FindAllString(text, -1) {
				hits = append(hits, Hit{Value: m, Confidence: 1.0})
			}
			return hits
		},
	}
}
