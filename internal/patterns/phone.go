// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"regexp"

	"phi-validate/internal/phi"
)

var (
	// Primary form: (###) ###-####
	phoneRegex = regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}`)

	// Dash or dot separated variants: ###-###-#### / ###.###.####.
	// A separator is required on both groups so that undelimited digit
	// runs do not fire.
	phoneAltRegex = regexp.MustCompile(`\b\d{3}[-.]\d{3}[-.]\d{4}\b`)
)

// Phone returns the phone number pattern. Both forms normalize to the
// same element type; the parenthesized form is unambiguous and carries
// full confidence, the separated variants slightly less.
func Phone() Pattern {
	return Pattern{
		Type: phi.ElementPhone,
		Find: func(text string) []Hit {
			var hits []Hit
			for _, m := range phoneRegex.FindAllString(text, -1) {
				hits = append(hits, Hit{Value: m, Confidence: 1.0})
			}
			for _, m := range phoneAltRegex.FindAllString(text, -1) {
				hits = append(hits, Hit{Value: m, Confidence: 0.9})
			}
			return hits
		},
	}
}
