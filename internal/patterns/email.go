// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"regexp"

	"phi-validate/internal/phi"
)

var emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Email returns the email address pattern.
func Email() Pattern {
	return Pattern{
		Type: phi.ElementEmail,
		Find: func(text string) []Hit {
			var hits []Hit
			for _, m := range emailRegex.FindAllString(text, -1) {
				hits = append(hits, Hit{Value: m, Confidence: 1.0})
			}
			return hits
		},
	}
}
