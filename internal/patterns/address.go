// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"regexp"

	"phi-validate/internal/phi"
)

var (
	// streetRegex matches a street number, one to three capitalized
	// name tokens, and a common street suffix.
	streetRegex = regexp.MustCompile(`\b\d{1,6}\s+(?:[A-Z][a-z]+\s+){1,3}(?i:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way|Place|Pl)\b`)

	// zipTailRegex looks for a ZIP shortly after the street suffix so
	// "123 Oak Street, Springfield, IL 62704" is captured as one value.
	zipTailRegex = regexp.MustCompile(`^[^\n]{0,40}?\b\d{5}(?:-\d{4})?\b`)
)

// Address returns the street address pattern. Free text can produce
// shapes like "3 Main Points" that pass the regex, so the baseline
// confidence sits below the deterministic types.
func Address() Pattern {
	return Pattern{
		Type: phi.ElementAddress,
		Find: func(text string) []Hit {
			var hits []Hit
			for _, loc := range streetRegex.FindAllStringIndex(text, -1) {
				value := text[loc[0]:loc[1]]
				if tail := zipTailRegex.FindString(text[loc[1]:]); tail != "" {
					value = text[loc[0] : loc[1]+len(tail)]
				}
				hits = append(hits, Hit{Value: value, Confidence: 0.8})
			}
			return hits
		},
	}
}
