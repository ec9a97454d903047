// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"regexp"
	"strings"

	"phi-validate/internal/phi"
)

var (
	// labeledNameRegex picks up names introduced by a Patient: or
	// Name: label, two to three capitalized tokens.
	labeledNameRegex = regexp.MustCompile(`\b(?:Patient|Name):\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})\b`)

	// bareNameRegex is the heuristic fallback: a capitalized pair,
	// optionally prefixed with an honorific.
	bareNameRegex = regexp.MustCompile(`\b(?:Dr\.\s+|Mr\.\s+|Mrs\.\s+|Ms\.\s+)?([A-Z][a-z]+\s+[A-Z][a-z]+)\b`)
)

// nameStopTokens are capitalized words that regularly appear in
// document headers, facility names, and section titles. A candidate
// containing any of them is not treated as a person name.
var nameStopTokens = map[string]bool{
	"medical": true, "center": true, "hospital": true, "clinic": true,
	"general": true, "regional": true, "memorial": true, "university": true,
	"health": true, "system": true, "department": true, "emergency": true,
	"patient": true, "record": true, "records": true, "chart": true,
	"lab": true, "labs": true, "results": true, "result": true,
	"test": true, "tests": true, "report": true, "summary": true,
	"insurance": true, "company": true, "group": true, "plan": true,
	"blood": true, "pressure": true, "heart": true, "rate": true,
	"visit": true, "discharge": true, "admission": true, "notes": true,
	"date": true, "birth": true, "social": true, "security": true,
	"phone": true, "number": true, "address": true, "street": true,
	"january": true, "february": true, "march": true, "april": true,
	"june": true, "july": true, "august": true, "september": true,
	"october": true, "november": true, "december": true,
	"new": true, "york": true, "united": true, "states": true,
}

// Name returns the person name pattern. Name detection is heuristic by
// nature, so even labeled hits stay below full confidence, and the
// bare capitalized-pair fallback sits lower still.
func Name() Pattern {
	return Pattern{
		Type: phi.ElementName,
		Find: func(text string) []Hit {
			var hits []Hit
			for _, m := range labeledNameRegex.FindAllStringSubmatch(text, -1) {
				if stoplisted(m[1]) {
					continue
				}
				hits = append(hits, Hit{Value: m[1], Confidence: 0.9})
			}
			for _, m := range bareNameRegex.FindAllStringSubmatch(text, -1) {
				if stoplisted(m[1]) {
					continue
				}
				hits = append(hits, Hit{Value: m[1], Confidence: 0.7})
			}
			return hits
		},
	}
}

// stoplisted reports whether any token of a candidate name is a known
// non-name word.
func stoplisted(candidate string) bool {
	for _, tok := range strings.Fields(candidate) {
		if nameStopTokens[strings.ToLower(tok)] {
			return true
		}
	}
	return false
}
