// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"phi-validate/internal/phi"
)

// dobRegex matches MM/DD/YYYY and the two digit year variant. Matches
// are still calendar-checked before being reported.
var dobRegex = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/(?:\d{4}|\d{2})\b`)

// DOB returns the date of birth pattern. A string that looks like a
// date but is not a plausible calendar date (month 13, February 30)
// is rejected, not reported at reduced confidence.
func DOB() Pattern {
	return Pattern{
		Type: phi.ElementDOB,
		Find: func(text string) []Hit {
			var hits []Hit
			for _, m := range dobRegex.FindAllString(text, -1) {
				if !plausibleDate(m) {
					continue
				}
				hits = append(hits, Hit{Value: m, Confidence: 1.0})
			}
			return hits
		},
	}
}

// plausibleDate reports whether an MM/DD/YYYY or MM/DD/YY string is a
// real calendar date. Two digit years are pivoted at 30 (00-30 maps to
// 2000-2030, 31-99 to 1931-1999).
func plausibleDate(s string) bool {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return false
	}
	month, _ := strconv.Atoi(parts[0])
	day, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])

	if len(parts[2]) == 2 {
		if year <= 30 {
			year += 2000
		} else {
			year += 1900
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}

	// time.Date normalizes out-of-range days (Feb 30 becomes Mar 2),
	// so a round trip that changes the month or day means the date
	// never existed.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return int(t.Month()) == month && t.Day() == day && t.Year() == year
}
