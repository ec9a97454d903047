// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"strings"
	"testing"

	"phi-validate/internal/phi"
)

func findValues(p Pattern, text string) []string {
	var values []string
	for _, hit := range p.Find(text) {
		values = append(values, hit.Value)
	}
	return values
}

func TestSSN(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"standard format", "SSN: 123-45-6789", []string{"123-45-6789"}},
		{"multiple matches", "123-45-6789 and 987-65-4321", []string{"123-45-6789", "987-65-4321"}},
		{"undelimited digits ignored", "account 123456789", nil},
		{"phone not matched", "call 555-123-4567", nil},
		{"embedded in longer number", "12345-67-89012", nil},
		{"empty input", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := findValues(SSN(), tc.input)
			assertValues(t, got, tc.want)
		})
	}
}

func TestMRN(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"compact form", "MRN123456", []string{"MRN123456"}},
		{"labeled form", "MRN: 123456", []string{"MRN: 123456"}},
		{"lowercase prefix", "mrn 7891011", []string{"mrn 7891011"}},
		{"too few digits", "MRN12345", nil},
		{"no prefix", "123456", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := findValues(MRN(), tc.input)
			assertValues(t, got, tc.want)
		})
	}
}

func TestPhone(t *testing.T) {
	cases := []struct {
		name           string
		input          string
		want           []string
		wantConfidence float64
	}{
		{"parenthesized", "Call (555) 123-4567 today", []string{"(555) 123-4567"}, 1.0},
		{"dashed", "555-123-4567", []string{"555-123-4567"}, 0.9},
		{"dotted", "555.123.4567", []string{"555.123.4567"}, 0.9},
		{"undelimited digits ignored", "5551234567", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hits := Phone().Find(tc.input)
			var got []string
			for _, h := range hits {
				got = append(got, h.Value)
				if h.Confidence != tc.wantConfidence {
					t.Errorf("confidence = %v, want %v", h.Confidence, tc.wantConfidence)
				}
			}
			assertValues(t, got, tc.want)
		})
	}
}

func TestDOB(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"four digit year", "DOB: 01/15/1980", []string{"01/15/1980"}},
		{"single digit month and day", "3/7/1975", []string{"3/7/1975"}},
		{"two digit year", "born 12/25/85", []string{"12/25/85"}},
		{"month thirteen rejected", "13/01/1990", nil},
		{"february thirtieth rejected", "02/30/1990", nil},
		{"day zero rejected", "06/00/1990", nil},
		{"leap day on leap year", "02/29/2000", []string{"02/29/2000"}},
		{"leap day on non-leap year", "02/29/1999", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := findValues(DOB(), tc.input)
			assertValues(t, got, tc.want)
		})
	}
}

func TestEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "contact john.smith@example.com please", []string{"john.smith@example.com"}},
		{"plus tag", "a+tag@sub.example.org", []string{"a+tag@sub.example.org"}},
		{"no tld", "user@localhost", nil},
		{"bare at sign", "nothing @ here", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := findValues(Email(), tc.input)
			assertValues(t, got, tc.want)
		})
	}
}

func TestAddress(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"street only", "lives at 123 Main Street now", []string{"123 Main Street"}},
		{"abbreviated suffix", "456 Oak Ave", []string{"456 Oak Ave"}},
		{"with city state zip", "123 Oak Street, Springfield, IL 62704", []string{"123 Oak Street, Springfield, IL 62704"}},
		{"zip plus four", "9 Elm Rd, Dover, DE 19901-1234", []string{"9 Elm Rd, Dover, DE 19901-1234"}},
		{"no street number", "Main Street runs north", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := findValues(Address(), tc.input)
			assertValues(t, got, tc.want)
		})
	}
}

func TestAddressZIPOnNextLineNotJoined(t *testing.T) {
	got := findValues(Address(), "123 Main Street\nSpringfield, IL 62704")
	assertValues(t, got, []string{"123 Main Street"})
}

func TestName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"labeled patient", "Patient: John Smith", []string{"John Smith", "John Smith"}},
		{"labeled name field", "Name: Mary Jane Watson", []string{"Mary Jane Watson", "Mary Jane"}},
		{"honorific", "seen by Dr. Sarah Connor", []string{"Sarah Connor"}},
		{"facility stoplisted", "Springfield Medical Center", nil},
		{"section header stoplisted", "Lab Results attached", nil},
		{"lowercase ignored", "john smith", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := findValues(Name(), tc.input)
			assertValues(t, got, tc.want)
		})
	}
}

func TestNameLabeledOutranksBare(t *testing.T) {
	hits := Name().Find("Patient: John Smith")
	if len(hits) == 0 {
		t.Fatal("expected hits")
	}
	var best float64
	for _, h := range hits {
		if h.Value == "John Smith" && h.Confidence > best {
			best = h.Confidence
		}
	}
	if best != 0.9 {
		t.Errorf("labeled confidence = %v, want 0.9", best)
	}
}

func TestInsuranceID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"medicare prefix", "Member ID: MC12345678", []string{"MC12345678"}},
		{"blue cross prefix", "BC98765432", []string{"BC98765432"}},
		{"unknown prefix", "XX12345678", nil},
		{"too few digits", "MC1234567", nil},
		{"too many digits", "MC123456789", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := findValues(InsuranceID(), tc.input)
			assertValues(t, got, tc.want)
		})
	}
}

func TestPatternsAcceptArbitraryInput(t *testing.T) {
	inputs := []string{
		"",
		"\x00\x01\x02",
		strings.Repeat("a", 100000),
		"日本語のテキスト 123-45-6789",
		"émile@exámple.com",
	}
	for _, p := range Default().Patterns() {
		for _, input := range inputs {
			// Must not panic; non-matches are empty results.
			_ = p.Find(input)
		}
	}
}

func TestDefaultCoversAllElementTypes(t *testing.T) {
	covered := make(map[phi.ElementType]bool)
	for _, p := range Default().Patterns() {
		covered[p.Type] = true
	}
	for _, et := range phi.AllElementTypes() {
		if !covered[et] {
			t.Errorf("no pattern registered for element type %s", et)
		}
	}
}

func assertValues(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
