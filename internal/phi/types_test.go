// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phi

import (
	"encoding/json"
	"testing"
)

func TestParseType(t *testing.T) {
	cases := []struct {
		input string
		want  Type
	}{
		{"positive", Positive},
		{"negative", Negative},
		{"unknown", Unknown},
		{"", Unknown},
		{"bogus", Unknown},
	}
	for _, tc := range cases {
		if got := ParseType(tc.input); got != tc.want {
			t.Errorf("ParseType(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestElementJSONShape(t *testing.T) {
	e := Element{ElementType: ElementSSN, Value: "123-45-6789", Location: "paragraph_2", Confidence: 1.0}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"element_type":"ssn","value":"123-45-6789","location":"paragraph_2","confidence":1}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestFoundTypes(t *testing.T) {
	r := ValidationResult{PHIElementsFound: []Element{
		{ElementType: ElementSSN},
		{ElementType: ElementSSN},
		{ElementType: ElementName},
	}}
	found := r.FoundTypes()
	if len(found) != 2 || !found[ElementSSN] || !found[ElementName] {
		t.Errorf("found = %v", found)
	}
}
