// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phi

import (
	"time"
)

// ElementType identifies one category of PHI.
type ElementType string

// Known PHI element types.
const (
	ElementName        ElementType = "name"
	ElementDOB         ElementType = "dob"
	ElementMRN         ElementType = "mrn"
	ElementSSN         ElementType = "ssn"
	ElementAddress     ElementType = "address"
	ElementPhone       ElementType = "phone"
	ElementEmail       ElementType = "email"
	ElementInsuranceID ElementType = "insurance_id"
)

// AllElementTypes lists every recognized element type in a fixed order.
func AllElementTypes() []ElementType {
	return []ElementType{
		ElementName, ElementDOB, ElementMRN, ElementSSN,
		ElementAddress, ElementPhone, ElementEmail, ElementInsuranceID,
	}
}

// Type is the expected PHI category of a document under validation.
type Type string

const (
	Positive Type = "positive"
	Negative Type = "negative"
	Unknown  Type = "unknown"
)

// ParseType converts a string into a Type, defaulting to Unknown.
func ParseType(s string) Type {
	switch Type(s) {
	case Positive, Negative, Unknown:
		return Type(s)
	default:
		return Unknown
	}
}

// Element is one recognized PHI occurrence. Immutable once created by
// the detection engine.
type Element struct {
	ElementType ElementType `json:"element_type"`
	Value       string      `json:"value"`
	Location    string      `json:"location"`
	Confidence  float64     `json:"confidence"`
}

// ValidationResult is the outcome of validating a single document.
// Created once per validation call and never mutated afterwards.
type ValidationResult struct {
	Filepath           string         `json:"filepath"`
	FileFormat         string         `json:"file_format"`
	ExpectedPHIType    Type           `json:"expected_phi_type"`
	FileIntegrityOK    bool           `json:"file_integrity_ok"`
	PHIElementsFound   []Element      `json:"phi_elements_found"`
	ValidationErrors   []string       `json:"validation_errors"`
	ValidationWarnings []string       `json:"validation_warnings"`
	Metadata           map[string]any `json:"metadata"`
	IsValid            bool           `json:"is_valid"`
	ValidatedAt        time.Time      `json:"validated_at"`
}

// FoundTypes returns the set of element types present in the result.
func (r *ValidationResult) FoundTypes() map[ElementType]bool {
	found := make(map[ElementType]bool, len(r.PHIElementsFound))
	for _, elem := range r.PHIElementsFound {
		found[elem.ElementType] = true
	}
	return found
}

// DefaultRequiredElements is the required set for positive-policy
// validation when the caller does not supply one.
func DefaultRequiredElements() []ElementType {
	return []ElementType{
		ElementName, ElementDOB, ElementMRN,
		ElementSSN, ElementAddress, ElementPhone,
	}
}
