// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package policy turns a set of findings plus integrity status into a
// pass/fail verdict under one of three validation modes.
package policy

import (
	"fmt"
	"sort"
	"strings"

	"phi-validate/internal/phi"
)

// Verdict is the outcome of evaluating one document against a policy.
type Verdict struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// Evaluate applies the policy selected by expected. All three modes
// require file integrity; what the findings imply differs per mode.
// required is only consulted in positive mode and defaults to the
// standard six element types when nil.
func Evaluate(integrityOK bool, findings []phi.Element, expected phi.Type, required []phi.ElementType) Verdict {
	switch expected {
	case phi.Positive:
		return evaluatePositive(integrityOK, findings, required)
	case phi.Negative:
		return evaluateNegative(integrityOK, findings)
	default:
		return evaluateUnknown(integrityOK)
	}
}

// evaluatePositive passes only when integrity holds and every
// required element type appears at least once.
func evaluatePositive(integrityOK bool, findings []phi.Element, required []phi.ElementType) Verdict {
	if required == nil {
		required = phi.DefaultRequiredElements()
	}

	found := make(map[phi.ElementType]bool, len(findings))
	for _, elem := range findings {
		found[elem.ElementType] = true
	}

	var missing []string
	for _, req := range required {
		if !found[req] {
			missing = append(missing, string(req))
		}
	}

	v := Verdict{IsValid: integrityOK}
	if !integrityOK {
		v.Errors = append(v.Errors, "file integrity check failed - file may be corrupted")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		v.Errors = append(v.Errors, fmt.Sprintf("Missing required PHI elements: %s", strings.Join(missing, ", ")))
		v.IsValid = false
	}
	return v
}

// evaluateNegative passes only when integrity holds and zero findings
// of any type are present. Each unexpected element type contributes
// one error naming the type and the first value and location seen.
func evaluateNegative(integrityOK bool, findings []phi.Element) Verdict {
	v := Verdict{IsValid: integrityOK}
	if !integrityOK {
		v.Errors = append(v.Errors, "file integrity check failed - file may be corrupted")
	}

	reported := make(map[phi.ElementType]bool)
	for _, elem := range findings {
		if reported[elem.ElementType] {
			continue
		}
		reported[elem.ElementType] = true
		v.Errors = append(v.Errors, fmt.Sprintf("Unexpected PHI element %s: %q at %s", elem.ElementType, elem.Value, elem.Location))
	}
	if len(reported) > 0 {
		v.IsValid = false
	}
	return v
}

// evaluateUnknown is pure extraction and reporting: findings are
// surfaced by the caller but never cause failure.
func evaluateUnknown(integrityOK bool) Verdict {
	v := Verdict{IsValid: integrityOK}
	if !integrityOK {
		v.Errors = append(v.Errors, "file integrity check failed - file may be corrupted")
	}
	return v
}
