// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package detector runs the PHI pattern library over extracted text
// fragments and produces typed, located, deduplicated findings.
package detector

import (
	"phi-validate/internal/extractors"
	"phi-validate/internal/patterns"
	"phi-validate/internal/phi"
)

// Engine applies a pattern library to fragments. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	library       *patterns.Library
	minConfidence float64
}

// NewEngine creates an engine over the given pattern library.
func NewEngine(library *patterns.Library) *Engine {
	return &Engine{library: library}
}

// WithMinConfidence drops findings scored below the threshold. Zero
// keeps everything.
func (e *Engine) WithMinConfidence(c float64) *Engine {
	e.minConfidence = c
	return e
}

type dedupKey struct {
	elementType phi.ElementType
	value       string
}

// Detect scans every fragment with every pattern. Findings that share
// an (element type, value) pair collapse to one element carrying the
// first-seen location and the highest confidence observed. Output
// order follows fragment scan order and is stable across runs.
func (e *Engine) Detect(fragments []extractors.Fragment) []phi.Element {
	var elements []phi.Element
	index := make(map[dedupKey]int)

	for _, fragment := range fragments {
		for _, pattern := range e.library.Patterns() {
			for _, hit := range pattern.Find(fragment.Text) {
				if hit.Confidence < e.minConfidence {
					continue
				}
				key := dedupKey{pattern.Type, hit.Value}
				if i, seen := index[key]; seen {
					if hit.Confidence > elements[i].Confidence {
						elements[i].Confidence = hit.Confidence
					}
					continue
				}
				index[key] = len(elements)
				elements = append(elements, phi.Element{
					ElementType: pattern.Type,
					Value:       hit.Value,
					Location:    fragment.Location,
					Confidence:  hit.Confidence,
				})
			}
		}
	}

	return elements
}
