// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core wires the extraction, detection, and policy layers
// into the public validation operations shared by the CLI and any
// embedding caller.
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"phi-validate/internal/config"
	"phi-validate/internal/detector"
	"phi-validate/internal/extractors"
	"phi-validate/internal/integrity"
	"phi-validate/internal/parallel"
	"phi-validate/internal/patterns"
	"phi-validate/internal/phi"
	"phi-validate/internal/policy"
	"phi-validate/internal/report"
)

// Validator is the engine facade. It is stateless between calls and
// safe for concurrent use.
type Validator struct {
	engine   *detector.Engine
	required []phi.ElementType
	workers  int
	timeout  time.Duration
	top      int
	now      func() time.Time
}

// NewValidator builds a validator from configuration, using the full
// default pattern library.
func NewValidator(cfg *config.Config) *Validator {
	return NewValidatorWithLibrary(cfg, patterns.Default())
}

// NewValidatorWithLibrary builds a validator over an explicit pattern
// library; tests substitute reduced libraries here.
func NewValidatorWithLibrary(cfg *config.Config, lib *patterns.Library) *Validator {
	if cfg == nil {
		cfg, _ = config.LoadConfig("")
	}
	return &Validator{
		engine:   detector.NewEngine(lib).WithMinConfidence(cfg.Detection.MinConfidence),
		required: cfg.RequiredElements(),
		workers:  cfg.Batch.Workers,
		timeout:  cfg.Batch.PerDocumentTimeout,
		top:      cfg.Report.TopErrors,
		now:      time.Now,
	}
}

// ValidateDocument validates one document against the policy selected
// by expected. No failure escapes as an error or panic; everything
// lands in the result's error and warning fields so batch processing
// can continue past any single bad file.
func (v *Validator) ValidateDocument(path string, expected phi.Type) (result phi.ValidationResult) {
	result = phi.ValidationResult{
		Filepath:           path,
		FileFormat:         extractors.Format(path),
		ExpectedPHIType:    expected,
		PHIElementsFound:   []phi.Element{},
		ValidationErrors:   []string{},
		ValidationWarnings: []string{},
		Metadata:           map[string]any{},
		ValidatedAt:        v.now(),
	}
	defer func() {
		if r := recover(); r != nil {
			result.IsValid = false
			result.FileIntegrityOK = false
			result.ValidationErrors = append(result.ValidationErrors, fmt.Sprintf("internal validation failure: %v", r))
		}
	}()

	if !extractors.Supported(result.FileFormat) {
		result.ValidationErrors = append(result.ValidationErrors, fmt.Sprintf("Unsupported file format: %s", result.FileFormat))
		return result
	}

	if info, err := os.Stat(path); err == nil {
		result.Metadata["filename"] = filepath.Base(path)
		result.Metadata["file_size"] = info.Size()
		result.Metadata["modified"] = info.ModTime().Format(time.RFC3339)
		result.Metadata["format"] = result.FileFormat
	}

	result.FileIntegrityOK = integrity.Check(path)

	// Extraction runs even after an integrity failure; whatever comes
	// out is diagnostic detail and cannot rescue the verdict.
	extraction, extractErr := extractors.Extract(path)
	if extraction != nil {
		result.PHIElementsFound = v.engine.Detect(extraction.Fragments)
		result.ValidationWarnings = append(result.ValidationWarnings, extraction.Warnings...)
		for k, val := range extraction.Metadata {
			result.Metadata[k] = val
		}
	}

	verdict := policy.Evaluate(result.FileIntegrityOK, result.PHIElementsFound, expected, v.required)
	result.ValidationErrors = append(result.ValidationErrors, verdict.Errors...)
	result.ValidationWarnings = append(result.ValidationWarnings, verdict.Warnings...)
	result.IsValid = verdict.IsValid

	if extractErr != nil {
		if result.FileIntegrityOK {
			result.ValidationErrors = append(result.ValidationErrors, fmt.Sprintf("Error extracting PHI elements: %v", extractErr))
			result.IsValid = false
		} else {
			result.Metadata["extraction_error"] = extractErr.Error()
		}
	}

	return result
}

// CheckPHIPositive reports whether the document passes positive-mode
// validation: integrity holds and every required element type is
// present. A nil required set means the default six.
func (v *Validator) CheckPHIPositive(path string, required []phi.ElementType) bool {
	if required == nil {
		required = v.required
	}
	result := v.ValidateDocument(path, phi.Positive)
	if !result.FileIntegrityOK {
		return false
	}
	if required == nil {
		return result.IsValid
	}
	found := result.FoundTypes()
	for _, req := range required {
		if !found[req] {
			return false
		}
	}
	return true
}

// CheckPHINegative reports whether the document passes negative-mode
// validation: integrity holds and zero PHI elements are found.
func (v *Validator) CheckPHINegative(path string) bool {
	return v.ValidateDocument(path, phi.Negative).IsValid
}

// CheckFileIntegrity reports structural openability only.
func (v *Validator) CheckFileIntegrity(path string) bool {
	return integrity.Check(path)
}

// ExtractPHIElements extracts and detects without applying any
// policy. The returned error is the extraction failure, if any.
func (v *Validator) ExtractPHIElements(path string) ([]phi.Element, error) {
	extraction, err := extractors.Extract(path)
	if err != nil {
		return nil, err
	}
	return v.engine.Detect(extraction.Fragments), nil
}

// GenerateValidationReport aggregates results into a report and
// persists it when outputPath is non-empty. The report is always
// returned in memory.
func (v *Validator) GenerateValidationReport(results []phi.ValidationResult, outputPath string) (*report.ValidationReport, error) {
	rep := report.NewAggregator().WithTopErrors(v.top).Aggregate(results)
	if outputPath != "" {
		if err := rep.WriteFile(outputPath); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// ValidateBatch validates many documents in parallel and reduces the
// results into one report. A failing document contributes a failed
// result; it never aborts the batch.
func (v *Validator) ValidateBatch(paths []string, expected phi.Type, outputReport string) (*report.ValidationReport, error) {
	return v.ValidateBatchContext(context.Background(), paths, expected, outputReport)
}

// ValidateBatchContext is ValidateBatch with caller-controlled
// cancellation. Cancellation abandons not-yet-started documents.
func (v *Validator) ValidateBatchContext(ctx context.Context, paths []string, expected phi.Type, outputReport string) (*report.ValidationReport, error) {
	pool := parallel.NewWorkerPool(v.workers, func(path string) phi.ValidationResult {
		return v.validateWithDeadline(path, expected)
	})
	results := pool.Run(ctx, paths)
	return v.GenerateValidationReport(results, outputReport)
}

// validateWithDeadline applies the per-document timeout. Extraction
// has no mid-document cancellation point, so a timed-out validation
// is abandoned and reported as an integrity failure.
func (v *Validator) validateWithDeadline(path string, expected phi.Type) phi.ValidationResult {
	if v.timeout <= 0 {
		return v.ValidateDocument(path, expected)
	}

	done := make(chan phi.ValidationResult, 1)
	go func() {
		done <- v.ValidateDocument(path, expected)
	}()

	select {
	case result := <-done:
		return result
	case <-time.After(v.timeout):
		return phi.ValidationResult{
			Filepath:         path,
			FileFormat:       extractors.Format(path),
			ExpectedPHIType:  expected,
			FileIntegrityOK:  false,
			PHIElementsFound: []phi.Element{},
			ValidationErrors: []string{
				fmt.Sprintf("validation timed out after %s; treated as integrity failure", v.timeout),
			},
			ValidationWarnings: []string{},
			Metadata:           map[string]any{"timeout": true},
			IsValid:            false,
			ValidatedAt:        v.now(),
		}
	}
}
