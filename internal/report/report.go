// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report aggregates per-document validation results into a
// batch report with summary statistics, and persists it as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"phi-validate/internal/phi"
)

// Summary holds the top-level counters of a batch.
type Summary struct {
	TotalDocuments   int     `json:"total_documents"`
	Passed           int     `json:"passed"`
	Failed           int     `json:"failed"`
	PassRate         float64 `json:"pass_rate"`
	PHIPositiveCount int     `json:"phi_positive_count"`
	PHINegativeCount int     `json:"phi_negative_count"`
}

// GroupStats is the pass/fail breakdown of one result grouping.
type GroupStats struct {
	Count    int     `json:"count"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"`
}

// FormatStats is the pass/fail breakdown for one file format.
type FormatStats struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"`
}

// ErrorCount is one entry of the common-error histogram.
type ErrorCount struct {
	Error string `json:"error"`
	Count int    `json:"count"`
}

// ValidationReport is the aggregate over a batch of results.
type ValidationReport struct {
	Summary                Summary                 `json:"summary"`
	PHIPositiveStats       GroupStats              `json:"phi_positive_stats"`
	PHINegativeStats       GroupStats              `json:"phi_negative_stats"`
	FormatBreakdown        map[string]FormatStats  `json:"format_breakdown"`
	PHIElementDistribution map[phi.ElementType]int `json:"phi_element_distribution"`
	CommonErrors           []ErrorCount            `json:"common_errors"`
	GeneratedAt            time.Time               `json:"generated_at"`
	DetailedResults        []phi.ValidationResult  `json:"detailed_results"`
}

// DefaultTopErrors caps the common-error histogram.
const DefaultTopErrors = 10

// Aggregator builds ValidationReports. Aggregation is a single
// sequential pass; counter and histogram updates are not safe to
// parallelize and never need to be.
type Aggregator struct {
	topErrors int
	now       func() time.Time
}

// NewAggregator returns an aggregator with default settings.
func NewAggregator() *Aggregator {
	return &Aggregator{topErrors: DefaultTopErrors, now: time.Now}
}

// WithTopErrors sets how many distinct errors the histogram retains.
func (a *Aggregator) WithTopErrors(n int) *Aggregator {
	if n > 0 {
		a.topErrors = n
	}
	return a
}

// Aggregate folds all results into one report. An empty input yields
// zero counts and 0.0 rates, never a division error.
func (a *Aggregator) Aggregate(results []phi.ValidationResult) *ValidationReport {
	rep := &ValidationReport{
		FormatBreakdown:        make(map[string]FormatStats),
		PHIElementDistribution: make(map[phi.ElementType]int),
		CommonErrors:           []ErrorCount{},
		GeneratedAt:            a.now(),
		DetailedResults:        results,
	}
	if rep.DetailedResults == nil {
		rep.DetailedResults = []phi.ValidationResult{}
	}

	var positive, negative GroupStats
	errorCounts := make(map[string]int)
	errorOrder := make(map[string]int)

	for _, r := range results {
		rep.Summary.TotalDocuments++
		if r.IsValid {
			rep.Summary.Passed++
		} else {
			rep.Summary.Failed++
		}

		fs := rep.FormatBreakdown[r.FileFormat]
		fs.Total++
		if r.IsValid {
			fs.Passed++
		} else {
			fs.Failed++
		}
		rep.FormatBreakdown[r.FileFormat] = fs

		switch r.ExpectedPHIType {
		case phi.Positive:
			rep.Summary.PHIPositiveCount++
			tallyGroup(&positive, r.IsValid)
		case phi.Negative:
			rep.Summary.PHINegativeCount++
			tallyGroup(&negative, r.IsValid)
		}

		// Each document's own dedup already ran; counts here are
		// deliberately not deduplicated across documents.
		for _, elem := range r.PHIElementsFound {
			rep.PHIElementDistribution[elem.ElementType]++
		}

		for _, e := range r.ValidationErrors {
			if _, seen := errorCounts[e]; !seen {
				errorOrder[e] = len(errorOrder)
			}
			errorCounts[e]++
		}
	}

	rep.Summary.PassRate = rate(rep.Summary.Passed, rep.Summary.TotalDocuments)
	positive.PassRate = rate(positive.Passed, positive.Count)
	negative.PassRate = rate(negative.Passed, negative.Count)
	rep.PHIPositiveStats = positive
	rep.PHINegativeStats = negative

	for format, fs := range rep.FormatBreakdown {
		fs.PassRate = rate(fs.Passed, fs.Total)
		rep.FormatBreakdown[format] = fs
	}

	rep.CommonErrors = topErrors(errorCounts, errorOrder, a.topErrors)
	return rep
}

func tallyGroup(g *GroupStats, passed bool) {
	g.Count++
	if passed {
		g.Passed++
	} else {
		g.Failed++
	}
}

// rate is passed/total as a percentage rounded to two decimals, with
// an empty group defined as 0.0.
func rate(passed, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(passed)/float64(total)*10000) / 100
}

// topErrors sorts distinct errors by count descending, ties broken by
// first-seen order, and keeps the top n.
func topErrors(counts map[string]int, order map[string]int, n int) []ErrorCount {
	entries := make([]ErrorCount, 0, len(counts))
	for e, c := range counts {
		entries = append(entries, ErrorCount{Error: e, Count: c})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return order[entries[i].Error] < order[entries[j].Error]
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// WriteFile persists the report as indented JSON, creating parent
// directories as needed.
func (r *ValidationReport) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ReadFile loads a persisted report.
func ReadFile(path string) (*ValidationReport, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var rep ValidationReport
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &rep, nil
}
