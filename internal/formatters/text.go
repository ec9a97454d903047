// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"phi-validate/internal/phi"
	"phi-validate/internal/report"
)

// TextFormatter renders a human-readable batch summary.
type TextFormatter struct{}

func (f *TextFormatter) Name() string {
	return "text"
}

func (f *TextFormatter) FileExtension() string {
	return ".txt"
}

func (f *TextFormatter) Format(rep *report.ValidationReport, options Options) (string, error) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	if options.NoColor {
		plain := fmt.Sprint
		green, red, yellow, bold = plain, plain, plain, plain
	}

	var sb strings.Builder

	sb.WriteString(bold("PHI Validation Report") + "\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04:05")))

	s := rep.Summary
	sb.WriteString(bold("Summary") + "\n")
	sb.WriteString(fmt.Sprintf("  Total documents: %d\n", s.TotalDocuments))
	sb.WriteString(fmt.Sprintf("  Passed:          %s\n", green(s.Passed)))
	sb.WriteString(fmt.Sprintf("  Failed:          %s\n", red(s.Failed)))
	sb.WriteString(fmt.Sprintf("  Pass rate:       %.2f%%\n", s.PassRate))
	sb.WriteString(fmt.Sprintf("  PHI positive:    %d  PHI negative: %d\n\n", s.PHIPositiveCount, s.PHINegativeCount))

	if len(rep.FormatBreakdown) > 0 {
		sb.WriteString(bold("By format") + "\n")
		formats := make([]string, 0, len(rep.FormatBreakdown))
		for format := range rep.FormatBreakdown {
			formats = append(formats, format)
		}
		sort.Strings(formats)
		for _, format := range formats {
			fs := rep.FormatBreakdown[format]
			sb.WriteString(fmt.Sprintf("  %-6s total %-4d passed %-4d failed %-4d (%.2f%%)\n",
				format, fs.Total, fs.Passed, fs.Failed, fs.PassRate))
		}
		sb.WriteString("\n")
	}

	if len(rep.PHIElementDistribution) > 0 {
		sb.WriteString(bold("PHI element distribution") + "\n")
		types := make([]string, 0, len(rep.PHIElementDistribution))
		for t := range rep.PHIElementDistribution {
			types = append(types, string(t))
		}
		sort.Strings(types)
		for _, t := range types {
			sb.WriteString(fmt.Sprintf("  %-13s %d\n", t, rep.PHIElementDistribution[phi.ElementType(t)]))
		}
		sb.WriteString("\n")
	}

	if len(rep.CommonErrors) > 0 {
		sb.WriteString(bold("Most common errors") + "\n")
		for _, ec := range rep.CommonErrors {
			sb.WriteString(fmt.Sprintf("  %3dx %s\n", ec.Count, yellow(ec.Error)))
		}
		sb.WriteString("\n")
	}

	if options.Verbose {
		sb.WriteString(bold("Documents") + "\n")
		for _, r := range rep.DetailedResults {
			status := green("PASS")
			if !r.IsValid {
				status = red("FAIL")
			}
			sb.WriteString(fmt.Sprintf("  [%s] %s (%d findings)\n", status, r.Filepath, len(r.PHIElementsFound)))
			for _, e := range r.ValidationErrors {
				sb.WriteString(fmt.Sprintf("        error: %s\n", e))
			}
			for _, w := range r.ValidationWarnings {
				sb.WriteString(fmt.Sprintf("        warning: %s\n", yellow(w)))
			}
		}
	}

	return sb.String(), nil
}

func init() {
	register(&TextFormatter{})
}
