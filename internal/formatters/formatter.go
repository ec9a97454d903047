// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package formatters renders a ValidationReport for terminal or file
// output.
package formatters

import (
	"fmt"
	"strings"

	"phi-validate/internal/report"
)

// Options configures report rendering.
type Options struct {
	// Verbose includes per-document detail in text output.
	Verbose bool

	// NoColor disables ANSI colors in text output.
	NoColor bool
}

// Formatter renders a validation report in one output format.
type Formatter interface {
	Format(rep *report.ValidationReport, options Options) (string, error)
	Name() string
	FileExtension() string
}

var registry = map[string]Formatter{}

func register(f Formatter) {
	registry[f.Name()] = f
}

// Get retrieves a formatter by name.
func Get(name string) (Formatter, bool) {
	f, ok := registry[name]
	return f, ok
}

// List returns the registered formatter names.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Export formats a report with the named formatter.
func Export(format string, rep *report.ValidationReport, options Options) (string, error) {
	f, ok := Get(format)
	if !ok {
		return "", fmt.Errorf("unsupported format %q. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return f.Format(rep, options)
}
