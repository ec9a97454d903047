// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"phi-validate/internal/config"
	"phi-validate/internal/core"
	"phi-validate/internal/extractors"
	"phi-validate/internal/formatters"
	"phi-validate/internal/phi"
	"phi-validate/internal/version"

	"golang.org/x/term"
)

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

func main() {
	inputFile := flag.String("file", "", "Path to the input file or directory of documents to validate")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	expectType := flag.String("expect", "unknown", "Expected PHI content: positive, negative, or unknown")
	requiredList := flag.String("required", "", "Comma-separated required PHI elements for positive validation (e.g. 'name,dob,mrn')")
	outputFormat := flag.String("format", "", "Output format: text, json (default: text)")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	reportFile := flag.String("report", "", "Path to write the aggregated JSON validation report")
	workers := flag.Int("workers", 0, "Number of parallel validation workers (0 = one per CPU)")
	timeout := flag.Duration("timeout", 0, "Per-document validation timeout (0 disables the deadline)")
	recursive := flag.Bool("recursive", false, "Recursively walk directories")
	verbose := flag.Bool("verbose", false, "Display detailed information for each document")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		flag.Usage()
		os.Exit(2)
	}

	expected := phi.ParseType(strings.ToLower(*expectType))
	if strings.ToLower(*expectType) != string(expected) {
		fmt.Fprintf(os.Stderr, "Error: invalid -expect value %q (want positive, negative, or unknown)\n", *expectType)
		os.Exit(2)
	}

	cfg := loadConfiguration(*configFile)
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	if *timeout > 0 {
		cfg.Batch.PerDocumentTimeout = *timeout
	}
	if *requiredList != "" {
		cfg.Detection.RequiredElements = splitList(*requiredList)
	}
	if *verbose {
		cfg.Defaults.Verbose = true
	}
	if *noColor {
		cfg.Defaults.NoColor = true
	}

	format := cfg.Defaults.Format
	if *outputFormat != "" {
		format = *outputFormat
	}
	if _, ok := formatters.Get(format); !ok {
		fmt.Fprintf(os.Stderr, "Error: unsupported format %q. Available formats: %s\n", format, strings.Join(formatters.List(), ", "))
		os.Exit(2)
	}

	// Colors only make sense on a terminal.
	if *outputFile == "" && !isTerminal(os.Stdout) {
		cfg.Defaults.NoColor = true
	}

	paths, err := collectFiles(*inputFile, *recursive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no supported documents found under %s (supported: %s)\n",
			*inputFile, strings.Join(extractors.Formats(), ", "))
		os.Exit(2)
	}

	validator := core.NewValidator(cfg)

	start := time.Now()
	rep, err := validator.ValidateBatch(paths, expected, *reportFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	options := formatters.Options{
		Verbose: cfg.Defaults.Verbose,
		NoColor: cfg.Defaults.NoColor,
	}
	output, err := formatters.Export(format, rep, options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(2)
		}
	} else {
		fmt.Print(output)
		if !strings.HasSuffix(output, "\n") {
			fmt.Println()
		}
	}

	if cfg.Defaults.Verbose && *outputFile != "" {
		fmt.Fprintf(os.Stderr, "Validated %d document(s) in %s\n", rep.Summary.TotalDocuments, time.Since(start).Round(time.Millisecond))
	}

	if rep.Summary.Failed > 0 {
		os.Exit(1)
	}
}

// collectFiles resolves the input path to the list of supported
// documents to validate, in stable order.
func collectFiles(input string, recursive bool) ([]string, error) {
	cleanPath := filepath.Clean(input)
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", cleanPath, err)
	}

	if !info.IsDir() {
		return []string{cleanPath}, nil
	}

	var files []string
	if recursive {
		err = filepath.Walk(cleanPath, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Skipping %s: %v\n", path, err)
				return nil
			}
			if info.IsDir() {
				return nil
			}
			if extractors.Supported(extractors.Format(path)) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(cleanPath)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(cleanPath, entry.Name())
			if extractors.Supported(extractors.Format(path)) {
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func splitList(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
