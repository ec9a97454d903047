// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"phi-validate/internal/phi"
)

// Config represents the application configuration.
type Config struct {
	// Default settings for CLI behavior
	Defaults struct {
		Format  string `yaml:"format"`
		Verbose bool   `yaml:"verbose"`
		NoColor bool   `yaml:"no_color"`
	} `yaml:"defaults"`

	// Detection settings
	Detection struct {
		// MinConfidence filters findings below the threshold.
		// Heuristic recognizers (person names, addresses) are the
		// usual reason to raise it.
		MinConfidence float64 `yaml:"min_confidence"`

		// RequiredElements overrides the default required set for
		// positive-mode validation.
		RequiredElements []string `yaml:"required_elements"`
	} `yaml:"detection"`

	// Batch processing settings
	Batch struct {
		// Workers is the parallel validation worker count; 0 means
		// one per CPU.
		Workers int `yaml:"workers"`

		// PerDocumentTimeout bounds a single document's validation.
		// A timed-out document is treated as an integrity failure.
		// Zero disables the deadline.
		PerDocumentTimeout time.Duration `yaml:"per_document_timeout"`
	} `yaml:"batch"`

	// Report settings
	Report struct {
		// TopErrors caps the common-error histogram.
		TopErrors int `yaml:"top_errors"`
	} `yaml:"report"`
}

// LoadConfig loads configuration from the specified file path. An
// empty path returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	config.Defaults.Format = "text"
	config.Detection.MinConfidence = 0.0
	config.Batch.Workers = 0
	config.Report.TopErrors = 10

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if config.Detection.MinConfidence < 0 || config.Detection.MinConfidence > 1 {
		return nil, fmt.Errorf("detection.min_confidence must be within [0.0, 1.0], got %v", config.Detection.MinConfidence)
	}
	if config.Report.TopErrors <= 0 {
		config.Report.TopErrors = 10
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
// and returns the first match, or an empty string when none exists.
func FindConfigFile() string {
	candidates := []string{
		"phi-validate.yaml",
		"phi-validate.yml",
		".phi-validate.yaml",
		".phi-validate.yml",
	}
	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		standard := filepath.Join(home, ".config", "phi-validate", "config.yaml")
		if fileExists(standard) {
			return standard
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// RequiredElements resolves the configured required set, or nil when
// the default should apply.
func (c *Config) RequiredElements() []phi.ElementType {
	if len(c.Detection.RequiredElements) == 0 {
		return nil
	}
	required := make([]phi.ElementType, 0, len(c.Detection.RequiredElements))
	for _, name := range c.Detection.RequiredElements {
		required = append(required, phi.ElementType(name))
	}
	return required
}
