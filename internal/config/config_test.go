// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"phi-validate/internal/phi"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("format = %q, want text", cfg.Defaults.Format)
	}
	if cfg.Detection.MinConfidence != 0.0 {
		t.Errorf("min confidence = %v, want 0.0", cfg.Detection.MinConfidence)
	}
	if cfg.Batch.Workers != 0 {
		t.Errorf("workers = %d, want 0", cfg.Batch.Workers)
	}
	if cfg.Report.TopErrors != 10 {
		t.Errorf("top errors = %d, want 10", cfg.Report.TopErrors)
	}
	if cfg.RequiredElements() != nil {
		t.Errorf("required = %v, want nil", cfg.RequiredElements())
	}
}

func TestLoadConfigFile(t *testing.T) {
	content := `
defaults:
  format: json
  verbose: true
  no_color: true
detection:
  min_confidence: 0.8
  required_elements:
    - ssn
    - mrn
batch:
  workers: 4
report:
  top_errors: 3
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Defaults.Format != "json" || !cfg.Defaults.Verbose || !cfg.Defaults.NoColor {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if cfg.Detection.MinConfidence != 0.8 {
		t.Errorf("min confidence = %v, want 0.8", cfg.Detection.MinConfidence)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Batch.Workers)
	}
	if cfg.Report.TopErrors != 3 {
		t.Errorf("top errors = %d, want 3", cfg.Report.TopErrors)
	}

	required := cfg.RequiredElements()
	want := []phi.ElementType{phi.ElementSSN, phi.ElementMRN}
	if len(required) != len(want) {
		t.Fatalf("required = %v, want %v", required, want)
	}
	for i := range want {
		if required[i] != want[i] {
			t.Errorf("required[%d] = %v, want %v", i, required[i], want[i])
		}
	}
}

func TestLoadConfigPartialOverlay(t *testing.T) {
	content := "detection:\n  min_confidence: 0.5\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	// Untouched sections keep their defaults.
	if cfg.Defaults.Format != "text" {
		t.Errorf("format = %q, want text", cfg.Defaults.Format)
	}
	if cfg.Detection.MinConfidence != 0.5 {
		t.Errorf("min confidence = %v, want 0.5", cfg.Detection.MinConfidence)
	}
	if cfg.Report.TopErrors != 10 {
		t.Errorf("top errors = %d, want 10", cfg.Report.TopErrors)
	}
}

func TestLoadConfigInvalidConfidence(t *testing.T) {
	for _, v := range []string{"1.5", "-0.1"} {
		content := "detection:\n  min_confidence: " + v + "\n"
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("min_confidence %s should be rejected", v)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should error")
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("defaults: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed yaml should error")
	}
}
