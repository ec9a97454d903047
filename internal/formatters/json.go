// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"encoding/json"
	"fmt"

	"phi-validate/internal/report"
)

// JSONFormatter emits the report in its persisted JSON shape.
type JSONFormatter struct{}

func (f *JSONFormatter) Name() string {
	return "json"
}

func (f *JSONFormatter) FileExtension() string {
	return ".json"
}

func (f *JSONFormatter) Format(rep *report.ValidationReport, options Options) (string, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting JSON: %w", err)
	}
	return string(data), nil
}

func init() {
	register(&JSONFormatter{})
}
