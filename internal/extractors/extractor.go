// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extractors converts binary document containers into ordered
// sequences of located text fragments. Each supported format has one
// extractor; the dispatcher routes by file extension. Extractors fail
// only when the container itself cannot be parsed; whether that
// constitutes an integrity failure is decided elsewhere.
package extractors

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Fragment is one piece of extracted text tagged with a
// format-specific location (page, sheet cell, slide, ...). The
// location string is opaque to the detection engine.
type Fragment struct {
	Text     string
	Location string
}

// Extraction is the result of running one extractor over a document.
type Extraction struct {
	Fragments []Fragment

	// Warnings record degraded-but-successful conditions, such as a
	// PDF that parsed fine but yielded no text.
	Warnings []string

	// Metadata carries extractor diagnostics, e.g. which fallback
	// produced the fragments.
	Metadata map[string]any
}

func (e *Extraction) addWarning(w string) {
	e.Warnings = append(e.Warnings, w)
}

func (e *Extraction) setMeta(key string, value any) {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	e.Metadata[key] = value
}

// ExtractionError wraps the underlying parse failure from a format
// extractor.
type ExtractionError struct {
	Path   string
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s from %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func extractionErr(path, format string, err error) error {
	return &ExtractionError{Path: path, Format: format, Err: err}
}

// supportedFormats is the closed set of extensions the dispatcher
// routes. Type resolution is by extension only, never content
// sniffing.
var supportedFormats = map[string]bool{
	".docx": true,
	".pdf":  true,
	".xlsx": true,
	".pptx": true,
	".eml":  true,
	".msg":  true,
}

// Supported reports whether the extension (with leading dot, any
// case) names a supported document format.
func Supported(ext string) bool {
	return supportedFormats[strings.ToLower(ext)]
}

// Formats returns the supported extensions.
func Formats() []string {
	return []string{".docx", ".eml", ".msg", ".pdf", ".pptx", ".xlsx"}
}

// Format derives the file format label from a path.
func Format(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Extract routes a file to the extractor for its extension. It does
// not re-judge container openability: a file that passed the
// integrity check but still fails here surfaces as an
// ExtractionError for the caller to classify.
func Extract(path string) (*Extraction, error) {
	switch Format(path) {
	case ".docx":
		return extractDocx(path)
	case ".pdf":
		return extractPDF(path)
	case ".xlsx":
		return extractXlsx(path)
	case ".pptx":
		return extractPptx(path)
	case ".eml":
		return extractEML(path)
	case ".msg":
		return extractMsg(path)
	default:
		return nil, extractionErr(path, Format(path), fmt.Errorf("unsupported file format"))
	}
}
