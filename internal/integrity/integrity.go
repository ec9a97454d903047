// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package integrity answers one question per file: does the container
// open as a structurally valid document of its claimed format. It
// never inspects content and never fails loudly; every internal error
// becomes false.
package integrity

import (
	"archive/zip"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/richardlehane/mscfb"

	"phi-validate/internal/extractors"
)

// Check reports whether the file at path opens as a valid instance of
// the format its extension claims. Missing files, empty files, and
// unsupported extensions are all false.
func Check(path string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return false
	}

	switch extractors.Format(path) {
	case ".docx":
		return checkZipManifest(path, "word/document.xml")
	case ".xlsx":
		return checkZipManifest(path, "xl/workbook.xml")
	case ".pptx":
		return checkZipManifest(path, "ppt/presentation.xml")
	case ".pdf":
		return checkPDF(path)
	case ".eml":
		return checkEML(path)
	case ".msg":
		return checkMsg(path)
	default:
		return false
	}
}

// checkZipManifest verifies the file is a readable zip archive whose
// manifest contains the part that defines the document type.
func checkZipManifest(path, requiredPart string) bool {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	defer reader.Close()

	hasTypes := false
	hasPart := false
	for _, file := range reader.File {
		switch file.Name {
		case "[Content_Types].xml":
			hasTypes = true
		case requiredPart:
			hasPart = true
		}
	}
	return hasTypes && hasPart
}

// checkPDF accepts the file when either PDF library can parse its
// structure. pdfcpu runs a full document validation; ledongthuc is
// the laxer second opinion.
func checkPDF(path string) bool {
	if err := api.ValidateFile(path, model.NewDefaultConfiguration()); err == nil {
		return true
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	return reader.NumPage() > 0
}

// checkEML wants minimally well-formed header syntax in the head of
// the file, nothing more.
func checkEML(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 2048)
	n, err := f.Read(head)
	if n == 0 && err != nil {
		return false
	}
	s := string(head[:n])
	for _, header := range []string{"From:", "To:", "Subject:", "Received:"} {
		if strings.Contains(s, header) {
			return true
		}
	}
	return false
}

func checkMsg(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = mscfb.New(f)
	return err == nil
}
