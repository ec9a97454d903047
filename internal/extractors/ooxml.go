// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Office Open XML containers are zip archives of XML parts. The text
// we need lives in a handful of run elements (w:t for Word, a:t for
// PowerPoint), so lightweight regex extraction over the part content
// is sufficient and avoids a namespace-aware XML walk.

var (
	wordRunRegex  = regexp.MustCompile(`<w:t[^>]*>(.*?)</w:t>`)
	drawRunRegex  = regexp.MustCompile(`<a:t[^>]*>(.*?)</a:t>`)
	anyTagRegex   = regexp.MustCompile(`<[^>]*>`)
	sheetNumRegex = regexp.MustCompile(`(\d+)\.xml$`)
)

// readZipPart returns the decompressed content of one archive member.
func readZipPart(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// findZipPart locates an archive member by exact name.
func findZipPart(reader *zip.ReadCloser, name string) *zip.File {
	for _, file := range reader.File {
		if file.Name == name {
			return file
		}
	}
	return nil
}

// runText concatenates the text runs inside an XML chunk. Runs within
// one paragraph are continuations of the same text, so they join
// without a separator.
func runText(chunk string, runRegex *regexp.Regexp) string {
	var sb strings.Builder
	for _, m := range runRegex.FindAllStringSubmatch(chunk, -1) {
		sb.WriteString(unescapeXML(m[1]))
	}
	return sb.String()
}

// unescapeXML resolves the predefined XML entities and strips any
// stray markup left inside a text run.
func unescapeXML(s string) string {
	s = anyTagRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&apos;", "'")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, " ", " ")
	return s
}

// partNumber extracts the trailing part index from names like
// ppt/slides/slide12.xml. Non-conforming names sort last.
func partNumber(name string) int {
	m := sheetNumRegex.FindStringSubmatch(name)
	if len(m) < 2 {
		return 1 << 30
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 1 << 30
	}
	return n
}

// openContainer opens a zip-based document, normalizing the error.
func openContainer(path, format string) (*zip.ReadCloser, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, extractionErr(path, format, fmt.Errorf("opening container: %w", err))
	}
	return reader, nil
}
