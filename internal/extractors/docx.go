// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"fmt"
	"regexp"
)

var (
	tableRegex     = regexp.MustCompile(`(?s)<w:tbl[ >].*?</w:tbl>`)
	paragraphRegex = regexp.MustCompile(`(?s)<w:p[ >].*?</w:p>`)
	rowRegex       = regexp.MustCompile(`(?s)<w:tr[ >].*?</w:tr>`)
	cellRegex      = regexp.MustCompile(`(?s)<w:tc[ >].*?</w:tc>`)
)

// extractDocx walks a Word document in document order: body
// paragraphs first, then every table's rows and cells. Table content
// is lifted out of the body before the paragraph walk so cell text is
// located once, under its table coordinates.
func extractDocx(path string) (*Extraction, error) {
	reader, err := openContainer(path, ".docx")
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	part := findZipPart(reader, "word/document.xml")
	if part == nil {
		return nil, extractionErr(path, ".docx", fmt.Errorf("word/document.xml not found in archive"))
	}
	raw, err := readZipPart(part)
	if err != nil {
		return nil, extractionErr(path, ".docx", err)
	}
	doc := string(raw)

	tables := tableRegex.FindAllString(doc, -1)
	body := tableRegex.ReplaceAllString(doc, "")

	ex := &Extraction{}

	for i, para := range paragraphRegex.FindAllString(body, -1) {
		text := runText(para, wordRunRegex)
		if text == "" {
			continue
		}
		ex.Fragments = append(ex.Fragments, Fragment{
			Text:     text,
			Location: fmt.Sprintf("paragraph_%d", i+1),
		})
	}

	for t, table := range tables {
		for r, row := range rowRegex.FindAllString(table, -1) {
			for c, cell := range cellRegex.FindAllString(row, -1) {
				text := runText(cell, wordRunRegex)
				if text == "" {
					continue
				}
				ex.Fragments = append(ex.Fragments, Fragment{
					Text:     text,
					Location: fmt.Sprintf("table_%d_row_%d_cell_%d", t+1, r+1, c+1),
				})
			}
		}
	}

	return ex, nil
}
