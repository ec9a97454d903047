// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"archive/zip"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var drawParagraphRegex = regexp.MustCompile(`(?s)<a:p>.*?</a:p>`)

// extractPptx walks every slide in presentation order and collects
// the text runs of all shapes, table cells included; they all carry
// their text in a:t runs. One fragment per slide, paragraphs
// separated by newlines.
func extractPptx(path string) (*Extraction, error) {
	reader, err := openContainer(path, ".pptx")
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var slides []*zip.File
	for _, file := range reader.File {
		if strings.HasPrefix(file.Name, "ppt/slides/slide") && strings.HasSuffix(file.Name, ".xml") {
			slides = append(slides, file)
		}
	}
	sort.Slice(slides, func(i, j int) bool {
		return partNumber(slides[i].Name) < partNumber(slides[j].Name)
	})

	ex := &Extraction{}

	for i, slide := range slides {
		raw, err := readZipPart(slide)
		if err != nil {
			return nil, extractionErr(path, ".pptx", err)
		}

		var lines []string
		for _, para := range drawParagraphRegex.FindAllString(string(raw), -1) {
			if text := runText(para, drawRunRegex); text != "" {
				lines = append(lines, text)
			}
		}
		if len(lines) == 0 {
			continue
		}
		ex.Fragments = append(ex.Fragments, Fragment{
			Text:     strings.Join(lines, "\n"),
			Location: fmt.Sprintf("slide_%d", i+1),
		})
	}

	return ex, nil
}
