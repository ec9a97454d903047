// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// WarnNoText is the warning recorded when a structurally valid PDF
// yields no extractable text. Scanned image-only PDFs are an accepted
// limitation, not a failure.
const WarnNoText = "no text extracted"

// extractPDF runs layout-aware extraction first and falls back to a
// basic content-stream decode when the primary extractor errors or
// comes back empty. Both coming back empty is reported as a warning,
// never as an error.
func extractPDF(path string) (*Extraction, error) {
	ex := &Extraction{}

	fragments, primaryErr := extractPDFPrimary(path)
	if primaryErr == nil && len(fragments) > 0 {
		ex.Fragments = fragments
		return ex, nil
	}

	fragments, fallbackErr := extractPDFBasic(path)
	if fallbackErr == nil && len(fragments) > 0 {
		ex.Fragments = fragments
		ex.setMeta("extraction_fallback", "pdfcpu")
		ex.addWarning("primary PDF text extraction failed; used basic extractor")
		return ex, nil
	}

	if primaryErr != nil && fallbackErr != nil {
		return nil, extractionErr(path, ".pdf", fmt.Errorf("primary: %v; fallback: %w", primaryErr, fallbackErr))
	}

	ex.addWarning(WarnNoText)
	return ex, nil
}

// extractPDFPrimary uses ledongthuc/pdf's positioned text model: rows
// sorted top to bottom, elements within a row left to right, with
// coordinate gaps deciding word breaks. The library panics on some
// malformed files, so the recover converts that into a plain error.
func extractPDFPrimary(path string) (fragments []Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			fragments = nil
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text := extractPageText(page)
		if strings.TrimSpace(text) == "" {
			continue
		}
		fragments = append(fragments, Fragment{
			Text:     text,
			Location: fmt.Sprintf("page_%d", pageNum),
		})
	}
	return fragments, nil
}

func extractPageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		plain, err := page.GetPlainText(nil)
		if err != nil {
			return ""
		}
		return plain
	}

	var lines []string
	for _, row := range rows {
		if row == nil || len(row.Content) == 0 {
			continue
		}
		if line := joinRowText(row.Content); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// joinRowText reassembles a row's text elements in left-to-right
// order, inserting a space wherever the horizontal gap between
// adjacent elements exceeds a fifth of the font size.
func joinRowText(elements []pdf.Text) string {
	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var sb strings.Builder
	for i, el := range sorted {
		sb.WriteString(el.S)
		if i == len(sorted)-1 {
			continue
		}
		fontSize := el.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		gap := sorted[i+1].X - (el.X + el.W)
		if gap > fontSize*0.2 {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

var (
	pageContentNumRegex = regexp.MustCompile(`(\d+)(?:\.\w+)?$`)

	// Text-showing operators in a decoded content stream: (...) Tj,
	// (...) ', and [...] TJ arrays.
	showTextRegex    = regexp.MustCompile(`(?s)\[((?:[^\[\]\\]|\\.)*)\]\s*TJ|\(((?:\\.|[^\\()])*)\)\s*(?:Tj|')`)
	literalStrRegex  = regexp.MustCompile(`(?s)\(((?:\\.|[^\\()])*)\)`)
	octalEscapeRegex = regexp.MustCompile(`\\([0-7]{1,3})`)
)

// extractPDFBasic extracts the decoded page content streams with
// pdfcpu and scrapes the text-showing operators out of them. Crude
// next to the positioned extractor, but it reads files the primary
// parser rejects.
func extractPDFBasic(path string) ([]Fragment, error) {
	tmpDir, err := os.MkdirTemp("", "phi-pdf-content-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(path, tmpDir, nil, conf); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return contentPageNum(entries[i].Name()) < contentPageNum(entries[j].Name())
	})

	var fragments []Fragment
	for _, entry := range entries {
		raw, err := os.ReadFile(filepath.Join(tmpDir, entry.Name()))
		if err != nil {
			continue
		}
		text := decodeContentStreamText(string(raw))
		if strings.TrimSpace(text) == "" {
			continue
		}
		fragments = append(fragments, Fragment{
			Text:     text,
			Location: fmt.Sprintf("page_%d", contentPageNum(entry.Name())),
		})
	}
	return fragments, nil
}

func contentPageNum(name string) int {
	m := pageContentNumRegex.FindStringSubmatch(strings.TrimSuffix(name, filepath.Ext(name)))
	if len(m) < 2 {
		return 1 << 30
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// decodeContentStreamText pulls the literal strings out of Tj/TJ
// operators. TJ array elements are glyph-run continuations and join
// without separators; separate operators get a space.
func decodeContentStreamText(content string) string {
	var parts []string
	for _, m := range showTextRegex.FindAllStringSubmatch(content, -1) {
		switch {
		case m[1] != "":
			var sb strings.Builder
			for _, lit := range literalStrRegex.FindAllStringSubmatch(m[1], -1) {
				sb.WriteString(decodePDFString(lit[1]))
			}
			if sb.Len() > 0 {
				parts = append(parts, sb.String())
			}
		case m[2] != "":
			parts = append(parts, decodePDFString(m[2]))
		}
	}
	return strings.Join(parts, " ")
}

// decodePDFString resolves the escape sequences of a PDF literal
// string.
func decodePDFString(s string) string {
	s = octalEscapeRegex.ReplaceAllStringFunc(s, func(esc string) string {
		n, err := strconv.ParseInt(esc[1:], 8, 32)
		if err != nil || n < 32 || n > 126 {
			return ""
		}
		return string(rune(n))
	})
	replacer := strings.NewReplacer(
		`\n`, "\n", `\r`, "\r", `\t`, "\t",
		`\b`, "", `\f`, "",
		`\(`, "(", `\)`, ")", `\\`, `\`,
	)
	return replacer.Replace(s)
}
