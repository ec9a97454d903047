// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// extractXlsx iterates every worksheet, row, and populated cell using
// excelize's streaming row iterator. One fragment per cell keeps the
// locator precise down to the column.
func extractXlsx(path string) (*Extraction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, extractionErr(path, ".xlsx", err)
	}
	defer f.Close()

	ex := &Extraction{}

	for _, sheet := range f.GetSheetList() {
		rows, err := f.Rows(sheet)
		if err != nil {
			return nil, extractionErr(path, ".xlsx", fmt.Errorf("reading sheet %q: %w", sheet, err))
		}

		rowIdx := 0
		for rows.Next() {
			rowIdx++
			cols, err := rows.Columns()
			if err != nil {
				rows.Close()
				return nil, extractionErr(path, ".xlsx", fmt.Errorf("reading sheet %q row %d: %w", sheet, rowIdx, err))
			}
			for colIdx, cell := range cols {
				if cell == "" {
					continue
				}
				ex.Fragments = append(ex.Fragments, Fragment{
					Text:     cell,
					Location: fmt.Sprintf("sheet_%s_row_%d_col_%d", sheet, rowIdx, colIdx+1),
				})
			}
		}
		rows.Close()
	}

	return ex, nil
}
