// Package parser extracts the per-sheet collections of the workbook IR
// from an open workbook handle: column structure, raw data rows, formulas,
// styled ranges and merged ranges.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkravets/excelir/pkg/excelir/ir"
)

// dateTimeLayout is the serialization layout for coerced temporal cells.
const dateTimeLayout = "2006-01-02T15:04:05"

// CellData is one sheet's structure and raw-data extraction result.
type CellData struct {
	Columns   []ir.Column
	Rows      []ir.Row
	MaxRow    int
	MaxColumn int
}

// ExtractCellData reads a sheet's header row into column descriptors and
// its remaining rows into coerced data rows. The header is always row 1;
// data starts at row 2. A sheet with fewer than two rows yields column
// descriptors (when a header exists) and no data rows, without error.
// Rows whose cells are all null are dropped. Each column keeps up to
// maxSamples sample values from the surviving rows.
func ExtractCellData(f *excelize.File, sheetName string, maxSamples int) (*CellData, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	result := &CellData{MaxRow: len(rows)}
	for _, row := range rows {
		if len(row) > result.MaxColumn {
			result.MaxColumn = len(row)
		}
	}
	if len(rows) == 0 {
		return result, nil
	}

	header := rows[0]
	for colIdx := 0; colIdx < result.MaxColumn; colIdx++ {
		name := ""
		if colIdx < len(header) {
			name = strings.TrimSpace(header[colIdx])
		}
		if name == "" {
			name = fmt.Sprintf("Column_%d", colIdx+1)
		}
		result.Columns = append(result.Columns, ir.Column{
			Name:  name,
			Index: colIdx + 1,
		})
	}

	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		cells := make([]*string, result.MaxColumn)
		hasData := false
		for colIdx := 0; colIdx < result.MaxColumn; colIdx++ {
			raw := ""
			if colIdx < len(rows[rowIdx]) {
				raw = rows[rowIdx][colIdx]
			}
			v := coerceValue(f, sheetName, colIdx+1, rowIdx+1, raw)
			if v != nil {
				hasData = true
			}
			cells[colIdx] = v
		}
		if !hasData {
			continue
		}
		result.Rows = append(result.Rows, ir.Row{Cells: cells})

		for colIdx, v := range cells {
			if v == nil {
				continue
			}
			col := &result.Columns[colIdx]
			if len(col.Samples) < maxSamples {
				col.Samples = append(col.Samples, *v)
			}
		}
	}

	return result, nil
}

// coerceValue maps a formatted cell value onto the IR's value set: nil for
// empty or NaN cells, an ISO-8601 string for temporal cells, the formatted
// string otherwise.
func coerceValue(f *excelize.File, sheetName string, col, row int, formatted string) *string {
	if formatted == "" || formatted == "NaN" {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return &formatted
	}
	if iso, ok := dateValue(f, sheetName, cell); ok {
		return &iso
	}
	return &formatted
}

// dateValue reports whether the cell holds a date-formatted serial number
// and, when it does, returns it as an ISO-8601 string.
func dateValue(f *excelize.File, sheetName, cell string) (string, bool) {
	styleID, err := f.GetCellStyle(sheetName, cell)
	if err != nil {
		return "", false
	}
	st, err := f.GetStyle(styleID)
	if err != nil || st == nil || !isDateFormat(st) {
		return "", false
	}
	raw, err := f.GetCellValue(sheetName, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", false
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Some writers store dates as literal ISO strings.
		if t, perr := time.Parse(time.RFC3339, raw); perr == nil {
			return t.Format(dateTimeLayout), true
		}
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return t.Format(dateTimeLayout), true
}

// isDateFormat recognizes the builtin date/time number formats and custom
// formats carrying date tokens.
func isDateFormat(st *excelize.Style) bool {
	if st.NumFmt >= 14 && st.NumFmt <= 22 {
		return true
	}
	if st.NumFmt >= 45 && st.NumFmt <= 47 {
		return true
	}
	if st.CustomNumFmt == nil {
		return false
	}
	code := strings.ToLower(*st.CustomNumFmt)
	for _, token := range []string{"yy", "dd", "hh", "mm"} {
		if strings.Contains(code, token) {
			return true
		}
	}
	return false
}
