package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mkravets/excelir/pkg/excelir/ir"
	"github.com/mkravets/excelir/pkg/excelir/ref"
)

// ExtractFormulas scans a sheet for formula cells in row-major order. Each
// record carries the formula text prefixed with "=" and its references in
// source appearance order.
func ExtractFormulas(f *excelize.File, sheetName string) ([]ir.Formula, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result []ir.Formula
	for rowIdx, row := range rows {
		for colIdx := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				continue
			}
			formula, err := f.GetCellFormula(sheetName, cell)
			if err != nil || formula == "" {
				continue
			}
			if !strings.HasPrefix(formula, "=") {
				formula = "=" + formula
			}
			result = append(result, ir.Formula{
				Cell:       cell,
				Formula:    formula,
				References: ref.ParseFormulaReferences(formula, sheetName),
			})
		}
	}

	return result, nil
}

// ExtractMerges reads a sheet's merged ranges as "TopLeft:BottomRight"
// strings in source order.
func ExtractMerges(f *excelize.File, sheetName string) ([]string, error) {
	merges, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, m := range merges {
		result = append(result, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	return result, nil
}
