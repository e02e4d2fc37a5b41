package parser

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/xuri/excelize/v2"

	"github.com/mkravets/excelir/pkg/excelir/ir"
	"github.com/mkravets/excelir/pkg/excelir/ooxml"
	"github.com/mkravets/excelir/pkg/excelir/ref"
	"github.com/mkravets/excelir/pkg/excelir/style"
)

// ExtractStyles reads the explicit styling of a sheet into an interned
// style table plus compact styled ranges. The worksheet part is scanned for
// every cell carrying a non-default style index, value-bearing or not, so
// fills on empty cells survive. Cells whose canonical record is empty are
// omitted; a per-cell read failure is logged and skips that one cell.
func ExtractStyles(f *excelize.File, sheetName string, log *zap.Logger) ([]ir.Style, []ir.StyledRange, error) {
	if log == nil {
		log = zap.NewNop()
	}
	styled, err := scanStyledCells(f.Path, sheetName)
	if err != nil {
		return nil, nil, err
	}

	interner := style.NewInterner()
	var cells []style.CellStyleRef

	for _, sc := range styled {
		st, err := f.GetStyle(sc.styleIdx)
		if err != nil || st == nil {
			log.Warn("cell style unreadable, skipping",
				zap.String("sheet", sheetName),
				zap.Int("row", sc.row),
				zap.Int("col", sc.col),
				zap.Error(err))
			continue
		}
		rec := style.Normalize(st)
		if rec.IsZero() {
			continue
		}
		cells = append(cells, style.CellStyleRef{
			Row:     sc.row,
			Col:     sc.col,
			StyleID: interner.Intern(rec),
		})
	}

	ranges := style.MergeRuns(cells, ref.ToAddress)
	return interner.Styles(), ranges, nil
}

// styledCell is one worksheet cell carrying an explicit cell xf index.
type styledCell struct {
	row, col int // 1-based
	styleIdx int
}

// scanStyledCells walks the worksheet part for cells whose style attribute
// references a non-default cell xf. Reading the part directly covers cells
// that hold a style but no value, which row-based value readers drop.
func scanStyledCells(xlsxPath, sheetName string) ([]styledCell, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	paths, err := ooxml.WorksheetPaths(&r.Reader)
	if err != nil {
		return nil, err
	}
	partPath, ok := paths[sheetName]
	if !ok {
		return nil, fmt.Errorf("sheet %q not in workbook package", sheetName)
	}
	data, err := ooxml.ReadFile(&r.Reader, partPath)
	if err != nil || data == nil {
		return nil, err
	}

	var result []styledCell
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "c" {
			continue
		}
		var addr string
		styleIdx := 0
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "r":
				addr = attr.Value
			case "s":
				styleIdx, _ = strconv.Atoi(attr.Value)
			}
		}
		if addr == "" || styleIdx == 0 {
			continue
		}
		_, col, row, _, _, err := ref.ParseRange(addr)
		if err != nil {
			continue
		}
		result = append(result, styledCell{row: row, col: col, styleIdx: styleIdx})
	}

	return result, nil
}
