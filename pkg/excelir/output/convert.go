package output

import (
	"github.com/mkravets/excelir/pkg/excelir/ir"
	"github.com/mkravets/excelir/pkg/excelir/ref"
	"github.com/mkravets/excelir/pkg/excelir/style"
)

// FromWorkbook flattens the workbook IR into the handoff document: the
// header row and data rows become one data grid, interned styles are
// resolved back into per-range records, and each chart series is joined
// with its value/category data sources.
func FromWorkbook(wb *ir.Workbook) *Document {
	doc := &Document{Metadata: wb.Meta}

	for _, sheet := range wb.Sheets {
		out := Sheet{
			Name:        sheet.Name,
			Data:        flattenData(&sheet),
			MergedCells: sheet.Merges,
		}

		for _, f := range sheet.Formulas {
			out.Formulas = append(out.Formulas, Formula{Cell: f.Cell, Formula: f.Formula})
		}

		for _, sr := range sheet.StyledRanges {
			if sr.StyleID < 0 || sr.StyleID >= len(sheet.Styles) {
				continue
			}
			out.Styles = append(out.Styles, StyledRange{
				Range: sr.Range,
				Style: sheet.Styles[sr.StyleID],
			})
		}

		for i := range sheet.Charts {
			out.Charts = append(out.Charts, flattenChart(&sheet.Charts[i]))
		}

		doc.Sheets = append(doc.Sheets, out)
	}

	return doc
}

func flattenData(sheet *ir.Sheet) [][]*string {
	if len(sheet.Columns) == 0 {
		return nil
	}

	header := make([]*string, len(sheet.Columns))
	for i := range sheet.Columns {
		name := sheet.Columns[i].Name
		header[i] = &name
	}

	data := [][]*string{header}
	for _, row := range sheet.Rows {
		data = append(data, row.Cells)
	}
	return data
}

func flattenChart(c *ir.Chart) Chart {
	out := Chart{
		Type:     c.Type,
		Position: c.Anchor,
		Title:    c.Title,
	}
	for _, s := range c.Series {
		series := Series{Name: s.Title}
		if ds := c.Source(s.Index, ir.SourceValues); ds != nil {
			series.Values = ds.Formula
		}
		if ds := c.Source(s.Index, ir.SourceCategories); ds != nil {
			series.Categories = ds.Formula
		}
		out.Series = append(out.Series, series)
	}
	return out
}

// ToWorkbook reconstructs a workbook IR from a handoff document. Formula
// references and cross-sheet edges are recomputed, per-range styles are
// re-interned into the sheet's style table, and each chart series gets
// back its decoupled data sources.
func ToWorkbook(doc *Document) *ir.Workbook {
	wb := &ir.Workbook{Meta: doc.Metadata}

	for i, s := range doc.Sheets {
		sheet := ir.Sheet{
			Name:   s.Name,
			Index:  i,
			Merges: s.MergedCells,
			MaxRow: len(s.Data),
		}

		for _, row := range s.Data {
			if len(row) > sheet.MaxColumn {
				sheet.MaxColumn = len(row)
			}
		}
		if len(s.Data) > 0 {
			for j, name := range s.Data[0] {
				col := ir.Column{Index: j + 1}
				if name != nil {
					col.Name = *name
				}
				sheet.Columns = append(sheet.Columns, col)
			}
			for _, row := range s.Data[1:] {
				sheet.Rows = append(sheet.Rows, ir.Row{Cells: row})
			}
		}

		for _, f := range s.Formulas {
			sheet.Formulas = append(sheet.Formulas, ir.Formula{
				Cell:       f.Cell,
				Formula:    f.Formula,
				References: ref.ParseFormulaReferences(f.Formula, s.Name),
			})
		}
		sheet.CrossRefs = ref.ResolveCrossSheet(s.Name, sheet.Formulas)

		interner := style.NewInterner()
		for _, sr := range s.Styles {
			sheet.StyledRanges = append(sheet.StyledRanges, ir.StyledRange{
				StyleID: interner.Intern(sr.Style),
				Range:   sr.Range,
			})
		}
		sheet.Styles = interner.Styles()

		for _, c := range s.Charts {
			sheet.Charts = append(sheet.Charts, rebuildChart(c))
		}

		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb
}

func rebuildChart(c Chart) ir.Chart {
	out := ir.Chart{
		Type:   c.Type,
		Title:  c.Title,
		Anchor: c.Position,
	}
	for i, s := range c.Series {
		out.Series = append(out.Series, ir.Series{Index: i, Order: i, Title: s.Name})
		if s.Values != "" {
			out.DataSources = append(out.DataSources, ir.DataSource{
				SeriesIndex: i, Kind: ir.SourceValues, Formula: s.Values,
			})
		}
		if s.Categories != "" {
			out.DataSources = append(out.DataSources, ir.DataSource{
				SeriesIndex: i, Kind: ir.SourceCategories, Formula: s.Categories,
			})
		}
	}
	return out
}
