package store

import (
	"github.com/mkravets/excelir/pkg/excelir/ir"
	"github.com/mkravets/excelir/pkg/excelir/ref"
)

// SaveWorkbook persists every sheet's sub-collections under the workbook's
// project name.
func SaveWorkbook(s Store, wb *ir.Workbook) error {
	project := wb.Meta.ProjectName
	if err := s.PutMetadata(project, wb.Meta); err != nil {
		return err
	}
	for _, sheet := range wb.Sheets {
		if err := s.PutStructure(project, sheet.Name, sheet.Columns); err != nil {
			return err
		}
		if err := s.PutRows(project, sheet.Name, sheet.Rows); err != nil {
			return err
		}
		if err := s.PutFormulas(project, sheet.Name, sheet.Formulas); err != nil {
			return err
		}
		if err := s.PutStyles(project, sheet.Name, sheet.Styles, sheet.StyledRanges); err != nil {
			return err
		}
		if err := s.PutCharts(project, sheet.Name, sheet.Charts); err != nil {
			return err
		}
		if err := s.PutMerges(project, sheet.Name, sheet.Merges); err != nil {
			return err
		}
	}
	return nil
}

// LoadWorkbook reads a project's sheets back into a workbook IR in stored
// order, re-deriving cross-sheet reference edges from the formula records.
func LoadWorkbook(s Store, project string) (*ir.Workbook, error) {
	meta, err := s.Metadata(project)
	if err != nil {
		return nil, err
	}
	names, err := s.Sheets(project)
	if err != nil {
		return nil, err
	}

	wb := &ir.Workbook{Meta: meta}
	for i, name := range names {
		sheet := ir.Sheet{Name: name, Index: i}
		if sheet.Columns, err = s.Structure(project, name); err != nil {
			return nil, err
		}
		if sheet.Rows, err = s.Rows(project, name); err != nil {
			return nil, err
		}
		if sheet.Formulas, err = s.Formulas(project, name); err != nil {
			return nil, err
		}
		sheet.CrossRefs = ref.ResolveCrossSheet(name, sheet.Formulas)
		if sheet.Styles, sheet.StyledRanges, err = s.Styles(project, name); err != nil {
			return nil, err
		}
		if sheet.Charts, err = s.Charts(project, name); err != nil {
			return nil, err
		}
		if sheet.Merges, err = s.Merges(project, name); err != nil {
			return nil, err
		}
		sheet.MaxRow = len(sheet.Rows) + 1
		sheet.MaxColumn = len(sheet.Columns)
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}
