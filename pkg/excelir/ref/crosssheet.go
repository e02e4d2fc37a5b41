package ref

import "github.com/mkravets/excelir/pkg/excelir/ir"

// ResolveCrossSheet classifies extracted references against the containing
// sheet and emits one dependency edge per (formula, reference) pair whose
// target sheet differs. Repeated references are not deduplicated.
func ResolveCrossSheet(sheetName string, formulas []ir.Formula) []ir.CrossSheetRef {
	var out []ir.CrossSheetRef
	for _, f := range formulas {
		for _, r := range f.References {
			if r.Sheet == sheetName {
				continue
			}
			out = append(out, ir.CrossSheetRef{
				FromSheet:   sheetName,
				FromCell:    f.Cell,
				FromFormula: f.Formula,
				ToSheet:     r.Sheet,
				Kind:        r.Kind,
				Address:     r.Address,
			})
		}
	}
	return out
}
