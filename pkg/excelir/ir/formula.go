package ir

// RefKind distinguishes single-cell from range references.
type RefKind string

const (
	// RefCell is a single-cell reference such as "B2".
	RefCell RefKind = "cell"
	// RefRange is a rectangular range reference such as "A1:B10".
	RefRange RefKind = "range"
)

// Reference is one sheet-qualified reference extracted from a formula.
type Reference struct {
	// Sheet is the target sheet name; defaults to the containing sheet
	// when the reference is unqualified.
	Sheet string `json:"sheet"`
	// Kind is cell or range.
	Kind RefKind `json:"kind"`
	// Address is the reference address with $ anchors stripped.
	Address string `json:"address"`
}

// Formula is one formula cell with its extracted references in appearance
// order.
type Formula struct {
	// Cell is the address of the formula cell.
	Cell string `json:"cell"`
	// Formula is the formula text, always starting with "=".
	Formula string `json:"formula"`
	// References are the extracted references in left-to-right source order.
	References []Reference `json:"references,omitempty"`
}

// CrossSheetRef is a derived dependency edge: a formula reference whose
// target sheet differs from the formula's own sheet.
type CrossSheetRef struct {
	// FromSheet is the sheet containing the formula.
	FromSheet string `json:"from_sheet"`
	// FromCell is the formula cell address.
	FromCell string `json:"from_cell"`
	// FromFormula is the full formula text.
	FromFormula string `json:"from_formula"`
	// ToSheet is the referenced sheet; never equal to FromSheet.
	ToSheet string `json:"to_sheet"`
	// Kind is cell or range.
	Kind RefKind `json:"kind"`
	// Address is the referenced address.
	Address string `json:"address"`
}
