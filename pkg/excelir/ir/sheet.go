package ir

// Column describes one inferred column of a sheet's data region. DataType,
// Unique and NullCount are placeholders populated by a downstream collaborator.
type Column struct {
	// Name is the header cell text, or a synthetic "Column_N" when blank.
	Name string `json:"name"`
	// Index is the 1-based column index.
	Index int `json:"index"`
	// Samples holds up to three sample values from the data rows.
	Samples []string `json:"samples,omitempty"`
	// DataType is the inferred data type (filled downstream).
	DataType string `json:"data_type,omitempty"`
	// Unique reports whether the column values are unique (filled downstream).
	Unique *bool `json:"unique,omitempty"`
	// NullCount is the number of null cells (filled downstream).
	NullCount *int `json:"null_count,omitempty"`
}

// Row is one data row: cell values positionally aligned with the sheet's
// column descriptors. A nil entry is a null cell; set entries are either
// plain strings or ISO-8601 date-time strings.
type Row struct {
	// Cells are the coerced cell values in column order.
	Cells []*string `json:"cells"`
}

// StyledRange binds an interned style to a cell or range address.
type StyledRange struct {
	// StyleID indexes into the owning sheet's Styles table.
	StyleID int `json:"style_id"`
	// Range is a cell address ("B3") or range ("A1:C10").
	Range string `json:"range"`
}

// Sheet is the per-sheet IR: structure, raw data, formulas, styles, charts
// and merged ranges, all read-only after analysis.
type Sheet struct {
	// Name is the sheet name, unique within the workbook.
	Name string `json:"name"`
	// Index is the zero-based sheet position in the workbook.
	Index int `json:"index"`
	// MaxRow is the last populated row of the source sheet.
	MaxRow int `json:"max_row"`
	// MaxColumn is the last populated column of the source sheet.
	MaxColumn int `json:"max_column"`
	// Columns are the inferred column descriptors from the header row.
	Columns []Column `json:"columns,omitempty"`
	// Rows are the data rows (source rows 2..N, fully-null rows dropped).
	Rows []Row `json:"rows,omitempty"`
	// Formulas are the formula records in row-major source order.
	Formulas []Formula `json:"formulas,omitempty"`
	// CrossRefs are the derived cross-sheet reference edges.
	CrossRefs []CrossSheetRef `json:"cross_sheet_references,omitempty"`
	// Styles is the interned table of unique canonical style records.
	Styles []Style `json:"style_table,omitempty"`
	// StyledRanges bind ranges to entries of Styles.
	StyledRanges []StyledRange `json:"styled_ranges,omitempty"`
	// Charts are the extracted chart records in source order.
	Charts []Chart `json:"charts,omitempty"`
	// Merges are merged ranges as "TopLeft:BottomRight" strings.
	Merges []string `json:"merged_cells,omitempty"`
}
