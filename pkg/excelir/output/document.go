// Package output implements the export handoff document: the structured
// JSON contract between the analysis/storage side and the reconstruction
// side. The document is the sole channel between the two; its field names
// and shapes are fixed.
package output

import (
	"github.com/mkravets/excelir/pkg/excelir/ir"
)

// Document is the top-level handoff document.
type Document struct {
	Metadata ir.Metadata `json:"metadata"`
	Sheets   []Sheet     `json:"sheets"`
}

// Sheet is one sheet of the handoff document. Data holds the header row
// followed by the data rows; a nil cell is a null.
type Sheet struct {
	Name        string        `json:"name"`
	Data        [][]*string   `json:"data"`
	Formulas    []Formula     `json:"formulas"`
	Styles      []StyledRange `json:"styles"`
	Charts      []Chart       `json:"charts"`
	MergedCells []string      `json:"merged_cells"`
}

// Formula is one formula cell.
type Formula struct {
	Cell    string `json:"cell"`
	Formula string `json:"formula"`
}

// StyledRange binds a resolved canonical style record to a cell or range.
// The interned style table does not cross the handoff boundary.
type StyledRange struct {
	Range string   `json:"range"`
	Style ir.Style `json:"style"`
}

// Chart is one chart with its series flattened for reconstruction.
type Chart struct {
	Type     string   `json:"type"`
	Position string   `json:"position"`
	Title    string   `json:"title"`
	Series   []Series `json:"series"`
}

// Series carries a series' name and its resolved value/category range
// formulas; an empty string means the source range is absent.
type Series struct {
	Name       string `json:"name"`
	Categories string `json:"categories"`
	Values     string `json:"values"`
}
