// Package store defines the persistence contract for the workbook IR: a
// durable, lossless map from (project, sheet name) to each per-sheet
// sub-collection. The schema and engine behind the contract are owned
// externally; implementations only promise to return records unmodified.
package store

import (
	"errors"

	"github.com/mkravets/excelir/pkg/excelir/ir"
)

// ErrNotFound reports a (project, sheet) key with no stored record.
var ErrNotFound = errors.New("store: not found")

// Store persists the Sheet IR sub-collections keyed by project and sheet
// name. Cross-sheet references are derived from the formula records at
// load time and are not stored redundantly.
type Store interface {
	PutMetadata(project string, meta ir.Metadata) error
	Metadata(project string) (ir.Metadata, error)

	PutStructure(project, sheet string, cols []ir.Column) error
	Structure(project, sheet string) ([]ir.Column, error)

	PutRows(project, sheet string, rows []ir.Row) error
	Rows(project, sheet string) ([]ir.Row, error)

	PutFormulas(project, sheet string, formulas []ir.Formula) error
	Formulas(project, sheet string) ([]ir.Formula, error)

	PutStyles(project, sheet string, table []ir.Style, ranges []ir.StyledRange) error
	Styles(project, sheet string) ([]ir.Style, []ir.StyledRange, error)

	PutCharts(project, sheet string, charts []ir.Chart) error
	Charts(project, sheet string) ([]ir.Chart, error)

	PutMerges(project, sheet string, merges []string) error
	Merges(project, sheet string) ([]string, error)

	// Sheets lists the stored sheet names of a project in insertion order.
	Sheets(project string) ([]string, error)
}
