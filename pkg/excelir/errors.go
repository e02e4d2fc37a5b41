// Package excelir analyzes xlsx workbooks into a normalized intermediate
// representation and reconstructs workbooks from it.
package excelir

import (
	"errors"
	"fmt"
)

// ErrStructural marks failures that abort the whole run: an unreadable
// source file, an unwritable output file or a malformed export document.
// Every other error class degrades to skip-and-log at the smallest
// enclosing unit.
var ErrStructural = errors.New("structural error")

// StructuralError wraps a fatal cause so callers can test with errors.Is.
func StructuralError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStructural, op, err)
}

// ExtractionError reports a degraded sub-extraction: one component of one
// sheet failed and yielded an empty result.
type ExtractionError struct {
	SheetName string
	Component string // "structure", "rows", "formulas", "styles", "charts", "merges"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
