package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mkravets/excelir/pkg/excelir"
)

// Encode serializes the document, optionally pretty-printed.
func Encode(doc *Document, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// Decode parses a handoff document. A malformed document is a fatal class
// and wraps the structural sentinel; a document without a sheets array is
// rejected the same way.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, excelir.StructuralError("decode export document", err)
	}
	if doc.Sheets == nil {
		return nil, fmt.Errorf("%w: export document has no sheets array", excelir.ErrStructural)
	}
	return &doc, nil
}

// ReadFile loads and decodes a handoff document from disk.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, excelir.StructuralError("read export document", err)
	}
	return Decode(data)
}

// WriteFile encodes and writes a handoff document to disk.
func WriteFile(doc *Document, path string, pretty bool) error {
	data, err := Encode(doc, pretty)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
