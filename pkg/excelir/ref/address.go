// Package ref converts between row/column coordinates and spreadsheet
// addresses and extracts sheet-qualified references from formula text.
package ref

import (
	"fmt"
	"strings"
)

// AddressError reports malformed address or range text. It is always local
// to one element and never fatal to a run.
type AddressError struct {
	Text   string
	Reason string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid address %q: %s", e.Text, e.Reason)
}

// ToAddress converts 1-based row and column numbers to an address like "A1".
func ToAddress(row, col int) (string, error) {
	if row < 1 || col < 1 {
		return "", &AddressError{
			Text:   fmt.Sprintf("row=%d col=%d", row, col),
			Reason: "row and column must be positive",
		}
	}
	return columnName(col) + fmt.Sprintf("%d", row), nil
}

// columnName converts a 1-based column number to its letter form
// (1 -> "A", 27 -> "AA").
func columnName(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// parseCell parses a single address token like "$B$10" into 1-based column
// and row numbers. Dollar anchors are stripped.
func parseCell(text string) (col, row int, err error) {
	s := strings.ReplaceAll(text, "$", "")
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		col = col*26 + int(s[i]-'A'+1)
		i++
	}
	if col == 0 {
		return 0, 0, &AddressError{Text: text, Reason: "missing column letters"}
	}
	if i == len(s) {
		return 0, 0, &AddressError{Text: text, Reason: "missing row number"}
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, &AddressError{Text: text, Reason: "malformed row number"}
		}
		row = row*10 + int(s[i]-'0')
	}
	if row == 0 {
		return 0, 0, &AddressError{Text: text, Reason: "row number must be positive"}
	}
	return col, row, nil
}

// ParseRange parses "Sheet1!A1:B2", "A1:B2" or "A1" into a sheet name
// (empty when unqualified) and 1-based bounds. Single-cell input yields
// equal min and max. Dollar anchors and sheet name quotes are stripped.
func ParseRange(text string) (sheet string, minCol, minRow, maxCol, maxRow int, err error) {
	body := text
	if i := strings.LastIndex(body, "!"); i >= 0 {
		sheet = strings.Trim(body[:i], "'")
		body = body[i+1:]
	}
	first, second, found := strings.Cut(body, ":")
	minCol, minRow, err = parseCell(first)
	if err != nil {
		return "", 0, 0, 0, 0, err
	}
	if !found {
		return sheet, minCol, minRow, minCol, minRow, nil
	}
	maxCol, maxRow, err = parseCell(second)
	if err != nil {
		return "", 0, 0, 0, 0, err
	}
	return sheet, minCol, minRow, maxCol, maxRow, nil
}

// NormalizeAddress strips anchors and sheet qualification from a single
// reference address, keeping the "A1" or "A1:B2" form.
func NormalizeAddress(text string) string {
	s := strings.ReplaceAll(text, "$", "")
	if i := strings.LastIndex(s, "!"); i >= 0 {
		s = s[i+1:]
	}
	return s
}
