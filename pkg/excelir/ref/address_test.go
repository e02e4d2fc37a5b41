package ref

import (
	"errors"
	"testing"
)

func TestToAddress(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{1, 1, "A1"},
		{10, 2, "B10"},
		{1, 26, "Z1"},
		{5, 27, "AA5"},
		{3, 52, "AZ3"},
		{7, 703, "AAA7"},
	}

	for _, tt := range tests {
		got, err := ToAddress(tt.row, tt.col)
		if err != nil {
			t.Fatalf("ToAddress(%d, %d) returned error: %v", tt.row, tt.col, err)
		}
		if got != tt.want {
			t.Errorf("ToAddress(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestToAddressRejectsNonPositive(t *testing.T) {
	for _, tt := range []struct{ row, col int }{{0, 1}, {1, 0}, {-3, 2}, {2, -1}} {
		_, err := ToAddress(tt.row, tt.col)
		var addrErr *AddressError
		if !errors.As(err, &addrErr) {
			t.Errorf("ToAddress(%d, %d): expected AddressError, got %v", tt.row, tt.col, err)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		text                           string
		sheet                          string
		minCol, minRow, maxCol, maxRow int
	}{
		{"Sheet1!$A$1:$B$10", "Sheet1", 1, 1, 2, 10},
		{"A1:B2", "", 1, 1, 2, 2},
		{"A1", "", 1, 1, 1, 1},
		{"'My Sheet'!C3:D4", "My Sheet", 3, 3, 4, 4},
		{"Data!AA10", "Data", 27, 10, 27, 10},
	}

	for _, tt := range tests {
		sheet, minCol, minRow, maxCol, maxRow, err := ParseRange(tt.text)
		if err != nil {
			t.Fatalf("ParseRange(%q) returned error: %v", tt.text, err)
		}
		if sheet != tt.sheet || minCol != tt.minCol || minRow != tt.minRow ||
			maxCol != tt.maxCol || maxRow != tt.maxRow {
			t.Errorf("ParseRange(%q) = (%q, %d, %d, %d, %d), want (%q, %d, %d, %d, %d)",
				tt.text, sheet, minCol, minRow, maxCol, maxRow,
				tt.sheet, tt.minCol, tt.minRow, tt.maxCol, tt.maxRow)
		}
	}
}

func TestParseRangeMalformed(t *testing.T) {
	for _, text := range []string{"", "123", "A", "A0", "1A", "Sheet1!", "A1:XYZ"} {
		_, _, _, _, _, err := ParseRange(text)
		var addrErr *AddressError
		if !errors.As(err, &addrErr) {
			t.Errorf("ParseRange(%q): expected AddressError, got %v", text, err)
		}
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct{ in, want string }{
		{"$A$1", "A1"},
		{"Sheet1!$B$2:$D$2", "B2:D2"},
		{"'My Sheet'!C3", "C3"},
		{"A1:B2", "A1:B2"},
	}
	for _, tt := range tests {
		if got := NormalizeAddress(tt.in); got != tt.want {
			t.Errorf("NormalizeAddress(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
