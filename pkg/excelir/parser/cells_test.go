package parser

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// saveAndReopen writes the workbook to a temp file and reopens it, so
// extraction sees the same handle state as a real source file.
func saveAndReopen(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f.Close()

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	t.Cleanup(func() { f2.Close() })
	return f2
}

func TestExtractCellData(t *testing.T) {
	f := excelize.NewFile()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Name")
	f.SetCellValue(sheetName, "C1", "Amount")
	f.SetCellValue(sheetName, "A2", "alpha")
	f.SetCellValue(sheetName, "B2", 10)
	f.SetCellValue(sheetName, "C2", 1.5)
	f.SetCellValue(sheetName, "A3", "beta")
	f.SetCellValue(sheetName, "A4", "gamma")

	f2 := saveAndReopen(t, f)

	data, err := ExtractCellData(f2, sheetName, 3)
	if err != nil {
		t.Fatalf("ExtractCellData failed: %v", err)
	}

	if data.MaxRow != 4 {
		t.Errorf("MaxRow = %d, want 4", data.MaxRow)
	}
	if data.MaxColumn != 3 {
		t.Errorf("MaxColumn = %d, want 3", data.MaxColumn)
	}

	if len(data.Columns) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(data.Columns))
	}
	if data.Columns[0].Name != "Name" || data.Columns[0].Index != 1 {
		t.Errorf("column 0 = %+v", data.Columns[0])
	}
	// Blank header cells get the synthetic placeholder.
	if data.Columns[1].Name != "Column_2" {
		t.Errorf("column 1 name = %q, want Column_2", data.Columns[1].Name)
	}
	if data.Columns[2].Name != "Amount" {
		t.Errorf("column 2 name = %q, want Amount", data.Columns[2].Name)
	}

	if len(data.Rows) != 3 {
		t.Fatalf("Expected 3 data rows, got %d", len(data.Rows))
	}
	row := data.Rows[0]
	if len(row.Cells) != 3 {
		t.Fatalf("Expected 3 cells per row, got %d", len(row.Cells))
	}
	if row.Cells[0] == nil || *row.Cells[0] != "alpha" {
		t.Errorf("row 0 col 0 = %v, want alpha", row.Cells[0])
	}
	if row.Cells[1] == nil || *row.Cells[1] != "10" {
		t.Errorf("row 0 col 1 = %v, want 10", row.Cells[1])
	}
	// Sparse rows carry nulls for absent cells.
	if data.Rows[1].Cells[1] != nil {
		t.Errorf("row 1 col 1 = %v, want null", data.Rows[1].Cells[1])
	}

	if got := data.Columns[0].Samples; len(got) != 3 {
		t.Errorf("column 0 samples = %v, want 3 values", got)
	}
	if got := data.Columns[1].Samples; len(got) != 1 || got[0] != "10" {
		t.Errorf("column 1 samples = %v, want [10]", got)
	}
}

func TestExtractCellDataHeaderOnly(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "OnlyHeader")
	f2 := saveAndReopen(t, f)

	data, err := ExtractCellData(f2, "Sheet1", 3)
	if err != nil {
		t.Fatalf("ExtractCellData failed: %v", err)
	}
	if len(data.Columns) != 1 {
		t.Errorf("Expected 1 column, got %d", len(data.Columns))
	}
	if len(data.Rows) != 0 {
		t.Errorf("Expected no data rows, got %d", len(data.Rows))
	}
}

func TestExtractCellDataEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	f2 := saveAndReopen(t, f)

	data, err := ExtractCellData(f2, "Sheet1", 3)
	if err != nil {
		t.Fatalf("ExtractCellData failed: %v", err)
	}
	if len(data.Columns) != 0 || len(data.Rows) != 0 {
		t.Errorf("empty sheet should yield no columns or rows, got %+v", data)
	}
}

func TestExtractCellDataSampleLimit(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "H")
	for i := 0; i < 5; i++ {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetCellValue("Sheet1", cell, i)
	}
	f2 := saveAndReopen(t, f)

	data, err := ExtractCellData(f2, "Sheet1", 2)
	if err != nil {
		t.Fatalf("ExtractCellData failed: %v", err)
	}
	if got := data.Columns[0].Samples; len(got) != 2 {
		t.Errorf("samples = %v, want 2 values", got)
	}
}

func TestExtractCellDataDateCoercion(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "When")
	// Serial for 2024-03-15 with a builtin date format.
	f.SetCellValue("Sheet1", "A2", 45366.0)
	styleID, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle("Sheet1", "A2", "A2", styleID); err != nil {
		t.Fatal(err)
	}
	f2 := saveAndReopen(t, f)

	data, err := ExtractCellData(f2, "Sheet1", 3)
	if err != nil {
		t.Fatalf("ExtractCellData failed: %v", err)
	}
	if len(data.Rows) != 1 || data.Rows[0].Cells[0] == nil {
		t.Fatalf("rows = %+v", data.Rows)
	}
	if got := *data.Rows[0].Cells[0]; got != "2024-03-15T00:00:00" {
		t.Errorf("date cell = %q, want 2024-03-15T00:00:00", got)
	}
}

func TestIsDateFormat(t *testing.T) {
	custom := "yyyy-mm-dd"
	notDate := "#,##0.00"
	tests := []struct {
		name string
		st   excelize.Style
		want bool
	}{
		{"builtin date", excelize.Style{NumFmt: 14}, true},
		{"builtin time", excelize.Style{NumFmt: 21}, true},
		{"general", excelize.Style{NumFmt: 0}, false},
		{"currency", excelize.Style{NumFmt: 4}, false},
		{"custom date", excelize.Style{CustomNumFmt: &custom}, true},
		{"custom numeric", excelize.Style{CustomNumFmt: &notDate}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDateFormat(&tt.st); got != tt.want {
				t.Errorf("isDateFormat(%+v) = %v, want %v", tt.st, got, tt.want)
			}
		})
	}
}
