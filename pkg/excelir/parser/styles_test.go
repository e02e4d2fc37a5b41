package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractStyles(t *testing.T) {
	f := excelize.NewFile()
	for _, cell := range []string{"A1", "B1", "C1"} {
		f.SetCellValue("Sheet1", cell, "x")
	}
	f.SetCellValue("Sheet1", "A2", "plain")

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle("Sheet1", "A1", "C1", bold); err != nil {
		t.Fatal(err)
	}
	f2 := saveAndReopen(t, f)

	styles, ranges, err := ExtractStyles(f2, "Sheet1", nil)
	if err != nil {
		t.Fatalf("ExtractStyles failed: %v", err)
	}

	// One unique record, three adjacent cells folded into one range.
	if len(styles) != 1 {
		t.Fatalf("style table = %+v, want 1 entry", styles)
	}
	if styles[0].Font == nil || styles[0].Font.Bold == nil || !*styles[0].Font.Bold {
		t.Errorf("interned style = %+v, want bold font", styles[0])
	}
	if len(ranges) != 1 {
		t.Fatalf("styled ranges = %+v, want 1", ranges)
	}
	if ranges[0].Range != "A1:C1" || ranges[0].StyleID != 0 {
		t.Errorf("styled range = %+v, want A1:C1 style 0", ranges[0])
	}
}

func TestExtractStylesStyledEmptyCell(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "x")

	fill, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	// D1 never gets a value; its fill must still be recorded.
	if err := f.SetCellStyle("Sheet1", "D1", "D1", fill); err != nil {
		t.Fatal(err)
	}
	f2 := saveAndReopen(t, f)

	styles, ranges, err := ExtractStyles(f2, "Sheet1", nil)
	if err != nil {
		t.Fatalf("ExtractStyles failed: %v", err)
	}
	if len(styles) != 1 || styles[0].Fill == nil {
		t.Fatalf("style table = %+v, want 1 fill entry", styles)
	}
	if len(ranges) != 1 || ranges[0].Range != "D1" {
		t.Errorf("styled ranges = %+v, want D1", ranges)
	}
}

func TestExtractStylesUnstyledSheet(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "bare")
	f2 := saveAndReopen(t, f)

	styles, ranges, err := ExtractStyles(f2, "Sheet1", nil)
	if err != nil {
		t.Fatalf("ExtractStyles failed: %v", err)
	}
	if len(styles) != 0 || len(ranges) != 0 {
		t.Errorf("unstyled sheet yielded styles=%+v ranges=%+v", styles, ranges)
	}
}
