package output

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mkravets/excelir/pkg/excelir"
	"github.com/mkravets/excelir/pkg/excelir/ir"
)

func sampleWorkbook() *ir.Workbook {
	alpha, ten := "alpha", "10"
	bold := true
	return &ir.Workbook{
		Meta: ir.Metadata{
			ProjectName: "report",
			Author:      "analyst",
			CreatedAt:   "2024-03-15T09:30:00",
		},
		Sheets: []ir.Sheet{
			{
				Name:      "Data",
				Index:     0,
				MaxRow:    2,
				MaxColumn: 2,
				Columns: []ir.Column{
					{Name: "Name", Index: 1},
					{Name: "Amount", Index: 2},
				},
				Rows: []ir.Row{
					{Cells: []*string{&alpha, &ten}},
					{Cells: []*string{&alpha, nil}},
				},
				Formulas: []ir.Formula{
					{Cell: "C2", Formula: "=Summary!B1+B2", References: []ir.Reference{
						{Sheet: "Summary", Kind: ir.RefCell, Address: "B1"},
						{Sheet: "Data", Kind: ir.RefCell, Address: "B2"},
					}},
				},
				Styles: []ir.Style{
					{Font: &ir.Font{Bold: &bold}, NumberFormat: "0.00"},
				},
				StyledRanges: []ir.StyledRange{
					{StyleID: 0, Range: "A1:B1"},
				},
				Charts: []ir.Chart{
					{
						Type:   "colStacked",
						Title:  "Totals",
						Anchor: "E2",
						Series: []ir.Series{{Index: 0, Order: 0, Title: "North"}},
						DataSources: []ir.DataSource{
							{SeriesIndex: 0, Kind: ir.SourceValues, Formula: "Data!$B$2:$B$3"},
							{SeriesIndex: 0, Kind: ir.SourceCategories, Formula: "Data!$A$2:$A$3"},
						},
					},
				},
				Merges: []string{"A1:B1"},
			},
			{Name: "Summary", Index: 1},
		},
	}
}

func TestFromWorkbookShape(t *testing.T) {
	doc := FromWorkbook(sampleWorkbook())

	if doc.Metadata.ProjectName != "report" {
		t.Errorf("project_name = %q", doc.Metadata.ProjectName)
	}
	if len(doc.Sheets) != 2 {
		t.Fatalf("sheets = %d, want 2", len(doc.Sheets))
	}

	s := doc.Sheets[0]
	// Header row plus two data rows.
	if len(s.Data) != 3 {
		t.Fatalf("data rows = %d, want 3", len(s.Data))
	}
	if s.Data[0][0] == nil || *s.Data[0][0] != "Name" {
		t.Errorf("header cell = %v, want Name", s.Data[0][0])
	}
	if s.Data[2][1] != nil {
		t.Errorf("null cell survived as %v", *s.Data[2][1])
	}

	if len(s.Formulas) != 1 || s.Formulas[0].Cell != "C2" {
		t.Errorf("formulas = %+v", s.Formulas)
	}
	if len(s.Styles) != 1 || s.Styles[0].Range != "A1:B1" {
		t.Errorf("styles = %+v", s.Styles)
	}
	if s.Styles[0].Style.Font == nil || s.Styles[0].Style.Font.Bold == nil {
		t.Errorf("style record lost bold: %+v", s.Styles[0].Style)
	}
	if s.Styles[0].Style.NumberFormat != "0.00" {
		t.Errorf("style record lost number format: %+v", s.Styles[0].Style)
	}

	if len(s.Charts) != 1 {
		t.Fatalf("charts = %+v", s.Charts)
	}
	c := s.Charts[0]
	if c.Position != "E2" || c.Type != "colStacked" || c.Title != "Totals" {
		t.Errorf("chart = %+v", c)
	}
	if len(c.Series) != 1 {
		t.Fatalf("series = %+v", c.Series)
	}
	if c.Series[0].Values != "Data!$B$2:$B$3" || c.Series[0].Categories != "Data!$A$2:$A$3" {
		t.Errorf("series join = %+v", c.Series[0])
	}
	if c.Series[0].Name != "North" {
		t.Errorf("series name = %q", c.Series[0].Name)
	}

	if len(s.MergedCells) != 1 || s.MergedCells[0] != "A1:B1" {
		t.Errorf("merged_cells = %v", s.MergedCells)
	}
}

func TestDocumentFieldNames(t *testing.T) {
	doc := FromWorkbook(sampleWorkbook())
	data, err := Encode(doc, false)
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{
		`"metadata"`, `"project_name"`, `"author"`, `"created_at"`,
		`"sheets"`, `"name"`, `"data"`, `"formulas"`, `"cell"`, `"formula"`,
		`"styles"`, `"range"`, `"style"`, `"font"`, `"number_format"`,
		`"charts"`, `"type"`, `"position"`, `"title"`, `"series"`,
		`"categories"`, `"values"`, `"merged_cells"`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("encoded document missing %s", key)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	original := sampleWorkbook()
	data, err := Encode(FromWorkbook(original), true)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	wb := ToWorkbook(doc)

	if wb.Meta != original.Meta {
		t.Errorf("metadata = %+v, want %+v", wb.Meta, original.Meta)
	}
	if len(wb.Sheets) != 2 {
		t.Fatalf("sheets = %d", len(wb.Sheets))
	}

	sheet := wb.Sheets[0]
	if len(sheet.Columns) != 2 || sheet.Columns[0].Name != "Name" {
		t.Errorf("columns = %+v", sheet.Columns)
	}
	if len(sheet.Rows) != 2 {
		t.Errorf("rows = %+v", sheet.Rows)
	}

	// References are recomputed from the formula text.
	if len(sheet.Formulas) != 1 {
		t.Fatalf("formulas = %+v", sheet.Formulas)
	}
	gotRefs, _ := json.Marshal(sheet.Formulas[0].References)
	wantRefs, _ := json.Marshal(original.Sheets[0].Formulas[0].References)
	if string(gotRefs) != string(wantRefs) {
		t.Errorf("references = %s, want %s", gotRefs, wantRefs)
	}
	if len(sheet.CrossRefs) != 1 || sheet.CrossRefs[0].ToSheet != "Summary" {
		t.Errorf("cross refs = %+v", sheet.CrossRefs)
	}

	// The style table is re-interned from the per-range records.
	if len(sheet.Styles) != 1 || len(sheet.StyledRanges) != 1 {
		t.Fatalf("styles = %+v ranges = %+v", sheet.Styles, sheet.StyledRanges)
	}
	if sheet.StyledRanges[0].Range != "A1:B1" || sheet.StyledRanges[0].StyleID != 0 {
		t.Errorf("styled range = %+v", sheet.StyledRanges[0])
	}

	if len(sheet.Charts) != 1 {
		t.Fatalf("charts = %+v", sheet.Charts)
	}
	c := sheet.Charts[0]
	if values := c.Source(0, ir.SourceValues); values == nil || values.Formula != "Data!$B$2:$B$3" {
		t.Errorf("values source = %+v", values)
	}
	if categories := c.Source(0, ir.SourceCategories); categories == nil || categories.Formula != "Data!$A$2:$A$3" {
		t.Errorf("categories source = %+v", categories)
	}

	if len(sheet.Merges) != 1 || sheet.Merges[0] != "A1:B1" {
		t.Errorf("merges = %v", sheet.Merges)
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	if err == nil {
		t.Fatal("Decode should reject invalid JSON")
	}
	if !errors.Is(err, excelir.ErrStructural) {
		t.Errorf("error = %v, want ErrStructural", err)
	}

	_, err = Decode([]byte(`{"metadata":{}}`))
	if err == nil {
		t.Fatal("Decode should reject a document without sheets")
	}
	if !errors.Is(err, excelir.ErrStructural) {
		t.Errorf("no-sheets error = %v, want ErrStructural", err)
	}
}
