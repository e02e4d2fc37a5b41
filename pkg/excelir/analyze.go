package excelir

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mkravets/excelir/pkg/excelir/chart"
	"github.com/mkravets/excelir/pkg/excelir/ir"
	"github.com/mkravets/excelir/pkg/excelir/parser"
	"github.com/mkravets/excelir/pkg/excelir/ref"
)

// Report counts the sub-extractions that degraded per category during an
// analysis run.
type Report struct {
	SkippedStructure int
	SkippedFormulas  int
	SkippedStyles    int
	SkippedCharts    int
	SkippedMerges    int
}

// Total is the number of degraded sub-extractions across all categories.
func (r *Report) Total() int {
	return r.SkippedStructure + r.SkippedFormulas + r.SkippedStyles +
		r.SkippedCharts + r.SkippedMerges
}

func (r *Report) String() string {
	if r.Total() == 0 {
		return "no elements skipped"
	}
	return fmt.Sprintf("skipped %d structure, %d formulas, %d styles, %d charts, %d merges",
		r.SkippedStructure, r.SkippedFormulas, r.SkippedStyles, r.SkippedCharts, r.SkippedMerges)
}

// chartResult carries the outcome of the concurrent chart extraction.
type chartResult struct {
	charts map[string][]ir.Chart
	err    error
}

// Analyze reads an xlsx workbook into the workbook IR. Sheets are analyzed
// in source order. Each per-sheet sub-extraction is independently fault
// isolated: a failure degrades to an empty result for that collection, a
// logged warning and a report count, never aborting the other extractions
// or later sheets. Only an unreadable source file fails the call.
func Analyze(path string, opts Options) (*ir.Workbook, *Report, error) {
	log := opts.logger()

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, StructuralError("open source workbook", err)
	}
	defer f.Close()

	// Charts come from the package's own zip reader and have no data
	// dependency on the excelize extractions, so they run alongside them.
	chartCh := make(chan chartResult, 1)
	if opts.ShouldIncludeCharts() {
		go func() {
			charts, err := chart.Extract(path, log)
			chartCh <- chartResult{charts: charts, err: err}
		}()
	} else {
		chartCh <- chartResult{}
	}

	wb := &ir.Workbook{
		Meta: ir.Metadata{
			ProjectName: projectName(path),
			Author:      opts.Author,
			CreatedAt:   time.Now().Format("2006-01-02T15:04:05"),
		},
	}
	report := &Report{}

	for i, sheetName := range f.GetSheetList() {
		wb.Sheets = append(wb.Sheets, analyzeSheet(f, sheetName, i, opts, report, log))
	}

	res := <-chartCh
	if res.err != nil {
		log.Warn("chart extraction failed",
			zap.String("path", path),
			zap.Error(res.err))
		report.SkippedCharts++
	}
	for sheetName, charts := range res.charts {
		if sheet := wb.Sheet(sheetName); sheet != nil {
			sheet.Charts = charts
		}
	}

	return wb, report, nil
}

// analyzeSheet runs the per-sheet sub-extractions and assembles the Sheet
// IR in fixed field order.
func analyzeSheet(f *excelize.File, sheetName string, index int, opts Options, report *Report, log *zap.Logger) ir.Sheet {
	sheet := ir.Sheet{Name: sheetName, Index: index}

	warn := func(component string, counter *int, err error) {
		*counter++
		e := &ExtractionError{SheetName: sheetName, Component: component, Err: err}
		log.Warn("sub-extraction degraded", zap.Error(e))
	}

	data, err := parser.ExtractCellData(f, sheetName, opts.SampleLimit())
	if err != nil {
		warn("structure", &report.SkippedStructure, err)
	} else {
		sheet.MaxRow = data.MaxRow
		sheet.MaxColumn = data.MaxColumn
		sheet.Columns = data.Columns
		sheet.Rows = data.Rows
	}

	formulas, err := parser.ExtractFormulas(f, sheetName)
	if err != nil {
		warn("formulas", &report.SkippedFormulas, err)
	} else {
		sheet.Formulas = formulas
		sheet.CrossRefs = ref.ResolveCrossSheet(sheetName, formulas)
	}

	if opts.ShouldIncludeStyles() {
		styles, ranges, err := parser.ExtractStyles(f, sheetName, log)
		if err != nil {
			warn("styles", &report.SkippedStyles, err)
		} else {
			sheet.Styles = styles
			sheet.StyledRanges = ranges
		}
	}

	merges, err := parser.ExtractMerges(f, sheetName)
	if err != nil {
		warn("merges", &report.SkippedMerges, err)
	} else {
		sheet.Merges = merges
	}

	return sheet
}

// projectName derives the project name from the source file's base name.
func projectName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
