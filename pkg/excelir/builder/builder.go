// Package builder reconstructs an xlsx workbook from an export handoff
// document. Each sheet runs through a fixed stage order; a failure on one
// element is logged, counted and skipped without aborting the stage, the
// sheet or the workbook.
package builder

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mkravets/excelir/pkg/excelir"
	"github.com/mkravets/excelir/pkg/excelir/chart"
	"github.com/mkravets/excelir/pkg/excelir/ir"
	"github.com/mkravets/excelir/pkg/excelir/output"
	"github.com/mkravets/excelir/pkg/excelir/ref"
	"github.com/mkravets/excelir/pkg/excelir/style"
)

// Report counts the elements skipped per category during reconstruction.
type Report struct {
	SkippedCells    int
	SkippedFormulas int
	SkippedStyles   int
	SkippedCharts   int
	SkippedSeries   int
	SkippedMerges   int
}

// Total is the number of skipped elements across all categories.
func (r *Report) Total() int {
	return r.SkippedCells + r.SkippedFormulas + r.SkippedStyles +
		r.SkippedCharts + r.SkippedSeries + r.SkippedMerges
}

func (r *Report) String() string {
	if r.Total() == 0 {
		return "no elements skipped"
	}
	return fmt.Sprintf("skipped %d cells, %d formulas, %d styles, %d charts, %d series, %d merges",
		r.SkippedCells, r.SkippedFormulas, r.SkippedStyles, r.SkippedCharts, r.SkippedSeries, r.SkippedMerges)
}

// Build reconstructs an in-memory workbook from a handoff document. The
// first sheet renames the workbook's default sheet; later sheets are newly
// created in document order.
func Build(doc *output.Document, log *zap.Logger) (*excelize.File, *Report, error) {
	if log == nil {
		log = zap.NewNop()
	}

	f := excelize.NewFile()
	report := &Report{}
	defaultSheet := f.GetSheetName(0)

	for i := range doc.Sheets {
		s := &doc.Sheets[i]
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, nil, fmt.Errorf("rename default sheet: %w", err)
			}
			defaultSheet = name
		} else if _, err := f.NewSheet(name); err != nil {
			log.Warn("sheet creation failed, skipping sheet",
				zap.String("sheet", name),
				zap.Error(err))
			continue
		}

		slog := log.With(zap.String("sheet", name))
		writeCellData(f, name, s.Data, report, slog)
		writeFormulas(f, name, s.Formulas, report, slog)
		applyStyles(f, name, s.Styles, report, slog)
		addCharts(f, name, s.Charts, defaultSheet, report, slog)
		applyMergedRanges(f, name, s.MergedCells, report, slog)
	}

	log.Info("workbook reconstructed",
		zap.Int("sheets", len(doc.Sheets)),
		zap.Int("skipped", report.Total()))
	return f, report, nil
}

// Write reconstructs a workbook and saves it to path.
func Write(doc *output.Document, path string, log *zap.Logger) (*Report, error) {
	f, report, err := Build(doc, log)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return nil, excelir.StructuralError("write output workbook", err)
	}
	return report, nil
}

// writeCellData places the data grid, converting 0-based grid offsets to
// 1-based cell addresses. Null cells are left unwritten.
func writeCellData(f *excelize.File, sheet string, data [][]*string, report *Report, log *zap.Logger) {
	for rowIdx, row := range data {
		for colIdx, v := range row {
			if v == nil {
				continue
			}
			addr, err := ref.ToAddress(rowIdx+1, colIdx+1)
			if err != nil {
				report.SkippedCells++
				log.Warn("cell address out of range, skipping", zap.Error(err))
				continue
			}
			if err := f.SetCellValue(sheet, addr, *v); err != nil {
				report.SkippedCells++
				log.Warn("cell write failed, skipping",
					zap.String("cell", addr),
					zap.Error(err))
			}
		}
	}
}

func writeFormulas(f *excelize.File, sheet string, formulas []output.Formula, report *Report, log *zap.Logger) {
	for _, record := range formulas {
		formula := record.Formula
		if !strings.HasPrefix(formula, "=") {
			formula = "=" + formula
		}
		if err := f.SetCellFormula(sheet, record.Cell, formula); err != nil {
			report.SkippedFormulas++
			log.Warn("formula write failed, skipping",
				zap.String("cell", record.Cell),
				zap.Error(err))
		}
	}
}

func applyStyles(f *excelize.File, sheet string, styles []output.StyledRange, report *Report, log *zap.Logger) {
	for _, sr := range styles {
		start, end, ok := splitRange(sr.Range)
		if !ok {
			report.SkippedStyles++
			log.Warn("malformed style range, skipping", zap.String("range", sr.Range))
			continue
		}
		styleID, err := f.NewStyle(style.Materialize(sr.Style, log))
		if err != nil {
			report.SkippedStyles++
			log.Warn("style registration failed, skipping",
				zap.String("range", sr.Range),
				zap.Error(err))
			continue
		}
		if err := f.SetCellStyle(sheet, start, end, styleID); err != nil {
			report.SkippedStyles++
			log.Warn("style application failed, skipping",
				zap.String("range", sr.Range),
				zap.Error(err))
		}
	}
}

func addCharts(f *excelize.File, sheet string, charts []output.Chart, defaultSheet string, report *Report, log *zap.Logger) {
	for _, c := range charts {
		rec := ir.Chart{
			Type:   c.Type,
			Title:  c.Title,
			Anchor: c.Position,
		}
		for i, s := range c.Series {
			rec.Series = append(rec.Series, ir.Series{Index: i, Order: i, Title: s.Name})
			if s.Values != "" {
				rec.DataSources = append(rec.DataSources, ir.DataSource{
					SeriesIndex: i, Kind: ir.SourceValues, Formula: s.Values,
				})
			} else {
				report.SkippedSeries++
			}
			if s.Categories != "" {
				rec.DataSources = append(rec.DataSources, ir.DataSource{
					SeriesIndex: i, Kind: ir.SourceCategories, Formula: s.Categories,
				})
			}
		}

		if err := chart.Materialize(f, sheet, rec, defaultSheet, log); err != nil {
			report.SkippedCharts++
			log.Warn("chart placement failed, skipping",
				zap.String("anchor", c.Position),
				zap.Error(err))
		}
	}
}

// applyMergedRanges merges each "TopLeft:BottomRight" string. A string
// without exactly one ":" is rejected for that one range.
func applyMergedRanges(f *excelize.File, sheet string, merges []string, report *Report, log *zap.Logger) {
	for _, m := range merges {
		start, end, ok := splitRange(m)
		if !ok || start == end {
			report.SkippedMerges++
			log.Warn("malformed merged range, skipping", zap.String("range", m))
			continue
		}
		if err := f.MergeCell(sheet, start, end); err != nil {
			report.SkippedMerges++
			log.Warn("merge failed, skipping",
				zap.String("range", m),
				zap.Error(err))
		}
	}
}

// splitRange splits "A1:C3" into its corner addresses; a single cell
// address yields identical corners.
func splitRange(text string) (start, end string, ok bool) {
	parts := strings.Split(text, ":")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return "", "", false
		}
		return parts[0], parts[0], true
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", "", false
		}
		return parts[0], parts[1], true
	default:
		return "", "", false
	}
}
