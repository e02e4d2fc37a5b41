package chart

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mkravets/excelir/pkg/excelir/ir"
	"github.com/mkravets/excelir/pkg/excelir/ref"
)

// emuPerPixel converts drawing extents to the pixel dimensions the
// writer library expects.
const emuPerPixel = 9525

// chartTypes maps canonical type tags to writer chart types.
var chartTypes = map[string]excelize.ChartType{
	"area":                excelize.Area,
	"areaStacked":         excelize.AreaStacked,
	"areaPercentStacked":  excelize.AreaPercentStacked,
	"area3D":              excelize.Area3D,
	"area3DStacked":       excelize.Area3DStacked,
	"bar":                 excelize.Bar,
	"barStacked":          excelize.BarStacked,
	"barPercentStacked":   excelize.BarPercentStacked,
	"bar3D":               excelize.Bar3DClustered,
	"bar3DStacked":        excelize.Bar3DStacked,
	"col":                 excelize.Col,
	"colStacked":          excelize.ColStacked,
	"colPercentStacked":   excelize.ColPercentStacked,
	"col3D":               excelize.Col3DClustered,
	"col3DStacked":        excelize.Col3DStacked,
	"col3DPercentStacked": excelize.Col3DPercentStacked,
	"doughnut":            excelize.Doughnut,
	"line":                excelize.Line,
	"lineStacked":         excelize.Line,
	"line3D":              excelize.Line3D,
	"pie":                 excelize.Pie,
	"pie3D":               excelize.Pie3D,
	"ofPie":               excelize.PieOfPie,
	"radar":               excelize.Radar,
	"scatter":             excelize.Scatter,
	"surface3D":           excelize.Surface3D,
	"bubble":              excelize.Bubble,
}

// Materialize adds one canonical chart record to a workbook sheet. Unknown
// chart types degrade to a clustered column chart; series whose value range
// cannot be resolved are skipped. Sheet names inside range formulas that do
// not exist in the target workbook fall back to defaultSheet.
func Materialize(f *excelize.File, targetSheet string, c ir.Chart, defaultSheet string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	chartType, ok := chartTypes[c.Type]
	if !ok {
		log.Warn("unknown chart type, defaulting to column chart",
			zap.String("type", c.Type),
			zap.String("sheet", targetSheet))
		chartType = excelize.Col
	}

	cfg := &excelize.Chart{Type: chartType}
	if c.Title != "" {
		cfg.Title = []excelize.RichTextRun{{Text: c.Title}}
	}
	if c.LegendPosition != "" {
		cfg.Legend = excelize.ChartLegend{Position: c.LegendPosition}
	}
	if c.Width > 0 {
		cfg.Dimension.Width = uint(c.Width / emuPerPixel)
	}
	if c.Height > 0 {
		cfg.Dimension.Height = uint(c.Height / emuPerPixel)
	}

	for _, s := range c.Series {
		values := c.Source(s.Index, ir.SourceValues)
		if values == nil {
			log.Warn("series has no value range, skipping",
				zap.String("sheet", targetSheet),
				zap.Int("series", s.Index))
			continue
		}
		valRange, err := resolveRange(f, values.Formula, defaultSheet, log)
		if err != nil {
			log.Warn("series value range unusable, skipping",
				zap.String("sheet", targetSheet),
				zap.Int("series", s.Index),
				zap.Error(err))
			continue
		}

		series := excelize.ChartSeries{Values: valRange}
		if s.Title != "" {
			series.Name = s.Title
		}
		if categories := c.Source(s.Index, ir.SourceCategories); categories != nil {
			if catRange, err := resolveRange(f, categories.Formula, defaultSheet, log); err == nil {
				series.Categories = catRange
			}
		}
		if s.Smooth != nil && *s.Smooth {
			series.Line = excelize.ChartLine{Smooth: true}
		}
		cfg.Series = append(cfg.Series, series)
	}

	for _, ax := range c.Axes {
		switch ax.Role {
		case ir.AxisX:
			cfg.XAxis = materializeAxis(ax)
		case ir.AxisY:
			cfg.YAxis = materializeAxis(ax)
		}
	}

	anchor := c.Anchor
	if anchor == "" {
		anchor = "A1"
	}
	return f.AddChart(targetSheet, anchor, cfg)
}

func materializeAxis(ax ir.Axis) excelize.ChartAxis {
	out := excelize.ChartAxis{
		Maximum: ax.Max,
		Minimum: ax.Min,
	}
	if ax.Delete != nil && *ax.Delete {
		out.None = true
	}
	if ax.MajorGridlines != nil {
		out.MajorGridLines = *ax.MajorGridlines
	}
	if ax.MinorGridlines != nil {
		out.MinorGridLines = *ax.MinorGridlines
	}
	if ax.MajorUnit != nil {
		out.MajorUnit = *ax.MajorUnit
	}
	if ax.LogBase != nil {
		out.LogBase = *ax.LogBase
	}
	if ax.Orientation == "maxMin" {
		out.ReverseOrder = true
	}
	if ax.NumberFormat != "" {
		out.NumFmt = excelize.ChartNumFmt{CustomNumFmt: ax.NumberFormat}
	}
	if ax.Title != "" {
		out.Title = []excelize.RichTextRun{{Text: ax.Title}}
	}
	return out
}

// resolveRange parses a source range formula and rebuilds it against the
// target workbook. A sheet name that does not exist falls back to
// defaultSheet; a formula with no sheet prefix binds to defaultSheet too.
func resolveRange(f *excelize.File, formula, defaultSheet string, log *zap.Logger) (string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sheet, minCol, minRow, maxCol, maxRow, err := ref.ParseRange(formula)
	if err != nil {
		return "", err
	}
	if sheet == "" {
		sheet = defaultSheet
	} else if !sheetExists(f, sheet) {
		log.Warn("range refers to missing sheet, using default",
			zap.String("range", formula),
			zap.String("fallback", defaultSheet))
		sheet = defaultSheet
	}

	start, err := ref.ToAddress(minRow, minCol)
	if err != nil {
		return "", err
	}
	end, err := ref.ToAddress(maxRow, maxCol)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(sheet, " '") {
		sheet = "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	}
	if start == end {
		return fmt.Sprintf("%s!%s", sheet, start), nil
	}
	return fmt.Sprintf("%s!%s:%s", sheet, start, end), nil
}

func sheetExists(f *excelize.File, name string) bool {
	for _, s := range f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}
