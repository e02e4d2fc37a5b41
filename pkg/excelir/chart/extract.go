// Package chart reads chart objects from a workbook package into canonical
// chart/series/data-source records and reassembles library charts from them.
package chart

import (
	"archive/zip"
	"encoding/xml"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mkravets/excelir/pkg/excelir/ir"
	"github.com/mkravets/excelir/pkg/excelir/ooxml"
	"github.com/mkravets/excelir/pkg/excelir/ref"
)

// anchorInfo holds a chart's placement read from a drawing part.
type anchorInfo struct {
	chartRID string
	col, row int // 0-based anchor cell
	cx, cy   float64
}

// Extract reads every chart on every sheet of the workbook package into
// canonical chart records, keyed by sheet name. Per-chart parse failures
// are logged and yield the partially-filled record built so far; only a
// package-level failure returns an error.
func Extract(xlsxPath string, log *zap.Logger) (map[string][]ir.Chart, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	result := make(map[string][]ir.Chart)
	for sheetName, anchors := range sheetAnchors(&r.Reader) {
		var charts []ir.Chart
		for _, a := range anchors {
			c, err := extractChart(&r.Reader, a)
			if err != nil {
				log.Warn("chart extraction degraded",
					zap.String("sheet", sheetName),
					zap.Error(err))
			}
			if c != nil {
				charts = append(charts, *c)
			}
		}
		if len(charts) > 0 {
			result[sheetName] = charts
		}
	}

	return result, nil
}

// sheetAnchors walks workbook.xml, the worksheet rels and the drawing parts
// to find every chart anchor per sheet.
func sheetAnchors(r *zip.Reader) map[string][]anchorInfo {
	result := make(map[string][]anchorInfo)

	sheetFiles, err := ooxml.WorksheetPaths(r)
	if err != nil {
		return result
	}

	for sheetName, sheetPath := range sheetFiles {
		sheetRelsXML, err := ooxml.ReadFile(r, ooxml.RelsPath(sheetPath))
		if err != nil || sheetRelsXML == nil {
			continue
		}
		target := drawingTarget(sheetRelsXML)
		if target == "" {
			continue
		}
		drawingPath := ooxml.ResolvePath(target, "xl/drawings")

		drawingXML, err := ooxml.ReadFile(r, drawingPath)
		if err != nil || drawingXML == nil {
			continue
		}
		anchors := parseDrawingAnchors(drawingXML)
		if len(anchors) == 0 {
			continue
		}

		relsXML, err := ooxml.ReadFile(r, ooxml.RelsPath(drawingPath))
		if err != nil || relsXML == nil {
			continue
		}
		chartPaths := chartTargets(relsXML)

		var resolved []anchorInfo
		for _, a := range anchors {
			if path, ok := chartPaths[a.chartRID]; ok {
				a.chartRID = ooxml.ResolvePath(path, "xl/charts")
				resolved = append(resolved, a)
			}
		}
		if len(resolved) > 0 {
			result[sheetName] = resolved
		}
	}

	return result
}

// drawingTarget returns the drawing target of a worksheet rels part, or "".
func drawingTarget(data []byte) string {
	for _, rel := range ooxml.Relationships(data) {
		if strings.Contains(strings.ToLower(rel.Type), "drawing") {
			return rel.Target
		}
	}
	return ""
}

// chartTargets maps relationship ids to chart part targets.
func chartTargets(data []byte) map[string]string {
	result := make(map[string]string)
	for _, rel := range ooxml.Relationships(data) {
		if strings.Contains(strings.ToLower(rel.Type), "chart") {
			result[rel.ID] = rel.Target
		}
	}
	return result
}

// parseDrawingAnchors collects the chart anchors of one drawing part: the
// 0-based top-left anchor cell, the EMU extents and the chart relationship
// id, for both one- and two-cell anchors.
func parseDrawingAnchors(data []byte) []anchorInfo {
	var result []anchorInfo
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "twoCellAnchor" && se.Name.Local != "oneCellAnchor" && se.Name.Local != "absoluteAnchor" {
			continue
		}
		a := parseAnchor(decoder)
		if a.chartRID != "" {
			result = append(result, a)
		}
	}

	return result
}

// parseAnchor consumes one anchor element.
func parseAnchor(decoder *xml.Decoder) anchorInfo {
	var a anchorInfo
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "from":
				a.col, a.row = parseMarker(decoder)
				depth--
			case "ext":
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "cx":
						a.cx, _ = strconv.ParseFloat(attr.Value, 64)
					case "cy":
						a.cy, _ = strconv.ParseFloat(attr.Value, 64)
					}
				}
			case "chart":
				for _, attr := range t.Attr {
					if attr.Name.Local == "id" {
						a.chartRID = attr.Value
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return a
}

// parseMarker consumes a from/to marker and returns its 0-based col/row.
func parseMarker(decoder *xml.Decoder) (col, row int) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "col":
				if txt, err := ooxml.ElementText(decoder); err == nil {
					col, _ = strconv.Atoi(strings.TrimSpace(txt))
				}
				depth--
			case "row":
				if txt, err := ooxml.ElementText(decoder); err == nil {
					row, _ = strconv.Atoi(strings.TrimSpace(txt))
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return col, row
}

// extractChart reads one chart part into a canonical record. The record
// built so far is returned even when parsing stops early.
func extractChart(r *zip.Reader, a anchorInfo) (*ir.Chart, error) {
	chartXML, err := ooxml.ReadFile(r, a.chartRID)
	if err != nil || chartXML == nil {
		return nil, err
	}

	c := parseChartSpace(chartXML)

	// Anchor cell converts from the drawing's 0-based marker to a 1-based
	// address. Extents stay in the source's native EMU unit.
	if addr, err := ref.ToAddress(a.row+1, a.col+1); err == nil {
		c.Anchor = addr
	}
	c.Width = a.cx
	c.Height = a.cy
	return c, nil
}

// parseChartSpace parses a chartSpace document into the canonical record,
// without anchor or extent information.
func parseChartSpace(data []byte) *ir.Chart {
	c := &ir.Chart{Type: "unknown"}
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	depth := 0
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "style":
				if depth == 2 { // chartSpace-level style id
					if v, ok := attrInt(t, "val"); ok {
						c.StyleID = &v
					}
				}
			case "chart":
				parseChartElement(decoder, c)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return c
}

func parseChartElement(decoder *xml.Decoder, c *ir.Chart) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "title":
				c.Title = parseRichTitle(decoder)
				depth--
			case "plotArea":
				parsePlotArea(decoder, c)
				depth--
			case "legend":
				c.LegendPosition = parseLegend(decoder)
				depth--
			case "plotVisOnly":
				if v, ok := attrBool(t, "val"); ok {
					c.PlotVisibleOnly = &v
				}
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseRichTitle flattens all text runs across all paragraphs of a rich
// title, concatenated with no separator and trimmed. An absent title reads
// as the empty string, never null.
func parseRichTitle(decoder *xml.Decoder) string {
	var runs strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				if txt, err := ooxml.ElementText(decoder); err == nil {
					runs.WriteString(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return strings.TrimSpace(runs.String())
}

func parseLegend(decoder *xml.Decoder) string {
	pos := ""
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "legendPos" {
				if v, ok := attrString(t, "val"); ok {
					pos = v
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	return pos
}

// groupedTypes are plot elements whose grouping child refines the type tag.
var groupedTypes = map[string]string{
	"lineChart":      "line",
	"line3DChart":    "line3D",
	"areaChart":      "area",
	"area3DChart":    "area3D",
	"barChart":       "", // refined by barDir
	"bar3DChart":     "", // refined by barDir + 3D suffix
	"pieChart":       "pie",
	"pie3DChart":     "pie3D",
	"ofPieChart":     "ofPie",
	"doughnutChart":  "doughnut",
	"scatterChart":   "scatter",
	"bubbleChart":    "bubble",
	"radarChart":     "radar",
	"surfaceChart":   "surface",
	"surface3DChart": "surface3D",
	"stockChart":     "stock",
}

func parsePlotArea(decoder *xml.Decoder, c *ir.Chart) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if base, ok := groupedTypes[t.Name.Local]; ok {
				is3D := strings.Contains(t.Name.Local, "3D")
				c.Type = parsePlotGroup(decoder, c, base, is3D)
				depth--
				continue
			}
			switch t.Name.Local {
			case "catAx":
				c.Axes = append(c.Axes, parseAxis(decoder, ir.AxisX))
				depth--
			case "valAx":
				c.Axes = append(c.Axes, parseAxis(decoder, ir.AxisY))
				depth--
			case "serAx":
				c.Axes = append(c.Axes, parseAxis(decoder, ir.AxisZ))
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parsePlotGroup consumes one chart-type group element, collecting its
// series and refining the type tag from barDir and grouping.
func parsePlotGroup(decoder *xml.Decoder, c *ir.Chart, base string, is3D bool) string {
	grouping := ""
	barDir := ""
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "barDir":
				if v, ok := attrString(t, "val"); ok {
					barDir = v
				}
			case "grouping":
				if v, ok := attrString(t, "val"); ok {
					grouping = v
				}
			case "ser":
				parseSeries(decoder, c)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	tag := base
	if tag == "" {
		tag = barDir // "col" or "bar"
		if tag == "" {
			tag = "col"
		}
		if is3D {
			tag += "3D"
		}
	}
	switch grouping {
	case "stacked":
		tag += "Stacked"
	case "percentStacked":
		tag += "PercentStacked"
	}
	return tag
}

// parseSeries consumes one series element into a Series record plus its
// decoupled value/category data sources. A series lacking a values source
// is still recorded.
func parseSeries(decoder *xml.Decoder, c *ir.Chart) {
	s := ir.Series{Index: len(c.Series), Order: len(c.Series)}
	var valFormula, catFormula string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "idx":
				if v, ok := attrInt(t, "val"); ok {
					s.Index = v
				}
			case "order":
				if v, ok := attrInt(t, "val"); ok {
					s.Order = v
				}
			case "tx":
				s.Title = parseSeriesTitle(decoder)
				depth--
			case "shape":
				if v, ok := attrString(t, "val"); ok {
					s.Shape = v
				}
			case "smooth":
				if v, ok := attrBool(t, "val"); ok {
					s.Smooth = &v
				}
			case "invertIfNegative":
				if v, ok := attrBool(t, "val"); ok {
					s.InvertIfNegative = &v
				}
			case "cat":
				catFormula = parseSourceFormula(decoder)
				depth--
			case "val":
				valFormula = parseSourceFormula(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	c.Series = append(c.Series, s)
	if valFormula != "" {
		c.DataSources = append(c.DataSources, ir.DataSource{
			SeriesIndex: s.Index, Kind: ir.SourceValues, Formula: valFormula,
		})
	}
	if catFormula != "" {
		c.DataSources = append(c.DataSources, ir.DataSource{
			SeriesIndex: s.Index, Kind: ir.SourceCategories, Formula: catFormula,
		})
	}
}

// parseSeriesTitle reads a series tx element: either a literal v or the
// cached value of a string reference.
func parseSeriesTitle(decoder *xml.Decoder) string {
	title := ""
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "v" {
				if txt, err := ooxml.ElementText(decoder); err == nil && title == "" {
					title = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return title
}

// parseSourceFormula reads the range formula of a cat or val element.
// Text references and numeric references normalize to the same shape.
func parseSourceFormula(decoder *xml.Decoder) string {
	formula := ""
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "f" {
				if txt, err := ooxml.ElementText(decoder); err == nil && formula == "" {
					formula = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return formula
}

func parseAxis(decoder *xml.Decoder, role ir.AxisRole) ir.Axis {
	ax := ir.Axis{Role: role}
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "axId":
				if v, ok := attrInt(t, "val"); ok {
					ax.ID = &v
				}
			case "axPos":
				if v, ok := attrString(t, "val"); ok {
					ax.Position = v
				}
			case "delete":
				if v, ok := attrBool(t, "val"); ok {
					ax.Delete = &v
				}
			case "title":
				ax.Title = parseRichTitle(decoder)
				depth--
			case "scaling":
				parseScaling(decoder, &ax)
				depth--
			case "numFmt":
				if v, ok := attrString(t, "formatCode"); ok {
					ax.NumberFormat = v
				}
			case "majorTickMark":
				if v, ok := attrString(t, "val"); ok {
					ax.MajorTickMark = v
				}
			case "minorTickMark":
				if v, ok := attrString(t, "val"); ok {
					ax.MinorTickMark = v
				}
			case "tickLblPos":
				if v, ok := attrString(t, "val"); ok {
					ax.TickLabelPosition = v
				}
			case "crosses":
				if v, ok := attrString(t, "val"); ok {
					ax.Crosses = v
				}
			case "crossesAt":
				if v, ok := attrFloat(t, "val"); ok {
					ax.CrossesAt = &v
				}
			case "majorUnit":
				if v, ok := attrFloat(t, "val"); ok {
					ax.MajorUnit = &v
				}
			case "minorUnit":
				if v, ok := attrFloat(t, "val"); ok {
					ax.MinorUnit = &v
				}
			case "majorGridlines":
				b := true
				ax.MajorGridlines = &b
			case "minorGridlines":
				b := true
				ax.MinorGridlines = &b
			}
		case xml.EndElement:
			depth--
		}
	}
	return ax
}

func parseScaling(decoder *xml.Decoder, ax *ir.Axis) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "orientation":
				if v, ok := attrString(t, "val"); ok {
					ax.Orientation = v
				}
			case "min":
				if v, ok := attrFloat(t, "val"); ok {
					ax.Min = &v
				}
			case "max":
				if v, ok := attrFloat(t, "val"); ok {
					ax.Max = &v
				}
			case "logBase":
				if v, ok := attrFloat(t, "val"); ok {
					ax.LogBase = &v
				}
			}
		case xml.EndElement:
			depth--
		}
	}
}

func attrString(se xml.StartElement, name string) (string, bool) {
	for _, attr := range se.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

func attrInt(se xml.StartElement, name string) (int, bool) {
	s, ok := attrString(se, name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func attrFloat(se xml.StartElement, name string) (float64, bool) {
	s, ok := attrString(se, name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func attrBool(se xml.StartElement, name string) (bool, bool) {
	s, ok := attrString(se, name)
	if !ok {
		return false, false
	}
	return s == "1" || s == "true", true
}
