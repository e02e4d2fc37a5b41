package chart

import (
	"testing"

	"github.com/mkravets/excelir/pkg/excelir/ir"
)

const barChartSpace = `<?xml version="1.0"?>
<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <c:chart>
    <c:title>
      <c:tx><c:rich>
        <a:p><a:r><a:t>Quarterly </a:t></a:r><a:r><a:t>Sales</a:t></a:r></a:p>
      </c:rich></c:tx>
    </c:title>
    <c:plotArea>
      <c:barChart>
        <c:barDir val="col"/>
        <c:grouping val="stacked"/>
        <c:ser>
          <c:idx val="0"/>
          <c:order val="0"/>
          <c:tx><c:strRef><c:f>Sheet1!$A$1</c:f><c:strCache><c:pt idx="0"><c:v>North</c:v></c:pt></c:strCache></c:strRef></c:tx>
          <c:invertIfNegative val="0"/>
          <c:cat><c:strRef><c:f>Sheet1!$B$1:$D$1</c:f></c:strRef></c:cat>
          <c:val><c:numRef><c:f>Sheet1!$B$2:$D$2</c:f></c:numRef></c:val>
        </c:ser>
        <c:ser>
          <c:idx val="1"/>
          <c:order val="1"/>
          <c:val><c:numRef><c:f>Sheet1!$B$3:$D$3</c:f></c:numRef></c:val>
        </c:ser>
      </c:barChart>
      <c:catAx>
        <c:axId val="111"/>
        <c:scaling><c:orientation val="minMax"/></c:scaling>
        <c:axPos val="b"/>
        <c:delete val="0"/>
      </c:catAx>
      <c:valAx>
        <c:axId val="222"/>
        <c:scaling><c:orientation val="maxMin"/><c:max val="100"/><c:min val="0"/></c:scaling>
        <c:axPos val="l"/>
        <c:majorGridlines/>
        <c:numFmt formatCode="0.00" sourceLinked="0"/>
        <c:majorUnit val="25"/>
      </c:valAx>
    </c:plotArea>
    <c:legend><c:legendPos val="r"/></c:legend>
    <c:plotVisOnly val="1"/>
  </c:chart>
</c:chartSpace>`

func TestParseChartSpaceBarStacked(t *testing.T) {
	c := parseChartSpace([]byte(barChartSpace))

	if c.Type != "colStacked" {
		t.Errorf("Type = %q, want colStacked", c.Type)
	}
	if c.Title != "Quarterly Sales" {
		t.Errorf("Title = %q, want Quarterly Sales", c.Title)
	}
	if c.LegendPosition != "r" {
		t.Errorf("LegendPosition = %q, want r", c.LegendPosition)
	}
	if c.PlotVisibleOnly == nil || !*c.PlotVisibleOnly {
		t.Error("PlotVisibleOnly should be set true")
	}

	if len(c.Series) != 2 {
		t.Fatalf("len(Series) = %d, want 2", len(c.Series))
	}
	s0 := c.Series[0]
	if s0.Index != 0 || s0.Order != 0 {
		t.Errorf("series 0 = idx %d order %d, want 0/0", s0.Index, s0.Order)
	}
	if c.Series[1].Index != 1 {
		t.Errorf("series 1 idx = %d, want 1", c.Series[1].Index)
	}
	if s0.InvertIfNegative == nil || *s0.InvertIfNegative {
		t.Error("series 0 invertIfNegative should be set false")
	}

	values := c.Source(0, ir.SourceValues)
	if values == nil || values.Formula != "Sheet1!$B$2:$D$2" {
		t.Errorf("values source = %+v, want Sheet1!$B$2:$D$2", values)
	}
	categories := c.Source(0, ir.SourceCategories)
	if categories == nil || categories.Formula != "Sheet1!$B$1:$D$1" {
		t.Errorf("categories source = %+v, want Sheet1!$B$1:$D$1", categories)
	}
	if got := c.Source(1, ir.SourceCategories); got != nil {
		t.Errorf("series 1 should have no categories source, got %+v", got)
	}

	if len(c.Axes) != 2 {
		t.Fatalf("len(Axes) = %d, want 2", len(c.Axes))
	}
	x, y := c.Axes[0], c.Axes[1]
	if x.Role != ir.AxisX || x.Position != "b" {
		t.Errorf("x axis = %+v", x)
	}
	if x.Delete == nil || *x.Delete {
		t.Error("x axis delete should be set false")
	}
	if y.Role != ir.AxisY {
		t.Errorf("y axis role = %q, want y", y.Role)
	}
	if y.Orientation != "maxMin" {
		t.Errorf("y orientation = %q, want maxMin", y.Orientation)
	}
	if y.Max == nil || *y.Max != 100 || y.Min == nil || *y.Min != 0 {
		t.Errorf("y bounds = %v..%v, want 0..100", y.Min, y.Max)
	}
	if y.MajorGridlines == nil || !*y.MajorGridlines {
		t.Error("y axis should record major gridlines")
	}
	if y.NumberFormat != "0.00" {
		t.Errorf("y number format = %q, want 0.00", y.NumberFormat)
	}
	if y.MajorUnit == nil || *y.MajorUnit != 25 {
		t.Errorf("y major unit = %v, want 25", y.MajorUnit)
	}
}

func TestParseChartSpaceSeriesTitle(t *testing.T) {
	c := parseChartSpace([]byte(barChartSpace))
	if c.Series[0].Title != "North" {
		t.Errorf("series title = %q, want North (cached strRef value)", c.Series[0].Title)
	}
}

func TestParseChartSpaceLine(t *testing.T) {
	data := `<?xml version="1.0"?>
<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart">
  <c:style val="7"/>
  <c:chart>
    <c:plotArea>
      <c:lineChart>
        <c:grouping val="standard"/>
        <c:ser>
          <c:idx val="0"/><c:order val="0"/>
          <c:smooth val="1"/>
          <c:val><c:numRef><c:f>Data!$A$2:$A$9</c:f></c:numRef></c:val>
        </c:ser>
      </c:lineChart>
    </c:plotArea>
  </c:chart>
</c:chartSpace>`

	c := parseChartSpace([]byte(data))
	if c.Type != "line" {
		t.Errorf("Type = %q, want line", c.Type)
	}
	if c.Title != "" {
		t.Errorf("Title = %q, want empty for absent title", c.Title)
	}
	if c.StyleID == nil || *c.StyleID != 7 {
		t.Errorf("StyleID = %v, want 7", c.StyleID)
	}
	if c.Series[0].Smooth == nil || !*c.Series[0].Smooth {
		t.Error("series smooth should be set true")
	}
}

func TestParseChartSpaceUnknownType(t *testing.T) {
	data := `<?xml version="1.0"?>
<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart">
  <c:chart><c:plotArea/></c:chart>
</c:chartSpace>`

	c := parseChartSpace([]byte(data))
	if c.Type != "unknown" {
		t.Errorf("Type = %q, want unknown when no plot group present", c.Type)
	}
}

func TestParseDrawingAnchors(t *testing.T) {
	data := `<?xml version="1.0"?>
<xdr:wsDr xmlns:xdr="http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"
          xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
          xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart"
          xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <xdr:oneCellAnchor>
    <xdr:from><xdr:col>4</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>1</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
    <xdr:ext cx="4572000" cy="2743200"/>
    <xdr:graphicFrame>
      <a:graphic><a:graphicData>
        <c:chart r:id="rId1"/>
      </a:graphicData></a:graphic>
    </xdr:graphicFrame>
  </xdr:oneCellAnchor>
  <xdr:twoCellAnchor>
    <xdr:from><xdr:col>0</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>10</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
    <xdr:to><xdr:col>7</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>25</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:to>
    <xdr:graphicFrame>
      <a:graphic><a:graphicData>
        <c:chart r:id="rId2"/>
      </a:graphicData></a:graphic>
    </xdr:graphicFrame>
  </xdr:twoCellAnchor>
  <xdr:twoCellAnchor>
    <xdr:from><xdr:col>0</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>0</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
    <xdr:sp/>
  </xdr:twoCellAnchor>
</xdr:wsDr>`

	anchors := parseDrawingAnchors([]byte(data))
	if len(anchors) != 2 {
		t.Fatalf("len(anchors) = %d, want 2 (shape anchor skipped)", len(anchors))
	}

	a := anchors[0]
	if a.chartRID != "rId1" || a.col != 4 || a.row != 1 {
		t.Errorf("first anchor = %+v, want rId1 at col 4 row 1", a)
	}
	if a.cx != 4572000 || a.cy != 2743200 {
		t.Errorf("first anchor extents = %v x %v", a.cx, a.cy)
	}

	b := anchors[1]
	if b.chartRID != "rId2" || b.col != 0 || b.row != 10 {
		t.Errorf("second anchor = %+v, want rId2 at col 0 row 10", b)
	}
}
