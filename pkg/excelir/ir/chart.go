package ir

// AxisRole identifies which axis of a chart a record describes.
type AxisRole string

const (
	AxisX AxisRole = "x"
	AxisY AxisRole = "y"
	AxisZ AxisRole = "z"
)

// Axis is one chart axis with its explicitly set attributes.
type Axis struct {
	// Role is x, y or z.
	Role AxisRole `json:"role"`
	// ID is the axis identifier from the source.
	ID *int `json:"id,omitempty"`
	// Position is the axis position code ("b", "l", ...).
	Position string `json:"position,omitempty"`
	// Delete reports whether the axis is hidden.
	Delete *bool `json:"delete,omitempty"`
	// Title is the axis title text.
	Title string `json:"title,omitempty"`
	// Min and Max bound the axis scale when fixed.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
	// Orientation is "minMax" or "maxMin".
	Orientation string `json:"orientation,omitempty"`
	// MajorUnit and MinorUnit are the tick intervals when fixed.
	MajorUnit *float64 `json:"major_unit,omitempty"`
	MinorUnit *float64 `json:"minor_unit,omitempty"`
	// LogBase is the logarithmic scale base when set.
	LogBase *float64 `json:"log_base,omitempty"`
	// MajorTickMark and MinorTickMark are tick mark codes.
	MajorTickMark string `json:"major_tick_mark,omitempty"`
	MinorTickMark string `json:"minor_tick_mark,omitempty"`
	// TickLabelPosition is the tick label position code.
	TickLabelPosition string `json:"tick_label_position,omitempty"`
	// NumberFormat is the axis number format string.
	NumberFormat string `json:"number_format,omitempty"`
	// Crosses is the crossing rule; CrossesAt the fixed crossing value.
	Crosses   string   `json:"crosses,omitempty"`
	CrossesAt *float64 `json:"crosses_at,omitempty"`
	// MajorGridlines and MinorGridlines report gridline presence.
	MajorGridlines *bool `json:"major_gridlines,omitempty"`
	MinorGridlines *bool `json:"minor_gridlines,omitempty"`
}

// Series is one chart data series. Its value and category ranges are not
// embedded here; they are joined at materialization time through the owning
// chart's DataSources by Index.
type Series struct {
	// Index is the explicit 0-based series index from the source.
	Index int `json:"idx"`
	// Order is the plotting order.
	Order int `json:"order"`
	// Title is the series title text.
	Title string `json:"title,omitempty"`
	// Shape is the 3-D bar shape code when present.
	Shape string `json:"shape,omitempty"`
	// Smooth reports line smoothing.
	Smooth *bool `json:"smooth,omitempty"`
	// InvertIfNegative reports negative-value color inversion.
	InvertIfNegative *bool `json:"invert_if_negative,omitempty"`
}

// SourceKind distinguishes value ranges from category ranges.
type SourceKind string

const (
	SourceValues     SourceKind = "values"
	SourceCategories SourceKind = "categories"
)

// DataSource is a series' reference to the cell range supplying its values
// or categories, stored decoupled from the series record.
type DataSource struct {
	// SeriesIndex matches Series.Index.
	SeriesIndex int `json:"series_index"`
	// Kind is values or categories.
	Kind SourceKind `json:"kind"`
	// Formula is the source range formula, e.g. "Sheet1!$B$2:$D$2".
	Formula string `json:"formula"`
}

// Chart is the canonical chart record.
type Chart struct {
	// Type is the chart type tag ("col", "lineStacked", "pie3D", ...).
	Type string `json:"type"`
	// Title is the flattened title text; empty when absent, never null.
	Title string `json:"title"`
	// Anchor is the 1-based address of the top-left anchor cell.
	Anchor string `json:"anchor"`
	// Width and Height are the source's native length unit, unconverted.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	// StyleID is the source chart style id.
	StyleID *int `json:"style,omitempty"`
	// LegendPosition is the legend position code.
	LegendPosition string `json:"legend_position,omitempty"`
	// AutoScaling reports source auto-scaling when exposed.
	AutoScaling *bool `json:"auto_scaling,omitempty"`
	// PlotVisibleOnly reports the plot-visible-cells-only flag.
	PlotVisibleOnly *bool `json:"plot_vis_only,omitempty"`
	// Axes are the extracted axes in x, y, z order, only roles present.
	Axes []Axis `json:"axes,omitempty"`
	// Series are the series records in source order.
	Series []Series `json:"series,omitempty"`
	// DataSources are the decoupled per-series range references.
	DataSources []DataSource `json:"data_sources,omitempty"`
}

// Source finds the data source of the given kind for a series index.
// Returns nil when the series has no source of that kind.
func (c *Chart) Source(seriesIndex int, kind SourceKind) *DataSource {
	for i := range c.DataSources {
		ds := &c.DataSources[i]
		if ds.SeriesIndex == seriesIndex && ds.Kind == kind {
			return ds
		}
	}
	return nil
}
