package ir

// Color is an indirect or direct color value. Exactly one of RGB or the
// (Theme, Tint) pair is populated, never both.
type Color struct {
	// RGB is a direct color as a hex string like "FF0000".
	RGB string `json:"rgb,omitempty"`
	// Theme is the theme palette index.
	Theme *int `json:"theme,omitempty"`
	// Tint is the lightness adjustment applied to the theme color.
	Tint *float64 `json:"tint,omitempty"`
}

// Font holds the font attributes explicitly set on a cell.
type Font struct {
	// Name is the font family name.
	Name *string `json:"name,omitempty"`
	// Size is the font size in points.
	Size *float64 `json:"sz,omitempty"`
	// Bold reports bold weight.
	Bold *bool `json:"b,omitempty"`
	// Italic reports italic slant.
	Italic *bool `json:"i,omitempty"`
	// Underline is the underline style name.
	Underline *string `json:"u,omitempty"`
	// Strike reports strikethrough.
	Strike *bool `json:"strike,omitempty"`
	// Color is the font color.
	Color *Color `json:"color,omitempty"`
}

// Fill holds the pattern fill attributes explicitly set on a cell.
type Fill struct {
	// Pattern is the fill pattern type name (e.g. "solid").
	Pattern *string `json:"pattern_type,omitempty"`
	// Foreground is the pattern foreground color.
	Foreground *Color `json:"fg_color,omitempty"`
	// Background is the pattern background color.
	Background *Color `json:"bg_color,omitempty"`
}

// BorderSide is one cardinal border side: a style name and an optional
// direct color.
type BorderSide struct {
	// Style is the border style name ("thin", "medium", ...).
	Style string `json:"style"`
	// RGB is the side color as a hex string, empty when unset.
	RGB string `json:"rgb,omitempty"`
}

// Border holds the four cardinal border sides explicitly set on a cell.
type Border struct {
	Top    *BorderSide `json:"top,omitempty"`
	Right  *BorderSide `json:"right,omitempty"`
	Bottom *BorderSide `json:"bottom,omitempty"`
	Left   *BorderSide `json:"left,omitempty"`
}

// Alignment holds the alignment attributes explicitly set on a cell.
type Alignment struct {
	Horizontal   *string `json:"horizontal,omitempty"`
	Vertical     *string `json:"vertical,omitempty"`
	WrapText     *bool   `json:"wrap_text,omitempty"`
	TextRotation *int    `json:"text_rotation,omitempty"`
	Indent       *int    `json:"indent,omitempty"`
	ShrinkToFit  *bool   `json:"shrink_to_fit,omitempty"`
}

// Protection holds the protection attributes explicitly set on a cell.
type Protection struct {
	Locked *bool `json:"locked,omitempty"`
	Hidden *bool `json:"hidden,omitempty"`
}

// Style is the canonical cell style record. Absent attributes are omitted,
// never stored as default placeholders, so the record size reflects only
// what was explicitly set on the source cell.
type Style struct {
	Font       *Font       `json:"font,omitempty"`
	Fill       *Fill       `json:"fill,omitempty"`
	Border     *Border     `json:"border,omitempty"`
	Alignment  *Alignment  `json:"alignment,omitempty"`
	Protection *Protection `json:"protection,omitempty"`
	// NumberFormat is the number format string (e.g. "0.00", "@").
	NumberFormat string `json:"number_format,omitempty"`
}

// IsZero reports whether no attribute is set.
func (s Style) IsZero() bool {
	return s.Font == nil && s.Fill == nil && s.Border == nil &&
		s.Alignment == nil && s.Protection == nil && s.NumberFormat == ""
}
