package style

import (
	"github.com/xuri/excelize/v2"

	"github.com/mkravets/excelir/pkg/excelir/ir"
)

// Normalize maps a cell's library style object into the canonical attribute
// record, omitting every attribute that is not explicitly set. It never
// fails; a nil input yields an empty record.
func Normalize(st *excelize.Style) ir.Style {
	var out ir.Style
	if st == nil {
		return out
	}
	out.Font = normalizeFont(st.Font)
	out.Fill = normalizeFill(st.Fill)
	out.Border = normalizeBorder(st.Border)
	out.Alignment = normalizeAlignment(st.Alignment)
	out.Protection = normalizeProtection(st.Protection)
	out.NumberFormat = normalizeNumberFormat(st)
	return out
}

func normalizeFont(f *excelize.Font) *ir.Font {
	if f == nil {
		return nil
	}
	var out ir.Font
	set := false
	if f.Family != "" {
		out.Name = strPtr(f.Family)
		set = true
	}
	if f.Size != 0 {
		out.Size = floatPtr(f.Size)
		set = true
	}
	if f.Bold {
		out.Bold = boolPtr(true)
		set = true
	}
	if f.Italic {
		out.Italic = boolPtr(true)
		set = true
	}
	if f.Underline != "" && f.Underline != "none" {
		out.Underline = strPtr(f.Underline)
		set = true
	}
	if f.Strike {
		out.Strike = boolPtr(true)
		set = true
	}
	if c := normalizeColor(f.Color, f.ColorTheme, f.ColorTint); c != nil {
		out.Color = c
		set = true
	}
	if !set {
		return nil
	}
	return &out
}

// normalizeColor keeps exactly one of a direct RGB string or a
// (theme, tint) pair, never both. RGB wins when both are reported.
func normalizeColor(rgb string, theme *int, tint float64) *ir.Color {
	if rgb != "" {
		return &ir.Color{RGB: rgb}
	}
	if theme != nil {
		c := &ir.Color{Theme: intPtr(*theme)}
		if tint != 0 {
			c.Tint = floatPtr(tint)
		}
		return c
	}
	return nil
}

func normalizeFill(f excelize.Fill) *ir.Fill {
	if f.Type != "pattern" || f.Pattern <= 0 || f.Pattern >= len(patternFillNames) {
		return nil
	}
	out := ir.Fill{Pattern: strPtr(patternFillNames[f.Pattern])}
	if len(f.Color) > 0 && f.Color[0] != "" {
		out.Foreground = &ir.Color{RGB: f.Color[0]}
	}
	if len(f.Color) > 1 && f.Color[1] != "" {
		out.Background = &ir.Color{RGB: f.Color[1]}
	}
	return &out
}

// normalizeBorder extracts only the four cardinal sides, each as a style
// name plus optional color. Diagonal borders are not part of the canonical
// record.
func normalizeBorder(borders []excelize.Border) *ir.Border {
	var out ir.Border
	set := false
	for _, b := range borders {
		name, ok := borderStyleNames[b.Style]
		if !ok || name == "none" {
			continue
		}
		side := &ir.BorderSide{Style: name, RGB: b.Color}
		switch b.Type {
		case "top":
			out.Top = side
		case "right":
			out.Right = side
		case "bottom":
			out.Bottom = side
		case "left":
			out.Left = side
		default:
			continue
		}
		set = true
	}
	if !set {
		return nil
	}
	return &out
}

func normalizeAlignment(a *excelize.Alignment) *ir.Alignment {
	if a == nil {
		return nil
	}
	var out ir.Alignment
	set := false
	if a.Horizontal != "" {
		out.Horizontal = strPtr(a.Horizontal)
		set = true
	}
	if a.Vertical != "" {
		out.Vertical = strPtr(a.Vertical)
		set = true
	}
	if a.WrapText {
		out.WrapText = boolPtr(true)
		set = true
	}
	if a.TextRotation != 0 {
		out.TextRotation = intPtr(a.TextRotation)
		set = true
	}
	if a.Indent != 0 {
		out.Indent = intPtr(a.Indent)
		set = true
	}
	if a.ShrinkToFit {
		out.ShrinkToFit = boolPtr(true)
		set = true
	}
	if !set {
		return nil
	}
	return &out
}

func normalizeProtection(p *excelize.Protection) *ir.Protection {
	if p == nil {
		return nil
	}
	return &ir.Protection{
		Locked: boolPtr(p.Locked),
		Hidden: boolPtr(p.Hidden),
	}
}

func normalizeNumberFormat(st *excelize.Style) string {
	if st.CustomNumFmt != nil && *st.CustomNumFmt != "" {
		return *st.CustomNumFmt
	}
	if st.NumFmt == 0 {
		return ""
	}
	if s, ok := numberFormatStrings[st.NumFmt]; ok {
		return s
	}
	return ""
}

func strPtr(s string) *string     { return &s }
func boolPtr(b bool) *bool        { return &b }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
