package style

import (
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mkravets/excelir/pkg/excelir/ir"
)

// Materialize inverts Normalize: it builds a library-native style object
// from the canonical record, field by field. Unrecognized number formats
// and border style names degrade with a logged warning, never a failure.
// Absent colors stay unset; no synthetic defaults are invented.
func Materialize(s ir.Style, log *zap.Logger) *excelize.Style {
	if log == nil {
		log = zap.NewNop()
	}
	out := &excelize.Style{}
	materializeFont(out, s.Font)
	materializeFill(out, s.Fill)
	materializeBorder(out, s.Border, log)
	materializeAlignment(out, s.Alignment)
	materializeProtection(out, s.Protection)
	materializeNumberFormat(out, s.NumberFormat, log)
	return out
}

func materializeFont(out *excelize.Style, f *ir.Font) {
	if f == nil {
		return
	}
	font := &excelize.Font{}
	if f.Name != nil {
		font.Family = *f.Name
	}
	if f.Size != nil {
		font.Size = *f.Size
	}
	if f.Bold != nil {
		font.Bold = *f.Bold
	}
	if f.Italic != nil {
		font.Italic = *f.Italic
	}
	if f.Underline != nil {
		font.Underline = *f.Underline
	}
	if f.Strike != nil {
		font.Strike = *f.Strike
	}
	if f.Color != nil {
		if f.Color.RGB != "" {
			font.Color = f.Color.RGB
		} else if f.Color.Theme != nil {
			font.ColorTheme = f.Color.Theme
			if f.Color.Tint != nil {
				font.ColorTint = *f.Color.Tint
			}
		}
	}
	out.Font = font
}

func materializeFill(out *excelize.Style, f *ir.Fill) {
	if f == nil || f.Pattern == nil {
		return
	}
	idx := patternFillIndex(*f.Pattern)
	if idx < 0 {
		idx = 1 // solid
	}
	fill := excelize.Fill{Type: "pattern", Pattern: idx}
	if f.Foreground != nil && f.Foreground.RGB != "" {
		fill.Color = append(fill.Color, f.Foreground.RGB)
	}
	if f.Background != nil && f.Background.RGB != "" {
		if len(fill.Color) == 0 {
			fill.Color = append(fill.Color, "")
		}
		fill.Color = append(fill.Color, f.Background.RGB)
	}
	out.Fill = fill
}

func materializeBorder(out *excelize.Style, b *ir.Border, log *zap.Logger) {
	if b == nil {
		return
	}
	sides := []struct {
		kind string
		side *ir.BorderSide
	}{
		{"top", b.Top},
		{"right", b.Right},
		{"bottom", b.Bottom},
		{"left", b.Left},
	}
	for _, s := range sides {
		if s.side == nil {
			continue
		}
		code, ok := borderStyleCodes[s.side.Style]
		if !ok {
			log.Warn("unrecognized border style, using none",
				zap.String("side", s.kind),
				zap.String("style", s.side.Style))
			code = 0
		}
		out.Border = append(out.Border, excelize.Border{
			Type:  s.kind,
			Style: code,
			Color: s.side.RGB,
		})
	}
}

func materializeAlignment(out *excelize.Style, a *ir.Alignment) {
	if a == nil {
		return
	}
	al := &excelize.Alignment{}
	if a.Horizontal != nil {
		al.Horizontal = *a.Horizontal
	}
	if a.Vertical != nil {
		al.Vertical = *a.Vertical
	}
	if a.WrapText != nil {
		al.WrapText = *a.WrapText
	}
	if a.TextRotation != nil {
		al.TextRotation = *a.TextRotation
	}
	if a.Indent != nil {
		al.Indent = *a.Indent
	}
	if a.ShrinkToFit != nil {
		al.ShrinkToFit = *a.ShrinkToFit
	}
	out.Alignment = al
}

func materializeProtection(out *excelize.Style, p *ir.Protection) {
	if p == nil {
		return
	}
	pr := &excelize.Protection{}
	if p.Locked != nil {
		pr.Locked = *p.Locked
	}
	if p.Hidden != nil {
		pr.Hidden = *p.Hidden
	}
	out.Protection = pr
}

func materializeNumberFormat(out *excelize.Style, format string, log *zap.Logger) {
	if format == "" {
		return
	}
	id, ok := numberFormatCodes[format]
	if !ok {
		log.Warn("unrecognized number format, using General",
			zap.String("format", format))
		id = 0
	}
	out.NumFmt = id
}
