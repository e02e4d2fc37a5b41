// Package style converts cell styles between the workbook library's
// representation and the canonical IR attribute record, in both directions.
package style

// borderStyleCodes maps OOXML border style names to the integer codes the
// workbook library uses. Unrecognized names materialize as "none" (0).
var borderStyleCodes = map[string]int{
	"none":             0,
	"thin":             1,
	"medium":           2,
	"dashed":           3,
	"dotted":           4,
	"thick":            5,
	"double":           6,
	"hair":             7,
	"mediumDashed":     8,
	"dashDot":          9,
	"mediumDashDot":    10,
	"dashDotDot":       11,
	"mediumDashDotDot": 12,
	"slantDashDot":     13,
}

// borderStyleNames is the inverse of borderStyleCodes.
var borderStyleNames = func() map[int]string {
	m := make(map[int]string, len(borderStyleCodes))
	for name, code := range borderStyleCodes {
		m[code] = name
	}
	return m
}()

// numberFormatCodes maps common number format strings to their standard
// built-in numeric format ids. Anything else materializes as "General" (0)
// with a logged warning.
var numberFormatCodes = map[string]int{
	"General":       0,
	"0":             1,
	"0.00":          2,
	"#,##0":         3,
	"#,##0.00":      4,
	"0%":            9,
	"0.00%":         10,
	"0.00E+00":      11,
	"# ?/?":         12,
	"# ??/??":       13,
	"mm-dd-yy":      14,
	"d-mmm-yy":      15,
	"d-mmm":         16,
	"mmm-yy":        17,
	"h:mm AM/PM":    18,
	"h:mm:ss AM/PM": 19,
	"h:mm":          20,
	"h:mm:ss":       21,
	"m/d/yy h:mm":   22,
	"@":             49,
}

// numberFormatStrings is the inverse of numberFormatCodes.
var numberFormatStrings = func() map[int]string {
	m := make(map[int]string, len(numberFormatCodes))
	for s, id := range numberFormatCodes {
		m[id] = s
	}
	return m
}()

// patternFillNames maps the workbook library's pattern fill indexes to
// OOXML pattern type names.
var patternFillNames = []string{
	"none", "solid", "mediumGray", "darkGray", "lightGray",
	"darkHorizontal", "darkVertical", "darkDown", "darkUp", "darkGrid",
	"darkTrellis", "lightHorizontal", "lightVertical", "lightDown",
	"lightUp", "lightGrid", "lightTrellis", "gray125", "gray0625",
}

// patternFillIndex returns the library index for a pattern name, or -1.
func patternFillIndex(name string) int {
	for i, n := range patternFillNames {
		if n == name {
			return i
		}
	}
	return -1
}
