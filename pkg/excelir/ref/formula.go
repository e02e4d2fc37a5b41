package ref

import (
	"strings"

	"github.com/mkravets/excelir/pkg/excelir/ir"
)

// ParseFormulaReferences extracts sheet-qualified cell and range references
// from a formula string, in left-to-right appearance order. Input that does
// not start with "=" yields nil (not an error).
//
// The scanner matches the grammar (sheet!)?address(:address)? with
// non-overlapping, leftmost-first, greedy matches. A match must not be
// adjacent to a word character on either side, which keeps it from firing
// inside identifiers and function names. Dollar anchors are stripped.
func ParseFormulaReferences(formula, currentSheet string) []ir.Reference {
	if !strings.HasPrefix(formula, "=") {
		return nil
	}
	var refs []ir.Reference
	i := 1
	for i < len(formula) {
		if isWordChar(formula[i-1]) {
			i++
			continue
		}
		end, sheet, addr, ok := matchReference(formula, i)
		if !ok || (end < len(formula) && isWordChar(formula[end])) {
			i++
			continue
		}
		kind := ir.RefCell
		if strings.Contains(addr, ":") {
			kind = ir.RefRange
		}
		if sheet == "" {
			sheet = currentSheet
		}
		refs = append(refs, ir.Reference{Sheet: sheet, Kind: kind, Address: addr})
		i = end
	}
	return refs
}

// matchReference attempts a single reference match starting at i. It returns
// the index just past the match, the explicit sheet name (empty when
// unqualified) and the anchored-stripped address.
func matchReference(s string, i int) (end int, sheet, addr string, ok bool) {
	j, sheet, hasSheet := matchSheetPrefix(s, i)
	a1, j, ok := matchCellToken(s, j)
	if !ok {
		return 0, "", "", false
	}
	addr = a1
	if j < len(s) && s[j] == ':' {
		if a2, k, ok2 := matchCellToken(s, j+1); ok2 {
			addr = a1 + ":" + a2
			j = k
		}
	}
	if hasSheet && sheet == "" {
		return 0, "", "", false
	}
	return j, sheet, addr, true
}

// matchSheetPrefix consumes an optional quoted or bare sheet name followed
// by '!'. The prefix binds to this reference only.
func matchSheetPrefix(s string, i int) (next int, sheet string, ok bool) {
	if i < len(s) && s[i] == '\'' {
		close := strings.IndexByte(s[i+1:], '\'')
		if close < 0 {
			return i, "", false
		}
		end := i + 1 + close
		if end+1 < len(s) && s[end+1] == '!' {
			return end + 2, s[i+1 : end], true
		}
		return i, "", false
	}
	j := i
	for j < len(s) && isSheetNameChar(s[j]) {
		j++
	}
	if j > i && j < len(s) && s[j] == '!' {
		return j + 1, s[i:j], true
	}
	return i, "", false
}

// matchCellToken consumes one [$]?[A-Z]+[$]?[0-9]+ token starting at i and
// returns it with anchors stripped.
func matchCellToken(s string, i int) (addr string, next int, ok bool) {
	j := i
	if j < len(s) && s[j] == '$' {
		j++
	}
	colStart := j
	for j < len(s) && s[j] >= 'A' && s[j] <= 'Z' {
		j++
	}
	if j == colStart {
		return "", 0, false
	}
	col := s[colStart:j]
	if j < len(s) && s[j] == '$' {
		j++
	}
	rowStart := j
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == rowStart {
		return "", 0, false
	}
	return col + s[rowStart:j], j, true
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSheetNameChar(c byte) bool {
	return isWordChar(c) || c == '.'
}
