package style

import (
	"encoding/json"
	"sort"

	"github.com/mkravets/excelir/pkg/excelir/ir"
)

// Interner dedupes canonical style records for one sheet: each unique
// record is stored once and referenced by index from styled ranges.
type Interner struct {
	styles []ir.Style
	index  map[string]int
}

// NewInterner returns an empty interner.
func NewInterner() *Interner {
	return &Interner{index: make(map[string]int)}
}

// Intern returns the table index for the record, adding it on first sight.
// The key is the record's JSON form, which is deterministic because absent
// attributes are omitted.
func (in *Interner) Intern(s ir.Style) int {
	key, err := json.Marshal(s)
	if err != nil {
		// Style records contain only marshalable primitives; treat an
		// impossible failure as a distinct entry.
		in.styles = append(in.styles, s)
		return len(in.styles) - 1
	}
	if id, ok := in.index[string(key)]; ok {
		return id
	}
	id := len(in.styles)
	in.styles = append(in.styles, s)
	in.index[string(key)] = id
	return id
}

// Styles returns the interned table in first-seen order.
func (in *Interner) Styles() []ir.Style {
	return in.styles
}

// CellStyleRef is one styled cell awaiting range compression.
type CellStyleRef struct {
	Row, Col int // 1-based
	StyleID  int
}

// MergeRuns compresses styled cells into ranges: horizontally adjacent
// cells on the same row carrying the same style id collapse into one
// "A1:C1" range. toAddress converts 1-based coordinates; cells whose
// coordinates fail conversion are dropped by the caller beforehand.
func MergeRuns(cells []CellStyleRef, toAddress func(row, col int) (string, error)) []ir.StyledRange {
	if len(cells) == 0 {
		return nil
	}
	sorted := make([]CellStyleRef, len(cells))
	copy(sorted, cells)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	var out []ir.StyledRange
	flush := func(first, last CellStyleRef) {
		start, err := toAddress(first.Row, first.Col)
		if err != nil {
			return
		}
		if first == last {
			out = append(out, ir.StyledRange{StyleID: first.StyleID, Range: start})
			return
		}
		end, err := toAddress(last.Row, last.Col)
		if err != nil {
			return
		}
		out = append(out, ir.StyledRange{StyleID: first.StyleID, Range: start + ":" + end})
	}

	first, last := sorted[0], sorted[0]
	for _, c := range sorted[1:] {
		if c.Row == last.Row && c.Col == last.Col+1 && c.StyleID == last.StyleID {
			last = c
			continue
		}
		flush(first, last)
		first, last = c, c
	}
	flush(first, last)
	return out
}
