package piecetable

import (
	"fmt"
	"sort"
)

// RowCol is a 0-indexed row and byte column.
type RowCol struct {
	Row int
	Col int
}

// String returns a human-readable representation like "(2:5)".
func (rc RowCol) String() string {
	return fmt.Sprintf("(%d:%d)", rc.Row, rc.Col)
}

// scanLineStarts builds the line index for text by a full scan.
func scanLineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// insertLineStarts updates the line index for text inserted at offset.
// Starts after offset shift right by len(text); one new start is added per
// line break inside text.
func (t *Table) insertLineStarts(offset int, text string) {
	at := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	})

	for i := at; i < len(t.lineStarts); i++ {
		t.lineStarts[i] += len(text)
	}

	var added []int
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			added = append(added, offset+i+1)
		}
	}
	if len(added) == 0 {
		return
	}

	grown := make([]int, 0, len(t.lineStarts)+len(added))
	grown = append(grown, t.lineStarts[:at]...)
	grown = append(grown, added...)
	grown = append(grown, t.lineStarts[at:]...)
	t.lineStarts = grown
}

// deleteLineStarts updates the line index for the removal of [start, end).
// A line start s disappears when the break at s-1 was removed, that is when
// start < s <= end. Later starts shift left by end-start.
func (t *Table) deleteLineStarts(start, end int) {
	lo := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > start
	})
	hi := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > end
	})

	width := end - start
	for i := hi; i < len(t.lineStarts); i++ {
		t.lineStarts[i] -= width
	}
	t.lineStarts = append(t.lineStarts[:lo], t.lineStarts[hi:]...)
}

// LineCount returns the number of lines: line breaks + 1.
func (t *Table) LineCount() int {
	return len(t.lineStarts)
}

// LineStarts returns a copy of the line index.
func (t *Table) LineStarts() []int {
	out := make([]int, len(t.lineStarts))
	copy(out, t.lineStarts)
	return out
}

// LineStart returns the offset at which row begins.
func (t *Table) LineStart(row int) (int, error) {
	if row < 0 || row >= len(t.lineStarts) {
		return 0, fmt.Errorf("%w: row %d of %d", ErrInvalidOffset, row, len(t.lineStarts))
	}
	return t.lineStarts[row], nil
}

// LineLength returns the length of row in bytes, excluding its line break.
func (t *Table) LineLength(row int) (int, error) {
	start, err := t.LineStart(row)
	if err != nil {
		return 0, err
	}
	if row == len(t.lineStarts)-1 {
		return t.Len() - start, nil
	}
	return t.lineStarts[row+1] - start - 1, nil
}

// Line returns the text of row without its line break.
func (t *Table) Line(row int) (string, error) {
	start, err := t.LineStart(row)
	if err != nil {
		return "", err
	}
	n, _ := t.LineLength(row)
	return t.Slice(start, start+n)
}

// RowColAt returns the row and column of offset. It requires
// 0 <= offset <= Len().
func (t *Table) RowColAt(offset int) (RowCol, error) {
	if offset < 0 || offset > t.Len() {
		return RowCol{}, fmt.Errorf("%w: %d in length %d", ErrInvalidOffset, offset, t.Len())
	}
	row := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	}) - 1
	return RowCol{Row: row, Col: offset - t.lineStarts[row]}, nil
}

// OffsetFrom returns the offset of rc. A row past the last line yields
// Len(). The column is added as given; it is not checked against the line
// length. Negative rows or columns are rejected.
func (t *Table) OffsetFrom(rc RowCol) (int, error) {
	if rc.Row < 0 || rc.Col < 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidOffset, rc)
	}
	if rc.Row >= len(t.lineStarts) {
		return t.Len(), nil
	}
	return t.lineStarts[rc.Row] + rc.Col, nil
}
