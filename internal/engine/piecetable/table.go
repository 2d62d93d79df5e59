package piecetable

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Source identifies which backing store a piece refers to.
type Source uint8

const (
	// Original is the immutable text the table was constructed from.
	Original Source = iota

	// Add is the append-only store of inserted text.
	Add
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case Original:
		return "original"
	case Add:
		return "add"
	default:
		return fmt.Sprintf("Source(%d)", s)
	}
}

// Piece is a reference into one of the backing stores. It never owns text.
type Piece struct {
	Source Source
	Start  int
	Length int
}

// String returns a compact representation like "add[4:7]".
func (p Piece) String() string {
	return fmt.Sprintf("%s[%d:%d]", p.Source, p.Start, p.Start+p.Length)
}

// Table is a piece table with an incrementally maintained line index.
type Table struct {
	original   string
	add        []byte
	pieces     []Piece
	lineStarts []int
}

// New creates a table holding text. It always succeeds.
func New(text string) *Table {
	t := &Table{
		original:   text,
		lineStarts: scanLineStarts(text),
	}
	if len(text) > 0 {
		t.pieces = []Piece{{Source: Original, Start: 0, Length: len(text)}}
	}
	return t
}

// Len returns the total length in bytes.
func (t *Table) Len() int {
	n := 0
	for _, p := range t.pieces {
		n += p.Length
	}
	return n
}

// IsEmpty returns true if the table holds no text.
func (t *Table) IsEmpty() bool {
	return len(t.pieces) == 0
}

// Pieces returns a copy of the current piece list.
func (t *Table) Pieces() []Piece {
	out := make([]Piece, len(t.pieces))
	copy(out, t.pieces)
	return out
}

// AddLen returns the number of bytes ever appended to the add store.
func (t *Table) AddLen() int {
	return len(t.add)
}

// text returns the backing bytes a piece refers to.
func (t *Table) text(p Piece) string {
	if p.Source == Original {
		return t.original[p.Start : p.Start+p.Length]
	}
	return string(t.add[p.Start : p.Start+p.Length])
}

// byteIn returns the byte at local index i of piece p.
func (t *Table) byteIn(p Piece, i int) byte {
	if p.Source == Original {
		return t.original[p.Start+i]
	}
	return t.add[p.Start+i]
}

// locate returns the index of the piece containing offset and the offset
// local to that piece. When offset == Len() it returns (len(pieces), 0),
// one past the last piece.
func (t *Table) locate(offset int) (int, int) {
	acc := 0
	for i, p := range t.pieces {
		if offset < acc+p.Length {
			return i, offset - acc
		}
		acc += p.Length
	}
	return len(t.pieces), 0
}

// split divides piece idx at local and returns the index of the piece that
// now starts at the boundary. Splitting at a piece edge is a no-op, so no
// zero-length piece is ever created.
func (t *Table) split(idx, local int) int {
	if idx >= len(t.pieces) || local == 0 {
		return idx
	}
	p := t.pieces[idx]
	if local >= p.Length {
		return idx + 1
	}

	left := Piece{Source: p.Source, Start: p.Start, Length: local}
	right := Piece{Source: p.Source, Start: p.Start + local, Length: p.Length - local}

	t.pieces = append(t.pieces, Piece{})
	copy(t.pieces[idx+2:], t.pieces[idx+1:])
	t.pieces[idx] = left
	t.pieces[idx+1] = right
	return idx + 1
}

// splitAt splits at an absolute offset and returns the index of the first
// piece starting at that offset.
func (t *Table) splitAt(offset int) int {
	idx, local := t.locate(offset)
	return t.split(idx, local)
}

// CharAt returns the byte at offset, or false if offset is not inside the
// text.
func (t *Table) CharAt(offset int) (byte, bool) {
	if offset < 0 {
		return 0, false
	}
	idx, local := t.locate(offset)
	if idx >= len(t.pieces) {
		return 0, false
	}
	return t.byteIn(t.pieces[idx], local), true
}

// RuneAt decodes the UTF-8 sequence starting at offset. It returns
// utf8.RuneError and size 0 if offset is not inside the text.
func (t *Table) RuneAt(offset int) (rune, int) {
	n := t.Len()
	if offset < 0 || offset >= n {
		return utf8.RuneError, 0
	}
	end := offset + utf8.UTFMax
	if end > n {
		end = n
	}
	s, _ := t.Slice(offset, end)
	return utf8.DecodeRuneInString(s)
}

// Slice returns the text in [start, end). It requires
// 0 <= start <= end <= Len().
func (t *Table) Slice(start, end int) (string, error) {
	if start < 0 || start > end || end > t.Len() {
		return "", fmt.Errorf("%w: [%d:%d) in length %d", ErrInvalidRange, start, end, t.Len())
	}
	if start == end {
		return "", nil
	}

	var sb strings.Builder
	sb.Grow(end - start)

	acc := 0
	for _, p := range t.pieces {
		pStart, pEnd := acc, acc+p.Length
		acc = pEnd
		if pEnd <= start {
			continue
		}
		if pStart >= end {
			break
		}

		lo := max(start, pStart) - pStart
		hi := min(end, pEnd) - pStart
		if p.Source == Original {
			sb.WriteString(t.original[p.Start+lo : p.Start+hi])
		} else {
			sb.Write(t.add[p.Start+lo : p.Start+hi])
		}
	}
	return sb.String(), nil
}

// String returns the full text.
func (t *Table) String() string {
	var sb strings.Builder
	sb.Grow(t.Len())
	for _, p := range t.pieces {
		sb.WriteString(t.text(p))
	}
	return sb.String()
}

// Find returns the first offset >= from at which pattern occurs. An empty
// pattern matches at from immediately.
func (t *Table) Find(pattern string, from int) (int, bool) {
	if pattern == "" {
		return from, true
	}
	n := t.Len()
	if from < 0 || from > n-len(pattern) {
		return 0, false
	}

	// Candidate starts are scanned left to right; each candidate is compared
	// byte by byte through the piece list.
	idx, local := t.locate(from)
	for pos := from; pos <= n-len(pattern); pos++ {
		if t.matchAt(idx, local, pattern) {
			return pos, true
		}
		local++
		if local >= t.pieces[idx].Length {
			idx++
			local = 0
		}
	}
	return 0, false
}

// matchAt reports whether pattern occurs starting at local offset local of
// piece idx. The caller guarantees enough text remains.
func (t *Table) matchAt(idx, local int, pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if t.byteIn(t.pieces[idx], local) != pattern[i] {
			return false
		}
		local++
		if local >= t.pieces[idx].Length {
			idx++
			local = 0
		}
	}
	return true
}

// Insert inserts text at offset. It requires 0 <= offset <= Len().
func (t *Table) Insert(offset int, text string) error {
	if offset < 0 || offset > t.Len() {
		return fmt.Errorf("%w: %d in length %d", ErrInvalidOffset, offset, t.Len())
	}
	if text == "" {
		return nil
	}

	at := t.splitAt(offset)

	// Every insertion gets its own region of the add store.
	piece := Piece{Source: Add, Start: len(t.add), Length: len(text)}
	t.add = append(t.add, text...)

	t.pieces = append(t.pieces, Piece{})
	copy(t.pieces[at+1:], t.pieces[at:])
	t.pieces[at] = piece

	t.insertLineStarts(offset, text)
	return nil
}

// Delete removes the text in [start, end). It requires
// 0 <= start < end <= Len().
func (t *Table) Delete(start, end int) error {
	if start < 0 || start >= end || end > t.Len() {
		return fmt.Errorf("%w: [%d:%d) in length %d", ErrInvalidRange, start, end, t.Len())
	}

	first := t.splitAt(start)
	last := t.splitAt(end)
	t.pieces = append(t.pieces[:first], t.pieces[last:]...)

	t.deleteLineStarts(start, end)
	return nil
}

// Replace deletes [start, end) and inserts text at start.
func (t *Table) Replace(start, end int, text string) error {
	if start < 0 || start > end || end > t.Len() {
		return fmt.Errorf("%w: [%d:%d) in length %d", ErrInvalidRange, start, end, t.Len())
	}
	if start < end {
		if err := t.Delete(start, end); err != nil {
			return err
		}
	}
	return t.Insert(start, text)
}
