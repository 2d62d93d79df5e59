package buffer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/engine/piecetable"
)

// Errors returned by buffer operations.
var (
	ErrInvalidOffset = piecetable.ErrInvalidOffset
	ErrInvalidRange  = piecetable.ErrInvalidRange
)

// chunkSize bounds the slices WriteTo pulls from the table.
const chunkSize = 32 * 1024

// Buffer wraps a piece table with editor functionality. Text is held with
// LF line breaks; the line ending only applies when the buffer is written.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	id         uuid.UUID
	table      *piecetable.Table
	revisionID RevisionID
	saved      RevisionID
	lineEnding LineEnding
	detect     bool
	tabWidth   int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		id:         uuid.New(),
		table:      piecetable.New(""),
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	b.saved = b.revisionID

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	if b.detect {
		b.lineEnding = DetectLineEnding(s)
	}
	b.table = piecetable.New(normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// CRLF pairs may straddle read boundaries, so read everything first.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// ID returns the buffer's identity.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.String()
}

// TextRange returns text in [start, end).
func (b *Buffer) TextRange(start, end ByteOffset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.Slice(start, end)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.Len()
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.IsEmpty()
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.LineCount()
}

// LineText returns the text of a line without its newline.
func (b *Buffer) LineText(line int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.Line(line)
}

// LineLen returns the length of a line in bytes, without its newline.
func (b *Buffer) LineLen(line int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.LineLength(line)
}

// LineStartOffset returns the offset at which a line begins.
func (b *Buffer) LineStartOffset(line int) (ByteOffset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.LineStart(line)
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.CharAt(offset)
}

// RuneAt returns the rune starting at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.RuneAt(offset)
}

// OffsetToPoint converts a byte offset to a line and column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) (Point, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rc, err := b.table.RowColAt(offset)
	if err != nil {
		return Point{}, err
	}
	return Point{Line: rc.Row, Column: rc.Col}, nil
}

// PointToOffset converts a line and column to a byte offset for placing a
// cursor. Unlike the edit operations it clamps: a column past the end of
// its line lands on the line end, and a line past the last yields Len().
// Negative values are ErrInvalidOffset.
func (b *Buffer) PointToOffset(p Point) (ByteOffset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if p.Line >= 0 && p.Line < b.table.LineCount() {
		if n, _ := b.table.LineLength(p.Line); p.Column > n {
			p.Column = n
		}
	}
	return b.table.OffsetFrom(piecetable.RowCol{Row: p.Line, Col: p.Column})
}

// Find returns the offset of the first occurrence of pattern at or after
// from.
func (b *Buffer) Find(pattern string, from ByteOffset) (ByteOffset, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.Find(normalizeLineEndings(pattern), from)
}

// FindBackward returns the offset of the last occurrence of pattern that
// starts before from.
func (b *Buffer) FindBackward(pattern string, from ByteOffset) (ByteOffset, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pattern = normalizeLineEndings(pattern)
	found, last := false, 0
	for pos := 0; ; pos++ {
		at, ok := b.table.Find(pattern, pos)
		if !ok || at >= from {
			break
		}
		found, last, pos = true, at, at
	}
	return last, found
}

// WriteTo writes the buffer to w using the buffer's line ending.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bw := bufio.NewWriter(w)
	var written int64
	for start := 0; start < b.table.Len(); start += chunkSize {
		end := min(start+chunkSize, b.table.Len())
		chunk, err := b.table.Slice(start, end)
		if err != nil {
			return written, err
		}
		if b.lineEnding != LineEndingLF {
			chunk = strings.ReplaceAll(chunk, "\n", b.lineEnding.Sequence())
		}
		n, err := bw.WriteString(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// Write Operations

// ApplyEdit applies edit and reports where the new text landed. An empty
// edit is validated but does not start a new revision.
func (b *Buffer) ApplyEdit(edit Edit) (Applied, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	edit.Text = normalizeLineEndings(edit.Text)
	r := edit.Range

	var removed string
	var err error
	switch {
	case r.IsEmpty():
		if edit.Text != "" {
			err = b.table.Insert(r.Start, edit.Text)
		} else if r.Start < 0 || r.Start > b.table.Len() {
			err = fmt.Errorf("%w: %d", ErrInvalidOffset, r.Start)
		}
	default:
		if removed, err = b.table.Slice(r.Start, r.End); err == nil {
			err = b.table.Replace(r.Start, r.End, edit.Text)
		}
	}
	if err != nil {
		return Applied{}, err
	}
	if !edit.Empty() {
		b.revisionID = NewRevisionID()
	}

	return Applied{
		Edit:     edit,
		Removed:  removed,
		Inserted: Range{Start: r.Start, End: r.Start + len(edit.Text)},
	}, nil
}

// Metadata

// RevisionID returns the current revision.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsModified reports whether the buffer changed since it was created or
// last marked saved.
func (b *Buffer) IsModified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID != b.saved
}

// MarkSaved records the current revision as saved.
func (b *Buffer) MarkSaved() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved = b.revisionID
}

// LineEnding returns the line ending used by WriteTo.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetLineEnding changes the line ending used by WriteTo.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// TabWidth returns the tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetTabWidth sets the tab width. Non-positive widths are ignored.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width > 0 {
		b.tabWidth = width
	}
}
