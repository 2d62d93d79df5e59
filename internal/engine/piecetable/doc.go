// Package piecetable implements the text storage engine behind every open
// document.
//
// A Table keeps two backing stores: the immutable original text the document
// was opened with, and an append-only add buffer that accumulates every
// inserted fragment. The document itself is an ordered list of pieces, each
// a (source, start, length) reference into one of the two stores. Editing
// only rewrites the piece list; the backing stores are never modified in
// place, so text returned by earlier calls is never invalidated.
//
// Alongside the pieces the Table maintains a sorted index of line start
// offsets. It is built by a single scan at construction and updated
// incrementally on every Insert and Delete.
//
// # Offsets
//
// All offsets are byte offsets into UTF-8 text. CharAt returns the byte at
// an offset; RuneAt decodes the full UTF-8 sequence starting there. Columns
// reported by RowColAt are byte columns.
//
// # Errors
//
// Out-of-range offsets and inverted ranges are contract violations and are
// reported as ErrInvalidOffset or ErrInvalidRange. The Table never clamps
// caller-supplied positions.
//
// # Concurrency
//
// A Table is not safe for concurrent use. Exactly one owner may mutate it.
//
// Basic usage:
//
//	t := piecetable.New("ab")
//	_ = t.Insert(1, "X")          // "aXb"
//	s, _ := t.Slice(0, t.Len())   // "aXb"
//	rc, _ := t.RowColAt(2)        // {Row: 0, Col: 2}
package piecetable
