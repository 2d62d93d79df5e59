// Package buffer is the editor-facing text buffer. It wraps a piece table
// with locking, line ending handling and line/column conversion.
//
// Text is stored with LF line breaks only. Content read with CRLF or CR
// endings is normalized on the way in, and WriteTo re-encodes with the
// buffer's LineEnding on the way out:
//
//	buf := buffer.NewBufferFromString("one\r\ntwo\r\n", buffer.WithDetectedLineEnding())
//	buf.LineCount()      // 3
//	buf.LineEnding()     // LineEndingCRLF
//	buf.ApplyEdit(buffer.InsertAt(3, " and a half"))
//	buf.WriteTo(file)    // "one and a half\r\ntwo\r\n"
//
// All offsets are byte offsets; Point columns are byte columns. Errors from
// out-of-range offsets are the piece table's ErrInvalidOffset and
// ErrInvalidRange, re-exported here.
//
// All Buffer methods are safe for concurrent use.
package buffer
