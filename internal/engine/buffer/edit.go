package buffer

import "fmt"

// Edit replaces the bytes in Range with Text. An empty Range inserts and an
// empty Text deletes.
type Edit struct {
	Range Range
	Text  string
}

// InsertAt returns an edit that inserts text at offset.
func InsertAt(offset ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, Text: text}
}

// DeleteRange returns an edit that removes [start, end).
func DeleteRange(start, end ByteOffset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// Empty reports whether applying e leaves the text unchanged.
func (e Edit) Empty() bool {
	return e.Range.IsEmpty() && e.Text == ""
}

func (e Edit) String() string {
	switch {
	case e.Range.IsEmpty():
		return fmt.Sprintf("insert %q at %d", e.Text, e.Range.Start)
	case e.Text == "":
		return "delete " + e.Range.String()
	}
	return fmt.Sprintf("replace %s with %q", e.Range, e.Text)
}

// Applied describes an edit after ApplyEdit. Inserted is the range now
// holding the new text, so Inserted.End is where a cursor typing the text
// ends up.
type Applied struct {
	Edit     Edit
	Removed  string
	Inserted Range
}

// Delta returns the change in buffer length.
func (a Applied) Delta() int {
	return a.Inserted.Len() - a.Edit.Range.Len()
}
