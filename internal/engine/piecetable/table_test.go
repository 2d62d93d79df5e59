package piecetable

import (
	"errors"
	"testing"
)

// checkInvariants verifies the structural invariants of a table against the
// text it is expected to hold.
func checkInvariants(t *testing.T, tbl *Table, want string) {
	t.Helper()

	sum := 0
	for i, p := range tbl.pieces {
		if p.Length == 0 {
			t.Fatalf("piece %d has zero length: %v", i, tbl.pieces)
		}
		sum += p.Length
	}
	if sum != tbl.Len() {
		t.Fatalf("piece lengths sum to %d, Len() = %d", sum, tbl.Len())
	}
	if tbl.String() != want {
		t.Fatalf("expected text %q, got %q", want, tbl.String())
	}

	expected := scanLineStarts(want)
	if len(expected) != len(tbl.lineStarts) {
		t.Fatalf("expected line starts %v, got %v", expected, tbl.lineStarts)
	}
	for i := range expected {
		if expected[i] != tbl.lineStarts[i] {
			t.Fatalf("expected line starts %v, got %v", expected, tbl.lineStarts)
		}
	}
}

func TestNewRoundTrip(t *testing.T) {
	texts := []string{"", "a", "hello world", "a\nb\nc", "\n\n", "trailing\n", "héllo wörld"}

	for _, text := range texts {
		tbl := New(text)
		if tbl.Len() != len(text) {
			t.Errorf("%q: expected length %d, got %d", text, len(text), tbl.Len())
		}
		got, err := tbl.Slice(0, len(text))
		if err != nil {
			t.Fatalf("%q: slice failed: %v", text, err)
		}
		if got != text {
			t.Errorf("expected %q, got %q", text, got)
		}
		checkInvariants(t, tbl, text)
	}
}

func TestNewEmptyHasNoPieces(t *testing.T) {
	tbl := New("")
	if !tbl.IsEmpty() {
		t.Error("empty table should report IsEmpty")
	}
	if len(tbl.Pieces()) != 0 {
		t.Errorf("expected no pieces, got %v", tbl.Pieces())
	}
	if tbl.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", tbl.LineCount())
	}
}

func TestInsertMiddle(t *testing.T) {
	tbl := New("ab")
	if err := tbl.Insert(1, "X"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, _ := tbl.Slice(0, 3)
	if got != "aXb" {
		t.Errorf("expected %q, got %q", "aXb", got)
	}
	if n := len(tbl.Pieces()); n != 3 {
		t.Errorf("expected 3 pieces, got %d", n)
	}
	checkInvariants(t, tbl, "aXb")
}

func TestInsertAtEdges(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		insert string
		want   string
		pieces int
	}{
		{"start", "abc", 0, "X", "Xabc", 2},
		{"end", "abc", 3, "X", "abcX", 2},
		{"empty table", "", 0, "X", "X", 1},
		{"empty insert", "abc", 1, "", "abc", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := New(tt.text)
			if err := tbl.Insert(tt.offset, tt.insert); err != nil {
				t.Fatalf("insert failed: %v", err)
			}
			if n := len(tbl.Pieces()); n != tt.pieces {
				t.Errorf("expected %d pieces, got %d (%v)", tt.pieces, n, tbl.Pieces())
			}
			checkInvariants(t, tbl, tt.want)
		})
	}
}

func TestInsertOutOfRange(t *testing.T) {
	tbl := New("abc")

	for _, offset := range []int{-1, 4, 100} {
		if err := tbl.Insert(offset, "X"); !errors.Is(err, ErrInvalidOffset) {
			t.Errorf("offset %d: expected ErrInvalidOffset, got %v", offset, err)
		}
	}
	checkInvariants(t, tbl, "abc")
}

func TestInsertNeverReusesAddRegion(t *testing.T) {
	tbl := New("")
	_ = tbl.Insert(0, "abc")
	first := tbl.Pieces()[0]

	_ = tbl.Insert(1, "XY")
	_ = tbl.Delete(0, 5)
	_ = tbl.Insert(0, "Z")

	if tbl.AddLen() != 6 {
		t.Errorf("expected add store to hold 6 bytes, got %d", tbl.AddLen())
	}
	if got := tbl.text(first); got != "abc" {
		t.Errorf("earlier piece now reads %q, want %q", got, "abc")
	}
	checkInvariants(t, tbl, "Z")
}

func TestDelete(t *testing.T) {
	tbl := New("abc")
	if err := tbl.Delete(1, 2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("expected length 2, got %d", tbl.Len())
	}
	got, _ := tbl.Slice(0, 2)
	if got != "ac" {
		t.Errorf("expected %q, got %q", "ac", got)
	}
	checkInvariants(t, tbl, "ac")
}

func TestDeleteAcrossPieces(t *testing.T) {
	tbl := New("hello world")
	_ = tbl.Insert(5, ",")
	_ = tbl.Insert(12, "!")
	checkInvariants(t, tbl, "hello, world!")

	if err := tbl.Delete(3, 9); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	checkInvariants(t, tbl, "helrld!")

	if err := tbl.Delete(0, tbl.Len()); err != nil {
		t.Fatalf("delete all failed: %v", err)
	}
	checkInvariants(t, tbl, "")
	if !tbl.IsEmpty() {
		t.Error("table should be empty after deleting everything")
	}
}

func TestDeleteInvalidRange(t *testing.T) {
	tbl := New("abc")

	tests := []struct {
		start, end int
	}{
		{2, 1},
		{1, 1},
		{-1, 2},
		{0, 4},
	}
	for _, tt := range tests {
		if err := tbl.Delete(tt.start, tt.end); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("Delete(%d, %d): expected ErrInvalidRange, got %v", tt.start, tt.end, err)
		}
	}
	checkInvariants(t, tbl, "abc")
}

func TestSliceInvalidRange(t *testing.T) {
	tbl := New("abc")

	if _, err := tbl.Slice(2, 1); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange for start > end, got %v", err)
	}
	if _, err := tbl.Slice(0, 4); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange for end > Len, got %v", err)
	}
	if s, err := tbl.Slice(3, 3); err != nil || s != "" {
		t.Errorf("expected empty slice at end, got %q, %v", s, err)
	}
}

func TestSliceIdempotent(t *testing.T) {
	tbl := New("one two three")
	_ = tbl.Insert(4, "and ")
	_ = tbl.Delete(0, 1)

	a, _ := tbl.Slice(2, 10)
	b, _ := tbl.Slice(2, 10)
	if a != b {
		t.Errorf("consecutive slices differ: %q vs %q", a, b)
	}
}

func TestCharAt(t *testing.T) {
	tbl := New("ac")
	_ = tbl.Insert(1, "b")

	for i, want := range []byte("abc") {
		got, ok := tbl.CharAt(i)
		if !ok || got != want {
			t.Errorf("CharAt(%d) = %q, %v; want %q", i, got, ok, want)
		}
	}
	if _, ok := tbl.CharAt(3); ok {
		t.Error("CharAt(Len()) should report false")
	}
	if _, ok := tbl.CharAt(-1); ok {
		t.Error("CharAt(-1) should report false")
	}
}

func TestRuneAt(t *testing.T) {
	tbl := New("aé")
	_ = tbl.Insert(1, "世")

	r, size := tbl.RuneAt(1)
	if r != '世' || size != 3 {
		t.Errorf("RuneAt(1) = %q, %d; want '世', 3", r, size)
	}
	r, size = tbl.RuneAt(4)
	if r != 'é' || size != 2 {
		t.Errorf("RuneAt(4) = %q, %d; want 'é', 2", r, size)
	}
	if _, size := tbl.RuneAt(tbl.Len()); size != 0 {
		t.Errorf("RuneAt(Len()) size = %d, want 0", size)
	}
}

func TestFind(t *testing.T) {
	tbl := New("hello world")

	if off, ok := tbl.Find("lo", 0); !ok || off != 3 {
		t.Errorf("Find(lo) = %d, %v; want 3, true", off, ok)
	}
	if _, ok := tbl.Find("zz", 0); ok {
		t.Error("Find(zz) should report no match")
	}
	if off, ok := tbl.Find("", 5); !ok || off != 5 {
		t.Errorf("Find(\"\", 5) = %d, %v; want 5, true", off, ok)
	}
	if off, ok := tbl.Find("o", 5); !ok || off != 7 {
		t.Errorf("Find(o, 5) = %d, %v; want 7, true", off, ok)
	}
	if off, ok := tbl.Find("world", 6); !ok || off != 6 {
		t.Errorf("Find(world, 6) = %d, %v; want 6, true", off, ok)
	}
	if _, ok := tbl.Find("world", 7); ok {
		t.Error("Find(world, 7) should report no match past the clamp")
	}
}

func TestFindAcrossPieceBoundaries(t *testing.T) {
	tbl := New("abef")
	_ = tbl.Insert(2, "c")
	_ = tbl.Insert(3, "d")

	if off, ok := tbl.Find("bcde", 0); !ok || off != 1 {
		t.Errorf("Find(bcde) = %d, %v; want 1, true", off, ok)
	}
	if off, ok := tbl.Find("f", 0); !ok || off != 5 {
		t.Errorf("Find(f) = %d, %v; want 5, true", off, ok)
	}
}

func TestReplace(t *testing.T) {
	tbl := New("Hello World")
	if err := tbl.Replace(6, 11, "Go"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	checkInvariants(t, tbl, "Hello Go")

	if err := tbl.Replace(5, 5, ","); err != nil {
		t.Fatalf("replace with empty range failed: %v", err)
	}
	checkInvariants(t, tbl, "Hello, Go")

	if err := tbl.Replace(4, 2, "x"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}
