package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/quill/internal/command"
	"github.com/dshills/quill/internal/input/key"
)

func nav(n command.NavigationMotion) command.EditorCommand {
	return command.MotionCommand{Motion: command.NavigationOnly{Nav: n}}
}

func TestBindAndLookup(t *testing.T) {
	root := NewTree()
	if err := root.BindNotation("gg", nav(command.Top)); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if err := root.BindNotation("G", nav(command.Bottom)); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	cmd, ok := root.Lookup(key.MustParseSequence("gg"))
	if !ok || cmd.String() != "gg" {
		t.Errorf("Lookup(gg) = %v, %v", cmd, ok)
	}
	if _, ok := root.Lookup(key.MustParseSequence("g")); ok {
		t.Error("the prefix g should carry no command")
	}
	if !root.HasPrefix(key.MustParseSequence("g")) {
		t.Error("g should be a prefix of gg")
	}
	if root.HasPrefix(key.MustParseSequence("G")) {
		t.Error("G has no longer bindings")
	}
	if root.Len() != 2 {
		t.Errorf("Len() = %d, want 2", root.Len())
	}
}

func TestBindErrors(t *testing.T) {
	root := NewTree()
	if err := root.Bind(nil, nav(command.Top)); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("expected ErrEmptySequence, got %v", err)
	}
	if err := root.BindNotation("x", nil); !errors.Is(err, ErrNilCommand) {
		t.Errorf("expected ErrNilCommand, got %v", err)
	}
	if err := root.BindNotation("", nav(command.Top)); !errors.Is(err, key.ErrEmptySpec) {
		t.Errorf("expected key.ErrEmptySpec, got %v", err)
	}
}

func TestBindOverwriteKeepsSiblings(t *testing.T) {
	root := NewTree()
	_ = root.BindNotation("dw", nav(command.WordForward))
	_ = root.BindNotation("db", nav(command.WordBackward))
	_ = root.BindNotation("dw", nav(command.WordEndForward))

	cmd, _ := root.Lookup(key.MustParseSequence("dw"))
	if cmd.String() != "e" {
		t.Errorf("dw resolves to %v, want the rebound command", cmd)
	}
	cmd, _ = root.Lookup(key.MustParseSequence("db"))
	if cmd.String() != "b" {
		t.Errorf("sibling db disturbed: %v", cmd)
	}
	if root.Len() != 2 {
		t.Errorf("Len() = %d, want 2", root.Len())
	}
}

func TestBindPrefixKeepsLongerBinding(t *testing.T) {
	root := NewTree()
	_ = root.BindNotation("gUw", nav(command.WordForward))
	_ = root.BindNotation("gU", nav(command.Top))

	if _, ok := root.Lookup(key.MustParseSequence("gUw")); !ok {
		t.Error("longer binding should survive binding its prefix")
	}
	if _, ok := root.Lookup(key.MustParseSequence("gU")); !ok {
		t.Error("prefix binding should be installed")
	}
}

func TestEdgesSorted(t *testing.T) {
	root := NewTree()
	for _, c := range "zaymb" {
		_ = root.Bind(key.Sequence{key.Key(c)}, nav(command.Top))
	}
	for i := 1; i < len(root.edges); i++ {
		if root.edges[i-1].key >= root.edges[i].key {
			t.Fatalf("edges not sorted: %v", root.edges)
		}
	}
}

func TestUnbindPrunes(t *testing.T) {
	root := NewTree()
	_ = root.BindNotation("abc", nav(command.Top))
	_ = root.BindNotation("ab", nav(command.Bottom))
	_ = root.BindNotation("x", nav(command.LineEnd))

	if !root.Unbind(key.MustParseSequence("abc")) {
		t.Fatal("Unbind(abc) should report a removal")
	}
	if root.Find(key.MustParseSequence("abc")) != nil {
		t.Error("node for abc should be pruned")
	}
	if _, ok := root.Lookup(key.MustParseSequence("ab")); !ok {
		t.Error("ab should remain bound")
	}

	if !root.Unbind(key.MustParseSequence("ab")) {
		t.Fatal("Unbind(ab) should report a removal")
	}
	if root.Child('a') != nil {
		t.Error("empty branch a should be pruned to the root")
	}
	if root.Child('x') == nil {
		t.Error("unrelated branch x should remain")
	}

	if root.Unbind(key.MustParseSequence("q")) {
		t.Error("Unbind of an unbound sequence should report false")
	}
}

func TestWalk(t *testing.T) {
	root := NewTree()
	for _, s := range []string{"b", "ab", "a", "ac"} {
		_ = root.BindNotation(s, command.Typable{Command: s})
	}

	var seen []string
	root.Walk(func(seq key.Sequence, cmd command.EditorCommand) bool {
		seen = append(seen, seq.String())
		return true
	})
	want := []string{"a", "ab", "ac", "b"}
	if len(seen) != len(want) {
		t.Fatalf("Walk visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("Walk visited %v, want %v", seen, want)
		}
	}

	count := 0
	root.Walk(func(key.Sequence, command.EditorCommand) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("Walk should stop when fn returns false, visited %d", count)
	}
}
