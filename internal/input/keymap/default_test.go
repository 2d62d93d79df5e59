package keymap

import (
	"testing"

	"github.com/dshills/quill/internal/command"
	"github.com/dshills/quill/internal/input/key"
)

func resolve(t *testing.T, root *KeyNode, notation string) Result {
	t.Helper()
	p := NewParser(root)
	var res Result
	for _, k := range key.MustParseSequence(notation) {
		res = p.Feed(k)
	}
	return res
}

func TestDefaultNormalMotions(t *testing.T) {
	normal := DefaultNormal()

	tests := []struct {
		keys  string
		want  string
		count int
	}{
		{"w", "w", 0},
		{"3w", "w", 3},
		{"gg", "gg", 0},
		{"12G", "G", 12},
		{"dw", "dw", 0},
		{"2dd", "dd", 2},
		{"d_", "dd", 0},
		{"gUU", "gUgU", 0},
		{"gUgU", "gUgU", 0},
		{"g?g?", "g?g?", 0},
		{"ci(", "ci(", 0},
		{"ci)", "ci(", 0},
		{"ya\"", "ya\"", 0},
		{"df<", "df<", 0},
		{"dtx", "dtx", 0},
		{"d`a", "d`a", 0},
		{"d%{", "d%{", 0},
		{"vW", "vW", 0},
		{"c)", "c)", 0},
		{"d0", "d0", 0},
		{"^", "0", 0},
		{"x", "dl", 0},
		{"Y", "yy", 0},
	}

	for _, tt := range tests {
		res := resolve(t, normal, tt.keys)
		if res.Status != StatusCommand {
			t.Errorf("%s: status %v, want command", tt.keys, res.Status)
			continue
		}
		if res.Command.String() != tt.want {
			t.Errorf("%s: command %v, want %s", tt.keys, res.Command, tt.want)
		}
		if res.Count != tt.count {
			t.Errorf("%s: count %d, want %d", tt.keys, res.Count, tt.count)
		}
	}
}

func TestDefaultNormalCommands(t *testing.T) {
	normal := DefaultNormal()

	tests := []struct {
		keys string
		want string
	}{
		{"i", "insert_mode"},
		{":", "command_mode"},
		{"qa", ":record a"},
		{"@3", ":play 3"},
		{"@@", ":play @"},
		{"/", ":search forward"},
		{"d/", ":search forward d"},
		{"gU?", ":search backward gU"},
		{"g??", ":search backward g?"},
	}
	for _, tt := range tests {
		res := resolve(t, normal, tt.keys)
		if res.Status != StatusCommand || res.Command.String() != tt.want {
			t.Errorf("%s: %+v, want %s", tt.keys, res, tt.want)
		}
	}
}

func TestDefaultNormalErrors(t *testing.T) {
	normal := DefaultNormal()
	for _, keys := range []string{"dx", "Z", "g!", "d<C-[>"} {
		if res := resolve(t, normal, keys); res.Status != StatusError {
			t.Errorf("%s: status %v, want error", keys, res.Status)
		}
	}
}

// TestDefaultMotionsRoundTrip checks every bound motion renders to a
// notation that decodes back to the same motion.
func TestDefaultMotionsRoundTrip(t *testing.T) {
	motions := 0
	DefaultNormal().Walk(func(seq key.Sequence, cmd command.EditorCommand) bool {
		mc, ok := cmd.(command.MotionCommand)
		if !ok {
			return true
		}
		motions++
		got, err := command.ParseMotion(mc.Motion.AsKey())
		if err != nil {
			t.Errorf("%s: ParseMotion(%q) error = %v", seq, mc.Motion.AsKey(), err)
			return true
		}
		if got != mc.Motion {
			t.Errorf("%s: round trip gave %v, want %v", seq, got, mc.Motion)
		}
		return true
	})
	if motions < 1000 {
		t.Errorf("expected a large normal table, found %d motions", motions)
	}
}

func TestDefaultInsertAndCommand(t *testing.T) {
	insert := DefaultInsert()
	for keys, want := range map[string]string{
		"<C-[>": "normal_mode",
		"<Del>": "backspace",
		"<C-M>": "newline",
		"<C-I>": "tab",
	} {
		if res := resolve(t, insert, keys); res.Status != StatusCommand || res.Command.Name() != want {
			t.Errorf("insert %s: %+v, want %s", keys, res, want)
		}
	}
	if res := resolve(t, insert, "a"); res.Status != StatusError {
		t.Errorf("printable keys are not bound in insert mode, got %v", res.Status)
	}

	cmdline := DefaultCommand()
	if res := resolve(t, cmdline, "<C-M>"); res.Command == nil || res.Command.Name() != "submit" {
		t.Errorf("command <C-M> = %+v, want submit", res)
	}
}

func TestTreesGet(t *testing.T) {
	trees := Defaults()
	if trees.Get(command.ModeNormal) != trees.Normal ||
		trees.Get(command.ModeInsert) != trees.Insert ||
		trees.Get(command.ModeCommand) != trees.Command {
		t.Error("Get returned the wrong tree")
	}
	if trees.Get("visual") != nil {
		t.Error("unknown mode should return nil")
	}
}
