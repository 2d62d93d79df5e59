package command

import (
	"testing"

	"github.com/dshills/quill/internal/input/key"
)

type recordingEnv struct {
	mode       string
	inserted   string
	backspaces int
	submits    int
}

func (e *recordingEnv) SwitchMode(mode string) error {
	e.mode = mode
	return nil
}

func (e *recordingEnv) InsertText(text string) error {
	e.inserted += text
	return nil
}

func (e *recordingEnv) Backspace() error {
	e.backspaces++
	return nil
}

func (e *recordingEnv) Submit() error {
	e.submits++
	return nil
}

func TestStaticCommands(t *testing.T) {
	env := &recordingEnv{}

	run := func(id string) {
		t.Helper()
		s, ok := LookupStatic(id)
		if !ok {
			t.Fatalf("static %q not registered", id)
		}
		if s.Doc == "" {
			t.Errorf("static %q has no documentation", id)
		}
		if err := s.Fn(env); err != nil {
			t.Fatalf("static %q failed: %v", id, err)
		}
	}

	run("insert_mode")
	if env.mode != ModeInsert {
		t.Errorf("mode = %q, want %q", env.mode, ModeInsert)
	}
	run("newline")
	run("tab")
	if env.inserted != "\n\t" {
		t.Errorf("inserted = %q", env.inserted)
	}
	run("backspace")
	run("submit")
	run("command_mode")
	run("normal_mode")
	if env.backspaces != 1 || env.submits != 1 || env.mode != ModeNormal {
		t.Errorf("unexpected env state %+v", env)
	}

	if _, ok := LookupStatic("nope"); ok {
		t.Error("unknown static should not be found")
	}
}

func TestStaticCommandsSorted(t *testing.T) {
	all := StaticCommands()
	if len(all) != 7 {
		t.Fatalf("expected 7 static commands, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Errorf("not sorted: %q before %q", all[i-1].ID, all[i].ID)
		}
	}
}

func TestEditorCommandStrings(t *testing.T) {
	tests := []struct {
		cmd  EditorCommand
		name string
		str  string
	}{
		{Typable{Command: "w"}, "w", ":w"},
		{Typable{Command: "record", Args: []string{"a"}}, "record", ":record a"},
		{MotionCommand{Motion: OperatedNavigation{Op: Delete, Nav: WordForward}}, "motion", "dw"},
		{Macro{Keys: key.MustParseSequence("dd<C-[>")}, "macro", "@dd<C-[>"},
	}
	for _, tt := range tests {
		if tt.cmd.Name() != tt.name {
			t.Errorf("Name() = %q, want %q", tt.cmd.Name(), tt.name)
		}
		if tt.cmd.String() != tt.str {
			t.Errorf("String() = %q, want %q", tt.cmd.String(), tt.str)
		}
	}

	s, _ := LookupStatic("submit")
	if s.Name() != "submit" || s.String() != "submit" {
		t.Errorf("static name = %q, string = %q", s.Name(), s.String())
	}
}
