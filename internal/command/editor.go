package command

import (
	"sort"
	"strings"

	"github.com/dshills/quill/internal/input/key"
)

// EditorCommand is what a key binding resolves to. It is exactly one of
// Typable, MotionCommand, Static or Macro.
type EditorCommand interface {
	// Name returns a short identifier for logs and help text.
	Name() string

	// String returns a readable form of the command.
	String() string

	isEditorCommand()
}

// Typable is a named command with arguments, as typed after ':'.
type Typable struct {
	Command string
	Args    []string
}

// MotionCommand carries a Motion to the evaluator.
type MotionCommand struct {
	Motion Motion
}

// StaticFunc is the behavior behind a Static command.
type StaticFunc func(env Env) error

// Static is a reference to a built-in function with its documentation.
type Static struct {
	ID  string
	Doc string
	Fn  StaticFunc
}

// Macro replays a recorded sequence of keys.
type Macro struct {
	Keys key.Sequence
}

func (Typable) isEditorCommand()       {}
func (MotionCommand) isEditorCommand() {}
func (Static) isEditorCommand()        {}
func (Macro) isEditorCommand()         {}

func (c Typable) Name() string       { return c.Command }
func (c MotionCommand) Name() string { return "motion" }
func (c Static) Name() string        { return c.ID }
func (c Macro) Name() string         { return "macro" }

func (c Typable) String() string {
	if len(c.Args) == 0 {
		return ":" + c.Command
	}
	return ":" + c.Command + " " + strings.Join(c.Args, " ")
}

func (c MotionCommand) String() string {
	if c.Motion == nil {
		return ""
	}
	return c.Motion.AsKey()
}

func (c Static) String() string { return c.ID }

func (c Macro) String() string { return "@" + c.Keys.String() }

// Env is what static commands act on. The surrounding editor implements it.
type Env interface {
	// SwitchMode changes the active input mode.
	SwitchMode(mode string) error

	// InsertText inserts text at the cursor.
	InsertText(text string) error

	// Backspace deletes the byte before the cursor.
	Backspace() error

	// Submit runs the pending command line.
	Submit() error
}

// Mode names understood by Env.SwitchMode.
const (
	ModeNormal  = "normal"
	ModeInsert  = "insert"
	ModeCommand = "command"
)

func switchTo(mode string) StaticFunc {
	return func(env Env) error { return env.SwitchMode(mode) }
}

func insert(text string) StaticFunc {
	return func(env Env) error { return env.InsertText(text) }
}

var statics = map[string]Static{}

func init() {
	for _, s := range []Static{
		{ID: "normal_mode", Doc: "Return to normal mode", Fn: switchTo(ModeNormal)},
		{ID: "insert_mode", Doc: "Enter insert mode", Fn: switchTo(ModeInsert)},
		{ID: "command_mode", Doc: "Enter command-line mode", Fn: switchTo(ModeCommand)},
		{ID: "newline", Doc: "Insert a line break", Fn: insert("\n")},
		{ID: "tab", Doc: "Insert a tab", Fn: insert("\t")},
		{ID: "backspace", Doc: "Delete the previous character", Fn: func(env Env) error { return env.Backspace() }},
		{ID: "submit", Doc: "Run the command line", Fn: func(env Env) error { return env.Submit() }},
	} {
		statics[s.ID] = s
	}
}

// LookupStatic returns the built-in command named id.
func LookupStatic(id string) (Static, bool) {
	s, ok := statics[id]
	return s, ok
}

// StaticCommands returns every built-in command sorted by ID.
func StaticCommands() []Static {
	out := make([]Static, 0, len(statics))
	for _, s := range statics {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
