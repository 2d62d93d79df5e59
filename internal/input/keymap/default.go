package keymap

import (
	"github.com/dshills/quill/internal/command"
	"github.com/dshills/quill/internal/input/key"
)

// Trees holds one tree per input mode.
type Trees struct {
	Normal  *KeyNode
	Insert  *KeyNode
	Command *KeyNode
}

// Defaults returns freshly built default trees.
func Defaults() Trees {
	return Trees{
		Normal:  DefaultNormal(),
		Insert:  DefaultInsert(),
		Command: DefaultCommand(),
	}
}

// Get returns the tree for a mode name, or nil.
func (t Trees) Get(mode string) *KeyNode {
	switch mode {
	case command.ModeNormal:
		return t.Normal
	case command.ModeInsert:
		return t.Insert
	case command.ModeCommand:
		return t.Command
	}
	return nil
}

// registers are the names accepted by "q" and "@".
const registers = "abcdefghijklmnopqrstuvwxyz0123456789"

func static(id string) command.EditorCommand {
	s, ok := command.LookupStatic(id)
	if !ok {
		panic("keymap: unknown static command " + id)
	}
	return s
}

func motion(m command.Motion) command.EditorCommand {
	return command.MotionCommand{Motion: m}
}

// DefaultNormal returns the default normal mode tree.
func DefaultNormal() *KeyNode {
	root := NewTree()

	// Movement
	for _, nav := range command.Navigations() {
		root.mustBindKeys(nav.Keys(), motion(command.NavigationOnly{Nav: nav}))
	}
	root.mustBind("^", motion(command.NavigationOnly{Nav: command.LineStart}))

	// Operators
	for _, op := range command.MotionTypes() {
		bindOperator(root, op)
	}

	// Shorthands
	root.mustBind("x", motion(command.OperatedNavigation{Op: command.Delete, Nav: command.CharForward}))
	root.mustBind("X", motion(command.OperatedNavigation{Op: command.Delete, Nav: command.CharBackward}))
	root.mustBind("D", motion(command.OperatedNavigation{Op: command.Delete, Nav: command.LineEnd}))
	root.mustBind("C", motion(command.OperatedNavigation{Op: command.Change, Nav: command.LineEnd}))
	root.mustBind("Y", motion(command.OperatedRange{Op: command.Yank, Range: command.Simple(command.Line)}))

	// Search prompts
	root.mustBind("/", command.Typable{Command: "search", Args: []string{"forward"}})
	root.mustBind("?", command.Typable{Command: "search", Args: []string{"backward"}})

	// Modes
	root.mustBind("i", static("insert_mode"))
	root.mustBind(":", static("command_mode"))
	root.mustBind("<C-[>", static("normal_mode"))

	// Macros
	for i := 0; i < len(registers); i++ {
		reg := string(registers[i])
		root.mustBind("q"+reg, command.Typable{Command: "record", Args: []string{reg}})
		root.mustBind("@"+reg, command.Typable{Command: "play", Args: []string{reg}})
	}
	root.mustBind("@@", command.Typable{Command: "play", Args: []string{"@"}})

	return root
}

// bindOperator binds op over every navigation and range shape that has a
// fixed key sequence.
func bindOperator(root *KeyNode, op command.MotionType) {
	prefix := op.Keys()
	seq := func(keys ...key.Key) key.Sequence {
		return append(prefix.Clone(), keys...)
	}
	operated := func(r command.Range) command.EditorCommand {
		return motion(command.OperatedRange{Op: op, Range: r})
	}

	for _, nav := range command.Navigations() {
		root.mustBindKeys(seq(nav.Keys()...), motion(command.OperatedNavigation{Op: op, Nav: nav}))
	}

	line := operated(command.Simple(command.Line))
	root.mustBindKeys(seq(prefix...), line)
	root.mustBindKeys(seq('_'), line)
	if op != command.Rot13 {
		root.mustBindKeys(seq(prefix[len(prefix)-1]), line)
	}

	for _, s := range command.Scopes() {
		root.mustBindKeys(seq('i', s.Key()), operated(command.InsideOf(s)))
		root.mustBindKeys(seq('a', s.Key()), operated(command.AroundOf(s)))
		root.mustBindKeys(seq('%', s.Key()), operated(command.PercentOf(s)))
	}
	for closing, s := range map[key.Key]command.Scope{
		')': command.Parenthesis,
		']': command.Bracket,
		'}': command.Brace,
		'>': command.AngleBracket,
	} {
		root.mustBindKeys(seq('i', closing), operated(command.InsideOf(s)))
		root.mustBindKeys(seq('a', closing), operated(command.AroundOf(s)))
		root.mustBindKeys(seq('%', closing), operated(command.PercentOf(s)))
	}

	for _, c := range key.Printable() {
		root.mustBindKeys(seq('f', c), operated(command.FindChar(command.ForwardTo, c)))
		root.mustBindKeys(seq('F', c), operated(command.FindChar(command.BackwardTo, c)))
		root.mustBindKeys(seq('t', c), operated(command.FindChar(command.ForwardTill, c)))
		root.mustBindKeys(seq('T', c), operated(command.FindChar(command.BackwardTill, c)))
	}

	root.mustBindKeys(seq('W'), operated(command.Simple(command.Word)))
	root.mustBindKeys(seq('('), operated(command.Simple(command.SentenceStart)))
	root.mustBindKeys(seq(')'), operated(command.Simple(command.SentenceEnd)))

	for c := byte('a'); c <= 'z'; c++ {
		root.mustBindKeys(seq('`', key.Key(c)), operated(command.MarkAt(c)))
		root.mustBindKeys(seq('`', key.Key(c-'a'+'A')), operated(command.MarkAt(c-'a'+'A')))
	}

	// The pattern is typed on the command line, so the search itself is a
	// typable command that carries the operator.
	root.mustBindKeys(seq('/'), command.Typable{Command: "search", Args: []string{"forward", op.AsKey()}})
	root.mustBindKeys(seq('?'), command.Typable{Command: "search", Args: []string{"backward", op.AsKey()}})
}

// DefaultInsert returns the default insert mode tree. Printable keys are not
// bound; the dispatcher inserts them directly.
func DefaultInsert() *KeyNode {
	root := NewTree()
	root.mustBind("<C-[>", static("normal_mode"))
	root.mustBind("<Del>", static("backspace"))
	root.mustBind("<C-H>", static("backspace"))
	root.mustBind("<C-M>", static("newline"))
	root.mustBind("<C-J>", static("newline"))
	root.mustBind("<C-I>", static("tab"))
	return root
}

// DefaultCommand returns the default command-line mode tree.
func DefaultCommand() *KeyNode {
	root := NewTree()
	root.mustBind("<C-[>", static("normal_mode"))
	root.mustBind("<C-M>", static("submit"))
	root.mustBind("<C-J>", static("submit"))
	root.mustBind("<Del>", static("backspace"))
	root.mustBind("<C-H>", static("backspace"))
	return root
}
