package mode

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/input/keymap"
)

// ErrUnknownMode is returned when switching to a mode that is not registered.
var ErrUnknownMode = errors.New("unknown mode")

// ChangeCallback is called when the mode changes.
type ChangeCallback func(from, to Mode)

type entry struct {
	mode Mode
	tree *keymap.KeyNode
}

// Manager tracks the current mode and routes keys through that mode's tree.
// It is not safe for concurrent use; one input stream owns one manager.
type Manager struct {
	// modes holds all registered modes by name.
	modes map[string]*entry

	current  string
	previous string

	parser *keymap.Parser

	// callbacks are notified on mode changes.
	callbacks []ChangeCallback
}

// NewManager creates a manager with the built-in modes bound to trees and
// starts in normal mode.
func NewManager(trees keymap.Trees) *Manager {
	m := &Manager{
		modes:  make(map[string]*entry),
		parser: keymap.NewParser(nil),
	}
	for _, md := range Builtin() {
		m.Register(md, trees.Get(md.Name))
	}
	m.current = ModeNormal
	m.parser.SetKeymap(m.modes[ModeNormal].tree)
	return m
}

// Register adds a mode with its tree. A mode with the same name is
// replaced; if it is current, the parser moves to the new tree.
func (m *Manager) Register(md Mode, tree *keymap.KeyNode) {
	if tree == nil {
		tree = keymap.NewTree()
	}
	m.modes[md.Name] = &entry{mode: md, tree: tree}
	if md.Name == m.current {
		m.parser.SetKeymap(tree)
	}
}

// Modes returns the registered mode names in sorted order.
func (m *Manager) Modes() []string {
	names := make([]string, 0, len(m.modes))
	for name := range m.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a registered mode.
func (m *Manager) Get(name string) (Mode, bool) {
	e, ok := m.modes[name]
	if !ok {
		return Mode{}, false
	}
	return e.mode, true
}

// Tree returns the key tree of a mode, or nil.
func (m *Manager) Tree(name string) *keymap.KeyNode {
	if e, ok := m.modes[name]; ok {
		return e.tree
	}
	return nil
}

// Current returns the current mode.
func (m *Manager) Current() Mode {
	return m.modes[m.current].mode
}

// CurrentName returns the name of the current mode.
func (m *Manager) CurrentName() string {
	return m.current
}

// Previous returns the name of the mode before the current one, or "".
func (m *Manager) Previous() string {
	return m.previous
}

// Parser returns the parser the manager drives.
func (m *Manager) Parser() *keymap.Parser {
	return m.parser
}

// OnChange registers a callback for mode changes.
func (m *Manager) OnChange(cb ChangeCallback) {
	m.callbacks = append(m.callbacks, cb)
}

// Switch changes to the named mode. The parser is reset even when the mode
// does not change; callbacks run only on an actual change.
func (m *Manager) Switch(name string) error {
	next, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}

	m.parser.SetKeymap(next.tree)
	if name == m.current {
		return nil
	}

	from := m.modes[m.current].mode
	m.previous = m.current
	m.current = name

	for _, cb := range m.callbacks {
		if cb != nil {
			cb(from, next.mode)
		}
	}
	return nil
}

// Rebind replaces the trees of the built-in modes. The parser is reset onto
// the current mode's new tree.
func (m *Manager) Rebind(trees keymap.Trees) {
	for _, name := range []string{ModeNormal, ModeInsert, ModeCommand} {
		e, ok := m.modes[name]
		if !ok {
			continue
		}
		if tree := trees.Get(name); tree != nil {
			e.tree = tree
		}
	}
	m.parser.SetKeymap(m.modes[m.current].tree)
}

// Feed resolves k in the current mode.
func (m *Manager) Feed(k key.Key) keymap.Result {
	return m.parser.Feed(k)
}

// SelfInserts reports whether k should be inserted as text in the current
// mode rather than fed to the parser. Only printable keys typed at the
// start of a sequence self-insert.
func (m *Manager) SelfInserts(k key.Key) bool {
	return m.Current().SelfInsert && k.IsPrintable() && m.parser.AtRoot()
}
