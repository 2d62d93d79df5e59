package keymap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/quill/internal/command"
	"github.com/dshills/quill/internal/input/key"
)

// Binding errors.
var (
	ErrEmptySequence = errors.New("empty key sequence")
	ErrNilCommand    = errors.New("nil command")
)

// KeyNode is a node of a key trie. The zero value is an empty root.
type KeyNode struct {
	cmd   command.EditorCommand
	edges []edge
}

// edge is a labelled child link. Edges are kept sorted by key.
type edge struct {
	key  key.Key
	node *KeyNode
}

// NewTree creates an empty tree.
func NewTree() *KeyNode {
	return &KeyNode{}
}

// Command returns the command bound at this node, if any.
func (n *KeyNode) Command() (command.EditorCommand, bool) {
	return n.cmd, n.cmd != nil
}

// HasChildren returns true if any longer sequence passes through n.
func (n *KeyNode) HasChildren() bool {
	return len(n.edges) > 0
}

func (n *KeyNode) search(k key.Key) int {
	return sort.Search(len(n.edges), func(i int) bool {
		return n.edges[i].key >= k
	})
}

// Child returns the child reached by k, or nil.
func (n *KeyNode) Child(k key.Key) *KeyNode {
	i := n.search(k)
	if i < len(n.edges) && n.edges[i].key == k {
		return n.edges[i].node
	}
	return nil
}

func (n *KeyNode) childOrCreate(k key.Key) *KeyNode {
	i := n.search(k)
	if i < len(n.edges) && n.edges[i].key == k {
		return n.edges[i].node
	}
	child := &KeyNode{}
	n.edges = append(n.edges, edge{})
	copy(n.edges[i+1:], n.edges[i:])
	n.edges[i] = edge{key: k, node: child}
	return child
}

func (n *KeyNode) removeChild(k key.Key) {
	i := n.search(k)
	if i < len(n.edges) && n.edges[i].key == k {
		n.edges = append(n.edges[:i], n.edges[i+1:]...)
	}
}

// Bind installs cmd at the end of seq, creating nodes as needed. Binding an
// already bound sequence replaces its command. Bindings that extend or
// prefix seq are left in place.
func (n *KeyNode) Bind(seq key.Sequence, cmd command.EditorCommand) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	if cmd == nil {
		return fmt.Errorf("%w for %q", ErrNilCommand, seq.String())
	}

	node := n
	for _, k := range seq {
		node = node.childOrCreate(k)
	}
	node.cmd = cmd
	return nil
}

// BindNotation is Bind with the sequence given in key notation.
func (n *KeyNode) BindNotation(notation string, cmd command.EditorCommand) error {
	seq, err := key.ParseSequence(notation)
	if err != nil {
		return fmt.Errorf("binding %q: %w", notation, err)
	}
	return n.Bind(seq, cmd)
}

// mustBind and mustBindKeys are for static tables.
func (n *KeyNode) mustBind(notation string, cmd command.EditorCommand) {
	if err := n.BindNotation(notation, cmd); err != nil {
		panic(err)
	}
}

func (n *KeyNode) mustBindKeys(seq key.Sequence, cmd command.EditorCommand) {
	if err := n.Bind(seq, cmd); err != nil {
		panic(err)
	}
}

// Unbind removes the command bound to seq and prunes nodes left with
// neither a command nor children. It reports whether a binding was removed.
func (n *KeyNode) Unbind(seq key.Sequence) bool {
	if len(seq) == 0 {
		return false
	}

	// Track path for pruning
	path := make([]*KeyNode, 0, len(seq)+1)
	path = append(path, n)
	node := n
	for _, k := range seq {
		node = node.Child(k)
		if node == nil {
			return false
		}
		path = append(path, node)
	}
	if node.cmd == nil {
		return false
	}
	node.cmd = nil

	for i := len(path) - 1; i > 0; i-- {
		current := path[i]
		if current.cmd != nil || len(current.edges) > 0 {
			break
		}
		path[i-1].removeChild(seq[i-1])
	}
	return true
}

// Lookup returns the command bound to exactly seq.
func (n *KeyNode) Lookup(seq key.Sequence) (command.EditorCommand, bool) {
	node := n.Find(seq)
	if node == nil {
		return nil, false
	}
	return node.Command()
}

// Find returns the node reached by seq, or nil.
func (n *KeyNode) Find(seq key.Sequence) *KeyNode {
	node := n
	for _, k := range seq {
		node = node.Child(k)
		if node == nil {
			return nil
		}
	}
	return node
}

// HasPrefix returns true if some binding strictly extends seq.
func (n *KeyNode) HasPrefix(seq key.Sequence) bool {
	node := n.Find(seq)
	return node != nil && node.HasChildren()
}

// Walk calls fn for every bound sequence in key order, shortest first along a
// path. Walking stops when fn returns false.
func (n *KeyNode) Walk(fn func(seq key.Sequence, cmd command.EditorCommand) bool) {
	n.walk(nil, fn)
}

func (n *KeyNode) walk(prefix key.Sequence, fn func(key.Sequence, command.EditorCommand) bool) bool {
	if n.cmd != nil && !fn(prefix.Clone(), n.cmd) {
		return false
	}
	for _, e := range n.edges {
		if !e.node.walk(append(prefix, e.key), fn) {
			return false
		}
	}
	return true
}

// Len returns the number of bound sequences under n.
func (n *KeyNode) Len() int {
	count := 0
	if n.cmd != nil {
		count++
	}
	for _, e := range n.edges {
		count += e.node.Len()
	}
	return count
}
