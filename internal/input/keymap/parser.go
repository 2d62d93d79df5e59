package keymap

import (
	"fmt"
	"math"

	"github.com/dshills/quill/internal/command"
	"github.com/dshills/quill/internal/input/key"
)

// Status is the outcome of feeding one key.
type Status uint8

const (
	// StatusIncomplete means more keys are needed.
	StatusIncomplete Status = iota

	// StatusCommand means a bound command was matched.
	StatusCommand

	// StatusError means the keys match no binding.
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusCommand:
		return "command"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// Result is the outcome of Parser.Feed.
type Result struct {
	Status Status

	// Command is set for StatusCommand.
	Command command.EditorCommand

	// Count is the repeat count typed before the sequence. It is only
	// meaningful when HasCount is true. Longer digit runs saturate at
	// MaxCount.
	Count    int
	HasCount bool

	// Keys are the keys consumed by the sequence so far, count digits
	// included.
	Keys key.Sequence
}

// Parser resolves keys against one tree at a time. It is not safe for
// concurrent use.
type Parser struct {
	root     *KeyNode
	cursor   *KeyNode
	count    int
	hasCount bool
	pending  key.Sequence
	trace    func(Result)
}

// NewParser creates a parser over root.
func NewParser(root *KeyNode) *Parser {
	if root == nil {
		root = NewTree()
	}
	return &Parser{root: root, cursor: root}
}

// SetTrace installs a hook called with every result. Pass nil to remove it.
func (p *Parser) SetTrace(fn func(Result)) {
	p.trace = fn
}

// SetKeymap switches to another tree and resets the parser.
func (p *Parser) SetKeymap(root *KeyNode) {
	if root == nil {
		root = NewTree()
	}
	p.root = root
	p.Reset()
}

// Keymap returns the active tree.
func (p *Parser) Keymap() *KeyNode {
	return p.root
}

// Reset returns to the root and discards any count.
func (p *Parser) Reset() {
	p.cursor = p.root
	p.count = 0
	p.hasCount = false
	p.pending = nil
}

// AtRoot returns true if no sequence or count is in progress.
func (p *Parser) AtRoot() bool {
	return p.cursor == p.root && !p.hasCount
}

// Pending returns the keys consumed since the last terminal result.
func (p *Parser) Pending() key.Sequence {
	return p.pending.Clone()
}

// Feed consumes one key.
func (p *Parser) Feed(k key.Key) Result {
	p.pending = append(p.pending, k)

	if p.cursor == p.root && k.IsDigit() {
		p.accumulate(k.Digit())
		return p.emit(Result{Status: StatusIncomplete, Count: p.count, HasCount: true, Keys: p.Pending()})
	}

	child := p.cursor.Child(k)
	if child == nil {
		res := Result{Status: StatusError, Count: p.count, HasCount: p.hasCount, Keys: p.pending}
		p.Reset()
		return p.emit(res)
	}

	if cmd, ok := child.Command(); ok {
		res := Result{Status: StatusCommand, Command: cmd, Count: p.count, HasCount: p.hasCount, Keys: p.pending}
		p.Reset()
		return p.emit(res)
	}

	p.cursor = child
	return p.emit(Result{Status: StatusIncomplete, Count: p.count, HasCount: p.hasCount, Keys: p.Pending()})
}

// MaxCount is the largest repeat count the parser reports.
const MaxCount = math.MaxInt32

// accumulate folds digit into the count, saturating at MaxCount.
func (p *Parser) accumulate(digit int) {
	p.hasCount = true
	if p.count > (MaxCount-digit)/10 {
		p.count = MaxCount
		return
	}
	p.count = p.count*10 + digit
}

func (p *Parser) emit(res Result) Result {
	if p.trace != nil {
		p.trace(res)
	}
	return res
}
