package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/quill/internal/command"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/input/macro"
	"github.com/dshills/quill/internal/input/mode"
)

// typableFunc runs a ':' command.
type typableFunc func(d *Dispatcher, args []string, count int) error

// TypableCommand describes a ':' command.
type TypableCommand struct {
	Name    string
	Aliases []string
	Doc     string
	fn      typableFunc
}

var typables = map[string]*TypableCommand{}

func registerTypable(tc *TypableCommand) {
	typables[tc.Name] = tc
	for _, a := range tc.Aliases {
		typables[a] = tc
	}
}

func init() {
	for _, tc := range []*TypableCommand{
		{Name: "write", Aliases: []string{"w"}, Doc: "Write the buffer, optionally to a new path", fn: cmdWrite},
		{Name: "quit", Aliases: []string{"q"}, Doc: "Quit unless there are unsaved changes", fn: cmdQuit},
		{Name: "quit!", Aliases: []string{"q!"}, Doc: "Quit, discarding changes", fn: cmdForceQuit},
		{Name: "wq", Aliases: []string{"x"}, Doc: "Write and quit", fn: cmdWriteQuit},
		{Name: "record", Doc: "Start recording keys into a register", fn: cmdRecord},
		{Name: "play", Doc: "Replay a register; @ replays the last one", fn: cmdPlay},
		{Name: "registers", Aliases: []string{"reg"}, Doc: "List non-empty macro registers", fn: cmdRegisters},
		{Name: "search", Doc: "Prompt for a search pattern", fn: cmdSearch},
	} {
		registerTypable(tc)
	}
}

// LookupTypable returns the ':' command with the given name or alias.
func LookupTypable(name string) (*TypableCommand, bool) {
	tc, ok := typables[name]
	return tc, ok
}

func (d *Dispatcher) runTypable(c command.Typable, count int) error {
	tc, ok := typables[c.Command]
	if !ok {
		d.setMessage("unknown command: %s", c.Command)
		return nil
	}
	d.log.Debug("command %s %v", tc.Name, c.Args)

	err := tc.fn(d, c.Args, count)
	switch {
	case err == nil, errors.Is(err, ErrQuit):
		return err
	case errors.Is(err, ErrMacroDepth):
		return err
	}
	// Command failures are reported on the status line; they do not end
	// the session.
	d.log.Warn("%s: %v", tc.Name, err)
	d.setMessage("%s: %v", tc.Name, err)
	return nil
}

func cmdWrite(d *Dispatcher, args []string, _ int) error {
	path := d.path
	if len(args) > 0 {
		path = strings.Join(args, " ")
	}
	return d.writeFile(path)
}

func cmdQuit(d *Dispatcher, _ []string, _ int) error {
	if d.buf.IsModified() {
		return fmt.Errorf("%w (add ! to override)", ErrUnsavedChanges)
	}
	return ErrQuit
}

func cmdForceQuit(*Dispatcher, []string, int) error {
	return ErrQuit
}

func cmdWriteQuit(d *Dispatcher, args []string, count int) error {
	if err := cmdWrite(d, args, count); err != nil {
		return err
	}
	return ErrQuit
}

func registerArg(args []string) (byte, error) {
	if len(args) != 1 || len(args[0]) != 1 {
		return 0, fmt.Errorf("%w: want one register", ErrBadArguments)
	}
	return args[0][0], nil
}

func cmdRecord(d *Dispatcher, args []string, _ int) error {
	reg, err := registerArg(args)
	if err != nil {
		return err
	}
	if err := d.recorder.StartRecording(reg); err != nil {
		return NewOperationError("record", string(reg), err)
	}
	d.setMessage("recording @%c", macro.NormalizeRegister(reg))
	return nil
}

func cmdPlay(d *Dispatcher, args []string, count int) error {
	reg, err := registerArg(args)
	if err != nil {
		return err
	}

	replay := func(k key.Key) error { return d.handle(d.ctx, k, true) }
	if reg == '@' {
		err = d.player.PlayLast(d.ctx, count, replay)
	} else {
		err = d.player.Play(d.ctx, reg, count, replay)
	}
	if errors.Is(err, macro.ErrAlreadyPlaying) {
		return fmt.Errorf("%w: %v", ErrMacroDepth, err)
	}
	if err != nil {
		return NewOperationError("play", string(reg), err)
	}
	return nil
}

func cmdRegisters(d *Dispatcher, _ []string, _ int) error {
	regs := d.recorder.ListRegisters()
	if len(regs) == 0 {
		d.setMessage("no macros")
		return nil
	}
	parts := make([]string, 0, len(regs))
	for _, r := range regs {
		parts = append(parts, fmt.Sprintf("@%c %s", r, d.recorder.Get(r)))
	}
	d.setMessage("%s", strings.Join(parts, "  "))
	return nil
}

// cmdSearch opens the search prompt. Args are a direction and, for an
// operator search such as "d/", the operator keys.
func cmdSearch(d *Dispatcher, args []string, count int) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: search forward|backward [operator]", ErrBadArguments)
	}

	s := &search{count: count}
	switch args[0] {
	case "forward":
	case "backward":
		s.backward = true
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrBadArguments, args[0])
	}
	if len(args) == 2 {
		op, err := command.ParseMotionType(args[1])
		if err != nil {
			return err
		}
		s.op, s.hasOp = op, true
	}

	if err := d.SwitchMode(mode.ModeCommand); err != nil {
		return err
	}
	d.search = s
	return nil
}

// runSearch finishes a search prompt. An empty pattern repeats the last
// search.
func (d *Dispatcher) runSearch(s *search, pattern string) error {
	if pattern == "" {
		pattern = d.lastSearch
	}
	if pattern == "" {
		d.setMessage("no previous search pattern")
		return nil
	}
	d.lastSearch = pattern

	kind := command.SearchForward
	if s.backward {
		kind = command.SearchBackward
	}

	if s.hasOp {
		if !printable(pattern) {
			d.setMessage("search pattern must be printable ASCII")
			return nil
		}
		m := command.OperatedRange{Op: s.op, Range: command.Search(kind, pattern)}
		if s.count > 1 {
			m.Count = s.count
		}
		return d.execute(command.MotionCommand{Motion: m}, s.count, false)
	}

	at, ok := d.find(pattern, s.backward, s.count)
	if !ok {
		d.setMessage("pattern not found: %s", pattern)
		return nil
	}
	d.cursor = at
	return nil
}

// find locates the count-th match from the cursor, wrapping around the
// end of the buffer.
func (d *Dispatcher) find(pattern string, backward bool, count int) (int, bool) {
	pos := d.cursor
	for i := 0; i < max(count, 1); i++ {
		var at int
		var ok bool
		if backward {
			at, ok = d.buf.FindBackward(pattern, pos)
			if !ok {
				at, ok = d.buf.FindBackward(pattern, d.buf.Len()+1)
			}
		} else {
			at, ok = d.buf.Find(pattern, pos+1)
			if !ok {
				at, ok = d.buf.Find(pattern, 0)
			}
		}
		if !ok {
			return 0, false
		}
		pos = at
	}
	return pos, true
}

func printable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}
