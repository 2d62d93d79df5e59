package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dshills/quill/internal/command"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/input/keymap"
	"github.com/dshills/quill/internal/input/macro"
	"github.com/dshills/quill/internal/input/mode"
)

// Evaluator applies resolved motions to the editor state.
type Evaluator interface {
	Evaluate(ctx context.Context, cmd command.MotionCommand) error
}

// NopEvaluator accepts every motion and changes nothing.
type NopEvaluator struct{}

// Evaluate implements Evaluator.
func (NopEvaluator) Evaluate(context.Context, command.MotionCommand) error { return nil }

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ctx context.Context, cmd command.MotionCommand) error

// Evaluate implements Evaluator.
func (f EvaluatorFunc) Evaluate(ctx context.Context, cmd command.MotionCommand) error {
	return f(ctx, cmd)
}

// DispatcherOptions configures a Dispatcher. Nil fields get defaults.
type DispatcherOptions struct {
	Buffer    *buffer.Buffer
	Path      string
	Modes     *mode.Manager
	Recorder  *macro.Recorder
	Evaluator Evaluator
	Logger    *Logger
}

// search is a search prompt waiting for its pattern.
type search struct {
	backward bool
	op       command.MotionType
	hasOp    bool
	count    int
}

// Dispatcher feeds keys through the mode manager and carries out the
// resulting commands. It implements command.Env. It is not safe for
// concurrent use.
type Dispatcher struct {
	buf      *buffer.Buffer
	path     string
	modes    *mode.Manager
	recorder *macro.Recorder
	player   *macro.Player
	eval     Evaluator
	log      *Logger

	// ctx is the context of the key being handled.
	ctx context.Context

	cursor     int
	cmdline    strings.Builder
	search     *search
	lastSearch string
	message    string
	depth      int
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	d := &Dispatcher{
		buf:      opts.Buffer,
		path:     opts.Path,
		modes:    opts.Modes,
		recorder: opts.Recorder,
		eval:     opts.Evaluator,
		log:      opts.Logger,
		ctx:      context.Background(),
	}
	if d.buf == nil {
		d.buf = buffer.NewBuffer()
	}
	if d.modes == nil {
		d.modes = mode.NewManager(keymap.Defaults())
	}
	if d.recorder == nil {
		d.recorder = macro.NewRecorder()
	}
	if d.eval == nil {
		d.eval = NopEvaluator{}
	}
	if d.log == nil {
		d.log = GetLogger().WithComponent("dispatcher")
	}
	d.player = macro.NewPlayer(d.recorder)

	d.modes.Parser().SetTrace(func(res keymap.Result) {
		if res.Status != keymap.StatusIncomplete {
			d.log.Debug("keys %s: %s", res.Keys, res.Status)
		}
	})
	d.modes.OnChange(func(from, to mode.Mode) {
		d.log.Debug("mode %s -> %s", from.Name, to.Name)
	})
	return d
}

// Buffer returns the edited buffer.
func (d *Dispatcher) Buffer() *buffer.Buffer { return d.buf }

// Modes returns the mode manager.
func (d *Dispatcher) Modes() *mode.Manager { return d.modes }

// Recorder returns the macro registers.
func (d *Dispatcher) Recorder() *macro.Recorder { return d.recorder }

// Cursor returns the cursor byte offset.
func (d *Dispatcher) Cursor() int { return d.cursor }

// SetCursor moves the cursor, clamped to the buffer.
func (d *Dispatcher) SetCursor(offset int) {
	d.cursor = max(0, min(offset, d.buf.Len()))
}

// SetCursorPoint moves the cursor to a line and column. Positions past a
// line end or past the last line are clamped.
func (d *Dispatcher) SetCursorPoint(p buffer.Point) error {
	off, err := d.buf.PointToOffset(p)
	if err != nil {
		return err
	}
	d.cursor = off
	return nil
}

// Path returns the file the buffer is written to.
func (d *Dispatcher) Path() string { return d.path }

// HandleKey processes one key typed by the user. It returns ErrQuit when
// the session should end.
func (d *Dispatcher) HandleKey(ctx context.Context, k key.Key) error {
	err := d.handle(ctx, k, false)
	if errors.Is(err, ErrMacroDepth) {
		d.log.Warn("%v", err)
		d.setMessage("%v", err)
		return nil
	}
	return err
}

func (d *Dispatcher) handle(ctx context.Context, k key.Key, replay bool) error {
	if !k.IsValid() {
		return nil
	}
	prev := d.ctx
	d.ctx = ctx
	defer func() { d.ctx = prev }()

	if !replay && d.recorder.IsRecording() {
		if k == 'q' && d.modes.CurrentName() == mode.ModeNormal && d.modes.Parser().AtRoot() {
			reg := d.recorder.CurrentRegister()
			keys := d.recorder.StopRecording()
			d.setMessage("recorded @%c (%d keys)", reg, len(keys))
			return nil
		}
		d.recorder.Record(k)
	}

	if d.modes.SelfInserts(k) {
		return d.InsertText(string(k.Byte()))
	}

	res := d.modes.Feed(k)
	switch res.Status {
	case keymap.StatusIncomplete:
		return nil
	case keymap.StatusError:
		d.setMessage("no binding for %s", res.Keys)
		return nil
	}

	count := 1
	if res.HasCount {
		count = res.Count
	}
	return d.execute(res.Command, count, res.HasCount)
}

func (d *Dispatcher) execute(cmd command.EditorCommand, count int, hasCount bool) error {
	switch c := cmd.(type) {
	case command.Static:
		return c.Fn(d)

	case command.Typable:
		return d.runTypable(c, count)

	case command.MotionCommand:
		m := c.Motion
		if hasCount {
			m = command.WithCount(m, count)
		}
		d.log.Debug("motion %s", m.AsKey())
		return d.eval.Evaluate(d.ctx, command.MotionCommand{Motion: m})

	case command.Macro:
		return d.playKeys(c.Keys, count)
	}
	return fmt.Errorf("%w: %v", ErrUnknownCommand, cmd)
}

// playKeys replays an inline key sequence count times.
func (d *Dispatcher) playKeys(keys key.Sequence, count int) error {
	if d.depth >= macro.MaxDepth {
		return ErrMacroDepth
	}
	d.depth++
	defer func() { d.depth-- }()

	ctx := d.ctx
	for i := 0; i < count; i++ {
		for _, k := range keys {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := d.handle(ctx, k, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// Env implementation.

// SwitchMode implements command.Env.
func (d *Dispatcher) SwitchMode(name string) error {
	from := d.modes.CurrentName()
	if err := d.modes.Switch(name); err != nil {
		return err
	}
	if from == mode.ModeCommand || name == mode.ModeCommand {
		d.cmdline.Reset()
	}
	if name != mode.ModeCommand {
		d.search = nil
	}
	return nil
}

// InsertText implements command.Env. In command mode the text goes to the
// command line; otherwise it is inserted into the buffer at the cursor.
func (d *Dispatcher) InsertText(text string) error {
	if d.modes.CurrentName() == mode.ModeCommand {
		d.cmdline.WriteString(text)
		return nil
	}
	return d.edit(buffer.InsertAt(d.cursor, text))
}

// Backspace implements command.Env. It removes the whole UTF-8 sequence
// before the cursor. Backspace on an empty command line leaves command
// mode.
func (d *Dispatcher) Backspace() error {
	if d.modes.CurrentName() == mode.ModeCommand {
		line := d.cmdline.String()
		if line == "" {
			return d.SwitchMode(mode.ModeNormal)
		}
		d.cmdline.Reset()
		d.cmdline.WriteString(line[:len(line)-1])
		return nil
	}
	if d.cursor == 0 {
		return nil
	}
	before, err := d.buf.TextRange(max(0, d.cursor-utf8.UTFMax), d.cursor)
	if err != nil {
		return err
	}
	_, size := utf8.DecodeLastRuneInString(before)
	return d.edit(buffer.DeleteRange(d.cursor-size, d.cursor))
}

// edit applies e and leaves the cursor after the inserted text.
func (d *Dispatcher) edit(e buffer.Edit) error {
	res, err := d.buf.ApplyEdit(e)
	if err != nil {
		return err
	}
	d.cursor = res.Inserted.End
	d.log.Debug("%s (%+d bytes)", res.Edit, res.Delta())
	return nil
}

// Submit implements command.Env. It runs the command line and returns to
// normal mode.
func (d *Dispatcher) Submit() error {
	line := d.cmdline.String()
	pending := d.search
	if err := d.SwitchMode(mode.ModeNormal); err != nil {
		return err
	}

	if pending != nil {
		return d.runSearch(pending, line)
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return d.runTypable(command.Typable{Command: fields[0], Args: fields[1:]}, 1)
}

// Status is a snapshot of what the status line shows.
type Status struct {
	Mode        string
	Pending     string
	Recording   byte
	CommandLine string
	Cursor      buffer.Point
	Modified    bool
	Message     string
}

// Status returns the current status.
func (d *Dispatcher) Status() Status {
	st := Status{
		Mode:      d.modes.Current().DisplayName,
		Pending:   d.modes.Parser().Pending().String(),
		Recording: d.recorder.CurrentRegister(),
		Modified:  d.buf.IsModified(),
		Message:   d.message,
	}
	if d.modes.CurrentName() == mode.ModeCommand {
		prompt := ":"
		if d.search != nil {
			prompt = "/"
			if d.search.backward {
				prompt = "?"
			}
		}
		st.CommandLine = prompt + d.cmdline.String()
	}
	if p, err := d.buf.OffsetToPoint(d.cursor); err == nil {
		st.Cursor = p
	}
	return st
}

func (d *Dispatcher) setMessage(format string, args ...any) {
	d.message = fmt.Sprintf(format, args...)
}

// writeFile writes the buffer to path through a temporary file. An existing
// file keeps its permissions; a new one gets 0644.
func (d *Dispatcher) writeFile(path string) error {
	if path == "" {
		return NewOperationError("write", "", ErrNoFileName)
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return NewOperationError("write", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return NewOperationError("write", path, err)
	}
	if _, err := d.buf.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return NewOperationError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return NewOperationError("write", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return NewOperationError("write", path, err)
	}

	d.buf.MarkSaved()
	d.path = path
	d.log.Info("wrote %s", path)
	d.setMessage("%q written, %d bytes", path, d.buf.Len())
	return nil
}
