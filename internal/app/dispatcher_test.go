package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dshills/quill/internal/command"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/input/keymap"
	"github.com/dshills/quill/internal/input/mode"
)

func newTestDispatcher(t *testing.T, text string) *Dispatcher {
	t.Helper()
	return NewDispatcher(DispatcherOptions{
		Buffer: buffer.NewBufferFromString(text),
		Logger: NullLogger,
	})
}

// typeKeys feeds notation such as "ihello<C-[>" and returns the first error.
func typeKeys(t *testing.T, d *Dispatcher, notation string) error {
	t.Helper()
	for _, k := range key.MustParseSequence(notation) {
		if err := d.HandleKey(context.Background(), k); err != nil {
			return err
		}
	}
	return nil
}

func mustType(t *testing.T, d *Dispatcher, notation string) {
	t.Helper()
	if err := typeKeys(t, d, notation); err != nil {
		t.Fatalf("typing %q: %v", notation, err)
	}
}

func TestDispatcherInsertMode(t *testing.T) {
	d := newTestDispatcher(t, "")

	mustType(t, d, "ihello<C-M>world<C-[>")
	if got := d.Buffer().Text(); got != "hello\nworld" {
		t.Errorf("Text() = %q", got)
	}
	if d.Modes().CurrentName() != mode.ModeNormal {
		t.Errorf("mode = %s, want normal", d.Modes().CurrentName())
	}
	if d.Cursor() != 11 {
		t.Errorf("Cursor() = %d, want 11", d.Cursor())
	}

	mustType(t, d, "i<Del><Del><C-I><C-[>")
	if got := d.Buffer().Text(); got != "hello\nwor\t" {
		t.Errorf("after backspace and tab: %q", got)
	}
}

func TestDispatcherBackspaceAtStart(t *testing.T) {
	d := newTestDispatcher(t, "abc")
	mustType(t, d, "i<Del><C-[>")
	if d.Buffer().Text() != "abc" || d.Cursor() != 0 {
		t.Errorf("Text() = %q, Cursor() = %d", d.Buffer().Text(), d.Cursor())
	}
}

func TestDispatcherBackspaceMultiByte(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		want   string
	}{
		{"two byte", "é!", 2, "!"},
		{"three byte", "a€b", 4, "ab"},
		{"four byte", "x😀", 5, "x"},
		{"ascii after rune", "éa", 3, "é"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDispatcher(t, tt.text)
			d.SetCursor(tt.cursor)
			mustType(t, d, "i<Del><C-[>")
			got := d.Buffer().Text()
			if got != tt.want || !utf8.ValidString(got) {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if d.Cursor() != tt.cursor-(len(tt.text)-len(tt.want)) {
				t.Errorf("Cursor() = %d", d.Cursor())
			}
		})
	}
}

func TestDispatcherBackspaceAfterSearch(t *testing.T) {
	d := newTestDispatcher(t, "é!")
	mustType(t, d, "/!<C-M>i<Del>")
	if d.Buffer().Text() != "!" || d.Cursor() != 0 {
		t.Errorf("Text() = %q, Cursor() = %d", d.Buffer().Text(), d.Cursor())
	}
}

func TestDispatcherSetCursorPoint(t *testing.T) {
	d := newTestDispatcher(t, "ab\ncdef\ng")
	tests := []struct {
		point buffer.Point
		want  int
	}{
		{buffer.Point{Line: 1, Column: 2}, 5},
		{buffer.Point{Line: 0, Column: 9}, 2},
		{buffer.Point{Line: 7}, 9},
	}
	for _, tt := range tests {
		if err := d.SetCursorPoint(tt.point); err != nil || d.Cursor() != tt.want {
			t.Errorf("SetCursorPoint(%v) -> %d, %v, want %d", tt.point, d.Cursor(), err, tt.want)
		}
	}
	if err := d.SetCursorPoint(buffer.Point{Line: -1}); !errors.Is(err, buffer.ErrInvalidOffset) {
		t.Errorf("negative line = %v", err)
	}
}

func TestDispatcherCommandLine(t *testing.T) {
	d := newTestDispatcher(t, "")

	mustType(t, d, ":reg")
	st := d.Status()
	if st.Mode != "COMMAND" || st.CommandLine != ":reg" {
		t.Errorf("status = %+v", st)
	}

	mustType(t, d, "<C-M>")
	st = d.Status()
	if st.Mode != "NORMAL" || st.CommandLine != "" {
		t.Errorf("after submit: %+v", st)
	}
	if st.Message != "no macros" {
		t.Errorf("Message = %q", st.Message)
	}

	mustType(t, d, ":frob<C-M>")
	if d.Status().Message != "unknown command: frob" {
		t.Errorf("Message = %q", d.Status().Message)
	}
}

func TestDispatcherCommandLineBackspace(t *testing.T) {
	d := newTestDispatcher(t, "")

	mustType(t, d, ":ab<Del>")
	if d.Status().CommandLine != ":a" {
		t.Errorf("CommandLine = %q", d.Status().CommandLine)
	}
	mustType(t, d, "<Del><Del>")
	if d.Modes().CurrentName() != mode.ModeNormal {
		t.Error("backspace on an empty command line should leave command mode")
	}

	mustType(t, d, ":q<C-[>")
	if d.Modes().CurrentName() != mode.ModeNormal || d.Status().CommandLine != "" {
		t.Error("escape should abandon the command line")
	}
}

func TestDispatcherWriteAndQuit(t *testing.T) {
	d := newTestDispatcher(t, "")
	path := filepath.Join(t.TempDir(), "out.txt")

	mustType(t, d, "ione<C-M>two<C-[>")
	if err := typeKeys(t, d, ":q<C-M>"); err != nil {
		t.Fatalf(":q with changes returned %v", err)
	}
	if !strings.Contains(d.Status().Message, "unsaved changes") {
		t.Errorf("Message = %q", d.Status().Message)
	}

	mustType(t, d, ":w "+path+"<C-M>")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "one\ntwo" {
		t.Errorf("file = %q", data)
	}
	if d.Path() != path || d.Buffer().IsModified() {
		t.Errorf("Path() = %q, modified %v", d.Path(), d.Buffer().IsModified())
	}

	if err := typeKeys(t, d, ":q<C-M>"); !errors.Is(err, ErrQuit) {
		t.Errorf(":q after write = %v", err)
	}
}

func TestDispatcherWriteKeepsMode(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.txt")
	if err := os.WriteFile(existing, []byte("old"), 0o640); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(existing, 0o640); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want os.FileMode
	}{
		{existing, 0o640},
		{filepath.Join(dir, "new.txt"), 0o644},
	}
	for _, tt := range tests {
		d := newTestDispatcher(t, "body")
		mustType(t, d, ":w "+tt.path+"<C-M>")
		info, err := os.Stat(tt.path)
		if err != nil {
			t.Fatalf("stat %s: %v", tt.path, err)
		}
		if got := info.Mode().Perm(); got != tt.want {
			t.Errorf("%s mode = %o, want %o", filepath.Base(tt.path), got, tt.want)
		}
	}
}

func TestDispatcherForceQuit(t *testing.T) {
	d := newTestDispatcher(t, "")
	mustType(t, d, "ix<C-[>")
	if err := typeKeys(t, d, ":q!<C-M>"); !errors.Is(err, ErrQuit) {
		t.Errorf(":q! = %v", err)
	}
}

func TestDispatcherWriteWithoutPath(t *testing.T) {
	d := newTestDispatcher(t, "abc")
	mustType(t, d, ":w<C-M>")
	if !strings.Contains(d.Status().Message, "no file name") {
		t.Errorf("Message = %q", d.Status().Message)
	}
}

func TestDispatcherMotionsReachEvaluator(t *testing.T) {
	var got []command.Motion
	d := NewDispatcher(DispatcherOptions{
		Logger: NullLogger,
		Evaluator: EvaluatorFunc(func(_ context.Context, cmd command.MotionCommand) error {
			got = append(got, cmd.Motion)
			return nil
		}),
	})

	mustType(t, d, "3dwjdiw")

	want := []command.Motion{
		command.OperatedNavigation{Op: command.Delete, Nav: command.WordForward, Count: 3},
		command.NavigationOnly{Nav: command.LineForward},
		command.OperatedRange{Op: command.Delete, Range: command.InsideOf(command.WordScope)},
	}
	if len(got) != len(want) {
		t.Fatalf("evaluated %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("motion %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDispatcherEvaluatorError(t *testing.T) {
	boom := errors.New("boom")
	d := NewDispatcher(DispatcherOptions{
		Logger: NullLogger,
		Evaluator: EvaluatorFunc(func(context.Context, command.MotionCommand) error {
			return boom
		}),
	})
	if err := typeKeys(t, d, "w"); !errors.Is(err, boom) {
		t.Errorf("HandleKey = %v", err)
	}
}

func TestDispatcherUnboundKeys(t *testing.T) {
	d := newTestDispatcher(t, "")
	mustType(t, d, "Z")
	if d.Status().Message != "no binding for Z" {
		t.Errorf("Message = %q", d.Status().Message)
	}
	if !d.Modes().Parser().AtRoot() {
		t.Error("parser should be reset after a miss")
	}
}

func TestDispatcherSearch(t *testing.T) {
	d := newTestDispatcher(t, "foo bar foo")

	mustType(t, d, "/foo<C-M>")
	if d.Cursor() != 8 {
		t.Errorf("after /foo cursor = %d, want 8", d.Cursor())
	}
	mustType(t, d, "/<C-M>")
	if d.Cursor() != 0 {
		t.Errorf("repeat search should wrap, cursor = %d", d.Cursor())
	}
	mustType(t, d, "?foo<C-M>")
	if d.Cursor() != 8 {
		t.Errorf("backward search should wrap, cursor = %d", d.Cursor())
	}
	mustType(t, d, "/zzz<C-M>")
	if d.Status().Message != "pattern not found: zzz" || d.Cursor() != 8 {
		t.Errorf("Message = %q cursor %d", d.Status().Message, d.Cursor())
	}
}

func TestDispatcherSearchPrompt(t *testing.T) {
	d := newTestDispatcher(t, "")
	mustType(t, d, "?ab")
	if d.Status().CommandLine != "?ab" {
		t.Errorf("CommandLine = %q", d.Status().CommandLine)
	}
}

func TestDispatcherOperatorSearch(t *testing.T) {
	var got command.Motion
	d := NewDispatcher(DispatcherOptions{
		Logger: NullLogger,
		Evaluator: EvaluatorFunc(func(_ context.Context, cmd command.MotionCommand) error {
			got = cmd.Motion
			return nil
		}),
	})

	mustType(t, d, "d/bar<C-M>")
	want := command.OperatedRange{Op: command.Delete, Range: command.Search(command.SearchForward, "bar")}
	if got != want {
		t.Errorf("motion = %v, want %v", got, want)
	}

	mustType(t, d, "2gU?x y<C-M>")
	want = command.OperatedRange{Op: command.Uppercase, Range: command.Search(command.SearchBackward, "x y"), Count: 2}
	if got != want {
		t.Errorf("motion = %v, want %v", got, want)
	}
}

func TestDispatcherMacroRecordAndPlay(t *testing.T) {
	d := newTestDispatcher(t, "")

	mustType(t, d, "qaix<C-[>")
	if d.Status().Recording != 'a' {
		t.Fatalf("Recording = %q", d.Status().Recording)
	}
	mustType(t, d, "q")
	if d.Status().Recording != 0 {
		t.Fatal("q should stop recording")
	}
	if got := d.Recorder().Get('a').String(); got != "ix<C-[>" {
		t.Fatalf("register a = %q", got)
	}

	mustType(t, d, "@a")
	if d.Buffer().Text() != "xx" {
		t.Errorf("after @a: %q", d.Buffer().Text())
	}
	mustType(t, d, "2@a")
	if d.Buffer().Text() != "xxxx" {
		t.Errorf("after 2@a: %q", d.Buffer().Text())
	}
	mustType(t, d, "@@")
	if d.Buffer().Text() != "xxxxx" {
		t.Errorf("after @@: %q", d.Buffer().Text())
	}
	if d.Recorder().Get('a').String() != "ix<C-[>" {
		t.Error("playback should not change the register")
	}
}

func TestDispatcherRecordingKeepsInsertedQ(t *testing.T) {
	d := newTestDispatcher(t, "")
	mustType(t, d, "qbiq<C-[>q")
	if got := d.Recorder().Get('b').String(); got != "iq<C-[>" {
		t.Errorf("register b = %q", got)
	}
	if d.Buffer().Text() != "q" {
		t.Errorf("Text() = %q", d.Buffer().Text())
	}
}

func TestDispatcherPlayEmptyRegister(t *testing.T) {
	d := newTestDispatcher(t, "")
	mustType(t, d, "@z")
	if !strings.Contains(d.Status().Message, "empty register") {
		t.Errorf("Message = %q", d.Status().Message)
	}
}

func TestDispatcherRecursiveMacroIsBounded(t *testing.T) {
	d := newTestDispatcher(t, "")
	if err := d.Recorder().Set('a', key.MustParseSequence("ix<C-[>@a")); err != nil {
		t.Fatal(err)
	}

	if err := typeKeys(t, d, "@a"); err != nil {
		t.Fatalf("recursive macro returned %v", err)
	}
	if !strings.Contains(d.Status().Message, "macro nesting too deep") {
		t.Errorf("Message = %q", d.Status().Message)
	}
	if d.Buffer().Len() == 0 {
		t.Error("the macro should have run before hitting the limit")
	}
}

func TestDispatcherInlineMacroBinding(t *testing.T) {
	trees := keymap.Defaults()
	if err := trees.Normal.BindNotation("Z", command.Macro{Keys: key.MustParseSequence("ia<C-[>")}); err != nil {
		t.Fatal(err)
	}
	d := NewDispatcher(DispatcherOptions{Modes: mode.NewManager(trees), Logger: NullLogger})

	mustType(t, d, "2Z")
	if d.Buffer().Text() != "aa" {
		t.Errorf("Text() = %q", d.Buffer().Text())
	}
}

func TestDispatcherInlineMacroRecursion(t *testing.T) {
	trees := keymap.Defaults()
	if err := trees.Normal.BindNotation("Z", command.Macro{Keys: key.MustParseSequence("Z")}); err != nil {
		t.Fatal(err)
	}
	d := NewDispatcher(DispatcherOptions{Modes: mode.NewManager(trees), Logger: NullLogger})

	if err := typeKeys(t, d, "Z"); err != nil {
		t.Fatalf("HandleKey = %v", err)
	}
	if !strings.Contains(d.Status().Message, "macro nesting too deep") {
		t.Errorf("Message = %q", d.Status().Message)
	}
}

func TestDispatcherCancelledPlayback(t *testing.T) {
	d := newTestDispatcher(t, "")
	_ = d.Recorder().Set('a', key.MustParseSequence("ix<C-[>"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, k := range key.MustParseSequence("@a") {
		_ = d.HandleKey(ctx, k)
	}
	if d.Buffer().Len() != 0 {
		t.Errorf("cancelled playback inserted %q", d.Buffer().Text())
	}
}

func TestDispatcherStatus(t *testing.T) {
	d := newTestDispatcher(t, "ab\ncd")
	d.SetCursor(4)

	mustType(t, d, "2d")
	st := d.Status()
	if st.Pending != "2d" || st.Cursor != (buffer.Point{Line: 1, Column: 1}) {
		t.Errorf("status = %+v", st)
	}

	d.SetCursor(99)
	if d.Cursor() != 5 {
		t.Errorf("SetCursor should clamp, got %d", d.Cursor())
	}
}

func TestLookupTypable(t *testing.T) {
	for _, name := range []string{"w", "write", "q", "q!", "wq", "x", "record", "play", "reg", "search"} {
		if _, ok := LookupTypable(name); !ok {
			t.Errorf("LookupTypable(%q) missing", name)
		}
	}
	if _, ok := LookupTypable("frob"); ok {
		t.Error("frob should not exist")
	}
}
