package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/input/key"
)

// terminal draws a session on a tcell screen.
type terminal struct {
	screen tcell.Screen
	top    int
}

func newTerminal() (*terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	return &terminal{screen: screen}, nil
}

func (t *terminal) shutdown() {
	t.screen.Fini()
}

// interactive runs the editing loop until the session quits or ctx is done.
func interactive(ctx context.Context, s *app.Session) error {
	t, err := newTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	defer t.shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := s.Watch(ctx); err != nil {
			app.GetLogger().Warn("keymap watcher stopped: %v", err)
		}
	}()

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	reloads := s.Reloads()
	t.draw(s.Dispatcher())
	for {
		select {
		case <-ctx.Done():
			return nil

		case r, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			s.ApplyReload(r)

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				k, ok := key.FromTcell(ev)
				if !ok {
					continue
				}
				if err := s.HandleKey(ctx, k); err != nil {
					return err
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		}
		t.draw(s.Dispatcher())
	}
}

func (t *terminal) draw(d *app.Dispatcher) {
	t.screen.Clear()
	width, height := t.screen.Size()
	rows := height - 1
	if rows < 1 || width < 1 {
		t.screen.Show()
		return
	}

	buf := d.Buffer()
	st := d.Status()
	if st.Cursor.Line < t.top {
		t.top = st.Cursor.Line
	}
	if st.Cursor.Line >= t.top+rows {
		t.top = st.Cursor.Line - rows + 1
	}

	cursorX, cursorY := 0, 0
	for row := 0; row < rows; row++ {
		line := t.top + row
		if line >= buf.LineCount() {
			t.put(0, row, "~", tcell.StyleDefault.Dim(true))
			continue
		}
		text, err := buf.LineText(line)
		if err != nil {
			continue
		}
		col := expandTabs(text, buf.TabWidth())
		t.put(0, row, col, tcell.StyleDefault)
		if line == st.Cursor.Line {
			cursorX = visualColumn(text, st.Cursor.Column, buf.TabWidth())
			cursorY = row
		}
	}

	status := statusLine(st)
	t.put(0, rows, status, tcell.StyleDefault.Reverse(true))
	for x := len(status); x < width; x++ {
		t.screen.SetContent(x, rows, ' ', nil, tcell.StyleDefault.Reverse(true))
	}

	if st.CommandLine != "" {
		t.screen.ShowCursor(len(st.CommandLine), rows)
	} else {
		t.screen.ShowCursor(cursorX, cursorY)
	}
	t.screen.Show()
}

func (t *terminal) put(x, y int, s string, style tcell.Style) {
	for i := 0; i < len(s); i++ {
		c := rune(s[i])
		if c < 0x20 || c > 0x7E {
			c = '?'
		}
		t.screen.SetContent(x+i, y, c, nil, style)
	}
}

// statusLine renders the status bar. The command line replaces it while
// one is being typed.
func statusLine(st app.Status) string {
	if st.CommandLine != "" {
		return st.CommandLine
	}
	line := fmt.Sprintf(" %s ", st.Mode)
	if st.Recording != 0 {
		line += fmt.Sprintf("recording @%c ", st.Recording)
	}
	if st.Modified {
		line += "[+] "
	}
	line += fmt.Sprintf("%d:%d", st.Cursor.Line+1, st.Cursor.Column+1)
	if st.Pending != "" {
		line += "  " + st.Pending
	}
	if st.Message != "" {
		line += "  " + st.Message
	}
	return line
}

func expandTabs(s string, width int) string {
	if width < 1 {
		width = 1
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\t' {
			n := width - len(out)%width
			for j := 0; j < n; j++ {
				out = append(out, ' ')
			}
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

func visualColumn(s string, col, width int) int {
	if col > len(s) {
		col = len(s)
	}
	return len(expandTabs(s[:col], width))
}

