package key

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Key
		ok   bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 'x', true},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), 'X', true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), KeyEscape, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), KeyEnter, true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), KeyTab, true},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), KeyDel, true},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), KeyDel, true},
		{"non-ascii rune", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), KeyNull, false},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), KeyNull, false},
		{"alt", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), KeyNull, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromTcell(tt.ev)
			if got != tt.want || ok != tt.ok {
				t.Errorf("FromTcell = 0x%02x, %v; want 0x%02x, %v", byte(got), ok, byte(tt.want), tt.ok)
			}
		})
	}
}
