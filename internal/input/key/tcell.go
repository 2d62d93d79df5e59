package key

import "github.com/gdamore/tcell/v2"

// FromTcell converts a terminal key event into a key code. It reports false
// for keys outside the ASCII set, such as arrows, function keys or
// non-ASCII runes, and for Alt combinations.
func FromTcell(ev *tcell.EventKey) (Key, bool) {
	if ev.Modifiers()&tcell.ModAlt != 0 {
		return KeyNull, false
	}

	switch tk := ev.Key(); {
	case tk == tcell.KeyRune:
		r := ev.Rune()
		if r < 0 || r >= NumKeys {
			return KeyNull, false
		}
		return FromRune(r), true
	case tk == tcell.KeyDelete:
		return KeyDel, true
	case tk >= 0 && tk < NumKeys:
		// tcell reports control keys with their ASCII codes.
		return Key(tk), true
	default:
		return KeyNull, false
	}
}
