package key

// Key is an ASCII key code.
type Key uint8

// NumKeys is the size of the key code set.
const NumKeys = 128

// Named key codes. Every other code in [0, NumKeys) is a valid Key too.
const (
	KeyNull      Key = 0x00
	KeyBackspace Key = 0x08
	KeyTab       Key = 0x09
	KeyNewline   Key = 0x0A
	KeyEnter     Key = 0x0D
	KeyEscape    Key = 0x1B
	KeySpace     Key = 0x20
	KeyDel       Key = 0x7F
)

// FromByte returns the key for b. Any value outside the ASCII range maps
// to KeyNull.
func FromByte(b byte) Key {
	if b >= NumKeys {
		return KeyNull
	}
	return Key(b)
}

// FromRune returns the key for r, or KeyNull if r is not ASCII.
func FromRune(r rune) Key {
	if r < 0 || r >= NumKeys {
		return KeyNull
	}
	return Key(r)
}

// Ctrl returns the control key produced by holding Ctrl with c, where c is
// in '@'..'_' or a lowercase letter. It reports false for any other c.
func Ctrl(c byte) (Key, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < '@' || c > '_' {
		return KeyNull, false
	}
	return Key(c & 0x1F), true
}

// Byte returns the key code as a byte.
func (k Key) Byte() byte {
	return byte(k)
}

// IsValid returns true if k is inside the key code set.
func (k Key) IsValid() bool {
	return k < NumKeys
}

// IsPrintable returns true for the printable ASCII range, space included.
func (k Key) IsPrintable() bool {
	return k >= 0x20 && k <= 0x7E
}

// IsControl returns true for C0 control codes and delete.
func (k Key) IsControl() bool {
	return k < 0x20 || k == KeyDel
}

// IsDigit returns true for '0'..'9'.
func (k Key) IsDigit() bool {
	return k >= '0' && k <= '9'
}

// Digit returns the numeric value of a digit key, or -1.
func (k Key) Digit() int {
	if !k.IsDigit() {
		return -1
	}
	return int(k - '0')
}

// IsLetter returns true for ASCII letters.
func (k Key) IsLetter() bool {
	return (k >= 'a' && k <= 'z') || (k >= 'A' && k <= 'Z')
}

// String returns the canonical notation for k.
func (k Key) String() string {
	switch {
	case k.IsPrintable():
		return string(rune(k))
	case k == KeyDel:
		return "<Del>"
	case k < 0x20:
		return "<C-" + string(rune(k|0x40)) + ">"
	default:
		return "<Null>"
	}
}

// Printable returns every printable key in code order.
func Printable() []Key {
	keys := make([]Key, 0, 0x7F-0x20)
	for k := Key(0x20); k <= 0x7E; k++ {
		keys = append(keys, k)
	}
	return keys
}
