package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// aliases are the bracketed names accepted besides <Del> and <C-X>.
var aliases = map[string]Key{
	"del":    KeyDel,
	"esc":    KeyEscape,
	"cr":     KeyEnter,
	"enter":  KeyEnter,
	"return": KeyEnter,
	"nl":     KeyNewline,
	"tab":    KeyTab,
	"bs":     KeyBackspace,
	"space":  KeySpace,
	"nul":    KeyNull,
	"lt":     '<',
	"bar":    '|',
	"bslash": '\\',
}

// parseToken resolves the inside of a bracketed key such as "C-[" or "Del".
func parseToken(inner string) (Key, bool) {
	if len(inner) == 3 && (inner[0] == 'C' || inner[0] == 'c') && inner[1] == '-' {
		return Ctrl(inner[2])
	}
	k, ok := aliases[strings.ToLower(inner)]
	return k, ok
}

// Parse parses the notation for a single key.
//
// Supported formats:
//   - Single printable character: "a", "$", "<"
//   - Delete: "<Del>"
//   - Control: "<C-[>", "<C-m>"
//   - Aliases: "<Esc>", "<CR>", "<Tab>", "<BS>", "<Space>", "<lt>"
func Parse(spec string) (Key, error) {
	if spec == "" {
		return KeyNull, ErrEmptySpec
	}
	if len(spec) == 1 {
		k := FromByte(spec[0])
		if !k.IsPrintable() {
			return KeyNull, fmt.Errorf("%w: %q is not printable", ErrInvalidSpec, spec)
		}
		return k, nil
	}
	if spec[0] == '<' && spec[len(spec)-1] == '>' {
		if k, ok := parseToken(spec[1 : len(spec)-1]); ok {
			return k, nil
		}
	}
	return KeyNull, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// MustParse is like Parse but panics on error.
func MustParse(spec string) Key {
	k, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return k
}

// ParseSequence parses a run of key notation, such as "d<C-[>gg", into keys.
// A '<' that does not open a valid bracketed key is a literal '<'.
func ParseSequence(s string) (Sequence, error) {
	if s == "" {
		return nil, ErrEmptySpec
	}

	seq := make(Sequence, 0, len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c == '<' {
			if j := strings.IndexByte(s[i+1:], '>'); j >= 0 {
				if k, ok := parseToken(s[i+1 : i+1+j]); ok {
					seq = append(seq, k)
					i += j + 2
					continue
				}
			}
		}
		k := FromByte(c)
		if !k.IsPrintable() {
			return nil, fmt.Errorf("%w: byte 0x%02x at %d", ErrInvalidSpec, c, i)
		}
		seq = append(seq, k)
		i++
	}
	return seq, nil
}

// MustParseSequence is like ParseSequence but panics on error.
// Use only for static binding tables.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// FormatSequence renders keys in canonical notation. A literal '<' is
// written as "<lt>" only where it would otherwise open a bracketed key.
func FormatSequence(keys []Key) string {
	parts := make([]string, len(keys))
	suffix := ""
	for i := len(keys) - 1; i >= 0; i-- {
		part := keys[i].String()
		if keys[i] == '<' && opensToken(suffix) {
			part = "<lt>"
		}
		parts[i] = part
		suffix = part + suffix
	}
	return strings.Join(parts, "")
}

// opensToken reports whether a '<' placed before rest would be read as the
// start of a bracketed key.
func opensToken(rest string) bool {
	j := strings.IndexByte(rest, '>')
	if j < 0 {
		return false
	}
	_, ok := parseToken(rest[:j])
	return ok
}
