package command

import (
	"fmt"
	"strconv"

	"github.com/dshills/quill/internal/input/key"
)

// RangeKind identifies the shape of a Range.
type RangeKind uint8

// Range kinds.
const (
	// Inside selects the inner part of a scope: "i(".
	Inside RangeKind = iota

	// Around selects a scope with its delimiters: "a(".
	Around

	// ForwardTo moves onto the next occurrence of a character: "fx".
	ForwardTo

	// BackwardTo moves onto the previous occurrence of a character: "Fx".
	BackwardTo

	// ForwardTill moves just before the next occurrence: "tx".
	ForwardTill

	// BackwardTill moves just after the previous occurrence: "Tx".
	BackwardTill

	// Word covers a whitespace-delimited word: "W".
	Word

	// Line covers whole lines: "_", or the doubled operator as in "dd".
	Line

	// SearchForward moves to the next match of a pattern: "/foo".
	SearchForward

	// SearchBackward moves to the previous match of a pattern: "?foo".
	SearchBackward

	// Mark moves to a named mark: "`a".
	Mark

	// Percent moves to the matching delimiter of a scope: "%(".
	Percent

	// GoToLine moves to a line number: "12G".
	GoToLine

	// SentenceStart moves to the start of the sentence: "(".
	SentenceStart

	// SentenceEnd moves to the end of the sentence: ")".
	SentenceEnd

	numRangeKinds
)

var rangeKindNames = [numRangeKinds]string{
	Inside:         "Inside",
	Around:         "Around",
	ForwardTo:      "ForwardTo",
	BackwardTo:     "BackwardTo",
	ForwardTill:    "ForwardTill",
	BackwardTill:   "BackwardTill",
	Word:           "Word",
	Line:           "Line",
	SearchForward:  "SearchForward",
	SearchBackward: "SearchBackward",
	Mark:           "Mark",
	Percent:        "Percent",
	GoToLine:       "GoToLine",
	SentenceStart:  "SentenceStart",
	SentenceEnd:    "SentenceEnd",
}

// String returns the kind name.
func (k RangeKind) String() string {
	if k >= numRangeKinds {
		return fmt.Sprintf("RangeKind(%d)", k)
	}
	return rangeKindNames[k]
}

// Range is a targeted motion. Only the fields its Kind uses are set, so
// ranges compare with ==.
type Range struct {
	Kind RangeKind

	// Scope is set for Inside, Around and Percent.
	Scope Scope

	// Char is set for ForwardTo, BackwardTo, ForwardTill and BackwardTill.
	Char key.Key

	// Pattern is set for SearchForward and SearchBackward. It holds
	// printable ASCII only.
	Pattern string

	// Mark is the mark letter for Mark.
	Mark byte

	// Line is the target line for GoToLine. It is not range checked.
	Line int
}

// InsideOf returns the range inside s.
func InsideOf(s Scope) Range { return Range{Kind: Inside, Scope: s} }

// AroundOf returns the range around s.
func AroundOf(s Scope) Range { return Range{Kind: Around, Scope: s} }

// PercentOf returns the matching-delimiter range of s.
func PercentOf(s Scope) Range { return Range{Kind: Percent, Scope: s} }

// FindChar returns a character-search range. kind must be one of ForwardTo,
// BackwardTo, ForwardTill or BackwardTill.
func FindChar(kind RangeKind, c key.Key) Range { return Range{Kind: kind, Char: c} }

// Search returns a pattern search range. kind must be SearchForward or
// SearchBackward.
func Search(kind RangeKind, pattern string) Range { return Range{Kind: kind, Pattern: pattern} }

// MarkAt returns the range to mark m.
func MarkAt(m byte) Range { return Range{Kind: Mark, Mark: m} }

// LineNumber returns the range to line n.
func LineNumber(n int) Range { return Range{Kind: GoToLine, Line: n} }

// Simple returns a range that carries no parameter: Word, Line,
// SentenceStart or SentenceEnd.
func Simple(kind RangeKind) Range { return Range{Kind: kind} }

var charRangeKeys = map[RangeKind]key.Key{
	ForwardTo:    'f',
	BackwardTo:   'F',
	ForwardTill:  't',
	BackwardTill: 'T',
}

// Keys returns the keys that invoke the range.
func (r Range) Keys() key.Sequence {
	switch r.Kind {
	case Inside:
		return key.Sequence{'i', r.Scope.Key()}
	case Around:
		return key.Sequence{'a', r.Scope.Key()}
	case Percent:
		return key.Sequence{'%', r.Scope.Key()}
	case ForwardTo, BackwardTo, ForwardTill, BackwardTill:
		return key.Sequence{charRangeKeys[r.Kind], r.Char}
	case Word:
		return key.Sequence{'W'}
	case Line:
		return key.Sequence{'_'}
	case SearchForward, SearchBackward:
		prefix := key.Key('/')
		if r.Kind == SearchBackward {
			prefix = '?'
		}
		keys := key.Sequence{prefix}
		for i := 0; i < len(r.Pattern); i++ {
			keys = append(keys, key.FromByte(r.Pattern[i]))
		}
		return keys
	case Mark:
		return key.Sequence{'`', key.FromByte(r.Mark)}
	case GoToLine:
		keys := key.Sequence{}
		for _, c := range []byte(strconv.Itoa(r.Line)) {
			keys = append(keys, key.Key(c))
		}
		return append(keys, 'G')
	case SentenceStart:
		return key.Sequence{'('}
	case SentenceEnd:
		return key.Sequence{')'}
	}
	return nil
}

// AsKey returns the key notation that invokes the range.
func (r Range) AsKey() string {
	return r.Keys().String()
}

// String returns a readable description such as "Inside(Parenthesis)".
func (r Range) String() string {
	switch r.Kind {
	case Inside, Around, Percent:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Scope)
	case ForwardTo, BackwardTo, ForwardTill, BackwardTill:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Char)
	case SearchForward, SearchBackward:
		return fmt.Sprintf("%s(%q)", r.Kind, r.Pattern)
	case Mark:
		return fmt.Sprintf("Mark(%c)", r.Mark)
	case GoToLine:
		return fmt.Sprintf("GoToLine(%d)", r.Line)
	}
	return r.Kind.String()
}

// DecodeRange returns the range invoked by exactly keys.
func DecodeRange(keys key.Sequence) (Range, error) {
	bad := fmt.Errorf("%w: %q", ErrUnknownRange, keys.String())
	if len(keys) == 0 {
		return Range{}, bad
	}

	switch first := keys[0]; first {
	case 'i', 'a', '%':
		if len(keys) != 2 {
			return Range{}, bad
		}
		s, err := DecodeScope(keys[1])
		if err != nil {
			return Range{}, bad
		}
		switch first {
		case 'i':
			return InsideOf(s), nil
		case 'a':
			return AroundOf(s), nil
		}
		return PercentOf(s), nil

	case 'f', 'F', 't', 'T':
		if len(keys) != 2 {
			return Range{}, bad
		}
		for kind, k := range charRangeKeys {
			if k == first {
				return FindChar(kind, keys[1]), nil
			}
		}

	case 'W', '_', '(', ')':
		if len(keys) != 1 {
			return Range{}, bad
		}
		switch first {
		case 'W':
			return Simple(Word), nil
		case '_':
			return Simple(Line), nil
		case '(':
			return Simple(SentenceStart), nil
		}
		return Simple(SentenceEnd), nil

	case '/', '?':
		pattern := make([]byte, 0, len(keys)-1)
		for _, k := range keys[1:] {
			if !k.IsPrintable() {
				return Range{}, bad
			}
			pattern = append(pattern, k.Byte())
		}
		kind := SearchForward
		if first == '?' {
			kind = SearchBackward
		}
		return Search(kind, string(pattern)), nil

	case '`':
		if len(keys) != 2 || !keys[1].IsLetter() {
			return Range{}, bad
		}
		return MarkAt(keys[1].Byte()), nil
	}

	if n, ok := decodeLineNumber(keys); ok {
		return LineNumber(n), nil
	}
	return Range{}, bad
}

// decodeLineNumber matches an optionally signed decimal followed by 'G'.
func decodeLineNumber(keys key.Sequence) (int, bool) {
	if len(keys) < 2 || keys[len(keys)-1] != 'G' {
		return 0, false
	}
	digits := keys[:len(keys)-1]
	text := make([]byte, 0, len(digits))
	for i, k := range digits {
		if !k.IsDigit() && !(i == 0 && k == '-') {
			return 0, false
		}
		text = append(text, k.Byte())
	}
	n, err := strconv.Atoi(string(text))
	if err != nil || strconv.Itoa(n) != string(text) {
		return 0, false
	}
	return n, true
}

// ParseRange parses the key notation of a range.
func ParseRange(notation string) (Range, error) {
	keys, err := key.ParseSequence(notation)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %v", ErrUnknownRange, err)
	}
	return DecodeRange(keys)
}
