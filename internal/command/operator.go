package command

import (
	"fmt"

	"github.com/dshills/quill/internal/input/key"
)

// MotionType is an operator applied to the text a navigation or range
// covers.
type MotionType uint8

// Motion types. Uppercase through ToggleCase are meta-operators, invoked
// with a "g" prefix.
const (
	Visual MotionType = iota
	Delete
	Yank
	Change
	Uppercase
	Lowercase
	Format
	Rot13
	ToggleCase

	numMotionTypes
)

type motionTypeInfo struct {
	name string
	keys string
}

var motionTypes = [numMotionTypes]motionTypeInfo{
	Visual:     {"Visual", "v"},
	Delete:     {"Delete", "d"},
	Yank:       {"Yank", "y"},
	Change:     {"Change", "c"},
	Uppercase:  {"Uppercase", "gU"},
	Lowercase:  {"Lowercase", "gu"},
	Format:     {"Format", "gq"},
	Rot13:      {"Rot13", "g?"},
	ToggleCase: {"ToggleCase", "g~"},
}

// MotionTypes returns every motion type.
func MotionTypes() []MotionType {
	out := make([]MotionType, numMotionTypes)
	for i := range out {
		out[i] = MotionType(i)
	}
	return out
}

// IsValid returns true if t is a defined motion type.
func (t MotionType) IsValid() bool {
	return t < numMotionTypes
}

// IsMeta returns true for the case, format and rot13 operators.
func (t MotionType) IsMeta() bool {
	return t >= Uppercase && t < numMotionTypes
}

// String returns the operator name.
func (t MotionType) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("MotionType(%d)", t)
	}
	return motionTypes[t].name
}

// Keys returns the keys that invoke the operator.
func (t MotionType) Keys() key.Sequence {
	if !t.IsValid() {
		return nil
	}
	return key.MustParseSequence(motionTypes[t].keys)
}

// AsKey returns the key notation that invokes the operator.
func (t MotionType) AsKey() string {
	if !t.IsValid() {
		return ""
	}
	return motionTypes[t].keys
}

// lineKeys returns the alternate keys that apply t to the current line
// besides "_" and the doubled operator. Rot13 has none since "g??" reads
// as a backward search.
func (t MotionType) lineKeys() key.Sequence {
	if t == Rot13 {
		return nil
	}
	keys := t.Keys()
	return keys[len(keys)-1:]
}

// DecodeMotionType returns the operator invoked by exactly keys.
func DecodeMotionType(keys key.Sequence) (MotionType, error) {
	op, n, ok := leadingOperator(keys)
	if !ok || n != len(keys) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, keys.String())
	}
	return op, nil
}

// ParseMotionType parses the key notation of an operator.
func ParseMotionType(notation string) (MotionType, error) {
	keys, err := key.ParseSequence(notation)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnknownOperator, err)
	}
	return DecodeMotionType(keys)
}

// leadingOperator reports the operator keys starts with and how many keys it
// spans.
func leadingOperator(keys key.Sequence) (MotionType, int, bool) {
	if len(keys) == 0 {
		return 0, 0, false
	}
	switch keys[0] {
	case 'v':
		return Visual, 1, true
	case 'd':
		return Delete, 1, true
	case 'y':
		return Yank, 1, true
	case 'c':
		return Change, 1, true
	case 'g':
		if len(keys) < 2 {
			return 0, 0, false
		}
		switch keys[1] {
		case 'U':
			return Uppercase, 2, true
		case 'u':
			return Lowercase, 2, true
		case 'q':
			return Format, 2, true
		case '?':
			return Rot13, 2, true
		case '~':
			return ToggleCase, 2, true
		}
	}
	return 0, 0, false
}
