package command

import (
	"fmt"
	"strconv"

	"github.com/dshills/quill/internal/input/key"
)

// Motion is one navigation or edit instruction. It is exactly one of
// NavigationOnly, OperatedNavigation or OperatedRange.
type Motion interface {
	// Keys returns the keys that invoke the motion, count included.
	Keys() key.Sequence

	// AsKey returns the key notation that invokes the motion.
	AsKey() string

	// Repeat returns the repeat count, or 0 when none was given.
	Repeat() int

	isMotion()
}

// NavigationOnly moves the cursor without an operator.
type NavigationOnly struct {
	Nav   NavigationMotion
	Count int
}

// OperatedNavigation applies an operator over a navigation.
type OperatedNavigation struct {
	Op    MotionType
	Nav   NavigationMotion
	Count int
}

// OperatedRange applies an operator over a range.
type OperatedRange struct {
	Op    MotionType
	Range Range
	Count int
}

func (NavigationOnly) isMotion()     {}
func (OperatedNavigation) isMotion() {}
func (OperatedRange) isMotion()      {}

func (m NavigationOnly) Repeat() int     { return m.Count }
func (m OperatedNavigation) Repeat() int { return m.Count }
func (m OperatedRange) Repeat() int      { return m.Count }

// countKeys renders a repeat count. Zero renders nothing.
func countKeys(n int) key.Sequence {
	if n <= 0 {
		return nil
	}
	var keys key.Sequence
	for _, c := range []byte(strconv.Itoa(n)) {
		keys = append(keys, key.Key(c))
	}
	return keys
}

func (m NavigationOnly) Keys() key.Sequence {
	return append(countKeys(m.Count), m.Nav.Keys()...)
}

func (m OperatedNavigation) Keys() key.Sequence {
	keys := append(countKeys(m.Count), m.Op.Keys()...)
	return append(keys, m.Nav.Keys()...)
}

// Keys renders a Line range as the doubled operator, "dd" or "gUgU".
func (m OperatedRange) Keys() key.Sequence {
	keys := append(countKeys(m.Count), m.Op.Keys()...)
	if m.Range.Kind == Line {
		return append(keys, m.Op.Keys()...)
	}
	return append(keys, m.Range.Keys()...)
}

func (m NavigationOnly) AsKey() string     { return m.Keys().String() }
func (m OperatedNavigation) AsKey() string { return m.Keys().String() }
func (m OperatedRange) AsKey() string      { return m.Keys().String() }

func (m NavigationOnly) String() string {
	return fmt.Sprintf("NavigationOnly{%s, count=%d}", m.Nav, m.Count)
}

func (m OperatedNavigation) String() string {
	return fmt.Sprintf("OperatedNavigation{%s, %s, count=%d}", m.Op, m.Nav, m.Count)
}

func (m OperatedRange) String() string {
	return fmt.Sprintf("OperatedRange{%s, %s, count=%d}", m.Op, m.Range, m.Count)
}

// Operator returns the motion's operator, if any.
func Operator(m Motion) (MotionType, bool) {
	switch m := m.(type) {
	case OperatedNavigation:
		return m.Op, true
	case OperatedRange:
		return m.Op, true
	}
	return 0, false
}

// WithCount returns m with its count replaced by n.
func WithCount(m Motion, n int) Motion {
	switch m := m.(type) {
	case NavigationOnly:
		m.Count = n
		return m
	case OperatedNavigation:
		m.Count = n
		return m
	case OperatedRange:
		m.Count = n
		return m
	}
	return m
}

// DecodeMotion returns the motion invoked by exactly keys. A leading count
// starts with '1'..'9'. A trailing '0' is taken as the line-start motion
// rather than a count digit when nothing follows it.
func DecodeMotion(keys key.Sequence) (Motion, error) {
	bad := fmt.Errorf("%w: %q", ErrNotAMotion, keys.String())

	n := 0
	if len(keys) > 0 && keys[0] >= '1' && keys[0] <= '9' {
		for n < len(keys) && keys[n].IsDigit() {
			n++
		}
		if n == len(keys) && keys[n-1] == '0' {
			n--
		}
	}
	count := 0
	if n > 0 {
		c, err := strconv.Atoi(string(keysToBytes(keys[:n])))
		if err != nil {
			return nil, bad
		}
		count = c
	}
	rest := keys[n:]
	if len(rest) == 0 {
		return nil, bad
	}

	op, width, hasOp := leadingOperator(rest)
	if !hasOp {
		nav, err := DecodeNavigation(rest)
		if err != nil {
			return nil, bad
		}
		return NavigationOnly{Nav: nav, Count: count}, nil
	}

	target := rest[width:]
	if len(target) == 0 {
		return nil, bad
	}
	if isLineTarget(op, target) {
		return OperatedRange{Op: op, Range: Simple(Line), Count: count}, nil
	}
	if nav, err := DecodeNavigation(target); err == nil {
		return OperatedNavigation{Op: op, Nav: nav, Count: count}, nil
	}
	r, err := DecodeRange(target)
	if err != nil {
		return nil, bad
	}
	return OperatedRange{Op: op, Range: r, Count: count}, nil
}

// isLineTarget reports whether target applies op linewise: the operator
// repeated, its last key repeated, or "_".
func isLineTarget(op MotionType, target key.Sequence) bool {
	if target.Equal(op.Keys()) || target.Equal(key.Sequence{'_'}) {
		return true
	}
	alt := op.lineKeys()
	return alt != nil && target.Equal(alt)
}

// ParseMotion parses the key notation of a motion, such as "3dw" or "ci(".
func ParseMotion(notation string) (Motion, error) {
	keys, err := key.ParseSequence(notation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAMotion, err)
	}
	return DecodeMotion(keys)
}

func keysToBytes(keys key.Sequence) []byte {
	out := make([]byte, len(keys))
	for i, k := range keys {
		out[i] = k.Byte()
	}
	return out
}
