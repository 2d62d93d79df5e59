package key

// Sequence is a series of keys forming a command, such as "gg" or "diw".
type Sequence []Key

// Len returns the number of keys in the sequence.
func (s Sequence) Len() int {
	return len(s)
}

// IsEmpty returns true if the sequence has no keys.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// Equal returns true if both sequences hold the same keys.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if prefix is a prefix of s.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)].Equal(prefix)
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// String returns the canonical notation for the sequence.
func (s Sequence) String() string {
	return FormatSequence(s)
}
