package macro

// Register bounds.
const (
	MinLetterRegister = 'a'
	MaxLetterRegister = 'z'
	MinDigitRegister  = '0'
	MaxDigitRegister  = '9'
)

// Registers lists every valid register in display order.
const Registers = "abcdefghijklmnopqrstuvwxyz0123456789"

// IsValidRegister returns true if r is a valid register name.
// Valid registers are lowercase letters (a-z) and digits (0-9).
func IsValidRegister(r byte) bool {
	return IsLetterRegister(r) || IsDigitRegister(r)
}

// IsLetterRegister returns true if r is a letter register (a-z).
func IsLetterRegister(r byte) bool {
	return r >= MinLetterRegister && r <= MaxLetterRegister
}

// IsDigitRegister returns true if r is a digit register (0-9).
func IsDigitRegister(r byte) bool {
	return r >= MinDigitRegister && r <= MaxDigitRegister
}

// IsAppendRegister returns true if r is an uppercase letter (A-Z).
// Recording to an uppercase register appends to its lowercase register.
func IsAppendRegister(r byte) bool {
	return r >= 'A' && r <= 'Z'
}

// NormalizeRegister converts a register to its canonical form.
// Uppercase letters become lowercase; invalid registers return 0.
func NormalizeRegister(r byte) byte {
	if IsAppendRegister(r) {
		return r + ('a' - 'A')
	}
	if IsValidRegister(r) {
		return r
	}
	return 0
}
