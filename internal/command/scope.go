package command

import (
	"fmt"

	"github.com/dshills/quill/internal/input/key"
)

// Scope is a delimiter or text-object kind that a Range can target.
type Scope uint8

// Scopes.
const (
	Parenthesis Scope = iota
	Bracket
	Brace
	AngleBracket
	SingleQuote
	DoubleQuote
	Backtick
	WordScope
	Paragraph

	numScopes
)

type scopeInfo struct {
	name  string
	key   key.Key
	alias key.Key
}

var scopes = [numScopes]scopeInfo{
	Parenthesis:  {"Parenthesis", '(', ')'},
	Bracket:      {"Bracket", '[', ']'},
	Brace:        {"Brace", '{', '}'},
	AngleBracket: {"AngleBracket", '<', '>'},
	SingleQuote:  {"SingleQuote", '\'', 0},
	DoubleQuote:  {"DoubleQuote", '"', 0},
	Backtick:     {"Backtick", '`', 0},
	WordScope:    {"Word", 'w', 0},
	Paragraph:    {"Paragraph", 'p', 0},
}

// Scopes returns every scope.
func Scopes() []Scope {
	out := make([]Scope, numScopes)
	for i := range out {
		out[i] = Scope(i)
	}
	return out
}

// IsValid returns true if s is a defined scope.
func (s Scope) IsValid() bool {
	return s < numScopes
}

// IsDelimited returns true for bracket and quote scopes.
func (s Scope) IsDelimited() bool {
	return s < WordScope
}

// String returns the scope name.
func (s Scope) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Scope(%d)", s)
	}
	return scopes[s].name
}

// Key returns the canonical key for the scope. Brackets use their opening
// key.
func (s Scope) Key() key.Key {
	if !s.IsValid() {
		return key.KeyNull
	}
	return scopes[s].key
}

// AsKey returns the key notation for the scope.
func (s Scope) AsKey() string {
	return key.Sequence{s.Key()}.String()
}

// DecodeScope returns the scope named by k. Closing brackets name the same
// scope as their opening key.
func DecodeScope(k key.Key) (Scope, error) {
	for i, info := range scopes {
		if k == info.key || (info.alias != 0 && k == info.alias) {
			return Scope(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScope, k.String())
}

// ParseScope parses the key notation of a scope.
func ParseScope(notation string) (Scope, error) {
	k, err := key.Parse(notation)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnknownScope, err)
	}
	return DecodeScope(k)
}
