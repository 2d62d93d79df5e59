package command

import (
	"fmt"

	"github.com/dshills/quill/internal/input/key"
)

// NavigationMotion is a pure cursor move.
type NavigationMotion uint8

// Navigation motions.
const (
	CharForward NavigationMotion = iota
	CharBackward
	LineForward
	LineBackward
	WordForward
	WordBackward
	WordEndForward
	WordEndBackward
	LineStart
	LineEnd
	BlankLineBelow
	BlankLineAbove
	Top
	Bottom

	numNavigations
)

type navigationInfo struct {
	name string
	keys string
}

var navigations = [numNavigations]navigationInfo{
	CharForward:     {"CharForward", "l"},
	CharBackward:    {"CharBackward", "h"},
	LineForward:     {"LineForward", "j"},
	LineBackward:    {"LineBackward", "k"},
	WordForward:     {"WordForward", "w"},
	WordBackward:    {"WordBackward", "b"},
	WordEndForward:  {"WordEndForward", "e"},
	WordEndBackward: {"WordEndBackward", "ge"},
	LineStart:       {"LineStart", "0"},
	LineEnd:         {"LineEnd", "$"},
	BlankLineBelow:  {"BlankLineBelow", "}"},
	BlankLineAbove:  {"BlankLineAbove", "{"},
	Top:             {"Top", "gg"},
	Bottom:          {"Bottom", "G"},
}

// Navigations returns every navigation motion.
func Navigations() []NavigationMotion {
	out := make([]NavigationMotion, numNavigations)
	for i := range out {
		out[i] = NavigationMotion(i)
	}
	return out
}

// IsValid returns true if n is a defined navigation motion.
func (n NavigationMotion) IsValid() bool {
	return n < numNavigations
}

// String returns the motion name.
func (n NavigationMotion) String() string {
	if !n.IsValid() {
		return fmt.Sprintf("NavigationMotion(%d)", n)
	}
	return navigations[n].name
}

// Keys returns the keys that invoke the motion.
func (n NavigationMotion) Keys() key.Sequence {
	if !n.IsValid() {
		return nil
	}
	return key.MustParseSequence(navigations[n].keys)
}

// AsKey returns the key notation that invokes the motion.
func (n NavigationMotion) AsKey() string {
	if !n.IsValid() {
		return ""
	}
	return navigations[n].keys
}

// DecodeNavigation returns the navigation motion invoked by exactly keys.
func DecodeNavigation(keys key.Sequence) (NavigationMotion, error) {
	for i, info := range navigations {
		if info.keys == keys.String() {
			return NavigationMotion(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNavigation, keys.String())
}

// ParseNavigation parses the key notation of a navigation motion.
func ParseNavigation(notation string) (NavigationMotion, error) {
	keys, err := key.ParseSequence(notation)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnknownNavigation, err)
	}
	return DecodeNavigation(keys)
}
