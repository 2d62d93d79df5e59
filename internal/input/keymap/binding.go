package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/quill/internal/command"
	"github.com/dshills/quill/internal/input/key"
)

// Command resolution errors.
var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrCountInBinding = errors.New("repeat count in a bound motion")

	// ErrDigitPrefix rejects sequences starting with a digit, which the
	// parser always reads as a repeat count.
	ErrDigitPrefix = errors.New("key sequence starts with a count digit")
)

// Binding maps a key sequence to a command, as written in a binding file.
type Binding struct {
	// Keys is the key sequence in key notation: "gg", "<C-[>", "di(".
	Keys string `toml:"keys" yaml:"keys"`

	// Command is a static command name ("insert_mode"), a typable command
	// line (":w out.txt"), a macro ("@dd") or a motion ("y$").
	Command string `toml:"command,omitempty" yaml:"command,omitempty"`

	// Unbind removes the binding for Keys instead of installing one.
	Unbind bool `toml:"unbind,omitempty" yaml:"unbind,omitempty"`

	// Description documents the binding.
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
}

// ResolveCommand turns the command text of a binding into a command value.
func ResolveCommand(spec string) (command.EditorCommand, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrEmptyCommand
	}

	switch spec[0] {
	case ':':
		fields := strings.Fields(spec[1:])
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyCommand, spec)
		}
		return command.Typable{Command: fields[0], Args: fields[1:]}, nil
	case '@':
		keys, err := key.ParseSequence(spec[1:])
		if err != nil {
			return nil, fmt.Errorf("macro %q: %w", spec, err)
		}
		return command.Macro{Keys: keys}, nil
	}

	if s, ok := command.LookupStatic(spec); ok {
		return s, nil
	}

	m, err := command.ParseMotion(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, spec)
	}
	if m.Repeat() != 0 {
		return nil, fmt.Errorf("%w: %q", ErrCountInBinding, spec)
	}
	return command.MotionCommand{Motion: m}, nil
}

// BindAll applies bindings to root in order. A sequence starting with a
// digit cannot be reached and is rejected with ErrDigitPrefix.
func BindAll(root *KeyNode, bindings []Binding) error {
	for i, b := range bindings {
		seq, err := key.ParseSequence(b.Keys)
		if err != nil {
			return fmt.Errorf("binding %d: %w", i, err)
		}
		if b.Unbind {
			root.Unbind(seq)
			continue
		}
		if seq[0].IsDigit() {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, ErrDigitPrefix)
		}
		cmd, err := ResolveCommand(b.Command)
		if err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		if err := root.Bind(seq, cmd); err != nil {
			return fmt.Errorf("binding %d: %w", i, err)
		}
	}
	return nil
}
