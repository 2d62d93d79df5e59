package mode

import "github.com/dshills/quill/internal/command"

// Mode names.
const (
	ModeNormal  = command.ModeNormal
	ModeInsert  = command.ModeInsert
	ModeCommand = command.ModeCommand
)

// Mode describes an editing mode.
type Mode struct {
	// Name is the unique mode identifier (e.g., "normal", "insert").
	Name string

	// DisplayName is shown on the status line.
	DisplayName string

	// SelfInsert makes printable keys insert themselves instead of being
	// resolved through the key tree.
	SelfInsert bool
}

// Builtin returns the built-in modes.
func Builtin() []Mode {
	return []Mode{
		{Name: ModeNormal, DisplayName: "NORMAL"},
		{Name: ModeInsert, DisplayName: "INSERT", SelfInsert: true},
		{Name: ModeCommand, DisplayName: "COMMAND", SelfInsert: true},
	}
}
