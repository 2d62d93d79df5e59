// Package mode provides the modal editing system for quill.
//
// Three modes are built in:
//   - Normal mode: navigation, operators and commands
//   - Insert mode: text input
//   - Command mode: the ':' command line
//
// Each mode owns one key tree. The Manager holds a single keymap.Parser and
// points it at the tree of the current mode, so a mode switch always starts
// the next key on a fresh sequence.
//
// # Mode Lifecycle
//
// When switching modes:
//  1. The parser is moved to the new mode's tree and reset
//  2. The previous mode is remembered
//  3. Mode change callbacks are notified
//
// Modes with SelfInsert set take printable keys as text. The dispatcher
// checks the flag before feeding a key to the parser.
package mode
