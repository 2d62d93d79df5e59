// Package command defines the closed vocabulary of editing commands that key
// sequences resolve to.
//
// The taxonomy is pure data:
//
//   - NavigationMotion: cursor moves such as "w", "gg" or "$"
//   - MotionType: operators such as "d", "c" or "gU"
//   - Scope: delimiters and text-object kinds such as "(" or "p"
//   - Range: targets such as "i(", "fx", "/foo" or "12G"
//   - Motion: a navigation or range, optionally operated, with a count
//   - EditorCommand: what a binding resolves to (Typable, MotionCommand,
//     Static or Macro)
//
// Every taxonomy value renders to the key notation that invokes it, and the
// Parse and Decode functions invert that rendering exactly:
//
//	m, _ := command.ParseMotion("3ci(")
//	m.AsKey() // "3ci("
//
// Nothing here executes a command. A Motion is handed to an evaluator that
// lives outside this package.
package command
