// Package key defines the key codes the input system resolves and the key
// notation used to write them down.
//
// A Key is one of 128 ASCII codes. Values outside that range have no key of
// their own and map to KeyNull.
//
// # Key Notation
//
// Key notation is used both to author binding tables and to render commands
// back to text:
//
//   - A printable ASCII character denotes itself: "a", "$", "{"
//   - "<Del>" denotes the delete key (0x7F)
//   - "<C-X>" with X in '@'..'_' denotes the control code X & 0x1F,
//     so "<C-[>" is escape and "<C-M>" is carriage return
//
// A few names are accepted as aliases when parsing ("<Esc>", "<CR>", "<Tab>",
// "<BS>", "<Space>", "<lt>", "<Bar>", "<Bslash>"), but rendering emits only
// the canonical forms above. A literal '<' renders as itself unless the text
// after it would read as a bracketed key, in which case it renders as
// "<lt>". Parsing and rendering are exact inverses:
//
//	seq, _ := key.ParseSequence("d<C-[>")
//	seq.String() // "d<C-[>"
package key
