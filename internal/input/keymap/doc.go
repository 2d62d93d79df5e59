// Package keymap resolves a stream of keys into editor commands.
//
// # Key Concepts
//
// KeyNode: a trie over key sequences. Some nodes carry a command. Trees are
// built once per mode from the default binding tables and binding files.
//
// Parser: consumes one key per Feed call. A digit typed at the root of the
// tree folds into a repeat count. Every other key walks one edge; the walk
// ends when a node with a command is reached (StatusCommand) or when no edge
// matches (StatusError). Both terminal outcomes leave the parser back at the
// root with no count.
//
// A binding that is a prefix of a longer binding resolves as soon as it is
// matched, so the longer binding is reachable only if the shorter one is not
// bound. A digit mid-sequence is an ordinary key, so "d0" reaches the
// line-start motion while a leading "0" is part of a count.
//
// # Usage
//
//	normal := keymap.DefaultNormal()
//	p := keymap.NewParser(normal)
//
//	for _, k := range key.MustParseSequence("3dw") {
//	    res := p.Feed(k)
//	    if res.Status == keymap.StatusCommand {
//	        // res.Command is d + w, res.Count is 3
//	    }
//	}
//
// # Binding Files
//
// Loader reads TOML or YAML files that overlay the defaults:
//
//	[[normal]]
//	keys = "<C-[>"
//	command = "normal_mode"
//
//	[[normal]]
//	keys = "Y"
//	command = "y$"
//
// A command is a static command name, a ":" typable command line, an "@"
// macro, or a motion in key notation.
package keymap
