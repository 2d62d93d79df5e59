// Package macro provides keyboard macro recording and playback for quill.
//
// A macro is a recorded key.Sequence stored in a register. Registers are
// lowercase letters (a-z) and digits (0-9). Recording to an uppercase
// letter appends to the matching lowercase register.
//
// Example:
//
//	rec := macro.NewRecorder()
//	_ = rec.StartRecording('a')
//	rec.Record('d')
//	rec.Record('w')
//	rec.StopRecording()
//
//	player := macro.NewPlayer(rec)
//	_ = player.Play(ctx, 'a', 3, func(k key.Key) error {
//	    return dispatcher.HandleKey(k)
//	})
//
// # Persistence
//
// Save and Load store registers as YAML with each macro written in key
// notation, so the file is editable by hand:
//
//	version: 1
//	macros:
//	  - register: a
//	    keys: dw<C-[>
//
// Recorder and Player are safe for concurrent use.
package macro
