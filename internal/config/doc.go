// Package config loads quill's settings.
//
// Settings are resolved in increasing priority:
//
//  1. Built-in defaults (Default)
//  2. The TOML settings file, ~/.config/quill/config.toml by default
//  3. QUILL_* environment variables
//  4. Command line flags, applied by the caller with Set
//
// A settings file looks like:
//
//	log_level = "debug"
//	line_ending = "lf"
//	keymap_file = "keys.toml"
//	watch = true
//
// Relative file settings are resolved against the settings file's directory.
//
// # Sub-packages
//
//   - loader: TOML decoding and environment lookup
//   - watcher: fsnotify based file change notification
//
// KeymapWatcher combines the watcher with keymap.LoadTrees to hot-reload a
// binding file.
package config
