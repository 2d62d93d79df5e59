package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/quill/internal/config/loader"
)

// Setting names, as used in the settings file and by Set.
const (
	SettingLogLevel   = "log_level"
	SettingLineEnding = "line_ending"
	SettingKeymapFile = "keymap_file"
	SettingMacroFile  = "macro_file"
	SettingWatch      = "watch"
)

// Accepted values.
var (
	LogLevels   = []string{"debug", "info", "warn", "error", "off"}
	LineEndings = []string{"auto", "lf", "crlf", "cr"}
)

// Config holds quill's settings.
type Config struct {
	// LogLevel is the minimum level written to the log.
	LogLevel string `toml:"log_level"`

	// LineEnding is the newline encoding used when writing buffers.
	// "auto" keeps the encoding the file was read with.
	LineEnding string `toml:"line_ending"`

	// KeymapFile is an optional TOML or YAML binding file layered over the
	// default key trees.
	KeymapFile string `toml:"keymap_file"`

	// MacroFile is where macro registers are persisted.
	MacroFile string `toml:"macro_file"`

	// Watch reloads KeymapFile when it changes.
	Watch bool `toml:"watch"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		LineEnding: "auto",
	}
}

// DefaultPath returns the default settings file location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "quill", "config.toml"), nil
}

// Options controls Load.
type Options struct {
	// Path is the settings file. A missing file is not an error.
	Path string

	// FS reads the settings file. Defaults to the OS file system.
	FS loader.FileSystem

	// Env supplies overrides. Defaults to the process environment with the
	// QUILL_ prefix. Set SkipEnv to ignore the environment.
	Env     *loader.EnvLoader
	SkipEnv bool
}

// Load builds a Config from defaults, the settings file and the
// environment, in increasing priority.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	if opts.Path != "" {
		fs := opts.FS
		if fs == nil {
			fs = loader.DefaultFS()
		}
		if _, err := loader.NewTOMLLoaderWithFS(fs, opts.Path).Load(cfg); err != nil {
			return nil, err
		}
		cfg.resolvePaths(filepath.Dir(opts.Path))
	}

	if !opts.SkipEnv {
		env := opts.Env
		if env == nil {
			env = loader.NewEnvLoader(loader.DefaultPrefix)
		}
		for name, value := range env.Load() {
			if err := cfg.Set(name, value); err != nil {
				return nil, fmt.Errorf("environment: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePaths makes file settings relative to the settings file absolute.
func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.KeymapFile, &c.MacroFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Set assigns a setting from its string form.
func (c *Config) Set(name, value string) error {
	switch name {
	case SettingLogLevel:
		c.LogLevel = strings.ToLower(strings.TrimSpace(value))
	case SettingLineEnding:
		c.LineEnding = strings.ToLower(strings.TrimSpace(value))
	case SettingKeymapFile:
		c.KeymapFile = value
	case SettingMacroFile:
		c.MacroFile = value
	case SettingWatch:
		b, err := loader.ParseBool(value)
		if err != nil {
			return &ValidationError{Setting: name, Message: err.Error(), Value: value}
		}
		c.Watch = b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}
	return nil
}

// Get returns a setting in its string form.
func (c *Config) Get(name string) (string, error) {
	switch name {
	case SettingLogLevel:
		return c.LogLevel, nil
	case SettingLineEnding:
		return c.LineEnding, nil
	case SettingKeymapFile:
		return c.KeymapFile, nil
	case SettingMacroFile:
		return c.MacroFile, nil
	case SettingWatch:
		if c.Watch {
			return "true", nil
		}
		return "false", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSetting, name)
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !contains(LogLevels, c.LogLevel) {
		return &ValidationError{
			Setting: SettingLogLevel,
			Message: "must be one of " + strings.Join(LogLevels, ", "),
			Value:   c.LogLevel,
		}
	}
	if !contains(LineEndings, c.LineEnding) {
		return &ValidationError{
			Setting: SettingLineEnding,
			Message: "must be one of " + strings.Join(LineEndings, ", "),
			Value:   c.LineEnding,
		}
	}
	if c.Watch && c.KeymapFile == "" {
		return &ValidationError{
			Setting: SettingWatch,
			Message: "requires keymap_file",
			Value:   c.Watch,
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
