package loader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// DefaultPrefix is the prefix of quill environment variables.
const DefaultPrefix = "QUILL_"

// EnvLoader loads setting overrides from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "QUILL_")
	mapping map[string]string // Env var -> setting name
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "QUILL_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		lookup:  os.LookupEnv,
	}
}

// NewEnvLoaderWithLookup creates a loader reading variables through lookup.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.lookup = lookup
	return l
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":   "log_level",
		prefix + "LINE_ENDING": "line_ending",
		prefix + "KEYMAP":      "keymap_file",
		prefix + "MACROS":      "macro_file",
		prefix + "WATCH":       "watch",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, setting string) {
	l.mapping[envVar] = setting
}

// Variables returns the mapped variable names in sorted order.
func (l *EnvLoader) Variables() []string {
	names := make([]string, 0, len(l.mapping))
	for env := range l.mapping {
		names = append(names, env)
	}
	sort.Strings(names)
	return names
}

// Load returns the settings present in the environment. Empty values are
// treated as set.
func (l *EnvLoader) Load() map[string]string {
	values := make(map[string]string)
	for env, setting := range l.mapping {
		if val, ok := l.lookup(env); ok {
			values[setting] = val
		}
	}
	return values
}

// ParseBool parses an environment flag value.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off", "":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}
