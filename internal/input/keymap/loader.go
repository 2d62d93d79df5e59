package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat indicates a binding file whose extension is neither
// TOML nor YAML.
var ErrUnknownFormat = errors.New("unknown binding file format")

// File is the contents of a binding file: one binding list per mode.
type File struct {
	Normal  []Binding `toml:"normal" yaml:"normal"`
	Insert  []Binding `toml:"insert" yaml:"insert"`
	Command []Binding `toml:"command" yaml:"command"`
}

// DecodeTOML parses a TOML binding file. Unknown keys are rejected.
func DecodeTOML(data []byte) (*File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding toml bindings: %w", err)
	}
	return &f, nil
}

// DecodeYAML parses a YAML binding file. Unknown keys are rejected.
func DecodeYAML(data []byte) (*File, error) {
	var f File
	if len(bytes.TrimSpace(data)) == 0 {
		return &f, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding yaml bindings: %w", err)
	}
	return &f, nil
}

// Decode parses data in the format implied by the extension of path.
func Decode(path string, data []byte) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return DecodeTOML(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// LoadFile reads and parses a binding file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}
	return Decode(path, data)
}

// Apply overlays the file's bindings onto trees.
func (f *File) Apply(trees Trees) error {
	sections := []struct {
		name     string
		root     *KeyNode
		bindings []Binding
	}{
		{"normal", trees.Normal, f.Normal},
		{"insert", trees.Insert, f.Insert},
		{"command", trees.Command, f.Command},
	}
	for _, s := range sections {
		if len(s.bindings) == 0 {
			continue
		}
		if s.root == nil {
			return fmt.Errorf("%s: no tree", s.name)
		}
		if err := BindAll(s.root, s.bindings); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// Build returns the default trees with f applied. A nil file yields the
// defaults.
func Build(f *File) (Trees, error) {
	trees := Defaults()
	if f == nil {
		return trees, nil
	}
	if err := f.Apply(trees); err != nil {
		return Trees{}, err
	}
	return trees, nil
}

// LoadTrees builds trees from the binding file at path. An empty path
// yields the defaults.
func LoadTrees(path string) (Trees, error) {
	if path == "" {
		return Defaults(), nil
	}
	f, err := LoadFile(path)
	if err != nil {
		return Trees{}, err
	}
	return Build(f)
}
