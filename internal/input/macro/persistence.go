package macro

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/quill/internal/input/key"
)

// persistedMacro is one register in key notation.
type persistedMacro struct {
	Register string `yaml:"register"`
	Keys     string `yaml:"keys"`
}

// persistedData is the root structure of a macro file.
type persistedData struct {
	Version    int              `yaml:"version"`
	SavedAt    time.Time        `yaml:"saved_at"`
	LastPlayed string           `yaml:"last_played,omitempty"`
	Macros     []persistedMacro `yaml:"macros"`
}

const currentVersion = 1

// Export renders the recorder's registers as YAML.
func Export(recorder *Recorder) ([]byte, error) {
	registers := recorder.snapshot()

	data := persistedData{
		Version: currentVersion,
		SavedAt: time.Now().UTC(),
		Macros:  make([]persistedMacro, 0, len(registers)),
	}
	if last := recorder.LastPlayed(); last != 0 {
		data.LastPlayed = string(last)
	}

	for i := 0; i < len(Registers); i++ {
		reg := Registers[i]
		keys, ok := registers[reg]
		if !ok {
			continue
		}
		data.Macros = append(data.Macros, persistedMacro{
			Register: string(reg),
			Keys:     key.FormatSequence(keys),
		})
	}

	return yaml.Marshal(&data)
}

// decode parses a macro file into registers.
func decode(raw []byte) (map[byte]key.Sequence, byte, error) {
	var data persistedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal macros: %w", err)
	}
	if data.Version > currentVersion {
		return nil, 0, fmt.Errorf("unsupported macros version: %d (max supported: %d)",
			data.Version, currentVersion)
	}

	registers := make(map[byte]key.Sequence, len(data.Macros))
	for _, m := range data.Macros {
		if len(m.Register) != 1 || !IsValidRegister(m.Register[0]) {
			return nil, 0, fmt.Errorf("%w: %q", ErrInvalidRegister, m.Register)
		}
		keys, err := key.ParseSequence(m.Keys)
		if err != nil {
			return nil, 0, fmt.Errorf("register %s: %w", m.Register, err)
		}
		registers[m.Register[0]] = keys
	}

	var last byte
	if len(data.LastPlayed) == 1 && IsValidRegister(data.LastPlayed[0]) {
		last = data.LastPlayed[0]
	}
	return registers, last, nil
}

// Import merges or replaces registers from YAML data. When merge is true,
// registers that already hold a macro are kept.
func Import(recorder *Recorder, raw []byte, merge bool) error {
	registers, _, err := decode(raw)
	if err != nil {
		return err
	}
	for reg, keys := range registers {
		if merge && recorder.HasMacro(reg) {
			continue
		}
		if err := recorder.Set(reg, keys); err != nil {
			return err
		}
	}
	return nil
}

// Save writes all macros from the recorder to path.
// The file is written atomically using a temporary file and rename.
func Save(recorder *Recorder, path string) error {
	raw, err := Export(recorder)
	if err != nil {
		return fmt.Errorf("failed to marshal macros: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load replaces the recorder's registers with the contents of path.
// A missing file is not an error.
func Load(recorder *Recorder, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read macros file: %w", err)
	}

	registers, last, err := decode(raw)
	if err != nil {
		return err
	}
	recorder.replace(registers)
	if last != 0 {
		recorder.SetLastPlayed(last)
	}
	return nil
}

// DefaultMacrosPath returns the default path for storing macros.
func DefaultMacrosPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "quill", "macros.yaml"), nil
}
