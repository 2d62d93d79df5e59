package macro

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/command"
	"github.com/dshills/quill/internal/input/key"
)

// Errors returned by the recorder and player.
var (
	ErrInvalidRegister  = errors.New("invalid register")
	ErrAlreadyRecording = errors.New("already recording")
	ErrEmptyRegister    = errors.New("empty register")
	ErrAlreadyPlaying   = errors.New("already playing a macro")
)

// Recorder records key sequences into registers.
type Recorder struct {
	mu         sync.Mutex
	recording  bool
	appending  bool
	register   byte
	session    uuid.UUID
	keys       key.Sequence
	registers  map[byte]key.Sequence
	lastPlayed byte
}

// NewRecorder creates a new macro recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{
		registers: make(map[byte]key.Sequence),
	}
}

// StartRecording begins recording to the register. An uppercase letter
// records into the matching lowercase register and appends on stop.
func (r *Recorder) StartRecording(register byte) error {
	target := NormalizeRegister(register)
	if target == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("%w to register %c", ErrAlreadyRecording, r.register)
	}

	r.recording = true
	r.appending = IsAppendRegister(register)
	r.register = target
	r.session = uuid.New()
	r.keys = nil
	return nil
}

// StopRecording ends the current recording and saves it to the register.
// It returns the keys recorded in this session, or nil if not recording.
// An empty recording clears the register unless appending.
func (r *Recorder) StopRecording() key.Sequence {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil
	}
	r.recording = false

	recorded := r.keys
	r.keys = nil

	switch {
	case r.appending:
		if len(recorded) > 0 {
			r.registers[r.register] = append(r.registers[r.register].Clone(), recorded...)
		}
	case len(recorded) == 0:
		delete(r.registers, r.register)
	default:
		r.registers[r.register] = recorded.Clone()
	}
	return recorded
}

// Cancel abandons the current recording without touching the register.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
	r.keys = nil
}

// IsRecording returns true if currently recording.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// CurrentRegister returns the register being recorded to, or 0.
func (r *Recorder) CurrentRegister() byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return r.register
	}
	return 0
}

// Session returns the ID of the current recording, or uuid.Nil.
func (r *Recorder) Session() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return r.session
	}
	return uuid.Nil
}

// Record adds a key to the current recording. Does nothing if not recording.
func (r *Recorder) Record(k key.Key) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		r.keys = append(r.keys, k)
	}
}

// Len returns the number of keys recorded so far, or 0 if not recording.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return 0
	}
	return len(r.keys)
}

// Get returns a copy of the keys stored in a register.
func (r *Recorder) Get(register byte) key.Sequence {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registers[register].Clone()
}

// Macro returns the register contents as a command.
func (r *Recorder) Macro(register byte) (command.Macro, bool) {
	seq := r.Get(register)
	if len(seq) == 0 {
		return command.Macro{}, false
	}
	return command.Macro{Keys: seq}, true
}

// Set stores keys in a register, replacing any existing content.
// An empty sequence clears the register.
func (r *Recorder) Set(register byte, keys key.Sequence) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(keys) == 0 {
		delete(r.registers, register)
		return nil
	}
	r.registers[register] = keys.Clone()
	return nil
}

// Clear removes the contents of a register.
func (r *Recorder) Clear(register byte) error {
	return r.Set(register, nil)
}

// ClearAll removes all macros from all registers.
func (r *Recorder) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers = make(map[byte]key.Sequence)
}

// HasMacro returns true if the register contains a macro.
func (r *Recorder) HasMacro(register byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.registers[register]) > 0
}

// ListRegisters returns the non-empty registers in display order.
func (r *Recorder) ListRegisters() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]byte, 0, len(r.registers))
	for i := 0; i < len(Registers); i++ {
		if len(r.registers[Registers[i]]) > 0 {
			result = append(result, Registers[i])
		}
	}
	return result
}

// SetLastPlayed sets the last played register.
func (r *Recorder) SetLastPlayed(register byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPlayed = register
}

// LastPlayed returns the last played register, or 0.
func (r *Recorder) LastPlayed() byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPlayed
}

// snapshot returns a copy of all non-empty registers.
func (r *Recorder) snapshot() map[byte]key.Sequence {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[byte]key.Sequence, len(r.registers))
	for reg, keys := range r.registers {
		if len(keys) > 0 {
			result[reg] = keys.Clone()
		}
	}
	return result
}

// replace swaps in a new register set.
func (r *Recorder) replace(registers map[byte]key.Sequence) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registers = make(map[byte]key.Sequence, len(registers))
	for reg, keys := range registers {
		if IsValidRegister(reg) && len(keys) > 0 {
			r.registers[reg] = keys.Clone()
		}
	}
}
