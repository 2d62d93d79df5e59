package macro

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/quill/internal/input/key"
)

// MaxDepth bounds nested playback, such as a macro that plays itself.
const MaxDepth = 16

// KeyHandler processes one replayed key.
type KeyHandler func(k key.Key) error

// Player replays recorded macros.
type Player struct {
	recorder *Recorder

	mu    sync.Mutex
	depth int
}

// NewPlayer creates a player reading macros from recorder.
func NewPlayer(recorder *Recorder) *Player {
	return &Player{recorder: recorder}
}

// Play replays a register count times through handler. Playback stops at
// the first handler error or when ctx is cancelled. A handler may start
// another playback up to MaxDepth levels deep.
func (p *Player) Play(ctx context.Context, register byte, count int, handler KeyHandler) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	keys := p.recorder.Get(register)
	if len(keys) == 0 {
		return fmt.Errorf("%w: %c", ErrEmptyRegister, register)
	}
	if count < 1 {
		count = 1
	}

	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	p.recorder.SetLastPlayed(register)

	for i := 0; i < count; i++ {
		for _, k := range keys {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := handler(k); err != nil {
				return err
			}
		}
	}
	return nil
}

// PlayLast replays the most recently played register.
func (p *Player) PlayLast(ctx context.Context, count int, handler KeyHandler) error {
	last := p.recorder.LastPlayed()
	if last == 0 {
		return fmt.Errorf("%w: no previous macro", ErrEmptyRegister)
	}
	return p.Play(ctx, last, count, handler)
}

// IsPlaying returns true while any playback is in progress.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.depth > 0
}

// Depth returns the current nesting level of playback.
func (p *Player) Depth() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.depth
}

func (p *Player) enter() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.depth >= MaxDepth {
		return fmt.Errorf("%w: nesting exceeds %d", ErrAlreadyPlaying, MaxDepth)
	}
	p.depth++
	return nil
}

func (p *Player) leave() {
	p.mu.Lock()
	p.depth--
	p.mu.Unlock()
}
