package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/input/keymap"
	"github.com/dshills/quill/internal/input/macro"
	"github.com/dshills/quill/internal/input/mode"
)

// Session is one editing session: a buffer, its modes and macros, and the
// dispatcher driving them.
type Session struct {
	cfg        *config.Config
	log        *Logger
	dispatcher *Dispatcher
	watcher    *config.KeymapWatcher
}

// SessionOptions configures NewSession.
type SessionOptions struct {
	// Path is the file to edit. A missing file starts an empty buffer.
	Path string

	// Evaluator receives motions. Defaults to NopEvaluator.
	Evaluator Evaluator
}

// NewSession builds a session from cfg.
func NewSession(cfg *config.Config, opts SessionOptions) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{
		cfg: cfg,
		log: GetLogger().WithComponent("session"),
	}

	trees, err := keymap.LoadTrees(cfg.KeymapFile)
	if err != nil {
		return nil, NewOperationError("load keymap", cfg.KeymapFile, err)
	}

	buf, err := openBuffer(opts.Path, cfg.LineEnding)
	if err != nil {
		return nil, err
	}

	recorder := macro.NewRecorder()
	if cfg.MacroFile != "" {
		if err := macro.Load(recorder, cfg.MacroFile); err != nil {
			return nil, NewOperationError("load macros", cfg.MacroFile, err)
		}
	}

	if cfg.Watch && cfg.KeymapFile != "" {
		kw, err := config.NewKeymapWatcher(cfg.KeymapFile)
		if err != nil {
			return nil, NewOperationError("watch keymap", cfg.KeymapFile, err)
		}
		s.watcher = kw
	}

	s.dispatcher = NewDispatcher(DispatcherOptions{
		Buffer:    buf,
		Path:      opts.Path,
		Modes:     mode.NewManager(trees),
		Recorder:  recorder,
		Evaluator: opts.Evaluator,
		Logger:    GetLogger().WithComponent("dispatcher").WithField("buffer", buf.ID()),
	})

	s.log.Info("session started: file=%q keymap=%q macros=%d",
		opts.Path, cfg.KeymapFile, len(recorder.ListRegisters()))
	return s, nil
}

// openBuffer reads path, or starts an empty buffer when it does not exist.
func openBuffer(path, lineEnding string) (*buffer.Buffer, error) {
	le, detect, err := buffer.ParseLineEnding(lineEnding)
	if err != nil {
		return nil, err
	}
	opt := buffer.WithLineEnding(le)
	if detect {
		opt = buffer.WithDetectedLineEnding()
	}

	if path == "" {
		return buffer.NewBuffer(opt), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return buffer.NewBuffer(opt), nil
	}
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	defer f.Close()

	buf, err := buffer.NewBufferFromReader(f, opt)
	if err != nil {
		return nil, NewOperationError("read", path, err)
	}
	return buf, nil
}

// Dispatcher returns the session's dispatcher.
func (s *Session) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// HandleKey forwards a key to the dispatcher.
func (s *Session) HandleKey(ctx context.Context, k key.Key) error {
	return s.dispatcher.HandleKey(ctx, k)
}

// Watch runs the keymap watcher until ctx is done. It returns at once when
// watching is disabled.
func (s *Session) Watch(ctx context.Context) error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Run(ctx)
}

// Reloads returns rebuilt key trees from the watcher, or nil when watching
// is disabled.
func (s *Session) Reloads() <-chan config.Reload {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Reloads()
}

// ApplyReload installs reloaded key trees. It must be called from the
// goroutine that calls HandleKey.
func (s *Session) ApplyReload(r config.Reload) {
	if r.Err != nil {
		s.log.Warn("keymap reload failed: %v", r.Err)
		s.dispatcher.setMessage("keymap reload failed: %v", r.Err)
		return
	}
	s.dispatcher.Modes().Rebind(r.Trees)
	s.log.Info("keymap reloaded from %s", r.Path)
	s.dispatcher.setMessage("keymap reloaded")
}

// Close persists macro registers and stops the keymap watcher.
func (s *Session) Close() error {
	var errs ErrorList
	if s.watcher != nil {
		errs.Add(s.watcher.Close())
	}
	if s.cfg.MacroFile != "" {
		if err := macro.Save(s.dispatcher.Recorder(), s.cfg.MacroFile); err != nil {
			errs.Add(fmt.Errorf("save macros: %w", err))
		}
	}
	s.log.Info("session closed")
	return errs.AsError()
}
