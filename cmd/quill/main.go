// Package main is the entry point for the quill editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/input/key"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	keys       string
	line       int
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	closeLog, err := setupLogging(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	session, err := app.NewSession(cfg, app.SessionOptions{Path: opts.file})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if err := startAt(session, opts.line); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = session.Close()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.keys != "" {
		err = replay(ctx, session, opts.keys, os.Stdout)
	} else {
		err = interactive(ctx, session)
	}

	if cerr := session.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cerr)
	}
	if err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error, off)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write the log to a file")
	flag.StringVar(&opts.keys, "keys", "", "Replay key notation and print the state after each key")
	flag.IntVar(&opts.line, "line", 0, "Start with the cursor on this line (1-based)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "quill - modal key resolution over a piece table\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quill [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quill notes.txt                  Edit a file\n")
		fmt.Fprintf(os.Stderr, "  quill -keys 'ihello<C-[>' f.txt  Replay keys without a terminal\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("quill %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: at most one file may be given\n")
		os.Exit(2)
	}
	opts.file = flag.Arg(0)
	return opts
}

func loadConfig(opts options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}

	cfg, err := config.Load(config.Options{Path: path})
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		if err := cfg.Set(config.SettingLogLevel, opts.logLevel); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// setupLogging installs the process logger. The interactive screen owns
// the terminal, so without a log file it logs nowhere.
func setupLogging(cfg *config.Config, opts options) (func(), error) {
	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(cfg.LogLevel)

	closeFn := func() {}
	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		lc.Output = f
		closeFn = func() { _ = f.Close() }
	case opts.keys == "":
		lc.Output = io.Discard
	}

	app.SetLogger(app.NewLogger(lc))
	return closeFn, nil
}

// startAt places the cursor at the start of a 1-based line. Zero leaves
// it at the top.
func startAt(s *app.Session, line int) error {
	if line == 0 {
		return nil
	}
	if line < 0 {
		return fmt.Errorf("invalid line %d", line)
	}
	return s.Dispatcher().SetCursorPoint(buffer.Point{Line: line - 1})
}

// replay feeds notation through the session, writing one line per key.
func replay(ctx context.Context, s *app.Session, notation string, w io.Writer) error {
	keys, err := key.ParseSequence(notation)
	if err != nil {
		return err
	}

	d := s.Dispatcher()
	for _, k := range keys {
		err := s.HandleKey(ctx, k)
		st := d.Status()
		fmt.Fprintf(w, "%-6s %-8s pending=%q cursor=%s", k, st.Mode, st.Pending, st.Cursor)
		if st.CommandLine != "" {
			fmt.Fprintf(w, " cmdline=%q", st.CommandLine)
		}
		if st.Message != "" {
			fmt.Fprintf(w, " message=%q", st.Message)
		}
		fmt.Fprintln(w)
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "buffer %q\n", d.Buffer().Text())
	return nil
}
