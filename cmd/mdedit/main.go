// Package main is the entry point for the mdedit Markdown editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mdedit/internal/app"
	"github.com/dshills/mdedit/internal/config"
	"github.com/dshills/mdedit/internal/engine"
	"github.com/dshills/mdedit/internal/logging"
	"github.com/dshills/mdedit/internal/markdown/markup"
	"github.com/dshills/mdedit/internal/plugin"
	"github.com/dshills/mdedit/internal/session"
	"github.com/dshills/mdedit/internal/workspace"
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
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, code, done := parseFlags(os.Args[1:])
	if done {
		return code
	}

	var loadOpts []config.Option
	if opts.configPath != "" {
		loadOpts = append(loadOpts, config.WithPath(opts.configPath))
	}
	cfg, err := config.Load(loadOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, closer, err := openLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()
	if cfg.Source != "" {
		logger.Info("config loaded from %s", cfg.Source)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := markup.NewRegistry()
	host := plugin.NewHost(registry, plugin.WithLogger(logger))
	defer host.Close()
	if loaded, err := host.LoadFile(ctx, cfg.Plugins.Init); err != nil {
		// A broken init script leaves the built-in templates in place.
		logger.Error("init script: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else if loaded {
		logger.Info("loaded %s", cfg.Plugins.Init)
	}

	ws, watcher := newWorkspace(cfg, registry, logger)
	defer func() {
		if err := ws.Shutdown(); err != nil {
			logger.Error("shutdown: %v", err)
		}
	}()

	if err := openArgs(ws, opts.files); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	appOpts := []app.Option{
		app.WithLogger(logger),
		app.WithClipboard(app.DefaultClipboard()),
	}
	if watcher != nil {
		appOpts = append(appOpts, app.WithWatcher(watcher))
	}

	if err := app.New(screen, ws, appOpts...).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags parses args. When done is true the process exits with code.
func parseFlags(args []string) (opts options, code int, done bool) {
	fs := flag.NewFlagSet("mdedit", flag.ContinueOnError)

	var showVersion, showHelp bool
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "mdedit - Markdown editor with table formatting\n\n")
		fmt.Fprintf(out, "Usage: mdedit [options] [file|dir...]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  mdedit                 Open an untitled document\n")
		fmt.Fprintf(out, "  mdedit README.md       Open a file\n")
		fmt.Fprintf(out, "  mdedit docs            Open every Markdown file in docs\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showHelp {
		fs.Usage()
		return opts, 0, true
	}
	if showVersion {
		fmt.Printf("mdedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, 0, true
	}
	if opts.logLevel != "" {
		if _, ok := logging.ParseLevel(opts.logLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			return opts, 1, true
		}
	}

	opts.files = fs.Args()
	return opts, 0, false
}

// openLog opens the log file. The terminal owns stdout and stderr while
// the editor runs.
func openLog(cfg *config.Config) (*logging.Logger, io.Closer, error) {
	path := cfg.Log.File
	if path == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return logging.Null(), io.NopCloser(nil), nil
		}
		path = filepath.Join(base, config.AppName, config.AppName+".log")
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger, closer, err := logging.OpenFile(path, logging.Config{Level: level, Prefix: config.AppName})
	if err != nil {
		return nil, nil, err
	}
	return logger, closer, nil
}

// newWorkspace builds the workspace from cfg. Session and watcher
// failures are logged and the editor runs without them.
func newWorkspace(cfg *config.Config, registry *markup.Registry, logger *logging.Logger) (*workspace.Workspace, *workspace.Watcher) {
	engineOpts := []engine.Option{
		engine.WithTabWidth(cfg.Editor.TabWidth),
		engine.WithMaxUndoEntries(cfg.Editor.MaxUndo),
		engine.WithMarkup(registry),
		engine.WithLogger(logger.WithComponent("engine")),
	}
	if ending, ok := cfg.LineEnding(); ok {
		engineOpts = append(engineOpts, engine.WithLineEnding(ending))
	}

	wsOpts := []workspace.Option{
		workspace.WithEngineOptions(engineOpts...),
		workspace.WithPatterns(cfg.Files.Patterns...),
		workspace.WithLogger(logger),
	}

	if cfg.Session.Enabled {
		store, err := session.Load(cfg.Session.File, cfg.Session.MaxEntries)
		if err != nil {
			logger.Warn("session: %v; starting a new one", err)
			store = session.New(cfg.Session.File, cfg.Session.MaxEntries)
		}
		wsOpts = append(wsOpts, workspace.WithSession(store))
	}

	var watcher *workspace.Watcher
	if cfg.Watch.Enabled {
		w, err := workspace.NewWatcher(64)
		if err != nil {
			logger.Warn("file watching disabled: %v", err)
		} else {
			watcher = w
			wsOpts = append(wsOpts, workspace.WithWatcher(w))
		}
	}

	return workspace.New(wsOpts...), watcher
}

// openArgs opens each file in its own pane and the matching files of
// each directory.
func openArgs(ws *workspace.Workspace, args []string) error {
	var errs []error
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			if _, err := ws.OpenDir(arg); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if _, err := ws.Open(arg); err != nil {
			errs = append(errs, err)
		}
	}
	if docs := ws.Documents(); len(docs) > 0 {
		_ = ws.Activate(docs[0].ID)
	}
	return errors.Join(errs...)
}
