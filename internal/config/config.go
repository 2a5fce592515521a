package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/mdedit/internal/config/loader"
	"github.com/dshills/mdedit/internal/engine/buffer"
	"github.com/dshills/mdedit/internal/logging"
)

// AppName names the configuration directory.
const AppName = "mdedit"

// Line ending settings.
const (
	LineEndingAuto = "auto"
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
)

// Config holds every mdedit setting.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Files   FilesConfig   `toml:"files"`
	Log     LogConfig     `toml:"log"`
	Plugins PluginsConfig `toml:"plugins"`
	Session SessionConfig `toml:"session"`
	Watch   WatchConfig   `toml:"watch"`

	// Source is the config file that was read, empty if none existed.
	Source string `toml:"-"`
}

// EditorConfig configures each document engine.
type EditorConfig struct {
	TabWidth   int    `toml:"tab_width"`
	LineEnding string `toml:"line_ending"`
	MaxUndo    int    `toml:"max_undo"`
}

// FilesConfig selects the files opened from a directory.
type FilesConfig struct {
	Patterns []string `toml:"patterns"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// PluginsConfig locates the Lua init script.
type PluginsConfig struct {
	Init string `toml:"init"`
}

// SessionConfig configures cursor persistence across runs.
type SessionConfig struct {
	Enabled    bool   `toml:"enabled"`
	File       string `toml:"file"`
	MaxEntries int    `toml:"max_entries"`
}

// WatchConfig configures external change detection.
type WatchConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:   4,
			LineEnding: LineEndingAuto,
			MaxUndo:    1000,
		},
		Files: FilesConfig{
			Patterns: []string{"*.md"},
		},
		Log: LogConfig{
			Level: "info",
		},
		Plugins: PluginsConfig{
			Init: filepath.Join(dir, "init.lua"),
		},
		Session: SessionConfig{
			Enabled:    true,
			File:       filepath.Join(dir, "session.json"),
			MaxEntries: 200,
		},
		Watch: WatchConfig{
			Enabled: true,
		},
	}
}

// DefaultDir returns <user config dir>/mdedit, or ./.mdedit when the
// user config dir cannot be determined.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(base, AppName)
}

// ============================================================================
// Loading
// ============================================================================

type loadOptions struct {
	dir     string
	path    string
	fs      loader.FileSystem
	environ []string
	useEnv  bool
}

// Option configures Load.
type Option func(*loadOptions)

// WithDir sets the configuration directory used for defaults.
func WithDir(dir string) Option {
	return func(o *loadOptions) {
		o.dir = dir
	}
}

// WithPath reads the given file instead of <dir>/config.toml.
func WithPath(path string) Option {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithFS reads files through fs.
func WithFS(fs loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fs
	}
}

// WithEnviron replaces the process environment.
// A nil slice disables environment overrides.
func WithEnviron(environ []string) Option {
	return func(o *loadOptions) {
		o.environ = environ
		o.useEnv = environ != nil
	}
}

// Load resolves the configuration from defaults, the TOML file and
// the environment, then validates it.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{useEnv: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dir == "" {
		o.dir = DefaultDir()
	}
	if o.path == "" {
		o.path = filepath.Join(o.dir, "config.toml")
	}
	if o.fs == nil {
		o.fs = loader.DefaultFS()
	}

	fileSettings, err := loader.NewTOMLLoaderWithFS(o.fs, o.path).Load()
	if err != nil {
		return nil, err
	}

	var env *loader.EnvLoader
	if o.environ != nil {
		env = loader.NewEnvLoaderWithEnviron(loader.DefaultEnvPrefix, o.environ)
	} else {
		env = loader.NewEnvLoader(loader.DefaultEnvPrefix)
	}
	var envSettings map[string]any
	if o.useEnv {
		if envSettings, err = env.Load(); err != nil {
			return nil, err
		}
	}

	merged := loader.DeepMerge(loader.Clone(fileSettings), envSettings)

	cfg := Default(o.dir)
	if err := decode(merged, cfg); err != nil {
		return nil, err
	}
	if fileSettings != nil {
		cfg.Source = o.path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode lays settings over the defaults already held by cfg.
func decode(settings map[string]any, cfg *Config) error {
	if len(settings) == 0 {
		return nil
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// ============================================================================
// Validation
// ============================================================================

// Validate checks every setting and normalizes enumerations.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(path string, value any, msg string) {
		errs = append(errs, &ValidationError{Path: path, Value: value, Message: msg})
	}

	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		add("editor.tab_width", c.Editor.TabWidth, "must be between 1 and 16")
	}
	c.Editor.LineEnding = strings.ToLower(strings.TrimSpace(c.Editor.LineEnding))
	switch c.Editor.LineEnding {
	case LineEndingAuto, LineEndingLF, LineEndingCRLF:
	case "":
		c.Editor.LineEnding = LineEndingAuto
	default:
		add("editor.line_ending", c.Editor.LineEnding, "must be auto, lf or crlf")
	}
	if c.Editor.MaxUndo < 1 {
		add("editor.max_undo", c.Editor.MaxUndo, "must be positive")
	}

	if len(c.Files.Patterns) == 0 {
		add("files.patterns", c.Files.Patterns, "must not be empty")
	}
	for _, p := range c.Files.Patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			add("files.patterns", p, err.Error())
		}
	}

	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		add("log.level", c.Log.Level, "must be debug, info, warn or error")
	}

	if c.Session.MaxEntries < 1 {
		add("session.max_entries", c.Session.MaxEntries, "must be positive")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ============================================================================
// Accessors
// ============================================================================

// LineEnding returns the forced export line ending.
// The second result is false for "auto", meaning detect from content.
func (c *Config) LineEnding() (buffer.LineEnding, bool) {
	switch c.Editor.LineEnding {
	case LineEndingLF:
		return buffer.LineEndingLF, true
	case LineEndingCRLF:
		return buffer.LineEndingCRLF, true
	default:
		return buffer.LineEndingLF, false
	}
}

// LogLevel returns the parsed log level, info when unset.
func (c *Config) LogLevel() logging.Level {
	level, ok := logging.ParseLevel(c.Log.Level)
	if !ok {
		return logging.LevelInfo
	}
	return level
}

// Matches reports whether name matches one of the file patterns.
func (c *Config) Matches(name string) bool {
	base := filepath.Base(name)
	for _, p := range c.Files.Patterns {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}
