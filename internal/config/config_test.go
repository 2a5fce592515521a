package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dshills/mdedit/internal/engine/buffer"
	"github.com/dshills/mdedit/internal/logging"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m[path]; !ok {
		return nil, fs.ErrNotExist
	}
	return fileInfo(path), nil
}

type fileInfo string

func (f fileInfo) Name() string       { return string(f) }
func (f fileInfo) Size() int64        { return 0 }
func (f fileInfo) Mode() fs.FileMode  { return 0644 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithDir("/cfg"), WithFS(memFS{}), WithEnviron(nil))
	if err != nil {
		t.Fatal(err)
	}

	want := Default("/cfg")
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.Plugins.Init != filepath.Join("/cfg", "init.lua") {
		t.Errorf("Plugins.Init = %q", cfg.Plugins.Init)
	}
	if cfg.Session.File != filepath.Join("/cfg", "session.json") {
		t.Errorf("Session.File = %q", cfg.Session.File)
	}
}

func TestLoadFile(t *testing.T) {
	files := memFS{
		filepath.Join("/cfg", "config.toml"): `
[editor]
tab_width = 2
line_ending = "CRLF"

[files]
patterns = ["*.md", "*.mdx"]

[session]
max_entries = 10
`,
	}

	cfg, err := Load(WithDir("/cfg"), WithFS(files), WithEnviron(nil))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Editor.TabWidth != 2 {
		t.Errorf("TabWidth = %d", cfg.Editor.TabWidth)
	}
	if cfg.Editor.LineEnding != LineEndingCRLF {
		t.Errorf("LineEnding = %q, want normalized crlf", cfg.Editor.LineEnding)
	}
	if cfg.Editor.MaxUndo != 1000 {
		t.Errorf("MaxUndo = %d, want default kept", cfg.Editor.MaxUndo)
	}
	if !reflect.DeepEqual(cfg.Files.Patterns, []string{"*.md", "*.mdx"}) {
		t.Errorf("Patterns = %v", cfg.Files.Patterns)
	}
	if cfg.Session.MaxEntries != 10 || !cfg.Session.Enabled {
		t.Errorf("Session = %+v", cfg.Session)
	}
	if cfg.Source != filepath.Join("/cfg", "config.toml") {
		t.Errorf("Source = %q", cfg.Source)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	files := memFS{
		"/etc/mdedit.toml": "[editor]\ntab_width = 2\n[log]\nlevel = \"warn\"\n",
	}
	env := []string{
		"MDEDIT_TAB_WIDTH=8",
		"MDEDIT_WATCH_ENABLED=false",
	}

	cfg, err := Load(WithDir("/cfg"), WithPath("/etc/mdedit.toml"), WithFS(files), WithEnviron(env))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want env override 8", cfg.Editor.TabWidth)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want file value", cfg.Log.Level)
	}
	if cfg.Watch.Enabled {
		t.Error("Watch.Enabled should be false")
	}
	if cfg.LogLevel() != logging.LevelWarn {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestLoadDecodeError(t *testing.T) {
	files := memFS{filepath.Join("/cfg", "config.toml"): "[editor]\ntab_width = \"wide\"\n"}

	_, err := Load(WithDir("/cfg"), WithFS(files), WithEnviron(nil))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("err = %v, want ErrDecode", err)
	}
}

func TestLoadValidationError(t *testing.T) {
	files := memFS{filepath.Join("/cfg", "config.toml"): "[editor]\ntab_width = 0\nline_ending = \"cr\"\n"}

	_, err := Load(WithDir("/cfg"), WithFS(files), WithEnviron(nil))
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) != 2 {
		t.Fatalf("err = %#v, want two validation errors", err)
	}
	if verrs[0].Path != "editor.tab_width" || verrs[1].Path != "editor.line_ending" {
		t.Errorf("paths = %s, %s", verrs[0].Path, verrs[1].Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty line ending means auto", func(c *Config) { c.Editor.LineEnding = "" }, ""},
		{"tab width too large", func(c *Config) { c.Editor.TabWidth = 40 }, "editor.tab_width"},
		{"max undo", func(c *Config) { c.Editor.MaxUndo = 0 }, "editor.max_undo"},
		{"no patterns", func(c *Config) { c.Files.Patterns = nil }, "files.patterns"},
		{"bad pattern", func(c *Config) { c.Files.Patterns = []string{"[md"} }, "files.patterns"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"session entries", func(c *Config) { c.Session.MaxEntries = -1 }, "session.max_entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("/cfg")
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.path == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Path != tt.path {
				t.Errorf("Path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestLineEnding(t *testing.T) {
	tests := []struct {
		setting string
		want    buffer.LineEnding
		forced  bool
	}{
		{LineEndingAuto, buffer.LineEndingLF, false},
		{LineEndingLF, buffer.LineEndingLF, true},
		{LineEndingCRLF, buffer.LineEndingCRLF, true},
	}
	for _, tt := range tests {
		cfg := Default("/cfg")
		cfg.Editor.LineEnding = tt.setting
		got, forced := cfg.LineEnding()
		if got != tt.want || forced != tt.forced {
			t.Errorf("%s: LineEnding() = %v, %v", tt.setting, got, forced)
		}
	}
}

func TestMatches(t *testing.T) {
	cfg := Default("/cfg")
	cfg.Files.Patterns = []string{"*.md", "README"}

	tests := map[string]bool{
		"notes.md":         true,
		"/docs/guide.md":   true,
		"README":           true,
		"main.go":          false,
		"/docs/md/file.go": false,
	}
	for name, want := range tests {
		if got := cfg.Matches(name); got != want {
			t.Errorf("Matches(%q) = %v, want %v", name, got, want)
		}
	}
}
