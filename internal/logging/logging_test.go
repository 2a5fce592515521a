package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if result := tt.level.String(); result != tt.expected {
			t.Errorf("Level(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		ok       bool
	}{
		{"debug", LevelDebug, true},
		{"DEBUG", LevelDebug, true},
		{"info", LevelInfo, true},
		{" Info ", LevelInfo, true},
		{"warn", LevelWarn, true},
		{"WARNING", LevelWarn, true},
		{"error", LevelError, true},
		{"unknown", LevelInfo, false},
		{"", LevelInfo, false},
	}

	for _, tt := range tests {
		result, ok := ParseLevel(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("ParseLevel('%s') = %d, %v, expected %d, %v", tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf, Prefix: "test"})

	l.Debug("debug %d", 1)
	l.Info("info")
	l.Warn("warn")
	l.Error("error %s", "x")

	out := buf.String()
	for _, want := range []string{"[DEBUG] test: debug 1", "[INFO] test: info", "[WARN] test: warn", "[ERROR] test: error x"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 4 {
		t.Errorf("expected 4 lines, got %d", n)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("messages below the level must be dropped")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn message missing")
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf})

	l.WithFields(map[string]any{"zeta": 1, "alpha": "a"}).WithComponent("engine").Info("msg")

	if !strings.Contains(buf.String(), "msg {alpha=a, component=engine, zeta=1}") {
		t.Errorf("unexpected fields: %s", buf.String())
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf})
	_ = l.WithField("k", "v")

	l.Info("plain")
	if strings.Contains(buf.String(), "k=v") {
		t.Error("parent logger gained a field")
	}
}

func TestLogger_SetLevelAndOutput(t *testing.T) {
	var first, second bytes.Buffer
	l := New(Config{Level: LevelError, Output: &first})

	l.Info("dropped")
	l.SetLevel(LevelInfo)
	if l.Level() != LevelInfo {
		t.Errorf("Level() = %s", l.Level())
	}
	l.SetOutput(&second)
	l.Info("kept")

	if first.Len() != 0 {
		t.Errorf("first output should be empty: %q", first.String())
	}
	if !strings.Contains(second.String(), "kept") {
		t.Error("second output missing message")
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf})

	l.Disable()
	l.Error("nope")
	l.Enable()
	l.Error("yes")

	if strings.Contains(buf.String(), "nope") || !strings.Contains(buf.String(), "yes") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNull(t *testing.T) {
	l := Null()
	l.Error("discarded")
	l.WithComponent("x").Info("discarded")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mdedit.log")

	l, closer, err := OpenFile(path, Config{Level: LevelInfo})
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	l.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file content %q", data)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != LevelInfo || cfg.Prefix != "mdedit" || cfg.Output != os.Stderr {
		t.Errorf("unexpected default config %+v", cfg)
	}
}
