package activitylog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNopLoggerIsSafe(t *testing.T) {
	l := Nop()
	l.SessionStart("/tmp/sock", []string{"vim"}, 123)
	l.Request("OUTPUT", "")
	l.ChildExit(0)
	l.Shutdown()
	if err := l.Close(); err != nil {
		t.Errorf("Close on nop logger: %v", err)
	}
}

func TestLoggerWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.jsonl")
	l := New(path, "sess-1")
	l.SessionStart("/tmp/sock", []string{"sh", "-c", "true"}, 42)
	l.Request("KILL", "unknown signal: FOO")
	l.ChildExit(137)
	l.Shutdown()
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 0 not JSON: %v", err)
	}
	if first["event"] != "session_start" || first["session_id"] != "sess-1" {
		t.Errorf("first line = %v", first)
	}
	if first["command"] != "sh -c true" || first["pid"] != float64(42) {
		t.Errorf("session_start payload = %v", first)
	}

	var exit map[string]any
	json.Unmarshal([]byte(lines[2]), &exit)
	if exit["event"] != "child_exit" || exit["exit_code"] != float64(137) {
		t.Errorf("child_exit line = %v", exit)
	}
}

func TestNewWithEmptyPathDisabled(t *testing.T) {
	l := New("", "x")
	l.ChildExit(1)
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
