package registry

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/guibef/interminai-plus/internal/config"
)

func setupDir(t *testing.T) {
	t.Helper()
	config.ResetCache()
	t.Setenv("INTERMINAI_DIR", t.TempDir())
	t.Cleanup(config.ResetCache)
}

func TestAddRemoveList(t *testing.T) {
	setupDir(t)

	// A live listener so one entry probes as alive.
	sock := filepath.Join(t.TempDir(), "live.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	if err := Add(Entry{ID: "a", Socket: sock, Pid: 1, Command: "vim"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := Add(Entry{ID: "b", Socket: "/nonexistent/sock", Pid: 2, Command: "htop"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	alive, dead, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(alive) != 1 || alive[0].ID != "a" {
		t.Errorf("alive = %+v, want entry a", alive)
	}
	if len(dead) != 1 || dead[0].ID != "b" {
		t.Errorf("dead = %+v, want entry b", dead)
	}

	// Dead entries were pruned; removing the live one empties the registry.
	if err := Remove("a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	alive, dead, err = List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(alive) != 0 || len(dead) != 0 {
		t.Errorf("registry not empty: alive=%v dead=%v", alive, dead)
	}
}

func TestRemoveMissingIDIsNoop(t *testing.T) {
	setupDir(t)
	if err := Remove("ghost"); err != nil {
		t.Errorf("Remove on empty registry: %v", err)
	}
}

func TestNewIDUnique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b || a == "" {
		t.Errorf("NewID not unique: %q %q", a, b)
	}
}

func TestEntriesTimestamped(t *testing.T) {
	setupDir(t)
	if err := Add(Entry{ID: "t", Socket: "/none", Command: "cat"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, dead, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(dead) != 1 || dead[0].StartedAt == "" {
		t.Errorf("StartedAt not filled: %+v", dead)
	}
}
