// Package registry tracks running sessions in a shared JSON file so the
// sessions verb can enumerate them. Concurrent starts race on the file, so
// every mutation runs under an exclusive flock.
package registry

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/guibef/interminai-plus/internal/config"
)

const (
	registryFile = "sessions.json"
	lockFile     = "sessions.lock"
)

// Entry describes one recorded session.
type Entry struct {
	ID        string `json:"id"`
	Socket    string `json:"socket"`
	Pid       int    `json:"pid"`
	Command   string `json:"command"`
	StartedAt string `json:"started_at"`
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.New().String()
}

func paths() (reg, lock string) {
	dir := config.Dir()
	return filepath.Join(dir, registryFile), filepath.Join(dir, lockFile)
}

// withLock runs fn while holding the registry flock.
func withLock(fn func(regPath string) error) error {
	regPath, lockPath := paths()
	if err := os.MkdirAll(filepath.Dir(regPath), 0o700); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}
	fl := flock.New(lockPath)
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("lock registry: %w", err)
	}
	defer fl.Unlock()
	return fn(regPath)
}

func read(regPath string) ([]Entry, error) {
	data, err := os.ReadFile(regPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt registry is not worth failing a start over.
		return nil, nil
	}
	return entries, nil
}

func write(regPath string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(regPath, append(data, '\n'), 0o644)
}

// Add records a session.
func Add(e Entry) error {
	if e.StartedAt == "" {
		e.StartedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return withLock(func(regPath string) error {
		entries, err := read(regPath)
		if err != nil {
			return err
		}
		return write(regPath, append(entries, e))
	})
}

// Remove drops the session with the given id. Missing ids are not an error.
func Remove(id string) error {
	return withLock(func(regPath string) error {
		entries, err := read(regPath)
		if err != nil {
			return err
		}
		kept := entries[:0]
		for _, e := range entries {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		return write(regPath, kept)
	})
}

// List returns recorded sessions with liveness determined by a short dial
// probe. Entries whose socket no longer answers are pruned from the file.
func List() (alive []Entry, dead []Entry, err error) {
	err = withLock(func(regPath string) error {
		entries, err := read(regPath)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if probe(e.Socket) {
				alive = append(alive, e)
			} else {
				dead = append(dead, e)
			}
		}
		if len(dead) > 0 {
			return write(regPath, alive)
		}
		return nil
	})
	return alive, dead, err
}

// probe checks whether a daemon still answers on the socket.
func probe(socketPath string) bool {
	conn, err := net.DialTimeout("unix", socketPath, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
