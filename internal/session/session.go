// Package session runs the daemon side of one interactive terminal session:
// a child on a PTY, the virtual screen fed from it, and the Unix-socket
// request loop that exposes both.
package session

import (
	"sync"

	"github.com/guibef/interminai-plus/internal/emulator"
	"github.com/guibef/interminai-plus/internal/ptyproc"
)

// State is the shared session state. One lock guards all of it: the PTY
// reader and every request handler take mu for the duration of their work.
type State struct {
	mu sync.Mutex

	proc   *ptyproc.Proc
	screen *emulator.Screen

	// exitCode is nil while the child lives and set exactly once on the
	// first poll that observes termination.
	exitCode *int

	socketPath    string
	socketAutoGen bool

	// shutdown is a one-way latch; once set the accept loop drains and exits.
	shutdown bool
}

// newState wires the supervisor and screen into a fresh session state.
func newState(proc *ptyproc.Proc, screen *emulator.Screen, socketPath string, autoGen bool) *State {
	return &State{
		proc:          proc,
		screen:        screen,
		socketPath:    socketPath,
		socketAutoGen: autoGen,
	}
}

// lock acquires the session lock.
func (st *State) lock() {
	st.mu.Lock()
}

// unlock releases the session lock.
func (st *State) unlock() {
	st.mu.Unlock()
}

// pollChild checks for child termination and caches the exit code.
// Caller holds the lock.
func (st *State) pollChild() {
	if st.exitCode != nil {
		return
	}
	if code, done := st.proc.PollExit(); done {
		st.exitCode = &code
	}
}

// drainPTY pulls everything the PTY has buffered through the parser.
// Caller holds the lock.
func (st *State) drainPTY() {
	st.proc.Drain(st.screen)
}

// latchShutdown sets the shutdown flag. Caller holds the lock.
func (st *State) latchShutdown() {
	st.shutdown = true
}

// shouldShutdown reports the latch. Caller holds the lock.
func (st *State) shouldShutdown() bool {
	return st.shutdown
}
