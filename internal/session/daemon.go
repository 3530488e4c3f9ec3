package session

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/guibef/interminai-plus/internal/activitylog"
	"github.com/guibef/interminai-plus/internal/emulator"
	"github.com/guibef/interminai-plus/internal/ptyproc"
	"github.com/guibef/interminai-plus/internal/registry"
	"github.com/guibef/interminai-plus/internal/socketpath"
	"github.com/guibef/interminai-plus/internal/vom"
)

// Poll cadences for the daemon's loops.
const (
	readerInterval = 50 * time.Millisecond
	acceptInterval = 200 * time.Millisecond
	waitInterval   = 100 * time.Millisecond
	drainGrace     = 200 * time.Millisecond
)

// Options configures a daemon run.
type Options struct {
	SocketPath    string
	AutoGenerated bool
	Rows, Cols    uint16
	Argv          []string
	SessionID     string
	Log           *activitylog.Logger
	VomOptions    vom.Options
}

// Daemon is one running session: shared state plus the socket listener.
type Daemon struct {
	state *State
	ln    *net.UnixListener
	log   *activitylog.Logger
	vom   vom.Options
}

// Run starts the child, binds the socket, and serves requests until the
// shutdown latch is set. Startup failures (spawn, bind) are fatal and
// returned; after startup, errors are per-request and the loop continues.
func Run(opts Options) error {
	log := opts.Log
	if log == nil {
		log = activitylog.Nop()
	}

	proc, err := ptyproc.Start(opts.Argv, opts.Rows, opts.Cols)
	if err != nil {
		return err
	}

	st := newState(proc, emulator.NewScreen(int(opts.Rows), int(opts.Cols)), opts.SocketPath, opts.AutoGenerated)

	// Stale socket files from a crashed daemon would fail the bind.
	os.Remove(opts.SocketPath)
	addr := &net.UnixAddr{Name: opts.SocketPath, Net: "unix"}
	ln, err := net.ListenUnix("unix", addr)
	if err != nil {
		proc.Close()
		return fmt.Errorf("listen on %s: %w", opts.SocketPath, err)
	}

	d := &Daemon{state: st, ln: ln, log: log, vom: opts.VomOptions}
	if d.vom.TabRowThreshold == 0 {
		d.vom = vom.DefaultOptions()
	}

	log.SessionStart(opts.SocketPath, opts.Argv, proc.Pid())
	if opts.SessionID != "" {
		regEntry := registry.Entry{
			ID:      opts.SessionID,
			Socket:  opts.SocketPath,
			Pid:     os.Getpid(),
			Command: strings.Join(opts.Argv, " "),
		}
		if err := registry.Add(regEntry); err != nil {
			// Registry is advisory; the session works without it.
			log.Request("registry", err.Error())
		}
		defer registry.Remove(opts.SessionID)
	}

	go d.readerLoop()
	d.acceptLoop()

	// Let in-flight responses flush before tearing the socket down.
	time.Sleep(drainGrace)

	ln.Close()
	os.Remove(opts.SocketPath)
	if opts.AutoGenerated {
		socketpath.Cleanup(opts.SocketPath)
	}
	st.lock()
	st.proc.Close()
	st.unlock()

	log.Shutdown()
	log.Close()
	return nil
}

// readerLoop polls child status and drains PTY output into the emulator
// until the child terminates. Sleeps happen outside the lock.
func (d *Daemon) readerLoop() {
	for {
		time.Sleep(readerInterval)

		d.state.lock()
		d.state.pollChild()
		d.state.drainPTY()
		done := d.state.exitCode != nil
		if done {
			d.log.ChildExit(*d.state.exitCode)
		}
		d.state.unlock()

		if done {
			return
		}
	}
}

// acceptLoop serves connections one at a time until the shutdown latch is
// observed. Accept runs with a deadline so the latch check happens between
// connections.
func (d *Daemon) acceptLoop() {
	for {
		d.state.lock()
		stop := d.state.shouldShutdown()
		d.state.unlock()
		if stop {
			return
		}

		d.ln.SetDeadline(time.Now().Add(acceptInterval))
		conn, err := d.ln.AcceptUnix()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return
		}
		d.handleConn(conn)
	}
}
