// Package ptyproc runs one child process on a pseudo-terminal and manages
// its lifecycle: spawn, status polling, signals, resize, teardown.
package ptyproc

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// Proc is a child process attached to a PTY. The master side is owned here
// and set nonblocking so drains never stall the daemon.
type Proc struct {
	master *os.File
	// fd is the master's raw descriptor, captured once: every call to
	// (*os.File).Fd switches the descriptor back to blocking mode.
	fd  int
	cmd *exec.Cmd
	pid int
}

// Start launches argv[0] with argv[1..] on a new PTY of the given size. The
// child becomes a session leader with the PTY slave as its controlling
// terminal and stdio; TERM is removed from its environment so applications
// fall back to the basic sequences the emulator handles.
func Start(argv []string, rows, cols uint16) (*Proc, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = envWithoutTerm(os.Environ())

	master, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	if err != nil {
		return nil, fmt.Errorf("start %q in pty: %w", argv[0], err)
	}

	fd := int(master.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		master.Close()
		return nil, fmt.Errorf("set pty master nonblocking: %w", err)
	}

	return &Proc{master: master, fd: fd, cmd: cmd, pid: cmd.Process.Pid}, nil
}

// envWithoutTerm filters TERM out of env.
func envWithoutTerm(env []string) []string {
	out := make([]string, 0, len(env))
	for _, e := range env {
		if strings.HasPrefix(e, "TERM=") {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Pid returns the child's process id.
func (p *Proc) Pid() int {
	return p.pid
}

// Write sends bytes to the child's terminal input. A single call maps to a
// single PTY write; nothing is buffered.
func (p *Proc) Write(data []byte) (int, error) {
	return unix.Write(p.fd, data)
}

// Drain reads the master until it would block or hits EOF, forwarding every
// chunk to w. Write errors from w are ignored: w is the emulator, which
// never fails.
func (p *Proc) Drain(w io.Writer) {
	buf := make([]byte, 4096)
	for {
		n, err := unix.Read(p.fd, buf)
		if n > 0 {
			w.Write(buf[:n])
		}
		if err != nil || n <= 0 {
			return
		}
	}
}

// PollExit reaps the child without blocking. It reports (code, true) exactly
// once, on the first poll that observes termination: the raw exit status for
// a normal exit, 128+signo for a signal death. Callers cache the result.
func (p *Proc) PollExit() (int, bool) {
	var ws unix.WaitStatus
	wpid, err := unix.Wait4(p.pid, &ws, unix.WNOHANG, nil)
	if err != nil || wpid != p.pid {
		return 0, false
	}
	switch {
	case ws.Exited():
		return ws.ExitStatus(), true
	case ws.Signaled():
		return 128 + int(ws.Signal()), true
	}
	return 0, false
}

// Signal delivers sig to the child.
func (p *Proc) Signal(sig unix.Signal) error {
	if err := unix.Kill(p.pid, sig); err != nil {
		return fmt.Errorf("kill pid %d with %s: %w", p.pid, unix.SignalName(sig), err)
	}
	return nil
}

// Resize pushes a new window size to the PTY (TIOCSWINSZ on the master).
func (p *Proc) Resize(rows, cols uint16) error {
	if err := pty.Setsize(p.master, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		return fmt.Errorf("set pty size: %w", err)
	}
	return nil
}

// Close releases the master. Final teardown step; the fd stays valid until
// this point.
func (p *Proc) Close() error {
	return p.master.Close()
}
