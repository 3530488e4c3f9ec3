package session

import (
	"bufio"
	"errors"
	"io"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/guibef/interminai-plus/internal/protocol"
	"github.com/guibef/interminai-plus/internal/ptyproc"
	"github.com/guibef/interminai-plus/internal/vom"
)

// handleConn reads one request, dispatches it, and writes one response.
// Requests are serialized in accept order; each handler completes under the
// lock before its response is written.
func (d *Daemon) handleConn(conn *net.UnixConn) {
	defer conn.Close()

	req, err := protocol.ReadRequest(bufio.NewReader(conn))
	if err != nil {
		// EOF before a complete line: client gave up, nothing to answer.
		if errors.Is(err, io.EOF) {
			return
		}
		protocol.SendResponse(conn, protocol.Errorf("%v", err))
		return
	}

	var resp *protocol.Response
	switch req.Type {
	case protocol.CmdInput:
		resp = d.handleInput(req)
	case protocol.CmdOutput:
		resp = d.handleOutput(req)
	case protocol.CmdRunning:
		resp = d.handleRunning()
	case protocol.CmdWait:
		resp = d.handleWait(conn)
	case protocol.CmdKill:
		resp = d.handleKill(req)
	case protocol.CmdStop:
		resp = d.handleStop()
	case protocol.CmdResize:
		resp = d.handleResize(req)
	case protocol.CmdVom:
		resp = d.handleVom()
	default:
		resp = protocol.Errorf("unknown command: %s", req.Type)
	}

	d.log.Request(req.Type, resp.Error)
	protocol.SendResponse(conn, resp)
}

func (d *Daemon) handleInput(req *protocol.Request) *protocol.Response {
	if req.Data == nil {
		return protocol.Errorf("missing 'data' field")
	}

	d.state.lock()
	defer d.state.unlock()

	if _, err := d.state.proc.Write([]byte(*req.Data)); err != nil {
		return protocol.Errorf("failed to write to PTY: %v", err)
	}
	return protocol.OK(protocol.EmptyData{})
}

func (d *Daemon) handleOutput(req *protocol.Request) *protocol.Response {
	d.state.lock()
	defer d.state.unlock()

	// Opportunistic drain so a client that just sent input sees a fresh view.
	d.state.drainPTY()

	screen := d.state.screen
	var rendered string
	switch req.Format {
	case "ansi":
		rendered = screen.ToANSI()
	default:
		rendered = screen.ToASCII()
	}

	row, col := screen.Cursor()
	rows, cols := screen.Size()
	return protocol.OK(protocol.OutputData{
		Screen: rendered,
		Cursor: protocol.CursorPos{Row: row, Col: col},
		Size:   protocol.ScreenSize{Rows: rows, Cols: cols},
	})
}

func (d *Daemon) handleRunning() *protocol.Response {
	d.state.lock()
	defer d.state.unlock()

	d.state.pollChild()
	if d.state.exitCode != nil {
		return protocol.OK(protocol.RunningData{Running: false, ExitCode: d.state.exitCode})
	}
	return protocol.OK(protocol.RunningData{Running: true})
}

// handleWait blocks until the child terminates, probing the client socket
// between polls so a vanished client does not pin the handler forever.
func (d *Daemon) handleWait(conn *net.UnixConn) *protocol.Response {
	for {
		if clientGone(conn) {
			return protocol.Errorf("client disconnected")
		}

		d.state.lock()
		d.state.pollChild()
		if d.state.exitCode != nil {
			code := *d.state.exitCode
			d.state.unlock()
			return protocol.OK(protocol.WaitData{ExitCode: code})
		}
		d.state.unlock()

		time.Sleep(waitInterval)
	}
}

// clientGone peeks the connection without blocking; a zero-byte read means
// the peer closed.
func clientGone(conn *net.UnixConn) bool {
	raw, err := conn.SyscallConn()
	if err != nil {
		return true
	}
	gone := false
	buf := make([]byte, 1)
	raw.Control(func(fd uintptr) {
		n, _, err := unix.Recvfrom(int(fd), buf, unix.MSG_PEEK|unix.MSG_DONTWAIT)
		switch {
		case err == unix.EAGAIN || err == unix.EWOULDBLOCK:
			// No data, peer still connected.
		case err != nil:
			gone = true
		case n == 0:
			gone = true
		}
	})
	return gone
}

func (d *Daemon) handleKill(req *protocol.Request) *protocol.Response {
	if req.Signal == nil {
		return protocol.Errorf("missing 'signal' field")
	}
	sig, err := ptyproc.ParseSignal(*req.Signal)
	if err != nil {
		return protocol.Errorf("invalid signal: %v", err)
	}

	d.state.lock()
	defer d.state.unlock()

	if err := d.state.proc.Signal(sig); err != nil {
		return protocol.Errorf("failed to send signal: %v", err)
	}
	return protocol.OK(protocol.KillData{SignalSent: *req.Signal})
}

func (d *Daemon) handleStop() *protocol.Response {
	d.state.lock()
	defer d.state.unlock()

	if d.state.exitCode == nil {
		d.state.proc.Signal(unix.SIGTERM)
	}
	d.state.latchShutdown()
	return protocol.OK(protocol.StopData{Message: "Shutting down"})
}

func (d *Daemon) handleResize(req *protocol.Request) *protocol.Response {
	if req.Cols == nil {
		return protocol.Errorf("missing 'cols' field")
	}
	if req.Rows == nil {
		return protocol.Errorf("missing 'rows' field")
	}
	cols, rows := *req.Cols, *req.Rows
	if cols == 0 || rows == 0 {
		return protocol.Errorf("size must be positive")
	}

	d.state.lock()
	defer d.state.unlock()

	if err := d.state.proc.Resize(rows, cols); err != nil {
		return protocol.Errorf("failed to resize terminal: %v", err)
	}
	d.state.screen.Resize(int(rows), int(cols))
	return protocol.OK(protocol.ResizeData{Cols: cols, Rows: rows})
}

func (d *Daemon) handleVom() *protocol.Response {
	d.state.lock()
	defer d.state.unlock()

	d.state.drainPTY()
	row, col := d.state.screen.Cursor()
	components := vom.Analyze(d.state.screen, row, col, d.vom)
	return protocol.OK(protocol.VomData{Components: components})
}
