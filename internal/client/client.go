// Package client translates CLI verbs into protocol round-trips against a
// session daemon and formats responses for display.
package client

import (
	"bufio"
	"fmt"
	"net"
	"strings"

	"github.com/guibef/interminai-plus/internal/protocol"
	"github.com/guibef/interminai-plus/internal/vom"
)

// Client talks to one session daemon.
type Client struct {
	SocketPath string
}

// New returns a client for the daemon at socketPath.
func New(socketPath string) *Client {
	return &Client{SocketPath: socketPath}
}

// roundTrip opens a connection, sends one request, and reads one response.
func (c *Client) roundTrip(req *protocol.Request) (*protocol.Response, error) {
	conn, err := net.Dial("unix", c.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon socket: %w", err)
	}
	defer conn.Close()

	if err := protocol.SendRequest(conn, req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	resp, err := protocol.ReadResponse(bufio.NewReader(conn))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return resp, nil
}

// Input writes raw bytes to the child's terminal.
func (c *Client) Input(data string) error {
	resp, err := c.roundTrip(&protocol.Request{Type: protocol.CmdInput, Data: &data})
	if err != nil {
		return err
	}
	return protocol.DecodeData(resp, &protocol.EmptyData{})
}

// Output fetches the rendered screen in the given format.
func (c *Client) Output(format string) (*protocol.OutputData, error) {
	resp, err := c.roundTrip(&protocol.Request{Type: protocol.CmdOutput, Format: format})
	if err != nil {
		return nil, err
	}
	var out protocol.OutputData
	if err := protocol.DecodeData(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Running reports whether the child is alive, with the exit code when not.
func (c *Client) Running() (*protocol.RunningData, error) {
	resp, err := c.roundTrip(&protocol.Request{Type: protocol.CmdRunning})
	if err != nil {
		return nil, err
	}
	var rd protocol.RunningData
	if err := protocol.DecodeData(resp, &rd); err != nil {
		return nil, err
	}
	return &rd, nil
}

// Wait blocks until the child exits and returns its exit code.
func (c *Client) Wait() (int, error) {
	resp, err := c.roundTrip(&protocol.Request{Type: protocol.CmdWait})
	if err != nil {
		return 0, err
	}
	var wd protocol.WaitData
	if err := protocol.DecodeData(resp, &wd); err != nil {
		return 0, err
	}
	return wd.ExitCode, nil
}

// Kill delivers a signal to the child.
func (c *Client) Kill(signal string) (string, error) {
	resp, err := c.roundTrip(&protocol.Request{Type: protocol.CmdKill, Signal: &signal})
	if err != nil {
		return "", err
	}
	var kd protocol.KillData
	if err := protocol.DecodeData(resp, &kd); err != nil {
		return "", err
	}
	return kd.SignalSent, nil
}

// Stop requests daemon shutdown.
func (c *Client) Stop() (string, error) {
	resp, err := c.roundTrip(&protocol.Request{Type: protocol.CmdStop})
	if err != nil {
		return "", err
	}
	var sd protocol.StopData
	if err := protocol.DecodeData(resp, &sd); err != nil {
		return "", err
	}
	return sd.Message, nil
}

// Resize pushes a new terminal size.
func (c *Client) Resize(cols, rows uint16) error {
	resp, err := c.roundTrip(&protocol.Request{Type: protocol.CmdResize, Cols: &cols, Rows: &rows})
	if err != nil {
		return err
	}
	return protocol.DecodeData(resp, &protocol.ResizeData{})
}

// Vom fetches the analyzed component list.
func (c *Client) Vom() ([]vom.Component, error) {
	resp, err := c.roundTrip(&protocol.Request{Type: protocol.CmdVom})
	if err != nil {
		return nil, err
	}
	var vd protocol.VomData
	if err := protocol.DecodeData(resp, &vd); err != nil {
		return nil, err
	}
	return vd.Components, nil
}

// ApplyCursorInverse wraps the character under the cursor in inverse-video
// escape codes. Positions outside the rendered text leave it unchanged.
func ApplyCursorInverse(screen string, cursorRow, cursorCol int) string {
	lines := strings.Split(screen, "\n")
	if cursorRow < 0 || cursorRow >= len(lines) {
		return screen
	}
	runes := []rune(lines[cursorRow])
	if cursorCol < 0 || cursorCol >= len(runes) {
		return screen
	}

	var b strings.Builder
	for i, r := range runes {
		if i == cursorCol {
			b.WriteString("\x1b[7m")
			b.WriteRune(r)
			b.WriteString("\x1b[27m")
		} else {
			b.WriteRune(r)
		}
	}
	lines[cursorRow] = b.String()
	return strings.Join(lines, "\n")
}

// FormatCursorLine renders the 1-based cursor position header.
func FormatCursorLine(row, col int) string {
	return fmt.Sprintf("Cursor: row %d, col %d", row+1, col+1)
}
