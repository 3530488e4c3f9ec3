package session

import (
	"bufio"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/guibef/interminai-plus/internal/protocol"
)

// startTestDaemon runs a daemon for argv on a temp socket and returns the
// socket path plus a channel that carries Run's result.
func startTestDaemon(t *testing.T, argv []string) (string, chan error) {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "socket")
	done := make(chan error, 1)
	go func() {
		done <- Run(Options{
			SocketPath: sock,
			Rows:       24,
			Cols:       80,
			Argv:       argv,
		})
	}()

	for i := 0; i < 50; i++ {
		time.Sleep(50 * time.Millisecond)
		if conn, err := net.Dial("unix", sock); err == nil {
			conn.Close()
			return sock, done
		}
	}
	t.Fatalf("daemon socket %s never appeared", sock)
	return "", nil
}

func roundTrip(t *testing.T, sock string, req *protocol.Request) *protocol.Response {
	t.Helper()
	conn, err := net.Dial("unix", sock)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if err := protocol.SendRequest(conn, req); err != nil {
		t.Fatalf("send: %v", err)
	}
	resp, err := protocol.ReadResponse(bufio.NewReader(conn))
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp
}

func stopDaemon(t *testing.T, sock string, done chan error) {
	t.Helper()
	roundTrip(t, sock, &protocol.Request{Type: protocol.CmdStop})
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not shut down")
	}
}

func TestInputOutputRoundTrip(t *testing.T) {
	sock, done := startTestDaemon(t, []string{"cat"})
	defer stopDaemon(t, sock, done)

	data := "Hello\n"
	resp := roundTrip(t, sock, &protocol.Request{Type: protocol.CmdInput, Data: &data})
	if resp.Status != protocol.StatusOK {
		t.Fatalf("INPUT failed: %s", resp.Error)
	}

	time.Sleep(300 * time.Millisecond)

	resp = roundTrip(t, sock, &protocol.Request{Type: protocol.CmdOutput})
	var out protocol.OutputData
	if err := protocol.DecodeData(resp, &out); err != nil {
		t.Fatalf("OUTPUT: %v", err)
	}
	if !strings.Contains(out.Screen, "Hello") {
		t.Errorf("screen missing echoed input:\n%s", out.Screen)
	}
	if out.Size.Rows != 24 || out.Size.Cols != 80 {
		t.Errorf("size = %+v, want 24x80", out.Size)
	}
}

func TestRunningAndExitCode(t *testing.T) {
	sock, done := startTestDaemon(t, []string{"sh", "-c", "exit 42"})

	var rd protocol.RunningData
	deadline := time.Now().Add(3 * time.Second)
	for {
		resp := roundTrip(t, sock, &protocol.Request{Type: protocol.CmdRunning})
		if err := protocol.DecodeData(resp, &rd); err != nil {
			t.Fatalf("RUNNING: %v", err)
		}
		if !rd.Running || time.Now().After(deadline) {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if rd.Running {
		t.Fatal("child never reported exit")
	}
	if rd.ExitCode == nil || *rd.ExitCode != 42 {
		t.Errorf("exit_code = %v, want 42", rd.ExitCode)
	}

	stopDaemon(t, sock, done)
}

func TestWaitReturnsExitCode(t *testing.T) {
	sock, done := startTestDaemon(t, []string{"sh", "-c", "sleep 0.3; exit 7"})

	resp := roundTrip(t, sock, &protocol.Request{Type: protocol.CmdWait})
	var wd protocol.WaitData
	if err := protocol.DecodeData(resp, &wd); err != nil {
		t.Fatalf("WAIT: %v", err)
	}
	if wd.ExitCode != 7 {
		t.Errorf("WAIT exit_code = %d, want 7", wd.ExitCode)
	}

	stopDaemon(t, sock, done)
}

func TestKillEncodesSignalDeath(t *testing.T) {
	sock, done := startTestDaemon(t, []string{"sleep", "100"})

	sig := "9"
	resp := roundTrip(t, sock, &protocol.Request{Type: protocol.CmdKill, Signal: &sig})
	var kd protocol.KillData
	if err := protocol.DecodeData(resp, &kd); err != nil {
		t.Fatalf("KILL: %v", err)
	}
	if kd.SignalSent != "9" {
		t.Errorf("signal_sent = %q", kd.SignalSent)
	}

	resp = roundTrip(t, sock, &protocol.Request{Type: protocol.CmdWait})
	var wd protocol.WaitData
	if err := protocol.DecodeData(resp, &wd); err != nil {
		t.Fatalf("WAIT: %v", err)
	}
	if wd.ExitCode != 137 {
		t.Errorf("signal death exit_code = %d, want 137", wd.ExitCode)
	}

	stopDaemon(t, sock, done)
}

func TestResizeUpdatesScreen(t *testing.T) {
	sock, done := startTestDaemon(t, []string{"cat"})
	defer stopDaemon(t, sock, done)

	cols, rows := uint16(100), uint16(30)
	resp := roundTrip(t, sock, &protocol.Request{Type: protocol.CmdResize, Cols: &cols, Rows: &rows})
	if resp.Status != protocol.StatusOK {
		t.Fatalf("RESIZE failed: %s", resp.Error)
	}

	resp = roundTrip(t, sock, &protocol.Request{Type: protocol.CmdOutput})
	var out protocol.OutputData
	if err := protocol.DecodeData(resp, &out); err != nil {
		t.Fatalf("OUTPUT: %v", err)
	}
	if out.Size.Rows != 30 || out.Size.Cols != 100 {
		t.Errorf("size after resize = %+v, want 30x100", out.Size)
	}
}

func TestProtocolErrors(t *testing.T) {
	sock, done := startTestDaemon(t, []string{"cat"})
	defer stopDaemon(t, sock, done)

	tests := []struct {
		name string
		req  *protocol.Request
	}{
		{"unknown command", &protocol.Request{Type: "BOGUS"}},
		{"input without data", &protocol.Request{Type: protocol.CmdInput}},
		{"kill without signal", &protocol.Request{Type: protocol.CmdKill}},
		{"resize without size", &protocol.Request{Type: protocol.CmdResize}},
	}
	for _, tt := range tests {
		resp := roundTrip(t, sock, tt.req)
		if resp.Status != protocol.StatusError || resp.Error == "" {
			t.Errorf("%s: resp = %+v, want error", tt.name, resp)
		}
	}
}

func TestVomRequest(t *testing.T) {
	sock, done := startTestDaemon(t, []string{"sh", "-c", "printf ' [OK] '; sleep 60"})
	defer stopDaemon(t, sock, done)

	time.Sleep(300 * time.Millisecond)

	resp := roundTrip(t, sock, &protocol.Request{Type: protocol.CmdVom})
	var vd protocol.VomData
	if err := protocol.DecodeData(resp, &vd); err != nil {
		t.Fatalf("VOM: %v", err)
	}
	found := false
	for _, c := range vd.Components {
		if c.Text == "[OK]" {
			found = true
		}
	}
	if !found {
		t.Errorf("components missing [OK]: %+v", vd.Components)
	}
}
