package protocol

import (
	"bufio"
	"encoding/json"
	"net"
	"strings"
	"testing"
)

func TestRequestResponseRoundTrip(t *testing.T) {
	server, clientConn := net.Pipe()
	defer server.Close()
	defer clientConn.Close()

	data := "hello\n"
	go func() {
		SendRequest(clientConn, &Request{Type: CmdInput, Data: &data})
	}()

	req, err := ReadRequest(bufio.NewReader(server))
	if err != nil {
		t.Fatalf("ReadRequest: %v", err)
	}
	if req.Type != CmdInput || req.Data == nil || *req.Data != data {
		t.Errorf("request = %+v", req)
	}

	go func() {
		SendResponse(server, OK(OutputData{
			Screen: "hi\n",
			Cursor: CursorPos{Row: 1, Col: 2},
			Size:   ScreenSize{Rows: 24, Cols: 80},
		}))
	}()

	resp, err := ReadResponse(bufio.NewReader(clientConn))
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	var out OutputData
	if err := DecodeData(resp, &out); err != nil {
		t.Fatalf("DecodeData: %v", err)
	}
	if out.Screen != "hi\n" || out.Cursor.Row != 1 || out.Size.Cols != 80 {
		t.Errorf("payload = %+v", out)
	}
}

func TestWireFormatIsLineDelimitedJSON(t *testing.T) {
	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(Request{Type: CmdRunning}); err != nil {
		t.Fatal(err)
	}
	line := buf.String()
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("encoded request not newline-terminated: %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Errorf("encoded request spans lines: %q", line)
	}
}

func TestMissingFieldsDecodeAsNil(t *testing.T) {
	var req Request
	if err := json.Unmarshal([]byte(`{"type":"KILL"}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.Signal != nil || req.Data != nil || req.Cols != nil || req.Rows != nil {
		t.Errorf("absent fields should be nil: %+v", req)
	}

	if err := json.Unmarshal([]byte(`{"type":"RESIZE","cols":100,"rows":30}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.Cols == nil || *req.Cols != 100 || req.Rows == nil || *req.Rows != 30 {
		t.Errorf("present fields should decode: %+v", req)
	}
}

func TestErrorResponses(t *testing.T) {
	resp := Errorf("bad thing: %d", 7)
	if resp.Status != StatusError || resp.Error != "bad thing: 7" {
		t.Errorf("Errorf = %+v", resp)
	}
	if err := DecodeData(resp, &EmptyData{}); err == nil {
		t.Error("DecodeData on error response should fail")
	}
}
