package remote

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Faultbox/heightview/internal/engine/input"
	"github.com/Faultbox/heightview/pkg/math"
)

func dial(t *testing.T) (*websocket.Conn, *Server) {
	t.Helper()
	srv := NewServer(DefaultConfig())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, srv
}

func read(t *testing.T, conn *websocket.Conn) (int, []byte) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	return kind, data
}

func readText[T any](t *testing.T, conn *websocket.Conn, wantType string) T {
	t.Helper()
	kind, data := read(t, conn)
	if kind != websocket.TextMessage {
		t.Fatalf("got binary message, want %s", wantType)
	}
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("decoding %s: %v", data, err)
	}
	if env.Type != wantType {
		t.Fatalf("message type = %q, want %q: %s", env.Type, wantType, data)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decoding %s: %v", data, err)
	}
	return v
}

func readMesh(t *testing.T, conn *websocket.Conn) MeshMessage {
	t.Helper()
	m := readText[MeshMessage](t, conn, MessageMesh)
	kind, glb := read(t, conn)
	if kind != websocket.BinaryMessage || !bytes.HasPrefix(glb, []byte("glTF")) {
		t.Fatalf("mesh payload is not a GLB (kind %d)", kind)
	}
	return m
}

func send(t *testing.T, conn *websocket.Conn, e input.Event) {
	t.Helper()
	if err := conn.WriteJSON(e); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	img.Set(0, 0, color.Gray{Y: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestSessionGreeting(t *testing.T) {
	conn, _ := dial(t)

	m := readMesh(t, conn)
	if m.Triangles != 12 || m.Source != "cube" {
		t.Errorf("initial mesh = %+v, want the 12-triangle cube", m)
	}
	f := readText[FrameMessage](t, conn, MessageFrame)
	if f.Index != 1 || f.Subject != "cube" || f.VertexCount != 36 || f.Primitive != "triangles" {
		t.Errorf("initial frame = %+v", f)
	}
}

func TestFrameMessageFields(t *testing.T) {
	conn, _ := dial(t)
	readMesh(t, conn)

	_, data := read(t, conn)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("decoding frame: %v", err)
	}
	for _, key := range []string{"type", "index", "model_view", "projection", "primitive", "vertex_count", "subject"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("frame has no %q field: %s", key, data)
		}
	}
	var mv []float32
	if err := json.Unmarshal(fields["model_view"], &mv); err != nil || len(mv) != 16 {
		t.Errorf("model_view = %s, want 16 floats", fields["model_view"])
	}
}

func TestSessionDragRotates(t *testing.T) {
	conn, _ := dial(t)
	readMesh(t, conn)
	readText[FrameMessage](t, conn, MessageFrame)

	send(t, conn, input.Event{Type: input.EventResize, Width: 800, Height: 600})
	readText[FrameMessage](t, conn, MessageFrame)
	send(t, conn, input.Event{Type: input.EventPointerDown, Button: input.ButtonLeft, X: 400, Y: 300})
	readText[FrameMessage](t, conn, MessageFrame)
	send(t, conn, input.Event{Type: input.EventPointerMove, X: 500, Y: 300})
	f := readText[FrameMessage](t, conn, MessageFrame)

	view := math.LookAt(math.Vec3{Y: 5, Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	want := view.Mul(math.RotateY(0.7853982))
	if !f.ModelView.ApproxEqual(want, 1e-4) {
		t.Errorf("model_view = %v, want %v", f.ModelView, want)
	}
	if f.Index != 4 {
		t.Errorf("frame index = %d, want 4", f.Index)
	}
}

func TestSessionSurvivesZeroWidthResize(t *testing.T) {
	conn, _ := dial(t)
	readMesh(t, conn)
	readText[FrameMessage](t, conn, MessageFrame)

	send(t, conn, input.Event{Type: input.EventResize, Width: 0, Height: 600})
	f := readText[FrameMessage](t, conn, MessageFrame)
	if f.Index != 2 {
		t.Errorf("frame index = %d, want 2", f.Index)
	}

	send(t, conn, input.Event{Type: input.EventResize, Width: 800, Height: 600})
	if f := readText[FrameMessage](t, conn, MessageFrame); f.Index != 3 {
		t.Errorf("frame index after recovery = %d, want 3", f.Index)
	}
}

func TestSessionUpload(t *testing.T) {
	conn, _ := dial(t)
	readMesh(t, conn)
	readText[FrameMessage](t, conn, MessageFrame)

	if err := conn.WriteMessage(websocket.BinaryMessage, pngBytes(t, 5, 4)); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	m := readMesh(t, conn)
	if m.Width != 5 || m.Height != 4 || m.Triangles != 40 || m.Generation != 1 {
		t.Errorf("mesh = %+v, want 5x4 with 40 triangles", m)
	}
	f := readText[FrameMessage](t, conn, MessageFrame)
	if f.Subject != "terrain" || f.VertexCount != 120 {
		t.Errorf("frame after upload = %+v", f)
	}
}

func TestSessionErrors(t *testing.T) {
	conn, _ := dial(t)
	readMesh(t, conn)
	readText[FrameMessage](t, conn, MessageFrame)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"teleport"}`)); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	if e := readText[ErrorMessage](t, conn, MessageError); !strings.Contains(e.Error, "teleport") {
		t.Errorf("error = %q", e.Error)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte("not an image")); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	if e := readText[ErrorMessage](t, conn, MessageError); e.Generation != 1 {
		t.Errorf("load error = %+v, want generation 1", e)
	}
}

func TestSessionQuit(t *testing.T) {
	conn, srv := dial(t)
	readMesh(t, conn)
	readText[FrameMessage](t, conn, MessageFrame)

	send(t, conn, input.Event{Type: input.EventQuit})
	readText[FrameMessage](t, conn, MessageFrame)

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("read after quit = %v, want normal closure", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for srv.Sessions() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := srv.Sessions(); n != 0 {
		t.Errorf("sessions = %d after quit, want 0", n)
	}
}

func TestHealthz(t *testing.T) {
	srv := NewServer(DefaultConfig())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
