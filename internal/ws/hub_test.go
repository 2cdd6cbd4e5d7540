package ws

import (
	"HayatAdmin/internal/screen"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type refreshRecorder struct {
	got chan string
	err error
}

func (r *refreshRecorder) HandleRefresh(_ context.Context, resource string) error {
	r.got <- resource
	return r.err
}

func startHub(t *testing.T, handler ClientMessageHandler) (*Hub, *websocket.Conn) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := NewHub(log)
	hub.SetHandler(handler)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, log, w, r)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return hub, conn
}

func TestBroadcastScreenEvent(t *testing.T) {
	hub, conn := startHub(t, nil)

	hub.BroadcastScreenEvent(screen.Event{Resource: "bed", Action: "create", RecordID: 4, Count: 3})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var got struct {
		Type string       `json:"type"`
		Data screen.Event `json:"data"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Type != EventScreenChanged || got.Data.Resource != "bed" || got.Data.RecordID != 4 {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestClientRefreshRequest(t *testing.T) {
	rec := &refreshRecorder{got: make(chan string, 1), err: errors.New("backend down")}
	_, conn := startHub(t, rec)

	msg := `{"type":"refresh","data":{"resource":"course"}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case resource := <-rec.got:
		if resource != "course" {
			t.Fatalf("unexpected resource: %q", resource)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("refresh was not dispatched")
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), EventScreenError) || !strings.Contains(string(raw), "backend down") {
		t.Fatalf("failed refresh should be reported: %s", raw)
	}
}

func TestHandleClientMessageIgnoresGarbage(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := &refreshRecorder{got: make(chan string, 1)}
	hub.SetHandler(rec)

	hub.HandleClientMessage([]byte("not json"))
	hub.HandleClientMessage([]byte(`{"type":"refresh","data":{}}`))
	hub.HandleClientMessage([]byte(`{"type":"unknown"}`))

	select {
	case r := <-rec.got:
		t.Fatalf("nothing should be dispatched, got %q", r)
	default:
	}
}
