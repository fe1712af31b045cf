package http

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/studysync/realtime-server/internal/config"
	"github.com/studysync/realtime-server/internal/relay"
)

type tsWriter struct{}

func (tsWriter) Write(p []byte) (int, error) {
	return fmt.Fprintf(os.Stderr, "%s %s", time.Now().Format("05.000000"), p)
}

func TestZZDebug(t *testing.T) {
	logger := zerolog.New(tsWriter{}).Level(zerolog.DebugLevel)
	rel := relay.New(&logger, 16)
	server := NewServer(rel, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, &logger)
	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	connA, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial A: %v", err)
	}
	defer connA.Close(websocket.StatusNormalClosure, "done")
	fmt.Fprintf(os.Stderr, "%s dialed A\n", time.Now().Format("05.000000"))
	connB, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial B: %v", err)
	}
	defer connB.Close(websocket.StatusNormalClosure, "done")
	fmt.Fprintf(os.Stderr, "%s dialed B\n", time.Now().Format("05.000000"))

	if err := wsjson.Write(ctx, connA, map[string]any{"type": "join", "userId": 7, "room": "study-42"}); err != nil {
		t.Fatalf("join A: %v", err)
	}
	fmt.Fprintf(os.Stderr, "%s wrote join A\n", time.Now().Format("05.000000"))
	if err := wsjson.Write(ctx, connB, map[string]any{"type": "join", "userId": 9, "room": "study-42"}); err != nil {
		t.Fatalf("join B: %v", err)
	}
	fmt.Fprintf(os.Stderr, "%s wrote join B\n", time.Now().Format("05.000000"))
	time.Sleep(1500 * time.Millisecond)
}
