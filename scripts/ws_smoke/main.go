package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/studysync/realtime-server/internal/proto"
)

// Manual smoke test: connect, join a room, optionally send a note update,
// then print whatever the relay delivers until the timeout expires.
func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "tester", "userId to join with")
	room := flag.String("room", "study-1", "room to join")
	noteID := flag.Int64("note", 0, "if set, send a note_update for this note id")
	content := flag.String("content", "hello from smoke test", "note content to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	join := proto.Join{UserID: proto.StringID(*user), Room: *room}
	if err := wsjson.Write(ctx, conn, struct {
		Type string `json:"type"`
		proto.Join
	}{Type: proto.TypeJoin, Join: join}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	if *noteID != 0 {
		update := proto.NoteUpdate{Room: *room, NoteID: *noteID, Content: *content}
		if err := wsjson.Write(ctx, conn, struct {
			Type string `json:"type"`
			proto.NoteUpdate
		}{Type: proto.TypeNoteUpdate, NoteUpdate: update}); err != nil {
			return fmt.Errorf("send note_update: %w", err)
		}
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		var probe struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &probe); err != nil {
			fmt.Printf("unparseable frame: %s\n", string(data))
			continue
		}
		fmt.Printf("event %s: %s\n", probe.Type, string(data))
	}
}
