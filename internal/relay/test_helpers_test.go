package relay

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/studysync/realtime-server/internal/proto"
)

func newTestRelay() *Relay {
	logger := zerolog.Nop()
	return New(&logger, 16)
}

// mustEvent asserts the next delivered event has the given type.
func mustEvent(t *testing.T, ch <-chan proto.Event, eventType string) proto.Event {
	t.Helper()

	select {
	case ev := <-ch:
		if ev.EventType() != eventType {
			t.Fatalf("expected %s event, got %s", eventType, ev.EventType())
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("expected %s event not received", eventType)
	}
	return nil
}

// assertNoEvent asserts nothing has been delivered. Dispatch is synchronous,
// so by the time HandleMessage returns any delivery is already buffered.
func assertNoEvent(t *testing.T, ch <-chan proto.Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %s: %#v", ev.EventType(), ev)
	default:
	}
}

func joinFrame(userID any, room string) []byte {
	switch id := userID.(type) {
	case string:
		return fmt.Appendf(nil, `{"type":"join","userId":%q,"room":%q}`, id, room)
	default:
		return fmt.Appendf(nil, `{"type":"join","userId":%v,"room":%q}`, id, room)
	}
}

func noteUpdateFrame(noteID int64, content, room string) []byte {
	return fmt.Appendf(nil, `{"type":"note_update","noteId":%d,"content":%q,"room":%q}`, noteID, content, room)
}

func taskUpdateFrame(taskID int64, status, room string) []byte {
	return fmt.Appendf(nil, `{"type":"task_update","taskId":%d,"status":%q,"room":%q}`, taskID, status, room)
}
