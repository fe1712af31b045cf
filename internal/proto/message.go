package proto

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types accepted from clients.
const (
	TypeJoin       = "join"
	TypeNoteUpdate = "note_update"
	TypeTaskUpdate = "task_update"
)

// Event types emitted to clients.
const (
	TypeUserJoined  = "user_joined"
	TypeUserLeft    = "user_left"
	TypeNoteUpdated = "note_updated"
	TypeTaskUpdated = "task_updated"
)

// ErrMissingType marks a well-formed JSON object with no usable "type" field.
var ErrMissingType = errors.New("message has no type field")

// UnknownTypeError marks an envelope whose "type" is not part of the protocol.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown message type %q", e.Type)
}

// Inbound is implemented by every client-to-server message variant.
type Inbound interface {
	inbound()
}

// Join announces the sender's identity and subscribes it to a room.
type Join struct {
	UserID UserID `json:"userId"`
	Room   string `json:"room"`
}

// NoteUpdate carries an edit to a shared note.
type NoteUpdate struct {
	Room    string `json:"room"`
	NoteID  int64  `json:"noteId"`
	Content string `json:"content"`
}

// TaskUpdate carries a status change for a task.
type TaskUpdate struct {
	Room   string `json:"room"`
	TaskID int64  `json:"taskId"`
	Status string `json:"status"`
}

func (Join) inbound()       {}
func (NoteUpdate) inbound() {}
func (TaskUpdate) inbound() {}

// DecodeInbound parses a raw frame into its typed variant. The envelope is
// flat: "type" sits alongside the payload fields, so the frame is probed for
// the tag first and then decoded into the matching struct.
func DecodeInbound(data []byte) (Inbound, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse envelope: %w", err)
	}
	if probe.Type == "" {
		return nil, ErrMissingType
	}

	switch probe.Type {
	case TypeJoin:
		var m Join
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse join: %w", err)
		}
		return m, nil
	case TypeNoteUpdate:
		var m NoteUpdate
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse note_update: %w", err)
		}
		return m, nil
	case TypeTaskUpdate:
		var m TaskUpdate
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse task_update: %w", err)
		}
		return m, nil
	default:
		return nil, &UnknownTypeError{Type: probe.Type}
	}
}

// Event is implemented by every server-to-client message variant.
type Event interface {
	EventType() string
}

// UserJoined notifies room members that a user joined.
type UserJoined struct {
	Type   string `json:"type"`
	UserID UserID `json:"userId"`
	Room   string `json:"room"`
}

// UserLeft notifies room members that a user's connection went away.
type UserLeft struct {
	Type   string `json:"type"`
	UserID UserID `json:"userId"`
	Room   string `json:"room"`
}

// NoteUpdated relays a note edit to the other members of the room.
type NoteUpdated struct {
	Type    string `json:"type"`
	Room    string `json:"room"`
	NoteID  int64  `json:"noteId"`
	Content string `json:"content"`
}

// TaskUpdated relays a task status change to the other members of the room.
type TaskUpdated struct {
	Type   string `json:"type"`
	Room   string `json:"room"`
	TaskID int64  `json:"taskId"`
	Status string `json:"status"`
}

func (e UserJoined) EventType() string  { return e.Type }
func (e UserLeft) EventType() string    { return e.Type }
func (e NoteUpdated) EventType() string { return e.Type }
func (e TaskUpdated) EventType() string { return e.Type }

// NewUserJoined builds a user_joined event.
func NewUserJoined(user UserID, room string) UserJoined {
	return UserJoined{Type: TypeUserJoined, UserID: user, Room: room}
}

// NewUserLeft builds a user_left event.
func NewUserLeft(user UserID, room string) UserLeft {
	return UserLeft{Type: TypeUserLeft, UserID: user, Room: room}
}

// NewNoteUpdated echoes a note_update back out under its normalized type.
func NewNoteUpdated(in NoteUpdate) NoteUpdated {
	return NoteUpdated{Type: TypeNoteUpdated, Room: in.Room, NoteID: in.NoteID, Content: in.Content}
}

// NewTaskUpdated echoes a task_update back out under its normalized type.
func NewTaskUpdated(in TaskUpdate) TaskUpdated {
	return TaskUpdated{Type: TypeTaskUpdated, Room: in.Room, TaskID: in.TaskID, Status: in.Status}
}
