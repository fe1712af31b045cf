package relay

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studysync/realtime-server/internal/proto"
)

// DefaultSendBuffer is the per-client event buffer used when the configured
// value is not positive.
const DefaultSendBuffer = 16

// Relay owns the registry of live connections and fans events out to rooms.
// A room is not stored anywhere: it is the set of clients whose Room field
// matches, computed at broadcast time, and it vanishes when the last such
// client disconnects.
type Relay struct {
	log        *zerolog.Logger
	sendBuffer int

	mu      sync.Mutex
	clients map[string]*Client
}

// New constructs an empty relay. sendBuffer is the capacity of each client's
// outbound event channel.
func New(logger *zerolog.Logger, sendBuffer int) *Relay {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Relay{
		log:        logger,
		sendBuffer: sendBuffer,
		clients:    make(map[string]*Client),
	}
}

// Connect registers a fresh client with a new connection ID and no room.
// Acceptance is unconditional; identity arrives later with a join message.
func (r *Relay) Connect() *Client {
	c := &Client{
		ID:     uuid.NewString(),
		Events: make(chan proto.Event, r.sendBuffer),
	}

	r.mu.Lock()
	r.clients[c.ID] = c
	r.mu.Unlock()

	r.log.Debug().Str("client_id", c.ID).Msg("client connected")
	return c
}

// HandleMessage dispatches one raw frame from the given connection. Malformed
// or unrecognized frames are logged and dropped; the connection is never
// closed over a bad message, and no error goes back to the sender.
func (r *Relay) HandleMessage(clientID string, raw []byte) {
	in, err := proto.DecodeInbound(raw)
	if err != nil {
		var unknown *proto.UnknownTypeError
		if errors.As(err, &unknown) {
			r.log.Warn().Str("client_id", clientID).Str("type", unknown.Type).Msg("unknown message type")
		} else {
			r.log.Warn().Err(err).Str("client_id", clientID).Msg("dropping malformed message")
		}
		return
	}

	switch m := in.(type) {
	case proto.Join:
		r.handleJoin(clientID, m)
	case proto.NoteUpdate:
		if m.Room == "" {
			r.log.Warn().Str("client_id", clientID).Msg("note_update without room dropped")
			return
		}
		r.broadcast(m.Room, proto.NewNoteUpdated(m), clientID)
	case proto.TaskUpdate:
		if m.Room == "" {
			r.log.Warn().Str("client_id", clientID).Msg("task_update without room dropped")
			return
		}
		r.broadcast(m.Room, proto.NewTaskUpdated(m), clientID)
	}
}

func (r *Relay) handleJoin(clientID string, m proto.Join) {
	if m.Room == "" {
		r.log.Warn().Str("client_id", clientID).Msg("join without room dropped")
		return
	}

	r.mu.Lock()
	c, ok := r.clients[clientID]
	if ok {
		// A repeated join simply re-targets the connection; there is no
		// explicit leave in the protocol.
		c.UserID = m.UserID
		c.Room = m.Room
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	r.log.Info().
		Str("client_id", clientID).
		Str("user", m.UserID.String()).
		Str("room", m.Room).
		Msg("client joined room")

	r.broadcast(m.Room, proto.NewUserJoined(m.UserID, m.Room), clientID)
}

// Disconnect removes the client from the registry and, if it had joined a
// room, announces user_left to the remaining members. A connection that
// never joined disappears silently.
func (r *Relay) Disconnect(clientID string) {
	r.mu.Lock()
	c, ok := r.clients[clientID]
	if ok {
		delete(r.clients, clientID)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	if c.Room != "" {
		r.broadcast(c.Room, proto.NewUserLeft(c.UserID, c.Room), c.ID)
	}

	// No sender can reach this client anymore: broadcasts only run while it
	// is in the registry.
	close(c.Events)

	r.log.Debug().Str("client_id", clientID).Str("room", c.Room).Msg("client disconnected")
}

// broadcast delivers ev to every current member of room except excludeID.
// Delivery is best-effort and non-blocking: a recipient whose buffer is full
// loses the event rather than stalling the rest of the room.
func (r *Relay) broadcast(room string, ev proto.Event, excludeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.clients {
		if c.Room != room || id == excludeID {
			continue
		}
		select {
		case c.Events <- ev:
		default:
			r.log.Warn().
				Str("client_id", id).
				Str("event", ev.EventType()).
				Msg("recipient buffer full, event dropped")
		}
	}
}

// Stats is a point-in-time view of the registry.
type Stats struct {
	Connections int            `json:"connections"`
	Rooms       map[string]int `json:"rooms"`
}

// Snapshot reports current connection and room occupancy counts.
func (r *Relay) Snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Stats{
		Connections: len(r.clients),
		Rooms:       make(map[string]int),
	}
	for _, c := range r.clients {
		if c.Room != "" {
			s.Rooms[c.Room]++
		}
	}
	return s
}
