package relay

import "github.com/studysync/realtime-server/internal/proto"

// Client is one live connection as seen by the relay. The transport layer
// drains Events into the underlying socket; the relay itself never touches
// the network. UserID and Room are owned by the relay after registration and
// are only mutated under its registry lock.
type Client struct {
	ID     string
	UserID proto.UserID
	Room   string // empty until a join message arrives
	Events chan proto.Event
}
