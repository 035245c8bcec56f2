package signaling

import (
	"log"

	"github.com/teleconf/signaling-server/room"
)

// Router classifies inbound signaling frames and dispatches them against the
// room directory and connection registry. One frame never affects more than
// one room; send failures to individual peers are swallowed because a peer
// that cannot be written to is indistinguishable from one that already left.
type Router struct {
	registry  *room.Registry
	directory *room.Directory
}

// NewRouter creates a router over the given state stores.
func NewRouter(registry *room.Registry, directory *room.Directory) *Router {
	return &Router{
		registry:  registry,
		directory: directory,
	}
}

// HandleMessage processes one inbound frame from conn. Malformed frames and
// unknown types are logged and dropped; the connection stays open.
func (r *Router) HandleMessage(conn room.Conn, data []byte) {
	msg, err := Decode(data)
	if err != nil {
		log.Printf("Dropping malformed message from %s: %v", conn.ID(), err)
		return
	}

	switch {
	case msg.Type == TypeJoin:
		r.handleJoin(conn, msg)
	case msg.Type == TypeLeave:
		r.handleLeave(conn, msg)
	case isForward(msg.Type):
		r.forward(conn, msg, data)
	case isBroadcast(msg.Type):
		r.broadcast(conn, msg, data)
	default:
		log.Printf("Unknown message type %q from %s", msg.Type, conn.ID())
	}
}

// HandleClose runs the leave path for a connection that closed without an
// explicit Leave message. Transport close, liveness termination and graceful
// leave all funnel through the same removal/notify/unbind sequence.
func (r *Router) HandleClose(conn room.Conn) {
	b, ok := r.registry.Lookup(conn)
	if !ok {
		return
	}

	if r.directory.RemoveMemberConn(b.RoomID, b.UserID, conn) {
		r.notifyLeave(conn, b.UserID, b.RoomID)
		log.Printf("User %s left room %s (connection closed)", b.UserID, b.RoomID)
	}
	r.registry.Unbind(conn)
}

// handleJoin binds the connection, adds the member (creating the room when
// new) and exchanges Join notifications: the room learns about the arrival,
// and the arrival learns about every existing member so it can start
// negotiating with each of them.
func (r *Router) handleJoin(conn room.Conn, msg *Message) {
	if msg.RoomID == "" || msg.UserID == "" {
		log.Printf("Dropping Join without room_id/user_id from %s", conn.ID())
		return
	}

	r.registry.Bind(conn, msg.UserID, msg.RoomID)
	// The pre-insertion snapshot comes from AddMember itself so that two
	// connections joining at once each see the other as existing.
	existing := r.directory.AddMember(msg.RoomID, msg.UserID, conn, msg.UserName)
	log.Printf("User %s joined room %s", msg.UserID, msg.RoomID)

	arrival := &Message{
		Type:     TypeJoin,
		UserID:   msg.UserID,
		UserName: msg.UserName,
		RoomID:   msg.RoomID,
	}
	if data, err := arrival.Encode(); err == nil {
		for _, m := range existing {
			// The joining user's replaced record (same identity on a new
			// connection) gets no notification either.
			if m.Conn == conn || m.UserID == msg.UserID {
				continue
			}
			m.Conn.Send(data)
		}
	}

	for _, m := range existing {
		if m.UserID == msg.UserID {
			continue
		}
		peer := &Message{
			Type:     TypeJoin,
			UserID:   m.UserID,
			UserName: m.Name,
			RoomID:   msg.RoomID,
		}
		if data, err := peer.Encode(); err == nil {
			conn.Send(data)
		}
	}
}

// handleLeave removes the member and notifies the remainder of the room.
// Leaving a room the user is not in is a silent no-op.
func (r *Router) handleLeave(conn room.Conn, msg *Message) {
	if r.directory.RemoveMember(msg.RoomID, msg.UserID) {
		r.notifyLeave(conn, msg.UserID, msg.RoomID)
		log.Printf("User %s left room %s", msg.UserID, msg.RoomID)
	}
	r.registry.Unbind(conn)
}

// forward relays a negotiation frame verbatim to the member named by
// target_id. Unknown rooms and targets drop the frame without feedback.
func (r *Router) forward(conn room.Conn, msg *Message, data []byte) {
	roomID := r.resolveRoom(conn, msg)
	if roomID == "" {
		return
	}

	target, ok := r.directory.MemberConn(roomID, msg.TargetID)
	if !ok {
		return
	}
	target.Send(data)
}

// broadcast relays an auxiliary frame verbatim to every member of the
// resolved room except the sender.
func (r *Router) broadcast(conn room.Conn, msg *Message, data []byte) {
	roomID := r.resolveRoom(conn, msg)
	if roomID == "" {
		return
	}

	for _, m := range r.directory.Members(roomID) {
		if m.Conn == conn {
			continue
		}
		m.Conn.Send(data)
	}
}

// notifyLeave broadcasts a Leave notification to the room, excluding the
// departed connection.
func (r *Router) notifyLeave(conn room.Conn, userID, roomID string) {
	note := &Message{
		Type:   TypeLeave,
		UserID: userID,
		RoomID: roomID,
	}
	data, err := note.Encode()
	if err != nil {
		return
	}
	for _, m := range r.directory.Members(roomID) {
		if m.Conn == conn {
			continue
		}
		m.Conn.Send(data)
	}
}

// resolveRoom returns the room a frame applies to: the message's room_id
// when present, otherwise the sender's current binding. Empty means the
// frame cannot be routed and must be dropped.
func (r *Router) resolveRoom(conn room.Conn, msg *Message) string {
	if msg.RoomID != "" {
		return msg.RoomID
	}
	if b, ok := r.registry.Lookup(conn); ok {
		return b.RoomID
	}
	return ""
}
