package signaling

import "encoding/json"

// Message types understood by the relay. The names are part of the wire
// protocol shared with the browser client.
const (
	TypeJoin         = "Join"
	TypeLeave        = "Leave"
	TypeOffer        = "Offer"
	TypeAnswer       = "Answer"
	TypeIceCandidate = "IceCandidate"
	TypeSubtitle     = "Subtitle"
	TypeChatMessage  = "ChatMessage"
	TypeMuteStatus   = "MuteStatus"
)

// Message is the envelope of one signaling frame. Only the fields the relay
// routes on are modeled; sdp and candidate are opaque negotiation payloads
// and auxiliary message types may carry additional fields the relay never
// sees (those survive because frames are relayed verbatim).
type Message struct {
	Type      string          `json:"type"`
	RoomID    string          `json:"room_id,omitempty"`
	UserID    string          `json:"user_id,omitempty"`
	UserName  string          `json:"user_name,omitempty"`
	TargetID  string          `json:"target_id,omitempty"`
	SDP       string          `json:"sdp,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// Decode parses one signaling frame.
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Encode serializes a relay-originated notification.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// isForward reports whether the type is a point-to-point negotiation message.
func isForward(t string) bool {
	return t == TypeOffer || t == TypeAnswer || t == TypeIceCandidate
}

// isBroadcast reports whether the type is relayed to the whole room.
func isBroadcast(t string) bool {
	return t == TypeSubtitle || t == TypeChatMessage || t == TypeMuteStatus
}
