// Package signaling implements the signaling message protocol and routing.
//
// The signaling package handles:
//   - Decoding type-discriminated JSON signaling messages
//   - Room join/leave lifecycle and peer notifications
//   - Point-to-point forwarding of negotiation messages
//   - Room-wide broadcast of auxiliary messages
//
// Message Protocol:
//
// Every frame is a JSON object with a "type" field. The relay understands
// Join, Leave, Offer, Answer, IceCandidate, Subtitle, ChatMessage and
// MuteStatus; unknown types are logged and dropped so newer clients keep
// working against older servers.
//
// Negotiation payloads (sdp, candidate) are opaque to the relay. Forwarded
// and broadcast frames are relayed byte-for-byte, so fields the relay does
// not model pass through unmodified.
//
// Routing:
//
// Offer, Answer and IceCandidate are forwarded to the single member named
// by target_id. Subtitle, ChatMessage and MuteStatus are broadcast to every
// room member except the sender. The room is taken from the message when
// present, otherwise from the sender's current binding; if neither yields a
// room the frame is dropped. Unknown rooms and targets are silent drops:
// in an unordered setting the relay cannot tell "already left" from "never
// existed", so nothing is reported back to the sender.
package signaling
