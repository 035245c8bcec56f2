// Package room provides the in-memory room and connection state for the
// signaling relay.
//
// The room package implements:
//   - Thread-safe room membership storage and retrieval
//   - Reverse lookup from a connection to its room binding
//   - Lazy room creation and automatic deletion of empty rooms
//   - Membership snapshots for queries and broadcasts
//
// Core Types:
//
// Directory maps room IDs to their live member sets. Registry maps each
// connection to its (user ID, room ID) binding so that teardown can find
// the room a closed connection belonged to. Conn is the minimal connection
// handle the rest of the server works against; the websocket transport
// provides the concrete implementation.
//
// Lifecycle:
//
// Rooms are created on first member join (or an explicit Ensure call) and
// destroyed synchronously when the last member leaves. A user ID is bound
// to at most one connection per room; joining again with the same ID
// overwrites the previous record so that reconnecting clients can reclaim
// their identity.
//
// Concurrency:
//
// Both Directory and Registry are safe for concurrent use. All mutation
// goes through their methods; internal locking ensures data consistency.
package room
