// Package api provides the HTTP surface of the signaling relay.
//
// The api package implements:
//   - Server status reporting (room and connection counts, uptime)
//   - Room creation with optional caller-supplied identifiers
//   - Room info queries with live participant lists
//   - The WebSocket upgrade endpoint
//   - Static hosting for the web client
//
// Endpoints:
//
//	GET  /info            server status snapshot
//	POST /create-room     ensure a room exists, generating an ID if needed
//	GET  /room/{roomId}   room existence and participant list
//	GET  /ws              WebSocket upgrade into the signaling transport
//	GET  /*               static web client files
//
// All query endpoints are read-only snapshots over the room directory; the
// relay's state is only ever mutated through signaling messages and the
// create-room call.
package api
