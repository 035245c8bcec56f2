// Package websocket provides the WebSocket transport for the signaling relay.
//
// The websocket package implements:
//   - Connection upgrade and lifecycle management
//   - A dedicated write pump with a buffered send queue per client
//   - Liveness probing and dead-peer termination
//
// Architecture:
//
// Each client connection is handled by a read goroutine and a write
// goroutine. The read pump feeds inbound frames to a Handler (the signaling
// router) and triggers teardown when the connection closes for any reason.
// Outbound sends go through a buffered channel so a slow peer can never
// block the router; when the buffer is full the frame is dropped and the
// peer is treated as departed.
//
// Liveness:
//
// The Monitor sweeps all open connections on a fixed period. Each sweep
// terminates connections that did not acknowledge the previous probe, then
// clears the flag and probes again. A pong from the peer confirms liveness.
// Termination feeds the same teardown path as a normal close, so a reaped
// peer is announced to its room exactly like one that left gracefully.
package websocket
