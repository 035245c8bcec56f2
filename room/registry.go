package room

import "sync"

// Conn is the connection handle the relay routes messages through. The
// websocket transport implements it; tests provide in-memory fakes.
type Conn interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Binding associates a connection with the user and room it joined as.
type Binding struct {
	UserID string
	RoomID string
}

// Registry tracks which (user, room) pair each open connection is bound to.
// A connection is bound on its first valid join and unbound on leave, close,
// or liveness termination.
type Registry struct {
	bindings map[Conn]Binding
	mu       sync.RWMutex
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Conn]Binding),
	}
}

// Bind records the binding for conn, overwriting any prior one.
func (r *Registry) Bind(conn Conn, userID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings[conn] = Binding{UserID: userID, RoomID: roomID}
}

// Lookup returns the binding for conn, if any.
func (r *Registry) Lookup(conn Conn) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bindings[conn]
	return b, ok
}

// Unbind removes the binding for conn. Unbinding a connection that was never
// bound is a no-op.
func (r *Registry) Unbind(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bindings, conn)
}

// Count returns the number of bound connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.bindings)
}
