package room

import "sync"

// Member is one participant record inside a room.
type Member struct {
	UserID string
	Name   string
	Conn   Conn
}

// Directory maps room IDs to their live membership. A room exists exactly
// while it has at least one member; removing the last member deletes the
// room entry.
type Directory struct {
	rooms map[string]map[string]Member
	mu    sync.RWMutex
}

// NewDirectory creates an empty room directory.
func NewDirectory() *Directory {
	return &Directory{
		rooms: make(map[string]map[string]Member),
	}
}

// Ensure creates the room if it does not exist yet. It is idempotent and is
// used by the create-room endpoint; joins create rooms implicitly through
// AddMember.
func (d *Directory) Ensure(roomID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.rooms[roomID]; !ok {
		d.rooms[roomID] = make(map[string]Member)
	}
}

// AddMember inserts or overwrites the member record for userID in roomID,
// creating the room if needed. Overwriting is deliberate: a client that
// reconnects with the same identity takes over the previous record.
//
// It returns a snapshot of the membership as it was immediately before the
// insertion, taken under the same lock. Callers that announce the arrival to
// the prior members must use this snapshot rather than a separate Members
// call, otherwise two members joining at once can each miss the other.
func (d *Directory) AddMember(roomID, userID string, conn Conn, name string) []Member {
	d.mu.Lock()
	defer d.mu.Unlock()

	members, ok := d.rooms[roomID]
	if !ok {
		members = make(map[string]Member)
		d.rooms[roomID] = members
	}
	prior := make([]Member, 0, len(members))
	for _, m := range members {
		prior = append(prior, m)
	}
	members[userID] = Member{UserID: userID, Name: name, Conn: conn}
	return prior
}

// RemoveMember deletes the member record if present and reports whether a
// record was removed. The room entry is deleted when its last member leaves.
// Removing from an unknown room or an unknown member is a no-op.
func (d *Directory) RemoveMember(roomID, userID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	members, ok := d.rooms[roomID]
	if !ok {
		return false
	}
	if _, ok := members[userID]; !ok {
		return false
	}

	delete(members, userID)
	if len(members) == 0 {
		delete(d.rooms, roomID)
	}
	return true
}

// RemoveMemberConn deletes userID's record only while it still references
// conn. A join with the same user ID overwrites the record, so teardown of
// the replaced connection must not evict the member that took over.
func (d *Directory) RemoveMemberConn(roomID, userID string, conn Conn) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	members, ok := d.rooms[roomID]
	if !ok {
		return false
	}
	m, ok := members[userID]
	if !ok || m.Conn != conn {
		return false
	}

	delete(members, userID)
	if len(members) == 0 {
		delete(d.rooms, roomID)
	}
	return true
}

// Members returns a snapshot of the room's membership. An unknown room
// yields an empty slice, not an error.
func (d *Directory) Members(roomID string) []Member {
	d.mu.RLock()
	defer d.mu.RUnlock()

	members := d.rooms[roomID]
	snapshot := make([]Member, 0, len(members))
	for _, m := range members {
		snapshot = append(snapshot, m)
	}
	return snapshot
}

// MemberConn resolves the connection of a named member for targeted
// forwarding.
func (d *Directory) MemberConn(roomID, userID string) (Conn, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	m, ok := d.rooms[roomID][userID]
	if !ok {
		return nil, false
	}
	return m.Conn, true
}

// Exists reports whether the room currently has an entry.
func (d *Directory) Exists(roomID string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.rooms[roomID]
	return ok
}

// RoomCount returns the number of live rooms.
func (d *Directory) RoomCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.rooms)
}

// MemberCount returns the total number of member records across all rooms.
func (d *Directory) MemberCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	total := 0
	for _, members := range d.rooms {
		total += len(members)
	}
	return total
}
