// Package registry is the control plane's in-memory bookkeeping of
// known rooms: which ones exist, how full they are, and when each last
// reported in. Grounded on room_runtime/mod.rs's heartbeat payload shape
// and env-var driven room identity.
package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Room is the control plane's view of one running room process.
type Room struct {
	ID              string
	Address         string
	MaxHumanPlayers int
	PlayerCount     int
	TotalSessions   int
	LastHeartbeatAt time.Time
}

// StaleAfter is how long a room can go without a heartbeat before it's
// considered dead for matchmaking purposes.
const StaleAfter = 10 * time.Second

// Registry tracks every room the control plane knows about.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// NewRoomID generates a fresh, URL-safe room identifier.
func NewRoomID() string {
	return uuid.NewString()
}

// Register adds a freshly provisioned room.
func (r *Registry) Register(room Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room.LastHeartbeatAt = time.Now()
	r.rooms[room.ID] = &room
}

// Heartbeat records a room's latest self-reported stats.
func (r *Registry) Heartbeat(roomID string, playerCount, totalSessions int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	room.PlayerCount = playerCount
	room.TotalSessions = totalSessions
	room.LastHeartbeatAt = time.Now()
	return true
}

// Get returns a snapshot of one room.
func (r *Registry) Get(roomID string) (Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return Room{}, false
	}
	return *room, true
}

// Remove deletes a room from the registry (shutdown/decommission).
func (r *Registry) Remove(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, roomID)
}

// PickAvailable returns the least-full non-stale room with spare
// capacity (ties between equally full rooms are broken arbitrarily), for
// matchmaking a new player into an existing room
// rather than always provisioning a new one.
func (r *Registry) PickAvailable() (Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *Room
	now := time.Now()
	for _, room := range r.rooms {
		if now.Sub(room.LastHeartbeatAt) > StaleAfter {
			continue
		}
		if room.MaxHumanPlayers > 0 && room.PlayerCount >= room.MaxHumanPlayers {
			continue
		}
		if best == nil || room.PlayerCount < best.PlayerCount {
			best = room
		}
	}
	if best == nil {
		return Room{}, false
	}
	return *best, true
}
