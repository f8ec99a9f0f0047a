// Package provision abstracts "get me a running room process" behind an
// interface, grounded on control/mod.rs's HetznerClient usage shape
// (create-server, wait-healthy, matchmake-into-it) without binding to
// any actual cloud SDK — cloud-provider API bindings are out of scope
// here; see DESIGN.md.
package provision

import (
	"context"
	"fmt"
	"sync"

	"sphereslither.io/internal/control/registry"
)

// Provisioner brings a new room process online and returns where to
// reach it. Implementations might call a cloud API (out of scope here)
// or, as with Local, just track an address the operator already runs.
type Provisioner interface {
	Provision(ctx context.Context, roomID string, maxHumanPlayers int) (address string, err error)
	Decommission(ctx context.Context, roomID string) error
}

// Local is an in-memory Provisioner for local development and tests: it
// doesn't start any process, it just hands back a deterministic address
// derived from a base room-process port, simulating one room process per
// port the operator is expected to actually run.
type Local struct {
	mu        sync.Mutex
	basePort  int
	nextPort  int
	addresses map[string]string
}

// NewLocal creates a Local provisioner that assigns room addresses
// starting at basePort and incrementing per room.
func NewLocal(basePort int) *Local {
	return &Local{basePort: basePort, nextPort: basePort, addresses: make(map[string]string)}
}

// Provision assigns the next local port to roomID.
func (l *Local) Provision(_ context.Context, roomID string, _ int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if addr, ok := l.addresses[roomID]; ok {
		return addr, nil
	}
	addr := fmt.Sprintf("127.0.0.1:%d", l.nextPort)
	l.nextPort++
	l.addresses[roomID] = addr
	return addr, nil
}

// Decommission forgets a room's assigned address.
func (l *Local) Decommission(_ context.Context, roomID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.addresses, roomID)
	return nil
}

// EnsureRoom returns an existing available room from reg, or provisions
// (and registers) a fresh one via p when none has spare capacity.
func EnsureRoom(ctx context.Context, reg *registry.Registry, p Provisioner, maxHumanPlayers int) (registry.Room, error) {
	if room, ok := reg.PickAvailable(); ok {
		return room, nil
	}

	roomID := registry.NewRoomID()
	addr, err := p.Provision(ctx, roomID, maxHumanPlayers)
	if err != nil {
		return registry.Room{}, err
	}
	room := registry.Room{ID: roomID, Address: addr, MaxHumanPlayers: maxHumanPlayers}
	reg.Register(room)
	return room, nil
}
