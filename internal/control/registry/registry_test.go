package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeartbeatUpdatesKnownRoom(t *testing.T) {
	r := New()
	r.Register(Room{ID: "room-1", MaxHumanPlayers: 10})

	ok := r.Heartbeat("room-1", 3, 3)
	assert.True(t, ok)

	room, found := r.Get("room-1")
	require.True(t, found)
	assert.Equal(t, 3, room.PlayerCount)
}

func TestHeartbeatRejectsUnknownRoom(t *testing.T) {
	r := New()
	assert.False(t, r.Heartbeat("ghost", 1, 1))
}

func TestPickAvailablePrefersLeastFullRoom(t *testing.T) {
	r := New()
	r.Register(Room{ID: "full", MaxHumanPlayers: 2, PlayerCount: 2})
	r.Register(Room{ID: "empty", MaxHumanPlayers: 10, PlayerCount: 1})

	room, ok := r.PickAvailable()
	require.True(t, ok)
	assert.Equal(t, "empty", room.ID)
}

func TestPickAvailableReturnsFalseWhenAllFull(t *testing.T) {
	r := New()
	r.Register(Room{ID: "full", MaxHumanPlayers: 1, PlayerCount: 1})

	_, ok := r.PickAvailable()
	assert.False(t, ok)
}
