package provision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphereslither.io/internal/control/registry"
)

func TestLocalProvisionAssignsStablePorts(t *testing.T) {
	l := NewLocal(9000)
	addr1, err := l.Provision(context.Background(), "room-a", 10)
	require.NoError(t, err)
	addr2, err := l.Provision(context.Background(), "room-b", 10)
	require.NoError(t, err)

	assert.NotEqual(t, addr1, addr2)

	again, err := l.Provision(context.Background(), "room-a", 10)
	require.NoError(t, err)
	assert.Equal(t, addr1, again)
}

func TestEnsureRoomReusesAvailableRoom(t *testing.T) {
	reg := registry.New()
	reg.Register(registry.Room{ID: "existing", MaxHumanPlayers: 10, PlayerCount: 1})
	l := NewLocal(9000)

	room, err := EnsureRoom(context.Background(), reg, l, 10)
	require.NoError(t, err)
	assert.Equal(t, "existing", room.ID)
}

func TestEnsureRoomProvisionsWhenNoneAvailable(t *testing.T) {
	reg := registry.New()
	l := NewLocal(9000)

	room, err := EnsureRoom(context.Background(), reg, l, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, room.ID)

	_, found := reg.Get(room.ID)
	assert.True(t, found)
}
