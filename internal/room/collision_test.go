package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sphereslither.io/internal/mathx"
)

func TestSelfOverlapDoesNotKillPlayer(t *testing.T) {
	snapshots := []PlayerCollisionSnapshot{
		{
			ID:    "a",
			Alive: true,
			Snake: []mathx.Point{
				{X: 1}, {X: 1}, {X: 1},
			},
			ContactAngularRadius: 0.05,
			BodyAngularRadius:    0.05,
		},
	}
	deaths := DetectSnakeHeadBodyCollisions(snapshots)
	assert.Empty(t, deaths)
}

func TestSelfBiteBeyondNeckKillsPlayer(t *testing.T) {
	snapshots := []PlayerCollisionSnapshot{
		{
			ID:    "a",
			Alive: true,
			Snake: []mathx.Point{
				{X: 1, Y: 0, Z: 0},
				{X: 0.99995, Y: 0.01, Z: 0},
				{X: 0, Y: 1, Z: 0},
				{X: 0, Y: 0, Z: 1},
				{X: 1, Y: 0.0001, Z: 0},
			},
			ContactAngularRadius: 0.05,
			BodyAngularRadius:    0.05,
		},
	}
	deaths := DetectSnakeHeadBodyCollisions(snapshots)
	assert.Contains(t, deaths, "a")
	assert.Equal(t, "snake_collision", deaths["a"])
}

func TestSnakeCollisionKillsOnlyHeadOwnerOnHeadBodyOverlap(t *testing.T) {
	snapshots := []PlayerCollisionSnapshot{
		{
			ID:                   "attacker",
			Alive:                true,
			Snake:                []mathx.Point{{X: 1}},
			ContactAngularRadius: 0.05,
			BodyAngularRadius:    0.05,
		},
		{
			ID:    "victim",
			Alive: true,
			Snake: []mathx.Point{
				{X: 0, Y: 1}, {X: 0.99995, Y: 0.01}, {X: 0.8, Y: 0.6},
			},
			ContactAngularRadius: 0.05,
			BodyAngularRadius:    0.05,
		},
	}
	deaths := DetectSnakeHeadBodyCollisions(snapshots)
	assert.Contains(t, deaths, "attacker")
	assert.NotContains(t, deaths, "victim")
	assert.Equal(t, "snake_collision", deaths["attacker"])
}
