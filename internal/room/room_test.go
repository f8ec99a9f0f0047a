package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphereslither.io/internal/config"
	"sphereslither.io/internal/mathx"
	"sphereslither.io/internal/pellet"
)

func TestDrainBoostScoreDecrementsScoreOverTime(t *testing.T) {
	s := &State{Players: map[string]*Player{}, Pellets: map[uint32]pellet.Pellet{}, RNG: mathx.NewSeededRNG(1)}
	p := newTestPlayer()
	p.Score = 5

	dt := 1.0 / config.BoostScoreDrainPerSec
	s.drainBoostScore(p, dt)

	assert.Equal(t, int64(4), p.Score)
}

func TestDrainBoostScoreTruncatesTailIntoPellet(t *testing.T) {
	s := &State{Players: map[string]*Player{}, Pellets: map[uint32]pellet.Pellet{}, RNG: mathx.NewSeededRNG(1)}
	p := newTestPlayer()
	p.Score = 5
	startLen := len(p.Snake)
	require.Greater(t, startLen, config.MinSurvivalLength)

	dt := 1.0 / config.BoostScoreDrainPerSec
	s.drainBoostScore(p, dt)

	assert.Len(t, p.Snake, startLen-1)
	assert.Len(t, s.Pellets, 1)
}

func TestDrainBoostScoreNeverTruncatesBelowMinSurvivalLength(t *testing.T) {
	s := &State{Players: map[string]*Player{}, Pellets: map[uint32]pellet.Pellet{}, RNG: mathx.NewSeededRNG(1)}
	p := newTestPlayer()
	p.Score = int64(config.StartingLen) * 10
	p.Snake = p.Snake[:config.MinSurvivalLength]

	dt := 100.0 / config.BoostScoreDrainPerSec
	s.drainBoostScore(p, dt)

	assert.Len(t, p.Snake, config.MinSurvivalLength)
	assert.Empty(t, s.Pellets)
}

func TestCanPlayerBoostGoesFalseOnceScoreDrainsToFloor(t *testing.T) {
	s := &State{Players: map[string]*Player{}, Pellets: map[uint32]pellet.Pellet{}, RNG: mathx.NewSeededRNG(1)}
	p := newTestPlayer()
	p.BoostFloorLen = config.StartingLen
	p.Score = int64(config.StartingLen) + 1
	p.IsBoosting = true
	require.True(t, CanPlayerBoost(p))

	dt := 1.0 / config.BoostScoreDrainPerSec
	s.drainBoostScore(p, dt)

	assert.Equal(t, p.BoostFloorLen, p.Score)
	assert.False(t, CanPlayerBoost(p))
}
