package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphereslither.io/internal/config"
	"sphereslither.io/internal/mathx"
	"sphereslither.io/internal/pellet"
	"sphereslither.io/internal/snake"
)

func newTestPlayer() *Player {
	return &Player{
		Alive: true,
		Snake: snake.NewBody(mathx.Point{X: 1}, mathx.Point{Y: 1}, config.StartingLen),
	}
}

func TestConsumeSmallPelletAccumulatesFractionBeforeScoring(t *testing.T) {
	s := &State{Players: map[string]*Player{}}
	p := newTestPlayer()
	s.Players["p"] = p

	small := pellet.Pellet{GrowthFraction: config.SmallPelletGrowthFraction}
	for i := 0; i < 3; i++ {
		s.consume(p, small)
	}

	assert.Equal(t, int64(0), p.Score)
	assert.Greater(t, p.PelletGrowthFraction, 0.0)
	require.NotEmpty(t, p.Digestions)
}

func TestConsumeSmallPelletCrossesWholeUnitIntoScore(t *testing.T) {
	s := &State{Players: map[string]*Player{}}
	p := newTestPlayer()
	s.Players["p"] = p

	small := pellet.Pellet{GrowthFraction: config.SmallPelletGrowthFraction}
	for i := 0; i < 9; i++ { // 9 * 0.125 = 1.125
		s.consume(p, small)
	}

	assert.Equal(t, int64(1), p.Score)
	assert.InDelta(t, 0.125, p.PelletGrowthFraction, 1e-9)
}

func TestConsumeBigPelletGrantsScoreImmediately(t *testing.T) {
	s := &State{Players: map[string]*Player{}}
	p := newTestPlayer()
	s.Players["p"] = p

	big := pellet.Pellet{GrowthFraction: config.BigPelletGrowthFraction}
	s.consume(p, big)

	assert.Equal(t, int64(1), p.Score)
	require.Len(t, p.Digestions, 1)
	assert.InDelta(t, config.BigPelletGrowthFraction, p.Digestions[0].GrowthAmount, 1e-9)
}
