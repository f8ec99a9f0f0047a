package pellet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sphereslither.io/internal/mathx"
)

func TestNewSmallIsIdleAndSizedWithinBand(t *testing.T) {
	rng := mathx.NewSeededRNG(1)
	p := NewSmall(1, mathx.Point{X: 1}, 0, rng)
	assert.Equal(t, Idle, p.State)
	assert.False(t, p.IsBig())
	assert.GreaterOrEqual(t, p.BaseSize, 0.55)
	assert.LessOrEqual(t, p.BaseSize, 0.95)
}

func TestNewDeathIsBig(t *testing.T) {
	rng := mathx.NewSeededRNG(1)
	p := NewDeath(1, mathx.Point{X: 1}, 0, rng)
	assert.True(t, p.IsBig())
}

func TestNewEvasiveIsBigAndOwned(t *testing.T) {
	p := NewEvasive(1, mathx.Point{X: 1}, "owner", 5000)
	assert.True(t, p.IsBig())
	assert.Equal(t, Evasive, p.State)
	assert.Equal(t, "owner", p.OwnerPlayerID)
}

func TestInHeadConeRejectsBehindTarget(t *testing.T) {
	head := mathx.Point{X: 1}
	forward := mathx.Point{X: 0, Y: 1}
	ahead := mathx.Point{X: 0, Y: 1}
	behind := mathx.Point{X: 0, Y: -1}

	assert.True(t, InHeadCone(head, forward, ahead, 1.0))
	assert.False(t, InHeadCone(head, forward, behind, 1.0))
}

func TestShrinkTowardShrinksAsItCloses(t *testing.T) {
	p := Pellet{BaseSize: 1.0}
	far := ShrinkToward(p, 0.16)
	near := ShrinkToward(p, 0.0)
	assert.InDelta(t, 1.0, far, 1e-9)
	assert.Less(t, near, far)
}
