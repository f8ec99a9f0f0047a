package mathx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	p := Point{X: 3, Y: 4, Z: 0}.Normalize()
	require.InDelta(t, 1.0, p.Length(), 1e-9)
	assert.InDelta(t, 0.6, p.X, 1e-9)
	assert.InDelta(t, 0.8, p.Y, 1e-9)
}

func TestNormalizeZeroFallback(t *testing.T) {
	p := Point{}.Normalize()
	assert.Equal(t, Point{X: 1}, p)
}

func TestAngularDistanceSamePoint(t *testing.T) {
	p := Point{X: 1}
	assert.InDelta(t, 0, AngularDistance(p, p), 1e-9)
}

func TestAngularDistanceAntipodal(t *testing.T) {
	a := Point{X: 1}
	b := Point{X: -1}
	assert.InDelta(t, math.Pi, AngularDistance(a, b), 1e-9)
}

func TestRotateAroundAxisQuarterTurn(t *testing.T) {
	v := Point{X: 1}
	axis := Point{Z: 1}
	out := RotateAroundAxis(v, axis, math.Pi/2)
	assert.InDelta(t, 0, out.X, 1e-9)
	assert.InDelta(t, 1, out.Y, 1e-9)
}

func TestRotateTowardClampsStep(t *testing.T) {
	from := Point{X: 1}
	to := Point{Y: 1}
	out := RotateToward(from, to, 0.01)
	d := AngularDistance(from, out)
	assert.InDelta(t, 0.01, d, 1e-6)
}

func TestRotateTowardReachesTargetWhenClose(t *testing.T) {
	from := Point{X: 1}
	to := RotateAroundAxis(from, Point{Z: 1}, 0.001)
	out := RotateToward(from, to, 0.01)
	assert.InDelta(t, 0, AngularDistance(out, to), 1e-9)
}

func TestCollisionTrueWithinDistance(t *testing.T) {
	a := Point{X: 1}
	b := RotateAroundAxis(a, Point{Z: 1}, 0.01)
	assert.True(t, Collision(a, b, 0.05))
	assert.False(t, Collision(a, b, 0.005))
}

func TestSeededRNGDeterministic(t *testing.T) {
	r1 := NewSeededRNG(42)
	r2 := NewSeededRNG(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, r1.Next(), r2.Next())
	}
}

func TestSeededRNGUnitPointIsUnit(t *testing.T) {
	r := NewSeededRNG(7)
	for i := 0; i < 20; i++ {
		p := r.UnitPoint()
		assert.InDelta(t, 1.0, p.Length(), 1e-9)
	}
}

func TestSeededRNGConePointWithinAngle(t *testing.T) {
	r := NewSeededRNG(9)
	axis := Point{X: 1}
	cone := 0.4
	for i := 0; i < 50; i++ {
		p := r.ConePoint(axis, cone)
		assert.LessOrEqual(t, AngularDistance(axis, p), cone+1e-9)
	}
}
