// Package environment implements the static obstacles placed on the
// sphere's surface: disk colliders (tree trunks, cacti), angularly
// varying-radius colliders (mountain outlines), and lake regions that
// affect oxygen and spawn placement. Layout is generated deterministically
// from a room seed so every client in a room sees the same world.
package environment

import (
	"math"

	"sphereslither.io/internal/mathx"
)

const (
	contactIterations = 4
	stickThreshold     = 0.01
)

// ColliderKind distinguishes the two collider shapes the environment uses.
type ColliderKind int

const (
	KindDisk ColliderKind = iota
	KindMountain
)

// Collider is a static obstacle on the sphere. For KindDisk, Radius is
// constant. For KindMountain, RadiusSamples holds the outline radius at
// evenly spaced angles around Center's tangent plane, interpolated by
// angle for any given contact direction.
type Collider struct {
	Kind          ColliderKind
	Center        mathx.Point
	Radius        float64
	RadiusSamples []float64
	Reference     mathx.Point // tangent-plane zero-angle reference, mountains only
}

// radiusAt returns the collider's boundary radius in the direction of
// point p, as seen from the collider's center.
func (c Collider) radiusAt(p mathx.Point) float64 {
	if c.Kind == KindDisk || len(c.RadiusSamples) == 0 {
		return c.Radius
	}
	tangent := mathx.ProjectTangent(c.Center, p.Sub(c.Center))
	refTangent := mathx.ProjectTangent(c.Center, c.Reference.Sub(c.Center))
	cross := c.Center.Dot(refTangent.Cross(tangent))
	angle := angleBetweenTangents(refTangent, tangent, c.Center, cross)
	return sampleRadius(c.RadiusSamples, angle)
}

func angleBetweenTangents(a, b, normal mathx.Point, signedCross float64) float64 {
	cos := mathx.Clamp(a.Dot(b), -1, 1)
	angle := math.Acos(cos)
	if signedCross < 0 {
		angle = 2*math.Pi - angle
	}
	return angle
}

func sampleRadius(samples []float64, angle float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return samples[0]
	}
	step := (2 * math.Pi) / float64(n)
	idx := angle / step
	i0 := int(idx) % n
	i1 := (i0 + 1) % n
	frac := idx - float64(int(idx))
	return samples[i0]*(1-frac) + samples[i1]*frac
}

// ResolveContact pushes p outward from c if it has penetrated the
// collider's boundary, iterating a small fixed number of times the way
// the reference simulation does to settle multi-collider overlaps. It
// returns the corrected point and whether a correction was applied.
func ResolveContact(p mathx.Point, c Collider) (mathx.Point, bool) {
	corrected := false
	for i := 0; i < contactIterations; i++ {
		dist := mathx.AngularDistance(p, c.Center)
		r := c.radiusAt(p)
		if dist >= r {
			break
		}
		corrected = true
		penetration := r - dist
		if dist < stickThreshold {
			// p is effectively at the collider's center; push along an
			// arbitrary tangent rather than dividing by a near-zero
			// direction.
			tangent := mathx.FallbackTangent(c.Center)
			p = mathx.RotateAroundAxis(c.Center, c.Center.Cross(tangent), r)
			continue
		}
		away := mathx.ProjectTangent(c.Center, p.Sub(c.Center))
		p = mathx.RotateAroundAxis(c.Center, c.Center.Cross(away), r)
	}
	return p, corrected
}

// ResolveAll applies ResolveContact against every collider in order,
// settling overlaps between adjacent obstacles across a few passes.
func ResolveAll(p mathx.Point, colliders []Collider) mathx.Point {
	for pass := 0; pass < contactIterations; pass++ {
		movedAny := false
		for _, c := range colliders {
			var moved bool
			p, moved = ResolveContact(p, c)
			movedAny = movedAny || moved
		}
		if !movedAny {
			break
		}
	}
	return p
}
