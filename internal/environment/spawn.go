package environment

import (
	"math"

	"sphereslither.io/internal/mathx"
)

// IsObstructed reports whether p falls inside any tree, cactus or mountain
// collider, expanded by margin (use 0 for pellet placement, a snake's
// angular radius for spawn placement). Lakes are not an obstruction here:
// a pellet or a respawning snake may land in shallow water.
func IsObstructed(p mathx.Point, env Environment, margin float64) bool {
	for _, tree := range env.Trees {
		if mathx.AngularDistance(p, tree.Normal) < tree.Radius()+margin {
			return true
		}
	}
	for _, mountain := range env.Mountains {
		dotValue := mathx.Clamp(mountain.Normal.Dot(p), -1, 1)
		angle := math.Acos(dotValue)
		tangent, bitangent := tangentBasis(mountain.Normal)
		projection := p.Sub(mountain.Normal.Scale(dotValue))
		if projection.Length() < 1e-6 {
			projection = tangent
		}
		x := projection.Dot(tangent)
		y := projection.Dot(bitangent)
		theta := math.Atan2(y, x)
		if theta < 0 {
			theta += 2 * math.Pi
		}
		outlineRadius := sampleRadius(mountain.Outline, theta)
		if angle < outlineRadius+margin {
			return true
		}
	}
	return false
}
