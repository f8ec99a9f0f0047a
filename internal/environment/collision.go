package environment

import (
	"math"

	"sphereslither.io/internal/mathx"
)

// ResolveHead pushes a snake's head out of any tree or mountain it has
// penetrated this tick, sliding it tangentially around the obstacle rather
// than stopping it, and returns the corrected head position along with an
// updated rotation axis so the snake's heading stays tangent to the
// surface it just slid along. Cacti (negative-width-scale trees) are
// skipped here entirely: contact with one is a kill, not a slide, and is
// checked separately with CactusContact.
func ResolveHead(head, axis mathx.Point, snakeRadius float64, env Environment) (mathx.Point, mathx.Point) {
	head = head.Normalize()
	tangent := axis.Cross(head)
	if tangent.Length() > 1e-6 {
		tangent = tangent.Normalize()
	}

	for pass := 0; pass < contactIterations; pass++ {
		anyContact := false

		for _, tree := range env.Trees {
			if tree.IsCactus() {
				continue
			}
			newHead, normal, ok := resolveCircleContact(head, tree.Normal, tree.Radius(), snakeRadius)
			if ok {
				head = newHead
				tangent = projectTangent(tangent, normal)
				anyContact = true
			}
		}

		for _, mountain := range env.Mountains {
			newHead, normal, ok := resolveMountainContact(head, mountain, snakeRadius)
			if ok {
				head = newHead
				tangent = projectTangent(tangent, normal)
				anyContact = true
			}
		}

		if !anyContact {
			break
		}
	}

	axisOut := axis
	if tangent.Length() >= 1e-6 {
		axisOut = head.Cross(tangent).Normalize()
	}
	return head, axisOut
}

// CactusContact reports whether head is within snakeRadius of any cactus
// (negative-width-scale tree), the instant-kill obstacle variant.
func CactusContact(head mathx.Point, snakeRadius float64, env Environment) bool {
	for _, tree := range env.Trees {
		if !tree.IsCactus() {
			continue
		}
		if mathx.AngularDistance(head, tree.Normal) < tree.Radius()+snakeRadius {
			return true
		}
	}
	return false
}

func resolveCircleContact(head, center mathx.Point, radius, snakeRadius float64) (mathx.Point, mathx.Point, bool) {
	dotValue := mathx.Clamp(head.Dot(center), -1, 1)
	angle := math.Acos(dotValue)
	targetAngle := radius + snakeRadius
	if math.IsNaN(angle) || angle >= targetAngle {
		return mathx.Point{}, mathx.Point{}, false
	}
	dir := mathx.Point{
		X: head.X - center.X*dotValue,
		Y: head.Y - center.Y*dotValue,
		Z: head.Z - center.Z*dotValue,
	}
	if dir.Length() < 1e-6 {
		dir = mathx.FallbackTangent(center)
	}
	dir = dir.Normalize()
	newHead := center.Scale(math.Cos(targetAngle)).Add(dir.Scale(math.Sin(targetAngle)))
	return newHead.Normalize(), dir, true
}

func resolveMountainContact(head mathx.Point, mountain MountainInstance, snakeRadius float64) (mathx.Point, mathx.Point, bool) {
	dotValue := mathx.Clamp(head.Dot(mountain.Normal), -1, 1)
	angle := math.Acos(dotValue)
	if math.IsNaN(angle) {
		return mathx.Point{}, mathx.Point{}, false
	}

	tangent, bitangent := tangentBasis(mountain.Normal)
	projection := mathx.Point{
		X: head.X - mountain.Normal.X*dotValue,
		Y: head.Y - mountain.Normal.Y*dotValue,
		Z: head.Z - mountain.Normal.Z*dotValue,
	}
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
	targetAngle := outlineRadius + snakeRadius
	if angle >= targetAngle {
		return mathx.Point{}, mathx.Point{}, false
	}
	dir := tangent.Scale(x).Add(bitangent.Scale(y)).Normalize()
	newHead := mountain.Normal.Scale(math.Cos(targetAngle)).Add(dir.Scale(math.Sin(targetAngle)))
	return newHead.Normalize(), dir, true
}

func projectTangent(tangent, normal mathx.Point) mathx.Point {
	if tangent.Length() < 1e-6 {
		return tangent
	}
	inward := tangent.Dot(normal)
	if inward < 0 {
		tangent = mathx.Point{
			X: tangent.X - normal.X*inward,
			Y: tangent.Y - normal.Y*inward,
			Z: tangent.Z - normal.Z*inward,
		}
	}
	if tangent.Length() < stickThreshold {
		return mathx.Point{}
	}
	return tangent.Normalize()
}
