package environment

import (
	"math"

	"sphereslither.io/internal/config"
	"sphereslither.io/internal/mathx"
)

// Lake is a body of water on the sphere. Its boundary is warped by a small
// stack of sine terms so the shoreline isn't a perfect circle; depth ramps
// from a shallow shelf near the edge down to a deeper basin at the center.
type Lake struct {
	Center          mathx.Point
	Radius          float64
	Depth           float64
	ShelfDepth      float64
	EdgeFalloff     float64
	NoiseAmplitude  float64
	NoiseFrequency  float64
	NoiseFrequencyB float64
	NoiseFrequencyC float64
	NoisePhase      float64
	NoisePhaseB     float64
	NoisePhaseC     float64
	WarpAmplitude   float64
	SurfaceInset    float64
	Tangent         mathx.Point
	Bitangent       mathx.Point
}

// TreeInstance is a disk collider standing on the sphere. A negative
// WidthScale marks the instance as a cactus: contact with it kills the
// snake outright rather than sliding it around the trunk.
type TreeInstance struct {
	Normal      mathx.Point
	WidthScale  float64
	HeightScale float64
	Twist       float64
}

// IsCactus reports whether t represents an instant-kill obstacle.
func (t TreeInstance) IsCactus() bool { return t.WidthScale < 0 }

// Radius returns the world-space trunk radius in unit-sphere angular units.
func (t TreeInstance) Radius() float64 {
	return (config.TreeTrunkRadius * math.Abs(t.WidthScale)) / config.PlanetRadius
}

// MountainInstance is an angularly varying-radius collider: its outline
// gives the boundary radius at evenly spaced angles around Normal's
// tangent plane, smoothed so the outline has no sharp jumps.
type MountainInstance struct {
	Normal  mathx.Point
	Radius  float64
	Height  float64
	Variant uint8
	Twist   float64
	Outline []float64
}

// Environment is the complete static layout of a room: its lakes and the
// disk/outline colliders scattered across dry land.
type Environment struct {
	Lakes     []Lake
	Trees     []TreeInstance
	Mountains []MountainInstance
}

// LakeSample is the result of testing a point against every lake: Boundary
// is 0 on dry land and rises to 1 once the point is EdgeFalloff inside the
// shoreline of whichever lake covers it most strongly (the room scales
// oxygen drain by Boundary); Depth is the corresponding water depth.
type LakeSample struct {
	Boundary  float64
	Depth     float64
	LakeIndex int // -1 if the point is on dry land
}

// SampleLakes reports how submerged normal is, taking the strongest
// covering lake when more than one basin could plausibly reach the point.
func SampleLakes(normal mathx.Point, lakes []Lake) LakeSample {
	result := LakeSample{LakeIndex: -1}

	for index, lake := range lakes {
		dotValue := mathx.Clamp(lake.Center.Dot(normal), -1, 1)
		angle := math.Acos(dotValue)
		if angle >= lake.Radius+lake.EdgeFalloff {
			continue
		}

		temp := mathx.Point{
			X: normal.X - lake.Center.X*dotValue,
			Y: normal.Y - lake.Center.Y*dotValue,
			Z: normal.Z - lake.Center.Z*dotValue,
		}
		x := temp.Dot(lake.Tangent)
		y := temp.Dot(lake.Bitangent)
		warp := math.Sin((x+y)*lake.NoiseFrequencyC+lake.NoisePhaseC) * lake.WarpAmplitude
		u := x*lake.NoiseFrequency + lake.NoisePhase + warp
		v := y*lake.NoiseFrequencyB + lake.NoisePhaseB - warp
		w := (x-y)*lake.NoiseFrequencyC + lake.NoisePhaseC*0.7
		noise := math.Sin(u) + math.Sin(v) + 0.6*math.Sin(2.0*u+v*0.6) + 0.45*math.Sin(2.3*v-0.7*u) + 0.35*math.Sin(w)
		noiseNormalized := noise / 3.15
		edgeRadius := mathx.Clamp(lake.Radius*(1.0+lake.NoiseAmplitude*noiseNormalized), lake.Radius*0.65, lake.Radius*1.35)
		if angle >= edgeRadius {
			continue
		}

		shelfRadius := math.Max(edgeRadius-lake.EdgeFalloff, 1e-3)
		edgeT := mathx.Clamp((edgeRadius-angle)/lake.EdgeFalloff, 0, 1)
		edgeBlend := math.Pow(edgeT, config.LakeEdgeSharpness)
		core := mathx.Clamp(1.0-angle/shelfRadius, 0, 1)
		basinFactor := smoothstep(config.LakeShelfCore, 1.0, core)
		pitFactor := smoothstep(config.LakeCenterPitStart, 1.0, core)
		pitDepth := pitFactor * pitFactor * lake.Depth * config.LakeCenterPitRatio
		depth := edgeBlend * (lake.ShelfDepth + basinFactor*(lake.Depth-lake.ShelfDepth) + pitDepth)

		if edgeBlend > result.Boundary {
			result.Boundary = edgeBlend
			result.LakeIndex = index
		}
		if depth > result.Depth {
			result.Depth = depth
		}
	}

	return result
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := mathx.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Generate lays out a deterministic environment for the given room seed:
// lakes first, then trees and mountains scattered on dry land, spaced
// apart from each other and clear of the lakes. Geometry is a simplified,
// functionally equivalent derivation (spacing, depth ramps, outline
// jitter) rather than a byte-for-byte port; see DESIGN.md.
func Generate(seed uint32) Environment {
	lakes := createLakes(seed + config.LakeSeedOffset)
	rng := mathx.NewSeededRNG(seed + config.EnvSeedOffset)

	isInLake := func(p mathx.Point) bool {
		return SampleLakes(p, lakes).Boundary > config.LakeExclusionBoundary
	}

	minTreeDot := math.Cos(config.TreeMinAngle)
	trees := make([]TreeInstance, 0, config.TreeInstanceCount)
	var treeNormals []mathx.Point
	for i := 0; i < config.TreeInstanceCount; i++ {
		normal := pickSparseNormal(rng, minTreeDot, treeNormals, isInLake)
		widthScale := rng.Range(config.TreeMinScale, config.TreeMaxScale)
		if rng.Next() < config.CactusChance {
			widthScale = -widthScale
		}
		heightScale := rng.Range(config.TreeMinHeight, config.TreeMaxHeight)
		twist := rng.Range(0, 2*math.Pi)
		treeNormals = append(treeNormals, normal)
		trees = append(trees, TreeInstance{Normal: normal, WidthScale: widthScale, HeightScale: heightScale, Twist: twist})
	}

	minMountainDot := math.Cos(config.MountainMinAngle)
	mountains := make([]MountainInstance, 0, config.MountainCount)
	var mountainNormals []mathx.Point
	for i := 0; i < config.MountainCount; i++ {
		normal := pickSparseNormal(rng, minMountainDot, mountainNormals, isInLake)
		radius := rng.Range(config.MountainRadiusMin, config.MountainRadiusMax)
		height := rng.Range(config.MountainHeightMin, config.MountainHeightMax)
		variant := uint8(rng.Next() * config.MountainVariants)
		twist := rng.Range(0, 2*math.Pi)
		variantSeed := config.MountainVariantSeedOffset + uint32(variant)*57
		baseAngle := radius / config.PlanetRadius
		outline := buildMountainOutline(variantSeed, baseAngle)
		mountainNormals = append(mountainNormals, normal)
		mountains = append(mountains, MountainInstance{
			Normal: normal, Radius: radius, Height: height, Variant: variant, Twist: twist, Outline: outline,
		})
	}

	return Environment{Lakes: lakes, Trees: trees, Mountains: mountains}
}

func createLakes(seed uint32) []Lake {
	rng := mathx.NewSeededRNG(seed)
	lakes := make([]Lake, 0, config.LakeCount)
	for i := 0; i < config.LakeCount; i++ {
		radius := rng.Range(config.LakeMinAngle, config.LakeMaxAngle)
		depth := rng.Range(config.LakeMinDepth, config.LakeMaxDepth)
		shelfDepth := depth * config.LakeShelfDepthRatio
		center := pickLakeCenter(rng, radius, lakes)
		tangent, bitangent := tangentBasis(center)
		noiseFreq := rng.Range(config.LakeNoiseFreqMin, config.LakeNoiseFreqMax)
		lakes = append(lakes, Lake{
			Center:          center,
			Radius:          radius,
			Depth:           depth,
			ShelfDepth:      shelfDepth,
			EdgeFalloff:     config.LakeEdgeFalloff,
			NoiseAmplitude:  config.LakeNoiseAmplitude,
			NoiseFrequency:  noiseFreq,
			NoiseFrequencyB: noiseFreq * rng.Range(0.55, 0.95),
			NoiseFrequencyC: noiseFreq * rng.Range(1.1, 1.7),
			NoisePhase:      rng.Range(0, 2*math.Pi),
			NoisePhaseB:     rng.Range(0, 2*math.Pi),
			NoisePhaseC:     rng.Range(0, 2*math.Pi),
			WarpAmplitude:   rng.Range(0.08, 0.18),
			SurfaceInset:    shelfDepth*config.LakeSurfaceInsetRatio + config.LakeSurfaceExtraInset,
			Tangent:         tangent,
			Bitangent:       bitangent,
		})
	}
	return lakes
}

func pickLakeCenter(rng *mathx.SeededRNG, radius float64, existing []Lake) mathx.Point {
	for attempt := 0; attempt < 80; attempt++ {
		candidate := rng.UnitPoint()
		ok := true
		for _, lake := range existing {
			minSep := (radius + lake.Radius) * 0.75
			if candidate.Dot(lake.Center) > math.Cos(minSep) {
				ok = false
				break
			}
		}
		if ok {
			return candidate
		}
	}
	return rng.UnitPoint()
}

func pickSparseNormal(rng *mathx.SeededRNG, minDot float64, existing []mathx.Point, isInLake func(mathx.Point) bool) mathx.Point {
	for attempt := 0; attempt < 60; attempt++ {
		candidate := rng.UnitPoint()
		if isInLake(candidate) {
			continue
		}
		ok := true
		for _, other := range existing {
			if other.Dot(candidate) > minDot {
				ok = false
				break
			}
		}
		if ok {
			return candidate
		}
	}
	for attempt := 0; attempt < 40; attempt++ {
		candidate := rng.UnitPoint()
		if !isInLake(candidate) {
			return candidate
		}
	}
	return rng.UnitPoint()
}

func tangentBasis(normal mathx.Point) (mathx.Point, mathx.Point) {
	up := mathx.Point{X: 0, Y: 1, Z: 0}
	if math.Abs(normal.Y) >= 0.9 {
		up = mathx.Point{X: 1}
	}
	tangent := up.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent).Normalize()
	return tangent, bitangent
}

func buildMountainOutline(seed uint32, baseAngle float64) []float64 {
	rng := mathx.NewSeededRNG(seed)
	variance := 0.18 + rng.Next()*0.06
	outline := make([]float64, config.MountainOutlineSamples)
	for i := range outline {
		theta := (float64(i) / float64(config.MountainOutlineSamples)) * 2 * math.Pi
		qx := int32(math.Round(math.Cos(theta) * 1024))
		qy := int32(0)
		qz := int32(math.Round(math.Sin(theta) * 1024))
		jitter := hash3(seed, qx, qy, qz)*2 - 1
		scale := 1.0 + jitter*variance
		outline[i] = math.Max(baseAngle*scale, baseAngle*0.5)
	}

	smoothed := make([]float64, len(outline))
	n := len(outline)
	for i := range outline {
		sum := 0.0
		for offset := -2; offset <= 2; offset++ {
			idx := ((i+offset)%n + n) % n
			sum += outline[idx]
		}
		smoothed[i] = sum / 5.0
	}
	return smoothed
}

func hash3(seed uint32, x, y, z int32) float64 {
	h := seed ^ 0x9e3779b9
	h = (h ^ uint32(x)) * 0x85ebca6b
	h = (h ^ uint32(y)) * 0xc2b2ae35
	h = (h ^ uint32(z)) * 0x27d4eb2f
	h ^= h >> 16
	return float64(h) / 4294967296.0
}
