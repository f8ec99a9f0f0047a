package config

// Lakes. Angles and depths are expressed in the same unit-sphere units as
// the rest of the geometry constants, already divided by WorldScale where
// the reference source divided by PLANET_SCALE.
const (
	LakeCount             = 2
	LakeMinAngle          = 0.9 / WorldScale
	LakeMaxAngle          = 1.3 / WorldScale
	LakeMinDepth          = 0.07
	LakeMaxDepth          = 0.12
	LakeEdgeFalloff       = 0.08
	LakeEdgeSharpness     = 1.8
	LakeNoiseAmplitude    = 0.55
	LakeNoiseFreqMin      = 3.0
	LakeNoiseFreqMax      = 6.0
	LakeShelfDepthRatio   = 0.45
	LakeShelfCore         = 0.55
	LakeCenterPitStart    = 0.72
	LakeCenterPitRatio    = 0.35
	LakeSurfaceInsetRatio = 0.5
	LakeSurfaceExtraInset = 0.01
	LakeExclusionBoundary = 0.18
	LakeDrainDepth        = 0.35 // not referenced by the oxygen logic, which drains whenever a head's lake Boundary is above 0
)

// Trees and mountains.
const (
	TreeCount             = 36
	MountainCount         = 8
	TreeInstanceCount     = TreeCount - MountainCount
	SnakeRadius           = 0.045
	TreeHeight            = 0.3
	TreeTrunkHeight       = TreeHeight / 3.0
	TreeTrunkRadius       = TreeHeight * 0.12
	TreeTierOverlap       = 0.55
	TreeMinScale          = 0.9
	TreeMaxScale          = 1.15
	TreeMinAngle          = 0.42
	TreeMinHeight         = SnakeRadius * 9.5
	TreeMaxHeight         = TreeMinHeight * 1.5
	CactusChance          = 0.12

	MountainVariants       = 3
	MountainRadiusMin      = 0.12
	MountainRadiusMax      = 0.22
	MountainHeightMin      = 0.12
	MountainHeightMax      = 0.26
	MountainMinAngle       = 0.55
	MountainOutlineSamples = 64
)

// TreeTierHeightFactors mirrors the original's fixed 4-tier canopy profile;
// it isn't used for collision, only documented here since Environment.Generate
// derives TreeMinHeight/TreeMaxHeight scaling from it in the reference source.
var TreeTierHeightFactors = [4]float64{0.4, 0.33, 0.27, 0.21}

// Deterministic sub-seeds so lakes, trees/mountains and mountain outlines
// each get an independent, reproducible stream derived from the room seed.
const (
	LakeSeedOffset            = 0x91fcae12
	EnvSeedOffset             = 0x6f35d2a1
	MountainVariantSeedOffset = 0x03f2a9b1
)

// PlanetRadius is the world-space radius collider geometry is specified
// against before being converted to the unit-sphere angular units the
// simulation runs on.
const PlanetRadius = WorldScale
