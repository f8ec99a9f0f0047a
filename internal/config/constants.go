// Package config holds the tunable constants of the simulation and the
// environment-variable bound configuration for the room and control-plane
// processes.
package config

import "math"

// Geometry and motion.
const (
	WorldScale    = 3.0
	NodeAngle     = math.Pi / 60.0 / WorldScale
	NodeQueueSize = 9
	StartingLen   = 8
	BaseSpeed     = (NodeAngle * 2.0) / float64(NodeQueueSize+1)
	BoostMult     = 1.75
	TurnRate      = 0.3 / WorldScale

	CollisionDistance = 0.10467191248588766 / WorldScale
)

// Stamina / oxygen.
const (
	StaminaMax           = 1.0
	StaminaDrainPerSec   = 0.6
	StaminaRechargePerSec = 0.35
	OxygenMax            = 1.0
	OxygenDrainPerSec    = 0.1
	MinSurvivalLength    = 3
)

// BoostScoreDrainPerSec is this repo's resolution of spec.md §4.4's "boost
// drains score over time": not defined in the retrieved reference source
// (see DESIGN.md), chosen at the same order of magnitude as
// StaminaDrainPerSec so a sustained boost burns through a handful of
// score points over the stamina bar's own drain window.
const BoostScoreDrainPerSec = 0.5

// Digestion.
const (
	DigestionTravelSpeedMult = 3.0
	DigestionTailSettleSteps = 4
	DigestionGrowthSteps     = NodeQueueSize
)

// Pellets.
const (
	BasePelletCount = 2400
	MaxPellets      = math.MaxUint16

	SmallPelletGrowthFraction       = 0.125
	SmallPelletDigestionStrength    = 0.28
	SmallPelletDigestionStrengthMax = 1.0
	SmallPelletRingBatchSizeCap     = 5
	SmallPelletSizeMin              = 0.55
	SmallPelletSizeMax              = 0.95
	DeathPelletSizeMin              = 1.2
	DeathPelletSizeMax              = 1.75
	PelletSizeEncodeMin             = SmallPelletSizeMin
	PelletSizeEncodeMax             = DeathPelletSizeMax
	SmallPelletShrinkMinRatio       = 0.24
	SmallPelletAttractRadius        = 0.16
	SmallPelletLockConeAngle        = math.Pi * 0.30
	SmallPelletConsumeAngle         = 0.0034
	SmallPelletAttractSpeed         = 3.2
	SmallPelletMouthForward         = 0.0
	SmallPelletSpawnHeadExclusion   = 0.08
	SmallPelletZoomMinCameraDist    = 4.0
	SmallPelletZoomMaxCameraDist    = 10.0
	SmallPelletVisibleMin           = 520
	SmallPelletVisibleMax           = 2200
	SmallPelletViewMarginMin        = 0.06
	SmallPelletViewMarginMax        = 0.2

	// BigPelletGrowthFraction and the Evasive* constants below are not
	// defined anywhere in the retrieved reference source, only used in
	// its test suite. Values chosen to stay consistent with those test
	// assertions and the SmallPellet* constants above; see DESIGN.md.
	BigPelletGrowthFraction     = 0.5
	EvasivePelletMinLen         = 12
	EvasivePelletMaxLen         = 40
	EvasivePelletRetryDelayMS   = 1500
	EvasivePelletSizeMin        = 1.4
	EvasivePelletMaxStepPerTick = 0.02
	EvasivePelletSuctionRadius  = 0.22

	// EvasiveSpawnIntervalMS is this repo's own addition: the regular
	// per-player cooldown between evasive-pellet spawns when a safe spot
	// is found on the first try. EvasivePelletRetryDelayMS only governs
	// the shorter retry when no safe spot is found.
	EvasiveSpawnIntervalMS = 10000
)

// Ticking and timeouts.
const (
	TickMS           = 50
	RespawnCooldownMS = 5000
	RespawnRetryMS    = 500
	PlayerTimeoutMS   = 15000
)

// Spawning.
const (
	SpawnConeAngle          = math.Pi / 3.0
	MaxSpawnAttempts        = 32
	SpawnPlayerMinDistance  = CollisionDistance * 2.0
)

// Bots.
const (
	BotCount             = 5
	BotBoostDistance     = 0.6 / WorldScale
	BotMinStaminaToBoost = 0.6
)

// View windowing. Not defined in the retrieved reference source's
// surviving constants file, only used in its test suite; see DESIGN.md.
const (
	ViewRadiusMin         = 0.3
	ViewRadiusMax         = 1.2
	ViewRadiusMargin      = 0.1
	ViewNodePadding       = 2
	ViewMinWindowPoints   = 6
	ViewCameraDistanceMin = 3.0
	ViewCameraDistanceMax = 12.0
)

// ColorPool is the fixed palette assigned to joining players in order.
var ColorPool = [8]string{
	"#ff6b6b", "#ffd166", "#06d6a0", "#4dabf7", "#f06595", "#845ef7", "#20c997", "#fcc419",
}

// ProtocolVersion is the binary wire format version advertised in the
// INIT frame and validated against the client's expectations.
const ProtocolVersion = 5

// Frame type tags.
const (
	FrameInit       byte = 0x10
	FrameStateDelta byte = 0x11
	FramePlayerMeta byte = 0x12
)
