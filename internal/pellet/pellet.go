// Package pellet implements the food scattered across a room: small
// pellets that drift toward and are eaten by whichever snake's mouth is
// closest, and the larger "big" pellets — dropped by dying snakes or
// spawned as an evasive bait for a single human player — that are worth
// more growth per pellet.
package pellet

import (
	"sphereslither.io/internal/config"
	"sphereslither.io/internal/mathx"
)

// State is the lifecycle stage of a pellet.
type State int

const (
	// Idle pellets sit in place, visible, not yet locked onto a mouth.
	Idle State = iota
	// Attracting pellets are sliding toward TargetPlayerID's mouth.
	Attracting
	// Evasive pellets are "bait": owned by a single human player, they
	// actively move away from that player, and expire if never eaten.
	Evasive
)

// Pellet is a single piece of food on the sphere's surface.
type Pellet struct {
	ID             uint32
	Normal         mathx.Point
	ColorIndex     uint8
	BaseSize       float64
	CurrentSize    float64
	GrowthFraction float64
	State          State
	TargetPlayerID string // meaningful only when State == Attracting
	OwnerPlayerID  string // meaningful only when State == Evasive
	ExpiresAtMS    int64  // meaningful only when State == Evasive
}

// NewSmall creates an idle small pellet, sizing it from rng within the
// small-pellet size band.
func NewSmall(id uint32, normal mathx.Point, colorIndex uint8, rng *mathx.SeededRNG) Pellet {
	size := rng.Range(config.SmallPelletSizeMin, config.SmallPelletSizeMax)
	return Pellet{
		ID: id, Normal: normal, ColorIndex: colorIndex,
		BaseSize: size, CurrentSize: size,
		GrowthFraction: config.SmallPelletGrowthFraction,
		State:          Idle,
	}
}

// NewDeath creates an idle death pellet — one of the pellets scattered
// along a killed snake's body — sized from rng within the larger
// death-pellet size band and worth a full big-pellet growth fraction.
func NewDeath(id uint32, normal mathx.Point, colorIndex uint8, rng *mathx.SeededRNG) Pellet {
	size := rng.Range(config.DeathPelletSizeMin, config.DeathPelletSizeMax)
	return Pellet{
		ID: id, Normal: normal, ColorIndex: colorIndex,
		BaseSize: size, CurrentSize: size,
		GrowthFraction: config.BigPelletGrowthFraction,
		State:          Idle,
	}
}

// NewEvasive creates a bait pellet owned by ownerPlayerID, already fleeing
// and due to expire at expiresAtMS if it's never caught.
func NewEvasive(id uint32, normal mathx.Point, ownerPlayerID string, expiresAtMS int64) Pellet {
	return Pellet{
		ID: id, Normal: normal,
		BaseSize: config.EvasivePelletSizeMin, CurrentSize: config.EvasivePelletSizeMin,
		GrowthFraction: config.BigPelletGrowthFraction,
		State:          Evasive,
		OwnerPlayerID:  ownerPlayerID,
		ExpiresAtMS:    expiresAtMS,
	}
}

// IsBig reports whether the pellet grants the instant big-pellet reward
// (death pellets and evasive pellets) rather than accumulating toward the
// fractional small-pellet score tick.
func (p Pellet) IsBig() bool {
	return p.GrowthFraction >= config.BigPelletGrowthFraction-1e-9
}

// InHeadCone reports whether target, as seen from head looking along
// forward, falls within the given half-angle cone — used so a pellet
// behind a snake's head doesn't lock onto its mouth.
func InHeadCone(head, forward, target mathx.Point, coneAngle float64) bool {
	toTarget := mathx.ProjectTangent(head, target.Sub(head))
	fwd := mathx.ProjectTangent(head, forward.Sub(head))
	angle := mathx.AngularDistance(toTarget, fwd)
	return angle <= coneAngle
}

// ShrinkToward returns the pellet's display size as it approaches
// distance (the great-circle angle remaining to its target), shrinking
// linearly from BaseSize down to a floor ratio as it closes the attract
// radius.
func ShrinkToward(base Pellet, remainingAngle float64) float64 {
	t := mathx.Clamp(remainingAngle/config.SmallPelletAttractRadius, 0, 1)
	ratio := config.SmallPelletShrinkMinRatio + (1.0-config.SmallPelletShrinkMinRatio)*t
	return base.BaseSize * ratio
}
