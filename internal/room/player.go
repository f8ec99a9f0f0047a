package room

import (
	"github.com/google/uuid"

	"sphereslither.io/internal/config"
	"sphereslither.io/internal/digestion"
	"sphereslither.io/internal/mathx"
	"sphereslither.io/internal/snake"
)

// Player is one connected (or bot-controlled) snake and its simulation
// state.
type Player struct {
	ID      string
	IDBytes [16]byte
	NetID   uint32

	Name  string
	Color string
	Skin  *string
	IsBot bool

	Axis       mathx.Point
	TargetAxis mathx.Point
	Boost      bool // client's requested boost input
	IsBoosting bool // whether boost is actually in effect this tick

	Oxygen                     float64
	OxygenDamageAccumulator    float64
	Stamina                    float64
	BoostScoreDrainAccumulator float64

	Score int64

	Alive      bool
	Connected  bool
	LastSeenMS int64
	RespawnAt  *int64

	BoostFloorLen int64

	Snake snake.Body

	PelletGrowthFraction float64
	TailExtension        float64
	NextDigestionID       uint32
	Digestions            []digestion.Digestion
}

// NewPlayer creates a freshly spawned player at headPos facing dir, with a
// fresh UUID identity and a starting-length body.
func NewPlayer(name, color string, isBot bool, headPos, dir mathx.Point, netID uint32) *Player {
	id := uuid.New()
	axis := headAxisFromHeading(headPos, dir)
	return &Player{
		ID:            id.String(),
		IDBytes:       id,
		NetID:         netID,
		Name:          name,
		Color:         color,
		IsBot:         isBot,
		Axis:          axis,
		TargetAxis:    axis,
		Oxygen:        config.OxygenMax,
		Stamina:       config.StaminaMax,
		Alive:         true,
		Connected:     !isBot,
		BoostFloorLen: config.StartingLen,
		Snake:         snake.NewBody(headPos, dir, config.StartingLen),
	}
}

func headAxisFromHeading(headPos, dir mathx.Point) mathx.Point {
	axis := headPos.Cross(dir)
	if axis.Length() < 1e-9 {
		return mathx.FallbackTangent(headPos)
	}
	return axis.Normalize()
}

// Length returns the player's current body length in nodes.
func (p *Player) Length() int {
	return len(p.Snake)
}

// Head returns the player's head position, or the zero point if the snake
// is empty (a dead, not-yet-respawned player).
func (p *Player) Head() mathx.Point {
	if len(p.Snake) == 0 {
		return mathx.Point{}
	}
	return p.Snake[0].Pos
}

// GirthScale returns the visual body-thickness multiplier for a snake of
// the given length: 1.0 at the starting length, +0.01 per additional node,
// capped at 2.0.
func GirthScale(length int) float64 {
	extra := length - config.StartingLen
	if extra < 0 {
		extra = 0
	}
	scale := 1.0 + 0.01*float64(extra)
	if scale > 2.0 {
		scale = 2.0
	}
	return scale
}

// CanPlayerBoost reports whether p is currently allowed to boost. A player
// already boosting may continue down to their floor length exactly; a
// player not yet boosting needs to be strictly longer than the floor to
// start, so boosting can never shrink a snake below its spawn length.
func CanPlayerBoost(p *Player) bool {
	if p.IsBoosting {
		return p.Score >= p.BoostFloorLen
	}
	return p.Score > p.BoostFloorLen
}
