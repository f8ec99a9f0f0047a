// Package room implements one game room's simulation: players, bots,
// pellets and the environment they move through, advanced one tick at a
// time behind a single mutex, in the same spirit as the teacher's
// single-goroutine-owns-all-mutable-state game loop.
package room

import (
	"math"
	"sync"

	"sphereslither.io/internal/config"
	"sphereslither.io/internal/digestion"
	"sphereslither.io/internal/environment"
	"sphereslither.io/internal/mathx"
	"sphereslither.io/internal/pellet"
	"sphereslither.io/internal/snake"
)

// State holds everything that changes as the room ticks. A single mutex
// protects it; the tick loop and any inbound-input handlers serialize
// through Lock/Unlock the same way the teacher's engine.Server serializes
// through its single owning goroutine's channel reads.
type State struct {
	mu sync.Mutex

	Seed        uint32
	Environment environment.Environment
	RNG         *mathx.SeededRNG

	Players map[string]*Player

	Pellets            map[uint32]pellet.Pellet
	NextPelletID       uint32
	NextEvasiveSpawnAt map[string]int64

	NextPlayerNetID uint32
	NextStateSeq    uint64

	NowMS int64
}

// NewState creates an empty room seeded for deterministic environment
// generation and pre-scatters its starting field of small pellets.
func NewState(seed uint32) *State {
	s := &State{
		Seed:               seed,
		Environment:        environment.Generate(seed),
		RNG:                mathx.NewSeededRNG(seed ^ 0x9E3779B9),
		Players:            make(map[string]*Player),
		Pellets:            make(map[uint32]pellet.Pellet),
		NextEvasiveSpawnAt: make(map[string]int64),
	}
	s.seedPellets()
	s.seedBots()
	return s
}

func (s *State) seedPellets() {
	for i := 0; i < config.BasePelletCount; i++ {
		s.spawnSmallPellet()
	}
}

func (s *State) spawnSmallPellet() {
	var normal mathx.Point
	for attempt := 0; attempt < config.MaxSpawnAttempts; attempt++ {
		normal = s.RNG.UnitPoint()
		if !environment.IsObstructed(normal, s.Environment, config.SmallPelletSpawnHeadExclusion) {
			break
		}
	}
	id := s.nextPelletID()
	colorIdx := uint8(int(s.RNG.Next()*float64(len(config.ColorPool))) % len(config.ColorPool))
	s.Pellets[id] = pellet.NewSmall(id, normal, colorIdx, s.RNG)
}

func (s *State) nextPelletID() uint32 {
	id := s.NextPelletID
	s.NextPelletID++
	if uint64(len(s.Pellets)) >= config.MaxPellets {
		// Room is saturated; reuse the wrapped id space rather than grow
		// without bound.
		id = id % config.MaxPellets
	}
	return id
}

// Join adds a new player (human or bot) to the room and returns it.
func (s *State) Join(name, color string, isBot bool) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	spawn := FindSpawnPoint(s.Environment, s.Players, nil, s.RNG)
	dir := mathx.FallbackTangent(spawn)
	netID := s.NextPlayerNetID
	s.NextPlayerNetID++

	p := NewPlayer(name, color, isBot, spawn, dir, netID)
	s.Players[p.ID] = p
	return p
}

// Stats reports the current connected-human and total player counts, for
// the room process's heartbeat report to the control plane.
func (s *State) Stats() (humanCount, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Players {
		if !p.IsBot && p.Connected {
			humanCount++
		}
	}
	return humanCount, len(s.Players)
}

// Leave removes a player entirely (as opposed to a death in handleDeaths,
// which leaves the corpse's pellets behind and the player pending a
// respawn decision).
func (s *State) Leave(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Players, playerID)
}

// SetInput updates a connected player's steering target and boost
// request. Called by Hub.PumpInputs on the tick loop just before Tick; it
// takes the lock itself like every other entry point into State.
func (s *State) SetInput(playerID string, targetAxis mathx.Point, boost bool, nowMS int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Players[playerID]
	if !ok {
		return
	}
	p.TargetAxis = targetAxis
	p.Boost = boost
	p.LastSeenMS = nowMS
}

// Tick advances the simulation by one frame of dtMS milliseconds.
func (s *State) Tick(nowMS, dtMS int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.NowMS = nowMS
	s.reapTimedOutPlayers()
	s.stepBots()
	s.integrateMovement(dtMS)
	s.applyOxygen(dtMS)
	s.resolveHeadBodyCollisions()
	s.updateSmallPellets(dtMS)
	s.spawnEvasivePellets()
	s.advanceDigestions()
	s.handleDeaths()
	s.processRespawns()
	s.maintainBotCount()
	s.NextStateSeq++
}

func (s *State) reapTimedOutPlayers() {
	for id, p := range s.Players {
		if p.IsBot || !p.Connected {
			continue
		}
		if s.NowMS-p.LastSeenMS > config.PlayerTimeoutMS {
			delete(s.Players, id)
		}
	}
}

func (s *State) integrateMovement(dtMS int64) {
	dt := float64(dtMS) / 1000.0
	for _, p := range s.Players {
		if !p.Alive || len(p.Snake) == 0 {
			continue
		}
		p.IsBoosting = p.Boost && CanPlayerBoost(p) && p.Stamina > 0
		if p.IsBoosting {
			p.Stamina -= config.StaminaDrainPerSec * dt
			if p.Stamina < 0 {
				p.Stamina = 0
			}
			s.drainBoostScore(p, dt)
		} else if p.Stamina < config.StaminaMax {
			p.Stamina += config.StaminaRechargePerSec * dt
			if p.Stamina > config.StaminaMax {
				p.Stamina = config.StaminaMax
			}
		}

		speed := config.BaseSpeed
		steps := 1
		if p.IsBoosting {
			speed *= config.BoostMult
			steps = 2
		}

		turnLimit := config.TurnRate * dt
		p.Axis = mathx.RotateToward(p.Axis, p.TargetAxis, turnLimit)

		for i := 0; i < steps; i++ {
			head := p.Snake[0].Pos
			newHead := mathx.RotateAroundAxis(head, p.Axis, speed)
			newHead, p.Axis = environment.ResolveHead(newHead, p.Axis, config.CollisionDistance, s.Environment)
			p.Snake = snake.ApplyRotationStep(p.Snake, newHead)

			if environment.CactusContact(newHead, config.CollisionDistance, s.Environment) {
				p.Alive = false
			}
		}
	}
}

// drainBoostScore bleeds a boosting player's score down over time: score
// is the length proxy (spec.md §3/§4.4), so as it drains past a whole
// point the snake sheds a tail node into a drop pellet, the same
// accumulate-then-convert shape applyOxygen uses for oxygen exhaustion.
// Truncation stops at MinSurvivalLength so boosting alone never kills a
// player outright; CanPlayerBoost forces a deboost once score reaches
// BoostFloorLen instead.
func (s *State) drainBoostScore(p *Player, dt float64) {
	p.BoostScoreDrainAccumulator += config.BoostScoreDrainPerSec * dt
	for p.BoostScoreDrainAccumulator >= 1.0 && p.Score > 0 {
		p.BoostScoreDrainAccumulator -= 1.0
		p.Score--
		if len(p.Snake) > config.MinSurvivalLength {
			s.dropTailPellet(p)
		}
	}
}

// dropTailPellet removes a player's current tail node and converts it
// into a death-sized pellet in place, mirroring dropDeathPellets' per-node
// conversion but for a single node taken off a still-living snake.
func (s *State) dropTailPellet(p *Player) {
	if len(p.Snake) == 0 {
		return
	}
	tail := p.Snake[len(p.Snake)-1]
	p.Snake = p.Snake[:len(p.Snake)-1]
	id := s.nextPelletID()
	colorIdx := uint8(int(s.RNG.Next()*float64(len(config.ColorPool))) % len(config.ColorPool))
	s.Pellets[id] = pellet.NewDeath(id, tail.Pos, colorIdx, s.RNG)
}

func (s *State) applyOxygen(dtMS int64) {
	dt := float64(dtMS) / 1000.0
	for _, p := range s.Players {
		if !p.Alive || len(p.Snake) == 0 {
			continue
		}
		sample := environment.SampleLakes(p.Head(), s.Environment.Lakes)
		if sample.LakeIndex >= 0 && sample.Boundary > 0 {
			p.OxygenDamageAccumulator += config.OxygenDrainPerSec * dt * sample.Boundary
			for p.OxygenDamageAccumulator >= 1.0 {
				p.Oxygen -= 1.0 / float64(config.NodeQueueSize)
				p.OxygenDamageAccumulator -= 1.0
			}
			if p.Oxygen <= 0 {
				p.Oxygen = 0
				p.Alive = false
				p.Score = 0
			} else if p.Length() <= config.MinSurvivalLength {
				p.Alive = false
				p.Score = 0
			}
		} else if p.Oxygen < config.OxygenMax {
			p.Oxygen = config.OxygenMax
			p.OxygenDamageAccumulator = 0
		}
	}
}

func (s *State) resolveHeadBodyCollisions() {
	snapshots := make([]PlayerCollisionSnapshot, 0, len(s.Players))
	for id, p := range s.Players {
		if !p.Alive || len(p.Snake) == 0 {
			continue
		}
		positions := make([]mathx.Point, len(p.Snake))
		for i, n := range p.Snake {
			positions[i] = n.Pos
		}
		snapshots = append(snapshots, PlayerCollisionSnapshot{
			ID:                   id,
			Alive:                true,
			Snake:                positions,
			ContactAngularRadius: config.CollisionDistance,
			BodyAngularRadius:    config.CollisionDistance,
		})
	}
	deaths := DetectSnakeHeadBodyCollisions(snapshots)
	for id := range deaths {
		s.Players[id].Alive = false
	}
}

func (s *State) advanceDigestions() {
	for _, p := range s.Players {
		if len(p.Snake) == 0 {
			continue
		}
		steps := 1
		if p.IsBoosting {
			steps = 2
		}
		axis := snake.HeadAxis(p.Snake)
		p.Digestions = digestion.Advance(p.Digestions, &p.TailExtension, steps, func() {
			p.Snake = snake.AddNode(p.Snake, axis)
		})
	}
}

func (s *State) handleDeaths() {
	for id, p := range s.Players {
		if p.Alive || len(p.Snake) == 0 {
			continue
		}
		s.dropDeathPellets(p)
		p.Snake = nil
		p.Score = 0
		if !p.IsBot {
			respawnAt := s.NowMS + config.RespawnCooldownMS
			p.RespawnAt = &respawnAt
		} else {
			delete(s.Players, id)
		}
	}
}

func (s *State) dropDeathPellets(p *Player) {
	count := len(p.Snake) - 1
	if count <= 0 {
		return
	}
	if uint64(count) > config.MaxPellets {
		count = int(config.MaxPellets)
	}
	for i := 1; i <= count && i < len(p.Snake); i++ {
		id := s.nextPelletID()
		colorIdx := uint8(int(s.RNG.Next()*float64(len(config.ColorPool))) % len(config.ColorPool))
		s.Pellets[id] = pellet.NewDeath(id, p.Snake[i].Pos, colorIdx, s.RNG)
	}
}

func (s *State) processRespawns() {
	for id, p := range s.Players {
		if p.Alive || p.RespawnAt == nil || s.NowMS < *p.RespawnAt {
			continue
		}
		excluded := id
		spawn := FindSpawnPoint(s.Environment, s.Players, &excluded, s.RNG)
		dir := mathx.FallbackTangent(spawn)
		axis := headAxisFromHeading(spawn, dir)
		p.Snake = snake.NewBody(spawn, dir, config.StartingLen)
		p.Axis = axis
		p.TargetAxis = axis
		p.Oxygen = config.OxygenMax
		p.OxygenDamageAccumulator = 0
		p.Stamina = config.StaminaMax
		p.Alive = true
		p.RespawnAt = nil
		p.TailExtension = 0
		p.PelletGrowthFraction = 0
		p.BoostScoreDrainAccumulator = 0
		p.Digestions = nil
	}
}

// stepBots assigns a simple steering target for every bot: head toward
// the nearest pellet in the room (no view limit), boosting only when stamina allows
// and the pellet is far enough away to be worth the cost.
func (s *State) stepBots() {
	for _, p := range s.Players {
		if !p.IsBot || !p.Alive || len(p.Snake) == 0 {
			continue
		}
		head := p.Head()
		best := mathx.Point{}
		bestDist := math.Inf(1)
		found := false
		for _, pl := range s.Pellets {
			d := mathx.AngularDistance(head, pl.Normal)
			if d < bestDist {
				bestDist = d
				best = pl.Normal
				found = true
			}
		}
		if found {
			axis := headAxisFromHeading(head, best)
			p.TargetAxis = axis
		}
		p.Boost = found && bestDist > config.BotBoostDistance && p.Stamina > config.BotMinStaminaToBoost
	}
}
