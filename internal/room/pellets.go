package room

import (
	"sphereslither.io/internal/config"
	"sphereslither.io/internal/digestion"
	"sphereslither.io/internal/environment"
	"sphereslither.io/internal/mathx"
	"sphereslither.io/internal/pellet"
)

// updateSmallPellets advances every pellet's targeting/motion/consumption
// state by one tick. Idle pellets within SmallPelletAttractRadius and the
// forward cone of some alive player's mouth lock onto that player
// (Attracting); once locked, the lock persists even if a closer mouth
// shows up later, as long as the target stays alive. Attracting pellets
// slide toward their target's mouth, shrinking as they close in, and are
// consumed once within SmallPelletConsumeAngle.
func (s *State) updateSmallPellets(dtMS int64) {
	dt := float64(dtMS) / 1000.0
	consumed := make([]uint32, 0)

	for id, pl := range s.Pellets {
		if pl.State == pellet.Evasive {
			if s.updateEvasivePellet(&pl, dt) {
				consumed = append(consumed, id)
				continue
			}
			s.Pellets[id] = pl
			continue
		}

		switch pl.State {
		case pellet.Idle:
			if target, ok := s.findAttractTarget(pl); ok {
				pl.State = pellet.Attracting
				pl.TargetPlayerID = target
			}
		case pellet.Attracting:
			target, ok := s.Players[pl.TargetPlayerID]
			if !ok || !target.Alive || len(target.Snake) == 0 {
				pl.State = pellet.Idle
				pl.TargetPlayerID = ""
				s.Pellets[id] = pl
				continue
			}
			mouth := target.Head()
			remaining := mathx.AngularDistance(pl.Normal, mouth)
			if remaining < config.SmallPelletConsumeAngle {
				s.consume(target, pl)
				consumed = append(consumed, id)
				continue
			}
			pl.Normal = mathx.RotateToward(pl.Normal, mouth, config.SmallPelletAttractSpeed*dt)
			pl.CurrentSize = pellet.ShrinkToward(pl, remaining)
		}
		s.Pellets[id] = pl
	}

	for _, id := range consumed {
		delete(s.Pellets, id)
		s.spawnSmallPellet()
	}
}

// findAttractTarget returns the nearest alive, non-bot-excluded player
// whose mouth lies within SmallPelletAttractRadius and the forward
// targeting cone of p, if any.
func (s *State) findAttractTarget(p pellet.Pellet) (string, bool) {
	bestID := ""
	bestDist := config.SmallPelletAttractRadius
	found := false
	for id, pl := range s.Players {
		if !pl.Alive || len(pl.Snake) == 0 {
			continue
		}
		mouth := pl.Head()
		d := mathx.AngularDistance(p.Normal, mouth)
		if d >= bestDist {
			continue
		}
		axis := snakeForwardPoint(pl)
		if !pellet.InHeadCone(mouth, axis, p.Normal, config.SmallPelletLockConeAngle) {
			continue
		}
		bestDist = d
		bestID = id
		found = true
	}
	return bestID, found
}

func snakeForwardPoint(p *Player) mathx.Point {
	if len(p.Snake) < 2 {
		return mathx.FallbackTangent(p.Head())
	}
	return mathx.RotateAroundAxis(p.Snake[0].Pos, p.Axis, config.NodeAngle)
}

// consume applies a pellet's reward to target. Big pellets (death drops,
// evasive bait) grant a full score point and a directly-sized digestion
// immediately. Small pellets accumulate toward an integer score point via
// PelletGrowthFraction, and each small pellet eaten also starts its own
// low-strength digestion (SmallPelletDigestionStrength) sized by that
// pellet's growth fraction.
func (s *State) consume(target *Player, pl pellet.Pellet) {
	if pl.IsBig() {
		target.Score++
		if d, ok := digestion.AddWithStrength(target.Length(), &target.NextDigestionID, 1.0, pl.GrowthFraction); ok {
			target.Digestions = append(target.Digestions, d)
		}
		return
	}

	target.PelletGrowthFraction += pl.GrowthFraction
	for target.PelletGrowthFraction >= 1.0 {
		target.Score++
		target.PelletGrowthFraction -= 1.0
	}
	if d, ok := digestion.AddWithStrength(target.Length(), &target.NextDigestionID, config.SmallPelletDigestionStrength, pl.GrowthFraction); ok {
		target.Digestions = append(target.Digestions, d)
	}
}

// spawnEvasivePellets gives each eligible human player a fleeing bait
// pellet: eligible means human, body length within the evasive band, no
// already-active evasive pellet of their own, and past their per-player
// cooldown. A player for whom no safe spawn location can be found near
// their own head is retried sooner than the normal spawn interval.
func (s *State) spawnEvasivePellets() {
	active := make(map[string]bool)
	for _, pl := range s.Pellets {
		if pl.State == pellet.Evasive {
			active[pl.OwnerPlayerID] = true
		}
	}

	for id, p := range s.Players {
		if p.IsBot || !p.Alive || len(p.Snake) == 0 {
			continue
		}
		if p.Length() < config.EvasivePelletMinLen || p.Length() > config.EvasivePelletMaxLen {
			continue
		}
		if active[id] {
			continue
		}
		if next, ok := s.NextEvasiveSpawnAt[id]; ok && s.NowMS < next {
			continue
		}

		spot, ok := s.findEvasiveSpawnSpot(p)
		if !ok {
			s.NextEvasiveSpawnAt[id] = s.NowMS + config.EvasivePelletRetryDelayMS
			continue
		}

		pelletID := s.nextPelletID()
		s.Pellets[pelletID] = pellet.NewEvasive(pelletID, spot, id, s.NowMS+config.EvasivePelletRetryDelayMS*10)
		s.NextEvasiveSpawnAt[id] = s.NowMS + config.EvasiveSpawnIntervalMS
	}
}

func (s *State) findEvasiveSpawnSpot(owner *Player) (mathx.Point, bool) {
	head := owner.Head()
	for attempt := 0; attempt < config.MaxSpawnAttempts; attempt++ {
		candidate := s.RNG.ConePoint(head, config.SpawnConeAngle)
		if mathx.AngularDistance(head, candidate) < config.CollisionDistance*3 {
			continue
		}
		if environment.IsObstructed(candidate, s.Environment, config.CollisionDistance) {
			continue
		}
		if IsSnakeTooClose(candidate, s.Players, nil) {
			continue
		}
		return candidate, true
	}
	return mathx.Point{}, false
}

// updateEvasivePellet moves a bait pellet away from its owner while the
// owner's head is within EvasivePelletSuctionRadius of it, capped to a
// maximum step per tick for smooth motion, expires it into an ordinary
// idle big pellet once past ExpiresAtMS (anyone, including the former
// owner, may then eat it) and lets any OTHER player's mouth (suction)
// pull it in early while still owned. Returns true if the pellet was
// consumed this tick, in which case the caller removes it and spawns a
// replacement small pellet.
func (s *State) updateEvasivePellet(pl *pellet.Pellet, dt float64) bool {
	if s.NowMS >= pl.ExpiresAtMS {
		pl.State = pellet.Idle
		pl.OwnerPlayerID = ""
		pl.GrowthFraction = config.BigPelletGrowthFraction
		return false
	}

	owner, ok := s.Players[pl.OwnerPlayerID]
	if ok && owner.Alive && len(owner.Snake) > 0 {
		head := owner.Head()
		if mathx.AngularDistance(head, pl.Normal) < config.EvasivePelletSuctionRadius {
			away := mathx.ProjectTangent(pl.Normal, pl.Normal.Sub(head))
			step := config.EvasivePelletMaxStepPerTick * dt
			if step > config.EvasivePelletMaxStepPerTick {
				step = config.EvasivePelletMaxStepPerTick
			}
			pl.Normal = mathx.RotateAroundAxis(pl.Normal, pl.Normal.Cross(away), step)
		}
	}

	for otherID, other := range s.Players {
		if otherID == pl.OwnerPlayerID || !other.Alive || len(other.Snake) == 0 {
			continue
		}
		mouth := other.Head()
		if mathx.AngularDistance(mouth, pl.Normal) < config.EvasivePelletSuctionRadius {
			s.consume(other, *pl)
			return true
		}
	}
	return false
}
